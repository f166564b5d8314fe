package serialmux

import (
	"fmt"
	"time"

	"go.bug.st/serial"

	"github.com/banshee-data/irview/internal/timeutil"
)

// DefaultSettleWait is how long to let the firmware finish its boot chatter
// before stale output is discarded. The wand prints a burst of setup
// messages when the USB link comes up.
const DefaultSettleWait = 2 * time.Second

// NewRealPort opens the serial device at the given path using the provided
// serial options.
func NewRealPort(path string, opts PortOptions) (serial.Port, error) {
	mode, err := opts.SerialMode()
	if err != nil {
		return nil, err
	}

	port, err := serial.Open(path, mode)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	return port, nil
}

// SettlePort pauses for the firmware's boot chatter to finish, then discards
// whatever accumulated in the input buffer so the monitor starts on fresh
// telemetry. Ports without an input buffer to flush settle with the pause
// alone.
func SettlePort(clock timeutil.Clock, port SerialPorter, wait time.Duration) error {
	if wait > 0 {
		clock.Sleep(wait)
	}
	if f, ok := port.(interface{ ResetInputBuffer() error }); ok {
		return f.ResetInputBuffer()
	}
	return nil
}
