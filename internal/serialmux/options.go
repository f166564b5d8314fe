package serialmux

import (
	"fmt"
	"strings"

	"go.bug.st/serial"
)

// PortOptions describes the serial connection parameters used when opening a
// real serial port. The defaults match the wand firmware's USB CDC settings,
// so a zero value opens the camera link correctly.
type PortOptions struct {
	BaudRate int
	DataBits int
	StopBits int
	Parity   string
}

// parityModes maps the normalized parity letter to its go.bug.st constant.
// Normalize guarantees the letter is a key of this map.
var parityModes = map[string]serial.Parity{
	"N": serial.NoParity,
	"E": serial.EvenParity,
	"O": serial.OddParity,
}

// Normalize validates the options and applies defaults for any unset values.
// Parity accepts single letters or full words in any case.
func (o PortOptions) Normalize() (PortOptions, error) {
	opts := o

	switch strings.ToUpper(strings.TrimSpace(opts.Parity)) {
	case "", "N", "NONE":
		opts.Parity = "N"
	case "E", "EVEN":
		opts.Parity = "E"
	case "O", "ODD":
		opts.Parity = "O"
	default:
		return opts, fmt.Errorf("unsupported parity %q: expected N, E, or O", o.Parity)
	}

	if opts.BaudRate <= 0 {
		opts.BaudRate = 115200
	}
	if opts.DataBits == 0 {
		opts.DataBits = 8
	}
	if opts.StopBits == 0 {
		opts.StopBits = 1
	}

	if opts.DataBits < 5 || opts.DataBits > 8 {
		return opts, fmt.Errorf("data bits %d out of range: supported values are 5 to 8", opts.DataBits)
	}
	if opts.StopBits != 1 && opts.StopBits != 2 {
		return opts, fmt.Errorf("stop bits %d not supported: use 1 or 2", opts.StopBits)
	}
	return opts, nil
}

// Equal reports whether two PortOptions describe the same serial
// configuration once normalized. Invalid options compare equal to nothing.
func (o PortOptions) Equal(other PortOptions) bool {
	a, errA := o.Normalize()
	b, errB := other.Normalize()
	return errA == nil && errB == nil && a == b
}

// SerialMode converts the port options into the serial.Mode structure
// required by go.bug.st/serial when opening a port.
func (o PortOptions) SerialMode() (*serial.Mode, error) {
	opts, err := o.Normalize()
	if err != nil {
		return nil, err
	}

	stop := serial.OneStopBit
	if opts.StopBits == 2 {
		stop = serial.TwoStopBits
	}

	return &serial.Mode{
		BaudRate: opts.BaudRate,
		DataBits: opts.DataBits,
		StopBits: stop,
		Parity:   parityModes[opts.Parity],
	}, nil
}

// String renders the options in the conventional shorthand, e.g. 115200-8N1.
func (o PortOptions) String() string {
	opts, err := o.Normalize()
	if err != nil {
		return fmt.Sprintf("invalid(%v)", err)
	}
	return fmt.Sprintf("%d-%d%s%d", opts.BaudRate, opts.DataBits, opts.Parity, opts.StopBits)
}
