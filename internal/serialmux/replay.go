package serialmux

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/banshee-data/irview/internal/timeutil"
)

// DefaultReplayRate is the playback rate in lines per second. It roughly
// matches the camera's live output cadence.
const DefaultReplayRate = 100.0

// pipePort adapts a paced line producer to the SerialPorter interface via an
// in-process pipe. The feeding goroutine stops when the producer runs out or
// either side is closed.
type pipePort struct {
	r *io.PipeReader
	w *io.PipeWriter

	clock     timeutil.Clock
	done      chan struct{}
	closeOnce sync.Once
}

func newPipePort() *pipePort {
	r, w := io.Pipe()
	return &pipePort{
		r:     r,
		w:     w,
		clock: timeutil.RealClock{},
		done:  make(chan struct{}),
	}
}

// startFeed emits one line per interval until next reports it is done.
func (p *pipePort) startFeed(interval time.Duration, next func() (string, bool)) {
	go func() {
		ticker := p.clock.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-p.done:
				return
			case <-ticker.C():
			}
			line, ok := next()
			if !ok {
				p.w.Close() // reader sees EOF
				return
			}
			if _, err := p.w.Write([]byte(line + "\n")); err != nil {
				return // reader side went away
			}
		}
	}()
}

func (p *pipePort) Read(b []byte) (int, error) { return p.r.Read(b) }

func (p *pipePort) Close() error {
	p.closeOnce.Do(func() {
		close(p.done)
		// Closing the write side unblocks a feeder stuck in Write and
		// gives readers a clean EOF, the same path as end of playback.
		p.w.Close()
	})
	return nil
}

// ReplayPort implements SerialPorter by playing a recorded capture file back
// at a fixed line rate, so the full pipeline can run against a saved session.
type ReplayPort struct {
	*pipePort
	lineCount int
}

// NewReplayPort opens a capture file for playback. lineRate is lines per
// second; a value <= 0 selects DefaultReplayRate. With loop set, playback
// restarts from the top after the last line; otherwise the port reads EOF.
func NewReplayPort(path string, lineRate float64, loop bool) (*ReplayPort, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read replay file: %w", err)
	}

	lines := splitCaptureLines(string(data))
	if len(lines) == 0 {
		return nil, fmt.Errorf("replay file %s contains no lines", path)
	}

	if lineRate <= 0 {
		lineRate = DefaultReplayRate
	}
	interval := time.Duration(float64(time.Second) / lineRate)

	rp := &ReplayPort{
		pipePort:  newPipePort(),
		lineCount: len(lines),
	}

	idx := 0
	rp.startFeed(interval, func() (string, bool) {
		if idx >= len(lines) {
			if !loop {
				return "", false
			}
			idx = 0
		}
		line := lines[idx]
		idx++
		return line, true
	})

	return rp, nil
}

// LineCount returns the number of lines loaded from the capture file.
func (p *ReplayPort) LineCount() int { return p.lineCount }

// splitCaptureLines splits recorded capture text into lines, tolerating CRLF
// endings and dropping blank lines.
func splitCaptureLines(data string) []string {
	var lines []string
	for _, line := range strings.Split(data, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}
