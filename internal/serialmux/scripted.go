package serialmux

import (
	"errors"
	"io"
	"sync"
)

var errPortClosed = errors.New("serial port closed")

// ScriptedPort is an in-memory stand-in for the camera's serial device.
// Tests queue firmware output with Feed and the port plays it back through
// Read. The zero-value queue is empty; what happens when Read drains it is
// governed by Blocking.
type ScriptedPort struct {
	// Blocking holds Read open on an empty queue until more data arrives
	// or the port closes, the way a live port behaves between frames.
	// When unset, Read reports io.EOF once the queue drains.
	Blocking bool

	// ReadErr, once set, fails every subsequent Read.
	ReadErr error

	// Closed reports whether Close has been called.
	Closed bool

	// Flushes counts ResetInputBuffer calls.
	Flushes int

	mu      sync.Mutex
	wake    *sync.Cond
	pending []byte
}

// NewScriptedPort returns an empty port ready for Feed.
func NewScriptedPort() *ScriptedPort {
	p := &ScriptedPort{}
	p.wake = sync.NewCond(&p.mu)
	return p
}

// Feed queues bytes for Read to hand out, waking a blocked reader.
func (p *ScriptedPort) Feed(data []byte) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pending = append(p.pending, data...)
	p.wake.Broadcast()
}

// Buffered reports how many queued bytes Read has not consumed yet.
func (p *ScriptedPort) Buffered() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.pending)
}

// Read hands out queued bytes in order.
func (p *ScriptedPort) Read(b []byte) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for p.Blocking && len(p.pending) == 0 && !p.Closed && p.ReadErr == nil {
		p.wake.Wait()
	}

	switch {
	case p.ReadErr != nil:
		return 0, p.ReadErr
	case p.Closed:
		return 0, errPortClosed
	case len(p.pending) == 0:
		return 0, io.EOF
	}

	n := copy(b, p.pending)
	p.pending = p.pending[n:]
	return n, nil
}

// ResetInputBuffer drops everything queued, mirroring the input flush a
// real port performs while settling.
func (p *ScriptedPort) ResetInputBuffer() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Flushes++
	p.pending = nil
	return nil
}

// Close marks the port closed and releases any parked reader.
func (p *ScriptedPort) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Closed = true
	p.wake.Broadcast()
	return nil
}
