// Package serialmux reads a serial device line by line and fans the lines
// out to any number of subscribers. It also provides the hardware-free
// ports (demo, replay, scripted) that stand in for the camera when no
// device is attached.
package serialmux

import (
	"bufio"
	"context"
	crand "crypto/rand"
	"encoding/hex"
	"sync"
)

// subscriberBuffer is the per-subscriber channel depth. The render loop
// drains its channel every tick, so the buffer only needs to absorb one
// tick's worth of telemetry; at 115200 baud that is a handful of lines.
const subscriberBuffer = 256

// LineMux reads lines from a single serial port and delivers each one to
// every subscriber.
type LineMux[T SerialPorter] struct {
	port T

	subsMu sync.Mutex
	subs   map[string]chan string

	closingMu sync.Mutex
	closing   bool
}

// NewLineMux creates a LineMux instance backed by the given port.
func NewLineMux[T SerialPorter](port T) *LineMux[T] {
	return &LineMux[T]{
		port: port,
		subs: make(map[string]chan string),
	}
}

// newSubID generates a subscriber ID (8 random bytes, hex encoded).
func newSubID() string {
	b := make([]byte, 8)
	crand.Read(b)
	return hex.EncodeToString(b)
}

// Subscribe registers a new channel for receiving lines and returns it with
// the ID used to unsubscribe. The channel is buffered: a subscriber that
// drains it periodically receives every line buffered since its last drain,
// and lines beyond the buffer are dropped rather than blocking the reader.
func (s *LineMux[T]) Subscribe() (string, chan string) {
	id := newSubID()
	ch := make(chan string, subscriberBuffer)
	s.subsMu.Lock()
	defer s.subsMu.Unlock()
	s.subs[id] = ch
	return id, ch
}

// Unsubscribe removes a subscriber and closes its channel. Unknown IDs are
// a no-op.
func (s *LineMux[T]) Unsubscribe(id string) {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()
	if ch, ok := s.subs[id]; ok {
		close(ch)
		delete(s.subs, id)
	}
}

// Monitor reads the port line by line and fans each line out to subscribers.
// It returns when the context is cancelled, the port reaches EOF, Close is
// called, or the scanner fails.
func (s *LineMux[T]) Monitor(ctx context.Context) error {
	scan := bufio.NewScanner(s.port)

	lineChan := make(chan string)
	scanErrChan := make(chan error, 1)

	// The blocking scan.Scan runs in its own goroutine so it cannot
	// interfere with the outer loop awaiting lines and context
	// cancellation.
	go func() {
		defer close(lineChan)
		for scan.Scan() {
			select {
			case lineChan <- scan.Text():
			case <-ctx.Done():
				return
			}
		}
		if err := scan.Err(); err != nil {
			select {
			case scanErrChan <- err:
			case <-ctx.Done():
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case err := <-scanErrChan:
			return err

		case line, ok := <-lineChan:
			// a closed channel means the port reached EOF
			if !ok {
				if err := scan.Err(); err != nil {
					return err
				}
				return nil
			}
			s.closingMu.Lock()
			if s.closing {
				s.closingMu.Unlock()
				return nil
			}
			s.closingMu.Unlock()

			s.fanOut(line)
		}
	}
}

// fanOut delivers one line to every subscriber, skipping any whose buffer
// is full so a stalled consumer cannot block the reader.
func (s *LineMux[T]) fanOut(line string) {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()
	for _, ch := range s.subs {
		select {
		case ch <- line:
		default:
		}
	}
}

// Close closes every subscriber channel and then the port itself. Closing
// the port unblocks a Monitor stuck in a read.
func (s *LineMux[T]) Close() error {
	s.closingMu.Lock()
	s.closing = true
	s.closingMu.Unlock()

	s.subsMu.Lock()
	defer s.subsMu.Unlock()
	for id, ch := range s.subs {
		close(ch)
		delete(s.subs, id)
	}
	return s.port.Close()
}
