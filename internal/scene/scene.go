// Package scene holds the mutable application state behind the live view:
// per-slot trails, the current point set, the debug message log, and session
// counters. A Scene is owned by the render goroutine and is not safe for
// concurrent use.
package scene

import (
	"strings"

	"github.com/banshee-data/irview/internal/diag"
	"github.com/banshee-data/irview/internal/ir"
)

const (
	// DefaultTrailLen is how many recent positions each slot retains.
	DefaultTrailLen = 50
	// MessageLogLen is how many debug messages are kept for display.
	MessageLogLen = 10
)

// XY is one position in sensor coordinates.
type XY struct {
	X int
	Y int
}

// Scene is the complete state driving one visualizer session.
type Scene struct {
	Width  int // sensor width in pixels, plot bound
	Height int // sensor height in pixels, plot bound

	trails   [ir.NumSlots][]XY
	trailLen int
	current  [ir.NumSlots]*XY
	messages []string
	stats    [ir.NumSlots]slotAccumulator

	// Session counters, monotonic per run.
	LinesSeen      uint64
	FramesIngested uint64
	FramesRejected uint64
	MessagesSeen   uint64

	// LastTimestamp is the device tick of the most recent ingested frame.
	LastTimestamp int64
}

// NewScene creates an empty scene for the given sensor bounds. trailLen <= 0
// selects DefaultTrailLen.
func NewScene(width, height, trailLen int) *Scene {
	if trailLen <= 0 {
		trailLen = DefaultTrailLen
	}
	return &Scene{
		Width:    width,
		Height:   height,
		trailLen: trailLen,
	}
}

// IngestLine classifies one raw serial line and applies it to the scene.
// Frame lines go through the parser; anything else is debug text. Invalid
// byte sequences are replaced rather than rejected, matching how the firmware
// occasionally garbles its boot output.
func (s *Scene) IngestLine(raw string) {
	s.LinesSeen++
	line := strings.ToValidUTF8(raw, "�")

	if ir.IsFrameLine(line) {
		frame, err := ir.ParseFrame(line)
		if err != nil {
			s.FramesRejected++
			diag.Logf("rejected frame line: %v", err)
			return
		}
		s.Ingest(frame)
		return
	}
	s.AddMessage(line)
}

// Ingest applies one parsed frame. Present slots overwrite the current point
// and extend the trail; absent slots clear the current point but leave the
// trail untouched.
func (s *Scene) Ingest(frame *ir.Frame) {
	for slot, p := range frame.Points {
		if p == nil {
			s.current[slot] = nil
			continue
		}
		pos := XY{X: p.X, Y: p.Y}
		s.current[slot] = &pos
		s.trails[slot] = append(s.trails[slot], pos)
		if len(s.trails[slot]) > s.trailLen {
			s.trails[slot] = s.trails[slot][len(s.trails[slot])-s.trailLen:]
		}
		s.stats[slot].observe(pos)
	}
	s.FramesIngested++
	s.LastTimestamp = frame.Timestamp
}

// AddMessage appends one debug message, trimmed of surrounding whitespace.
// Empty messages are dropped silently. Only the most recent MessageLogLen
// messages are retained.
func (s *Scene) AddMessage(line string) {
	msg := strings.TrimSpace(line)
	if msg == "" {
		return
	}
	s.messages = append(s.messages, msg)
	if len(s.messages) > MessageLogLen {
		s.messages = s.messages[len(s.messages)-MessageLogLen:]
	}
	s.MessagesSeen++
}

// Current returns the slot's current position, if the camera reported it in
// the most recent frame.
func (s *Scene) Current(slot int) (XY, bool) {
	if p := s.current[slot]; p != nil {
		return *p, true
	}
	return XY{}, false
}

// Trail returns the slot's position history, oldest first. The returned
// slice is the live backing store; callers must not modify it.
func (s *Scene) Trail(slot int) []XY {
	return s.trails[slot]
}

// Messages returns the retained debug messages, oldest first. The returned
// slice is the live backing store; callers must not modify it.
func (s *Scene) Messages() []string {
	return s.messages
}

// ActiveCount returns how many slots carry a current point.
func (s *Scene) ActiveCount() int {
	n := 0
	for _, p := range s.current {
		if p != nil {
			n++
		}
	}
	return n
}
