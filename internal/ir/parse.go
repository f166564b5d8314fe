// Package ir defines the telemetry model for the Pixart IR tracking camera.
// This file implements the fixed-format line parser.
package ir

import (
	"fmt"
	"strconv"
	"strings"
)

// framePrefix marks a telemetry line. Anything else on the wire is freeform
// debug output from the firmware.
const framePrefix = "IR,"

// frameFieldCount is tag + timestamp + 4 slots of (x, y, size).
const frameFieldCount = 14

var (
	ErrFrameTag   = fmt.Errorf("first field is not IR")
	ErrFieldCount = fmt.Errorf("expected %d comma-separated fields", frameFieldCount)
)

// IsFrameLine reports whether a raw line carries IR telemetry. Lines without
// the prefix must never reach ParseFrame; they are debug messages.
func IsFrameLine(line string) bool {
	return strings.HasPrefix(line, framePrefix)
}

// ParseFrame parses one telemetry line into a Frame. Any malformed field
// rejects the whole line; a partial frame is never returned. A slot whose x
// or y is negative is recorded as absent (nil), which is how the firmware
// marks an untracked slot.
func ParseFrame(line string) (*Frame, error) {
	parts := strings.Split(strings.TrimSpace(line), ",")
	if parts[0] != "IR" {
		return nil, ErrFrameTag
	}
	if len(parts) != frameFieldCount {
		return nil, fmt.Errorf("%w, got %d", ErrFieldCount, len(parts))
	}

	ts, err := strconv.ParseInt(strings.TrimSpace(parts[1]), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("bad timestamp %q: %w", parts[1], err)
	}

	frame := &Frame{Timestamp: ts}
	for slot := 0; slot < NumSlots; slot++ {
		base := 2 + slot*3
		x, err := parseField(parts[base])
		if err != nil {
			return nil, fmt.Errorf("slot %d x: %w", slot, err)
		}
		y, err := parseField(parts[base+1])
		if err != nil {
			return nil, fmt.Errorf("slot %d y: %w", slot, err)
		}
		size, err := parseField(parts[base+2])
		if err != nil {
			return nil, fmt.Errorf("slot %d size: %w", slot, err)
		}
		if x >= 0 && y >= 0 {
			frame.Points[slot] = &Point{X: x, Y: y, Size: size, Slot: slot}
		}
	}
	return frame, nil
}

func parseField(s string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("bad integer %q", s)
	}
	return v, nil
}
