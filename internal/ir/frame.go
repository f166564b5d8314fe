// Package ir defines the telemetry model for the Pixart IR tracking camera.
// This file defines the canonical frame model that drives all outputs.
package ir

// NumSlots is the number of point slots the camera reports per frame. The
// sensor tracks up to four blobs and always emits all four slots.
const NumSlots = 4

// Point is one tracked IR blob in sensor coordinates. Slot identifies which
// of the four hardware tracking slots produced it; the camera never reassigns
// a blob between slots, so slot 0 is always "point 1".
type Point struct {
	X    int
	Y    int
	Size int // reported blob size, recorded but not interpreted
	Slot int
}

// Frame is a single fully parsed telemetry update. Points is indexed by slot;
// a nil entry means the camera reported that slot absent for this frame.
// Frames are immutable once constructed.
type Frame struct {
	Timestamp int64 // device tick count, wraps at the device's discretion
	Points    [NumSlots]*Point
}

// PresentCount returns the number of slots carrying a point.
func (f *Frame) PresentCount() int {
	n := 0
	for _, p := range f.Points {
		if p != nil {
			n++
		}
	}
	return n
}
