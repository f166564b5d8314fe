// Package ir defines the telemetry model for the Pixart IR tracking camera.
// This file provides synthetic telemetry generation for demos and testing.
package ir

import (
	"fmt"
	"math"
	"math/rand"
	"strconv"
	"strings"
	"sync/atomic"
	"time"
)

// SyntheticGenerator emits camera-shaped telemetry lines without hardware:
// up to four blobs on circular paths with per-slot dropouts, plus occasional
// firmware-style debug messages.
type SyntheticGenerator struct {
	frame   atomic.Int64
	startNs int64

	// Configuration
	Width        int     // sensor width in pixels
	Height       int     // sensor height in pixels
	BlobCount    int     // active slots, at most NumSlots
	OrbitRadius  float64 // pixels, radius of blob circular paths
	BlobSpeedPPS float64 // pixels per second along the path
	DropoutEvery int     // a slot blinks out roughly every N frames
	MessageEvery int     // a debug message replaces every Nth frame

	rng *rand.Rand
}

// NewSyntheticGenerator creates a generator tuned to the camera's native
// 1024x768 sensor space.
func NewSyntheticGenerator() *SyntheticGenerator {
	return &SyntheticGenerator{
		startNs:      time.Now().UnixNano(),
		Width:        1024,
		Height:       768,
		BlobCount:    NumSlots,
		OrbitRadius:  260.0,
		BlobSpeedPPS: 180.0,
		DropoutEvery: 97,
		MessageEvery: 400,
		rng:          rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Debug chatter shaped like the wand firmware's real serial output.
var syntheticMessages = []string{
	"STATE: Ready timeout",
	"SPELL: Too short",
	"SPELL: No match (best: lumos 41.37%)",
	"Loaded and resampled 25 spell patterns",
	"Attempting MQTT connection...",
}

// NextLine generates the next telemetry line. Most calls return a well-formed
// frame line; every MessageEvery-th call returns a debug message instead, the
// way real firmware interleaves its boot and status output with telemetry.
func (g *SyntheticGenerator) NextLine() string {
	n := g.frame.Add(1)

	if g.MessageEvery > 0 && n%int64(g.MessageEvery) == 0 {
		return syntheticMessages[int(n/int64(g.MessageEvery))%len(syntheticMessages)]
	}

	now := time.Now().UnixNano()
	elapsed := float64(now-g.startNs) / 1e9 // seconds
	ts := (now - g.startNs) / 1e6           // device tick, milliseconds

	cx := float64(g.Width) / 2
	cy := float64(g.Height) / 2

	fields := make([]string, 0, frameFieldCount)
	fields = append(fields, "IR", strconv.FormatInt(ts, 10))

	for slot := 0; slot < NumSlots; slot++ {
		if slot >= g.BlobCount || g.slotDropped(n, slot) {
			// the firmware marks an untracked slot with -1 in every field
			fields = append(fields, "-1", "-1", "-1")
			continue
		}

		// Position on circular path, offset per slot
		baseAngle := float64(slot) * 2 * math.Pi / float64(NumSlots)
		angularSpeed := g.BlobSpeedPPS / g.OrbitRadius
		angle := baseAngle + elapsed*angularSpeed

		x := g.clampX(int(cx + g.OrbitRadius*math.Cos(angle) + float64(g.rng.Intn(5)-2)))
		y := g.clampY(int(cy + g.OrbitRadius*math.Sin(angle) + float64(g.rng.Intn(5)-2)))
		size := 40 + g.rng.Intn(30)

		fields = append(fields, strconv.Itoa(x), strconv.Itoa(y), strconv.Itoa(size))
	}

	return strings.Join(fields, ",")
}

// slotDropped simulates the camera losing a blob for a short burst of frames.
func (g *SyntheticGenerator) slotDropped(frame int64, slot int) bool {
	if g.DropoutEvery <= 0 {
		return false
	}
	return (frame+int64(slot*31))%int64(g.DropoutEvery) < 6
}

func (g *SyntheticGenerator) clampX(x int) int {
	if x < 0 {
		return 0
	}
	if x >= g.Width {
		return g.Width - 1
	}
	return x
}

func (g *SyntheticGenerator) clampY(y int) int {
	if y < 0 {
		return 0
	}
	if y >= g.Height {
		return g.Height - 1
	}
	return y
}

// FrameCount returns the number of lines generated so far.
func (g *SyntheticGenerator) FrameCount() int64 {
	return g.frame.Load()
}

// String describes the generator configuration for startup logging.
func (g *SyntheticGenerator) String() string {
	return fmt.Sprintf("synthetic %dx%d blobs=%d orbit=%.0fpx speed=%.0fpx/s",
		g.Width, g.Height, g.BlobCount, g.OrbitRadius, g.BlobSpeedPPS)
}
