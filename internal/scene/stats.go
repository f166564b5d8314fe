// Package scene holds the mutable application state behind the live view.
// This file accumulates per-slot position statistics for the session summary.
package scene

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// slotAccumulator records every observed position for one slot so the session
// summary can report where the blob sat and how much it wandered.
type slotAccumulator struct {
	xs []float64
	ys []float64
}

func (a *slotAccumulator) observe(p XY) {
	a.xs = append(a.xs, float64(p.X))
	a.ys = append(a.ys, float64(p.Y))
}

// SlotSummary describes one slot's position distribution over the session.
type SlotSummary struct {
	Count  int     // positions observed
	MeanX  float64 // mean position, sensor coordinates
	MeanY  float64
	StdX   float64 // positional spread per axis
	StdY   float64
	Jitter float64 // radial spread, hypot of the per-axis spreads
}

// SlotStats computes the slot's session statistics. A slot observed fewer
// than two times reports zero spread.
func (s *Scene) SlotStats(slot int) SlotSummary {
	a := &s.stats[slot]
	sum := SlotSummary{Count: len(a.xs)}
	if sum.Count == 0 {
		return sum
	}

	sum.MeanX = stat.Mean(a.xs, nil)
	sum.MeanY = stat.Mean(a.ys, nil)
	if sum.Count > 1 {
		sum.StdX = stat.StdDev(a.xs, nil)
		sum.StdY = stat.StdDev(a.ys, nil)
		sum.Jitter = math.Hypot(sum.StdX, sum.StdY)
	}
	return sum
}
