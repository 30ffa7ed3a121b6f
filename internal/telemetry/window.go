package telemetry

import (
	"github.com/relabs-tech/sensory_ball/internal/motion"
)

// Window capacities, sized for a 5-second period at the ~50Hz loop rate.
// When a buffer fills, further recording simply stops until the next
// periodic flush; nothing is evicted.
const (
	maxMotionHistory   = 50
	maxPressureHistory = 250
)

// Window is the rolling aggregation window between periodic sends: a
// bounded motion-label histogram plus a bounded pressure-sample sequence.
type Window struct {
	motionCounts map[motion.Label]int
	motionTotal  int
	pressure     []float64
}

func NewWindow() *Window {
	return &Window{
		motionCounts: make(map[motion.Label]int),
		pressure:     make([]float64, 0, maxPressureHistory),
	}
}

// RecordMotion counts one non-None label. None is never recorded so real
// motion is not drowned out by hundreds of idle ticks.
func (w *Window) RecordMotion(l motion.Label) {
	if l == motion.None || w.motionTotal >= maxMotionHistory {
		return
	}
	w.motionCounts[l]++
	w.motionTotal++
}

// RecordPressure appends one max-channel pressure sample.
func (w *Window) RecordPressure(psi float64) {
	if len(w.pressure) >= maxPressureHistory {
		return
	}
	w.pressure = append(w.pressure, psi)
}

// DominantMotion returns the most frequent recorded label, or None when
// nothing was recorded in the window.
func (w *Window) DominantMotion() motion.Label {
	best := motion.None
	bestCount := 0
	for l, c := range w.motionCounts {
		if c > bestCount || (c == bestCount && l < best) {
			best = l
			bestCount = c
		}
	}
	return best
}

// MeanPressure returns the arithmetic mean of the recorded samples, or
// zero for an empty window.
func (w *Window) MeanPressure() float64 {
	if len(w.pressure) == 0 {
		return 0.0
	}
	total := 0.0
	for _, p := range w.pressure {
		total += p
	}
	return total / float64(len(w.pressure))
}

// MotionCount reports how many labels have been recorded.
func (w *Window) MotionCount() int {
	return w.motionTotal
}

// PressureCount reports how many pressure samples have been recorded.
func (w *Window) PressureCount() int {
	return len(w.pressure)
}

// Reset clears both buffers; called right after each periodic send.
func (w *Window) Reset() {
	w.motionCounts = make(map[motion.Label]int)
	w.motionTotal = 0
	w.pressure = w.pressure[:0]
}
