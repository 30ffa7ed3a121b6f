package telemetry

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/relabs-tech/sensory_ball/internal/motion"
)

func TestWindowDominantMotion(t *testing.T) {
	w := NewWindow()

	w.RecordMotion(motion.Bounce)
	w.RecordMotion(motion.Tremble)
	w.RecordMotion(motion.Bounce)
	require.Equal(t, motion.Bounce, w.DominantMotion())
}

func TestWindowNeverCountsNone(t *testing.T) {
	w := NewWindow()

	for i := 0; i < 10; i++ {
		w.RecordMotion(motion.None)
	}
	w.RecordMotion(motion.Spinning)

	require.Equal(t, 1, w.MotionCount())
	require.Equal(t, motion.Spinning, w.DominantMotion())
}

func TestWindowTieBreaksOnPriority(t *testing.T) {
	w := NewWindow()

	w.RecordMotion(motion.Rocking)
	w.RecordMotion(motion.Impact)
	require.Equal(t, motion.Impact, w.DominantMotion())
}

func TestWindowStopsRecordingWhenFull(t *testing.T) {
	w := NewWindow()

	for i := 0; i < maxMotionHistory; i++ {
		w.RecordMotion(motion.Tremble)
	}
	// The buffer is full: later labels are dropped, not evicted.
	for i := 0; i < 20; i++ {
		w.RecordMotion(motion.Impact)
	}

	require.Equal(t, maxMotionHistory, w.MotionCount())
	require.Equal(t, motion.Tremble, w.DominantMotion())

	for i := 0; i < maxPressureHistory; i++ {
		w.RecordPressure(1.0)
	}
	w.RecordPressure(100.0)

	require.Equal(t, maxPressureHistory, w.PressureCount())
	require.InDelta(t, 1.0, w.MeanPressure(), 1e-9)
}

func TestWindowEmpty(t *testing.T) {
	w := NewWindow()

	require.Equal(t, motion.None, w.DominantMotion())
	require.Zero(t, w.MeanPressure())
}

func TestWindowReset(t *testing.T) {
	w := NewWindow()

	w.RecordMotion(motion.Impact)
	w.RecordPressure(5.0)
	w.Reset()

	require.Zero(t, w.MotionCount())
	require.Zero(t, w.PressureCount())
	require.Equal(t, motion.None, w.DominantMotion())
}
