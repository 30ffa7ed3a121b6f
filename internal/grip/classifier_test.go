package grip

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClassifierNeedsConfirmation(t *testing.T) {
	c := NewClassifier()

	// Four identical detections are not enough.
	for i := 0; i < ConfirmCount-1; i++ {
		changed, sev := c.Update(9.0, 0.0)
		require.False(t, changed)
		require.Equal(t, None, sev)
	}

	changed, sev := c.Update(9.0, 0.0)
	require.True(t, changed)
	require.Equal(t, Tantrum, sev)
	require.Equal(t, Tantrum, c.Current())
}

func TestClassifierSpikeDoesNotFlip(t *testing.T) {
	c := NewClassifier()

	for i := 0; i < ConfirmCount; i++ {
		c.Update(1.0, 0.0) // Moderate
	}
	require.Equal(t, Moderate, c.Current())

	// A one-tick tantrum spike must not change the published state.
	changed, sev := c.Update(25.0, 0.0)
	require.False(t, changed)
	require.Equal(t, Moderate, sev)

	// Returning to the held grip restarts the tantrum count from scratch.
	for i := 0; i < ConfirmCount-1; i++ {
		c.Update(1.0, 0.0)
	}
	require.Equal(t, Moderate, c.Current())
}

func TestClassifierTakesMaxChannel(t *testing.T) {
	c := NewClassifier()

	for i := 0; i < ConfirmCount; i++ {
		c.Update(0.0, 5.0)
	}
	require.Equal(t, Stressed, c.Current())
}

func TestClassifierNoChangeEventWhenStable(t *testing.T) {
	c := NewClassifier()

	for i := 0; i < ConfirmCount; i++ {
		c.Update(5.0, 0.0)
	}
	require.Equal(t, Stressed, c.Current())

	// Staying in the same state never re-raises the change event.
	for i := 0; i < 3*ConfirmCount; i++ {
		changed, _ := c.Update(5.0, 0.0)
		require.False(t, changed)
	}
}
