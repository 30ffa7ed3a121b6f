package pressure

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConvertBelowNoiseFloor(t *testing.T) {
	c := NewConverter()

	require.Zero(t, c.Convert(0))
	require.Zero(t, c.Convert(NoiseFloor-1))
}

func TestConvertClampsToMaxPSI(t *testing.T) {
	c := NewConverter()

	// Mid-scale readings correspond to a very hard squeeze; the model
	// saturates at the ceiling.
	require.Equal(t, MaxPSI, c.Convert(2048))
}

func TestConvertMonotonicInLowRange(t *testing.T) {
	c := NewConverter()

	// In the light-touch range more raw counts mean more pressure.
	low := c.Convert(60)
	high := c.Convert(90)
	require.Greater(t, low, 0.0)
	require.Greater(t, high, low)
}

func TestReadAveraged(t *testing.T) {
	c := NewConverter()

	psi := c.ReadAveraged(func() (int, error) { return 2048, nil })
	require.InDelta(t, MaxPSI, psi, 1e-9)
}

func TestReadAveragedTreatsErrorAsOpenCircuit(t *testing.T) {
	c := NewConverter()

	psi := c.ReadAveraged(func() (int, error) { return 0, errors.New("bus fault") })
	require.Zero(t, psi)
}

func TestReadAveragedMixesSamples(t *testing.T) {
	c := NewConverter()

	// Two saturated samples out of five: mean is 2/5 of the ceiling.
	calls := 0
	psi := c.ReadAveraged(func() (int, error) {
		calls++
		if calls <= 2 {
			return 2048, nil
		}
		return 0, nil
	})
	require.Equal(t, AverageSamples, calls)
	require.InDelta(t, MaxPSI*2/5, psi, 1e-9)
}
