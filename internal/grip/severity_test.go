package grip

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClassifyBreakpoints(t *testing.T) {
	cases := []struct {
		psi  float64
		want Severity
	}{
		{0.0, None},
		{0.09, None},
		{0.1, Calm},
		{0.49, Calm},
		{0.5, Moderate},
		{3.99, Moderate},
		{4.0, Stressed},
		{7.99, Stressed},
		{8.0, Tantrum},
		{30.0, Tantrum},
	}

	for _, tc := range cases {
		require.Equal(t, tc.want, Classify(tc.psi), "psi=%v", tc.psi)
	}
}

func TestSeverityOrdering(t *testing.T) {
	require.True(t, None < Calm)
	require.True(t, Calm < Moderate)
	require.True(t, Moderate < Stressed)
	require.True(t, Stressed < Tantrum)
}

func TestDistress(t *testing.T) {
	require.False(t, None.Distress())
	require.False(t, Calm.Distress())
	require.False(t, Moderate.Distress())
	require.True(t, Stressed.Distress())
	require.True(t, Tantrum.Distress())
}
