package grip

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// pump runs one grip-and-release cycle: two ticks of pressure above the
// pattern threshold followed by one tick of release. Returns the event
// of the grip-start tick.
func pump(s *Sequencer, psi float64, at time.Time) (PatternEvent, bool) {
	ev, fired := s.Update(psi, at)
	s.Update(psi, at.Add(20*time.Millisecond))
	s.Update(0.0, at.Add(40*time.Millisecond))
	return ev, fired
}

func TestSequencerCompletesOnFifthGrip(t *testing.T) {
	s := NewSequencer(zap.NewNop())
	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	for i := 0; i < PatternLength-1; i++ {
		_, fired := pump(s, 9.0, base.Add(time.Duration(i)*500*time.Millisecond))
		require.False(t, fired, "grip %d must not complete the pattern", i+1)
	}

	ev, fired := s.Update(9.0, base.Add(4*500*time.Millisecond))
	require.True(t, fired)
	require.Equal(t, Tantrum, ev.Dominant)
	for _, g := range ev.Grips {
		require.Equal(t, Tantrum, g)
	}
}

func TestSequencerLongGapResets(t *testing.T) {
	s := NewSequencer(zap.NewNop())
	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	// Three grips, then a pause longer than MaxGap.
	for i := 0; i < 3; i++ {
		pump(s, 9.0, base.Add(time.Duration(i)*500*time.Millisecond))
	}
	resume := base.Add(10 * time.Second)

	// The stale sequence is discarded: five fresh grips are needed again.
	for i := 0; i < PatternLength-1; i++ {
		_, fired := pump(s, 9.0, resume.Add(time.Duration(i)*500*time.Millisecond))
		require.False(t, fired)
	}
	_, fired := s.Update(9.0, resume.Add(4*500*time.Millisecond))
	require.True(t, fired)
}

func TestSequencerIgnoresSoftGrips(t *testing.T) {
	s := NewSequencer(zap.NewNop())
	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	// Pressure below the pattern threshold never advances the sequence.
	for i := 0; i < 3*PatternLength; i++ {
		_, fired := pump(s, 5.0, base.Add(time.Duration(i)*300*time.Millisecond))
		require.False(t, fired)
	}
}

func TestSequencerSustainedHoldCountsOnce(t *testing.T) {
	s := NewSequencer(zap.NewNop())
	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	// One long hold is one grip, no matter how many ticks it spans.
	for i := 0; i < 100; i++ {
		_, fired := s.Update(12.0, base.Add(time.Duration(i)*20*time.Millisecond))
		require.False(t, fired)
	}
}

func TestDominantSeverity(t *testing.T) {
	cases := []struct {
		name  string
		grips [PatternLength]Severity
		want  Severity
	}{
		{"all stressed", [PatternLength]Severity{Stressed, Stressed, Stressed, Stressed, Stressed}, Stressed},
		{"one tantrum stays stressed", [PatternLength]Severity{Stressed, Tantrum, Stressed, Stressed, Stressed}, Stressed},
		{"two tantrums flip", [PatternLength]Severity{Tantrum, Stressed, Tantrum, Stressed, Stressed}, Tantrum},
		{"all tantrum", [PatternLength]Severity{Tantrum, Tantrum, Tantrum, Tantrum, Tantrum}, Tantrum},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, dominantSeverity(tc.grips))
		})
	}
}

func TestSequencerBackToBackPatterns(t *testing.T) {
	s := NewSequencer(zap.NewNop())
	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	fire := 0
	for i := 0; i < 2*PatternLength; i++ {
		_, fired := pump(s, 9.0, base.Add(time.Duration(i)*500*time.Millisecond))
		if fired {
			fire++
		}
	}
	require.Equal(t, 2, fire)
}
