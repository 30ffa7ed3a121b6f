package telemetry

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/relabs-tech/sensory_ball/internal/motion"
)

var base = time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

func TestDistressSendsImmediately(t *testing.T) {
	a := NewAggregator(zap.NewNop())

	require.Equal(t, SendDistress, a.Decide(true, base))
}

func TestDistressCooldown(t *testing.T) {
	a := NewAggregator(zap.NewNop())

	require.Equal(t, SendDistress, a.Decide(true, base))
	require.Equal(t, SendNone, a.Decide(true, base.Add(500*time.Millisecond)))
	require.Equal(t, SendNone, a.Decide(true, base.Add(Cooldown)))
	require.Equal(t, SendDistress, a.Decide(true, base.Add(Cooldown+time.Millisecond)))
}

func TestPeriodicHeartbeat(t *testing.T) {
	a := NewAggregator(zap.NewNop())

	// First tick arms the timer rather than firing an empty report.
	require.Equal(t, SendNone, a.Decide(false, base))
	require.Equal(t, SendNone, a.Decide(false, base.Add(PeriodicInterval-time.Millisecond)))
	require.Equal(t, SendPeriodic, a.Decide(false, base.Add(PeriodicInterval)))

	// And again a full period later.
	require.Equal(t, SendNone, a.Decide(false, base.Add(PeriodicInterval+time.Second)))
	require.Equal(t, SendPeriodic, a.Decide(false, base.Add(2*PeriodicInterval)))
}

func TestDistressResetsPeriodicTimer(t *testing.T) {
	a := NewAggregator(zap.NewNop())

	require.Equal(t, SendNone, a.Decide(false, base))
	at := base.Add(PeriodicInterval - time.Second)
	require.Equal(t, SendDistress, a.Decide(true, at))

	// The heartbeat restarts from the distress send, so the originally
	// scheduled tick stays quiet.
	require.Equal(t, SendNone, a.Decide(false, base.Add(PeriodicInterval)))
	require.Equal(t, SendPeriodic, a.Decide(false, at.Add(PeriodicInterval)))
}

func TestSummaryAndFlush(t *testing.T) {
	a := NewAggregator(zap.NewNop())

	a.Record(motion.Rocking, 2.0)
	a.Record(motion.Rocking, 4.0)
	a.Record(motion.Impact, 6.0)
	a.Record(motion.None, 0.0) // None pressure sample still recorded

	mode, mean := a.Summary()
	require.Equal(t, motion.Rocking, mode)
	require.InDelta(t, 3.0, mean, 1e-9)

	a.Flush()
	mode, mean = a.Summary()
	require.Equal(t, motion.None, mode)
	require.Zero(t, mean)
}
