package telemetry

import (
	"time"

	"go.uber.org/zap"

	"github.com/relabs-tech/sensory_ball/internal/motion"
)

const (
	// Cooldown is the minimum spacing after any transmission before a
	// distress send may fire.
	Cooldown = 1000 * time.Millisecond

	// PeriodicInterval is the heartbeat period for aggregated reports.
	PeriodicInterval = 5000 * time.Millisecond
)

// SendKind is the aggregator's per-tick transmission decision.
type SendKind int

const (
	SendNone     SendKind = iota
	SendDistress          // immediate: instantaneous values + alert marker
	SendPeriodic          // heartbeat: window mode + mean
)

// Aggregator owns the rolling window and the shared rate gate. A single
// lastSend timestamp gates both paths, and a distress send resets the
// periodic timer, so the two paths can never fire on the same tick and
// a heartbeat never follows a distress send by less than a full period.
type Aggregator struct {
	window       *Window
	lastSend     time.Time
	lastPeriodic time.Time
	logger       *zap.Logger
}

func NewAggregator(logger *zap.Logger) *Aggregator {
	return &Aggregator{
		window: NewWindow(),
		logger: logger,
	}
}

// Record adds this tick's motion label and max-channel pressure to the
// aggregation window.
func (a *Aggregator) Record(l motion.Label, psi float64) {
	a.window.RecordMotion(l)
	a.window.RecordPressure(psi)
}

// Decide makes the per-tick transmission decision. distress is true when
// the sequencer or the debouncer produced an event this tick.
func (a *Aggregator) Decide(distress bool, now time.Time) SendKind {
	if a.lastPeriodic.IsZero() {
		// First tick: arm the heartbeat timer instead of firing an
		// empty report at boot.
		a.lastPeriodic = now
	}

	if distress {
		if a.lastSend.IsZero() || now.Sub(a.lastSend) > Cooldown {
			a.lastSend = now
			a.lastPeriodic = now
			return SendDistress
		}
		a.logger.Debug("distress event suppressed by cooldown",
			zap.Duration("since_last_send", now.Sub(a.lastSend)),
		)
		return SendNone
	}

	if now.Sub(a.lastPeriodic) >= PeriodicInterval {
		a.lastSend = now
		a.lastPeriodic = now
		return SendPeriodic
	}

	return SendNone
}

// Summary returns the window's dominant motion label and mean pressure
// for a periodic report.
func (a *Aggregator) Summary() (motion.Label, float64) {
	return a.window.DominantMotion(), a.window.MeanPressure()
}

// Flush clears the aggregation window after a periodic send.
func (a *Aggregator) Flush() {
	a.window.Reset()
}

// Window exposes the rolling window for inspection.
func (a *Aggregator) Window() *Window {
	return a.window
}
