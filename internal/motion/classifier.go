package motion

import (
	"time"

	"github.com/relabs-tech/sensory_ball/internal/imu"
)

// Classifier runs the seven motion detectors in fixed priority order and
// emits exactly one label per tick: the first detector that fires wins,
// and lower-priority detectors are not consulted on that tick. Each
// detector keeps its own windowed state between ticks.
type Classifier struct {
	impact  impactDetector
	bounce  bounceDetector
	fall    freeFallDetector
	shake   shakeDetector
	spin    spinDetector
	rock    rockDetector
	tremble trembleDetector
}

func NewClassifier() *Classifier {
	return &Classifier{rock: newRockDetector()}
}

// Classify consumes one raw sample and returns this tick's label.
func (c *Classifier) Classify(s imu.Sample, now time.Time) Label {
	switch {
	case c.impact.update(s, now):
		return Impact
	case c.bounce.update(s, now):
		return Bounce
	case c.fall.update(s, now):
		return FreeFall
	case c.shake.update(s, now):
		return ViolentShake
	case c.spin.update(s, now):
		return Spinning
	case c.rock.update(s, now):
		return Rocking
	case c.tremble.update(s, now):
		return Tremble
	default:
		return None
	}
}
