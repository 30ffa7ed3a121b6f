package motion

import (
	"math"
	"time"

	"github.com/relabs-tech/sensory_ball/internal/imu"
)

// Detection thresholds, tuned for a ball toy: significant motion only.
const (
	impactThreshold = 38000 // accel magnitude, raw units

	bounceThreshold  = 28000 // vertical accel
	bounceRequired   = 3
	bounceWindow     = 1000 * time.Millisecond
	bounceRefractory = 200 * time.Millisecond

	freeFallThreshold = 1500 // magnitude near zero-g
	freeFallDuration  = 150 * time.Millisecond

	shakeThreshold = 15000 // tick-to-tick magnitude delta
	shakeRequired  = 12
	shakeWindow    = 1000 * time.Millisecond

	spinThreshold = 25000 // gyro z magnitude
	spinDuration  = 500 * time.Millisecond

	tiltThreshold = 12000 // lateral accel for rocking
	rockRequired  = 4
	rockWindow    = 1500 * time.Millisecond

	trembleMin      = 6000  // delta band: above tremble floor...
	trembleMax      = 14000 // ...but below a violent shake
	trembleRequired = 18
	trembleWindow   = 800 * time.Millisecond
	trembleSpacing  = 30 * time.Millisecond
)

// Each detector owns the timers and counters its windowed logic needs.
// Detectors never share state; one firing does not reset another.

type impactDetector struct{}

func (d *impactDetector) update(s imu.Sample, _ time.Time) bool {
	return s.Magnitude() > impactThreshold
}

type bounceDetector struct {
	count     int
	lastCount time.Time
}

func (d *bounceDetector) update(s imu.Sample, now time.Time) bool {
	if now.Sub(d.lastCount) > bounceWindow {
		d.count = 0
	}
	if s.Az > bounceThreshold {
		if now.Sub(d.lastCount) > bounceRefractory {
			d.count++
			d.lastCount = now
		}
	}
	if d.count >= bounceRequired {
		d.count = 0
		return true
	}
	return false
}

type freeFallDetector struct {
	fallStart time.Time
}

func (d *freeFallDetector) update(s imu.Sample, now time.Time) bool {
	if s.Magnitude() < freeFallThreshold {
		if d.fallStart.IsZero() {
			d.fallStart = now
		} else if now.Sub(d.fallStart) > freeFallDuration {
			return true
		}
	} else {
		d.fallStart = time.Time{}
	}
	return false
}

type shakeDetector struct {
	lastMag   float64
	count     int
	lastCount time.Time
}

func (d *shakeDetector) update(s imu.Sample, now time.Time) bool {
	mag := s.Magnitude()
	delta := math.Abs(mag - d.lastMag)
	d.lastMag = mag

	if now.Sub(d.lastCount) > shakeWindow {
		d.count = 0
	}
	if delta > shakeThreshold {
		d.count++
		d.lastCount = now
	}
	if d.count >= shakeRequired {
		d.count = 0
		return true
	}
	return false
}

type spinDetector struct {
	spinStart time.Time
}

func (d *spinDetector) update(s imu.Sample, now time.Time) bool {
	gz := int(s.Gz)
	if gz < 0 {
		gz = -gz
	}
	if gz > spinThreshold {
		if d.spinStart.IsZero() {
			d.spinStart = now
		}
		if now.Sub(d.spinStart) > spinDuration {
			d.spinStart = time.Time{}
			return true
		}
	} else {
		d.spinStart = time.Time{}
	}
	return false
}

type rockDetector struct {
	count       int
	lastCross   time.Time
	wasPositive bool
}

func newRockDetector() rockDetector {
	return rockDetector{wasPositive: true}
}

func (d *rockDetector) update(s imu.Sample, now time.Time) bool {
	if now.Sub(d.lastCross) > rockWindow {
		d.count = 0
	}

	isPositive := s.Ax > tiltThreshold
	isNegative := s.Ax < -tiltThreshold

	if (d.wasPositive && isNegative) || (!d.wasPositive && isPositive) {
		d.count++
		d.lastCross = now
		d.wasPositive = isPositive
	}

	if d.count >= rockRequired {
		d.count = 0
		return true
	}
	return false
}

type trembleDetector struct {
	lastMag    float64
	count      int
	lastActive time.Time // last tick that kept the window alive
	lastCount  time.Time // last tick that incremented the counter
}

func (d *trembleDetector) update(s imu.Sample, now time.Time) bool {
	mag := s.Magnitude()
	delta := math.Abs(mag - d.lastMag)
	d.lastMag = mag

	if now.Sub(d.lastActive) > trembleWindow {
		d.count = 0
	}

	// The spacing floor keeps a single oscillation from being counted
	// twice at the tick rate.
	if delta > trembleMin && delta < trembleMax {
		if now.Sub(d.lastCount) > trembleSpacing {
			d.count++
			d.lastCount = now
			d.lastActive = now
		}
	}

	if d.count >= trembleRequired {
		d.count = 0
		return true
	}
	return false
}
