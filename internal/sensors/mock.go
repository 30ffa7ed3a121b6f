package sensors

import (
	"math"
	"time"

	"github.com/relabs-tech/sensory_ball/internal/imu"
)

// mockSensors generates smooth idle readings so the full pipeline can
// run on a bench machine with no I2C hardware attached.
type mockSensors struct {
	start time.Time
}

func newMockSensors() *mockSensors {
	return &mockSensors{start: time.Now()}
}

// readPressureRaw returns a slow squeeze-and-release wave per channel,
// offset so the two FSRs never peak together.
func (m *mockSensors) readPressureRaw(channel int) (int, error) {
	elapsed := time.Since(m.start).Seconds()
	phase := elapsed*0.4 + float64(channel)*math.Pi/3
	raw := 1200 + 1100*math.Sin(phase)
	if raw < 0 {
		raw = 0
	}
	return int(raw), nil
}

// readIMU returns a gently rocking ball at rest: gravity on Z plus a
// small oscillation, well below every detector threshold.
func (m *mockSensors) readIMU() (imu.Sample, error) {
	elapsed := time.Since(m.start).Seconds()

	return imu.Sample{
		Source: "mock",
		Ax:     int16(3000 * math.Sin(elapsed)),
		Ay:     int16(2500 * math.Cos(elapsed*0.7)),
		Az:     int16(16384 + 500*math.Sin(elapsed*1.3)),
		Gx:     int16(800 * math.Sin(elapsed*0.5)),
		Gy:     int16(600 * math.Cos(elapsed*0.9)),
		Gz:     int16(400 * math.Sin(elapsed*0.3)),
	}, nil
}
