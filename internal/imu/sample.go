package imu

import "math"

// Sample represents a single raw 6-axis MPU6050 reading.
type Sample struct {
	Source string `json:"source"` // "mpu6050" or "mock"

	Ax int16 `json:"ax"` // accel
	Ay int16 `json:"ay"`
	Az int16 `json:"az"`

	Gx int16 `json:"gx"` // gyro
	Gy int16 `json:"gy"`
	Gz int16 `json:"gz"`
}

// Magnitude returns the Euclidean norm of the acceleration axes.
func (s Sample) Magnitude() float64 {
	x := float64(s.Ax)
	y := float64(s.Ay)
	z := float64(s.Az)
	return math.Sqrt(x*x + y*y + z*z)
}
