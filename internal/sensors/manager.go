// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

// Package sensors owns the I2C hardware: the ADS1115 fronting the two
// FSR voltage dividers and the MPU6050. Initialization happens once;
// a sensor that fails to probe is marked unavailable and its readers
// return the init error instead of crashing the loop.
package sensors

import (
	"fmt"
	"sync"

	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"

	"github.com/relabs-tech/sensory_ball/internal/config"
	"github.com/relabs-tech/sensory_ball/internal/imu"
)

var (
	fsr     *fsrFrontEnd
	fsrErr  error
	motion  *MPU6050
	imuErr  error
	mock    *mockSensors
	hwOnce  sync.Once
	hostErr error
)

// Init brings up the I2C bus and probes both sensors. With useMock set
// the hardware is skipped entirely and synthetic readings are served.
// Safe to call more than once.
func Init(useMock bool) error {
	hwOnce.Do(func() {
		if useMock {
			mock = newMockSensors()
			return
		}

		if _, err := host.Init(); err != nil {
			hostErr = fmt.Errorf("periph host init: %w", err)
			return
		}

		cfg := config.Get()
		bus, err := i2creg.Open(cfg.I2CBus)
		if err != nil {
			hostErr = fmt.Errorf("i2c bus %q open: %w", cfg.I2CBus, err)
			return
		}

		fsr, fsrErr = newFSRFrontEnd(bus, cfg.ADS1115Addr)
		motion, imuErr = NewMPU6050(bus, cfg.MPU6050Addr)
	})

	if hostErr != nil {
		return hostErr
	}
	if fsrErr != nil && imuErr != nil {
		return fmt.Errorf("no sensors available: fsr: %v, imu: %v", fsrErr, imuErr)
	}
	return nil
}

// PressureAvailable reports whether FSR reads can succeed.
func PressureAvailable() bool {
	return mock != nil || (hostErr == nil && fsrErr == nil && fsr != nil)
}

// IMUAvailable reports whether motion reads can succeed.
func IMUAvailable() bool {
	return mock != nil || (hostErr == nil && imuErr == nil && motion != nil)
}

// ReadPressureRaw returns one raw ADC sample for the given FSR channel
// on the 12-bit scale.
func ReadPressureRaw(channel int) (int, error) {
	if mock != nil {
		return mock.readPressureRaw(channel)
	}
	if hostErr != nil {
		return 0, hostErr
	}
	if fsrErr != nil {
		return 0, fsrErr
	}
	if fsr == nil {
		return 0, fmt.Errorf("sensors not initialized")
	}
	return fsr.read(channel)
}

// ReadIMU returns one raw 6-axis sample.
func ReadIMU() (imu.Sample, error) {
	if mock != nil {
		return mock.readIMU()
	}
	if hostErr != nil {
		return imu.Sample{}, hostErr
	}
	if imuErr != nil {
		return imu.Sample{}, imuErr
	}
	if motion == nil {
		return imu.Sample{}, fmt.Errorf("sensors not initialized")
	}
	return motion.Read()
}

// Close releases the ADC pins. The MPU6050 needs no teardown.
func Close() {
	if fsr != nil {
		fsr.close()
	}
}
