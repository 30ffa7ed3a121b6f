// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package sensors

import (
	"encoding/binary"
	"fmt"

	"periph.io/x/conn/v3/i2c"

	"github.com/relabs-tech/sensory_ball/internal/imu"
)

// MPU6050 register map (subset used here).
const (
	regSmplrtDiv   = 0x19 // sample rate divider
	regConfig      = 0x1A // DLPF configuration
	regGyroConfig  = 0x1B // gyro full-scale select, bits 4:3
	regAccelConfig = 0x1C // accel full-scale select, bits 4:3
	regAccelXoutH  = 0x3B // start of the 14-byte accel/temp/gyro block
	regPwrMgmt1    = 0x6B // power management, device wakes on 0x00
	regWhoAmI      = 0x75

	whoAmIValue = 0x68
)

// MPU6050 reads raw 6-axis samples over I2C. Unlike the MPU9250 there is
// no magnetometer die, so a sample is just accel + gyro.
type MPU6050 struct {
	dev i2c.Dev
}

// NewMPU6050 probes and wakes the device, then applies the widest
// full-scale ranges: a thrown ball saturates anything narrower.
func NewMPU6050(bus i2c.Bus, addr uint16) (*MPU6050, error) {
	m := &MPU6050{dev: i2c.Dev{Bus: bus, Addr: addr}}

	id, err := m.readReg(regWhoAmI)
	if err != nil {
		return nil, fmt.Errorf("mpu6050 WHO_AM_I read: %w", err)
	}
	if id != whoAmIValue {
		return nil, fmt.Errorf("mpu6050 WHO_AM_I = 0x%02X, want 0x%02X", id, whoAmIValue)
	}

	// Wake from sleep, internal oscillator.
	if err := m.writeReg(regPwrMgmt1, 0x00); err != nil {
		return nil, fmt.Errorf("mpu6050 wake: %w", err)
	}

	// ±16g accel, ±2000°/s gyro, 1kHz internal rate with DLPF at 44Hz.
	if err := m.writeReg(regAccelConfig, 3<<3); err != nil {
		return nil, fmt.Errorf("mpu6050 accel range: %w", err)
	}
	if err := m.writeReg(regGyroConfig, 3<<3); err != nil {
		return nil, fmt.Errorf("mpu6050 gyro range: %w", err)
	}
	if err := m.writeReg(regConfig, 0x03); err != nil {
		return nil, fmt.Errorf("mpu6050 DLPF config: %w", err)
	}
	if err := m.writeReg(regSmplrtDiv, 0x00); err != nil {
		return nil, fmt.Errorf("mpu6050 sample rate divider: %w", err)
	}

	return m, nil
}

// Read burst-reads the accel/temp/gyro block and returns one sample. The
// temperature words in the middle of the block are discarded.
func (m *MPU6050) Read() (imu.Sample, error) {
	buf := make([]byte, 14)
	if err := m.dev.Tx([]byte{regAccelXoutH}, buf); err != nil {
		return imu.Sample{}, fmt.Errorf("mpu6050 burst read: %w", err)
	}

	return imu.Sample{
		Source: "mpu6050",
		Ax:     int16(binary.BigEndian.Uint16(buf[0:2])),
		Ay:     int16(binary.BigEndian.Uint16(buf[2:4])),
		Az:     int16(binary.BigEndian.Uint16(buf[4:6])),
		Gx:     int16(binary.BigEndian.Uint16(buf[8:10])),
		Gy:     int16(binary.BigEndian.Uint16(buf[10:12])),
		Gz:     int16(binary.BigEndian.Uint16(buf[12:14])),
	}, nil
}

func (m *MPU6050) readReg(reg byte) (byte, error) {
	buf := make([]byte, 1)
	if err := m.dev.Tx([]byte{reg}, buf); err != nil {
		return 0, err
	}
	return buf[0], nil
}

func (m *MPU6050) writeReg(reg, value byte) error {
	return m.dev.Tx([]byte{reg, value}, nil)
}
