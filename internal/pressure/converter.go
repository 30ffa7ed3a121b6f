// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

// Package pressure converts raw FSR ADC readings into engineering-unit
// pressure (PSI) using the FSR 402 voltage-divider model.
package pressure

import (
	"math"
	"time"
)

const (
	// Circuit: FSR in a voltage divider with a 10kΩ fixed resistor,
	// sampled against a 3.3V reference on a 12-bit scale.
	defaultVRef    = 3.3
	defaultADCMax  = 4095.0
	defaultRFixed  = 10000.0
	defaultAreaMM2 = 20.0 // FSR 402 active area

	// Raw readings below this are open-circuit/no-contact noise.
	NoiseFloor = 50

	// Pressure ceiling for a child grip.
	MaxPSI = 30.0

	pascalPerPSI = 6894.76

	// Averaging burst: 5 consecutive samples with a short settling
	// delay between each. ~2.5ms of latency per channel per reading.
	AverageSamples = 5
	SettleDelay    = 500 * time.Microsecond
)

// Converter turns raw ADC values into PSI.
type Converter struct {
	VRef    float64 // ADC reference voltage
	ADCMax  float64 // full-scale raw value
	RFixed  float64 // fixed divider resistor, ohms
	AreaMM2 float64 // FSR active area, mm²
}

// NewConverter returns a converter with the FSR 402 defaults.
func NewConverter() *Converter {
	return &Converter{
		VRef:    defaultVRef,
		ADCMax:  defaultADCMax,
		RFixed:  defaultRFixed,
		AreaMM2: defaultAreaMM2,
	}
}

// Convert computes PSI from a single raw ADC value. Out-of-range input is
// never an error: noise maps to zero and the result is clamped to MaxPSI.
func (c *Converter) Convert(raw int) float64 {
	if raw < NoiseFloor {
		return 0.0
	}

	voltage := float64(raw) * (c.VRef / c.ADCMax)

	// Voltage divider inversion: Vout = Vcc·Rfixed/(Rfixed+Rfsr),
	// so Rfsr = Rfixed·(Vcc−Vout)/Vout.
	resistance := c.RFixed * (c.VRef - voltage) / voltage

	// FSR 402 characteristic curve: R ≈ 1/F^1.1, hence
	// F(N) ≈ (1,000,000/R)^(1/1.1). Only valid inside the fit domain.
	force := 0.0
	if resistance > 0 && resistance < 1_000_000 {
		force = math.Pow(1_000_000.0/resistance, 0.909)
	}

	areaM2 := c.AreaMM2 * 1e-6
	psi := force / (areaM2 * pascalPerPSI)

	if psi > MaxPSI {
		psi = MaxPSI
	}
	return psi
}

// ReadAveraged takes AverageSamples consecutive raw readings through read,
// converts each, and returns the mean PSI. The converted values are
// averaged (not the raw values) to smooth sensor and ADC noise. A failed
// read contributes a zero raw sample, matching open-circuit behavior.
func (c *Converter) ReadAveraged(read func() (int, error)) float64 {
	total := 0.0
	for i := 0; i < AverageSamples; i++ {
		raw, err := read()
		if err != nil {
			raw = 0
		}
		total += c.Convert(raw)
		if i < AverageSamples-1 {
			time.Sleep(SettleDelay)
		}
	}
	return total / AverageSamples
}
