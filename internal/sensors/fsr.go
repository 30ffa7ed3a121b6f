// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package sensors

import (
	"fmt"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/devices/v3/ads1x15"
)

// FSRChannels is the number of force-sensitive resistors on the ball.
const FSRChannels = 2

// fsrFrontEnd reads the FSR voltage dividers through an ADS1115: the
// host has no analog inputs of its own.
type fsrFrontEnd struct {
	pins [FSRChannels]ads1x15.PinADC
}

func newFSRFrontEnd(bus i2c.Bus, addr uint16) (*fsrFrontEnd, error) {
	opts := ads1x15.DefaultOpts
	opts.I2cAddress = addr

	adc, err := ads1x15.NewADS1115(bus, &opts)
	if err != nil {
		return nil, fmt.Errorf("ads1115 init: %w", err)
	}

	fe := &fsrFrontEnd{}
	channels := [FSRChannels]ads1x15.Channel{ads1x15.Channel0, ads1x15.Channel1}
	for i, ch := range channels {
		// 860Hz is the ADS1115 maximum data rate; the averaging burst
		// in the pressure converter needs back-to-back conversions.
		pin, err := adc.PinForChannel(ch, 3300*physic.MilliVolt, 860*physic.Hertz, ads1x15.SaveEnergy)
		if err != nil {
			return nil, fmt.Errorf("ads1115 channel %d: %w", i, err)
		}
		fe.pins[i] = pin
	}
	return fe, nil
}

// read returns one raw sample scaled onto the 12-bit range the pressure
// model was calibrated against. Negative readings (below the divider
// ground) clamp to zero.
func (f *fsrFrontEnd) read(channel int) (int, error) {
	if channel < 0 || channel >= FSRChannels {
		return 0, fmt.Errorf("fsr channel %d out of range", channel)
	}
	sample, err := f.pins[channel].Read()
	if err != nil {
		return 0, fmt.Errorf("fsr channel %d read: %w", channel, err)
	}
	raw := int(sample.Raw >> 3) // 15-bit positive range → 12-bit
	if raw < 0 {
		raw = 0
	}
	return raw, nil
}

func (f *fsrFrontEnd) close() {
	for _, pin := range f.pins {
		if pin != nil {
			pin.Halt()
		}
	}
}
