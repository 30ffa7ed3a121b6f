// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package app

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/relabs-tech/sensory_ball/internal/logging"
	"github.com/relabs-tech/sensory_ball/internal/pressure"
	"github.com/relabs-tech/sensory_ball/internal/sensors"
)

// ChannelStats summarizes the idle noise of one FSR channel.
type ChannelStats struct {
	Channel int     `json:"channel"`
	Samples int     `json:"samples"`
	Mean    float64 `json:"mean"`
	StdDev  float64 `json:"stddev"`
	Min     int     `json:"min"`
	Max     int     `json:"max"`
}

// CalibrationResult is written to the output file for later inspection.
type CalibrationResult struct {
	Version   int       `json:"version"`
	Timestamp time.Time `json:"timestamp"`
	Duration  string    `json:"duration"`

	Channels [sensors.FSRChannels]ChannelStats `json:"channels"`

	// SuggestedNoiseFloor is max over channels of mean + 3σ, never
	// below the built-in floor.
	SuggestedNoiseFloor int `json:"suggested_noise_floor"`
}

// RunCalibration samples both FSR channels at rest and reports idle
// noise statistics plus a suggested raw noise floor. The ball must stay
// untouched for the duration.
func RunCalibration(duration time.Duration, outPath string, useMock bool) error {
	logger := logging.Get()

	if err := sensors.Init(useMock); err != nil {
		return fmt.Errorf("sensor init: %w", err)
	}
	defer sensors.Close()

	if !sensors.PressureAvailable() {
		return fmt.Errorf("FSR front-end unavailable, nothing to calibrate")
	}

	logger.Info("calibration started, keep the ball untouched",
		zap.Duration("duration", duration),
	)

	var samples [sensors.FSRChannels][]int
	deadline := time.Now().Add(duration)
	ticker := time.NewTicker(10 * time.Millisecond)
	defer ticker.Stop()

	for now := range ticker.C {
		if now.After(deadline) {
			break
		}
		for ch := 0; ch < sensors.FSRChannels; ch++ {
			raw, err := sensors.ReadPressureRaw(ch)
			if err != nil {
				logger.Warn("sample read failed", zap.Int("channel", ch), zap.Error(err))
				continue
			}
			samples[ch] = append(samples[ch], raw)
		}
	}

	result := CalibrationResult{
		Version:   1,
		Timestamp: time.Now(),
		Duration:  duration.String(),
	}

	floor := pressure.NoiseFloor
	for ch := 0; ch < sensors.FSRChannels; ch++ {
		stats := computeStats(ch, samples[ch])
		result.Channels[ch] = stats

		suggested := int(math.Ceil(stats.Mean + 3*stats.StdDev))
		if suggested > floor {
			floor = suggested
		}

		logger.Info("channel statistics",
			zap.Int("channel", ch),
			zap.Int("samples", stats.Samples),
			zap.Float64("mean", stats.Mean),
			zap.Float64("stddev", stats.StdDev),
			zap.Int("min", stats.Min),
			zap.Int("max", stats.Max),
		)
	}
	result.SuggestedNoiseFloor = floor

	logger.Info("calibration complete",
		zap.Int("suggested_noise_floor", result.SuggestedNoiseFloor),
		zap.Int("builtin_noise_floor", pressure.NoiseFloor),
	)

	if outPath == "" {
		return nil
	}

	payload, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal calibration result: %w", err)
	}
	if err := os.WriteFile(outPath, payload, 0o644); err != nil {
		return fmt.Errorf("write calibration result: %w", err)
	}
	logger.Info("calibration result written", zap.String("path", outPath))
	return nil
}

func computeStats(channel int, raw []int) ChannelStats {
	stats := ChannelStats{Channel: channel, Samples: len(raw)}
	if len(raw) == 0 {
		return stats
	}

	stats.Min = raw[0]
	stats.Max = raw[0]
	sum := 0
	for _, v := range raw {
		sum += v
		if v < stats.Min {
			stats.Min = v
		}
		if v > stats.Max {
			stats.Max = v
		}
	}
	stats.Mean = float64(sum) / float64(len(raw))

	variance := 0.0
	for _, v := range raw {
		d := float64(v) - stats.Mean
		variance += d * d
	}
	variance /= float64(len(raw))
	stats.StdDev = math.Sqrt(variance)

	return stats
}
