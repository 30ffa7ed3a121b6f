// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package main

import (
	"flag"
	"log"
	"time"

	"github.com/relabs-tech/sensory_ball/internal/app"
	"github.com/relabs-tech/sensory_ball/internal/config"
)

func main() {
	configPath := flag.String("config", "./ball_config.txt", "path to configuration file")
	duration := flag.Duration("duration", 10*time.Second, "sampling duration")
	out := flag.String("out", "fsr_calibration.json", "output file for calibration results (empty to skip)")
	useMock := flag.Bool("mock", false, "use synthetic sensor readings instead of hardware")
	flag.Parse()

	log.Println("starting FSR noise-floor calibration, keep the ball untouched")

	if err := config.InitGlobal(*configPath); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	if err := app.RunCalibration(*duration, *out, *useMock); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}
