// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package main

import (
	"flag"
	"log"

	"github.com/relabs-tech/sensory_ball/internal/app"
	"github.com/relabs-tech/sensory_ball/internal/config"
)

func main() {
	configPath := flag.String("config", "./ball_config.txt", "path to configuration file")
	useMock := flag.Bool("mock", false, "use synthetic sensor readings instead of hardware")
	flag.Parse()

	log.Println("starting sensory-ball agent (sensors -> hub)")

	if err := config.InitGlobal(*configPath); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	if err := app.RunAgent(*useMock); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}
