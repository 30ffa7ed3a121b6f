// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package main

import (
	"flag"
	"log"

	"github.com/relabs-tech/sensory_ball/internal/app"
)

func main() {
	port := flag.Int("port", 5005, "UDP port to listen on for ball telemetry")
	flag.Parse()

	log.Println("starting sensory-ball hub console (telemetry -> stdout)")

	if err := app.RunConsole(*port); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}
