// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package app

import (
	"encoding/json"
	"fmt"
	"image"
	"sync"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"go.uber.org/zap"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/devices/v3/ssd1306"
	"periph.io/x/devices/v3/ssd1306/image1bit"
	"periph.io/x/host/v3"

	"github.com/relabs-tech/sensory_ball/internal/config"
	"github.com/relabs-tech/sensory_ball/internal/logging"
	"github.com/relabs-tech/sensory_ball/internal/telemetry"
)

// displayData holds the latest report for the status screen.
type displayData struct {
	mu         sync.RWMutex
	report     telemetry.Report
	haveReport bool
	lastAlert  string
	alertAt    time.Time
}

// alertHold keeps a distress banner on screen long enough to read.
const alertHold = 10 * time.Second

// RunDisplay drives the little SSD1306 status screen next to the hub:
// current grip state, pressure and the latest motion, with a banner for
// distress alerts.
func RunDisplay() error {
	logger := logging.Get()
	cfg := config.Get()

	if _, err := host.Init(); err != nil {
		return fmt.Errorf("periph host init: %w", err)
	}

	bus, err := i2creg.Open(cfg.I2CBus)
	if err != nil {
		return fmt.Errorf("i2c bus open: %w", err)
	}
	defer bus.Close()

	// The driver owns the device address (0x3C, or 0x3D with the
	// address strap set).
	dev, err := ssd1306.NewI2C(bus, &ssd1306.DefaultOpts)
	if err != nil {
		return fmt.Errorf("ssd1306 init: %w", err)
	}
	logger.Info("display initialized")

	data := &displayData{}

	opts := mqtt.NewClientOptions().
		AddBroker(cfg.MQTTBroker).
		SetClientID(cfg.MQTTClientIDDisplay)

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return fmt.Errorf("mqtt connect: %w", token.Error())
	}
	defer client.Disconnect(250)
	logger.Info("display connected to MQTT broker", zap.String("broker", cfg.MQTTBroker))

	token := client.Subscribe(cfg.TopicTelemetry, 0, func(_ mqtt.Client, msg mqtt.Message) {
		var r telemetry.Report
		if err := json.Unmarshal(msg.Payload(), &r); err != nil {
			logger.Warn("telemetry unmarshal error", zap.Error(err))
			return
		}
		data.mu.Lock()
		data.report = r
		data.haveReport = true
		if r.Alert != "" {
			data.lastAlert = describeAlert(r)
			data.alertAt = time.Now()
		}
		data.mu.Unlock()
	})
	token.Wait()
	if token.Error() != nil {
		return fmt.Errorf("mqtt subscribe: %w", token.Error())
	}

	ticker := time.NewTicker(time.Duration(cfg.DisplayUpdateInterval) * time.Millisecond)
	defer ticker.Stop()

	logger.Info("display update loop started")

	for range ticker.C {
		data.mu.RLock()
		r := data.report
		have := data.haveReport
		alert := data.lastAlert
		if time.Since(data.alertAt) > alertHold {
			alert = ""
		}
		data.mu.RUnlock()

		if err := drawStatus(dev, r, have, alert); err != nil {
			logger.Warn("display update error", zap.Error(err))
		}
	}
	return nil
}

func describeAlert(r telemetry.Report) string {
	switch r.Alert {
	case telemetry.AlertPattern:
		return "! PATTERN " + r.DominantType
	case telemetry.AlertMotion:
		return "! MOTION " + r.MotionType
	default:
		return "! " + r.Alert
	}
}

func drawStatus(dev *ssd1306.Dev, r telemetry.Report, haveData bool, alert string) error {
	img := image1bit.NewVerticalLSB(image.Rect(0, 0, 128, 64))

	// Blank image
	for i := 0; i < 1024; i++ {
		img.Pix[i] = 0
	}

	drawer := &font.Drawer{
		Dst:  img,
		Src:  &image.Uniform{image1bit.On},
		Face: basicfont.Face7x13,
	}

	if !haveData {
		drawer.Dot = fixed.P(0, 26)
		drawer.DrawBytes([]byte("Sensory Ball"))
		drawer.Dot = fixed.P(0, 39)
		drawer.DrawBytes([]byte("Waiting..."))
		return dev.Draw(dev.Bounds(), img, image.Point{})
	}

	drawer.Dot = fixed.P(0, 13)
	drawer.DrawBytes([]byte(fmt.Sprintf("Grip: %s", r.GripState)))

	drawer.Dot = fixed.P(0, 26)
	drawer.DrawBytes([]byte(fmt.Sprintf("PSI:  %5.2f", r.PSIMax)))

	drawer.Dot = fixed.P(0, 39)
	drawer.DrawBytes([]byte(fmt.Sprintf("Move: %s", r.Motion)))

	if alert != "" {
		drawer.Dot = fixed.P(0, 58)
		drawer.DrawBytes([]byte(alert))
	}

	return dev.Draw(dev.Bounds(), img, image.Point{})
}
