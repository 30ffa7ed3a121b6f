// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

// Package app wires the packages into runnable programs: the on-ball
// agent, the hub console, the web monitor, the status display and the
// FSR calibration tool.
package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/relabs-tech/sensory_ball/internal/audio"
	"github.com/relabs-tech/sensory_ball/internal/command"
	"github.com/relabs-tech/sensory_ball/internal/config"
	"github.com/relabs-tech/sensory_ball/internal/grip"
	"github.com/relabs-tech/sensory_ball/internal/imu"
	"github.com/relabs-tech/sensory_ball/internal/logging"
	"github.com/relabs-tech/sensory_ball/internal/motion"
	"github.com/relabs-tech/sensory_ball/internal/pressure"
	"github.com/relabs-tech/sensory_ball/internal/sensors"
	"github.com/relabs-tech/sensory_ball/internal/telemetry"
)

// debugLogInterval spaces the periodic pipeline state log.
const debugLogInterval = 2 * time.Second

// agent bundles the per-tick pipeline state.
type agent struct {
	converter  *pressure.Converter
	classifier *grip.Classifier
	sequencer  *grip.Sequencer
	motions    *motion.Classifier
	debouncer  *motion.Debouncer
	aggregator *telemetry.Aggregator

	senders []telemetry.Sender
	player  *audio.Player // nil when the DFPlayer is absent
	state   *command.State

	startTime    time.Time
	lastDebugLog time.Time

	// Snapshot read by statusLine on the command listener's goroutine
	// while the tick loop writes it.
	statusMu   sync.Mutex
	statusGrip grip.Severity
	statusMove motion.Label

	logger *zap.Logger
}

// RunAgent runs the on-ball detection pipeline until SIGINT/SIGTERM.
// With useMock set the hardware layer serves synthetic readings.
func RunAgent(useMock bool) error {
	logger := logging.Get()
	cfg := config.Get()

	logger.Info("starting sensory ball agent",
		zap.String("device", cfg.DeviceID),
		zap.String("hub", cfg.HubAddr),
		zap.Bool("mock", useMock),
	)

	if err := sensors.Init(useMock); err != nil {
		return fmt.Errorf("sensor init: %w", err)
	}
	defer sensors.Close()
	if !sensors.PressureAvailable() {
		logger.Warn("FSR front-end unavailable, pressure pipeline runs on zeros")
	}
	if !sensors.IMUAvailable() {
		logger.Warn("IMU unavailable, motion pipeline runs on zeros")
	}

	a := &agent{
		converter:  pressure.NewConverter(),
		classifier: grip.NewClassifier(),
		sequencer:  grip.NewSequencer(logger),
		motions:    motion.NewClassifier(),
		debouncer:  motion.NewDebouncer(),
		aggregator: telemetry.NewAggregator(logger),
		state:      command.NewState(cfg.AudioTrack),
		startTime:  time.Now(),
		logger:     logger,
	}

	// Hub link over UDP, plus an optional MQTT mirror.
	udp, err := telemetry.NewUDPSender(cfg.HubAddr, logger)
	if err != nil {
		return err
	}
	defer udp.Close()
	a.senders = append(a.senders, udp)

	if cfg.MQTTBroker != "" {
		mq, err := telemetry.NewMQTTSender(cfg.MQTTBroker, cfg.MQTTClientIDAgent, cfg.TopicTelemetry, cfg.TopicAlert, logger)
		if err != nil {
			logger.Warn("MQTT mirror unavailable", zap.Error(err))
		} else {
			defer mq.Close()
			a.senders = append(a.senders, mq)
		}
	}

	// A missing DFPlayer degrades to a silent ball, not a dead one.
	if cfg.AudioSerialPort != "" {
		player, err := audio.Open(cfg.AudioSerialPort, cfg.AudioVolume, logger)
		if err != nil {
			logger.Warn("audio player unavailable", zap.Error(err))
		} else {
			defer player.Close()
			a.player = player
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var audioCtl command.AudioControl
	if a.player != nil {
		audioCtl = a.player
	}
	handler := command.NewHandler(a.state, audioCtl, a.statusLine, logger)
	listener, err := command.NewListener(cfg.CommandPort, handler, logger)
	if err != nil {
		return err
	}
	go func() {
		if err := listener.Run(ctx); err != nil {
			logger.Error("command listener stopped", zap.Error(err))
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	ticker := time.NewTicker(time.Duration(cfg.TickInterval) * time.Millisecond)
	defer ticker.Stop()

	logger.Info("pipeline running", zap.Int("tick_ms", cfg.TickInterval))

	for {
		select {
		case <-sigCh:
			logger.Info("shutting down")
			return nil
		case now := <-ticker.C:
			a.tick(cfg, now)
		}
	}
}

// tick runs one full pipeline pass: read, classify, decide, transmit.
func (a *agent) tick(cfg *config.Config, now time.Time) {
	// Pressure path. One extra raw read per channel feeds the report's
	// raw fields; the PSI values come from a 5-sample averaged burst.
	raw1, _ := sensors.ReadPressureRaw(0)
	raw2, _ := sensors.ReadPressureRaw(1)
	psi1 := a.converter.ReadAveraged(func() (int, error) { return sensors.ReadPressureRaw(0) })
	psi2 := a.converter.ReadAveraged(func() (int, error) { return sensors.ReadPressureRaw(1) })
	maxPSI := psi1
	if psi2 > maxPSI {
		maxPSI = psi2
	}

	changed, severity := a.classifier.Update(psi1, psi2)
	if changed {
		a.logger.Info("grip state changed", zap.Stringer("grip", severity))
	}
	squeeze := maxPSI > grip.PSINoGrip

	pattern, patternFired := a.sequencer.Update(maxPSI, now)

	// Motion path.
	sample, err := sensors.ReadIMU()
	if err != nil {
		sample = imu.Sample{}
	}
	label := a.motions.Classify(sample, now)
	a.publishStatus(a.classifier.Current(), label)
	repeated, repeatFired := a.debouncer.Update(label)

	if a.state.Debug() && label != motion.None {
		a.logger.Debug("motion detected", zap.Stringer("motion", label))
	}

	a.aggregator.Record(label, maxPSI)

	distress := patternFired || repeatFired
	kind := a.aggregator.Decide(distress, now)

	r := telemetry.Report{
		Device:    cfg.DeviceID,
		TimeMS:    now.Sub(a.startTime).Milliseconds(),
		FSR1Raw:   raw1,
		FSR2Raw:   raw2,
		PSI1:      psi1,
		PSI2:      psi2,
		PSIMax:    maxPSI,
		GripState: a.classifier.Current().String(),
		Ax:        sample.Ax,
		Ay:        sample.Ay,
		Az:        sample.Az,
		Gx:        sample.Gx,
		Gy:        sample.Gy,
		Gz:        sample.Gz,
		Motion:    label.String(),
		Squeeze:   squeeze,
	}

	switch kind {
	case telemetry.SendDistress:
		if patternFired {
			r.Alert = telemetry.AlertPattern
			r.DominantType = pattern.Dominant.String()
		} else {
			r.Alert = telemetry.AlertMotion
			r.MotionType = repeated.String()
		}
		a.send(r)
		a.playDistressSound()

	case telemetry.SendPeriodic:
		mode, mean := a.aggregator.Summary()
		r.Motion = mode.String()
		r.PSIMax = mean
		a.send(r)
		a.aggregator.Flush()
	}

	if a.player != nil {
		a.player.Restore(now)
	}

	if a.state.Debug() && now.Sub(a.lastDebugLog) >= debugLogInterval {
		a.lastDebugLog = now
		a.logger.Debug("pipeline state",
			zap.Float64("psi1", psi1),
			zap.Float64("psi2", psi2),
			zap.Stringer("grip", a.classifier.Current()),
			zap.Stringer("motion", label),
			zap.Int("window_motions", a.aggregator.Window().MotionCount()),
		)
		if a.state.Verbose() {
			a.logger.Debug("raw sensor frame",
				zap.Int("fsr1_raw", raw1),
				zap.Int("fsr2_raw", raw2),
				zap.Int16("ax", sample.Ax),
				zap.Int16("ay", sample.Ay),
				zap.Int16("az", sample.Az),
				zap.Int16("gx", sample.Gx),
				zap.Int16("gy", sample.Gy),
				zap.Int16("gz", sample.Gz),
			)
		}
	}
}

func (a *agent) send(r telemetry.Report) {
	for _, s := range a.senders {
		if err := s.Send(r); err != nil {
			a.logger.Warn("telemetry send failed", zap.Error(err))
		}
	}
}

// playDistressSound starts the configured track when a distress event
// makes it through the aggregator's gate.
func (a *agent) playDistressSound() {
	if a.player == nil {
		return
	}
	if err := a.player.PlayCommand(a.state.Track()); err != nil {
		a.logger.Warn("distress sound failed", zap.Error(err))
	}
}

// publishStatus stores this tick's confirmed grip and motion label for
// the STATUS reply.
func (a *agent) publishStatus(g grip.Severity, m motion.Label) {
	a.statusMu.Lock()
	a.statusGrip = g
	a.statusMove = m
	a.statusMu.Unlock()
}

// statusLine renders the STATUS command reply. It runs on the command
// listener's goroutine, so it only touches mutex-guarded state.
func (a *agent) statusLine() string {
	a.statusMu.Lock()
	gripState := a.statusGrip
	move := a.statusMove
	a.statusMu.Unlock()

	volume := -1
	if a.player != nil {
		volume = a.player.Volume()
	}
	return fmt.Sprintf("STATUS:grip=%s,motion=%s,track=%d,volume=%d,debug=%t,verbose=%t,uptime_s=%d",
		gripState,
		move,
		a.state.Track(),
		volume,
		a.state.Debug(),
		a.state.Verbose(),
		int(time.Since(a.startTime).Seconds()),
	)
}
