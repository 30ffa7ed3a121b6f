// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

// Package audio drives the DFPlayer Mini MP3 module over its UART.
package audio

import (
	"fmt"
	"io"
	"sync"
	"time"

	serial "github.com/jacobsa/go-serial/serial"
	"go.uber.org/zap"
)

const (
	MaxVolume = 30

	// AlarmTrack is the find-my-ball siren: played at max volume, with
	// the configured volume restored once AlarmDuration has elapsed.
	AlarmTrack    = 14
	AlarmDuration = 5 * time.Second

	// DFPlayer serial command set (subset).
	cmdPlayTrack = 0x03
	cmdSetVolume = 0x06
	cmdStop      = 0x16

	// The module needs time to flush a stop and to latch a track.
	stopSettle = 80 * time.Millisecond
	trackLatch = 50 * time.Millisecond
)

// Player wraps a DFPlayer Mini behind a serial port. Commands arrive
// from both the control loop and the hub command listener; the mutex
// serializes them and keeps the frames on the wire whole.
type Player struct {
	mu     sync.Mutex
	port   io.WriteCloser
	volume int // configured volume, restored after an alarm

	alarmPlaying bool
	alarmStart   time.Time

	logger *zap.Logger
}

// Open opens the DFPlayer's UART (9600 8N1) and returns a ready player.
func Open(portName string, volume int, logger *zap.Logger) (*Player, error) {
	opts := serial.OpenOptions{
		PortName:        portName,
		BaudRate:        9600,
		DataBits:        8,
		StopBits:        1,
		MinimumReadSize: 1,
		ParityMode:      serial.PARITY_NONE,
	}

	port, err := serial.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open audio serial port %q: %w", portName, err)
	}
	logger.Info("audio serial port opened",
		zap.String("port", portName),
		zap.Uint("baud", opts.BaudRate),
	)

	p := NewPlayer(port, volume, logger)
	if err := p.SetVolume(volume); err != nil {
		port.Close()
		return nil, err
	}
	return p, nil
}

// NewPlayer builds a player over an already-open port. Mostly useful for
// tests, which pass an in-memory writer.
func NewPlayer(port io.WriteCloser, volume int, logger *zap.Logger) *Player {
	return &Player{port: port, volume: clampVolume(volume), logger: logger}
}

// Play hard-stops the current track and starts the given one at the
// configured volume.
func (p *Player) Play(track int) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.play(track)
}

func (p *Player) play(track int) error {
	if err := p.send(cmdStop, 0); err != nil {
		return err
	}
	time.Sleep(stopSettle)

	if err := p.send(cmdPlayTrack, uint16(track)); err != nil {
		return err
	}
	time.Sleep(trackLatch)

	if err := p.send(cmdSetVolume, uint16(p.volume)); err != nil {
		return err
	}

	p.logger.Info("playing track",
		zap.Int("track", track),
		zap.Int("volume", p.volume),
	)
	return nil
}

// PlayCommand handles a hub-initiated track request. The alarm track
// plays at max volume; Restore puts the configured volume back later.
func (p *Player) PlayCommand(track int) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if track != AlarmTrack {
		return p.play(track)
	}

	if err := p.send(cmdStop, 0); err != nil {
		return err
	}
	time.Sleep(stopSettle)
	if err := p.send(cmdSetVolume, MaxVolume); err != nil {
		return err
	}
	time.Sleep(trackLatch)
	if err := p.send(cmdPlayTrack, AlarmTrack); err != nil {
		return err
	}

	p.alarmPlaying = true
	p.alarmStart = time.Now()
	p.logger.Info("find-my-ball alarm started at max volume",
		zap.Int("restore_volume", p.volume),
	)
	return nil
}

// Stop halts playback and clears any pending alarm restore.
func (p *Player) Stop() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.alarmPlaying = false
	return p.send(cmdStop, 0)
}

// SetVolume clamps to 0..MaxVolume and applies immediately. The clamped
// value becomes the configured volume restored after alarms.
func (p *Player) SetVolume(volume int) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.volume = clampVolume(volume)
	return p.send(cmdSetVolume, uint16(p.volume))
}

// Volume returns the configured volume.
func (p *Player) Volume() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.volume
}

// Restore puts the configured volume back once the alarm has run its
// course. Called every tick from the control loop; a no-op otherwise.
func (p *Player) Restore(now time.Time) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.alarmPlaying || now.Sub(p.alarmStart) <= AlarmDuration {
		return
	}
	p.alarmPlaying = false
	if err := p.send(cmdSetVolume, uint16(p.volume)); err != nil {
		p.logger.Warn("alarm volume restore failed", zap.Error(err))
		return
	}
	p.logger.Info("alarm finished, volume restored", zap.Int("volume", p.volume))
}

func (p *Player) Close() error {
	return p.port.Close()
}

func (p *Player) send(cmd byte, param uint16) error {
	if _, err := p.port.Write(frame(cmd, param)); err != nil {
		return fmt.Errorf("dfplayer write (cmd 0x%02X): %w", cmd, err)
	}
	return nil
}

// frame builds one 10-byte DFPlayer command frame:
// 0x7E version length cmd feedback paramH paramL checksumH checksumL 0xEF
// where the checksum is the two's complement of the sum of bytes 1..6.
func frame(cmd byte, param uint16) []byte {
	buf := []byte{
		0x7E, 0xFF, 0x06, cmd, 0x00,
		byte(param >> 8), byte(param),
		0x00, 0x00, 0xEF,
	}
	var sum uint16
	for _, b := range buf[1:7] {
		sum += uint16(b)
	}
	checksum := -sum
	buf[7] = byte(checksum >> 8)
	buf[8] = byte(checksum)
	return buf
}

func clampVolume(v int) int {
	if v < 0 {
		return 0
	}
	if v > MaxVolume {
		return MaxVolume
	}
	return v
}
