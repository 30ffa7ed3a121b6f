package command

import (
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// AudioControl is the slice of the audio player the command grammar
// needs. Nil-able: a ball without a working DFPlayer still accepts
// debug and status commands.
type AudioControl interface {
	PlayCommand(track int) error
	Stop() error
	SetVolume(volume int) error
}

// StatusFunc renders the current pipeline status for the STATUS reply.
type StatusFunc func() string

// Handler parses and executes one command line. Grammar:
// PLAY:STOP, PLAY:<n>, VOLUME:<n>, DEBUG:ON, DEBUG:OFF, DEBUG:VERBOSE,
// STATUS.
type Handler struct {
	state  *State
	audio  AudioControl
	status StatusFunc
	logger *zap.Logger
}

func NewHandler(state *State, audio AudioControl, status StatusFunc, logger *zap.Logger) *Handler {
	return &Handler{state: state, audio: audio, status: status, logger: logger}
}

// Handle executes one command and returns the reply to send back, or an
// empty string when no reply is due. Unknown commands are answered with
// a usage hint rather than an error: the hub link is best-effort.
func (h *Handler) Handle(raw string) string {
	cmd := strings.ToUpper(strings.TrimSpace(raw))
	h.logger.Info("handling hub command", zap.String("command", cmd))

	switch {
	case cmd == "PLAY:STOP":
		if h.audio != nil {
			if err := h.audio.Stop(); err != nil {
				h.logger.Warn("stop failed", zap.Error(err))
			}
		}
		return ""

	case strings.HasPrefix(cmd, "PLAY:"):
		track, err := strconv.Atoi(cmd[len("PLAY:"):])
		if err != nil || track < 1 {
			return "ERROR:bad track"
		}
		h.state.SetTrack(track)
		if h.audio != nil {
			if err := h.audio.PlayCommand(track); err != nil {
				h.logger.Warn("play failed", zap.Int("track", track), zap.Error(err))
			}
		}
		return ""

	case strings.HasPrefix(cmd, "VOLUME:"):
		vol, err := strconv.Atoi(cmd[len("VOLUME:"):])
		if err != nil {
			return "ERROR:bad volume"
		}
		if h.audio != nil {
			if err := h.audio.SetVolume(vol); err != nil {
				h.logger.Warn("volume change failed", zap.Int("volume", vol), zap.Error(err))
			}
		}
		return ""

	case cmd == "DEBUG:ON":
		h.state.SetDebug(true)
		h.logger.Info("motion debug enabled")
		return ""

	case cmd == "DEBUG:OFF":
		h.state.SetDebug(false)
		h.logger.Info("motion debug disabled")
		return ""

	case cmd == "DEBUG:VERBOSE":
		on := h.state.ToggleVerbose()
		h.logger.Info("verbose mode toggled", zap.Bool("on", on))
		return ""

	case cmd == "STATUS":
		return h.status()

	default:
		h.logger.Warn("unknown hub command", zap.String("command", cmd))
		return fmt.Sprintf("ERROR:unknown command %q; available: PLAY:n, PLAY:STOP, VOLUME:n, DEBUG:ON, DEBUG:OFF, DEBUG:VERBOSE, STATUS", cmd)
	}
}
