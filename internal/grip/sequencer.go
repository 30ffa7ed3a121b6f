package grip

import (
	"time"

	"go.uber.org/zap"
)

const (
	// PatternLength is the number of qualifying grips that complete a
	// distress pattern.
	PatternLength = 5

	// MaxGap is the longest release-to-grip gap allowed inside a
	// sequence. A longer gap silently discards the sequence in progress.
	MaxGap = 1000 * time.Millisecond
)

// PatternEvent marks the completion of a grip pattern.
type PatternEvent struct {
	Dominant Severity                // Tantrum iff 2+ tantrum grips, else Stressed
	Grips    [PatternLength]Severity // peak severity of each grip in the sequence
}

// Sequencer tracks the repeated-grip pattern: PatternLength distinct
// grips above the Stressed breakpoint with gaps under MaxGap between
// them. It gates on instantaneous max-channel pressure, not on the
// hysteresis classifier's published state, so a short hard squeeze still
// counts even before the classifier confirms it.
type Sequencer struct {
	gripping    bool
	holdPeak    Severity // running peak severity within the current hold
	count       int      // grips so far in the sequence, 0..PatternLength
	lastRelease time.Time
	history     [PatternLength]Severity
	logger      *zap.Logger
}

func NewSequencer(logger *zap.Logger) *Sequencer {
	return &Sequencer{logger: logger}
}

// Update advances the state machine with this tick's max-channel pressure.
// It returns a completion event on the tick that starts the final grip of
// a valid sequence.
func (s *Sequencer) Update(maxPSI float64, now time.Time) (PatternEvent, bool) {
	if maxPSI >= PSIStressed {
		if !s.gripping {
			return s.startGrip(maxPSI, now)
		}
		// Continuing a hold: track the running peak, monotonic within
		// a single hold.
		if sev := Classify(maxPSI); sev > s.holdPeak {
			s.holdPeak = sev
		}
		return PatternEvent{}, false
	}

	if s.gripping {
		s.gripping = false
		s.lastRelease = now
		// Store this hold's peak unless the pattern just completed
		// (count is already back at 0 in that case).
		if s.count > 0 && s.count < PatternLength {
			s.history[s.count-1] = s.holdPeak
		}
	}
	return PatternEvent{}, false
}

func (s *Sequencer) startGrip(maxPSI float64, now time.Time) (PatternEvent, bool) {
	s.gripping = true
	s.holdPeak = Classify(maxPSI)

	if s.count > 0 {
		gap := now.Sub(s.lastRelease)
		if gap > MaxGap {
			// Gap too long: discard the in-progress sequence and
			// treat this as the first grip of a new one.
			s.logger.Debug("grip gap too long, resetting sequence",
				zap.Duration("gap", gap),
				zap.Int("discarded_count", s.count),
			)
			s.count = 0
		}
	}

	s.count++

	if s.count >= PatternLength {
		s.history[PatternLength-1] = s.holdPeak
		ev := PatternEvent{
			Dominant: dominantSeverity(s.history),
			Grips:    s.history,
		}
		s.logger.Info("grip pattern complete",
			zap.Stringer("dominant", ev.Dominant),
		)
		// Reset for the next sequence; stay logically gripping so the
		// release edge of this hold is not double counted.
		s.count = 0
		return ev, true
	}

	return PatternEvent{}, false
}

// dominantSeverity resolves the pattern's dominant type: Tantrum when two
// or more grips peaked at Tantrum, otherwise Stressed. Grips below
// Stressed cannot enter the sequence by construction.
func dominantSeverity(grips [PatternLength]Severity) Severity {
	tantrums := 0
	for _, g := range grips {
		if g == Tantrum {
			tantrums++
		}
	}
	if tantrums >= 2 {
		return Tantrum
	}
	return Stressed
}
