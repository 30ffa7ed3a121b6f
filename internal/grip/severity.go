// Package grip classifies sustained squeeze pressure into discrete
// severity states and detects the repeated-grip distress pattern.
package grip

// Severity is the discrete grip-severity state, totally ordered.
type Severity int

const (
	None Severity = iota // no contact with the ball
	Calm                 // relaxed holding, baseline
	Moderate             // slight anxiety, early warning
	Stressed             // elevated stress
	Tantrum              // meltdown, immediate attention needed
)

// Pressure breakpoints in PSI, calibrated for a child's grip strength.
const (
	PSINoGrip   = 0.1
	PSICalm     = 0.5
	PSIModerate = 4.0
	PSIStressed = 8.0
)

// Classify maps a pressure magnitude onto a severity. It is a step
// function over the four breakpoints: anything at or above PSIStressed's
// upper band is Tantrum, no matter how hard the squeeze.
func Classify(psi float64) Severity {
	switch {
	case psi < PSINoGrip:
		return None
	case psi < PSICalm:
		return Calm
	case psi < PSIModerate:
		return Moderate
	case psi < PSIStressed:
		return Stressed
	default:
		return Tantrum
	}
}

func (s Severity) String() string {
	switch s {
	case None:
		return "None"
	case Calm:
		return "Calm"
	case Moderate:
		return "Moderate"
	case Stressed:
		return "Stressed"
	case Tantrum:
		return "Tantrum"
	default:
		return "Unknown"
	}
}

// Distress reports whether the severity calls for intervention.
func (s Severity) Distress() bool {
	return s == Stressed || s == Tantrum
}
