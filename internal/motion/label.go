// Package motion classifies raw 6-axis samples into discrete movement
// labels and confirms repeated motion.
package motion

// Label is the single classified movement type for one control-loop tick.
type Label int

// Labels in detection priority order: when several detectors fire on the
// same tick, the lowest value here wins (after None).
const (
	None Label = iota
	Impact
	Bounce
	FreeFall
	ViolentShake
	Spinning
	Rocking
	Tremble
)

func (l Label) String() string {
	switch l {
	case Impact:
		return "Impact"
	case Bounce:
		return "Bounce"
	case FreeFall:
		return "FreeFall"
	case ViolentShake:
		return "ViolentShake"
	case Spinning:
		return "Spinning"
	case Rocking:
		return "Rocking"
	case Tremble:
		return "Tremble"
	default:
		return "None"
	}
}

// ParseLabel is the inverse of String. Unknown strings map to None.
func ParseLabel(s string) Label {
	switch s {
	case "Impact":
		return Impact
	case "Bounce":
		return Bounce
	case "FreeFall":
		return FreeFall
	case "ViolentShake":
		return ViolentShake
	case "Spinning":
		return Spinning
	case "Rocking":
		return Rocking
	case "Tremble":
		return Tremble
	default:
		return None
	}
}
