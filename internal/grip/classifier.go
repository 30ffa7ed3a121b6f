package grip

// ConfirmCount is the number of consecutive identical detections needed
// before the published severity changes. Debounces single-tick spikes.
const ConfirmCount = 5

// Classifier applies confirmation hysteresis over per-tick severity
// detections. The published state only moves after ConfirmCount identical
// consecutive detections.
type Classifier struct {
	lastDetected Severity
	confirmCount int
	current      Severity
}

func NewClassifier() *Classifier {
	return &Classifier{}
}

// Update classifies the higher of the two channel pressures and advances
// the hysteresis state. It returns true when the published severity
// actually changed this tick.
func (c *Classifier) Update(psi1, psi2 float64) (bool, Severity) {
	maxPSI := psi1
	if psi2 > maxPSI {
		maxPSI = psi2
	}

	detected := Classify(maxPSI)

	if detected == c.lastDetected {
		c.confirmCount++
	} else {
		c.confirmCount = 1
		c.lastDetected = detected
	}

	if c.confirmCount >= ConfirmCount && detected != c.current {
		c.current = detected
		return true, c.current
	}

	return false, c.current
}

// Current returns the published (confirmed) severity.
func (c *Classifier) Current() Severity {
	return c.current
}
