package motion

// RepeatThreshold is the number of identical consecutive labels that
// confirm a repeated motion.
const RepeatThreshold = 5

// Debouncer confirms repeated motion: RepeatThreshold identical
// consecutive non-None labels emit one confirmed-repeat event. None
// labels are neither counted nor compared.
type Debouncer struct {
	last  Label
	count int
}

func NewDebouncer() *Debouncer {
	return &Debouncer{}
}

// Update feeds this tick's label. On confirmation it returns the repeated
// label and true, and resets the counter to zero so the same label must
// be freshly re-observed before it can trigger again.
func (d *Debouncer) Update(l Label) (Label, bool) {
	if l == None {
		return None, false
	}

	if l == d.last {
		d.count++
	} else {
		d.count = 1
		d.last = l
	}

	if d.count >= RepeatThreshold {
		d.count = 0
		return d.last, true
	}
	return None, false
}
