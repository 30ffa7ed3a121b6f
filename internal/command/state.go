// Package command handles inbound hub commands over UDP: track and
// volume control, debug toggles, and status queries. The detection
// pipeline itself never blocks on this package; it only reads the two
// pieces of shared state commands may change.
package command

import "sync"

// State is the command-adjustable state the control loop reads each
// tick: the audio track played on distress and the debug-output flags.
type State struct {
	mu      sync.Mutex
	track   int
	debug   bool
	verbose bool
}

func NewState(track int) *State {
	return &State{track: track, debug: true}
}

func (s *State) Track() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.track
}

func (s *State) SetTrack(track int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.track = track
}

func (s *State) Debug() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.debug
}

func (s *State) SetDebug(on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.debug = on
}

// ToggleVerbose flips the verbose flag and returns the new value.
func (s *State) ToggleVerbose() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.verbose = !s.verbose
	return s.verbose
}

func (s *State) Verbose() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.verbose
}
