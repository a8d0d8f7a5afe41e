// Package capitalize implements the auto-capitalize one-bit state
// machine (spec.md §4.10): the letter starting a new sentence is
// capitalized automatically.
package capitalize

// State tracks whether the next emitted letter should be capitalized.
type State struct {
	pending bool
}

// ObserveCommit updates pending based on the break key that just ended
// a word: a sentence-ending punctuation mark or newline arms
// capitalization for the next letter.
func (s *State) ObserveCommit(breakKey rune) {
	switch breakKey {
	case '.', '!', '?', '\n', '\r':
		s.pending = true
	}
}

// Pending reports whether the next letter should be capitalized.
func (s *State) Pending() bool { return s.pending }

// Consume clears pending, returning whether it was set (the caller
// uses this to decide whether to upper-case the letter it's about to
// feed the composer).
func (s *State) Consume() bool {
	if !s.pending {
		return false
	}
	s.pending = false
	return true
}

// Reset clears pending state (clear_all).
func (s *State) Reset() { s.pending = false }
