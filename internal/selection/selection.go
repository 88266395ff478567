// Package selection tracks which of the currently matching candidates is highlighted.
package selection

// State holds the highlighted match index and the number of matches last drawn.
// The zero value is ready to use.
type State struct {
	selected int
	matches  int
}

// New creates an empty selection
func New() *State {
	return &State{}
}

// Selected returns the highlighted match index
func (s *State) Selected() int {
	return s.selected
}

// MatchCount returns the number of matches counted by the last redraw
func (s *State) MatchCount() int {
	return s.matches
}

// Reset moves the highlight back to the first match
func (s *State) Reset() {
	s.selected = 0
}

// Advance moves the highlight count matches forward, stopping at the last match.
// A count of zero or less means one.
func (s *State) Advance(count int) {
	if count <= 0 {
		count = 1
	}
	s.selected = s.clamp(s.selected + count)
}

// Retreat moves the highlight count matches back, stopping at the first match.
// A count of zero or less means one.
func (s *State) Retreat(count int) {
	if count <= 0 {
		count = 1
	}
	s.selected = s.clamp(s.selected - count)
}

// SetMatchCount records how many matches the last redraw counted and pulls
// the highlight back into range if the list shrank.
func (s *State) SetMatchCount(n int) {
	if n < 0 {
		n = 0
	}
	s.matches = n
	s.selected = s.clamp(s.selected)
}

func (s *State) clamp(index int) int {
	if index >= s.matches {
		index = s.matches - 1
	}
	if index < 0 {
		return 0
	}
	return index
}
