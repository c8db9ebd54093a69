package cyclic

import "pinto/internal/failure"

// Sequencer cycles through 0..n-1 starting at 0. It is not safe for
// concurrent use.
type Sequencer struct {
	n int
	i int
}

func New(n int) (*Sequencer, error) {
	if n <= 0 {
		return nil, failure.Configf("cannot index a domain of 0 or less length, got %d", n)
	}
	return &Sequencer{n: n, i: -1}, nil
}

func (s *Sequencer) Next() int {
	s.i = (s.i + 1) % s.n
	return s.i
}

func (s *Sequencer) Len() int {
	return s.n
}
