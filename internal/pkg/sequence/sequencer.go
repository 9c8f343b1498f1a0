package sequence

import "sync/atomic"

// Sequencer generates strictly monotonic sequence numbers for change events.
type Sequencer struct {
	next atomic.Uint64
}

// New creates a sequencer whose next value is start+1.
func New(start uint64) *Sequencer {
	s := &Sequencer{}
	s.next.Store(start)
	return s
}

func (s *Sequencer) Next() uint64 {
	return s.next.Add(1)
}

// Current returns the last issued sequence.
func (s *Sequencer) Current() uint64 {
	return s.next.Load()
}

// Advance moves the sequencer forward to v; it never moves backwards.
// Used while replaying the journal.
func (s *Sequencer) Advance(v uint64) {
	for {
		cur := s.next.Load()
		if v <= cur || s.next.CompareAndSwap(cur, v) {
			return
		}
	}
}
