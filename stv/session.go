// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package stv

// Session drives one voter through building a ballot, one pick per round.
// It may be held across arbitrary delays between rounds.
type Session struct {
	election *Election
	ballot   *Ballot
	done     bool
}

func (s *Session) Voter() string { return s.ballot.voter }

// Ballot exposes the in-progress ballot.
func (s *Session) Ballot() *Ballot { return s.ballot }

// Done reports whether the ballot has been completed and recorded.
func (s *Session) Done() bool { return s.done }

// Choices returns the options for the next round. An empty slice means the
// session is finished.
func (s *Session) Choices() []Choice {
	if s.done {
		return nil
	}
	return s.ballot.Choices()
}

// Start checks the first round. Elections with at most one candidate have
// nothing to pick and complete immediately.
func (s *Session) Start() error {
	return s.settle()
}

// Submit applies the voter's pick for this round.
func (s *Session) Submit(choice Choice) error {
	if s.done {
		return ErrInvalidChoice
	}
	if err := s.ballot.Submit(choice); err != nil {
		return err
	}
	return s.settle()
}

// settle ranks a lone remaining candidate automatically and records the
// ballot once nothing is left to choose.
func (s *Session) settle() error {
	if remaining := s.ballot.Remaining(); len(remaining) == 1 {
		if err := s.ballot.Submit(Candidate(remaining[0])); err != nil {
			return err
		}
	}
	if s.ballot.Complete() {
		s.done = true
		s.election.Record(s.ballot)
	}
	return nil
}
