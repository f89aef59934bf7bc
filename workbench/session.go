package workbench

import (
	"github.com/geange/dfa"
	"github.com/geange/dfa/description"
	"github.com/geange/dfa/logging"
	"github.com/geange/dfa/metrics"
)

// Session is one loaded automaton. Automaton answers the queries; it is the minimized form of
// Original when the workbench minimizes on load, in which case Reduction describes the minimization.
type Session struct {
	ID        string
	Original  *dfa.Automaton
	Automaton *dfa.Automaton
	Reduction *dfa.Reduction

	logger  logging.Logger
	metrics *metrics.Registry
	closed  bool
}

// Check runs word on the session's automaton.
func (s *Session) Check(word string) dfa.Result {
	res := s.Automaton.CheckWord(word)
	s.metrics.RecordCheck(res)

	fields := []logging.Field{
		logging.Word(word),
		logging.Bool("accepted", res.Accepted),
		logging.String("outcome", metrics.Outcome(res)),
	}
	if res.Reason != nil {
		fields = append(fields, logging.Error(res.Reason))
	}
	s.logger.Debug("checked word", fields...)
	return res
}

// CheckPairs returns the pairs whose words are both accepted, in input order.
func (s *Session) CheckPairs(pairs []description.WordPair) []description.WordPair {
	accepted := make([]description.WordPair, 0, len(pairs))
	for _, p := range pairs {
		if s.Check(p.First).Accepted && s.Check(p.Second).Accepted {
			accepted = append(accepted, p)
		}
	}
	s.logger.Info("checked word pairs",
		logging.Int("pairs", len(pairs)),
		logging.Int("accepted", len(accepted)))
	return accepted
}

// Close releases the session. Closing twice is a no-op.
func (s *Session) Close() {
	if s.closed {
		return
	}
	s.closed = true
	s.metrics.SessionClosed()
}
