package metrics

import (
	"errors"
	"io"
	"time"

	"github.com/prometheus/common/expfmt"

	"github.com/geange/dfa"
)

// Outcome labels of dfa_word_checks_total.
const (
	OutcomeAccepted            = "accepted"
	OutcomeUndefinedTransition = "undefined_transition"
	OutcomeNonFinalEnd         = "non_final_end"
)

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}

// RecordLoad records one load attempt and, when it succeeded, the size of the automaton.
func (r *Registry) RecordLoad(a *dfa.Automaton, err error) {
	r.LoadsTotal.WithLabelValues(status(err)).Inc()
	if err != nil || a == nil {
		return
	}
	r.AutomatonSize.WithLabelValues("states").Observe(float64(a.NumStates()))
	r.AutomatonSize.WithLabelValues("transitions").Observe(float64(a.NumTransitions()))
}

// Outcome classifies a simulation result.
func Outcome(res dfa.Result) string {
	var undefined *dfa.UndefinedTransitionError
	switch {
	case res.Accepted:
		return OutcomeAccepted
	case errors.As(res.Reason, &undefined):
		return OutcomeUndefinedTransition
	default:
		return OutcomeNonFinalEnd
	}
}

// RecordCheck records one simulated word.
func (r *Registry) RecordCheck(res dfa.Result) {
	r.WordChecksTotal.WithLabelValues(Outcome(res)).Inc()
	r.WordSymbols.Observe(float64(len(res.Steps)))
}

// RecordMinimization records one minimization. before is the state count of the input automaton.
func (r *Registry) RecordMinimization(before int, red *dfa.Reduction, duration time.Duration, err error) {
	r.MinimizationsTotal.WithLabelValues(status(err)).Inc()
	r.MinimizationDuration.Observe(duration.Seconds())
	if err != nil || red == nil {
		return
	}

	merged := before - len(red.Unreachable) - len(red.Classes)
	r.StatesRemovedTotal.WithLabelValues("unreachable").Add(float64(len(red.Unreachable)))
	r.StatesRemovedTotal.WithLabelValues("merged").Add(float64(merged))
	r.StatesRemovedTotal.WithLabelValues("dead").Add(float64(len(red.Dead)))
}

// SessionOpened and SessionClosed track dfa_sessions_active.
func (r *Registry) SessionOpened() { r.SessionsActive.Inc() }
func (r *Registry) SessionClosed() { r.SessionsActive.Dec() }

// WriteText writes every gathered metric family in the Prometheus text exposition format.
func (r *Registry) WriteText(w io.Writer) error {
	families, err := r.registry.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}
