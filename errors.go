package dfa

import (
	"errors"
	"fmt"
)

// ErrInvalidAutomaton is wrapped by every InvalidAutomatonError.
var ErrInvalidAutomaton = errors.New("invalid automaton")

// InvalidAutomatonError reports a broken construction or minimization invariant:
// an unknown initial state, a transition referring to an unknown state or symbol,
// or two different targets for the same (state, symbol) pair.
type InvalidAutomatonError struct {
	Message string
}

func (e *InvalidAutomatonError) Error() string {
	return fmt.Sprintf("%s: %s", ErrInvalidAutomaton, e.Message)
}

func (e *InvalidAutomatonError) Unwrap() error {
	return ErrInvalidAutomaton
}

func invalidf(format string, args ...any) error {
	return &InvalidAutomatonError{Message: fmt.Sprintf(format, args...)}
}

// UndefinedTransitionError is the rejection reason of a word that reached a
// (state, symbol) pair with no transition.
type UndefinedTransitionError struct {
	State  string
	Symbol string
}

func (e *UndefinedTransitionError) Error() string {
	return fmt.Sprintf("undefined transition at state %s on symbol %s", e.State, e.Symbol)
}

// NonFinalEndError is the rejection reason of a word that was fully consumed
// but left the automaton outside its final states.
type NonFinalEndError struct {
	State string
}

func (e *NonFinalEndError) Error() string {
	return fmt.Sprintf("ended on non-final state %s", e.State)
}
