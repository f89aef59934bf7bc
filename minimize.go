package dfa

import (
	"slices"
	"strings"
)

// Reduction The outcome of Reduce: the minimized automaton together with what was removed and merged
// on the way there.
type Reduction struct {
	Automaton *Automaton

	// States removed because no word reaches them, in declaration order.
	Unreachable []string

	// Equivalence classes of the reachable states, each sorted by name. The merged state of a class
	// is named by concatenating its members.
	Classes [][]string

	// Merged states removed by WithDeadStateRemoval.
	Dead []string
}

type minimizeOptions struct {
	removeDead bool
}

// Option Configures Minimize and Reduce.
type Option func(*minimizeOptions)

// WithDeadStateRemoval Also removes the merged states from which no final state is reachable. The
// initial state is kept even when it is dead. The language is unchanged, but words that used to stop
// on a non-final dead state now stop on an undefined transition instead.
func WithDeadStateRemoval() Option {
	return func(o *minimizeOptions) {
		o.removeDead = true
	}
}

func newMinimizeOptions(opts ...Option) *minimizeOptions {
	options := &minimizeOptions{}
	for _, opt := range opts {
		opt(options)
	}
	return options
}

// Minimize
// Returns the smallest automaton accepting the same words as a: unreachable states are removed and
// the remaining states are merged by the table-filling algorithm. a is left untouched.
//
// A merged state is named by MergedStateName, so merging fails with an InvalidAutomatonError when
// that name belongs to another resulting state: with states a, b and ab where a and b are
// equivalent, both {a,b} and {ab} would be named "ab". Rename the states of a to avoid it.
func Minimize(a *Automaton, opts ...Option) (*Automaton, error) {
	r, err := Reduce(a, opts...)
	if err != nil {
		return nil, err
	}
	return r.Automaton, nil
}

// Reduce
// Minimizes a like Minimize and also reports the removed states and the equivalence classes. It fails
// on merged-name collisions in the same way.
func Reduce(a *Automaton, opts ...Option) (*Reduction, error) {
	if err := a.validate(); err != nil {
		return nil, err
	}
	options := newMinimizeOptions(opts...)

	unreachable := complement(getLiveStatesFromInitial(a), len(a.states))
	pruned, err := removeStates(a, unreachable)
	if err != nil {
		return nil, err
	}

	classes := equivalenceClasses(pruned)
	merged, err := unifyStates(pruned, classes)
	if err != nil {
		return nil, err
	}

	r := &Reduction{
		Unreachable: a.names(unreachable),
		Classes:     make([][]string, len(classes)),
	}
	for i, class := range classes {
		r.Classes[i] = pruned.classNames(class)
	}

	if options.removeDead {
		dead := complement(getLiveStatesToAccept(merged), len(merged.states))
		dead.Clear(uint(merged.initial))
		r.Dead = merged.names(dead)
		if merged, err = removeStates(merged, dead); err != nil {
			return nil, err
		}
	}

	r.Automaton = merged
	return r, nil
}

// MergedStateName
// Returns the name of the state standing for a set of equivalent states: the distinct member names
// sorted and concatenated. The result does not depend on the order of members.
func MergedStateName(members []string) string {
	return strings.Join(sortedUnique(members), "")
}

func sortedUnique(members []string) []string {
	out := append([]string(nil), members...)
	slices.Sort(out)
	return slices.Compact(out)
}

// unifyStates rewrites a so that every class becomes a single state. Classes must partition the
// states of a and contain only equivalent states.
func unifyStates(a *Automaton, classes [][]int) (*Automaton, error) {
	classOf := make([]int, len(a.states))
	names := make([]string, len(classes))
	owner := make(map[string]int, len(classes))
	for k, class := range classes {
		name := MergedStateName(a.classNames(class))
		if prev, ok := owner[name]; ok {
			return nil, invalidf("merged state name %q is produced by both %v and %v",
				name, a.classNames(classes[prev]), a.classNames(class))
		}
		owner[name] = k
		names[k] = name
		for _, s := range class {
			classOf[s] = k
		}
	}

	result := newAutomaton(a.name, names, a.alphabet, classOf[a.initial])
	for s := range a.states {
		if a.isFinal(s) {
			result.setAccept(classOf[s], true)
		}
		for c := range a.alphabet {
			if d := a.next(s, c); d != -1 {
				if err := result.addTransition(classOf[s], c, classOf[d]); err != nil {
					return nil, err
				}
			}
		}
	}
	return result, nil
}
