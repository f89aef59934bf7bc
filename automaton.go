package dfa

import (
	"github.com/bits-and-blooms/bitset"
)

// Automaton Represents a deterministic finite automaton over named states and symbols. States and symbols
// are stored by their declaration index; the transition table packs one destination per (state, symbol)
// pair, -1 meaning the transition is undefined. An Automaton is never modified after construction, so a
// single value may be simulated from many goroutines; operations that change the shape (RemoveStates,
// Minimize) always return a new Automaton that shares no storage with the input.
//
// Only New and MustNew produce a usable Automaton. The zero value has no states: Reduce, Minimize and
// RemoveStates reject it with an InvalidAutomatonError, and simulating it (CheckWord, Accepts) panics.
type Automaton struct {
	name string

	// Names in declaration order and their reverse lookup.
	states []string
	index  map[string]int

	// Symbols in declaration order; the order is significant for tokenization.
	alphabet []string
	symbols  map[string]int

	initial int

	isAccept *bitset.BitSet

	// Holds the destination of state s on symbol c at s*len(alphabet)+c, or -1.
	transitions []int

	numTransitions int

	tokenizer *Tokenizer
}

// Transition A single (From, Symbol) -> To entry of the transition map.
type Transition struct {
	From   string `json:"from" yaml:"from" validate:"required"`
	Symbol string `json:"symbol" yaml:"symbol" validate:"required"`
	To     string `json:"to" yaml:"to" validate:"required"`
}

// newAutomaton allocates an automaton with no final states and no transitions. The caller guarantees
// that states and alphabet hold distinct, non-empty names; both slices are copied.
func newAutomaton(name string, states, alphabet []string, initial int) *Automaton {
	a := &Automaton{
		name:        name,
		states:      append([]string(nil), states...),
		index:       make(map[string]int, len(states)),
		alphabet:    append([]string(nil), alphabet...),
		symbols:     make(map[string]int, len(alphabet)),
		initial:     initial,
		isAccept:    bitset.New(uint(len(states))),
		transitions: filled(len(states)*len(alphabet), -1),
	}
	for i, s := range a.states {
		a.index[s] = i
	}
	for i, c := range a.alphabet {
		a.symbols[c] = i
	}
	a.tokenizer = NewTokenizer(a.alphabet)
	return a
}

// setAccept Set or clear this state as a final state.
func (a *Automaton) setAccept(state int, accept bool) {
	a.isAccept.SetTo(uint(state), accept)
}

// addTransition Adds source --symbol--> dest. Re-adding the same entry is a no-op; a different
// destination for an already defined pair is a determinism violation.
func (a *Automaton) addTransition(source, symbol, dest int) error {
	i := source*len(a.alphabet) + symbol
	switch prev := a.transitions[i]; {
	case prev == dest:
		return nil
	case prev != -1:
		return invalidf("transition (%s,%s) defined twice with targets %s and %s",
			a.states[source], a.alphabet[symbol], a.states[prev], a.states[dest])
	}
	a.transitions[i] = dest
	a.numTransitions++
	return nil
}

// next Returns the destination of state on symbol, -1 if undefined.
func (a *Automaton) next(state, symbol int) int {
	return a.transitions[state*len(a.alphabet)+symbol]
}

// isFinal Returns true if the state at this index is final.
func (a *Automaton) isFinal(state int) bool {
	return a.isAccept.Test(uint(state))
}

// Name The automaton's name.
func (a *Automaton) Name() string {
	return a.name
}

// NumStates How many states this automaton has.
func (a *Automaton) NumStates() int {
	return len(a.states)
}

// NumTransitions How many transitions are defined.
func (a *Automaton) NumTransitions() int {
	return a.numTransitions
}

// States Returns the state names in declaration order.
func (a *Automaton) States() []string {
	return append([]string(nil), a.states...)
}

// Alphabet Returns the symbols in declaration order.
func (a *Automaton) Alphabet() []string {
	return append([]string(nil), a.alphabet...)
}

// Initial Returns the initial state.
func (a *Automaton) Initial() string {
	return a.states[a.initial]
}

// Final Returns the final states in declaration order.
func (a *Automaton) Final() []string {
	final := make([]string, 0, a.isAccept.Count())
	for i, ok := a.isAccept.NextSet(0); ok; i, ok = a.isAccept.NextSet(i + 1) {
		final = append(final, a.states[i])
	}
	return final
}

// IsFinal Returns true if state is a final state. Unknown states are not final.
func (a *Automaton) IsFinal(state string) bool {
	s, ok := a.index[state]
	return ok && a.isFinal(s)
}

// HasState Returns true if state belongs to the automaton.
func (a *Automaton) HasState(state string) bool {
	_, ok := a.index[state]
	return ok
}

// Step Performs a single lookup in the transition map.
// Returns the destination and true, or "" and false when the state or symbol is unknown or the
// transition is undefined.
func (a *Automaton) Step(state, symbol string) (string, bool) {
	s, ok := a.index[state]
	if !ok {
		return "", false
	}
	c, ok := a.symbols[symbol]
	if !ok {
		return "", false
	}
	if d := a.next(s, c); d != -1 {
		return a.states[d], true
	}
	return "", false
}

// Transitions Returns every defined transition, ordered by source state then symbol declaration order.
func (a *Automaton) Transitions() []Transition {
	out := make([]Transition, 0, a.numTransitions)
	for s := range a.states {
		for c := range a.alphabet {
			if d := a.next(s, c); d != -1 {
				out = append(out, Transition{From: a.states[s], Symbol: a.alphabet[c], To: a.states[d]})
			}
		}
	}
	return out
}

// Definition Returns the construction input that rebuilds this automaton. The result shares no
// storage with a.
func (a *Automaton) Definition() Definition {
	return Definition{
		Name:        a.name,
		States:      a.States(),
		Alphabet:    a.Alphabet(),
		Initial:     a.Initial(),
		Final:       a.Final(),
		Transitions: a.Transitions(),
	}
}

// validate re-checks the structural invariants of a value that may not have been produced by New,
// such as the zero Automaton.
func (a *Automaton) validate() error {
	if a == nil {
		return invalidf("automaton is nil")
	}
	if len(a.states) == 0 {
		return invalidf("automaton has no states")
	}
	if a.isAccept == nil || a.index == nil || a.symbols == nil || a.tokenizer == nil {
		return invalidf("automaton %q was not built with New", a.name)
	}
	if a.initial < 0 || a.initial >= len(a.states) {
		return invalidf("initial state index %d out of range", a.initial)
	}
	if len(a.transitions) != len(a.states)*len(a.alphabet) {
		return invalidf("transition table has %d entries, want %d", len(a.transitions), len(a.states)*len(a.alphabet))
	}
	for i, d := range a.transitions {
		if d < -1 || d >= len(a.states) {
			return invalidf("transition (%s,%s) targets unknown state index %d",
				a.states[i/len(a.alphabet)], a.alphabet[i%len(a.alphabet)], d)
		}
	}
	return nil
}
