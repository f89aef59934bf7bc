package dfa

import (
	"github.com/bits-and-blooms/bitset"
)

// UnreachableStates
// Returns the states that no word leads to from the initial state, in declaration order.
func UnreachableStates(a *Automaton) []string {
	return a.names(complement(getLiveStatesFromInitial(a), len(a.states)))
}

// DeadStates
// Returns the states from which no final state can be reached, in declaration order. A dead state
// can never take part in an accepting run.
func DeadStates(a *Automaton) []string {
	return a.names(complement(getLiveStatesToAccept(a), len(a.states)))
}

// IsEmpty
// Returns true if the automaton accepts no word.
func IsEmpty(a *Automaton) bool {
	if a.isFinal(a.initial) {
		return false
	}
	live := getLiveStatesFromInitial(a)
	live.InPlaceIntersection(a.isAccept)
	return live.None()
}

// RemoveStates
// Returns a copy of a without the given states. Transitions leaving or entering a removed state are
// dropped. The initial state is never removed, even when listed. Naming a state that does not belong
// to a is an error.
func RemoveStates(a *Automaton, states []string) (*Automaton, error) {
	if err := a.validate(); err != nil {
		return nil, err
	}
	remove := bitset.New(uint(len(a.states)))
	for _, name := range states {
		s, ok := a.index[name]
		if !ok {
			return nil, invalidf("cannot remove unknown state %q", name)
		}
		remove.Set(uint(s))
	}
	return removeStates(a, remove)
}

// removeStates builds the automaton restricted to the states not set in remove.
func removeStates(a *Automaton, remove *bitset.BitSet) (*Automaton, error) {
	remove = remove.Clone()
	remove.Clear(uint(a.initial))
	if remove.None() {
		return a.clone(), nil
	}

	numStates := len(a.states)
	mp := make([]int, numStates)
	kept := make([]string, 0, numStates)
	for s := 0; s < numStates; s++ {
		if remove.Test(uint(s)) {
			mp[s] = -1
			continue
		}
		mp[s] = len(kept)
		kept = append(kept, a.states[s])
	}

	result := newAutomaton(a.name, kept, a.alphabet, mp[a.initial])
	for s := 0; s < numStates; s++ {
		if mp[s] == -1 {
			continue
		}
		result.setAccept(mp[s], a.isFinal(s))
		for c := range a.alphabet {
			// filter out transitions to removed states:
			if d := a.next(s, c); d != -1 && mp[d] != -1 {
				if err := result.addTransition(mp[s], c, mp[d]); err != nil {
					return nil, err
				}
			}
		}
	}
	return result, nil
}

// clone returns a deep copy of a.
func (a *Automaton) clone() *Automaton {
	b := newAutomaton(a.name, a.states, a.alphabet, a.initial)
	b.isAccept = a.isAccept.Clone()
	copy(b.transitions, a.transitions)
	b.numTransitions = a.numTransitions
	return b
}

func getLiveStatesFromInitial(a *Automaton) *bitset.BitSet {
	live := bitset.New(uint(len(a.states)))
	workList := make([]int, 0, len(a.states))
	live.Set(uint(a.initial))
	workList = append(workList, a.initial)

	for len(workList) > 0 {
		s := workList[0]
		workList = workList[1:]
		for c := range a.alphabet {
			d := a.next(s, c)
			if d != -1 && !live.Test(uint(d)) {
				live.Set(uint(d))
				workList = append(workList, d)
			}
		}
	}
	return live
}

func getLiveStatesToAccept(a *Automaton) *bitset.BitSet {
	numStates := len(a.states)

	// Build the reversed edges once:
	reverse := make([][]int, numStates)
	for s := 0; s < numStates; s++ {
		for c := range a.alphabet {
			if d := a.next(s, c); d != -1 {
				reverse[d] = append(reverse[d], s)
			}
		}
	}

	live := a.isAccept.Clone()
	workList := make([]int, 0, numStates)
	for s, ok := live.NextSet(0); ok; s, ok = live.NextSet(s + 1) {
		workList = append(workList, int(s))
	}
	for len(workList) > 0 {
		s := workList[0]
		workList = workList[1:]
		for _, p := range reverse[s] {
			if !live.Test(uint(p)) {
				live.Set(uint(p))
				workList = append(workList, p)
			}
		}
	}
	return live
}

// complement returns the states in [0, n) not set in b.
func complement(b *bitset.BitSet, n int) *bitset.BitSet {
	all := bitset.New(uint(n))
	all.FlipRange(0, uint(n))
	return all.Difference(b)
}

// names maps the set bits of b to state names in declaration order.
func (a *Automaton) names(b *bitset.BitSet) []string {
	out := make([]string, 0, b.Count())
	for s, ok := b.NextSet(0); ok && s < uint(len(a.states)); s, ok = b.NextSet(s + 1) {
		out = append(out, a.states[s])
	}
	return out
}
