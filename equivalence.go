package dfa

import (
	"slices"

	"github.com/bits-and-blooms/bitset"
)

// node is a state of the totalized automaton: either a real state index in [0, n) or the sink, which
// is always n. The sink absorbs every undefined transition and has no name; it only exists inside
// pairTable and is never mapped back to a state.
type node int

// tablePair One cell of the table-filling algorithm: an unordered pair of nodes and the pairs whose
// distinguishability follows from this one.
type tablePair struct {
	s1, s2     node
	dependents []int
}

// pairTable holds every pair at pairIndex; bit i of marked is set once pair i is distinguishable.
type pairTable struct {
	a      *Automaton
	sink   node
	pairs  []tablePair
	marked *bitset.BitSet
}

// EquivalenceClasses
// Partitions the states of a into maximal groups of states that no word distinguishes, using the
// table-filling algorithm. Each class is sorted by name; classes are ordered by the earliest declared
// member. Unreachable states are partitioned like any other state; Minimize removes them first.
func EquivalenceClasses(a *Automaton) [][]string {
	classes := equivalenceClasses(a)
	out := make([][]string, len(classes))
	for i, class := range classes {
		out[i] = a.classNames(class)
	}
	return out
}

// equivalenceClasses returns the partition as state indexes, each class ascending and the classes
// ordered by their first member.
func equivalenceClasses(a *Automaton) [][]int {
	t := newPairTable(a)
	t.markFinalAndNonFinal()
	t.fill()
	return t.classes()
}

func newPairTable(a *Automaton) *pairTable {
	n := len(a.states) + 1 // states plus the sink
	t := &pairTable{
		a:     a,
		sink:  node(len(a.states)),
		pairs: make([]tablePair, n*(n-1)/2),
	}
	t.marked = bitset.New(uint(len(t.pairs)))
	for j := 1; j < n; j++ {
		for i := 0; i < j; i++ {
			t.pairs[pairIndex(node(i), node(j))] = tablePair{s1: node(i), s2: node(j)}
		}
	}
	return t
}

// pairIndex maps an unordered pair of distinct nodes onto the lower triangle of the table.
func pairIndex(p, q node) int {
	if p > q {
		p, q = q, p
	}
	return int(q)*(int(q)-1)/2 + int(p)
}

// delta is the total transition function: undefined transitions and every transition of the sink
// lead to the sink.
func (t *pairTable) delta(p node, symbol int) node {
	if p == t.sink {
		return t.sink
	}
	if d := t.a.next(int(p), symbol); d != -1 {
		return node(d)
	}
	return t.sink
}

func (t *pairTable) accepting(p node) bool {
	return p != t.sink && t.a.isFinal(int(p))
}

// markFinalAndNonFinal marks every pair made of one final and one non-final node.
func (t *pairTable) markFinalAndNonFinal() {
	for i := range t.pairs {
		p := &t.pairs[i]
		if t.accepting(p.s1) != t.accepting(p.s2) {
			t.marked.Set(uint(i))
		}
	}
}

// fill visits every pair once. A pair whose successor pair on some symbol is already marked is marked
// together with everything depending on it; otherwise it registers as a dependent of each successor
// pair so that a later mark reaches it.
func (t *pairTable) fill() {
	numSymbols := len(t.a.alphabet)
	for i := range t.pairs {
		if t.marked.Test(uint(i)) {
			continue
		}
		s1, s2 := t.pairs[i].s1, t.pairs[i].s2
		for c := 0; c < numSymbols; c++ {
			r1, r2 := t.delta(s1, c), t.delta(s2, c)
			if r1 == r2 {
				continue
			}
			k := pairIndex(r1, r2)
			if t.marked.Test(uint(k)) {
				t.mark(i)
				break
			}
			t.pairs[k].dependents = append(t.pairs[k].dependents, i)
		}
	}
}

// mark flags pair i and, transitively, its dependents. Dependents are dropped once a pair is marked,
// so each dependency edge is followed at most once.
func (t *pairTable) mark(i int) {
	stack := []int{i}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if t.marked.Test(uint(top)) {
			continue
		}
		t.marked.Set(uint(top))
		p := &t.pairs[top]
		stack = append(stack, p.dependents...)
		p.dependents = nil
	}
}

// classes closes the unmarked pairs between real states under union-find. The sink never becomes a
// member: a state equivalent to the sink is grouped with the other such states through their own
// unmarked pairs.
func (t *pairTable) classes() [][]int {
	n := len(t.a.states)
	parent := make([]int, n)
	for i := range parent {
		parent[i] = i
	}
	find := func(x int) int {
		for parent[x] != x {
			parent[x] = parent[parent[x]]
			x = parent[x]
		}
		return x
	}

	for i := range t.pairs {
		p := &t.pairs[i]
		if t.marked.Test(uint(i)) || p.s1 == t.sink || p.s2 == t.sink {
			continue
		}
		r1, r2 := find(int(p.s1)), find(int(p.s2))
		if r1 == r2 {
			continue
		}
		// keep the smallest index as root so class order follows declaration order
		if r1 < r2 {
			parent[r2] = r1
		} else {
			parent[r1] = r2
		}
	}

	byRoot := make(map[int]int, n)
	out := make([][]int, 0, n)
	for s := 0; s < n; s++ {
		r := find(s)
		k, ok := byRoot[r]
		if !ok {
			k = len(out)
			byRoot[r] = k
			out = append(out, nil)
		}
		out[k] = append(out[k], s)
	}
	return out
}

// classNames returns the member names of a class sorted and de-duplicated.
func (a *Automaton) classNames(class []int) []string {
	names := make([]string, len(class))
	for i, s := range class {
		names[i] = a.states[s]
	}
	slices.Sort(names)
	return slices.Compact(names)
}
