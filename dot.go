package dfa

import (
	"fmt"
	"strings"
)

// DOT Returns a Graphviz digraph of the automaton. States are nodes n0, n1, ... in declaration order,
// labelled with their names, so any state name (including "start") is safe. Final states are drawn
// as double circles, an invisible start node points at the initial state, and parallel transitions
// between the same two states share one edge labelled with all their symbols.
func (a *Automaton) DOT() string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("digraph %s {\n", quoteDOT(a.name)))
	sb.WriteString("  rankdir=LR;\n")
	sb.WriteString("  node [shape=circle];\n")
	sb.WriteString("  start [shape=point];\n")
	sb.WriteString(fmt.Sprintf("  start -> %s;\n", nodeID(a.initial)))

	for s, name := range a.states {
		if a.isFinal(s) {
			sb.WriteString(fmt.Sprintf("  %s [label=%s, shape=doublecircle];\n", nodeID(s), quoteDOT(name)))
		} else {
			sb.WriteString(fmt.Sprintf("  %s [label=%s];\n", nodeID(s), quoteDOT(name)))
		}
	}

	for s := range a.states {
		// group symbols by destination, keeping first-seen destination order
		order := make([]int, 0, len(a.alphabet))
		labels := make(map[int][]string, len(a.alphabet))
		for c, sym := range a.alphabet {
			d := a.next(s, c)
			if d == -1 {
				continue
			}
			if _, ok := labels[d]; !ok {
				order = append(order, d)
			}
			labels[d] = append(labels[d], sym)
		}
		for _, d := range order {
			sb.WriteString(fmt.Sprintf("  %s -> %s [label=%s];\n",
				nodeID(s), nodeID(d), quoteDOT(strings.Join(labels[d], ","))))
		}
	}

	sb.WriteString("}\n")
	return sb.String()
}

// nodeID is the DOT identifier of state s. It never equals the start node's identifier.
func nodeID(s int) string {
	return fmt.Sprintf("n%d", s)
}

func quoteDOT(s string) string {
	return `"` + strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(s) + `"`
}
