// Package description reads automaton definitions and word-pair batches from text.
//
// An automaton file in the text grammar looks like this:
//
//	AUTÔMATO=({q0,q1,q2,q3},{a,b},Prog,q0,{q1,q3})
//	Prog
//	(q0,a)=q1
//	(q0,b)=q2
//
// The first line names the automaton and lists its states, its alphabet, the label of the program
// function, the initial state and the final states. The label is repeated on its own line and every
// following line is one transition. Blank lines and surrounding whitespace are ignored.
package description

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/geange/dfa"
)

// SyntaxError reports a malformed line. Line is 1-based.
type SyntaxError struct {
	Line int
	Msg  string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
}

var (
	headerRe     = regexp.MustCompile(`^([^=\s]+)\s*=\s*\(\s*\{([^}]*)\}\s*,\s*\{([^}]*)\}\s*,\s*([^,\s]+)\s*,\s*([^,\s]+)\s*,\s*\{([^}]*)\}\s*\)$`)
	transitionRe = regexp.MustCompile(`^\(\s*([^,\s()]+)\s*,\s*([^)\s]+)\s*\)\s*=\s*(\S+)$`)
)

// Parse reads a definition in the text grammar. The result is not validated; pass it to dfa.New.
func Parse(text string) (dfa.Definition, error) {
	var (
		def   dfa.Definition
		label string
		stage int // 0 header, 1 label, 2 transitions
	)

	for i, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lineNo := i + 1

		switch stage {
		case 0:
			m := headerRe.FindStringSubmatch(line)
			if m == nil {
				return dfa.Definition{}, &SyntaxError{Line: lineNo, Msg: "expected name=({states},{alphabet},label,initial,{finals})"}
			}
			def.Name = m[1]
			def.States = splitList(m[2])
			def.Alphabet = splitList(m[3])
			label = m[4]
			def.Initial = m[5]
			def.Final = splitList(m[6])
			stage = 1
		case 1:
			if line != label {
				return dfa.Definition{}, &SyntaxError{Line: lineNo, Msg: fmt.Sprintf("expected program label %q, got %q", label, line)}
			}
			stage = 2
		default:
			m := transitionRe.FindStringSubmatch(line)
			if m == nil {
				return dfa.Definition{}, &SyntaxError{Line: lineNo, Msg: fmt.Sprintf("expected (state,symbol)=state, got %q", line)}
			}
			def.Transitions = append(def.Transitions, dfa.Transition{From: m[1], Symbol: m[2], To: m[3]})
		}
	}

	switch stage {
	case 0:
		return dfa.Definition{}, &SyntaxError{Line: 1, Msg: "missing header"}
	case 1:
		return dfa.Definition{}, &SyntaxError{Line: strings.Count(text, "\n") + 1, Msg: fmt.Sprintf("missing program label %q", label)}
	}
	return def, nil
}

// splitList splits a comma separated list, trimming every item. An empty list yields nil.
func splitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	items := strings.Split(s, ",")
	for i := range items {
		items[i] = strings.TrimSpace(items[i])
	}
	return items
}

// Format renders def in the text grammar, using "Prog" as the program label. Parse(Format(def))
// yields def back, except that empty lists come back as nil.
func Format(def dfa.Definition) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s=({%s},{%s},Prog,%s,{%s})\n",
		def.Name,
		strings.Join(def.States, ","),
		strings.Join(def.Alphabet, ","),
		def.Initial,
		strings.Join(def.Final, ","))
	sb.WriteString("Prog\n")
	for _, t := range def.Transitions {
		fmt.Fprintf(&sb, "(%s,%s)=%s\n", t.From, t.Symbol, t.To)
	}
	return sb.String()
}
