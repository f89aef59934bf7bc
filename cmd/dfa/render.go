package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/geange/dfa"
	"github.com/geange/dfa/description"
)

// renderer styles output for the terminal behind w. Styles degrade to plain text when w is not a
// terminal.
type renderer struct {
	title    lipgloss.Style
	label    lipgloss.Style
	accepted lipgloss.Style
	rejected lipgloss.Style
	body     lipgloss.Style
}

func newRenderer(w io.Writer) *renderer {
	r := lipgloss.NewRenderer(w)
	return &renderer{
		title:    r.NewStyle().Bold(true).Foreground(lipgloss.Color("#00FFFF")),
		label:    r.NewStyle().Foreground(lipgloss.Color("#888888")),
		accepted: r.NewStyle().Bold(true).Foreground(lipgloss.Color("#00FF00")),
		rejected: r.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF0000")),
		body:     r.NewStyle().PaddingLeft(2),
	}
}

func (r *renderer) result(word string, res dfa.Result) string {
	var sb strings.Builder
	sb.WriteString(r.label.Render("word:") + " " + fmt.Sprintf("%q", word) + "\n")
	if res.Accepted {
		sb.WriteString(r.accepted.Render("Word accepted.") + "\n")
		sb.WriteString(r.label.Render("Path:") + "\n")
		sb.WriteString(r.body.Render(joinPath(res.Path())))
	} else {
		sb.WriteString(r.rejected.Render("Word rejected.") + "\n")
		sb.WriteString(r.label.Render("Reason:") + "\n")
		sb.WriteString(r.body.Render(res.Reason.Error()))
	}
	return sb.String()
}

func (r *renderer) reduction(original *dfa.Automaton, red *dfa.Reduction) string {
	rows := [][2]string{
		{"states", fmt.Sprintf("%d -> %d", original.NumStates(), red.Automaton.NumStates())},
		{"transitions", fmt.Sprintf("%d -> %d", original.NumTransitions(), red.Automaton.NumTransitions())},
		{"unreachable", listOrNone(red.Unreachable)},
		{"merged", classOrNone(mergedOnly(red.Classes))},
		{"dead", listOrNone(red.Dead)},
	}

	var sb strings.Builder
	sb.WriteString(r.title.Render("Minimized "+original.Name()) + "\n")
	for _, row := range rows {
		sb.WriteString(r.label.Render(fmt.Sprintf("%-12s", row[0])) + " " + row[1] + "\n")
	}
	return sb.String()
}

func (r *renderer) pairs(accepted []description.WordPair, total int) string {
	var sb strings.Builder
	sb.WriteString(r.title.Render(fmt.Sprintf("Accepted pairs: %d of %d", len(accepted), total)))
	for _, p := range accepted {
		sb.WriteString("\n" + r.body.Render(p.First+", "+p.Second))
	}
	return sb.String()
}

func (r *renderer) failure(err error) string {
	return r.rejected.Render("error:") + " " + err.Error()
}

func listOrNone(items []string) string {
	if len(items) == 0 {
		return "none"
	}
	return strings.Join(items, ", ")
}

func classOrNone(classes [][]string) string {
	if len(classes) == 0 {
		return "none"
	}
	return classString(classes)
}
