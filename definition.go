package dfa

import (
	"errors"
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"
)

// Definition The structured construction input of an Automaton. It is also the YAML/JSON wire shape of an
// automaton; the textual description grammar is handled by package description.
type Definition struct {
	Name        string       `json:"name" yaml:"name"`
	States      []string     `json:"states" yaml:"states" validate:"required,min=1,unique,dive,required"`
	Alphabet    []string     `json:"alphabet" yaml:"alphabet" validate:"unique,dive,required"`
	Initial     string       `json:"initial" yaml:"initial" validate:"required"`
	Final       []string     `json:"final" yaml:"final" validate:"dive,required"`
	Transitions []Transition `json:"transitions" yaml:"transitions" validate:"dive"`
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func structValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
	})
	return validate
}

// New Builds an Automaton from its definition. Every invariant is checked before anything is returned:
// the definition's shape (non-empty, duplicate-free states and symbols), the initial and final states,
// every transition's endpoints and symbol, and determinism. A transition listed twice with the same
// target is accepted once; with two different targets it is rejected.
func New(def Definition) (*Automaton, error) {
	if err := structValidator().Struct(def); err != nil {
		return nil, formatValidationError(err)
	}

	index := make(map[string]int, len(def.States))
	for i, s := range def.States {
		index[s] = i
	}
	initial, ok := index[def.Initial]
	if !ok {
		return nil, invalidf("initial state %q not found in states", def.Initial)
	}

	a := newAutomaton(def.Name, def.States, def.Alphabet, initial)

	for _, f := range def.Final {
		s, ok := index[f]
		if !ok {
			return nil, invalidf("final state %q not found in states", f)
		}
		a.setAccept(s, true)
	}

	for i, t := range def.Transitions {
		from, ok := index[t.From]
		if !ok {
			return nil, invalidf("transition %d: source state %q not found in states", i, t.From)
		}
		to, ok := index[t.To]
		if !ok {
			return nil, invalidf("transition %d: target state %q not found in states", i, t.To)
		}
		c, ok := a.symbols[t.Symbol]
		if !ok {
			return nil, invalidf("transition %d: symbol %q not in alphabet", i, t.Symbol)
		}
		if err := a.addTransition(from, c, to); err != nil {
			return nil, err
		}
	}

	return a, nil
}

// MustNew is like New but panics on an invalid definition. It is meant for fixtures.
func MustNew(def Definition) *Automaton {
	a, err := New(def)
	if err != nil {
		panic(err)
	}
	return a
}

// formatValidationError converts validator errors into an InvalidAutomatonError naming the first
// offending field.
func formatValidationError(err error) error {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) || len(validationErrs) == 0 {
		return &InvalidAutomatonError{Message: err.Error()}
	}

	e := validationErrs[0]
	field := e.Namespace()
	var msg string
	switch e.Tag() {
	case "required":
		msg = "is required"
	case "min":
		msg = fmt.Sprintf("must have at least %s element(s)", e.Param())
	case "unique":
		msg = "must not contain duplicates"
	default:
		msg = fmt.Sprintf("validation failed (%s)", e.Tag())
	}
	return invalidf("%s %s", field, msg)
}
