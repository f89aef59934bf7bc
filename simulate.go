package dfa

// Step One transition taken while simulating a word.
type Step struct {
	From   string
	Symbol string
	To     string
}

// Result The outcome of CheckWord. Reason is nil when the word is accepted, otherwise it is a
// *UndefinedTransitionError or a *NonFinalEndError. Steps holds the transitions taken, up to the
// failing lookup for an undefined transition.
type Result struct {
	Accepted bool
	Start    string
	Steps    []Step
	Reason   error
}

// Path Returns the alternating sequence state, symbol, state, ... of the run. It always starts and
// ends with a state; for the empty word it is just the initial state.
func (r Result) Path() []string {
	path := make([]string, 0, 1+2*len(r.Steps))
	path = append(path, r.Start)
	for _, s := range r.Steps {
		path = append(path, s.Symbol, s.To)
	}
	return path
}

// End Returns the state the run stopped in.
func (r Result) End() string {
	if len(r.Steps) == 0 {
		return r.Start
	}
	return r.Steps[len(r.Steps)-1].To
}

// CheckWord Runs word from the initial state. The word is first split into symbols by the automaton's
// Tokenizer; characters outside the alphabet are dropped. The run stops at the first undefined
// transition. a must come from New; see Automaton.
func (a *Automaton) CheckWord(word string) Result {
	symbols := a.tokenizer.Split(word)

	state := a.initial
	res := Result{
		Start: a.states[state],
		Steps: make([]Step, 0, len(symbols)),
	}
	for _, sym := range symbols {
		next := a.next(state, a.symbols[sym])
		if next == -1 {
			res.Reason = &UndefinedTransitionError{State: a.states[state], Symbol: sym}
			return res
		}
		res.Steps = append(res.Steps, Step{From: a.states[state], Symbol: sym, To: a.states[next]})
		state = next
	}

	if !a.isFinal(state) {
		res.Reason = &NonFinalEndError{State: a.states[state]}
		return res
	}
	res.Accepted = true
	return res
}

// Accepts Returns true if the automaton accepts word.
func (a *Automaton) Accepts(word string) bool {
	return a.CheckWord(word).Accepted
}
