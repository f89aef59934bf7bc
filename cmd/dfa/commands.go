package main

import (
	"flag"
	"fmt"
	"strings"

	"github.com/geange/dfa/description"
	"github.com/geange/dfa/workbench"
)

// parse parses the flags of one command. Parse errors are already printed by the flag set.
func (e *env) parse(name string, args []string, minimizeDefault bool, extra func(fs *flag.FlagSet)) (*flag.FlagSet, error) {
	fs := flag.NewFlagSet("dfa "+name, flag.ContinueOnError)
	fs.SetOutput(e.stderr)
	e.flags = &commonFlags{}
	e.flags.register(fs, minimizeDefault)
	if extra != nil {
		extra(fs)
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, err
		}
		return nil, &usageError{msg: err.Error()}
	}
	if e.flags.file == "" {
		return nil, usagef("%s: -f is required", name)
	}
	return fs, nil
}

// open builds the workbench from the parsed flags and loads the file.
func (e *env) open(minimize bool) (*workbench.Session, error) {
	cfg := workbench.DefaultConfig()
	cfg.MinimizeOnLoad = minimize
	cfg.RemoveDeadStates = e.flags.dead

	bench, err := workbench.New(cfg, workbench.WithLogger(e.flags.logger(e.stderr)))
	if err != nil {
		return nil, err
	}
	e.bench = bench
	return bench.LoadFile(e.flags.file)
}

func runCheck(e *env, args []string) error {
	fs, err := e.parse("check", args, false, nil)
	if err != nil {
		return err
	}
	if fs.NArg() == 0 {
		return usagef("check: no words given")
	}

	s, err := e.open(e.flags.minimize)
	if err != nil {
		return err
	}
	defer s.Close()

	for _, word := range fs.Args() {
		fmt.Fprintln(e.stdout, e.out.result(word, s.Check(word)))
	}
	return nil
}

func runMinimize(e *env, args []string) error {
	var format string
	_, err := e.parse("minimize", args, true, func(fs *flag.FlagSet) {
		fs.StringVar(&format, "o", "text", "output format of the minimized automaton: text or yaml")
	})
	if err != nil {
		return err
	}
	if format != "text" && format != "yaml" {
		return usagef("minimize: unknown output format %q", format)
	}

	s, err := e.open(true)
	if err != nil {
		return err
	}
	defer s.Close()

	fmt.Fprintln(e.stdout, e.out.reduction(s.Original, s.Reduction))

	def := s.Automaton.Definition()
	if format == "yaml" {
		data, err := description.MarshalYAML(def)
		if err != nil {
			return err
		}
		_, err = e.stdout.Write(data)
		return err
	}
	fmt.Fprint(e.stdout, description.Format(def))
	return nil
}

func runPairs(e *env, args []string) error {
	var words string
	_, err := e.parse("pairs", args, true, func(fs *flag.FlagSet) {
		fs.StringVar(&words, "w", "", "word-pair file, one word1,word2 pair per line")
	})
	if err != nil {
		return err
	}
	if words == "" {
		return usagef("pairs: -w is required")
	}

	pairs, err := description.ReadWordPairs(words)
	if err != nil {
		return err
	}
	s, err := e.open(e.flags.minimize)
	if err != nil {
		return err
	}
	defer s.Close()

	fmt.Fprintln(e.stdout, e.out.pairs(s.CheckPairs(pairs), len(pairs)))
	return nil
}

func runDOT(e *env, args []string) error {
	if _, err := e.parse("dot", args, false, nil); err != nil {
		return err
	}
	s, err := e.open(e.flags.minimize)
	if err != nil {
		return err
	}
	defer s.Close()

	fmt.Fprint(e.stdout, s.Automaton.DOT())
	return nil
}

// joinPath renders a run path one transition per line: "q0, a ->" ... ending with the last state.
func joinPath(path []string) string {
	var sb strings.Builder
	for i := 0; i+1 < len(path); i += 2 {
		fmt.Fprintf(&sb, "%s, %s ->\n", path[i], path[i+1])
	}
	sb.WriteString(path[len(path)-1])
	return sb.String()
}

func classString(classes [][]string) string {
	parts := make([]string, len(classes))
	for i, c := range classes {
		parts[i] = "{" + strings.Join(c, ",") + "}"
	}
	return strings.Join(parts, " ")
}

// mergedOnly keeps the classes with more than one member.
func mergedOnly(classes [][]string) [][]string {
	var out [][]string
	for _, c := range classes {
		if len(c) > 1 {
			out = append(out, c)
		}
	}
	return out
}
