// Command dfa simulates and minimizes deterministic finite automatons.
//
// Usage:
//
//	dfa check    -f FILE [-min] [-dead] WORD...
//	dfa minimize -f FILE [-dead] [-o text|yaml]
//	dfa pairs    -f FILE -w WORDS [-min] [-dead]
//	dfa dot      -f FILE [-min] [-dead]
//
// FILE is either the text grammar or YAML (.yaml, .yml). Logs are JSON lines on stderr, filtered by
// -log-level or LOG_LEVEL.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/geange/dfa/logging"
	"github.com/geange/dfa/workbench"
)

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

type command struct {
	name    string
	summary string
	run     func(env *env, args []string) error
}

var commands = []command{
	{"check", "run words and print the path or the rejection reason", runCheck},
	{"minimize", "print the minimized automaton", runMinimize},
	{"pairs", "print the word pairs whose words are both accepted", runPairs},
	{"dot", "print the automaton as a Graphviz digraph", runDOT},
}

// usageError is reported with exit code 2.
type usageError struct{ msg string }

func (e *usageError) Error() string { return e.msg }

func usagef(format string, args ...any) error {
	return &usageError{msg: fmt.Sprintf(format, args...)}
}

// env carries what every command shares once its flags are parsed.
type env struct {
	stdout io.Writer
	stderr io.Writer
	out    *renderer
	flags  *commonFlags
	bench  *workbench.Workbench
}

type commonFlags struct {
	file     string
	minimize bool
	dead     bool
	logLevel string
	metrics  bool
}

func (f *commonFlags) register(fs *flag.FlagSet, minimizeDefault bool) {
	fs.StringVar(&f.file, "f", "", "automaton file (text grammar, or YAML with a .yaml/.yml extension)")
	fs.BoolVar(&f.minimize, "min", minimizeDefault, "minimize the automaton after loading it")
	fs.BoolVar(&f.dead, "dead", false, "remove dead states when minimizing")
	fs.StringVar(&f.logLevel, "log-level", "", "log level: debug, info, warn or error (default $LOG_LEVEL, else warn)")
	fs.BoolVar(&f.metrics, "metrics", false, "print Prometheus metrics to stderr on exit")
}

func (f *commonFlags) logger(w io.Writer) logging.Logger {
	level := logging.LevelFromEnv(logging.WarnLevel)
	if f.logLevel != "" {
		level = logging.ParseLevel(f.logLevel)
	}
	return logging.NewJSONLogger(w, level)
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "usage: dfa <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "commands:")
	for _, c := range commands {
		fmt.Fprintf(w, "  %-9s %s\n", c.name, c.summary)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "run 'dfa <command> -h' for the flags of a command")
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		printUsage(stderr)
		return exitUsage
	}
	if args[0] == "-h" || args[0] == "-help" || args[0] == "--help" || args[0] == "help" {
		printUsage(stdout)
		return exitOK
	}

	for _, c := range commands {
		if c.name != args[0] {
			continue
		}
		e := &env{stdout: stdout, stderr: stderr, out: newRenderer(stdout)}
		err := c.run(e, args[1:])
		if e.bench != nil && e.flags.metrics {
			if merr := e.bench.Metrics().WriteText(stderr); merr != nil && err == nil {
				err = merr
			}
		}
		return report(e, err)
	}

	fmt.Fprintf(stderr, "dfa: unknown command %q\n\n", args[0])
	printUsage(stderr)
	return exitUsage
}

func report(e *env, err error) int {
	if err == nil {
		return exitOK
	}
	if errors.Is(err, flag.ErrHelp) {
		return exitOK
	}
	var ue *usageError
	if errors.As(err, &ue) {
		fmt.Fprintf(e.stderr, "dfa: %s\n", ue.msg)
		return exitUsage
	}
	fmt.Fprintln(e.stderr, e.out.failure(err))
	return exitError
}
