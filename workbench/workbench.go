// Package workbench loads automatons, minimizes them and runs words against them, logging and
// recording metrics for every operation.
package workbench

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/geange/dfa"
	"github.com/geange/dfa/description"
	"github.com/geange/dfa/logging"
	"github.com/geange/dfa/metrics"
)

type Workbench struct {
	cfg     Config
	logger  logging.Logger
	metrics *metrics.Registry
}

type Option func(*Workbench)

func WithLogger(l logging.Logger) Option {
	return func(w *Workbench) {
		w.logger = l
	}
}

func WithMetrics(r *metrics.Registry) Option {
	return func(w *Workbench) {
		w.metrics = r
	}
}

// New validates cfg and builds a Workbench. Without options it logs nothing and records metrics on a
// private registry.
func New(cfg Config, opts ...Option) (*Workbench, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	w := &Workbench{
		cfg:    cfg,
		logger: logging.NopLogger{},
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.metrics == nil {
		w.metrics = metrics.NewRegistry()
	}
	return w, nil
}

func (w *Workbench) Config() Config {
	return w.cfg
}

func (w *Workbench) Metrics() *metrics.Registry {
	return w.metrics
}

func (w *Workbench) minimizeOptions() []dfa.Option {
	if w.cfg.RemoveDeadStates {
		return []dfa.Option{dfa.WithDeadStateRemoval()}
	}
	return nil
}

// reduce minimizes a, timing, logging and recording the run.
func (w *Workbench) reduce(a *dfa.Automaton, logger logging.Logger) (*dfa.Reduction, error) {
	start := time.Now()
	red, err := dfa.Reduce(a, w.minimizeOptions()...)
	elapsed := time.Since(start)
	w.metrics.RecordMinimization(a.NumStates(), red, elapsed, err)

	if err != nil {
		logger.Error("minimization failed", logging.Latency(elapsed), logging.Error(err))
		return nil, err
	}
	logger.Info("minimized",
		logging.Int("states_before", a.NumStates()),
		logging.Int("states_after", red.Automaton.NumStates()),
		logging.Strings("unreachable", red.Unreachable),
		logging.Strings("dead", red.Dead),
		logging.Latency(elapsed))
	return red, nil
}

// Load builds the automaton of def and opens a session on it, minimized when the configuration asks
// for it.
func (w *Workbench) Load(def dfa.Definition) (*Session, error) {
	id := uuid.New().String()
	logger := w.logger.With(logging.Session(id), logging.Automaton(def.Name))

	a, err := dfa.New(def)
	w.metrics.RecordLoad(a, err)
	if err != nil {
		logger.Error("load failed", logging.Error(err))
		return nil, fmt.Errorf("load %q: %w", def.Name, err)
	}
	logger.Info("loaded",
		logging.Int("states", a.NumStates()),
		logging.Int("transitions", a.NumTransitions()))

	s := &Session{
		ID:        id,
		Original:  a,
		Automaton: a,
		logger:    logger,
		metrics:   w.metrics,
	}
	if w.cfg.MinimizeOnLoad {
		red, err := w.reduce(a, logger)
		if err != nil {
			return nil, fmt.Errorf("minimize %q: %w", def.Name, err)
		}
		s.Reduction = red
		s.Automaton = red.Automaton
	}
	w.metrics.SessionOpened()
	return s, nil
}

// LoadFile reads a definition with description.LoadFile and loads it.
func (w *Workbench) LoadFile(path string) (*Session, error) {
	def, err := description.LoadFile(path)
	if err != nil {
		w.metrics.RecordLoad(nil, err)
		w.logger.Error("read failed", logging.Path(path), logging.Error(err))
		return nil, err
	}
	return w.Load(def)
}

// MinimizeAll builds and minimizes every definition, running at most Config.Concurrency at once.
// Results are in input order. The first failure cancels the definitions not yet started and is
// returned.
func (w *Workbench) MinimizeAll(ctx context.Context, defs []dfa.Definition) ([]*dfa.Reduction, error) {
	results := make([]*dfa.Reduction, len(defs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(w.cfg.Concurrency)
	for i, def := range defs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			logger := w.logger.With(logging.Automaton(def.Name), logging.Int("index", i))

			a, err := dfa.New(def)
			w.metrics.RecordLoad(a, err)
			if err != nil {
				logger.Error("load failed", logging.Error(err))
				return fmt.Errorf("definition %d (%q): %w", i, def.Name, err)
			}
			red, err := w.reduce(a, logger)
			if err != nil {
				return fmt.Errorf("definition %d (%q): %w", i, def.Name, err)
			}
			results[i] = red
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
