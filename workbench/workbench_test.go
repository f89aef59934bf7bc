package workbench

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geange/dfa"
	"github.com/geange/dfa/description"
	"github.com/geange/dfa/logging"
	"github.com/geange/dfa/metrics"
)

// eightStates minimizes to q0q4, q1q7, q2, q5, q6.
func eightStates() dfa.Definition {
	return dfa.Definition{
		Name:     "AUTÔMATO",
		States:   []string{"q0", "q1", "q2", "q3", "q4", "q5", "q6", "q7"},
		Alphabet: []string{"a", "b"},
		Initial:  "q0",
		Final:    []string{"q2"},
		Transitions: []dfa.Transition{
			{From: "q0", Symbol: "a", To: "q1"},
			{From: "q0", Symbol: "b", To: "q5"},
			{From: "q1", Symbol: "a", To: "q6"},
			{From: "q1", Symbol: "b", To: "q2"},
			{From: "q2", Symbol: "a", To: "q0"},
			{From: "q2", Symbol: "b", To: "q2"},
			{From: "q3", Symbol: "a", To: "q2"},
			{From: "q4", Symbol: "a", To: "q7"},
			{From: "q4", Symbol: "b", To: "q5"},
			{From: "q5", Symbol: "a", To: "q2"},
			{From: "q5", Symbol: "b", To: "q6"},
			{From: "q6", Symbol: "b", To: "q4"},
			{From: "q7", Symbol: "a", To: "q6"},
			{From: "q7", Symbol: "b", To: "q2"},
		},
	}
}

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var m dto.Metric
	require.NoError(t, c.Write(&m))
	return m.GetCounter().GetValue()
}

// syncBuffer is a bytes.Buffer safe for the concurrent writes of MinimizeAll.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func newTestWorkbench(t *testing.T, cfg Config) (*Workbench, *syncBuffer) {
	t.Helper()
	buf := &syncBuffer{}
	w, err := New(cfg, WithLogger(logging.NewJSONLogger(buf, logging.DebugLevel)), WithMetrics(metrics.NewRegistry()))
	require.NoError(t, err)
	return w, buf
}

func TestConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.True(t, cfg.MinimizeOnLoad)
	assert.False(t, cfg.RemoveDeadStates)
	assert.GreaterOrEqual(t, cfg.Concurrency, 1)

	tests := []struct {
		name        string
		concurrency int
	}{
		{"zero", 0},
		{"negative", -3},
		{"too large", 5000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Concurrency = tt.concurrency
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), "Concurrency")

			_, err = New(cfg)
			assert.Error(t, err)
		})
	}
}

func TestLoad(t *testing.T) {
	t.Run("minimize on load", func(t *testing.T) {
		w, buf := newTestWorkbench(t, DefaultConfig())
		s, err := w.Load(eightStates())
		require.NoError(t, err)
		defer s.Close()

		assert.NotEmpty(t, s.ID)
		assert.Equal(t, 8, s.Original.NumStates())
		assert.Equal(t, []string{"q0q4", "q1q7", "q2", "q5", "q6"}, s.Automaton.States())
		require.NotNil(t, s.Reduction)
		assert.Equal(t, []string{"q3"}, s.Reduction.Unreachable)

		logs := buf.String()
		assert.Contains(t, logs, `"msg":"loaded"`)
		assert.Contains(t, logs, `"msg":"minimized"`)
		assert.Contains(t, logs, s.ID)

		assert.Equal(t, float64(1), counterValue(t, w.Metrics().LoadsTotal.WithLabelValues("success")))
		assert.Equal(t, float64(1), counterValue(t, w.Metrics().StatesRemovedTotal.WithLabelValues("unreachable")))
		assert.Equal(t, float64(2), counterValue(t, w.Metrics().StatesRemovedTotal.WithLabelValues("merged")))
	})

	t.Run("keep original", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.MinimizeOnLoad = false
		w, _ := newTestWorkbench(t, cfg)

		s, err := w.Load(eightStates())
		require.NoError(t, err)
		assert.Same(t, s.Original, s.Automaton)
		assert.Nil(t, s.Reduction)
	})

	t.Run("sessions get distinct ids", func(t *testing.T) {
		w, _ := newTestWorkbench(t, DefaultConfig())
		s1, err := w.Load(eightStates())
		require.NoError(t, err)
		s2, err := w.Load(eightStates())
		require.NoError(t, err)
		assert.NotEqual(t, s1.ID, s2.ID)

		var m dto.Metric
		require.NoError(t, w.Metrics().SessionsActive.Write(&m))
		assert.Equal(t, float64(2), m.GetGauge().GetValue())

		s1.Close()
		s1.Close()
		require.NoError(t, w.Metrics().SessionsActive.Write(&m))
		assert.Equal(t, float64(1), m.GetGauge().GetValue())
	})

	t.Run("invalid definition", func(t *testing.T) {
		w, buf := newTestWorkbench(t, DefaultConfig())
		def := eightStates()
		def.Initial = "q9"

		_, err := w.Load(def)
		require.Error(t, err)
		assert.True(t, errors.Is(err, dfa.ErrInvalidAutomaton))
		assert.Contains(t, buf.String(), `"level":"ERROR"`)
		assert.Equal(t, float64(1), counterValue(t, w.Metrics().LoadsTotal.WithLabelValues("error")))
	})

	t.Run("defaults", func(t *testing.T) {
		w, err := New(DefaultConfig())
		require.NoError(t, err)
		assert.NotNil(t, w.Metrics())
		_, err = w.Load(eightStates())
		assert.NoError(t, err)
	})
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "automaton.txt")
	require.NoError(t, os.WriteFile(path, []byte(description.Format(eightStates())), 0o644))

	w, _ := newTestWorkbench(t, DefaultConfig())
	s, err := w.LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 5, s.Automaton.NumStates())

	_, err = w.LoadFile(filepath.Join(dir, "missing.txt"))
	assert.Error(t, err)
	assert.Equal(t, float64(1), counterValue(t, w.Metrics().LoadsTotal.WithLabelValues("error")))
}

func TestSessionCheck(t *testing.T) {
	w, buf := newTestWorkbench(t, DefaultConfig())
	s, err := w.Load(eightStates())
	require.NoError(t, err)

	res := s.Check("ab")
	assert.True(t, res.Accepted)
	assert.Equal(t, []string{"q0q4", "a", "q1q7", "b", "q2"}, res.Path())

	res = s.Check("bba")
	assert.False(t, res.Accepted)
	assert.Equal(t, &dfa.UndefinedTransitionError{State: "q6", Symbol: "a"}, res.Reason)

	res = s.Check("a")
	assert.Equal(t, &dfa.NonFinalEndError{State: "q1q7"}, res.Reason)

	m := w.Metrics()
	assert.Equal(t, float64(1), counterValue(t, m.WordChecksTotal.WithLabelValues(metrics.OutcomeAccepted)))
	assert.Equal(t, float64(1), counterValue(t, m.WordChecksTotal.WithLabelValues(metrics.OutcomeUndefinedTransition)))
	assert.Equal(t, float64(1), counterValue(t, m.WordChecksTotal.WithLabelValues(metrics.OutcomeNonFinalEnd)))
	assert.Equal(t, 3, strings.Count(buf.String(), `"msg":"checked word"`))
}

func TestSessionCheckPairs(t *testing.T) {
	w, _ := newTestWorkbench(t, DefaultConfig())
	s, err := w.Load(eightStates())
	require.NoError(t, err)

	pairs := description.ParseWordPairs("ab,ab\nab,a\n,ab\nabb,ab\nbba,ab\n")
	accepted := s.CheckPairs(pairs)
	assert.Equal(t, []description.WordPair{{First: "ab", Second: "ab"}, {First: "abb", Second: "ab"}}, accepted)

	assert.Empty(t, s.CheckPairs(nil))
}

func TestMinimizeAll(t *testing.T) {
	small := dfa.Definition{
		Name:        "small",
		States:      []string{"s", "t", "u"},
		Alphabet:    []string{"a"},
		Initial:     "s",
		Final:       []string{"t", "u"},
		Transitions: []dfa.Transition{{From: "s", Symbol: "a", To: "t"}, {From: "t", Symbol: "a", To: "u"}, {From: "u", Symbol: "a", To: "u"}},
	}

	t.Run("results in input order", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Concurrency = 2
		w, _ := newTestWorkbench(t, cfg)

		defs := []dfa.Definition{eightStates(), small, eightStates(), small}
		results, err := w.MinimizeAll(context.Background(), defs)
		require.NoError(t, err)
		require.Len(t, results, 4)

		assert.Equal(t, []string{"q0q4", "q1q7", "q2", "q5", "q6"}, results[0].Automaton.States())
		assert.Equal(t, []string{"s", "tu"}, results[1].Automaton.States())
		assert.Equal(t, results[0].Automaton.Definition(), results[2].Automaton.Definition())
		assert.Equal(t, float64(4), counterValue(t, w.Metrics().MinimizationsTotal.WithLabelValues("success")))
	})

	t.Run("dead state removal", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.RemoveDeadStates = true
		w, _ := newTestWorkbench(t, cfg)

		withDead := dfa.Definition{
			Name:        "dead",
			States:      []string{"s", "d"},
			Alphabet:    []string{"a"},
			Initial:     "s",
			Final:       []string{"s"},
			Transitions: []dfa.Transition{{From: "s", Symbol: "a", To: "d"}, {From: "d", Symbol: "a", To: "d"}},
		}

		results, err := w.MinimizeAll(context.Background(), []dfa.Definition{withDead})
		require.NoError(t, err)
		assert.Equal(t, []string{"d"}, results[0].Dead)
		assert.Equal(t, []string{"s"}, results[0].Automaton.States())
	})

	t.Run("first error is returned", func(t *testing.T) {
		w, _ := newTestWorkbench(t, DefaultConfig())
		bad := small
		bad.Initial = "nope"

		_, err := w.MinimizeAll(context.Background(), []dfa.Definition{small, bad})
		require.Error(t, err)
		assert.True(t, errors.Is(err, dfa.ErrInvalidAutomaton))
		assert.Contains(t, err.Error(), "definition 1")
	})

	t.Run("cancelled context", func(t *testing.T) {
		w, _ := newTestWorkbench(t, DefaultConfig())
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := w.MinimizeAll(ctx, []dfa.Definition{small})
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("empty input", func(t *testing.T) {
		w, _ := newTestWorkbench(t, DefaultConfig())
		results, err := w.MinimizeAll(context.Background(), nil)
		require.NoError(t, err)
		assert.Empty(t, results)
	})
}
