package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const eightStates = `AUTÔMATO=({q0,q1,q2,q3,q4,q5,q6,q7},{a,b},Prog,q0,{q2})
Prog
(q0,a)=q1
(q0,b)=q5
(q1,a)=q6
(q1,b)=q2
(q2,a)=q0
(q2,b)=q2
(q3,a)=q2
(q4,a)=q7
(q4,b)=q5
(q5,a)=q2
(q5,b)=q6
(q6,b)=q4
(q7,a)=q6
(q7,b)=q2
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func runCLI(args ...string) (code int, stdout, stderr string) {
	var out, errOut bytes.Buffer
	code = run(args, &out, &errOut)
	return code, out.String(), errOut.String()
}

func TestUsage(t *testing.T) {
	tests := []struct {
		name string
		args []string
		code int
	}{
		{"no command", nil, exitUsage},
		{"unknown command", []string{"frobnicate"}, exitUsage},
		{"help", []string{"help"}, exitOK},
		{"missing file flag", []string{"check", "ab"}, exitUsage},
		{"bad flag", []string{"dot", "-nope"}, exitUsage},
		{"command help", []string{"dot", "-h"}, exitOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _, _ := runCLI(tt.args...)
			assert.Equal(t, tt.code, code)
		})
	}

	t.Run("check without words", func(t *testing.T) {
		path := writeFile(t, "a.txt", eightStates)
		code, _, stderr := runCLI("check", "-f", path)
		assert.Equal(t, exitUsage, code)
		assert.Contains(t, stderr, "no words given")
	})
}

func TestCheck(t *testing.T) {
	path := writeFile(t, "a.txt", eightStates)

	code, stdout, _ := runCLI("check", "-f", path, "ab", "abb", "aaa")
	require.Equal(t, exitOK, code)
	assert.Contains(t, stdout, "Word accepted.")
	assert.Contains(t, stdout, "q0, a ->")
	assert.Contains(t, stdout, "Word rejected.")
	assert.Contains(t, stdout, "undefined transition at state q6 on symbol")

	code, stdout, _ = runCLI("check", "-f", path, "-min", "ab")
	require.Equal(t, exitOK, code)
	assert.Contains(t, stdout, "q0q4, a ->")
	assert.Contains(t, stdout, "q1q7, b ->")
}

func TestMinimize(t *testing.T) {
	path := writeFile(t, "a.txt", eightStates)

	code, stdout, _ := runCLI("minimize", "-f", path)
	require.Equal(t, exitOK, code)
	assert.Contains(t, stdout, "8 -> 5")
	assert.Contains(t, stdout, "{q0,q4} {q1,q7}")
	assert.Contains(t, stdout, "AUTÔMATO=({q0q4,q1q7,q2,q5,q6},{a,b},Prog,q0q4,{q2})")
	assert.Contains(t, stdout, "(q0q4,a)=q1q7")

	code, stdout, _ = runCLI("minimize", "-f", path, "-o", "yaml")
	require.Equal(t, exitOK, code)
	assert.Contains(t, stdout, "initial: q0q4")

	code, _, _ = runCLI("minimize", "-f", path, "-o", "xml")
	assert.Equal(t, exitUsage, code)
}

func TestPairs(t *testing.T) {
	path := writeFile(t, "a.txt", eightStates)
	words := writeFile(t, "words.txt", "ab,abb\nab,a\n,ab\n")

	code, stdout, _ := runCLI("pairs", "-f", path, "-w", words)
	require.Equal(t, exitOK, code)
	assert.Contains(t, stdout, "Accepted pairs: 1 of 3")
	assert.Contains(t, stdout, "ab, abb")

	code, _, _ = runCLI("pairs", "-f", path)
	assert.Equal(t, exitUsage, code)

	code, _, _ = runCLI("pairs", "-f", path, "-w", words+".missing")
	assert.Equal(t, exitError, code)
}

func TestDOT(t *testing.T) {
	path := writeFile(t, "a.yaml", `
name: tiny
states: [s, t]
alphabet: [a]
initial: s
final: [t]
transitions:
  - {from: s, symbol: a, to: t}
`)
	code, stdout, _ := runCLI("dot", "-f", path)
	require.Equal(t, exitOK, code)
	assert.True(t, strings.HasPrefix(stdout, `digraph "tiny" {`))
	assert.Contains(t, stdout, `n0 [label="s"];`)
	assert.Contains(t, stdout, `n0 -> n1 [label="a"];`)
}

func TestErrors(t *testing.T) {
	t.Run("syntax error", func(t *testing.T) {
		path := writeFile(t, "bad.txt", "not an automaton")
		code, _, stderr := runCLI("check", "-f", path, "a")
		assert.Equal(t, exitError, code)
		assert.Contains(t, stderr, "line 1")
	})

	t.Run("invalid automaton", func(t *testing.T) {
		path := writeFile(t, "bad.txt", "A=({q0},{a},Prog,q9,{q0})\nProg\n")
		code, _, stderr := runCLI("dot", "-f", path)
		assert.Equal(t, exitError, code)
		assert.Contains(t, stderr, "invalid automaton")
	})
}

func TestLogsAndMetrics(t *testing.T) {
	path := writeFile(t, "a.txt", eightStates)

	code, _, stderr := runCLI("check", "-f", path, "-log-level", "debug", "-metrics", "ab")
	require.Equal(t, exitOK, code)
	assert.Contains(t, stderr, `"msg":"loaded"`)
	assert.Contains(t, stderr, `"msg":"checked word"`)
	assert.Contains(t, stderr, `dfa_word_checks_total{outcome="accepted"} 1`)
}
