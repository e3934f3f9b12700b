package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geange/dfamin"
)

const exampleDFA = `a b
s0 s1 s2 s3 s4
s0
s3
s0 a s1
s0 b s2
s1 a s3
s1 b s2
s2 a s3
s2 b s2
s3 a s3
s3 b s3
s4 a s4
`

func writeInput(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "nodes.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestRunMinimizesFile(t *testing.T) {
	dir := t.TempDir()
	in := writeInput(t, dir, exampleDFA)
	out := filepath.Join(dir, "results.txt")
	dot := filepath.Join(dir, "results.dot")

	var stdout, stderr bytes.Buffer
	err := run([]string{"-config", writeConfig(t, dir, ""), "-dot", dot, in, out}, &stdout, &stderr)
	require.NoError(t, err, stderr.String())

	minimized, err := dfamin.LoadFile(out)
	require.NoError(t, err)
	// s4 is unreachable but kept without -trim.
	assert.Equal(t, 4, minimized.GetNumStates())
	assert.Contains(t, stdout.String(), "DFA minimized")
	assert.Contains(t, stderr.String(), "unreachable")

	data, err := os.ReadFile(dot)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "digraph DFA {"))
}

func TestRunTrimAndMemberNames(t *testing.T) {
	dir := t.TempDir()
	in := writeInput(t, dir, exampleDFA)
	out := filepath.Join(dir, "results.txt")

	var stdout, stderr bytes.Buffer
	err := run([]string{"-config", writeConfig(t, dir, ""), "-trim", "-names", "members", "-quiet", in, out}, &stdout, &stderr)
	require.NoError(t, err, stderr.String())
	assert.Empty(t, stdout.String())

	minimized, err := dfamin.LoadFile(out)
	require.NoError(t, err)
	assert.Equal(t, 3, minimized.GetNumStates())
	_, ok := minimized.StateByName("{s1,s2}")
	assert.True(t, ok)
	assert.Equal(t, "{s0}", minimized.Name(minimized.Start()))
}

func TestRunUsesConfigPaths(t *testing.T) {
	dir := t.TempDir()
	in := writeInput(t, dir, exampleDFA)
	out := filepath.Join(dir, "from-config.txt")
	cfg := writeConfig(t, dir, "input: "+in+"\noutput: "+out+"\ntrim_unreachable: true\nlog_level: error\n")

	var stdout, stderr bytes.Buffer
	require.NoError(t, run([]string{"-config", cfg}, &stdout, &stderr))

	minimized, err := dfamin.LoadFile(out)
	require.NoError(t, err)
	assert.Equal(t, 3, minimized.GetNumStates())
}

func TestRunDoesNotWriteOnMalformedInput(t *testing.T) {
	dir := t.TempDir()
	in := writeInput(t, dir, "a\ns0 s1\nmissing\ns1\ns0 a s1\n")
	out := filepath.Join(dir, "results.txt")

	var stdout, stderr bytes.Buffer
	err := run([]string{"-config", writeConfig(t, dir, ""), in, out}, &stdout, &stderr)
	require.Error(t, err)
	assert.ErrorIs(t, err, dfamin.ErrMalformedAutomaton)

	_, statErr := os.Stat(out)
	assert.True(t, os.IsNotExist(statErr))
	// main prints the failure; run only returns it.
	assert.NotContains(t, stderr.String(), "missing")
}

func TestRunNamesFlagIgnoresCase(t *testing.T) {
	dir := t.TempDir()
	in := writeInput(t, dir, exampleDFA)
	out := filepath.Join(dir, "results.txt")

	var stdout, stderr bytes.Buffer
	err := run([]string{"-config", writeConfig(t, dir, ""), "-trim", "-names", " Members ", "-quiet", in, out}, &stdout, &stderr)
	require.NoError(t, err, stderr.String())

	minimized, err := dfamin.LoadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "{s0}", minimized.Name(minimized.Start()))
}

func TestRunRejectsBadArguments(t *testing.T) {
	var stdout, stderr bytes.Buffer
	assert.Error(t, run([]string{"a", "b", "c"}, &stdout, &stderr))
	assert.Error(t, run([]string{"-names", "random", "in", "out"}, &stdout, &stderr))
}

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "dfamin.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, LogLevelDebug, ParseLogLevel("DEBUG"))
	assert.Equal(t, LogLevelWarn, ParseLogLevel("warn"))
	assert.Equal(t, LogLevelError, ParseLogLevel("error"))
	assert.Equal(t, LogLevelInfo, ParseLogLevel("whatever"))

	var buf bytes.Buffer
	l := NewLogger(&buf, LogLevelWarn, "t ")
	l.Infof("hidden")
	l.Warnf("shown %d", 1)
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown 1")

	var nilLogger *Logger
	nilLogger.Errorf("no panic")
}
