package dfamin

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// maxLineSize bounds one line of the description; the states line of a large automaton easily exceeds
// the scanner default of 64 KiB.
const maxLineSize = 1 << 30

// Load
// Parses the line-oriented automaton description:
//
//	a b            alphabet
//	s0 s1 s2       states
//	s0             start state
//	s2             accept states (may be empty)
//	s0 a s1        one "source symbol destination" line per transition
//
// Fields are separated by whitespace and blank transition lines are skipped. Every referenced name must be
// declared on the states line and each (state, symbol) pair may have one destination only.
func Load(r io.Reader) (*Automaton, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	lineNumber := 0
	readLine := func() (string, bool) {
		if !scanner.Scan() {
			return "", false
		}
		lineNumber++
		return scanner.Text(), true
	}

	header := make([][]string, 0, 4)
	for _, what := range []string{"alphabet", "states", "start state", "accept states"} {
		line, ok := readLine()
		if !ok {
			if err := scanner.Err(); err != nil {
				return nil, fmt.Errorf("%w: %v", ErrParse, err)
			}
			if what == "accept states" {
				header = append(header, nil)
				break
			}
			return nil, fmt.Errorf("%w: missing %s line", ErrParse, what)
		}
		header = append(header, strings.Fields(line))
	}

	alphabet, states, start, accept := header[0], header[1], header[2], header[3]
	a := NewAutomatonV1(len(states), alphabet...)
	for _, name := range states {
		if _, err := a.CreateState(name); err != nil {
			return nil, fmt.Errorf("line 2: %w", err)
		}
	}

	switch {
	case len(start) > 1:
		return nil, fmt.Errorf("%w: line 3: expected one start state, got %d", ErrParse, len(start))
	case len(start) == 1:
		s, ok := a.StateByName(start[0])
		if !ok {
			return nil, fmt.Errorf("%w: line 3: start state %q not declared", ErrMalformedAutomaton, start[0])
		}
		_ = a.SetStart(s)
	case len(states) > 0:
		return nil, fmt.Errorf("%w: line 3: missing start state", ErrMalformedAutomaton)
	}

	for _, name := range accept {
		s, ok := a.StateByName(name)
		if !ok {
			return nil, fmt.Errorf("%w: line 4: accept state %q not declared", ErrMalformedAutomaton, name)
		}
		a.SetAccept(s, true)
	}

	for {
		line, ok := readLine()
		if !ok {
			break
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		if len(fields) != 3 {
			return nil, fmt.Errorf("%w: line %d: expected \"source symbol destination\", got %q",
				ErrParse, lineNumber, line)
		}
		source, ok := a.StateByName(fields[0])
		if !ok {
			return nil, fmt.Errorf("%w: line %d: source state %q not declared",
				ErrMalformedAutomaton, lineNumber, fields[0])
		}
		dest, ok := a.StateByName(fields[2])
		if !ok {
			return nil, fmt.Errorf("%w: line %d: destination state %q not declared",
				ErrMalformedAutomaton, lineNumber, fields[2])
		}
		if err := a.AddTransition(source, fields[1], dest); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNumber, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}

	return a, nil
}

// LoadFile Loads the automaton description stored at path.
func LoadFile(path string) (*Automaton, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	a, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return a, nil
}
