package dfamin

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Write
// Serializes a in the line-oriented shape read by Load: alphabet, states, start state and accept states,
// then one "source symbol destination" line per transition ordered by source state, then symbol.
func Write(w io.Writer, a *Automaton) error {
	bw := bufio.NewWriter(w)

	accept := make([]string, 0, a.getAcceptStates().Count())
	for _, s := range a.AcceptStates() {
		accept = append(accept, a.Name(s))
	}

	fmt.Fprintln(bw, strings.Join(a.alphabet, " "))
	fmt.Fprintln(bw, strings.Join(a.names, " "))
	fmt.Fprintln(bw, a.Name(a.Start()))
	fmt.Fprintln(bw, strings.Join(accept, " "))

	for s := range a.names {
		for label, symbol := range a.alphabet {
			if dest := a.Step(s, label); dest != -1 {
				fmt.Fprintf(bw, "%s %s %s\n", a.names[s], symbol, a.names[dest])
			}
		}
	}
	return bw.Flush()
}

// WriteFile
// Writes a to path. The content goes to a temporary file in the same directory first and is renamed over
// path only once fully written, so a failure never leaves a partial file behind.
func WriteFile(path string, a *Automaton) error {
	return writeFileAtomic(path, func(w io.Writer) error {
		return Write(w, a)
	})
}

func writeFileAtomic(path string, write func(io.Writer) error) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if err := tmp.Chmod(0o644); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := write(tmp); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return os.Rename(tmpName, path)
}
