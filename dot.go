package dfamin

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// GenerateDot Returns a Graphviz DOT rendering of a. Accept states are drawn as double circles, an
// invisible point marks the start state and parallel edges between the same pair of states are merged
// into one edge labelled with every symbol.
func GenerateDot(a *Automaton) string {
	var sb strings.Builder

	sb.WriteString("digraph DFA {\n")
	sb.WriteString("  rankdir=LR;\n")
	sb.WriteString("  node [shape=circle];\n")
	sb.WriteString("\n")

	if a.Start() != -1 {
		sb.WriteString("  __start [shape=point];\n")
		sb.WriteString(fmt.Sprintf("  __start -> %s;\n", strconv.Quote(a.Name(a.Start()))))
		sb.WriteString("\n")
	}

	for s, name := range a.names {
		if a.IsAccept(s) {
			sb.WriteString(fmt.Sprintf("  %s [shape=doublecircle];\n", strconv.Quote(name)))
		} else {
			sb.WriteString(fmt.Sprintf("  %s;\n", strconv.Quote(name)))
		}
	}
	sb.WriteString("\n")

	for s, name := range a.names {
		// Destinations in order of first symbol, with their symbols.
		order := make([]int, 0)
		labels := make(map[int][]string)
		for label, symbol := range a.alphabet {
			dest := a.Step(s, label)
			if dest == -1 {
				continue
			}
			if _, ok := labels[dest]; !ok {
				order = append(order, dest)
			}
			labels[dest] = append(labels[dest], symbol)
		}
		for _, dest := range order {
			sb.WriteString(fmt.Sprintf("  %s -> %s [label=%s];\n",
				strconv.Quote(name), strconv.Quote(a.names[dest]), strconv.Quote(strings.Join(labels[dest], ","))))
		}
	}

	sb.WriteString("}\n")
	return sb.String()
}

// WriteDot Writes the DOT rendering of a to w.
func WriteDot(w io.Writer, a *Automaton) error {
	_, err := io.WriteString(w, GenerateDot(a))
	return err
}

// WriteDotFile Writes the DOT rendering of a to path, replacing it atomically.
func WriteDotFile(path string, a *Automaton) error {
	return writeFileAtomic(path, func(w io.Writer) error {
		return WriteDot(w, a)
	})
}
