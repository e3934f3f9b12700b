// Command dfamin reads a DFA description, minimizes it and writes the minimal DFA back in the same format.
//
//	dfamin [flags] [input] [output]
//
// Input and output default to nodes.txt and results.txt, or to the paths named in dfamin.yaml.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/geange/dfamin"
	"github.com/geange/dfamin/internal/config"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "dfamin: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("dfamin", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configFile := fs.String("config", "", "path to YAML config (defaults to "+config.DefaultFile+" if present)")
	dotOutput := fs.String("dot", "", "also write the minimized DFA as Graphviz DOT to this path")
	naming := fs.String("names", "", "state naming of the result: sequential or members")
	trim := fs.Bool("trim", false, "drop states unreachable from the start state before minimizing")
	verbose := fs.Bool("v", false, "log partition details")
	quiet := fs.Bool("quiet", false, "only log errors and skip the summary")
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "usage: dfamin [flags] [input] [output]")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 2 {
		fs.Usage()
		return fmt.Errorf("expected at most two paths, got %d", fs.NArg())
	}

	var cfg config.Config
	var err error
	if *configFile != "" {
		cfg, err = config.Load(*configFile, false)
	} else {
		cfg, err = config.Load(config.DefaultFile, true)
	}
	if err != nil {
		return err
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "dot":
			cfg.DotOutput = *dotOutput
		case "names":
			cfg.Naming = strings.ToLower(strings.TrimSpace(*naming))
		case "trim":
			cfg.TrimUnreachable = *trim
		case "v":
			if *verbose {
				cfg.LogLevel = "debug"
			}
		case "quiet":
			if *quiet {
				cfg.LogLevel = "error"
			}
		}
	})
	if fs.NArg() > 0 {
		cfg.Input = fs.Arg(0)
	}
	if fs.NArg() > 1 {
		cfg.Output = fs.Arg(1)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := NewLogger(stderr, ParseLogLevel(cfg.LogLevel), "dfamin ")
	s, err := minimizeFile(cfg, logger)
	if err != nil {
		return err
	}
	if cfg.LogLevel != "error" {
		fmt.Fprintln(stdout, renderSummary(s))
	}
	return nil
}

// minimizeFile runs Load, the optional trim, Minimize, Rebuild and Write. Nothing is written unless every
// earlier step succeeded.
func minimizeFile(cfg config.Config, logger *Logger) (summary, error) {
	s := summary{input: cfg.Input, output: cfg.Output}

	logger.Infof("reading %s", cfg.Input)
	source, err := dfamin.LoadFile(cfg.Input)
	if err != nil {
		return s, fmt.Errorf("load: %w", err)
	}
	s.source = source
	logger.Debugf("alphabet %v, %d states, start %q", source.Alphabet(), source.GetNumStates(), source.Name(source.Start()))

	a := source
	if cfg.TrimUnreachable {
		a, err = dfamin.RemoveUnreachable(source)
		if err != nil {
			return s, err
		}
		s.trimmed = source.GetNumStates() - a.GetNumStates()
		logger.Debugf("removed %d unreachable states", s.trimmed)
	} else if dfamin.HasUnreachableStates(source) {
		logger.Warnf("%s has states unreachable from the start state; use -trim for a minimal result", cfg.Input)
	}

	p, err := dfamin.Minimize(a)
	if err != nil {
		return s, err
	}
	logger.Debugf("stable partition: %s", p)

	namer := dfamin.SequentialNames
	if cfg.Naming == config.NamingMembers {
		namer = dfamin.MemberNames
	}
	minimized, err := dfamin.Rebuild(a, p, dfamin.WithNamer(namer))
	if err != nil {
		return s, err
	}
	s.minimized = minimized

	logger.Infof("writing %s", cfg.Output)
	if err := dfamin.WriteFile(cfg.Output, minimized); err != nil {
		return s, err
	}
	if cfg.DotOutput != "" {
		logger.Infof("writing %s", cfg.DotOutput)
		if err := dfamin.WriteDotFile(cfg.DotOutput, minimized); err != nil {
			return s, err
		}
	}
	return s, nil
}
