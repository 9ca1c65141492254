// Command energymark runs a workload under the iteration marker protocol.
//
// It injects the ITERATIONS budget into the workload's environment, feeds
// scenario-defined stdin, checks expected stdout, and can record and
// summarize the workload's marker trace:
//
//	energymark -scenario scenario.yaml -trace run.trace
//	energymark -iterations 3 -- ./workload --flag
//
// The external measurement tool observing the workload is out of scope
// here; energymark only launches the workload the way the measurement
// harness would.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stderr))
}

func run(args []string, errOut io.Writer) int {
	fs := flag.NewFlagSet("energymark", flag.ContinueOnError)
	fs.SetOutput(errOut)
	scenarioPath := fs.String("scenario", "", "scenario YAML describing the workload")
	iterations := fs.Uint64("iterations", 1, "measured iteration budget (overrides the scenario)")
	timeout := fs.Duration("timeout", 0, "workload timeout, 0 for none (overrides the scenario)")
	tracePath := fs.String("trace", "", "record the workload's marker trace to this file and summarize it")
	verbose := fs.Bool("v", false, "enable debug logging")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	log := newLogger(errOut, *verbose)

	var sc *Scenario
	switch {
	case *scenarioPath != "":
		var err error
		sc, err = LoadScenario(*scenarioPath)
		if err != nil {
			log.Error().Err(err).Str("path", *scenarioPath).Msg("cannot load scenario")
			return 1
		}
	case fs.NArg() > 0:
		sc = &Scenario{Name: "command-line", Command: fs.Args()}
	default:
		fmt.Fprintln(errOut, "usage: energymark [flags] -scenario file.yaml")
		fmt.Fprintln(errOut, "       energymark [flags] command [args...]")
		fs.PrintDefaults()
		return 2
	}

	// Flags override the scenario only when passed explicitly, so both
	// -iterations 0 and -timeout 0 are honored as overrides.
	iters := sc.IterationCount()
	runTimeout := time.Duration(sc.Timeout)
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "iterations":
			iters = *iterations
		case "timeout":
			runTimeout = *timeout
		}
	})

	r := &Runner{
		Iterations: iters,
		Timeout:    runTimeout,
		TracePath:  *tracePath,
		Log:        log,
	}
	if err := r.Run(context.Background(), sc); err != nil {
		log.Error().Err(err).Str("scenario", sc.Name).Msg("run failed")
		return 1
	}

	if *tracePath != "" {
		if err := summarizeTrace(log, *tracePath); err != nil {
			log.Warn().Err(err).Str("path", *tracePath).Msg("cannot summarize marker trace")
		}
	}
	return 0
}

func newLogger(out io.Writer, verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	writer := zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	return zerolog.New(writer).Level(level).With().Timestamp().Logger()
}
