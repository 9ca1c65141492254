package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/energybench/energysignal"
)

// Runner executes a scenario's workload with the marker environment
// injected, the way the energy-bench harness launches instrumented
// programs.
type Runner struct {
	// Iterations is the resolved iteration budget injected as ITERATIONS.
	Iterations uint64

	// Timeout bounds a single workload run; zero disables the bound.
	// Resolution against the scenario's own timeout happens in the caller.
	Timeout time.Duration

	// TracePath, when non-empty, is injected as ENERGY_SIGNAL_TRACE so the
	// workload records its marker decisions.
	TracePath string

	Log zerolog.Logger
}

// Run executes every test of the scenario in order, stopping at the first
// failure. A scenario without tests runs once with no stdin and no output
// check.
func (r *Runner) Run(ctx context.Context, sc *Scenario) error {
	tests := sc.Tests
	if len(tests) == 0 {
		tests = []Test{{ID: "default"}}
	}
	for _, tc := range tests {
		if err := r.runTest(ctx, sc, tc); err != nil {
			return fmt.Errorf("test %q: %w", tc.ID, err)
		}
	}
	return nil
}

func (r *Runner) runTest(ctx context.Context, sc *Scenario, tc Test) error {
	timeout := r.Timeout
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	args := append(append([]string{}, sc.Command[1:]...), tc.Args...)
	cmd := exec.CommandContext(ctx, sc.Command[0], args...)

	env := append(os.Environ(),
		energysignal.EnvIterations+"="+strconv.FormatUint(r.Iterations, 10))
	for k, v := range sc.Env {
		env = append(env, k+"="+v)
	}
	if r.TracePath != "" {
		env = append(env, energysignal.EnvTrace+"="+r.TracePath)
	}
	cmd.Env = env

	if tc.Stdin != "" {
		cmd.Stdin = strings.NewReader(tc.Stdin)
	}
	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = os.Stderr

	r.Log.Info().Str("test", tc.ID).Strs("command", sc.Command).
		Uint64("iterations", r.Iterations).Msg("running workload")

	start := time.Now()
	err := cmd.Run()
	if ctx.Err() == context.DeadlineExceeded {
		return fmt.Errorf("workload timed out after %s", timeout)
	}
	if err != nil {
		return fmt.Errorf("workload failed: %w", err)
	}
	r.Log.Info().Str("test", tc.ID).Dur("elapsed", time.Since(start)).Msg("workload finished")

	if tc.ExpectedStdout != "" && stdout.String() != tc.ExpectedStdout {
		return fmt.Errorf("stdout mismatch: got %q, want %q", stdout.String(), tc.ExpectedStdout)
	}
	return nil
}
