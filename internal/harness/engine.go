package harness

import (
	"context"
	"fmt"
	"io"
	"math"
	"sync"
)

// Outcome pairs a Descriptor with its classified Termination, the unit the
// Diagnostic Formatter renders and result export (internal/export) records.
type Outcome struct {
	Descriptor     Descriptor
	Termination    Termination
	Classification Classification
}

// outcomeLog is a goroutine-safe append-only collector: a mutex guarding
// a plain slice, filled in by concurrently running test goroutines and
// drained once at the end of a run.
type outcomeLog struct {
	mu sync.Mutex
	v  []Outcome
}

func (l *outcomeLog) append(o Outcome) {
	l.mu.Lock()
	l.v = append(l.v, o)
	l.mu.Unlock()
}

func (l *outcomeLog) snapshot() []Outcome {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Outcome, len(l.v))
	copy(out, l.v)
	return out
}

// Engine is the thin dispatcher: it walks the Registry in order, runs
// each descriptor under the configured Runner, and writes one verdict line
// per test. Summary renders the tally line from the outcomes Run returns.
type Engine struct {
	Config    EngineConfig
	Registry  *Registry
	Runner    Runner
	Formatter *DiagnosticFormatter
}

// NewEngine wires a Registry, the Runner selected by cfg.Mode, and a
// Diagnostic Formatter writing to sink.
func NewEngine(cfg EngineConfig, reg *Registry, sink io.Writer) *Engine {
	return &Engine{
		Config:    cfg,
		Registry:  reg,
		Runner:    NewRunner(cfg.Mode),
		Formatter: NewDiagnosticFormatter(sink, SinkIsTerminal(sink)),
	}
}

// Run executes every registered test and returns the collected outcomes in
// completion order (registration order for nofork/forks, unspecified for
// forkp since its whole cohort runs concurrently).
func (e *Engine) Run(ctx context.Context) []Outcome {
	cohort := 1
	if e.Config.Mode == ModeForkP {
		cohort = e.Registry.Length()
	}
	if cohort < 1 {
		cohort = 1
	}

	log := &outcomeLog{}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	results := make(chan Outcome)
	pending := e.Registry.All()
	next := 0
	active := 0

	for {
		for active < cohort && next < len(pending) {
			d := pending[next]
			next++
			active++
			go func(d Descriptor) {
				results <- e.runOne(ctx, d)
			}(d)
		}

		if active == 0 {
			break
		}

		o := <-results
		active--
		log.append(o)
		if !e.Config.Silent {
			_ = e.Formatter.Write(o.Descriptor, o.Classification, o.Termination.ElapsedMS)
		}
	}

	return log.snapshot()
}

func (e *Engine) runOne(ctx context.Context, d Descriptor) Outcome {
	opts := RunOptions{
		TimeoutSeconds: e.Config.TimeoutSeconds,
		SelfPath:       e.Config.Program,
		Argv:           e.Config.Argv,
		Stdout:         e.Config.TestStdout,
		Stderr:         e.Config.TestStderr,
		Clock:          SystemClock,
	}
	t := e.Runner.Run(ctx, d, opts)
	return Outcome{Descriptor: d, Termination: t, Classification: Classify(t)}
}

// Summary renders the final tally line,
// "=> P% tests passed, F tests failed out of N", suppressed by the caller
// in full-silent mode (-S).
func Summary(outcomes []Outcome) string {
	n := len(outcomes)
	if n == 0 {
		return "=> no tests ran"
	}

	failed := 0
	for _, o := range outcomes {
		if !o.Classification.IsSuccess() {
			failed++
		}
	}
	passed := n - failed
	pct := int(math.Round(float64(passed) * 100 / float64(n)))
	return fmt.Sprintf("=> %d%% tests passed, %d tests failed out of %d", pct, failed, n)
}
