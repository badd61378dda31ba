package cli

import (
	"fmt"
	"io"
	"math"
	"os"
	"time"

	"github.com/NikitaCOEUR/looptimer/internal/config"
	"github.com/NikitaCOEUR/looptimer/internal/timing"
	"github.com/NikitaCOEUR/looptimer/internal/trace"
	"github.com/NikitaCOEUR/looptimer/pkg/looptimer"
)

// Timer names instrumented by the demo loop
const (
	DemoTimer      = "Animate"
	DemoChildTimer = "Collision"
)

// DemoParams contains parameters for the Demo command
type DemoParams struct {
	Iterations int
	// Interval overrides the configured interval of the demo timers when > 0
	Interval   int
	ConfigPath string
	LogLevel   string
	// Output receives reports, stdout when nil
	Output io.Writer
	// Clock drives timestamps; with a *timing.Manual clock the simulated
	// work advances it instead of burning CPU
	Clock timing.Clock
}

// scene is a tiny hierarchy walked by every demo iteration
var scene = []string{"root", "body", "arm", "hand", "camera"}

// Demo runs an instrumented loop over a small scene graph and prints the reports
func Demo(params DemoParams) error {
	if params.Iterations <= 0 {
		return fmt.Errorf("iterations must be positive, got %d", params.Iterations)
	}
	if params.Output == nil {
		params.Output = os.Stdout
	}

	sw := timing.NewStopwatch(timing.NewMonotonic())

	cfg, err := loadConfig(params.ConfigPath)
	if err != nil {
		return err
	}
	log := newLogger(pickLevel(params.LogLevel, cfg.LogLevel))

	sampling, err := config.NewSampling(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to read sampling environment: %w", err)
	}

	reg := looptimer.New(looptimer.Options{
		Sampler: sampling,
		Clock:   params.Clock,
		Output:  params.Output,
		Logger:  log,
		Margin:  cfg.Margin,
		Summary: cfg.Summary,
	})
	if params.Interval > 0 {
		reg.SetInterval(DemoTimer, params.Interval)
		reg.SetInterval(DemoChildTimer, params.Interval)
	}
	sw.Mark("setup")

	w := newWorker(params.Clock)
	for i := 0; i < params.Iterations; i++ {
		if err := runIteration(reg, w, i); err != nil {
			return err
		}
	}
	sw.Mark("loop")

	trace.Log("demo", sw.Summary())
	log.Debug().
		Int("iterations", params.Iterations).
		Dur("setup", mustGet(sw, "setup")).
		Dur("loop", mustGet(sw, "loop")).
		Msg("demo finished")

	return nil
}

func runIteration(reg *looptimer.Registry, w *worker, i int) error {
	contacts := (i * 7) % 5

	reg.Begin(DemoTimer)

	reg.StepBegin("update")
	for depth, node := range scene {
		reg.StepBeginOn("node", node)
		w.work(20 + 4*depth)
		reg.StepEndOn("node", node)
		reg.ValAdd("nodes", 1)
	}
	reg.StepNext("update", "collide")

	reg.Begin(DemoChildTimer)
	reg.StepBegin("broad")
	w.work(30)
	reg.StepNext("broad", "narrow")
	w.work(10 + 5*contacts)
	reg.StepEnd("narrow")
	reg.ValSet("contacts", float64(contacts))
	if err := reg.End(DemoChildTimer); err != nil {
		return err
	}

	reg.StepEnd("collide")
	reg.Step("present")
	w.work(5)

	return reg.End(DemoTimer)
}

// worker simulates per-node cost, in microseconds
type worker struct {
	manual *timing.Manual
	sink   float64
}

func newWorker(clock timing.Clock) *worker {
	m, _ := clock.(*timing.Manual)
	return &worker{manual: m}
}

func (w *worker) work(micros int) {
	if w.manual != nil {
		w.manual.Advance(time.Duration(micros) * time.Microsecond)
		return
	}
	for n := 0; n < micros*50; n++ {
		w.sink += math.Sqrt(float64(n))
	}
}

func mustGet(sw *timing.Stopwatch, label string) time.Duration {
	d, _ := sw.Get(label)
	return d
}
