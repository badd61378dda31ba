// Package report renders a timer's last iteration trace and its accumulated
// statistics as aligned text.
package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/NikitaCOEUR/looptimer/internal/event"
	"github.com/NikitaCOEUR/looptimer/internal/ids"
	"github.com/NikitaCOEUR/looptimer/internal/stats"
)

// DefaultMargin groups events closer than this under one timestamp in traces
const DefaultMargin = 10 * time.Microsecond

// Input is everything needed to render one report
type Input struct {
	Timer  string
	Events []event.Event
	Stats  *stats.Aggregate
	Names  *ids.Interner
	Margin time.Duration
}

// Render returns the full report: trace, steps table and values table
func Render(in Input) string {
	var b strings.Builder
	b.WriteString("==== " + in.Timer + " ====\n\n")
	if len(in.Events) > 0 {
		b.WriteString("Trace of last iteration :\n")
		writeTrace(&b, in.Events, in.Names, in.Margin)
	}
	if in.Stats != nil {
		writeSteps(&b, in.Stats, in.Names)
		writeValues(&b, in.Stats, in.Names)
	}
	b.WriteString("\n==== END ====\n\n")
	return b.String()
}

// Write renders the report to w
func Write(w io.Writer, in Input) error {
	_, err := io.WriteString(w, Render(in))
	return err
}

// Trace renders only the trace of events
func Trace(events []event.Event, names *ids.Interner, margin time.Duration) string {
	var b strings.Builder
	writeTrace(&b, events, names, margin)
	return b.String()
}

func writeTrace(b *strings.Builder, events []event.Event, names *ids.Interner, margin time.Duration) {
	if len(events) == 0 {
		return
	}
	t0 := event.Origin(events)
	last := t0
	level := 0
	// the opening TimerBegin is implied by the header
	for i := 1; i < len(events); i++ {
		e := events[i]
		b.WriteString("  * ")
		if i > 1 && i < len(events)-1 && e.At <= last+margin {
			b.WriteString(Blank + "   ")
		} else {
			b.WriteString(Millis(e.At - t0))
			b.WriteString(" ms")
			last = e.At
		}
		b.WriteByte(' ')
		if e.Kind.Closes() {
			level--
		}
		for l := 0; l < level; l++ {
			b.WriteString("  ")
		}
		b.WriteString(verb(e, names))
		b.WriteByte('\n')
		if e.Kind.Opens() {
			level++
		}
	}
}

func verb(e event.Event, names *ids.Interner) string {
	switch e.Kind {
	case event.TimerBegin:
		return "BEGIN " + names.Name(ids.Timer, e.ID)
	case event.TimerEnd:
		return "END"
	case event.StepBegin:
		return "> begin " + names.Name(ids.Step, e.ID) + on(e, names)
	case event.StepEnd:
		return "< end   " + names.Name(ids.Step, e.ID) + on(e, names)
	case event.Step:
		return "- step  " + names.Name(ids.Step, e.ID) + on(e, names)
	case event.ValueSet:
		return ": var   " + names.Name(ids.Value, e.ID) + "  = " + formatValue(e.Value)
	case event.ValueAdd:
		return ": var   " + names.Name(ids.Value, e.ID) + " += " + formatValue(e.Value)
	default:
		return fmt.Sprintf("UNKNOWN RECORD TYPE %d", e.Kind)
	}
}

func on(e event.Event, names *ids.Interner) string {
	if e.Object == ids.None {
		return ""
	}
	return " on " + names.Name(ids.Object, e.Object)
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func writeSteps(b *strings.Builder, agg *stats.Aggregate, names *ids.Interner) {
	steps := agg.Steps()
	if len(steps) == 0 {
		return
	}
	b.WriteString("\nSteps Duration Statistics (in ms) :\n")
	b.WriteString(" LEVEL\t START\t  NUM\t   MIN\t   MAX\t MEAN\t  DEV\t TOTAL\tPERCENT\tID\n")

	var rootTotal time.Duration
	if root, ok := agg.Step(stats.Root); ok {
		rootTotal = root.Total
	}

	for _, id := range steps {
		s, _ := agg.Step(id)
		isRoot := id == stats.Root
		// the root row covers the whole span, other rows are per iteration
		norm := agg.Sampled
		if isRoot {
			norm = 1
		}

		cells := []string{
			Number(float64(s.Level)),
			MillisPer(float64(s.StartTotal), s.Iterations),
			PerIteration(float64(s.Num), norm),
			rangeCell(s, s.Min),
			rangeCell(s, s.Max),
			MillisPer(float64(s.Total), s.Num),
			deviationCell(s),
			MillisPer(float64(s.Total), norm),
			percentCell(s.Total, rootTotal),
		}
		b.WriteString(strings.Join(cells, "\t"))
		b.WriteByte('\t')
		if isRoot {
			b.WriteString("TOTAL")
		} else {
			b.WriteString(names.Name(ids.Step, id))
		}
		b.WriteByte('\n')
	}
}

func rangeCell(s *stats.StepStats, d time.Duration) string {
	if !s.Ranged() {
		return Blank
	}
	return Millis(d)
}

func deviationCell(s *stats.StepStats) string {
	if s.Num == 0 {
		return Blank
	}
	return Number(s.StdDev() / float64(time.Millisecond))
}

func percentCell(total, rootTotal time.Duration) string {
	if rootTotal == 0 {
		return Blank
	}
	return Number(100 * float64(total) / float64(rootTotal))
}

func writeValues(b *strings.Builder, agg *stats.Aggregate, names *ids.Interner) {
	values := agg.Values()
	if len(values) == 0 {
		return
	}
	b.WriteString("\nValues Statistics :\n")
	b.WriteString(" NUM\t  MIN\t  MAX\t MEAN\t  DEV\t TOTAL\tID\n")

	for _, id := range values {
		v, _ := agg.Value(id)
		cells := []string{
			PerIteration(float64(v.Num), agg.Sampled),
			Blank,
			Blank,
			Blank,
			Blank,
			PerIteration(v.Total, agg.Sampled),
		}
		if v.Iterations > 0 {
			cells[1] = Number(v.Min)
			cells[2] = Number(v.Max)
			cells[3] = Number(v.Mean())
			cells[4] = Number(v.StdDev())
		}
		b.WriteString(strings.Join(cells, "\t"))
		b.WriteByte('\t')
		b.WriteString(names.Name(ids.Value, id))
		b.WriteByte('\n')
	}
}
