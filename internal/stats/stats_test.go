package stats

import (
	"math"
	"testing"
	"time"

	"github.com/NikitaCOEUR/looptimer/internal/event"
	"github.com/NikitaCOEUR/looptimer/internal/ids"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	stepA ids.ID = 1
	stepB ids.ID = 2
	valX  ids.ID = 1
)

func ms(n float64) time.Duration {
	return time.Duration(n * float64(time.Millisecond))
}

// iteration builds a timer log: begin at 0, step A lasting a, end at total.
func iteration(a, total time.Duration) []event.Event {
	return []event.Event{
		{At: 0, Kind: event.TimerBegin, ID: 1},
		{At: ms(1), Kind: event.StepBegin, ID: stepA},
		{At: ms(1) + a, Kind: event.StepEnd, ID: stepA},
		{At: total, Kind: event.TimerEnd, ID: 1},
	}
}

func TestFold_EmptyLog(t *testing.T) {
	a := NewAggregate()
	a.Fold(nil)

	assert.Equal(t, 0, a.Iterations)
	assert.False(t, a.Warm())
	assert.Empty(t, a.Steps())
}

func TestFold_FirstIterationIsWarmup(t *testing.T) {
	a := NewAggregate()

	a.Fold(iteration(ms(100), ms(200)))
	assert.Equal(t, 1, a.Iterations)
	assert.Equal(t, 0, a.Sampled)
	assert.True(t, a.Warm())
	assert.Empty(t, a.Steps(), "warm-up iteration must not create statistics")

	a.Fold(iteration(ms(2), ms(4)))
	assert.Equal(t, 2, a.Iterations)
	assert.Equal(t, 1, a.Sampled)

	s, ok := a.Step(stepA)
	require.True(t, ok)
	assert.Equal(t, ms(2), s.Min)
	assert.Equal(t, ms(2), s.Max)
	assert.Equal(t, ms(2), s.Total)
}

func TestFold_StepStatistics(t *testing.T) {
	a := NewAggregate()
	a.Fold(iteration(ms(50), ms(60))) // warm-up
	a.Fold(iteration(ms(2), ms(5)))
	a.Fold(iteration(ms(4), ms(7)))

	assert.Equal(t, []ids.ID{Root, stepA}, a.Steps())

	root, ok := a.Step(Root)
	require.True(t, ok)
	assert.Equal(t, 0, root.Level)
	assert.Equal(t, 2, root.Num)
	assert.Equal(t, 2, root.Iterations)
	assert.Equal(t, ms(12), root.Total)
	assert.Equal(t, ms(5), root.Min)
	assert.Equal(t, ms(7), root.Max)

	s, ok := a.Step(stepA)
	require.True(t, ok)
	assert.Equal(t, 1, s.Level)
	assert.Equal(t, 2, s.Num)
	assert.Equal(t, ms(6), s.Total)
	assert.Equal(t, ms(2), s.Min)
	assert.Equal(t, ms(4), s.Max)
	assert.InDelta(t, float64(ms(3)), s.Mean(), 1)
	assert.InDelta(t, float64(ms(1)), s.StdDev(), 1)
	assert.InDelta(t, float64(ms(1)), s.MeanStart(), 1)
}

func TestFold_SingleSampleHasZeroDeviation(t *testing.T) {
	a := NewAggregate()
	a.Fold(iteration(ms(1), ms(2)))
	a.Fold(iteration(ms(3.3), ms(9.7)))

	s, ok := a.Step(stepA)
	require.True(t, ok)
	assert.Equal(t, 1, s.Num)
	assert.InDelta(t, 0, s.StdDev(), 1e-9)
	assert.False(t, math.IsNaN(s.StdDev()))
}

func TestFold_RepeatedStepWithinIteration(t *testing.T) {
	a := NewAggregate()
	log := []event.Event{
		{At: 0, Kind: event.TimerBegin, ID: 1},
		{At: ms(1), Kind: event.StepBegin, ID: stepB},
		{At: ms(3), Kind: event.StepEnd, ID: stepB},
		{At: ms(4), Kind: event.StepBegin, ID: stepB},
		{At: ms(10), Kind: event.StepEnd, ID: stepB},
		{At: ms(11), Kind: event.TimerEnd, ID: 1},
	}
	a.Fold(log) // warm-up
	a.Fold(log)

	s, ok := a.Step(stepB)
	require.True(t, ok)
	assert.Equal(t, 2, s.Num, "every occurrence is counted")
	assert.Equal(t, 1, s.Iterations)
	assert.Equal(t, ms(8), s.Total, "all durations contribute to total")
	assert.Equal(t, ms(2), s.Min, "min/max only follow the first occurrence")
	assert.Equal(t, ms(2), s.Max)
	assert.Equal(t, ms(1), s.StartTotal, "start uses the first occurrence")
}

func TestFold_InstantStepAndLevels(t *testing.T) {
	a := NewAggregate()
	log := []event.Event{
		{At: 0, Kind: event.TimerBegin, ID: 1},
		{At: ms(1), Kind: event.StepBegin, ID: stepA},
		{At: ms(2), Kind: event.Step, ID: stepB},
		{At: ms(3), Kind: event.StepEnd, ID: stepA},
		{At: ms(4), Kind: event.TimerEnd, ID: 1},
	}
	a.Fold(log)
	a.Fold(log)

	a1, _ := a.Step(stepA)
	b1, _ := a.Step(stepB)
	assert.Equal(t, 1, a1.Level)
	assert.Equal(t, 2, b1.Level)
	assert.Equal(t, 1, b1.Num)
	assert.Equal(t, time.Duration(0), b1.Total)
}

func TestFold_UnmatchedStepEndIsIgnored(t *testing.T) {
	a := NewAggregate()
	log := []event.Event{
		{At: 0, Kind: event.TimerBegin, ID: 1},
		{At: ms(1), Kind: event.StepEnd, ID: stepA},
		{At: ms(2), Kind: event.TimerEnd, ID: 1},
	}
	a.Fold(log)
	a.Fold(log)

	_, ok := a.Step(stepA)
	assert.False(t, ok)
	assert.Equal(t, []ids.ID{Root}, a.Steps())
}

func TestFold_ValueSetThenAdd(t *testing.T) {
	a := NewAggregate()
	it := func(set, add float64) []event.Event {
		return []event.Event{
			{At: 0, Kind: event.TimerBegin, ID: 1},
			{At: ms(1), Kind: event.ValueSet, ID: valX, Value: set},
			{At: ms(2), Kind: event.ValueAdd, ID: valX, Value: add},
			{At: ms(3), Kind: event.TimerEnd, ID: 1},
		}
	}
	a.Fold(it(1000, 1000)) // warm-up
	a.Fold(it(10, 5))

	v, ok := a.Value(valX)
	require.True(t, ok)
	assert.Equal(t, 15.0, v.Current())
	assert.Equal(t, 15.0, v.Min)
	assert.Equal(t, 15.0, v.Max)
	assert.Equal(t, 15.0, v.Total)
	assert.Equal(t, 2, v.Num)
	assert.Equal(t, 1, v.Iterations)

	a.Fold(it(1, 2))
	assert.Equal(t, 3.0, v.Min, "min is over per-iteration aggregates")
	assert.Equal(t, 15.0, v.Max)
	assert.Equal(t, 18.0, v.Total)
	assert.Equal(t, 9.0, v.Mean())
	assert.InDelta(t, 6.0, v.StdDev(), 1e-9)
}

func TestFold_ValueSetReplacesWithinIteration(t *testing.T) {
	a := NewAggregate()
	log := []event.Event{
		{At: 0, Kind: event.TimerBegin, ID: 1},
		{At: ms(1), Kind: event.ValueAdd, ID: valX, Value: 4},
		{At: ms(2), Kind: event.ValueAdd, ID: valX, Value: 4},
		{At: ms(3), Kind: event.ValueSet, ID: valX, Value: 2},
		{At: ms(4), Kind: event.ValueAdd, ID: valX, Value: 1},
		{At: ms(5), Kind: event.TimerEnd, ID: 1},
	}
	a.Fold(log)
	a.Fold(log)

	v, ok := a.Value(valX)
	require.True(t, ok)
	assert.Equal(t, 3.0, v.Total)
	assert.Equal(t, 3.0, v.Min)
	assert.Equal(t, 3.0, v.Max)
	assert.Equal(t, 4, v.Num)
}

func TestAggregate_Reset(t *testing.T) {
	a := NewAggregate()
	a.Fold(iteration(ms(1), ms(2)))
	a.Fold(iteration(ms(1), ms(2)))
	require.NotEmpty(t, a.Steps())

	a.Reset()
	assert.Equal(t, 0, a.Iterations)
	assert.Equal(t, 0, a.Sampled)
	assert.Empty(t, a.Steps())
	assert.Empty(t, a.Values())
	assert.True(t, a.Warm(), "warm-up is not repeated after reset")

	a.Fold(iteration(ms(1), ms(2)))
	assert.Equal(t, 1, a.Sampled)
	_, ok := a.Step(stepA)
	assert.True(t, ok)
}

func TestStats_ZeroSamples(t *testing.T) {
	s := &StepStats{}
	v := &ValueStats{}

	assert.Equal(t, 0.0, s.Mean())
	assert.Equal(t, 0.0, s.StdDev())
	assert.Equal(t, 0.0, s.MeanStart())
	assert.Equal(t, 0.0, v.Mean())
	assert.Equal(t, 0.0, v.StdDev())
}
