package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greengrid/simulator/core/model"
)

type countingSink struct {
	steps, days, runs int
	err               error
}

func (c *countingSink) RecordStep(model.StepRecord) error { c.steps++; return c.err }
func (c *countingSink) RecordDay(model.DaySummary) error  { c.days++; return c.err }
func (c *countingSink) RecordRun(model.RunResult) error   { c.runs++; return c.err }

func TestMultiSink_ForwardsToAll(t *testing.T) {
	a, b := &countingSink{}, &countingSink{}
	m := NewMultiSink(a, b)

	require.NoError(t, m.RecordStep(model.StepRecord{Timestamp: time.Now()}))
	require.NoError(t, m.RecordDay(model.DaySummary{Day: 1}))
	require.NoError(t, m.RecordRun(model.RunResult{RunID: "r"}))

	for _, s := range []*countingSink{a, b} {
		assert.Equal(t, 1, s.steps)
		assert.Equal(t, 1, s.days)
		assert.Equal(t, 1, s.runs)
	}
}

func TestMultiSink_StopsOnFirstError(t *testing.T) {
	boom := errors.New("boom")
	a := &countingSink{err: boom}
	b := &countingSink{}
	m := NewMultiSink(a, b)

	err := m.RecordStep(model.StepRecord{})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 0, b.steps)
}
