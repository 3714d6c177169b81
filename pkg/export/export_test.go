package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greengrid/simulator/core/model"
)

func sampleSteps() []model.StepRecord {
	ts := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	return []model.StepRecord{
		{
			Timestamp: ts, Step: 12, Hour: 12, SolarAvailableKW: 7.5,
			SolarGeneratedKW: 6.0, LoadDemandKW: 1.2, CloudCoverage: 0.1,
			BatterySoC: 55.5, InverterOperational: true,
			Flows: model.FlowBreakdown{SolarToLoad: 1.2, SolarToBattery: 3.0, SolarToGrid: 1.8},
		},
		{
			Timestamp: ts.Add(time.Hour), Step: 13, Hour: 13,
			LoadDemandKW: 0.5, BatterySoC: 60.0, InverterOperational: false,
			Flows: model.FlowBreakdown{GridToLoad: 0.5, UnmetLoad: 0.5},
		},
	}
}

func TestWriteStepsCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteStepsCSV(&buf, sampleSteps()))

	rows, err := csv.NewReader(strings.NewReader(buf.String())).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, stepHeader, rows[0])
	assert.Equal(t, "2025-06-01 12:00:00", rows[1][0])
	assert.Equal(t, "12", rows[1][1])
	assert.Equal(t, "6", rows[1][4])
	assert.Equal(t, "true", rows[1][15])
	assert.Equal(t, "false", rows[2][15])
	assert.Equal(t, "0.5", rows[2][13])
}

func TestWriteDaysCSV(t *testing.T) {
	days := []model.DaySummary{
		{Day: 1, SolarGeneratedKWh: 20.5, LoadConsumedKWh: 15.0, GridImportedKWh: 2.5,
			GridExportedKWh: 4.0, BatterySoCEnd: 80.0, SelfSufficiencyPct: 83.333333},
	}
	var buf bytes.Buffer
	require.NoError(t, WriteDaysCSV(&buf, days))

	rows, err := csv.NewReader(strings.NewReader(buf.String())).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, dayHeader, rows[0])
	assert.Equal(t, "1", rows[1][0])
	assert.Equal(t, "20.5", rows[1][1])
}

func TestWriteEventsCSV(t *testing.T) {
	events := []model.Event{
		{Timestamp: time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC), Message: "inverter failure (remaining: 12h)"},
	}
	var buf bytes.Buffer
	require.NoError(t, WriteEventsCSV(&buf, events))
	assert.Contains(t, buf.String(), "inverter failure")
}

func TestWriteResultJSON(t *testing.T) {
	res := &model.RunResult{RunID: "abc", Seed: 99, Steps: sampleSteps()}
	var buf bytes.Buffer
	require.NoError(t, WriteResultJSON(&buf, res))

	var decoded model.RunResult
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "abc", decoded.RunID)
	assert.Equal(t, int64(99), decoded.Seed)
	assert.Len(t, decoded.Steps, 2)
}
