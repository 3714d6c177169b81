package metrics

import (
	"context"
	"math"
	"net/http"
	"strconv"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	coremetrics "github.com/greengrid/simulator/core/metrics"
	"github.com/greengrid/simulator/core/model"
	"github.com/greengrid/simulator/infra/logger"
)

// InfluxSink writes step records to an InfluxDB instance using the official
// client.
type InfluxSink struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	log      logger.Logger
}

// NewInfluxSink creates a new sink configured for the given InfluxDB
// endpoint.
func NewInfluxSink(cfg coremetrics.Config) *InfluxSink {
	client := influxdb2.NewClientWithOptions(cfg.InfluxURL, cfg.InfluxToken,
		influxdb2.DefaultOptions().SetHTTPClient(&http.Client{Timeout: 5 * time.Second}))
	return &InfluxSink{
		client:   client,
		writeAPI: client.WriteAPIBlocking(cfg.InfluxOrg, cfg.InfluxBucket),
		log:      logger.New("influx-sink"),
	}
}

// NewInfluxSinkWithFallback pings the InfluxDB instance and returns a
// NopSink if the health check fails, so a missing database never blocks a
// simulation.
func NewInfluxSinkWithFallback(cfg coremetrics.Config) coremetrics.Sink {
	sink := NewInfluxSink(cfg)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	health, err := sink.client.Health(ctx)
	if err != nil || health.Status != "pass" {
		if err != nil {
			sink.log.Errorf("influx health check error: %v", err)
		} else {
			sink.log.Errorf("influx health status: %s", health.Status)
		}
		sink.client.Close()
		return coremetrics.NopSink{}
	}
	return sink
}

// RecordStep writes one step record as a point.
func (s *InfluxSink) RecordStep(rec model.StepRecord) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("microgrid_step").
		AddTag("inverter_operational", strconv.FormatBool(rec.InverterOperational)).
		AddField("solar_available_kw", round3(rec.SolarAvailableKW)).
		AddField("solar_generated_kw", round3(rec.SolarGeneratedKW)).
		AddField("load_demand_kw", round3(rec.LoadDemandKW)).
		AddField("cloud_coverage", round3(rec.CloudCoverage)).
		AddField("battery_soc", round3(rec.BatterySoC)).
		AddField("solar_to_load", rec.Flows.SolarToLoad).
		AddField("solar_to_battery", rec.Flows.SolarToBattery).
		AddField("solar_to_grid", rec.Flows.SolarToGrid).
		AddField("battery_to_load", rec.Flows.BatteryToLoad).
		AddField("grid_to_load", rec.Flows.GridToLoad).
		AddField("curtailed", rec.Flows.Curtailed).
		SetTime(rec.Timestamp)
	return s.writeAPI.WritePoint(ctx, p)
}

// RecordDay writes one day summary as a point.
func (s *InfluxSink) RecordDay(day model.DaySummary) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("microgrid_day").
		AddTag("day", strconv.Itoa(day.Day)).
		AddField("solar_generated_kwh", round3(day.SolarGeneratedKWh)).
		AddField("load_consumed_kwh", round3(day.LoadConsumedKWh)).
		AddField("grid_imported_kwh", round3(day.GridImportedKWh)).
		AddField("grid_exported_kwh", round3(day.GridExportedKWh)).
		AddField("curtailed_kwh", round3(day.CurtailedKWh)).
		AddField("battery_soc_end", round3(day.BatterySoCEnd)).
		AddField("self_sufficiency_percent", round3(day.SelfSufficiencyPct)).
		SetTime(time.Now())
	return s.writeAPI.WritePoint(ctx, p)
}

// RecordRun writes the final totals as a point tagged with the run ID.
func (s *InfluxSink) RecordRun(res model.RunResult) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("microgrid_run").
		AddTag("run_id", res.RunID).
		AddTag("strategy", res.Summary.Strategy).
		AddTag("season", res.Summary.Season).
		AddField("seed", res.Seed).
		AddField("total_solar_kwh", round3(res.Summary.TotalSolarKWh)).
		AddField("total_load_kwh", round3(res.Summary.TotalLoadKWh)).
		AddField("total_imported_kwh", round3(res.Summary.TotalImportedKWh)).
		AddField("total_exported_kwh", round3(res.Summary.TotalExportedKWh)).
		AddField("net_cost", round3(res.Financial.NetCost)).
		AddField("self_sufficiency_percent", round3(res.Summary.SelfSufficiencyPct)).
		SetTime(time.Now())
	return s.writeAPI.WritePoint(ctx, p)
}

// Close releases the underlying client.
func (s *InfluxSink) Close() { s.client.Close() }

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
