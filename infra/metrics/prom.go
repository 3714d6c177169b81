package metrics

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/greengrid/simulator/core/events"
	coremetrics "github.com/greengrid/simulator/core/metrics"
	"github.com/greengrid/simulator/core/model"
)

// PromSink exposes simulation flows as Prometheus metrics.
type PromSink struct {
	flows     *prometheus.CounterVec
	soc       prometheus.Gauge
	cloud     prometheus.Gauge
	downtime  prometheus.Counter
	failures  prometheus.Counter
	days      prometheus.Counter
	stepHours float64
}

// NewPromSink registers simulation metrics on the default Prometheus
// registerer. The HTTP endpoint is started separately via StartPromServer.
func NewPromSink(stepMinutes int) (*PromSink, error) {
	return NewPromSinkWithRegistry(stepMinutes, prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(stepMinutes int, reg prometheus.Registerer) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	flows := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "microgrid_energy_flow_kwh_total",
		Help: "Energy moved per flow direction in kWh",
	}, []string{"flow"})
	soc := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "microgrid_battery_soc_percent",
		Help: "Battery state of charge after the last step",
	})
	cloud := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "microgrid_cloud_coverage_fraction",
		Help: "Cloud coverage of the current simulated day",
	})
	downtime := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "microgrid_inverter_downtime_hours_total",
		Help: "Hours the inverter spent failed",
	})
	failures := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "microgrid_inverter_failures_total",
		Help: "Inverter failures observed on the event bus",
	})
	days := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "microgrid_simulated_days_total",
		Help: "Completed simulated days",
	})

	if err := reg.Register(flows); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			flows = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(soc); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			soc = are.ExistingCollector.(prometheus.Gauge)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(cloud); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			cloud = are.ExistingCollector.(prometheus.Gauge)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(downtime); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			downtime = are.ExistingCollector.(prometheus.Counter)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(failures); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			failures = are.ExistingCollector.(prometheus.Counter)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(days); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			days = are.ExistingCollector.(prometheus.Counter)
		} else {
			return nil, err
		}
	}

	return &PromSink{
		flows:     flows,
		soc:       soc,
		cloud:     cloud,
		downtime:  downtime,
		failures:  failures,
		days:      days,
		stepHours: float64(stepMinutes) / 60.0,
	}, nil
}

// RecordStep updates flow counters and gauges for one step.
func (s *PromSink) RecordStep(rec model.StepRecord) error {
	dt := s.stepHours
	s.flows.WithLabelValues("solar_to_load").Add(rec.Flows.SolarToLoad * dt)
	s.flows.WithLabelValues("solar_to_battery").Add(rec.Flows.SolarToBattery * dt)
	s.flows.WithLabelValues("solar_to_grid").Add(rec.Flows.SolarToGrid * dt)
	s.flows.WithLabelValues("battery_to_load").Add(rec.Flows.BatteryToLoad * dt)
	s.flows.WithLabelValues("grid_to_load").Add(rec.Flows.GridToLoad * dt)
	s.flows.WithLabelValues("curtailed").Add(rec.Flows.Curtailed * dt)
	s.soc.Set(rec.BatterySoC)
	s.cloud.Set(rec.CloudCoverage)
	if !rec.InverterOperational {
		s.downtime.Add(dt)
	}
	return nil
}

// RecordDay counts completed days.
func (s *PromSink) RecordDay(model.DaySummary) error {
	s.days.Inc()
	return nil
}

// RecordRun is a no-op for Prometheus; totals are already accumulated.
func (s *PromSink) RecordRun(model.RunResult) error { return nil }

// RecordFailure counts an inverter failure observed on the event bus.
func (s *PromSink) RecordFailure(events.InverterFailureEvent) error {
	s.failures.Inc()
	return nil
}

var (
	_ coremetrics.Sink            = (*PromSink)(nil)
	_ coremetrics.FailureRecorder = (*PromSink)(nil)
)

// StartPromServer serves the Prometheus metrics endpoint until ctx is done.
func StartPromServer(ctx context.Context, port string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: ":" + port, Handler: mux}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
