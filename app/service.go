// Package app wires configuration, sinks and exporters around the
// simulation engine.
package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/greengrid/simulator/config"
	coremetrics "github.com/greengrid/simulator/core/metrics"
	"github.com/greengrid/simulator/core/model"
	"github.com/greengrid/simulator/core/sim"
	"github.com/greengrid/simulator/infra/logger"
	"github.com/greengrid/simulator/infra/metrics"
	"github.com/greengrid/simulator/internal/eventbus"
	"github.com/greengrid/simulator/pkg/export"
)

// Service runs simulations end to end: engine, metrics sinks and exports.
type Service struct {
	cfg *config.Config
	log logger.Logger
	bus *eventbus.Bus

	sink        coremetrics.Sink
	promEnabled bool
	promPort    string
}

// New creates a Service from the configuration.
func New(cfg *config.Config) (*Service, error) {
	logg := logger.New("service")

	var sinks []coremetrics.Sink
	if cfg.Metrics.PrometheusEnabled {
		sink, err := metrics.NewPromSink(cfg.Sim.Simulation.TimeStepMinutes)
		if err != nil {
			return nil, fmt.Errorf("prom sink: %w", err)
		}
		sinks = append(sinks, sink)
	}
	if cfg.Metrics.InfluxEnabled {
		sinks = append(sinks, metrics.NewInfluxSinkWithFallback(cfg.Metrics))
	}
	var sink coremetrics.Sink
	switch len(sinks) {
	case 0:
		sink = coremetrics.NopSink{}
	case 1:
		sink = sinks[0]
	default:
		sink = metrics.NewMultiSink(sinks...)
	}

	return &Service{
		cfg:         cfg,
		log:         logg,
		bus:         eventbus.New(),
		sink:        sink,
		promEnabled: cfg.Metrics.PrometheusEnabled,
		promPort:    cfg.Metrics.PrometheusPort,
	}, nil
}

// Run executes one simulation and writes the configured outputs.
func (s *Service) Run(ctx context.Context) error {
	if s.promEnabled {
		go func() {
			if err := metrics.StartPromServer(ctx, s.promPort); err != nil {
				s.log.Errorf("prom server: %v", err)
			}
		}()
	}
	metrics.StartEventCollector(ctx, s.bus, s.sink, s.log)

	engine, err := sim.New(s.cfg.Sim, s.log, s.sink, s.bus)
	if err != nil {
		return err
	}
	res, err := engine.Run(ctx)
	if err != nil {
		return err
	}

	s.logSummary(res)
	return s.writeOutputs(res)
}

// Compare runs every dispatch strategy against the same seed and logs the
// outcome side by side.
func (s *Service) Compare(ctx context.Context) error {
	cmp, err := sim.RunComparison(ctx, s.cfg.Sim, s.log, s.sink)
	if err != nil {
		return err
	}

	s.log.Infof("comparison complete (seed %d)", cmp.Seed)
	for _, o := range cmp.Outcomes {
		s.log.Infof("strategy %s: net=$%.2f self-sufficiency=%.2f%% curtailed=%.2f kWh",
			o.Strategy, o.Result.Financial.NetCost,
			o.Result.Summary.SelfSufficiencyPct, o.Result.Summary.TotalCurtailedKWh)
	}
	s.log.Infof("lowest net cost: %s", cmp.BestNetCost)
	s.log.Infof("highest self-sufficiency: %s", cmp.BestSelfSufficiency)

	for _, o := range cmp.Outcomes {
		if err := s.writeOutputs(o.Result); err != nil {
			return err
		}
	}
	return nil
}

func (s *Service) logSummary(res *model.RunResult) {
	s.log.Infof("run %s finished: solar=%.2f kWh load=%.2f kWh import=%.2f kWh export=%.2f kWh",
		res.RunID, res.Summary.TotalSolarKWh, res.Summary.TotalLoadKWh,
		res.Summary.TotalImportedKWh, res.Summary.TotalExportedKWh)
	s.log.Infof("financial: cost=$%.2f revenue=$%.2f net=$%.2f",
		res.Financial.ImportCost, res.Financial.ExportRevenue, res.Financial.NetCost)
	s.log.Infof("battery: avg SoC %.2f%%, final SoC %.2f%%, full %d times, empty %d times",
		res.Battery.AverageSoCPct, res.Battery.FinalSoCPct, res.Battery.TimesFull, res.Battery.TimesEmpty)
	s.log.Infof("self-sufficiency: %.2f%%, seed: %d", res.Summary.SelfSufficiencyPct, res.Seed)
}

func (s *Service) writeOutputs(res *model.RunResult) error {
	out := s.cfg.Output
	if err := os.MkdirAll(out.Directory, 0o755); err != nil {
		return fmt.Errorf("output directory: %w", err)
	}
	prefix := fmt.Sprintf("%s_%s", strings.ToLower(res.Summary.Strategy), res.RunID[:8])

	if strings.EqualFold(out.Format, "json") {
		return s.writeFile(filepath.Join(out.Directory, prefix+"_result.json"), func(f *os.File) error {
			return export.WriteResultJSON(f, res)
		})
	}

	if out.WriteSteps {
		err := s.writeFile(filepath.Join(out.Directory, prefix+"_steps.csv"), func(f *os.File) error {
			return export.WriteStepsCSV(f, res.Steps)
		})
		if err != nil {
			return err
		}
	}
	if out.WriteDays {
		err := s.writeFile(filepath.Join(out.Directory, prefix+"_days.csv"), func(f *os.File) error {
			return export.WriteDaysCSV(f, res.Days)
		})
		if err != nil {
			return err
		}
	}
	if len(res.Events) > 0 {
		err := s.writeFile(filepath.Join(out.Directory, prefix+"_events.csv"), func(f *os.File) error {
			return export.WriteEventsCSV(f, res.Events)
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *Service) writeFile(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	if err := write(f); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	s.log.Infof("wrote %s", path)
	return nil
}

// Close releases resources held by the service.
func (s *Service) Close() error {
	s.bus.Close()
	return nil
}
