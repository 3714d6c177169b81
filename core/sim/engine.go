// Package sim drives the discrete-time microgrid simulation: it owns the
// physical component models, advances time in fixed steps and aggregates the
// results.
package sim

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/stat"

	"github.com/greengrid/simulator/core/battery"
	"github.com/greengrid/simulator/core/ems"
	"github.com/greengrid/simulator/core/events"
	"github.com/greengrid/simulator/core/grid"
	"github.com/greengrid/simulator/core/household"
	"github.com/greengrid/simulator/core/inverter"
	"github.com/greengrid/simulator/core/logger"
	"github.com/greengrid/simulator/core/metrics"
	"github.com/greengrid/simulator/core/model"
	"github.com/greengrid/simulator/core/solarpanel"
	"github.com/greengrid/simulator/core/weather"
	"github.com/greengrid/simulator/internal/eventbus"
)

// fullSoCThreshold treats the battery as full within measurement noise.
const fullSoCThreshold = 100.0 - 0.1

// Engine is the simulation orchestrator. It owns all mutable component
// state for the lifetime of a run; a run is strictly sequential.
type Engine struct {
	cfg      Config
	seed     int64
	strategy model.Strategy
	season   model.Season

	rng      *rand.Rand
	battery  *battery.Battery
	panel    *solarpanel.Panel
	inv      *inverter.Inverter
	load     *household.Load
	grid     *grid.Grid
	dispatch *ems.EMS
	clouds   *weather.CloudCoverage

	// currentCoverage is the cached daily cloud coverage, redrawn at each
	// day boundary.
	currentCoverage float64

	log  logger.Logger
	sink metrics.Sink
	bus  eventbus.EventBus
}

// New creates an Engine from the configuration. Unknown strategy or season
// names fail here, before any stepping happens.
func New(cfg Config, log logger.Logger, sink metrics.Sink, bus eventbus.EventBus) (*Engine, error) {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	strategy, err := model.ParseStrategy(cfg.EnergyManagement.Strategy)
	if err != nil {
		return nil, err
	}
	season, err := model.ParseSeason(cfg.Simulation.Season)
	if err != nil {
		return nil, err
	}
	dispatch, err := ems.New(strategy)
	if err != nil {
		return nil, err
	}
	if sink == nil {
		sink = metrics.NopSink{}
	}

	seed := resolveSeed(cfg.Simulation)
	rng := rand.New(rand.NewSource(seed))

	batteryTotal := cfg.Battery.UnitCapacityKWh * float64(cfg.Battery.Count)
	solarTotal := cfg.Solar.UnitPeakPowerKW * float64(cfg.Solar.Count)
	inverterTotal := cfg.Inverter.UnitMaxOutputKW * float64(cfg.Inverter.Count)

	e := &Engine{
		cfg:      cfg,
		seed:     seed,
		strategy: strategy,
		season:   season,
		rng:      rng,
		battery:  battery.New(batteryTotal, cfg.Battery.Efficiency, cfg.Battery.MinSoC),
		panel:    solarpanel.New(solarTotal),
		inv: inverter.New(inverterTotal, cfg.Inverter.FailureRate,
			cfg.Inverter.MinFailureDurationHours, cfg.Inverter.MaxFailureDurationHours, rng),
		load:     household.New(cfg.Load, rng),
		grid:     grid.New(cfg.Grid),
		dispatch: dispatch,
		clouds:   weather.New(season, rng),
		log:      log,
		sink:     sink,
		bus:      bus,
	}
	// First draw of the run: today's weather. Keeping this draw order fixed
	// makes same-seed runs comparable across strategies.
	e.currentCoverage = e.clouds.DailyCoverage()

	log.Infof("simulation configured: %d days, %d min steps, season=%s, strategy=%s, seed=%d",
		cfg.Simulation.DurationDays, cfg.Simulation.TimeStepMinutes, season, strategy, seed)
	log.Debugw("system sizing", map[string]any{
		"battery_kwh":     batteryTotal,
		"solar_peak_kw":   solarTotal,
		"inverter_max_kw": inverterTotal,
	})
	return e, nil
}

// Seed returns the seed actually used by this run.
func (e *Engine) Seed() int64 { return e.seed }

func resolveSeed(p Params) int64 {
	if p.RandomSeed != nil {
		return *p.RandomSeed
	}
	return time.Now().UnixNano() % math.MaxInt32
}

// dailyTotals accumulates one day's energy flows in kWh.
type dailyTotals struct {
	solar, load, gridImport, gridExport, curtailed float64
}

func (d *dailyTotals) selfSufficiency() float64 {
	if d.load <= 0 {
		return 0
	}
	return (1 - d.gridImport/d.load) * 100
}

func (d *dailyTotals) empty() bool {
	return d.solar == 0 && d.load == 0
}

// Run executes the full step loop and returns the aggregated result. The
// context is checked once per step; cancellation abandons the run.
func (e *Engine) Run(ctx context.Context) (*model.RunResult, error) {
	p := e.cfg.Simulation
	totalSteps := p.DurationDays * 24 * 60 / p.TimeStepMinutes
	stepsPerDay := 24 * 60 / p.TimeStepMinutes
	dtHours := float64(p.TimeStepMinutes) / 60.0
	startDate, _ := time.Parse(startDateLayout, p.StartDate)

	e.log.Infof("simulating %d hours (%d steps)", p.DurationDays*24, totalSteps)

	steps := make([]model.StepRecord, 0, totalSteps)
	days := make([]model.DaySummary, 0, p.DurationDays)
	var eventLog []model.Event
	failureCount := 0

	var daily dailyTotals
	currentDay := 0

	for step := 0; step < totalSteps; step++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		// Time is always derived from the absolute step index so no
		// accumulation drift can build up.
		minutes := step * p.TimeStepMinutes
		hourOfDay := float64(minutes%(24*60)) / 60.0
		timestamp := startDate.Add(time.Duration(minutes) * time.Minute)

		solarAvailable := e.panel.Generate(hourOfDay, e.currentCoverage)
		var solarGenerated float64
		if e.inv.IsOperational() {
			solarGenerated = e.inv.ApplyLimit(solarAvailable)
		}

		loadDemand := e.load.Generate(hourOfDay)

		flows := e.dispatch.DistributeEnergy(solarGenerated, loadDemand, e.battery, e.grid, dtHours)

		rec := model.StepRecord{
			Timestamp:           timestamp,
			Step:                step,
			Hour:                hourOfDay,
			SolarAvailableKW:    solarAvailable,
			SolarGeneratedKW:    solarGenerated,
			LoadDemandKW:        loadDemand,
			CloudCoverage:       e.currentCoverage,
			BatterySoC:          e.battery.SoC(),
			Flows:               flows,
			InverterOperational: e.inv.IsOperational(),
		}
		steps = append(steps, rec)
		if err := e.sink.RecordStep(rec); err != nil {
			e.log.Warnf("record step %d: %v", step, err)
		}

		// Curtailed energy is not counted as generated.
		daily.solar += (flows.SolarToLoad + flows.SolarToBattery + flows.SolarToGrid) * dtHours
		daily.load += loadDemand * dtHours
		daily.gridImport += flows.GridToLoad * dtHours
		daily.gridExport += flows.SolarToGrid * dtHours
		daily.curtailed += flows.Curtailed * dtHours

		wasOperational := e.inv.IsOperational()
		e.inv.Update(dtHours)
		if !wasOperational && e.inv.IsOperational() {
			e.publish(events.InverterRecoveryEvent{Timestamp: timestamp})
		}

		if (step+1)%stepsPerDay == 0 {
			day := e.closeDay(currentDay, &daily)
			days = append(days, day)
			currentDay++
			daily = dailyTotals{}

			if currentDay%5 == 0 {
				e.log.Infof("day %d/%d completed (%.1f%%)",
					currentDay, p.DurationDays, float64(currentDay)/float64(p.DurationDays)*100)
			}

			// The daily failure draw happens exactly once per simulated day.
			e.inv.CheckFailure()
			if !e.inv.IsOperational() {
				remaining := e.inv.FailureHoursRemaining()
				msg := fmt.Sprintf("inverter failure (remaining: %.0fh)", remaining)
				e.log.Warnf("%s", msg)
				eventLog = append(eventLog, model.Event{Timestamp: timestamp, Message: msg})
				failureCount++
				e.publish(events.InverterFailureEvent{Timestamp: timestamp, RemainingHours: remaining})
			}

			e.currentCoverage = e.clouds.DailyCoverage()
		}
	}

	// A trailing partial day still gets summarized.
	if !daily.empty() {
		days = append(days, e.closeDay(currentDay, &daily))
	}

	e.log.Infof("simulation completed: %d steps, %d days", len(steps), len(days))

	res := e.compileResult(steps, days, eventLog, failureCount, dtHours)
	if err := e.sink.RecordRun(*res); err != nil {
		e.log.Warnf("record run: %v", err)
	}
	return res, nil
}

func (e *Engine) closeDay(dayIndex int, daily *dailyTotals) model.DaySummary {
	day := model.DaySummary{
		Day:                dayIndex + 1,
		SolarGeneratedKWh:  daily.solar,
		LoadConsumedKWh:    daily.load,
		GridImportedKWh:    daily.gridImport,
		GridExportedKWh:    daily.gridExport,
		CurtailedKWh:       daily.curtailed,
		BatterySoCEnd:      e.battery.SoC(),
		SelfSufficiencyPct: daily.selfSufficiency(),
	}
	if err := e.sink.RecordDay(day); err != nil {
		e.log.Warnf("record day %d: %v", day.Day, err)
	}
	e.publish(events.DayCompletedEvent{Day: day.Day, SelfSufficiencyPct: day.SelfSufficiencyPct})
	return day
}

func (e *Engine) publish(ev eventbus.Event) {
	if e.bus != nil {
		e.bus.Publish(ev)
	}
}

func (e *Engine) compileResult(steps []model.StepRecord, days []model.DaySummary,
	eventLog []model.Event, failureCount int, dtHours float64) *model.RunResult {

	var totalSolar, totalLoad, totalImport, totalExport, totalCurtailed float64
	for _, d := range days {
		totalSolar += d.SolarGeneratedKWh
		totalLoad += d.LoadConsumedKWh
		totalImport += d.GridImportedKWh
		totalExport += d.GridExportedKWh
		totalCurtailed += d.CurtailedKWh
	}

	selfSufficiency := 0.0
	if totalLoad > 0 {
		selfSufficiency = (1 - totalImport/totalLoad) * 100
	}

	socSamples := make([]float64, len(steps))
	minSoCPct := e.cfg.Battery.MinSoC * 100
	timesFull, timesEmpty := 0, 0
	downtimeHours := 0.0
	unmetHours := 0.0
	for i, s := range steps {
		socSamples[i] = s.BatterySoC
		if s.BatterySoC >= fullSoCThreshold {
			timesFull++
		}
		if s.BatterySoC <= minSoCPct+0.1 {
			timesEmpty++
		}
		if !s.InverterOperational {
			downtimeHours += dtHours
		}
		if s.Flows.UnmetLoad > 0 {
			unmetHours += dtHours
		}
	}
	avgSoC := 0.0
	if len(socSamples) > 0 {
		avgSoC = stat.Mean(socSamples, nil)
	}
	totalHours := float64(len(steps)) * dtHours
	unmetPct := 0.0
	if totalHours > 0 {
		unmetPct = unmetHours / totalHours * 100
	}

	importCost := totalImport * e.cfg.Grid.ImportCostPerKWh
	exportRevenue := totalExport * e.cfg.Grid.ExportRevenuePerKWh

	return &model.RunResult{
		RunID: uuid.NewString(),
		Seed:  e.seed,
		Summary: model.EnergySummary{
			DurationDays:       e.cfg.Simulation.DurationDays,
			Season:             e.season.String(),
			Strategy:           e.strategy.String(),
			TotalSolarKWh:      totalSolar,
			TotalLoadKWh:       totalLoad,
			TotalImportedKWh:   totalImport,
			TotalExportedKWh:   totalExport,
			TotalCurtailedKWh:  totalCurtailed,
			SelfSufficiencyPct: selfSufficiency,
		},
		Financial: model.FinancialSummary{
			ImportCost:    importCost,
			ExportRevenue: exportRevenue,
			NetCost:       importCost - exportRevenue,
		},
		Battery: model.BatterySummary{
			AverageSoCPct: avgSoC,
			FinalSoCPct:   e.battery.SoC(),
			CapacityKWh:   e.battery.Capacity(),
			Count:         e.cfg.Battery.Count,
			TimesFull:     timesFull,
			TimesEmpty:    timesEmpty,
		},
		Reliability: model.ReliabilitySummary{
			InverterFailures:  failureCount,
			DowntimeHours:     downtimeHours,
			TotalUnmetLoadKWh: totalImport,
			HoursWithUnmet:    unmetHours,
			UnmetLoadPct:      unmetPct,
		},
		System: model.SystemSummary{
			BatteryCount:  e.cfg.Battery.Count,
			SolarCount:    e.cfg.Solar.Count,
			InverterCount: e.cfg.Inverter.Count,
		},
		Steps:  steps,
		Days:   days,
		Events: eventLog,
	}
}
