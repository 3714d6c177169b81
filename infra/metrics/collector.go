package metrics

import (
	"context"
	"time"

	"github.com/greengrid/simulator/core/events"
	"github.com/greengrid/simulator/core/logger"
	coremetrics "github.com/greengrid/simulator/core/metrics"
	infralogger "github.com/greengrid/simulator/infra/logger"
	"github.com/greengrid/simulator/internal/eventbus"
)

// StartEventCollector subscribes to the event bus and consumes simulation
// events: every event is logged, and inverter failures are forwarded to
// sinks that can count them. It stops when the context is canceled or the
// bus closes.
func StartEventCollector(ctx context.Context, bus eventbus.EventBus, sink coremetrics.Sink, log logger.Logger) {
	if bus == nil {
		return
	}
	if log == nil {
		log = infralogger.NopLogger{}
	}
	sub := bus.Subscribe()
	go func() {
		defer bus.Unsubscribe(sub)
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-sub:
				if !ok {
					return
				}
				switch e := ev.(type) {
				case events.InverterFailureEvent:
					log.Warnf("inverter failed at %s, %.0fh outage ahead",
						e.Timestamp.Format(time.RFC3339), e.RemainingHours)
					if r, ok := sink.(coremetrics.FailureRecorder); ok {
						_ = r.RecordFailure(e)
					}
				case events.InverterRecoveryEvent:
					log.Infof("inverter recovered at %s", e.Timestamp.Format(time.RFC3339))
				case events.DayCompletedEvent:
					log.Debugf("day %d completed, self-sufficiency %.1f%%", e.Day, e.SelfSufficiencyPct)
				}
			}
		}
	}()
}
