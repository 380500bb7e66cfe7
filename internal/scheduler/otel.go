package scheduler

import (
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

const instrumentationName = "go-ufo-defense/internal/scheduler"

func meter() metric.Meter {
	return otel.Meter(instrumentationName)
}

type instruments struct {
	ticks  metric.Int64Counter
	faults metric.Int64Counter
	live   metric.Int64UpDownCounter
}

func newInstruments(logger zerolog.Logger) instruments {
	m := meter()
	var in instruments
	var err error

	if in.ticks, err = m.Int64Counter("scheduler.ticks",
		metric.WithDescription("Frames swept by the scheduler")); err != nil {
		logger.Warn().Err(err).Msg("scheduler.ticks instrument unavailable")
		in.ticks, _ = noop.Meter{}.Int64Counter("scheduler.ticks")
	}
	if in.faults, err = m.Int64Counter("scheduler.task.faults",
		metric.WithDescription("Tasks stopped because their callback panicked")); err != nil {
		logger.Warn().Err(err).Msg("scheduler.task.faults instrument unavailable")
		in.faults, _ = noop.Meter{}.Int64Counter("scheduler.task.faults")
	}
	if in.live, err = m.Int64UpDownCounter("scheduler.tasks.live",
		metric.WithDescription("Registered tasks that have not stopped")); err != nil {
		logger.Warn().Err(err).Msg("scheduler.tasks.live instrument unavailable")
		in.live, _ = noop.Meter{}.Int64UpDownCounter("scheduler.tasks.live")
	}
	return in
}
