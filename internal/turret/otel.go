package turret

import (
	"context"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

const instrumentationName = "go-ufo-defense/internal/turret"

func meter() metric.Meter {
	return otel.Meter(instrumentationName)
}

type instruments struct {
	fired   metric.Int64Counter
	hit     metric.Int64Counter
	expired metric.Int64Counter
	attrs   metric.MeasurementOption
}

func newInstruments(name string, logger zerolog.Logger) instruments {
	in := instruments{attrs: metric.WithAttributes(attribute.String("turret", name))}
	in.fired = counter("turret.shots.fired", "Shots queued on a turret", logger)
	in.hit = counter("turret.shots.hit", "Shots terminated by a collision", logger)
	in.expired = counter("turret.shots.expired", "Shots terminated by the timeout", logger)
	return in
}

func counter(name, desc string, logger zerolog.Logger) metric.Int64Counter {
	c, err := meter().Int64Counter(name, metric.WithDescription(desc))
	if err != nil {
		logger.Warn().Err(err).Str("instrument", name).Msg("Instrument unavailable, using no-op")
		c, _ = noop.Meter{}.Int64Counter(name)
	}
	return c
}

func (in instruments) add(c metric.Int64Counter) {
	c.Add(context.Background(), 1, in.attrs)
}
