package frameshow

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

const meterName = "github.com/phanxgames/frameshow"

// tickMetrics records scene tick timings through OTel. With no global
// provider configured every instrument is a no-op.
type tickMetrics struct {
	duration    metric.Float64Histogram
	overBudget  metric.Int64Counter
	transitions metric.Int64Counter
}

func newTickMetrics(m metric.Meter) *tickMetrics {
	if m == nil {
		m = noop.NewMeterProvider().Meter(meterName)
	}
	nm := noop.NewMeterProvider().Meter(meterName)
	tm := &tickMetrics{}

	var err error
	tm.duration, err = m.Float64Histogram(
		"frameshow.tick.duration",
		metric.WithDescription("Scene update duration"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		tm.duration, _ = nm.Float64Histogram("frameshow.tick.duration")
	}
	tm.overBudget, err = m.Int64Counter(
		"frameshow.tick.over_budget",
		metric.WithDescription("Scene updates that took longer than one tick"),
	)
	if err != nil {
		tm.overBudget, _ = nm.Int64Counter("frameshow.tick.over_budget")
	}
	tm.transitions, err = m.Int64Counter(
		"frameshow.transitions",
		metric.WithDescription("Frame transitions started"),
	)
	if err != nil {
		tm.transitions, _ = nm.Int64Counter("frameshow.transitions")
	}
	return tm
}

func (tm *tickMetrics) tick(d, budget time.Duration) {
	ctx := context.Background()
	tm.duration.Record(ctx, float64(d)/float64(time.Millisecond))
	if d > budget {
		tm.overBudget.Add(ctx, 1)
	}
}

func (tm *tickMetrics) transition(steps int) {
	animated := steps > 0
	tm.transitions.Add(context.Background(), 1,
		metric.WithAttributes(attribute.Bool("animated", animated)))
}
