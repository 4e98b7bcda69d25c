package raw

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

type instruments struct {
	calls  metric.Int64Counter
	errors metric.Int64Counter
	wait   metric.Float64Histogram
}

// meters is created on first use so a meter provider installed by main
// before opening a journal is picked up.
var meters = sync.OnceValue(func() *instruments {
	m := otel.Meter("github.com/dynoinc/sdjournal/raw")

	// Instrument creation only fails for invalid names; a nil-safe noop is
	// returned alongside the error.
	calls, _ := m.Int64Counter("sdjournal.native.calls",
		metric.WithDescription("Calls into libsystemd by entry point"))
	errors, _ := m.Int64Counter("sdjournal.native.errors",
		metric.WithDescription("Negative libsystemd results by entry point"))
	wait, _ := m.Float64Histogram("sdjournal.wait.duration",
		metric.WithDescription("Time spent blocked in sd_journal_wait"),
		metric.WithUnit("s"))

	return &instruments{calls: calls, errors: errors, wait: wait}
})

func record(op string, rc int) {
	m := meters()
	attrs := metric.WithAttributes(attribute.String("op", op))
	m.calls.Add(context.Background(), 1, attrs)
	if rc < 0 {
		m.errors.Add(context.Background(), 1, attrs)
	}
}

func recordWait(d time.Duration, ev Event) {
	meters().wait.Record(context.Background(), d.Seconds(),
		metric.WithAttributes(attribute.String("event", ev.String())))
}
