package telemetry

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/schemagen/internal/core/ports"
)

const durationPrecision = time.Microsecond

// DurationProcessor logs the duration of every finished span at debug level.
type DurationProcessor struct {
	logger ports.Logger
}

// NewDurationProcessor creates a new DurationProcessor.
func NewDurationProcessor(logger ports.Logger) *DurationProcessor {
	return &DurationProcessor{logger: logger}
}

// OnStart does nothing.
func (p *DurationProcessor) OnStart(_ context.Context, _ sdktrace.ReadWriteSpan) {}

// OnEnd logs the span name, its duration and its error status.
func (p *DurationProcessor) OnEnd(s sdktrace.ReadOnlySpan) {
	msg := fmt.Sprintf("%s took %s", s.Name(), s.EndTime().Sub(s.StartTime()).Round(durationPrecision))
	if status := s.Status(); status.Code == codes.Error {
		msg += " (failed: " + status.Description + ")"
	}
	p.logger.Debug(msg)
}

// Shutdown does nothing.
func (p *DurationProcessor) Shutdown(_ context.Context) error { return nil }

// ForceFlush does nothing.
func (p *DurationProcessor) ForceFlush(_ context.Context) error { return nil }
