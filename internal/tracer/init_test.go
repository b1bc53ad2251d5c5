package tracer

import (
	"context"
	"testing"

	"chat-memory-be/internal/config"

	"github.com/stretchr/testify/assert"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

func decide(s sdktrace.Sampler) sdktrace.SamplingDecision {
	return s.ShouldSample(sdktrace.SamplingParameters{
		ParentContext: context.Background(),
		TraceID:       trace.TraceID{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff},
		Name:          "memory.session.create",
	}).Decision
}

func TestSamplerBounds(t *testing.T) {
	assert.Equal(t, sdktrace.RecordAndSample, decide(Sampler(1)))
	assert.Equal(t, sdktrace.RecordAndSample, decide(Sampler(3)))
	assert.Equal(t, sdktrace.Drop, decide(Sampler(0)))
	assert.Equal(t, sdktrace.Drop, decide(Sampler(-1)))
}

func TestInitTracerDisabled(t *testing.T) {
	shutdown := InitTracer(context.Background(), config.TracingConfig{Enabled: false})
	assert.NoError(t, shutdown(context.Background()))
}
