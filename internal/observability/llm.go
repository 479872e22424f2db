package observability

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/yungbote/learnpath-backend/internal/platform/openai"
)

const tracerName = "learnpath/llm"

type instrumentedLLM struct {
	next openai.Client
	m    *Metrics
}

// InstrumentLLM wraps an openai.Client with a span and request metrics per call.
func InstrumentLLM(next openai.Client, m *Metrics) openai.Client {
	if next == nil {
		return nil
	}
	return &instrumentedLLM{next: next, m: m}
}

func (c *instrumentedLLM) GenerateJSON(ctx context.Context, system, user, schemaName string, schema map[string]any, out any) error {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "llm.generate_json",
		trace.WithAttributes(attribute.String("llm.schema", schemaName)))
	defer span.End()

	start := time.Now()
	err := c.next.GenerateJSON(ctx, system, user, schemaName, schema, out)
	c.finish(span, "generate_json", start, err)
	return err
}

func (c *instrumentedLLM) StreamChat(ctx context.Context, req openai.ChatRequest, onDelta func(string) error) (string, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "llm.stream_chat",
		trace.WithAttributes(attribute.Int("llm.messages", len(req.Messages))))
	defer span.End()

	start := time.Now()
	full, err := c.next.StreamChat(ctx, req, onDelta)
	span.SetAttributes(attribute.Int("llm.output_chars", len(full)))
	c.finish(span, "stream_chat", start, err)
	return full, err
}

func (c *instrumentedLLM) finish(span trace.Span, operation string, start time.Time, err error) {
	status := "ok"
	switch {
	case err == nil:
	case errors.Is(err, context.Canceled):
		status = "canceled"
	default:
		status = "error"
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	c.m.ObserveLLMRequest(operation, status, time.Since(start))
}
