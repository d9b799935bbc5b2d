package tracer

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/go-logr/stdr"
	"go.opentelemetry.io/contrib/propagators/aws/xray"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	oteltrace "go.opentelemetry.io/otel/trace"
)

const name = "simpl"

type TracerArgs struct {
	OtlpEndpoint string `arg:"--otlp-endpoint,env:OTLP_ENDPOINT" default:"" json:"otlp_endpoint,omitempty"`
	// TraceRuns logs a per-run breakdown of the lex/parse/eval phases at debug level.
	TraceRuns bool `arg:"--trace-runs,env:TRACE_RUNS" default:"false" json:"trace_runs,omitempty"`
}

type Span struct {
	c    context.Context
	span oteltrace.Span
}

func (s Span) Context() context.Context {
	return s.c
}

func (s Span) End() {
	s.span.End()
}

func (s Span) SetIntAttribute(attrName string, val int) {
	s.span.SetAttributes(attribute.Int(attrName, val))
}

func (s Span) SetStringAttribute(attrName string, val string) {
	s.span.SetAttributes(attribute.String(attrName, val))
}

// RecordError marks the span as failed. A nil err is ignored.
func (s Span) RecordError(err error) {
	if err != nil {
		s.span.RecordError(err)
	}
}

// StartSpan starts a span under the global provider. Until InitProvider is
// called the global provider is a no-op and so are the spans.
func StartSpan(ctx context.Context, spanName string) Span {
	tracer := otel.Tracer(name)
	cCtx, span := tracer.Start(ctx, spanName)
	return Span{
		c:    cCtx,
		span: span,
	}
}

// InitProvider exports spans to the OTLP collector at args.OtlpEndpoint. It
// does nothing when no endpoint is configured. The returned function flushes
// and stops the exporter.
func InitProvider(args TracerArgs) (func(context.Context) error, error) {
	if args.OtlpEndpoint == "" {
		return func(context.Context) error { return nil }, nil
	}
	ctx := context.Background()

	traceExporter, err := otlptracegrpc.New(
		ctx, otlptracegrpc.WithInsecure(), otlptracegrpc.WithEndpoint(args.OtlpEndpoint))
	if err != nil {
		return nil, fmt.Errorf("failed to create trace exporter, err: %v", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.AlwaysSample())),
		sdktrace.WithBatcher(traceExporter, sdktrace.WithMaxQueueSize(20480), sdktrace.WithMaxExportBatchSize(2048)),
		sdktrace.WithIDGenerator(xray.NewIDGenerator()))

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(xray.Propagator{})

	// surfaces dropped-span warnings from the batch processor
	stdrLogger := stdr.New(log.New(os.Stderr, "", log.LstdFlags|log.Lshortfile))
	stdr.SetVerbosity(5)
	otel.SetLogger(stdrLogger)

	return tp.Shutdown, nil
}
