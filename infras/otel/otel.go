package otel

import (
	"context"
	"salon/config"

	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
	oteltrace "go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"google.golang.org/grpc/credentials/insecure"
)

// Otel opens spans for handlers, services, repositories and outbound calls.
type Otel interface {
	NewScope(ctx context.Context, scopeName, spanName string) (context.Context, Scope)
	Shutdown(ctx context.Context) error
}

type tracer struct {
	provider oteltrace.TracerProvider
	shutdown func(ctx context.Context) error
}

func (t *tracer) NewScope(ctx context.Context, scopeName, spanName string) (context.Context, Scope) {
	ctx, span := t.provider.Tracer(scopeName).Start(ctx, spanName)

	return ctx, NewScope(span)
}

// Shutdown flushes buffered spans.
func (t *tracer) Shutdown(ctx context.Context) error {
	if t.shutdown == nil {
		return nil
	}

	return t.shutdown(ctx)
}

// New exports spans over OTLP gRPC to EXTERNAL_OTEL_ENDPOINT. Without an endpoint every span is dropped.
func New(config *config.Config) Otel {
	endpoint := config.External.Otel.Endpoint
	if endpoint == "" {
		log.Warn().Msg("No OTLP endpoint configured, tracing disabled")

		return &tracer{provider: noop.NewTracerProvider()}
	}

	exporter, err := otlptracegrpc.New(context.Background(),
		otlptracegrpc.WithEndpoint(endpoint),
		otlptracegrpc.WithTLSCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		log.Fatal().Err(err).Str("endpoint", endpoint).Msg("Failed to create OTLP exporter")
	}

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceNameKey.String(config.App.Name),
			semconv.DeploymentEnvironmentKey.String(config.Server.Env),
		)),
	)

	otel.SetTracerProvider(provider)

	log.Info().Str("endpoint", endpoint).Msg("Tracing initialized")

	return &tracer{provider: provider, shutdown: provider.Shutdown}
}
