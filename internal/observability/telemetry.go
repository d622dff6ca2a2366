package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/alan-bolger/4th-year-project-voxel-engine/internal/logging"
)

// TracerName - имя трассировщика конвейера построения мира
const TracerName = "github.com/alan-bolger/4th-year-project-voxel-engine"

// Tracer возвращает трассировщик из глобального TracerProvider.
// Без InitTelemetry спаны создаются no-op провайдером.
func Tracer() trace.Tracer {
	return otel.Tracer(TracerName)
}

// InitTelemetry настраивает OTLP экспортер и устанавливает глобальный TracerProvider.
// instanceID попадает в ресурс как service.instance.id (идентификатор запуска).
// Возвращает функцию shutdown, которую нужно вызвать при завершении приложения.
func InitTelemetry(ctx context.Context, serviceName, instanceID string, opts ...otlptracehttp.Option) (func(context.Context) error, error) {
	// OTLP HTTP экспортер (по умолчанию localhost:4318)
	exp, err := otlptracehttp.New(ctx, opts...)
	if err != nil {
		return nil, err
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(serviceName),
			semconv.ServiceInstanceID(instanceID),
		),
	)
	if err != nil {
		return nil, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exp),
		sdktrace.WithResource(res),
	)

	otel.SetTracerProvider(tp)
	logging.Info("📡 OpenTelemetry инициализирован (service=%s, run=%s)", serviceName, instanceID)

	shutdown := func(ctx context.Context) error {
		ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		return tp.Shutdown(ctx)
	}
	return shutdown, nil
}
