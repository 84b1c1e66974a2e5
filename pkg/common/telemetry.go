// Copyright (c) 2023 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package common

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/zipkin"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

// NewTracerProvider builds a tracer provider tagged with the service metadata.
// Spans are exported to zipkinEndpoint when it is set; otherwise they are
// sampled but never leave the process.
func NewTracerProvider(serviceName, environment string, id int64, zipkinEndpoint string) (*sdktrace.TracerProvider, error) {
	res := resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(serviceName),
		attribute.String("environment", environment),
		attribute.Int64("ID", id),
	)

	opts := []sdktrace.TracerProviderOption{
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
		sdktrace.WithResource(res),
	}

	if zipkinEndpoint != "" {
		exporter, err := zipkin.New(zipkinEndpoint)
		if err != nil {
			return nil, fmt.Errorf("failed to create zipkin exporter: %w", err)
		}
		opts = append(opts, sdktrace.WithBatcher(exporter))
		logrus.Infof("exporting traces to zipkin at %s", zipkinEndpoint)
	}

	return sdktrace.NewTracerProvider(opts...), nil
}
