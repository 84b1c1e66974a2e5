// Copyright (c) 2023 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package common

import (
	"context"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	oteltrace "go.opentelemetry.io/otel/trace"
)

const (
	traceIdLogField   = "traceID"
	visitorIdLogField = "visitorID"
	tracerName        = "visitor-achievements"
)

// Scope carries the span and the trace-tagged logger of one engine pass.
type Scope struct {
	Ctx     context.Context
	TraceID string
	span    oteltrace.Span
	Log     *log.Entry
}

// StartScope starts a span named name as a child of whatever span ctx holds.
func StartScope(ctx context.Context, name string) *Scope {
	tracerCtx, span := otel.Tracer(tracerName).Start(ctx, name)
	traceID := span.SpanContext().TraceID().String()

	return &Scope{
		Ctx:     tracerCtx,
		TraceID: traceID,
		span:    span,
		Log:     log.WithField(traceIdLogField, traceID),
	}
}

// WithVisitor tags the span and the logger with the visitor id.
func (s *Scope) WithVisitor(visitorID string) *Scope {
	s.span.SetAttributes(attribute.String("visitor.id", visitorID))
	s.Log = s.Log.WithField(visitorIdLogField, visitorID)
	return s
}

// Finish ends the span.
func (s *Scope) Finish() {
	s.span.End()
}

// TraceEvent adds a named event to the span.
func (s *Scope) TraceEvent(eventMessage string, attrs ...attribute.KeyValue) {
	s.span.AddEvent(eventMessage, oteltrace.WithAttributes(attrs...))
}

// TraceError records err on the span and marks the span failed.
func (s *Scope) TraceError(err error) {
	s.span.RecordError(err)
	s.span.SetStatus(codes.Error, err.Error())
}

// SetAttributes adds an attribute based on the value's type.
func (s *Scope) SetAttributes(key string, value interface{}) {
	switch v := value.(type) {
	case bool:
		s.span.SetAttributes(attribute.Bool(key, v))
	case string:
		s.span.SetAttributes(attribute.String(key, v))
	case int:
		s.span.SetAttributes(attribute.Int(key, v))
	case int64:
		s.span.SetAttributes(attribute.Int64(key, v))
	case []string:
		s.span.SetAttributes(attribute.StringSlice(key, v))
	default:
		s.Log.Errorf("could not set a span attribute of type %T", value)
	}
}
