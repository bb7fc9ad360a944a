package otel

import (
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	oteltrace "go.opentelemetry.io/otel/trace"
)

// Scope wraps one span. Callers End it with defer and report the named error result through TraceIfError.
type Scope interface {
	End()
	TraceError(err error)
	TraceIfError(err error)
	AddEvent(name string)
	SetAttribute(key string, value any)
	SetAttributes(attributes map[string]any)
}

type spanScope struct {
	span oteltrace.Span
}

func NewScope(span oteltrace.Span) Scope {
	return &spanScope{span: span}
}

func (s *spanScope) End() {
	s.span.End()
}

func (s *spanScope) TraceError(err error) {
	s.span.RecordError(err)
	s.span.SetStatus(codes.Error, err.Error())
}

func (s *spanScope) TraceIfError(err error) {
	if err == nil {
		return
	}

	s.TraceError(err)
}

func (s *spanScope) AddEvent(name string) {
	s.span.AddEvent(name)
}

func (s *spanScope) SetAttribute(key string, value any) {
	s.span.SetAttributes(toAttribute(key, value))
}

func (s *spanScope) SetAttributes(attributes map[string]any) {
	kvs := make([]attribute.KeyValue, 0, len(attributes))
	for key, value := range attributes {
		kvs = append(kvs, toAttribute(key, value))
	}

	s.span.SetAttributes(kvs...)
}

func toAttribute(key string, value any) attribute.KeyValue {
	switch v := value.(type) {
	case string:
		return attribute.String(key, v)
	case bool:
		return attribute.Bool(key, v)
	case int:
		return attribute.Int(key, v)
	case int64:
		return attribute.Int64(key, v)
	case float64:
		return attribute.Float64(key, v)
	case []string:
		return attribute.StringSlice(key, v)
	case fmt.Stringer:
		return attribute.String(key, v.String())
	default:
		return attribute.String(key, fmt.Sprint(v))
	}
}
