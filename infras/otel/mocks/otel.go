// Package mocks provides a tracer that drops every span, for tests that do not assert on tracing.
package mocks

import (
	"context"
	"salon/infras/otel"
)

type noopOtel struct{}

type noopScope struct{}

func NewOtel() otel.Otel {
	return noopOtel{}
}

func (noopOtel) NewScope(ctx context.Context, _, _ string) (context.Context, otel.Scope) {
	return ctx, noopScope{}
}

func (noopOtel) Shutdown(context.Context) error {
	return nil
}

func (noopScope) End()                         {}
func (noopScope) TraceError(error)             {}
func (noopScope) TraceIfError(error)           {}
func (noopScope) AddEvent(string)              {}
func (noopScope) SetAttribute(string, any)     {}
func (noopScope) SetAttributes(map[string]any) {}
