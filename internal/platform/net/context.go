// Package net provides utilities for working with request contexts
package net

import (
	"context"

	"rolegate/internal/core/principal"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// ctxKey is an unexported key type for context values
type ctxKey string

const keyCaller ctxKey = "caller"

// caller is the resolved and validated identity of a request
type caller struct {
	p principal.Principal
	a principal.Account
}

// WithRequest annotates context with the request id
func WithRequest(ctx context.Context, reqID string) context.Context {
	if reqID != "" {
		// set chi RequestID so chimw.GetReqID can retrieve it
		ctx = context.WithValue(ctx, chimw.RequestIDKey, reqID)
	}
	return ctx
}

// WithCaller stores the principal and its validated account on ctx
func WithCaller(ctx context.Context, p principal.Principal, a principal.Account) context.Context {
	return context.WithValue(ctx, keyCaller, caller{p: p, a: a})
}

// Caller returns the principal and account stored by WithCaller
func Caller(ctx context.Context) (principal.Principal, principal.Account, bool) {
	c, ok := ctx.Value(keyCaller).(caller)
	return c.p, c.a, ok
}

// RequestID returns the request id on the context if present
func RequestID(ctx context.Context) string { return chimw.GetReqID(ctx) }

// TenantID returns the caller's organization id as a string, or "" when none
func TenantID(ctx context.Context) string {
	_, a, ok := Caller(ctx)
	if !ok {
		return ""
	}
	if id, ok := a.TenantID(); ok {
		return id.String()
	}
	return ""
}

// PrincipalID returns the caller id as a string, or "" when unauthenticated
func PrincipalID(ctx context.Context) string {
	p, _, ok := Caller(ctx)
	if !ok {
		return ""
	}
	return p.ID.String()
}
