// Package httpkit is the module facing HTTP surface: routing, auth scopes,
// caller lookup and handler adapters over internal/platform/net/http
package httpkit

import (
	"net/http"

	phttp "rolegate/internal/platform/net/http"
)

type (
	Router   = phttp.Router
	Handler  = phttp.Handler
	Response = phttp.Response
)

// Created picks a 201 for a handler result
func Created(data any) Response { return phttp.Created(data) }

// NoContent picks a 204 with an empty body
func NoContent() Response { return phttp.NoContent() }

// JSON strictly decodes and validates the body into T before calling fn
func JSON[T any](fn func(*http.Request, T) (any, error)) Handler { return phttp.JSONHandler(fn) }

// Call adapts a handler that reads no body
func Call(fn func(*http.Request) (any, error)) Handler { return phttp.JSONHandlerNoBody(fn) }
