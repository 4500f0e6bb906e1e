package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// chiRouter adapts any chi.Router; the root *chi.Mux and its groups share it
type chiRouter struct{ r chi.Router }

// AdaptChi wraps m as a Router
func AdaptChi(m *chi.Mux) Router { return chiRouter{r: m} }

func (c chiRouter) on(method, p string, h Handler) { c.r.Method(method, p, http.HandlerFunc(h)) }

func (c chiRouter) Get(p string, h Handler)    { c.on(http.MethodGet, p, h) }
func (c chiRouter) Post(p string, h Handler)   { c.on(http.MethodPost, p, h) }
func (c chiRouter) Patch(p string, h Handler)  { c.on(http.MethodPatch, p, h) }
func (c chiRouter) Delete(p string, h Handler) { c.on(http.MethodDelete, p, h) }

func (c chiRouter) Handle(p string, h http.Handler)           { c.r.Handle(p, h) }
func (c chiRouter) Use(mw ...func(http.Handler) http.Handler) { c.r.Use(mw...) }

func (c chiRouter) Group(fn func(Router)) {
	c.r.Group(func(sub chi.Router) { fn(chiRouter{r: sub}) })
}

func (c chiRouter) Route(pattern string, fn func(Router)) {
	c.r.Route(pattern, func(sub chi.Router) { fn(chiRouter{r: sub}) })
}

// Mux returns the adapted router as a plain handler
func (c chiRouter) Mux() http.Handler { return c.r }

// Param returns the named path parameter of the matched route, "" when absent
func Param(r *http.Request, name string) string { return chi.URLParam(r, name) }
