// Package http provides http transport for diary entries
package http

import (
	stdhttp "net/http"

	"rolegate/internal/modkit/dtokit"
	"rolegate/internal/modkit/httpkit"
	"rolegate/internal/modkit/querykit"
	"rolegate/internal/services/api/diary/domain"
)

// Register mounts the diary routes
func Register(r httpkit.Router, svc domain.ServicePort) {
	h := &handlers{svc: svc}
	httpkit.PostJSON(r, "/entries", h.create)
	httpkit.PostJSON(r, "/entries/search", h.search)
	httpkit.Get(r, "/entries/{id}", h.get)
	httpkit.PatchJSON(r, "/entries/{id}", h.update)
	httpkit.Delete(r, "/entries/{id}", h.delete)
}

type handlers struct{ svc domain.ServicePort }

// Mapper renders entries on the wire; deleted_at only appears on archived rows
var Mapper = dtokit.NewMapper(
	dtokit.F("id", dtokit.Nullable, func(e domain.Entry) any { return e.ID }),
	dtokit.F("title", dtokit.Nullable, func(e domain.Entry) any { return e.Title }),
	dtokit.F("body", dtokit.Nullable, func(e domain.Entry) any { return e.Body }),
	dtokit.F("mood", dtokit.Nullable, func(e domain.Entry) any { return e.Mood }),
	dtokit.F("created_at", dtokit.Nullable, func(e domain.Entry) any { return e.CreatedAt }),
	dtokit.F("updated_at", dtokit.Nullable, func(e domain.Entry) any { return e.UpdatedAt }),
	dtokit.F("deleted_at", dtokit.Optional, func(e domain.Entry) any { return e.DeletedAt }),
)

func (h *handlers) create(r *stdhttp.Request, in domain.CreateInput) (any, error) {
	sc, err := httpkit.Caller(r)
	if err != nil {
		return nil, err
	}
	e, err := h.svc.Create(r.Context(), sc, in)
	if err != nil {
		return nil, err
	}
	return httpkit.Created(Mapper.Map(e)), nil
}

func (h *handlers) search(r *stdhttp.Request, in domain.ListInput) (any, error) {
	sc, err := httpkit.Caller(r)
	if err != nil {
		return nil, err
	}
	p, err := h.svc.List(r.Context(), sc, in)
	if err != nil {
		return nil, err
	}
	return querykit.MapPage(p, Mapper.Map), nil
}

func (h *handlers) get(r *stdhttp.Request) (any, error) {
	sc, err := httpkit.Caller(r)
	if err != nil {
		return nil, err
	}
	id, err := httpkit.ParamUUID(r, "id")
	if err != nil {
		return nil, err
	}
	e, err := h.svc.Get(r.Context(), sc, id)
	if err != nil {
		return nil, err
	}
	return Mapper.Map(e), nil
}

func (h *handlers) update(r *stdhttp.Request, in domain.UpdateInput) (any, error) {
	sc, err := httpkit.Caller(r)
	if err != nil {
		return nil, err
	}
	id, err := httpkit.ParamUUID(r, "id")
	if err != nil {
		return nil, err
	}
	e, err := h.svc.Update(r.Context(), sc, id, in)
	if err != nil {
		return nil, err
	}
	return Mapper.Map(e), nil
}

func (h *handlers) delete(r *stdhttp.Request) (any, error) {
	sc, err := httpkit.Caller(r)
	if err != nil {
		return nil, err
	}
	id, err := httpkit.ParamUUID(r, "id")
	if err != nil {
		return nil, err
	}
	if err := h.svc.Delete(r.Context(), sc, id); err != nil {
		return nil, err
	}
	return httpkit.NoContent(), nil
}
