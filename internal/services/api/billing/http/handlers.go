// Package http provides http transport for billing codes
package http

import (
	stdhttp "net/http"

	"rolegate/internal/modkit/dtokit"
	"rolegate/internal/modkit/httpkit"
	"rolegate/internal/modkit/querykit"
	"rolegate/internal/services/api/billing/domain"
)

// Register mounts the billing routes
func Register(r httpkit.Router, svc domain.ServicePort) {
	h := &handlers{svc: svc}
	httpkit.PostJSON(r, "/codes", h.create)
	httpkit.PostJSON(r, "/codes/search", h.search)
	httpkit.Get(r, "/codes/{id}", h.get)
	httpkit.PatchJSON(r, "/codes/{id}", h.update)
	httpkit.Delete(r, "/codes/{id}", h.delete)
}

type handlers struct{ svc domain.ServicePort }

// Mapper renders codes on the wire; amount is a decimal string
var Mapper = dtokit.NewMapper(
	dtokit.F("id", dtokit.Nullable, func(c domain.Code) any { return c.ID }),
	dtokit.F("organization_id", dtokit.Nullable, func(c domain.Code) any { return c.OrganizationID }),
	dtokit.F("code", dtokit.Nullable, func(c domain.Code) any { return c.Code }),
	dtokit.F("description", dtokit.Nullable, func(c domain.Code) any { return c.Description }),
	dtokit.F("amount", dtokit.Nullable, func(c domain.Code) any { return c.Amount }),
	dtokit.F("created_at", dtokit.Nullable, func(c domain.Code) any { return c.CreatedAt }),
	dtokit.F("updated_at", dtokit.Nullable, func(c domain.Code) any { return c.UpdatedAt }),
)

func (h *handlers) create(r *stdhttp.Request, in domain.CreateInput) (any, error) {
	sc, err := httpkit.Caller(r)
	if err != nil {
		return nil, err
	}
	c, err := h.svc.Create(r.Context(), sc, in)
	if err != nil {
		return nil, err
	}
	return httpkit.Created(Mapper.Map(c)), nil
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
	c, err := h.svc.Get(r.Context(), sc, id)
	if err != nil {
		return nil, err
	}
	return Mapper.Map(c), nil
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
	c, err := h.svc.Update(r.Context(), sc, id, in)
	if err != nil {
		return nil, err
	}
	return Mapper.Map(c), nil
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
