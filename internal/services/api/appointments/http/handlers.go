// Package http provides http transport for appointments
package http

import (
	stdhttp "net/http"

	"rolegate/internal/modkit/dtokit"
	"rolegate/internal/modkit/httpkit"
	"rolegate/internal/modkit/querykit"
	"rolegate/internal/services/api/appointments/domain"
)

// Register mounts the appointment routes
func Register(r httpkit.Router, svc domain.ServicePort) {
	h := &handlers{svc: svc}
	httpkit.PostJSON(r, "/search", h.search)
	httpkit.Get(r, "/{id}", h.get)
	httpkit.PatchJSON(r, "/{id}", h.update)
	httpkit.Delete(r, "/{id}", h.delete)
}

type handlers struct{ svc domain.ServicePort }

// Mapper renders appointments on the wire; room_id and notes are always present
var Mapper = dtokit.NewMapper(
	dtokit.F("id", dtokit.Nullable, func(a domain.Appointment) any { return a.ID }),
	dtokit.F("organization_id", dtokit.Nullable, func(a domain.Appointment) any { return a.OrganizationID }),
	dtokit.F("title", dtokit.Nullable, func(a domain.Appointment) any { return a.Title }),
	dtokit.F("notes", dtokit.Nullable, func(a domain.Appointment) any { return a.Notes }),
	dtokit.F("status", dtokit.Nullable, func(a domain.Appointment) any { return string(a.Status) }),
	dtokit.F("room_id", dtokit.Nullable, func(a domain.Appointment) any { return a.RoomID }),
	dtokit.F("starts_at", dtokit.Nullable, func(a domain.Appointment) any { return a.StartsAt }),
	dtokit.F("technician_ids", dtokit.Nullable, func(a domain.Appointment) any { return technicians(a) }),
	dtokit.F("created_at", dtokit.Nullable, func(a domain.Appointment) any { return a.CreatedAt }),
	dtokit.F("updated_at", dtokit.Nullable, func(a domain.Appointment) any { return a.UpdatedAt }),
	dtokit.F("deleted_at", dtokit.Optional, func(a domain.Appointment) any { return a.DeletedAt }),
)

func technicians(a domain.Appointment) []string {
	out := make([]string, 0, len(a.Technicians))
	for _, id := range a.Technicians {
		out = append(out, id.String())
	}
	return out
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
	a, err := h.svc.Get(r.Context(), sc, id)
	if err != nil {
		return nil, err
	}
	return Mapper.Map(a), nil
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
	a, err := h.svc.Update(r.Context(), sc, id, in)
	if err != nil {
		return nil, err
	}
	return Mapper.Map(a), nil
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
