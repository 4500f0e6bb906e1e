// Package service contains appointment workflows for assigned technicians
package service

import (
	"context"
	"time"

	"rolegate/internal/modkit/guardkit"
	"rolegate/internal/modkit/querykit"
	"rolegate/internal/modkit/repokit"
	"rolegate/internal/modkit/scope"
	pstrings "rolegate/internal/platform/strings"
	"rolegate/internal/services/api/appointments/domain"

	"github.com/google/uuid"
)

// DefaultLimits is the page size appointments use when none is configured
var DefaultLimits = querykit.Limits{Default: 20, Max: 100}

var (
	listSpec = querykit.Spec{
		SoftDelete: "deleted_at",
		Scope: querykit.All(
			querykit.Assigned(domain.Assignments, "appointment_id", "appointments.id", "technician_id"),
			querykit.Tenant("organization_id"),
		),
	}

	// Sorts is the public sort allow-list for appointment searches
	Sorts = querykit.Sorts{
		Cols: map[string]string{
			"starts_at":  "starts_at",
			"startsAt":   "starts_at",
			"created_at": "created_at",
			"title":      "title",
			"status":     "status",
		},
		Default: "-starts_at",
		Tie:     "id",
	}
)

// Svc implements domain.ServicePort
type Svc struct {
	db     repokit.TxRunner
	binder repokit.Binder[domain.Repo]
	limits querykit.Limits
	now    func() time.Time
}

// Option configures Svc
type Option func(*Svc)

// WithLimits sets the page size limits
func WithLimits(l querykit.Limits) Option { return func(s *Svc) { s.limits = l } }

// WithClock replaces the write clock
func WithClock(now func() time.Time) Option { return func(s *Svc) { s.now = now } }

// New creates a new appointments service
func New(db repokit.TxRunner, binder repokit.Binder[domain.Repo], opts ...Option) *Svc {
	if db == nil {
		panic("appointments.Service requires a non-nil TxRunner")
	}
	if binder == nil {
		panic("appointments.Service requires a non-nil Repo binder")
	}
	s := &Svc{db: db, binder: binder, limits: DefaultLimits, now: guardkit.Now}
	for _, o := range opts {
		o(s)
	}
	return s
}

// policy distinguishes forbidden from absent: technicians may know an appointment exists
func (s *Svc) policy() guardkit.Policy[domain.Appointment] {
	return guardkit.Policy[domain.Appointment]{
		Resource: "appointment",
		Load: func(ctx context.Context, q repokit.Queryer, id uuid.UUID) (domain.Appointment, error) {
			return s.binder.Bind(q).Lock(ctx, id)
		},
		Find: func(ctx context.Context, q repokit.Queryer, id uuid.UUID) (domain.Appointment, error) {
			return s.binder.Bind(q).Find(ctx, id)
		},
		Deleted: func(a domain.Appointment) bool { return a.DeletedAt != nil },
		InScope: func(sc scope.Scope, a domain.Appointment) bool {
			tid, err := sc.Tenant()
			return err == nil && a.OrganizationID == tid && a.AssignedTo(sc.Principal.ID)
		},
		Terminal:  func(a domain.Appointment) bool { return domain.Lifecycle.Terminal(a.Status) },
		UpdatedAt: func(a domain.Appointment) time.Time { return a.UpdatedAt },
	}
}

// List returns one page of appointments assigned to the caller
func (s *Svc) List(ctx context.Context, sc scope.Scope, in domain.ListInput) (querykit.Page[domain.Appointment], error) {
	w, err := s.limits.Window(in.Page, in.Limit)
	if err != nil {
		return querykit.Page[domain.Appointment]{}, err
	}
	where, err := listSpec.Build(sc, in.IncludeArchived,
		querykit.Search(in.Search, "title", "notes"),
		querykit.Exact("status", in.Status),
		querykit.ExactOrNull("room_id", in.RoomID),
		querykit.Range("starts_at", in.StartsFrom, in.StartsTo),
	)
	if err != nil {
		return querykit.Page[domain.Appointment]{}, err
	}
	var out querykit.Page[domain.Appointment]
	err = guardkit.Run(ctx, s.db, sc, func(ctx context.Context, q repokit.Queryer) error {
		out, err = s.binder.Bind(q).List(ctx, where, Sorts.Resolve(in.Sort), w)
		return err
	})
	return out, err
}

// Get returns one live appointment assigned to the caller
func (s *Svc) Get(ctx context.Context, sc scope.Scope, id uuid.UUID) (domain.Appointment, error) {
	var out domain.Appointment
	err := guardkit.Run(ctx, s.db, sc, func(ctx context.Context, q repokit.Queryer) error {
		a, err := s.policy().Read(ctx, q, sc, id)
		out = a
		return err
	})
	return out, err
}

// Update applies the fields present in in
// a rejected update leaves the stored row untouched
func (s *Svc) Update(ctx context.Context, sc scope.Scope, id uuid.UUID, in domain.UpdateInput) (domain.Appointment, error) {
	tid, err := sc.Tenant()
	if err != nil {
		return domain.Appointment{}, err
	}

	var out domain.Appointment
	err = guardkit.Run(ctx, s.db, sc, func(ctx context.Context, q repokit.Queryer) error {
		r := s.binder.Bind(q)
		intent := guardkit.Intent{Expected: in.ExpectedUpdatedAt}
		if room, ok := in.RoomID.Get(); ok {
			intent.Refs = append(intent.Refs, guardkit.InTenant("room_id", room, tid, func(ctx context.Context, _ repokit.Queryer, id uuid.UUID) (guardkit.RefRow, error) {
				return r.Room(ctx, id)
			}))
		}
		cur, err := s.policy().Admit(ctx, q, sc, id, intent)
		if err != nil {
			return err
		}
		if err := guardkit.Immutable("organization_id", in.OrganizationID, cur.OrganizationID); err != nil {
			return err
		}

		next := cur
		if st, ok := in.Status.Get(); ok {
			if err := domain.Lifecycle.Allow("status", cur.Status, st); err != nil {
				return err
			}
			next.Status = st
		}
		if t, ok := in.Title.Get(); ok {
			next.Title = pstrings.NFC(t)
		}
		switch {
		case in.Notes.IsNull():
			next.Notes = nil
		case in.Notes.Set():
			next.Notes = in.Notes.Ptr()
		}
		switch {
		case in.RoomID.IsNull():
			next.RoomID = uuid.NullUUID{}
		case in.RoomID.Set():
			room, _ := in.RoomID.Get()
			next.RoomID = uuid.NullUUID{UUID: room, Valid: true}
		}
		if at, ok := in.StartsAt.Get(); ok {
			next.StartsAt = at.UTC()
		}
		next.UpdatedAt = s.now()
		if err := r.Update(ctx, next, cur.UpdatedAt); err != nil {
			return err
		}
		out = next
		return nil
	})
	if err != nil {
		return domain.Appointment{}, err
	}
	return out, nil
}

// Delete archives the appointment
func (s *Svc) Delete(ctx context.Context, sc scope.Scope, id uuid.UUID) error {
	return guardkit.Run(ctx, s.db, sc, func(ctx context.Context, q repokit.Queryer) error {
		cur, err := s.policy().Admit(ctx, q, sc, id, guardkit.Intent{})
		if err != nil {
			return err
		}
		return s.binder.Bind(q).Archive(ctx, cur.ID, s.now(), cur.UpdatedAt)
	})
}
