// Package service contains billing code workflows for organization admins
package service

import (
	"context"
	"time"

	"rolegate/internal/modkit/dtokit"
	"rolegate/internal/modkit/guardkit"
	"rolegate/internal/modkit/querykit"
	"rolegate/internal/modkit/repokit"
	"rolegate/internal/modkit/scope"
	perr "rolegate/internal/platform/errors"
	pstrings "rolegate/internal/platform/strings"
	"rolegate/internal/services/api/billing/domain"

	"github.com/google/uuid"
)

var (
	listSpec = querykit.Spec{Scope: querykit.Tenant("organization_id")}

	// Sorts is the public sort allow-list for code searches
	Sorts = querykit.Sorts{
		Cols: map[string]string{
			"code":       "code",
			"amount":     "amount",
			"created_at": "created_at",
			"updated_at": "updated_at",
		},
		Default: "code",
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

// New creates a new billing service
func New(db repokit.TxRunner, binder repokit.Binder[domain.Repo], opts ...Option) *Svc {
	if db == nil {
		panic("billing.Service requires a non-nil TxRunner")
	}
	if binder == nil {
		panic("billing.Service requires a non-nil Repo binder")
	}
	s := &Svc{db: db, binder: binder, limits: querykit.DefaultLimits, now: guardkit.Now}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *Svc) policy() guardkit.Policy[domain.Code] {
	return guardkit.Policy[domain.Code]{
		Resource: "billing code",
		Load: func(ctx context.Context, q repokit.Queryer, id uuid.UUID) (domain.Code, error) {
			return s.binder.Bind(q).Lock(ctx, id)
		},
		InScope: func(sc scope.Scope, c domain.Code) bool {
			tid, err := sc.Tenant()
			return err == nil && c.OrganizationID == tid
		},
		UpdatedAt: func(c domain.Code) time.Time { return c.UpdatedAt },
		Hide:      true,
	}
}

// List returns one page of the caller's organization codes
func (s *Svc) List(ctx context.Context, sc scope.Scope, in domain.ListInput) (querykit.Page[domain.Code], error) {
	w, err := s.limits.Window(in.Page, in.Limit)
	if err != nil {
		return querykit.Page[domain.Code]{}, err
	}
	where, err := listSpec.Build(sc, false,
		querykit.Search(in.Search, "code", "description"),
		querykit.Exact("code", trimmed(in.Code)),
		querykit.Range("amount", in.AmountFrom, in.AmountTo),
	)
	if err != nil {
		return querykit.Page[domain.Code]{}, err
	}
	var out querykit.Page[domain.Code]
	err = guardkit.Run(ctx, s.db, sc, func(ctx context.Context, q repokit.Queryer) error {
		out, err = s.binder.Bind(q).List(ctx, where, Sorts.Resolve(in.Sort), w)
		return err
	})
	return out, err
}

func trimmed(o dtokit.Opt[string]) dtokit.Opt[string] {
	if v, ok := o.Get(); ok {
		return dtokit.Some(pstrings.NFC(v))
	}
	return o
}

// Get returns one of the caller's organization codes
func (s *Svc) Get(ctx context.Context, sc scope.Scope, id uuid.UUID) (domain.Code, error) {
	where, err := listSpec.Build(sc, false, querykit.Eq("id", id))
	if err != nil {
		return domain.Code{}, err
	}
	var out domain.Code
	err = guardkit.Run(ctx, s.db, sc, func(ctx context.Context, q repokit.Queryer) error {
		out, err = s.binder.Bind(q).Find(ctx, where)
		return err
	})
	if perr.IsCode(err, perr.ErrorCodeNotFound) {
		return domain.Code{}, perr.NotFoundf("billing code not found")
	}
	return out, err
}

// Create stores a new code in the caller's organization
func (s *Svc) Create(ctx context.Context, sc scope.Scope, in domain.CreateInput) (domain.Code, error) {
	tid, err := sc.Tenant()
	if err != nil {
		return domain.Code{}, err
	}
	if in.Amount == nil {
		return domain.Code{}, perr.FieldValidationf("amount", "amount is required")
	}
	now := s.now()
	c := domain.Code{
		ID:             uuid.New(),
		OrganizationID: tid,
		Code:           pstrings.NFC(in.Code),
		Description:    in.Description,
		Amount:         *in.Amount,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	err = guardkit.Run(ctx, s.db, sc, func(ctx context.Context, q repokit.Queryer) error {
		r := s.binder.Bind(q)
		if err := r.CodeTaken(ctx, tid, c.Code); err != nil {
			return err
		}
		return r.Insert(ctx, c)
	})
	if err != nil {
		return domain.Code{}, err
	}
	return c, nil
}

// Update applies the fields present in in
func (s *Svc) Update(ctx context.Context, sc scope.Scope, id uuid.UUID, in domain.UpdateInput) (domain.Code, error) {
	var out domain.Code
	err := guardkit.Run(ctx, s.db, sc, func(ctx context.Context, q repokit.Queryer) error {
		cur, err := s.policy().Admit(ctx, q, sc, id, guardkit.Intent{Expected: in.ExpectedUpdatedAt})
		if err != nil {
			return err
		}
		next := cur
		switch {
		case in.Description.IsNull():
			next.Description = nil
		case in.Description.Set():
			next.Description = in.Description.Ptr()
		}
		if a, ok := in.Amount.Get(); ok {
			next.Amount = a
		}
		next.UpdatedAt = s.now()
		if err := s.binder.Bind(q).Update(ctx, next, cur.UpdatedAt); err != nil {
			return err
		}
		out = next
		return nil
	})
	if err != nil {
		return domain.Code{}, err
	}
	return out, nil
}

// Delete removes the code row
func (s *Svc) Delete(ctx context.Context, sc scope.Scope, id uuid.UUID) error {
	return guardkit.Run(ctx, s.db, sc, func(ctx context.Context, q repokit.Queryer) error {
		cur, err := s.policy().Admit(ctx, q, sc, id, guardkit.Intent{})
		if err != nil {
			return err
		}
		return s.binder.Bind(q).Remove(ctx, cur.ID, cur.UpdatedAt)
	})
}
