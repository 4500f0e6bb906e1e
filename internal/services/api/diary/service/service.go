// Package service contains diary entry workflows
package service

import (
	"context"
	"time"

	"rolegate/internal/modkit/guardkit"
	"rolegate/internal/modkit/querykit"
	"rolegate/internal/modkit/repokit"
	"rolegate/internal/modkit/scope"
	perr "rolegate/internal/platform/errors"
	pstrings "rolegate/internal/platform/strings"
	"rolegate/internal/services/api/diary/domain"

	"github.com/google/uuid"
)

var (
	listSpec = querykit.Spec{SoftDelete: "deleted_at", Scope: querykit.Owner("owner_id")}

	// Sorts is the public sort allow-list for entry searches
	Sorts = querykit.Sorts{
		Cols: map[string]string{
			"created_at": "created_at",
			"createdAt":  "created_at",
			"updated_at": "updated_at",
			"title":      "title",
			"mood":       "mood",
		},
		Default: "-created_at",
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

// New creates a new diary service
func New(db repokit.TxRunner, binder repokit.Binder[domain.Repo], opts ...Option) *Svc {
	if db == nil {
		panic("diary.Service requires a non-nil TxRunner")
	}
	if binder == nil {
		panic("diary.Service requires a non-nil Repo binder")
	}
	s := &Svc{db: db, binder: binder, limits: querykit.DefaultLimits, now: guardkit.Now}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *Svc) policy() guardkit.Policy[domain.Entry] {
	return guardkit.Policy[domain.Entry]{
		Resource: "diary entry",
		Load: func(ctx context.Context, q repokit.Queryer, id uuid.UUID) (domain.Entry, error) {
			return s.binder.Bind(q).Lock(ctx, id)
		},
		Deleted:   func(e domain.Entry) bool { return e.DeletedAt != nil },
		InScope:   func(sc scope.Scope, e domain.Entry) bool { return e.OwnerID == sc.Principal.ID },
		UpdatedAt: func(e domain.Entry) time.Time { return e.UpdatedAt },
		Hide:      true,
	}
}

// List returns one page of the caller's entries
func (s *Svc) List(ctx context.Context, sc scope.Scope, in domain.ListInput) (querykit.Page[domain.Entry], error) {
	w, err := s.limits.Window(in.Page, in.Limit)
	if err != nil {
		return querykit.Page[domain.Entry]{}, err
	}
	where, err := listSpec.Build(sc, in.IncludeArchived,
		querykit.Search(in.Search, "title", "body"),
		querykit.Exact("mood", in.Mood),
		querykit.Range("created_at", in.CreatedFrom, in.CreatedTo),
	)
	if err != nil {
		return querykit.Page[domain.Entry]{}, err
	}
	var out querykit.Page[domain.Entry]
	err = guardkit.Run(ctx, s.db, sc, func(ctx context.Context, q repokit.Queryer) error {
		out, err = s.binder.Bind(q).List(ctx, where, Sorts.Resolve(in.Sort), w)
		return err
	})
	return out, err
}

// Get returns one of the caller's live entries
func (s *Svc) Get(ctx context.Context, sc scope.Scope, id uuid.UUID) (domain.Entry, error) {
	where, err := listSpec.Build(sc, false, querykit.Eq("id", id))
	if err != nil {
		return domain.Entry{}, err
	}
	var out domain.Entry
	err = guardkit.Run(ctx, s.db, sc, func(ctx context.Context, q repokit.Queryer) error {
		out, err = s.binder.Bind(q).Find(ctx, where)
		return err
	})
	if perr.IsCode(err, perr.ErrorCodeNotFound) {
		return domain.Entry{}, perr.NotFoundf("diary entry not found")
	}
	return out, err
}

// Create stores a new entry owned by the caller
func (s *Svc) Create(ctx context.Context, sc scope.Scope, in domain.CreateInput) (domain.Entry, error) {
	now := s.now()
	e := domain.Entry{
		ID:        uuid.New(),
		OwnerID:   sc.Principal.ID,
		Title:     pstrings.NFC(in.Title),
		Body:      in.Body,
		Mood:      in.Mood,
		CreatedAt: now,
		UpdatedAt: now,
	}
	err := guardkit.Run(ctx, s.db, sc, func(ctx context.Context, q repokit.Queryer) error {
		r := s.binder.Bind(q)
		if err := r.TitleTaken(ctx, e.OwnerID, e.Title, uuid.Nil); err != nil {
			return err
		}
		return r.Insert(ctx, e)
	})
	if err != nil {
		return domain.Entry{}, err
	}
	return e, nil
}

// Update applies the fields present in in
func (s *Svc) Update(ctx context.Context, sc scope.Scope, id uuid.UUID, in domain.UpdateInput) (domain.Entry, error) {
	var out domain.Entry
	err := guardkit.Run(ctx, s.db, sc, func(ctx context.Context, q repokit.Queryer) error {
		cur, err := s.policy().Admit(ctx, q, sc, id, guardkit.Intent{Expected: in.ExpectedUpdatedAt})
		if err != nil {
			return err
		}
		next := cur
		if t, ok := in.Title.Get(); ok {
			next.Title = pstrings.NFC(t)
		}
		switch {
		case in.Body.IsNull():
			next.Body = nil
		case in.Body.Set():
			next.Body = in.Body.Ptr()
		}
		if m, ok := in.Mood.Get(); ok {
			next.Mood = m
		}

		r := s.binder.Bind(q)
		if next.Title != cur.Title {
			if err := r.TitleTaken(ctx, cur.OwnerID, next.Title, cur.ID); err != nil {
				return err
			}
		}
		next.UpdatedAt = s.now()
		if err := r.Update(ctx, next, cur.UpdatedAt); err != nil {
			return err
		}
		out = next
		return nil
	})
	if err != nil {
		return domain.Entry{}, err
	}
	return out, nil
}

// Delete archives the entry; it stays readable through include_archived
func (s *Svc) Delete(ctx context.Context, sc scope.Scope, id uuid.UUID) error {
	return guardkit.Run(ctx, s.db, sc, func(ctx context.Context, q repokit.Queryer) error {
		cur, err := s.policy().Admit(ctx, q, sc, id, guardkit.Intent{})
		if err != nil {
			return err
		}
		return s.binder.Bind(q).Archive(ctx, cur.ID, s.now(), cur.UpdatedAt)
	})
}
