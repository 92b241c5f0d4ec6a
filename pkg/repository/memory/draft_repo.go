package memory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/artem13815/resumebuilder/pkg/draft"
)

// DraftRepository implements draft.Repository in memory; used when DATABASE_URL is empty.
type DraftRepository struct {
	s *store[draft.Draft]
}

func NewDraftRepository() *DraftRepository {
	return &DraftRepository{s: newStore(
		func(d draft.Draft) uuid.UUID { return d.OwnerID },
		func(d draft.Draft) time.Time { return d.CreatedAt },
	)}
}

func (r *DraftRepository) Create(_ context.Context, d draft.Draft) error {
	r.s.put(d.ID, d)
	return nil
}

func (r *DraftRepository) Update(_ context.Context, d draft.Draft) error {
	found, replaced := r.s.replace(d.ID, d, func(old draft.Draft) bool {
		return old.Version == d.Version-1
	})
	switch {
	case !found:
		return draft.ErrNotFound
	case !replaced:
		return draft.ErrConflict
	}
	return nil
}

func (r *DraftRepository) GetForOwner(_ context.Context, ownerID, id uuid.UUID) (draft.Draft, error) {
	v, ok := r.s.get(&ownerID, id)
	if !ok {
		return draft.Draft{}, draft.ErrNotFound
	}
	return v, nil
}

func (r *DraftRepository) GetAny(_ context.Context, id uuid.UUID) (draft.Draft, error) {
	v, ok := r.s.get(nil, id)
	if !ok {
		return draft.Draft{}, draft.ErrNotFound
	}
	return v, nil
}

func (r *DraftRepository) ListByOwner(_ context.Context, ownerID uuid.UUID, limit, offset int) ([]draft.Draft, error) {
	return r.s.list(&ownerID, limit, offset), nil
}

func (r *DraftRepository) ListAll(_ context.Context, limit, offset int) ([]draft.Draft, error) {
	return r.s.list(nil, limit, offset), nil
}

func (r *DraftRepository) DeleteForOwner(_ context.Context, ownerID, id uuid.UUID) (draft.Draft, error) {
	v, ok := r.s.remove(&ownerID, id)
	if !ok {
		return draft.Draft{}, draft.ErrNotFound
	}
	return v, nil
}

func (r *DraftRepository) DeleteAny(_ context.Context, id uuid.UUID) (draft.Draft, error) {
	v, ok := r.s.remove(nil, id)
	if !ok {
		return draft.Draft{}, draft.ErrNotFound
	}
	return v, nil
}
