package memory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/artem13815/resumebuilder/pkg/interview"
)

type InterviewRepository struct {
	s *store[interview.Session]
}

func NewInterviewRepository() *InterviewRepository {
	return &InterviewRepository{s: newStore(
		func(s interview.Session) uuid.UUID { return s.OwnerID },
		func(s interview.Session) time.Time { return s.CreatedAt },
	)}
}

func (r *InterviewRepository) Create(_ context.Context, s interview.Session) error {
	r.s.put(s.ID, s)
	return nil
}

func (r *InterviewRepository) Update(_ context.Context, s interview.Session) error {
	if found, _ := r.s.replace(s.ID, s, nil); !found {
		return interview.ErrNotFound
	}
	return nil
}

func (r *InterviewRepository) GetForOwner(_ context.Context, ownerID, id uuid.UUID) (interview.Session, error) {
	v, ok := r.s.get(&ownerID, id)
	if !ok {
		return interview.Session{}, interview.ErrNotFound
	}
	return v, nil
}

func (r *InterviewRepository) GetAny(_ context.Context, id uuid.UUID) (interview.Session, error) {
	v, ok := r.s.get(nil, id)
	if !ok {
		return interview.Session{}, interview.ErrNotFound
	}
	return v, nil
}

func (r *InterviewRepository) ListByOwner(_ context.Context, ownerID uuid.UUID, limit, offset int) ([]interview.Session, error) {
	return r.s.list(&ownerID, limit, offset), nil
}

func (r *InterviewRepository) ListAll(_ context.Context, limit, offset int) ([]interview.Session, error) {
	return r.s.list(nil, limit, offset), nil
}
