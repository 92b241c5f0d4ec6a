package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artem13815/resumebuilder/pkg/auth"
	"github.com/artem13815/resumebuilder/pkg/draft"
)

func TestDraftRepositoryScopingAndPaging(t *testing.T) {
	ctx := context.Background()
	repo := NewDraftRepository()
	owner, other := uuid.New(), uuid.New()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	var ids []uuid.UUID
	for i := range 3 {
		d := draft.Draft{ID: uuid.New(), OwnerID: owner, CreatedAt: base.Add(time.Duration(i) * time.Hour)}
		require.NoError(t, repo.Create(ctx, d))
		ids = append(ids, d.ID)
	}
	require.NoError(t, repo.Create(ctx, draft.Draft{ID: uuid.New(), OwnerID: other, CreatedAt: base}))

	mine, err := repo.ListByOwner(ctx, owner, 2, 0)
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, ids[2], mine[0].ID)
	assert.Equal(t, ids[1], mine[1].ID)

	rest, err := repo.ListByOwner(ctx, owner, 2, 2)
	require.NoError(t, err)
	require.Len(t, rest, 1)
	assert.Equal(t, ids[0], rest[0].ID)

	past, err := repo.ListByOwner(ctx, owner, 2, 10)
	require.NoError(t, err)
	assert.Empty(t, past)

	all, err := repo.ListAll(ctx, 0, 0)
	require.NoError(t, err)
	assert.Len(t, all, 4)

	_, err = repo.GetForOwner(ctx, other, ids[0])
	assert.ErrorIs(t, err, draft.ErrNotFound)
	_, err = repo.DeleteForOwner(ctx, other, ids[0])
	assert.ErrorIs(t, err, draft.ErrNotFound)

	removed, err := repo.DeleteAny(ctx, ids[0])
	require.NoError(t, err)
	assert.Equal(t, owner, removed.OwnerID)
	_, err = repo.GetAny(ctx, ids[0])
	assert.ErrorIs(t, err, draft.ErrNotFound)

	assert.ErrorIs(t, repo.Update(ctx, draft.Draft{ID: uuid.New()}), draft.ErrNotFound)
}

func TestUserRepositoryLookups(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository()
	ann := auth.User{ID: uuid.New(), Email: "ann@example.com"}
	require.NoError(t, repo.Create(ctx, ann))

	u, err := repo.GetByEmail(ctx, "ann@example.com")
	require.NoError(t, err)
	assert.Equal(t, ann.ID, u.ID)

	u, err = repo.GetByID(ctx, ann.ID)
	require.NoError(t, err)
	assert.Equal(t, "ann@example.com", u.Email)

	assert.ErrorIs(t, repo.Create(ctx, auth.User{ID: uuid.New(), Email: "ann@example.com"}), auth.ErrUserAlreadyExists)
	_, err = repo.GetByEmail(ctx, "bob@example.com")
	assert.ErrorIs(t, err, auth.ErrNotFound)
	_, err = repo.GetByID(ctx, uuid.New())
	assert.ErrorIs(t, err, auth.ErrNotFound)
}

func TestDraftRepositoryRejectsStaleUpdate(t *testing.T) {
	ctx := context.Background()
	repo := NewDraftRepository()
	d := draft.Draft{ID: uuid.New(), OwnerID: uuid.New()}
	require.NoError(t, repo.Create(ctx, d))

	first, second := d, d
	first.Version, first.Step = 1, draft.StepSummary
	second.Version, second.Step = 1, draft.StepEducation
	require.NoError(t, repo.Update(ctx, first))
	assert.ErrorIs(t, repo.Update(ctx, second), draft.ErrConflict)

	got, err := repo.GetAny(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, draft.StepSummary, got.Step)
	assert.Equal(t, 1, got.Version)
}

func TestDraftRepositoryUpdateAfterDelete(t *testing.T) {
	ctx := context.Background()
	repo := NewDraftRepository()
	d := draft.Draft{ID: uuid.New(), OwnerID: uuid.New()}
	require.NoError(t, repo.Create(ctx, d))

	var wg sync.WaitGroup
	errs := make([]error, 20)
	_, err := repo.DeleteAny(ctx, d.ID)
	require.NoError(t, err)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			next := d
			next.Version = 1
			errs[i] = repo.Update(ctx, next)
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		assert.ErrorIs(t, err, draft.ErrNotFound)
	}
	_, err = repo.GetAny(ctx, d.ID)
	assert.ErrorIs(t, err, draft.ErrNotFound)
}

func TestDraftRepositoryConcurrentUpdates(t *testing.T) {
	ctx := context.Background()
	repo := NewDraftRepository()
	d := draft.Draft{ID: uuid.New(), OwnerID: uuid.New()}
	require.NoError(t, repo.Create(ctx, d))

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		applied int
	)
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			next := d
			next.Version = 1
			if repo.Update(ctx, next) == nil {
				mu.Lock()
				applied++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, applied)
}
