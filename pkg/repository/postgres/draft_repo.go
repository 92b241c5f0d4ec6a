package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/artem13815/resumebuilder/pkg/draft"
	"github.com/artem13815/resumebuilder/pkg/render"
)

// DraftRepository хранит черновики резюме; запись анкеты лежит в JSONB.
type DraftRepository struct {
	pool *pgxpool.Pool
}

func NewDraftRepository(pool *pgxpool.Pool) *DraftRepository {
	return &DraftRepository{pool: pool}
}

const draftColumns = `id, owner_id, template, step, source, record, source_uri, document_uri, version, created_at, updated_at`

// rowScanner is satisfied by pgx.Row and pgx.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanDraft(row rowScanner) (draft.Draft, error) {
	var d draft.Draft
	var template, source string
	var step int
	var record []byte
	var created, updated time.Time
	if err := row.Scan(&d.ID, &d.OwnerID, &template, &step, &source, &record, &d.SourceURI, &d.DocumentURI, &d.Version, &created, &updated); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return draft.Draft{}, draft.ErrNotFound
		}
		return draft.Draft{}, err
	}
	if err := json.Unmarshal(record, &d.Record); err != nil {
		return draft.Draft{}, fmt.Errorf("decode draft record: %w", err)
	}
	d.Record.EnsureSlices()
	d.Template = render.Template(template)
	d.Step = draft.Step(step)
	d.Source = draft.Source(source)
	d.CreatedAt = created.UTC()
	d.UpdatedAt = updated.UTC()
	return d, nil
}

func (r *DraftRepository) Create(ctx context.Context, d draft.Draft) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	if d.CreatedAt.IsZero() {
		d.CreatedAt = time.Now().UTC()
	}
	if d.UpdatedAt.IsZero() {
		d.UpdatedAt = d.CreatedAt
	}
	record, err := json.Marshal(d.Record)
	if err != nil {
		return err
	}
	_, err = r.pool.Exec(ctx, `
INSERT INTO drafts (`+draftColumns+`)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
`, d.ID, d.OwnerID, string(d.Template), int(d.Step), string(d.Source), record, d.SourceURI, d.DocumentURI, d.Version, d.CreatedAt, d.UpdatedAt)
	return err
}

func (r *DraftRepository) Update(ctx context.Context, d draft.Draft) error {
	record, err := json.Marshal(d.Record)
	if err != nil {
		return err
	}
	tag, err := r.pool.Exec(ctx, `
UPDATE drafts
SET template = $2, step = $3, record = $4, source_uri = $5, document_uri = $6, updated_at = $7, version = $8
WHERE id = $1 AND version = $8 - 1
`, d.ID, string(d.Template), int(d.Step), record, d.SourceURI, d.DocumentURI, d.UpdatedAt, d.Version)
	if err != nil {
		return err
	}
	if tag.RowsAffected() > 0 {
		return nil
	}
	var exists bool
	if err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM drafts WHERE id = $1)`, d.ID).Scan(&exists); err != nil {
		return err
	}
	if exists {
		return draft.ErrConflict
	}
	return draft.ErrNotFound
}

func (r *DraftRepository) GetForOwner(ctx context.Context, ownerID, id uuid.UUID) (draft.Draft, error) {
	return scanDraft(r.pool.QueryRow(ctx, `
SELECT `+draftColumns+` FROM drafts WHERE id = $1 AND owner_id = $2
`, id, ownerID))
}

func (r *DraftRepository) GetAny(ctx context.Context, id uuid.UUID) (draft.Draft, error) {
	return scanDraft(r.pool.QueryRow(ctx, `
SELECT `+draftColumns+` FROM drafts WHERE id = $1
`, id))
}

func (r *DraftRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]draft.Draft, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.pool.Query(ctx, `
SELECT `+draftColumns+` FROM drafts WHERE owner_id = $3
ORDER BY created_at DESC
LIMIT $1 OFFSET $2
`, limit, offset, ownerID)
	if err != nil {
		return nil, err
	}
	return collectDrafts(rows)
}

func (r *DraftRepository) ListAll(ctx context.Context, limit, offset int) ([]draft.Draft, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.pool.Query(ctx, `
SELECT `+draftColumns+` FROM drafts
ORDER BY created_at DESC
LIMIT $1 OFFSET $2
`, limit, offset)
	if err != nil {
		return nil, err
	}
	return collectDrafts(rows)
}

func (r *DraftRepository) DeleteForOwner(ctx context.Context, ownerID, id uuid.UUID) (draft.Draft, error) {
	return scanDraft(r.pool.QueryRow(ctx, `
DELETE FROM drafts WHERE id = $1 AND owner_id = $2
RETURNING `+draftColumns, id, ownerID))
}

func (r *DraftRepository) DeleteAny(ctx context.Context, id uuid.UUID) (draft.Draft, error) {
	return scanDraft(r.pool.QueryRow(ctx, `
DELETE FROM drafts WHERE id = $1
RETURNING `+draftColumns, id))
}

func collectDrafts(rows pgx.Rows) ([]draft.Draft, error) {
	defer rows.Close()
	res := []draft.Draft{}
	for rows.Next() {
		d, err := scanDraft(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, d)
	}
	return res, rows.Err()
}
