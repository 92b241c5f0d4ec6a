package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/google/uuid"

	"github.com/artem13815/resumebuilder/pkg/interview"
)

// InterviewRepository сохраняет сессии собеседований.
type InterviewRepository struct {
	pool *pgxpool.Pool
}

func NewInterviewRepository(pool *pgxpool.Pool) *InterviewRepository {
	return &InterviewRepository{pool: pool}
}

const sessionColumns = `id, owner_id, filename, skills, questions, status, result, created_at, updated_at`

func scanSession(row rowScanner) (interview.Session, error) {
	var s interview.Session
	var status string
	var skills, questions, result []byte
	var created, updated time.Time
	if err := row.Scan(&s.ID, &s.OwnerID, &s.Filename, &skills, &questions, &status, &result, &created, &updated); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return interview.Session{}, interview.ErrNotFound
		}
		return interview.Session{}, err
	}
	if err := json.Unmarshal(skills, &s.Skills); err != nil {
		return interview.Session{}, fmt.Errorf("decode skills: %w", err)
	}
	if err := json.Unmarshal(questions, &s.Questions); err != nil {
		return interview.Session{}, fmt.Errorf("decode questions: %w", err)
	}
	if len(result) > 0 {
		var res interview.Result
		if err := json.Unmarshal(result, &res); err != nil {
			return interview.Session{}, fmt.Errorf("decode result: %w", err)
		}
		s.Result = &res
	}
	s.Status = interview.Status(status)
	s.CreatedAt = created.UTC()
	s.UpdatedAt = updated.UTC()
	return s, nil
}

func (r *InterviewRepository) Create(ctx context.Context, s interview.Session) error {
	skills, err := json.Marshal(s.Skills)
	if err != nil {
		return err
	}
	questions, err := json.Marshal(s.Questions)
	if err != nil {
		return err
	}
	result, err := marshalResult(s.Result)
	if err != nil {
		return err
	}
	_, err = r.pool.Exec(ctx, `
INSERT INTO interview_sessions (`+sessionColumns+`)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
`, s.ID, s.OwnerID, s.Filename, skills, questions, string(s.Status), result, s.CreatedAt, s.UpdatedAt)
	return err
}

func (r *InterviewRepository) Update(ctx context.Context, s interview.Session) error {
	result, err := marshalResult(s.Result)
	if err != nil {
		return err
	}
	tag, err := r.pool.Exec(ctx, `
UPDATE interview_sessions SET status = $2, result = $3, updated_at = $4 WHERE id = $1
`, s.ID, string(s.Status), result, s.UpdatedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return interview.ErrNotFound
	}
	return nil
}

func (r *InterviewRepository) GetForOwner(ctx context.Context, ownerID, id uuid.UUID) (interview.Session, error) {
	return scanSession(r.pool.QueryRow(ctx, `
SELECT `+sessionColumns+` FROM interview_sessions WHERE id = $1 AND owner_id = $2
`, id, ownerID))
}

func (r *InterviewRepository) GetAny(ctx context.Context, id uuid.UUID) (interview.Session, error) {
	return scanSession(r.pool.QueryRow(ctx, `
SELECT `+sessionColumns+` FROM interview_sessions WHERE id = $1
`, id))
}

func (r *InterviewRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]interview.Session, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.pool.Query(ctx, `
SELECT `+sessionColumns+` FROM interview_sessions WHERE owner_id = $3
ORDER BY created_at DESC
LIMIT $1 OFFSET $2
`, limit, offset, ownerID)
	if err != nil {
		return nil, err
	}
	return collectSessions(rows)
}

func (r *InterviewRepository) ListAll(ctx context.Context, limit, offset int) ([]interview.Session, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.pool.Query(ctx, `
SELECT `+sessionColumns+` FROM interview_sessions
ORDER BY created_at DESC
LIMIT $1 OFFSET $2
`, limit, offset)
	if err != nil {
		return nil, err
	}
	return collectSessions(rows)
}

func collectSessions(rows pgx.Rows) ([]interview.Session, error) {
	defer rows.Close()
	res := []interview.Session{}
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, s)
	}
	return res, rows.Err()
}

// marshalResult keeps NULL for sessions that are not evaluated yet.
func marshalResult(res *interview.Result) ([]byte, error) {
	if res == nil {
		return nil, nil
	}
	return json.Marshal(res)
}
