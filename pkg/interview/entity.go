package interview

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound         = errors.New("interview session not found")
	ErrNoSkills         = errors.New("No technical skills detected in resume.")
	ErrAlreadyEvaluated = errors.New("interview session already evaluated")
	ErrUnknownQuestion  = errors.New("answer refers to an unknown question")
	ErrEvaluation       = errors.New("answer evaluation failed")
)

type Status string

const (
	StatusAwaitingAnswers Status = "awaiting_answers"
	StatusEvaluated       Status = "evaluated"
)

// Question is one generated interview question; Index is its position in the session.
type Question struct {
	Index int    `json:"index"`
	Skill string `json:"skill"`
	Text  string `json:"text"`
}

type Answer struct {
	Index int    `json:"index"`
	Text  string `json:"text"`
}

// Evaluation хранит оценку одного ответа моделью.
type Evaluation struct {
	Index    int    `json:"index"`
	Skill    string `json:"skill"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Raw      string `json:"raw"`
	Score    int    `json:"score"`
	Feedback string `json:"feedback"`
}

type Result struct {
	Total       int          `json:"total"`
	Max         int          `json:"max"`
	Percentage  float64      `json:"percentage"`
	Band        string       `json:"band"`
	Evaluations []Evaluation `json:"evaluations"`
}

// Session описывает одну попытку собеседования по загруженному резюме.
type Session struct {
	ID        uuid.UUID  `json:"id"`
	OwnerID   uuid.UUID  `json:"ownerId"`
	Filename  string     `json:"filename"`
	Skills    []string   `json:"skills"`
	Questions []Question `json:"questions"`
	Status    Status     `json:"status"`
	Result    *Result    `json:"result,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// Repository задаёт порт хранения сессий собеседований.
type Repository interface {
	Create(ctx context.Context, s Session) error
	Update(ctx context.Context, s Session) error
	GetForOwner(ctx context.Context, ownerID, id uuid.UUID) (Session, error)
	GetAny(ctx context.Context, id uuid.UUID) (Session, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]Session, error)
	ListAll(ctx context.Context, limit, offset int) ([]Session, error)
}
