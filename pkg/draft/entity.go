package draft

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/artem13815/resumebuilder/pkg/render"
	"github.com/artem13815/resumebuilder/pkg/resume"
)

var (
	ErrNotFound    = errors.New("draft not found")
	ErrNotRendered = errors.New("draft has not been rendered yet")
	ErrConflict    = errors.New("draft was changed by another request, reload it and retry")
)

// Step is the wizard page a draft is on.
type Step int

const (
	StepPersonal Step = iota + 1
	StepSummary
	StepEducation
	StepSkills
	StepLanguages
	StepSoftSkills
	StepExperience
	StepProjects
	StepDeclaration
	StepPreview
)

var stepNames = map[Step]string{
	StepPersonal:    "personal",
	StepSummary:     "summary",
	StepEducation:   "education",
	StepSkills:      "skills",
	StepLanguages:   "languages",
	StepSoftSkills:  "soft-skills",
	StepExperience:  "experience",
	StepProjects:    "projects",
	StepDeclaration: "declaration",
	StepPreview:     "preview",
}

func (s Step) String() string { return stepNames[s] }

// next returns the step after s; Preview is the last one.
func (s Step) next() Step {
	if s >= StepPreview {
		return StepPreview
	}
	return s + 1
}

type Source string

const (
	SourceNew      Source = "new"
	SourceExisting Source = "existing"
)

// Draft хранит черновик резюме, который пользователь заполняет по шагам.
type Draft struct {
	ID          uuid.UUID       `json:"id"`
	OwnerID     uuid.UUID       `json:"ownerId"`
	Template    render.Template `json:"template"`
	Step        Step            `json:"step"`
	Source      Source          `json:"source"`
	Record      resume.Record   `json:"record"`
	SourceURI   string          `json:"sourceUri,omitempty"`
	DocumentURI string          `json:"documentUri,omitempty"`
	Version     int             `json:"version"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// StepResult is a saved draft plus non-blocking notes for the user.
type StepResult struct {
	Draft    Draft    `json:"draft"`
	Warnings []string `json:"warnings"`
}

// Repository задаёт порт хранения черновиков.
type Repository interface {
	Create(ctx context.Context, d Draft) error
	// Update stores d only if the stored draft is at d.Version-1, otherwise it
	// returns ErrConflict.
	Update(ctx context.Context, d Draft) error
	GetForOwner(ctx context.Context, ownerID, id uuid.UUID) (Draft, error)
	GetAny(ctx context.Context, id uuid.UUID) (Draft, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]Draft, error)
	ListAll(ctx context.Context, limit, offset int) ([]Draft, error)
	// delete returns the removed draft so its files can be cleaned up
	DeleteForOwner(ctx context.Context, ownerID, id uuid.UUID) (Draft, error)
	DeleteAny(ctx context.Context, id uuid.UUID) (Draft, error)
}

// BlobStore keeps uploaded sources and rendered documents.
type BlobStore interface {
	Put(ctx context.Context, key string, data []byte, contentType string) (string, error)
	Get(ctx context.Context, uri string) ([]byte, error)
	Delete(ctx context.Context, uri string) error
}
