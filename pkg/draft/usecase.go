package draft

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/artem13815/resumebuilder/pkg/auth"
	"github.com/artem13815/resumebuilder/pkg/compose"
	"github.com/artem13815/resumebuilder/pkg/nlp"
	"github.com/artem13815/resumebuilder/pkg/render"
	"github.com/artem13815/resumebuilder/pkg/resume"
)

const (
	WarnModelUnavailable  = "The language model is unavailable right now; the previous text was kept."
	WarnSummaryInvalid    = "The generated summary looks incomplete. Please review it before continuing."
	WarnSkillsUnavailable = "Skill descriptions could not be generated; the plain skill list will be used."
)

// UseCase ведёт мастер заполнения резюме по шагам.
type UseCase interface {
	Create(ctx context.Context, p auth.Principal, template string) (Draft, error)
	CreateFromUpload(ctx context.Context, p auth.Principal, template, filename string, data []byte) (Draft, resume.AutofillResult, error)
	Get(ctx context.Context, p auth.Principal, id uuid.UUID) (Draft, error)
	List(ctx context.Context, p auth.Principal, limit, offset int) ([]Draft, error)
	Delete(ctx context.Context, p auth.Principal, id uuid.UUID) error
	SetTemplate(ctx context.Context, p auth.Principal, id uuid.UUID, template string) (Draft, error)

	SubmitPersonal(ctx context.Context, p auth.Principal, id uuid.UUID, in PersonalInput) (StepResult, error)
	SubmitSummary(ctx context.Context, p auth.Principal, id uuid.UUID, in SummaryInput) (StepResult, error)
	SubmitEducation(ctx context.Context, p auth.Principal, id uuid.UUID, in EducationInput) (StepResult, error)
	SubmitSkills(ctx context.Context, p auth.Principal, id uuid.UUID, in SkillsInput) (StepResult, error)
	SubmitLanguages(ctx context.Context, p auth.Principal, id uuid.UUID, in LanguagesInput) (StepResult, error)
	SubmitSoftSkills(ctx context.Context, p auth.Principal, id uuid.UUID, in SoftSkillsInput) (StepResult, error)
	SubmitExperience(ctx context.Context, p auth.Principal, id uuid.UUID, in ExperienceInput) (StepResult, error)
	SubmitProjects(ctx context.Context, p auth.Principal, id uuid.UUID, in TextInput) (StepResult, error)
	SubmitDeclaration(ctx context.Context, p auth.Principal, id uuid.UUID, in TextInput) (StepResult, error)

	Preview(ctx context.Context, p auth.Principal, id uuid.UUID) (Draft, error)
	Render(ctx context.Context, p auth.Principal, id uuid.UUID) (Draft, error)
	Document(ctx context.Context, p auth.Principal, id uuid.UUID) ([]byte, error)
}

type service struct {
	repo     Repository
	composer compose.Service
	autofill resume.AutofillService
	blobs    BlobStore
	log      *slog.Logger
	now      func() time.Time
}

func NewService(repo Repository, composer compose.Service, autofill resume.AutofillService, blobs BlobStore, log *slog.Logger) UseCase {
	return &service{
		repo:     repo,
		composer: composer,
		autofill: autofill,
		blobs:    blobs,
		log:      log,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (s *service) newDraft(p auth.Principal, template string, src Source, rec resume.Record) Draft {
	now := s.now()
	rec.EnsureSlices()
	return Draft{
		ID:        uuid.New(),
		OwnerID:   p.UserID,
		Template:  render.ParseTemplate(template),
		Step:      StepPersonal,
		Source:    src,
		Record:    rec,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (s *service) Create(ctx context.Context, p auth.Principal, template string) (Draft, error) {
	d := s.newDraft(p, template, SourceNew, resume.NewRecord())
	if err := s.repo.Create(ctx, d); err != nil {
		return Draft{}, fmt.Errorf("create draft: %w", err)
	}
	return d, nil
}

func (s *service) CreateFromUpload(ctx context.Context, p auth.Principal, template, filename string, data []byte) (Draft, resume.AutofillResult, error) {
	res, err := s.autofill.Autofill(ctx, filename, data)
	if err != nil {
		return Draft{}, resume.AutofillResult{}, err
	}
	d := s.newDraft(p, template, SourceExisting, res.Record)
	key := fmt.Sprintf("drafts/%s/source%s", d.ID, strings.ToLower(filepath.Ext(filename)))
	uri, err := s.blobs.Put(ctx, key, data, "application/octet-stream")
	if err != nil {
		return Draft{}, resume.AutofillResult{}, fmt.Errorf("store source file: %w", err)
	}
	d.SourceURI = uri
	if err := s.repo.Create(ctx, d); err != nil {
		return Draft{}, resume.AutofillResult{}, fmt.Errorf("create draft: %w", err)
	}
	s.log.Info("draft imported", "draft", d.ID, "file", filename, "warnings", len(res.Warnings))
	return d, res, nil
}

func (s *service) Get(ctx context.Context, p auth.Principal, id uuid.UUID) (Draft, error) {
	if p.IsAdmin {
		return s.repo.GetAny(ctx, id)
	}
	return s.repo.GetForOwner(ctx, p.UserID, id)
}

func (s *service) List(ctx context.Context, p auth.Principal, limit, offset int) ([]Draft, error) {
	if p.IsAdmin {
		return s.repo.ListAll(ctx, limit, offset)
	}
	return s.repo.ListByOwner(ctx, p.UserID, limit, offset)
}

func (s *service) Delete(ctx context.Context, p auth.Principal, id uuid.UUID) error {
	var d Draft
	var err error
	if p.IsAdmin {
		d, err = s.repo.DeleteAny(ctx, id)
	} else {
		d, err = s.repo.DeleteForOwner(ctx, p.UserID, id)
	}
	if err != nil {
		return err
	}
	for _, uri := range []string{d.SourceURI, d.DocumentURI} {
		if uri == "" {
			continue
		}
		if err := s.blobs.Delete(ctx, uri); err != nil {
			s.log.Warn("draft: failed to delete file", "draft", id, "uri", uri, "err", err)
		}
	}
	return nil
}

func (s *service) SetTemplate(ctx context.Context, p auth.Principal, id uuid.UUID, template string) (Draft, error) {
	d, err := s.Get(ctx, p, id)
	if err != nil {
		return Draft{}, err
	}
	d.Template = render.ParseTemplate(template)
	return d, s.save(ctx, &d)
}

// apply loads the draft, lets fn change its record and saves it on the step after step.
func (s *service) apply(ctx context.Context, p auth.Principal, id uuid.UUID, step Step, fn func(d *Draft) ([]string, error)) (StepResult, error) {
	d, err := s.Get(ctx, p, id)
	if err != nil {
		return StepResult{}, err
	}
	warnings, err := fn(&d)
	if err != nil {
		return StepResult{}, err
	}
	d.Step = step.next()
	if err := s.save(ctx, &d); err != nil {
		return StepResult{}, err
	}
	if warnings == nil {
		warnings = []string{}
	}
	return StepResult{Draft: d, Warnings: warnings}, nil
}

// save writes d back with the next version; a draft changed since it was read
// fails with ErrConflict.
func (s *service) save(ctx context.Context, d *Draft) error {
	d.Version++
	d.UpdatedAt = s.now()
	d.Record.EnsureSlices()
	if err := s.repo.Update(ctx, *d); err != nil {
		return fmt.Errorf("save draft: %w", err)
	}
	return nil
}

// generated turns a compose failure into a warning. Other errors abort the step.
func (s *service) generated(d *Draft, step Step, err error) (warn bool, _ error) {
	if err == nil {
		return false, nil
	}
	if errors.Is(err, compose.ErrGeneration) {
		s.log.Warn("draft: generation failed", "draft", d.ID, "step", step.String(), "err", err)
		return true, nil
	}
	return false, err
}

func (s *service) SubmitPersonal(ctx context.Context, p auth.Principal, id uuid.UUID, in PersonalInput) (StepResult, error) {
	return s.apply(ctx, p, id, StepPersonal, func(d *Draft) ([]string, error) {
		r := d.Record
		r.Name = strings.TrimSpace(in.Name)
		r.Email = strings.TrimSpace(in.Email)
		r.Phone = strings.TrimSpace(in.Phone)
		r.Location = strings.TrimSpace(in.Location)
		if err := resume.ValidatePersonal(r); err != nil {
			return nil, err
		}
		d.Record = r
		return nil, nil
	})
}

func (s *service) SubmitSummary(ctx context.Context, p auth.Principal, id uuid.UUID, in SummaryInput) (StepResult, error) {
	return s.apply(ctx, p, id, StepSummary, func(d *Draft) ([]string, error) {
		var out string
		var err error
		if text := strings.TrimSpace(in.Text); text != "" && !in.Skip {
			out, err = s.composer.RewriteSummary(ctx, text)
		} else {
			out, err = s.composer.Summary(ctx, d.Record, "")
		}
		if warn, err := s.generated(d, StepSummary, err); err != nil {
			return nil, err
		} else if warn {
			return []string{WarnModelUnavailable}, nil
		}
		d.Record.Summary = out
		if nlp.IsInvalidSummary(out) {
			return []string{WarnSummaryInvalid}, nil
		}
		return nil, nil
	})
}

func (s *service) SubmitEducation(ctx context.Context, p auth.Principal, id uuid.UUID, in EducationInput) (StepResult, error) {
	return s.apply(ctx, p, id, StepEducation, func(d *Draft) ([]string, error) {
		if in.Skip {
			d.Record.Education = []resume.Education{}
			return nil, nil
		}
		rows, err := resume.CleanEducation(in.Rows)
		if err != nil {
			return nil, err
		}
		d.Record.Education = rows
		return nil, nil
	})
}

func (s *service) SubmitSkills(ctx context.Context, p auth.Principal, id uuid.UUID, in SkillsInput) (StepResult, error) {
	return s.apply(ctx, p, id, StepSkills, func(d *Draft) ([]string, error) {
		skills, err := resume.ParseSkills(in.Skills)
		if err != nil {
			return nil, err
		}
		d.Record.SkillsList = skills
		out, err := s.composer.TechnicalSkills(ctx, d.Record)
		if warn, err := s.generated(d, StepSkills, err); err != nil {
			return nil, err
		} else if warn {
			// descriptions of the old list would not match the new one
			d.Record.TechnicalSkillsAI = ""
			return []string{WarnSkillsUnavailable}, nil
		}
		d.Record.TechnicalSkillsAI = out
		return nil, nil
	})
}

func (s *service) SubmitLanguages(ctx context.Context, p auth.Principal, id uuid.UUID, in LanguagesInput) (StepResult, error) {
	return s.apply(ctx, p, id, StepLanguages, func(d *Draft) ([]string, error) {
		d.Record.Languages = canonicalList(resume.LanguageOptions, in.Languages)
		return nil, nil
	})
}

func (s *service) SubmitSoftSkills(ctx context.Context, p auth.Principal, id uuid.UUID, in SoftSkillsInput) (StepResult, error) {
	return s.apply(ctx, p, id, StepSoftSkills, func(d *Draft) ([]string, error) {
		if in.Skip {
			d.Record.SoftOptions = []string{}
			return nil, nil
		}
		d.Record.SoftOptions = canonicalList(resume.SoftSkillOptions, in.Skills)
		return nil, nil
	})
}

func (s *service) SubmitExperience(ctx context.Context, p auth.Principal, id uuid.UUID, in ExperienceInput) (StepResult, error) {
	return s.apply(ctx, p, id, StepExperience, func(d *Draft) ([]string, error) {
		level, ok := resume.CanonicalOption(resume.ExperienceLevels, in.Level)
		if !ok {
			return nil, resume.ValidationErrors{{Field: "experience_level", Message: "Select a valid experience level"}}
		}
		d.Record.ExperienceLevel = level
		ci := compose.ExperienceInput{Fresher: level == resume.LevelFresher}
		if !in.Skip {
			text := strings.TrimSpace(in.Text)
			if n, err := strconv.Atoi(text); err == nil && isAllDigits(text) {
				ci.Years = n
			} else if text == "" {
				ci.Years = resume.LevelYears(level)
			}
			ci.Text = text
			d.Record.ExperienceRaw = text
		}
		out, err := s.composer.Experience(ctx, d.Record, ci)
		if warn, err := s.generated(d, StepExperience, err); err != nil {
			return nil, err
		} else if warn {
			return []string{WarnModelUnavailable}, nil
		}
		d.Record.Experience = out
		return nil, nil
	})
}

func (s *service) SubmitProjects(ctx context.Context, p auth.Principal, id uuid.UUID, in TextInput) (StepResult, error) {
	return s.apply(ctx, p, id, StepProjects, func(d *Draft) ([]string, error) {
		text := strings.TrimSpace(in.Text)
		if in.Skip || text == "" {
			d.Record.Projects = ""
			d.Record.ProjectsRaw = ""
			return nil, nil
		}
		d.Record.ProjectsRaw = text
		out, err := s.composer.Projects(ctx, d.Record, text)
		if warn, err := s.generated(d, StepProjects, err); err != nil {
			return nil, err
		} else if warn {
			return []string{WarnModelUnavailable}, nil
		}
		d.Record.Projects = out
		return nil, nil
	})
}

func (s *service) SubmitDeclaration(ctx context.Context, p auth.Principal, id uuid.UUID, in TextInput) (StepResult, error) {
	return s.apply(ctx, p, id, StepDeclaration, func(d *Draft) ([]string, error) {
		text := strings.TrimSpace(in.Text)
		if !in.Skip && text != "" {
			d.Record.DeclarationRaw = text
			d.Record.Declaration = text
			return nil, nil
		}
		d.Record.DeclarationRaw = ""
		out, err := s.composer.Declaration(ctx, "")
		if warn, err := s.generated(d, StepDeclaration, err); err != nil {
			return nil, err
		} else if warn {
			return []string{WarnModelUnavailable}, nil
		}
		d.Record.Declaration = out
		return nil, nil
	})
}

func (s *service) Preview(ctx context.Context, p auth.Principal, id uuid.UUID) (Draft, error) {
	d, err := s.Get(ctx, p, id)
	if err != nil {
		return Draft{}, err
	}
	if err := resume.ValidateForPreview(d.Record); err != nil {
		return Draft{}, err
	}
	if d.Step != StepPreview {
		d.Step = StepPreview
		if err := s.save(ctx, &d); err != nil {
			return Draft{}, err
		}
	}
	return d, nil
}

func (s *service) Render(ctx context.Context, p auth.Principal, id uuid.UUID) (Draft, error) {
	d, err := s.Preview(ctx, p, id)
	if err != nil {
		return Draft{}, err
	}
	data, err := render.Render(d.Template, d.Record)
	if err != nil {
		return Draft{}, fmt.Errorf("render draft: %w", err)
	}
	uri, err := s.blobs.Put(ctx, fmt.Sprintf("drafts/%s/%s", d.ID, render.DefaultFilename), data, render.ContentType)
	if err != nil {
		return Draft{}, fmt.Errorf("store document: %w", err)
	}
	d.DocumentURI = uri
	if err := s.save(ctx, &d); err != nil {
		return Draft{}, err
	}
	s.log.Info("draft rendered", "draft", d.ID, "template", d.Template, "bytes", len(data))
	return d, nil
}

func (s *service) Document(ctx context.Context, p auth.Principal, id uuid.UUID) ([]byte, error) {
	d, err := s.Get(ctx, p, id)
	if err != nil {
		return nil, err
	}
	if d.DocumentURI == "" {
		return nil, ErrNotRendered
	}
	return s.blobs.Get(ctx, d.DocumentURI)
}

// canonicalList spells known options as listed, keeps unknown ones and drops duplicates.
func canonicalList(options, values []string) []string {
	out := []string{}
	seen := map[string]struct{}{}
	for _, v := range values {
		c, _ := resume.CanonicalOption(options, v)
		if c == "" {
			continue
		}
		key := strings.ToLower(c)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, c)
	}
	return out
}

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
