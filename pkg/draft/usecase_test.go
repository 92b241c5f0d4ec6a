package draft_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artem13815/resumebuilder/pkg/auth"
	"github.com/artem13815/resumebuilder/pkg/compose"
	"github.com/artem13815/resumebuilder/pkg/draft"
	"github.com/artem13815/resumebuilder/pkg/llm"
	"github.com/artem13815/resumebuilder/pkg/logger"
	"github.com/artem13815/resumebuilder/pkg/render"
	"github.com/artem13815/resumebuilder/pkg/repository/memory"
	"github.com/artem13815/resumebuilder/pkg/resume"
	"github.com/artem13815/resumebuilder/pkg/storage/blob"
)

const goodSummary = "Motivated computer science graduate with hands-on experience building web services in Go and Python."

// fakeComposer answers every generation with a fixed text, or fails when down is set.
type fakeComposer struct {
	down       bool
	experience []compose.ExperienceInput
	calls      []string
}

func (f *fakeComposer) out(name, text string) (string, error) {
	f.calls = append(f.calls, name)
	if f.down {
		return "", fmt.Errorf("%w: connection refused", compose.ErrGeneration)
	}
	return text, nil
}

func (f *fakeComposer) Summary(_ context.Context, _ resume.Record, user string) (string, error) {
	return f.out("summary", goodSummary)
}

func (f *fakeComposer) RewriteSummary(_ context.Context, input string) (string, error) {
	if strings.TrimSpace(input) == "" {
		return "", compose.ErrEmptyInput
	}
	return f.out("rewrite", "Short one")
}

func (f *fakeComposer) TechnicalSkills(_ context.Context, rec resume.Record) (string, error) {
	return f.out("technical", "• "+strings.Join(rec.SkillsList, ": described\n• ")+": described")
}

func (f *fakeComposer) Experience(_ context.Context, _ resume.Record, in compose.ExperienceInput) (string, error) {
	f.experience = append(f.experience, in)
	return f.out("experience", "• Built things\n• Shipped things\n• Fixed things")
}

func (f *fakeComposer) Projects(_ context.Context, _ resume.Record, text string) (string, error) {
	return f.out("projects", "• Project one\n• Project two")
}

func (f *fakeComposer) Declaration(_ context.Context, text string) (string, error) {
	return f.out("declaration", "I hereby declare that the above information is true.")
}

type fixture struct {
	svc      draft.UseCase
	composer *fakeComposer
	blobs    *blob.LocalStore
	owner    auth.Principal
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	blobs, err := blob.NewLocalStore(t.TempDir())
	require.NoError(t, err)
	composer := &fakeComposer{}
	autofillModel := llm.Func(func(context.Context, string, string) (string, error) {
		return `{"name": "Jane Doe", "email": "jane@example.com", "skills_list": ["Go", "Docker"], "languages": ["English"]}`, nil
	})
	log := logger.Discard()
	svc := draft.NewService(memory.NewDraftRepository(), composer, resume.NewAutofillService(autofillModel, log), blobs, log)
	return &fixture{svc: svc, composer: composer, blobs: blobs, owner: auth.Principal{UserID: uuid.New()}}
}

func (f *fixture) create(t *testing.T) draft.Draft {
	t.Helper()
	d, err := f.svc.Create(context.Background(), f.owner, "sidebar")
	require.NoError(t, err)
	return d
}

func TestCreateStartsAtPersonal(t *testing.T) {
	f := newFixture(t)
	d := f.create(t)
	assert.Equal(t, draft.StepPersonal, d.Step)
	assert.Equal(t, draft.SourceNew, d.Source)
	assert.Equal(t, render.Sidebar, d.Template)
	assert.NotNil(t, d.Record.SkillsList)

	other, err := f.svc.Create(context.Background(), f.owner, "fancy")
	require.NoError(t, err)
	assert.Equal(t, render.Simple, other.Template)
}

func TestSubmitPersonalValidates(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	d := f.create(t)

	_, err := f.svc.SubmitPersonal(ctx, f.owner, d.ID, draft.PersonalInput{Name: "Jane", Phone: "12345"})
	var verrs resume.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	fields := []string{}
	for _, v := range verrs {
		fields = append(fields, v.Field)
	}
	assert.Equal(t, []string{"email", "phone"}, fields)

	got, err := f.svc.Get(ctx, f.owner, d.ID)
	require.NoError(t, err)
	assert.Equal(t, draft.StepPersonal, got.Step)

	res, err := f.svc.SubmitPersonal(ctx, f.owner, d.ID, draft.PersonalInput{
		Name: " Jane Doe ", Email: "jane@example.com", Phone: "9876543210", Location: "Pune",
	})
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", res.Draft.Record.Name)
	assert.Equal(t, draft.StepSummary, res.Draft.Step)
	assert.Empty(t, res.Warnings)
}

// racingRepo lets another writer save the draft just before the first Update.
type racingRepo struct {
	draft.Repository
	once sync.Once
}

func (r *racingRepo) Update(ctx context.Context, d draft.Draft) error {
	r.once.Do(func() {
		other, err := r.GetAny(ctx, d.ID)
		if err == nil {
			other.Version++
			other.Record.Declaration = "Signed elsewhere"
			_ = r.Repository.Update(ctx, other)
		}
	})
	return r.Repository.Update(ctx, d)
}

func TestStaleStepIsRejected(t *testing.T) {
	blobs, err := blob.NewLocalStore(t.TempDir())
	require.NoError(t, err)
	log := logger.Discard()
	model := llm.Func(func(context.Context, string, string) (string, error) { return "{}", nil })
	svc := draft.NewService(&racingRepo{Repository: memory.NewDraftRepository()}, &fakeComposer{}, resume.NewAutofillService(model, log), blobs, log)
	ctx := context.Background()
	owner := auth.Principal{UserID: uuid.New()}

	d, err := svc.Create(ctx, owner, "")
	require.NoError(t, err)
	in := draft.PersonalInput{Name: "Jane Doe", Email: "jane@example.com", Phone: "9876543210"}

	_, err = svc.SubmitPersonal(ctx, owner, d.ID, in)
	require.ErrorIs(t, err, draft.ErrConflict)

	res, err := svc.SubmitPersonal(ctx, owner, d.ID, in)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Draft.Version)
	assert.Equal(t, "Signed elsewhere", res.Draft.Record.Declaration)
	assert.Equal(t, "Jane Doe", res.Draft.Record.Name)
}

func TestSubmitSummary(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	d := f.create(t)

	res, err := f.svc.SubmitSummary(ctx, f.owner, d.ID, draft.SummaryInput{Skip: true})
	require.NoError(t, err)
	assert.Equal(t, goodSummary, res.Draft.Record.Summary)
	assert.Empty(t, res.Warnings)

	res, err = f.svc.SubmitSummary(ctx, f.owner, d.ID, draft.SummaryInput{Text: "i want a job"})
	require.NoError(t, err)
	assert.Equal(t, "Short one", res.Draft.Record.Summary)
	assert.Equal(t, []string{draft.WarnSummaryInvalid}, res.Warnings)
	assert.Equal(t, []string{"summary", "rewrite"}, f.composer.calls)
}

func TestModelFailureKeepsPreviousText(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	d := f.create(t)

	_, err := f.svc.SubmitSummary(ctx, f.owner, d.ID, draft.SummaryInput{})
	require.NoError(t, err)

	f.composer.down = true
	res, err := f.svc.SubmitSummary(ctx, f.owner, d.ID, draft.SummaryInput{})
	require.NoError(t, err)
	assert.Equal(t, goodSummary, res.Draft.Record.Summary)
	assert.Equal(t, []string{draft.WarnModelUnavailable}, res.Warnings)
	assert.Equal(t, draft.StepEducation, res.Draft.Step)
}

func TestSubmitEducation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	d := f.create(t)

	_, err := f.svc.SubmitEducation(ctx, f.owner, d.ID, draft.EducationInput{Rows: []resume.Education{
		{Course: "B.Tech", StartYear: "2020", StopYear: "2018"},
	}})
	var verrs resume.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, "End year cannot be before start year for B.Tech", verrs[0].Message)

	res, err := f.svc.SubmitEducation(ctx, f.owner, d.ID, draft.EducationInput{Rows: []resume.Education{
		{Course: "B.Tech", School: "MIT", StartYear: "2018", StopYear: "2022", SGPA: "8.1"},
	}})
	require.NoError(t, err)
	require.Len(t, res.Draft.Record.Education, 1)

	res, err = f.svc.SubmitEducation(ctx, f.owner, d.ID, draft.EducationInput{Skip: true})
	require.NoError(t, err)
	assert.Empty(t, res.Draft.Record.Education)
	assert.NotNil(t, res.Draft.Record.Education)
}

func TestSubmitSkills(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	d := f.create(t)

	_, err := f.svc.SubmitSkills(ctx, f.owner, d.ID, draft.SkillsInput{Skills: " , "})
	var verrs resume.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, "skills_list", verrs[0].Field)

	res, err := f.svc.SubmitSkills(ctx, f.owner, d.ID, draft.SkillsInput{Skills: "Go, SQL"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Go", "SQL"}, res.Draft.Record.SkillsList)
	assert.Equal(t, "• Go: described\n• SQL: described", res.Draft.Record.TechnicalSkillsAI)
	assert.Equal(t, draft.StepLanguages, res.Draft.Step)

	f.composer.down = true
	res, err = f.svc.SubmitSkills(ctx, f.owner, d.ID, draft.SkillsInput{Skills: "Rust"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Rust"}, res.Draft.Record.SkillsList)
	assert.Empty(t, res.Draft.Record.TechnicalSkillsAI)
	assert.Equal(t, []string{draft.WarnSkillsUnavailable}, res.Warnings)
}

func TestLanguagesAndSoftSkillsAreCanonical(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	d := f.create(t)

	res, err := f.svc.SubmitLanguages(ctx, f.owner, d.ID, draft.LanguagesInput{
		Languages: []string{"english", "English ", "Klingon", ""},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"English", "Klingon"}, res.Draft.Record.Languages)

	res, err = f.svc.SubmitSoftSkills(ctx, f.owner, d.ID, draft.SoftSkillsInput{Skills: []string{"teamwork", "Teamwork"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"Teamwork"}, res.Draft.Record.SoftOptions)

	res, err = f.svc.SubmitSoftSkills(ctx, f.owner, d.ID, draft.SoftSkillsInput{Skills: []string{"Teamwork"}, Skip: true})
	require.NoError(t, err)
	assert.Empty(t, res.Draft.Record.SoftOptions)
}

func TestSubmitExperienceYears(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	d := f.create(t)

	_, err := f.svc.SubmitExperience(ctx, f.owner, d.ID, draft.ExperienceInput{Level: "7 Years"})
	var verrs resume.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, "experience_level", verrs[0].Field)

	steps := []draft.ExperienceInput{
		{Level: "Fresher", Skip: true},
		{Level: "2 Years"},
		{Level: "5+ Years", Text: "3"},
		{Level: "1 Year", Text: "Built a billing service"},
	}
	for _, in := range steps {
		_, err := f.svc.SubmitExperience(ctx, f.owner, d.ID, in)
		require.NoError(t, err)
	}
	assert.Equal(t, []compose.ExperienceInput{
		{Fresher: true},
		{Years: 2},
		{Years: 3, Text: "3"},
		{Text: "Built a billing service"},
	}, f.composer.experience)

	got, err := f.svc.Get(ctx, f.owner, d.ID)
	require.NoError(t, err)
	assert.Equal(t, "1 Year", got.Record.ExperienceLevel)
	assert.Equal(t, "Built a billing service", got.Record.ExperienceRaw)
	assert.Equal(t, draft.StepProjects, got.Step)
}

func TestProjectsAndDeclaration(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	d := f.create(t)

	res, err := f.svc.SubmitProjects(ctx, f.owner, d.ID, draft.TextInput{Text: "chat app"})
	require.NoError(t, err)
	assert.Equal(t, "chat app", res.Draft.Record.ProjectsRaw)
	assert.Equal(t, "• Project one\n• Project two", res.Draft.Record.Projects)

	res, err = f.svc.SubmitProjects(ctx, f.owner, d.ID, draft.TextInput{Skip: true})
	require.NoError(t, err)
	assert.Empty(t, res.Draft.Record.Projects)

	res, err = f.svc.SubmitDeclaration(ctx, f.owner, d.ID, draft.TextInput{Text: "All true."})
	require.NoError(t, err)
	assert.Equal(t, "All true.", res.Draft.Record.Declaration)
	assert.Equal(t, "All true.", res.Draft.Record.DeclarationRaw)

	res, err = f.svc.SubmitDeclaration(ctx, f.owner, d.ID, draft.TextInput{})
	require.NoError(t, err)
	assert.Equal(t, "I hereby declare that the above information is true.", res.Draft.Record.Declaration)
	assert.Empty(t, res.Draft.Record.DeclarationRaw)
	assert.Equal(t, draft.StepPreview, res.Draft.Step)
}

func TestPreviewRenderAndDocument(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	d := f.create(t)

	_, err := f.svc.Preview(ctx, f.owner, d.ID)
	var verrs resume.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Len(t, verrs, 4)

	_, err = f.svc.Document(ctx, f.owner, d.ID)
	assert.ErrorIs(t, err, draft.ErrNotRendered)

	_, err = f.svc.SubmitPersonal(ctx, f.owner, d.ID, draft.PersonalInput{Name: "Jane Doe", Email: "jane@example.com", Phone: "9876543210"})
	require.NoError(t, err)
	_, err = f.svc.SubmitSkills(ctx, f.owner, d.ID, draft.SkillsInput{Skills: "Go"})
	require.NoError(t, err)

	rendered, err := f.svc.Render(ctx, f.owner, d.ID)
	require.NoError(t, err)
	assert.Equal(t, draft.StepPreview, rendered.Step)
	require.NotEmpty(t, rendered.DocumentURI)

	data, err := f.svc.Document(ctx, f.owner, d.ID)
	require.NoError(t, err)
	text, err := resume.ExtractText(render.DefaultFilename, data)
	require.NoError(t, err)
	assert.Contains(t, text, "JANE DOE")
}

func TestImportStoresSourceAndAutofills(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	src := []byte("Jane Doe\njane@example.com\n9876543210\nGo developer")

	d, res, err := f.svc.CreateFromUpload(ctx, f.owner, "modern", "cv.txt", src)
	require.NoError(t, err)
	assert.Equal(t, draft.SourceExisting, d.Source)
	assert.Equal(t, draft.StepPersonal, d.Step)
	assert.Equal(t, "Jane Doe", d.Record.Name)
	assert.Equal(t, []string{"Docker", "Go"}, d.Record.SkillsList)
	assert.Contains(t, res.Warnings, resume.WarnScanned)

	stored, err := f.blobs.Get(ctx, d.SourceURI)
	require.NoError(t, err)
	assert.Equal(t, src, stored)

	require.NoError(t, f.svc.Delete(ctx, f.owner, d.ID))
	_, err = f.blobs.Get(ctx, d.SourceURI)
	assert.True(t, errors.Is(err, blob.ErrNotFound))
	_, err = f.svc.Get(ctx, f.owner, d.ID)
	assert.ErrorIs(t, err, draft.ErrNotFound)
}

func TestImportRejectsUnsupportedFile(t *testing.T) {
	f := newFixture(t)
	_, _, err := f.svc.CreateFromUpload(context.Background(), f.owner, "", "cv.odt", []byte("x"))
	assert.ErrorIs(t, err, resume.ErrUnsupportedFormat)
}

func TestOwnerScopingAndAdmin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	d := f.create(t)
	stranger := auth.Principal{UserID: uuid.New()}
	admin := auth.Principal{UserID: uuid.New(), IsAdmin: true}

	_, err := f.svc.SubmitPersonal(ctx, stranger, d.ID, draft.PersonalInput{})
	assert.ErrorIs(t, err, draft.ErrNotFound)
	assert.ErrorIs(t, f.svc.Delete(ctx, stranger, d.ID), draft.ErrNotFound)

	list, err := f.svc.List(ctx, stranger, 10, 0)
	require.NoError(t, err)
	assert.Empty(t, list)

	updated, err := f.svc.SetTemplate(ctx, admin, d.ID, "modern")
	require.NoError(t, err)
	assert.Equal(t, render.Modern, updated.Template)
	assert.Equal(t, d.OwnerID, updated.OwnerID)
	require.NoError(t, f.svc.Delete(ctx, admin, d.ID))
}
