package handlers

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/resumebuilder/api/http/presenter"
	"github.com/artem13815/resumebuilder/pkg/compose"
	"github.com/artem13815/resumebuilder/pkg/resume"
)

// ToolsHandler exposes the building blocks of the wizard without a stored draft.
type ToolsHandler struct {
	composer compose.Service
	autofill resume.AutofillService
	maxBytes int64
}

func NewToolsHandler(composer compose.Service, autofill resume.AutofillService, maxBytes int64) *ToolsHandler {
	if maxBytes <= 0 {
		maxBytes = defaultMaxUpload
	}
	return &ToolsHandler{composer: composer, autofill: autofill, maxBytes: maxBytes}
}

// ExtractResponse is the plain text of an uploaded resume.
type ExtractResponse struct {
	Filename string `json:"filename"`
	Text     string `json:"text"`
	Chars    int    `json:"chars"`
}

// Extract извлекает текст из загруженного файла.
// @Summary Извлечь текст резюме
// @Tags    tools
// @Accept  multipart/form-data
// @Produce json
// @Param   file formData file true "Файл резюме (PDF, DOCX или TXT)"
// @Security BearerAuth
// @Success 200 {object} ExtractResponse
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 413 {object} presenter.ErrorResponse
// @Router  /tools/extract [post]
func (h *ToolsHandler) Extract(c *fiber.Ctx) error {
	filename, data, err := readUpload(c, h.maxBytes)
	if err != nil {
		return err
	}
	text, err := resume.ExtractText(filename, data)
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "failed to read resume: "+err.Error())
	}
	return presenter.JSON(c, http.StatusOK, ExtractResponse{
		Filename: filename,
		Text:     text,
		Chars:    len([]rune(text)),
	})
}

// Autofill разбирает резюме и возвращает предзаполненную анкету.
// @Summary Автозаполнение анкеты по резюме
// @Tags    tools
// @Accept  multipart/form-data
// @Produce json
// @Param   file formData file true "Файл резюме (PDF, DOCX или TXT)"
// @Security BearerAuth
// @Success 200 {object} resume.AutofillResult
// @Failure 400 {object} presenter.ErrorResponse
// @Router  /tools/autofill [post]
func (h *ToolsHandler) Autofill(c *fiber.Ctx) error {
	filename, data, err := readUpload(c, h.maxBytes)
	if err != nil {
		return err
	}
	res, err := h.autofill.Autofill(c.Context(), filename, data)
	if err != nil {
		return domainError(c, err, "autofill failed")
	}
	return presenter.JSON(c, http.StatusOK, res)
}

type reviewRequest struct {
	Text string `json:"text"`
}

// ReviewSummary runs the summary heuristics without calling the model.
// @Summary Review a summary draft
// @Tags    tools
// @Accept  json
// @Produce json
// @Param   input body reviewRequest true "summary text"
// @Security BearerAuth
// @Success 200 {object} compose.SummaryReview
// @Failure 400 {object} presenter.ErrorResponse
// @Router  /tools/review-summary [post]
func (h *ToolsHandler) ReviewSummary(c *fiber.Ctx) error {
	var req reviewRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	return presenter.JSON(c, http.StatusOK, compose.Review(req.Text))
}

type generateRequest struct {
	Record  *resume.Record `json:"record"`
	Text    string         `json:"text"`
	Fresher bool           `json:"fresher"`
	Years   int            `json:"years"`
}

// GenerateResponse is the generated text of one section.
type GenerateResponse struct {
	Kind string `json:"kind"`
	Text string `json:"text"`
}

// Generate drafts one section of the resume.
// @Summary Generate a resume section
// @Description kind is one of summary, rewrite-summary, technical, experience, projects, declaration.
// @Tags    tools
// @Accept  json
// @Produce json
// @Param   kind  path string          true "section kind"
// @Param   input body generateRequest true "record and user text"
// @Security BearerAuth
// @Success 200 {object} GenerateResponse
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Failure 502 {object} presenter.ErrorResponse
// @Router  /tools/generate/{kind} [post]
func (h *ToolsHandler) Generate(c *fiber.Ctx) error {
	var req generateRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	rec := resume.NewRecord()
	if req.Record != nil {
		rec = *req.Record
		rec.EnsureSlices()
	}
	ctx := c.Context()
	kind := strings.ToLower(c.Params("kind"))

	var out string
	var err error
	switch kind {
	case "summary":
		out, err = h.composer.Summary(ctx, rec, req.Text)
	case "rewrite-summary":
		out, err = h.composer.RewriteSummary(ctx, req.Text)
	case "technical":
		out, err = h.composer.TechnicalSkills(ctx, rec)
	case "experience":
		out, err = h.composer.Experience(ctx, rec, compose.ExperienceInput{
			Fresher: req.Fresher || rec.ExperienceLevel == resume.LevelFresher,
			Years:   req.Years,
			Text:    strings.TrimSpace(req.Text),
		})
	case "projects":
		out, err = h.composer.Projects(ctx, rec, strings.TrimSpace(req.Text))
	case "declaration":
		out, err = h.composer.Declaration(ctx, strings.TrimSpace(req.Text))
	default:
		return presenter.Error(c, http.StatusNotFound, "unknown section kind: "+kind)
	}
	if err != nil {
		return domainError(c, err, "generation failed")
	}
	return presenter.JSON(c, http.StatusOK, GenerateResponse{Kind: kind, Text: out})
}
