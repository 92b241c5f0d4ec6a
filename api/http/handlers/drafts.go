package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/artem13815/resumebuilder/api/http/presenter"
	"github.com/artem13815/resumebuilder/pkg/auth"
	"github.com/artem13815/resumebuilder/pkg/draft"
	"github.com/artem13815/resumebuilder/pkg/render"
	"github.com/artem13815/resumebuilder/pkg/resume"
)

// DraftsHandler drives the step-by-step resume wizard.
type DraftsHandler struct {
	svc      draft.UseCase
	maxBytes int64
}

func NewDraftsHandler(svc draft.UseCase, maxBytes int64) *DraftsHandler {
	if maxBytes <= 0 {
		maxBytes = defaultMaxUpload
	}
	return &DraftsHandler{svc: svc, maxBytes: maxBytes}
}

type createDraftRequest struct {
	Template string `json:"template"`
}

// ImportResponse is a draft pre-filled from an uploaded resume.
type ImportResponse struct {
	Draft    draft.Draft           `json:"draft"`
	Autofill resume.AutofillResult `json:"autofill"`
}

// Create начинает пустой черновик.
// @Summary Создать черновик резюме
// @Tags    drafts
// @Accept  json
// @Produce json
// @Param   input body createDraftRequest false "template: simple | sidebar | modern"
// @Security BearerAuth
// @Success 201 {object} draft.Draft
// @Failure 401 {object} presenter.ErrorResponse
// @Router  /drafts [post]
func (h *DraftsHandler) Create(c *fiber.Ctx) error {
	p, ok := principal(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, "unauthorized")
	}
	var req createDraftRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
		}
	}
	d, err := h.svc.Create(c.Context(), p, req.Template)
	if err != nil {
		return domainError(c, err, "failed to create draft")
	}
	return presenter.JSON(c, http.StatusCreated, d)
}

// Import создаёт черновик из существующего резюме с автозаполнением полей.
// @Summary Импортировать резюме в черновик
// @Tags    drafts
// @Accept  multipart/form-data
// @Produce json
// @Param   file     formData file   true  "Файл резюме (PDF, DOCX или TXT)"
// @Param   template formData string false "simple | sidebar | modern"
// @Security BearerAuth
// @Success 201 {object} ImportResponse
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 401 {object} presenter.ErrorResponse
// @Router  /drafts/import [post]
func (h *DraftsHandler) Import(c *fiber.Ctx) error {
	p, ok := principal(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, "unauthorized")
	}
	filename, data, err := readUpload(c, h.maxBytes)
	if err != nil {
		return err
	}
	d, res, err := h.svc.CreateFromUpload(c.Context(), p, c.FormValue("template"), filename, data)
	if err != nil {
		return domainError(c, err, "failed to import resume")
	}
	return presenter.JSON(c, http.StatusCreated, ImportResponse{Draft: d, Autofill: res})
}

// List возвращает черновики пользователя (или все, если админ).
// @Summary Список черновиков
// @Tags    drafts
// @Produce json
// @Param   limit  query int false "limit (1..200)"
// @Param   offset query int false "offset"
// @Security BearerAuth
// @Success 200 {array} draft.Draft
// @Failure 401 {object} presenter.ErrorResponse
// @Router  /drafts [get]
func (h *DraftsHandler) List(c *fiber.Ctx) error {
	p, ok := principal(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, "unauthorized")
	}
	limit, offset := parseLimitOffset(c)
	items, err := h.svc.List(c.Context(), p, limit, offset)
	if err != nil {
		return domainError(c, err, "failed to list drafts")
	}
	return presenter.JSON(c, http.StatusOK, items)
}

// withDraft resolves the principal and the :id path parameter.
func withDraft(c *fiber.Ctx, fn func(p auth.Principal, id uuid.UUID) error) error {
	p, ok := principal(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, "unauthorized")
	}
	id, ok := pathID(c)
	if !ok {
		return presenter.Error(c, http.StatusBadRequest, "invalid draft id")
	}
	return fn(p, id)
}

// Get returns one draft.
// @Summary Get draft
// @Tags    drafts
// @Produce json
// @Param   id path string true "draft id"
// @Security BearerAuth
// @Success 200 {object} draft.Draft
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /drafts/{id} [get]
func (h *DraftsHandler) Get(c *fiber.Ctx) error {
	return withDraft(c, func(p auth.Principal, id uuid.UUID) error {
		d, err := h.svc.Get(c.Context(), p, id)
		if err != nil {
			return domainError(c, err, "failed to load draft")
		}
		return presenter.JSON(c, http.StatusOK, d)
	})
}

// Delete removes a draft and its stored files.
// @Summary Delete draft
// @Tags    drafts
// @Param   id path string true "draft id"
// @Security BearerAuth
// @Success 204
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /drafts/{id} [delete]
func (h *DraftsHandler) Delete(c *fiber.Ctx) error {
	return withDraft(c, func(p auth.Principal, id uuid.UUID) error {
		if err := h.svc.Delete(c.Context(), p, id); err != nil {
			return domainError(c, err, "failed to delete draft")
		}
		return c.SendStatus(http.StatusNoContent)
	})
}

// SetTemplate switches the document template.
// @Summary Change draft template
// @Tags    drafts
// @Accept  json
// @Produce json
// @Param   id    path string             true "draft id"
// @Param   input body createDraftRequest true "template"
// @Security BearerAuth
// @Success 200 {object} draft.Draft
// @Failure 404 {object} presenter.ErrorResponse
// @Failure 409 {object} presenter.ErrorResponse
// @Router  /drafts/{id}/template [put]
func (h *DraftsHandler) SetTemplate(c *fiber.Ctx) error {
	return withDraft(c, func(p auth.Principal, id uuid.UUID) error {
		var req createDraftRequest
		if err := c.BodyParser(&req); err != nil {
			return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
		}
		d, err := h.svc.SetTemplate(c.Context(), p, id, req.Template)
		if err != nil {
			return domainError(c, err, "failed to update draft")
		}
		return presenter.JSON(c, http.StatusOK, d)
	})
}

// SubmitStep сохраняет один шаг мастера и переводит черновик на следующий.
// Тело запроса зависит от шага: personal {name,email,phone,location},
// summary {text,skip}, education {rows,skip}, skills {skills},
// languages {languages}, soft-skills {skills,skip}, experience {level,text,skip},
// projects и declaration {text,skip}.
// @Summary Отправить шаг мастера
// @Tags    drafts
// @Accept  json
// @Produce json
// @Param   id   path string true "draft id"
// @Param   step path string true "personal | summary | education | skills | languages | soft-skills | experience | projects | declaration"
// @Security BearerAuth
// @Success 200 {object} draft.StepResult
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Failure 422 {object} presenter.ValidationResponse
// @Failure 409 {object} presenter.ErrorResponse
// @Router  /drafts/{id}/steps/{step} [put]
func (h *DraftsHandler) SubmitStep(c *fiber.Ctx) error {
	return withDraft(c, func(p auth.Principal, id uuid.UUID) error {
		submit, ok := h.steps()[c.Params("step")]
		if !ok {
			return presenter.Error(c, http.StatusNotFound, "unknown step: "+c.Params("step"))
		}
		res, err := submit(c, p, id)
		if err != nil {
			return domainError(c, err, "failed to save step")
		}
		return presenter.JSON(c, http.StatusOK, res)
	})
}

type stepFunc func(c *fiber.Ctx, p auth.Principal, id uuid.UUID) (draft.StepResult, error)

// bind decodes the step body into In and calls the matching use case method.
func bind[In any](submit func(ctx *fiber.Ctx, p auth.Principal, id uuid.UUID, in In) (draft.StepResult, error)) stepFunc {
	return func(c *fiber.Ctx, p auth.Principal, id uuid.UUID) (draft.StepResult, error) {
		var in In
		if len(c.Body()) > 0 {
			if err := c.BodyParser(&in); err != nil {
				return draft.StepResult{}, fiber.NewError(http.StatusBadRequest, "invalid JSON payload")
			}
		}
		return submit(c, p, id, in)
	}
}

func (h *DraftsHandler) steps() map[string]stepFunc {
	return map[string]stepFunc{
		draft.StepPersonal.String(): bind(func(c *fiber.Ctx, p auth.Principal, id uuid.UUID, in draft.PersonalInput) (draft.StepResult, error) {
			return h.svc.SubmitPersonal(c.Context(), p, id, in)
		}),
		draft.StepSummary.String(): bind(func(c *fiber.Ctx, p auth.Principal, id uuid.UUID, in draft.SummaryInput) (draft.StepResult, error) {
			return h.svc.SubmitSummary(c.Context(), p, id, in)
		}),
		draft.StepEducation.String(): bind(func(c *fiber.Ctx, p auth.Principal, id uuid.UUID, in draft.EducationInput) (draft.StepResult, error) {
			return h.svc.SubmitEducation(c.Context(), p, id, in)
		}),
		draft.StepSkills.String(): bind(func(c *fiber.Ctx, p auth.Principal, id uuid.UUID, in draft.SkillsInput) (draft.StepResult, error) {
			return h.svc.SubmitSkills(c.Context(), p, id, in)
		}),
		draft.StepLanguages.String(): bind(func(c *fiber.Ctx, p auth.Principal, id uuid.UUID, in draft.LanguagesInput) (draft.StepResult, error) {
			return h.svc.SubmitLanguages(c.Context(), p, id, in)
		}),
		draft.StepSoftSkills.String(): bind(func(c *fiber.Ctx, p auth.Principal, id uuid.UUID, in draft.SoftSkillsInput) (draft.StepResult, error) {
			return h.svc.SubmitSoftSkills(c.Context(), p, id, in)
		}),
		draft.StepExperience.String(): bind(func(c *fiber.Ctx, p auth.Principal, id uuid.UUID, in draft.ExperienceInput) (draft.StepResult, error) {
			return h.svc.SubmitExperience(c.Context(), p, id, in)
		}),
		draft.StepProjects.String(): bind(func(c *fiber.Ctx, p auth.Principal, id uuid.UUID, in draft.TextInput) (draft.StepResult, error) {
			return h.svc.SubmitProjects(c.Context(), p, id, in)
		}),
		draft.StepDeclaration.String(): bind(func(c *fiber.Ctx, p auth.Principal, id uuid.UUID, in draft.TextInput) (draft.StepResult, error) {
			return h.svc.SubmitDeclaration(c.Context(), p, id, in)
		}),
	}
}

// Preview validates the draft and returns it for the final review page.
// @Summary Preview draft
// @Tags    drafts
// @Produce json
// @Param   id path string true "draft id"
// @Security BearerAuth
// @Success 200 {object} draft.Draft
// @Failure 404 {object} presenter.ErrorResponse
// @Failure 422 {object} presenter.ValidationResponse
// @Router  /drafts/{id}/preview [get]
func (h *DraftsHandler) Preview(c *fiber.Ctx) error {
	return withDraft(c, func(p auth.Principal, id uuid.UUID) error {
		d, err := h.svc.Preview(c.Context(), p, id)
		if err != nil {
			return domainError(c, err, "failed to preview draft")
		}
		return presenter.JSON(c, http.StatusOK, d)
	})
}

// Render builds the DOCX and stores it.
// @Summary Render draft to DOCX
// @Tags    drafts
// @Produce json
// @Param   id path string true "draft id"
// @Security BearerAuth
// @Success 200 {object} draft.Draft
// @Failure 404 {object} presenter.ErrorResponse
// @Failure 422 {object} presenter.ValidationResponse
// @Failure 409 {object} presenter.ErrorResponse
// @Router  /drafts/{id}/render [post]
func (h *DraftsHandler) Render(c *fiber.Ctx) error {
	return withDraft(c, func(p auth.Principal, id uuid.UUID) error {
		d, err := h.svc.Render(c.Context(), p, id)
		if err != nil {
			return domainError(c, err, "failed to render draft")
		}
		return presenter.JSON(c, http.StatusOK, d)
	})
}

// Document скачивает последний сгенерированный DOCX.
// @Summary Скачать резюме
// @Tags    drafts
// @Produce application/vnd.openxmlformats-officedocument.wordprocessingml.document
// @Param   id path string true "draft id"
// @Security BearerAuth
// @Success 200 {file} file
// @Failure 404 {object} presenter.ErrorResponse
// @Failure 409 {object} presenter.ErrorResponse
// @Router  /drafts/{id}/document [get]
func (h *DraftsHandler) Document(c *fiber.Ctx) error {
	return withDraft(c, func(p auth.Principal, id uuid.UUID) error {
		data, err := h.svc.Document(c.Context(), p, id)
		if err != nil {
			return domainError(c, err, "failed to load document")
		}
		c.Set(fiber.HeaderContentType, render.ContentType)
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+render.DefaultFilename+`"`)
		return c.Status(http.StatusOK).Send(data)
	})
}
