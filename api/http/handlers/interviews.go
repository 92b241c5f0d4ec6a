package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/artem13815/resumebuilder/api/http/presenter"
	"github.com/artem13815/resumebuilder/pkg/auth"
	"github.com/artem13815/resumebuilder/pkg/interview"
)

// InterviewsHandler runs mock technical interviews built from a resume.
type InterviewsHandler struct {
	svc      interview.UseCase
	maxBytes int64
}

func NewInterviewsHandler(svc interview.UseCase, maxBytes int64) *InterviewsHandler {
	if maxBytes <= 0 {
		maxBytes = defaultMaxUpload
	}
	return &InterviewsHandler{svc: svc, maxBytes: maxBytes}
}

// Start находит технические навыки в резюме и генерирует по 3 вопроса на навык.
// @Summary Начать собеседование по резюме
// @Tags    interviews
// @Accept  multipart/form-data
// @Produce json
// @Param   file formData file true "Файл резюме (PDF, DOCX или TXT)"
// @Security BearerAuth
// @Success 201 {object} interview.Session
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 422 {object} presenter.ErrorResponse "навыки не найдены"
// @Router  /interviews [post]
func (h *InterviewsHandler) Start(c *fiber.Ctx) error {
	p, ok := principal(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, "unauthorized")
	}
	filename, data, err := readUpload(c, h.maxBytes)
	if err != nil {
		return err
	}
	sess, err := h.svc.Start(c.Context(), p, filename, data)
	if err != nil {
		return domainError(c, err, "failed to start interview")
	}
	return presenter.JSON(c, http.StatusCreated, sess)
}

// List returns interview sessions of the caller, or all of them for admins.
// @Summary List interviews
// @Tags    interviews
// @Produce json
// @Param   limit  query int false "limit (1..200)"
// @Param   offset query int false "offset"
// @Security BearerAuth
// @Success 200 {array} interview.Session
// @Router  /interviews [get]
func (h *InterviewsHandler) List(c *fiber.Ctx) error {
	p, ok := principal(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, "unauthorized")
	}
	limit, offset := parseLimitOffset(c)
	items, err := h.svc.List(c.Context(), p, limit, offset)
	if err != nil {
		return domainError(c, err, "failed to list interviews")
	}
	return presenter.JSON(c, http.StatusOK, items)
}

// Get returns one session with its result once evaluated.
// @Summary Get interview
// @Tags    interviews
// @Produce json
// @Param   id path string true "session id"
// @Security BearerAuth
// @Success 200 {object} interview.Session
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /interviews/{id} [get]
func (h *InterviewsHandler) Get(c *fiber.Ctx) error {
	return withSession(c, func(p auth.Principal, id uuid.UUID) error {
		sess, err := h.svc.Get(c.Context(), p, id)
		if err != nil {
			return domainError(c, err, "failed to load interview")
		}
		return presenter.JSON(c, http.StatusOK, sess)
	})
}

type answersRequest struct {
	Answers []interview.Answer `json:"answers"`
}

// Submit оценивает ответы и возвращает итоговый балл.
// @Summary Отправить ответы
// @Tags    interviews
// @Accept  json
// @Produce json
// @Param   id    path string         true "session id"
// @Param   input body answersRequest true "answers by question index"
// @Security BearerAuth
// @Success 200 {object} interview.Session
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Failure 409 {object} presenter.ErrorResponse
// @Failure 502 {object} presenter.ErrorResponse
// @Router  /interviews/{id}/answers [post]
func (h *InterviewsHandler) Submit(c *fiber.Ctx) error {
	return withSession(c, func(p auth.Principal, id uuid.UUID) error {
		var req answersRequest
		if err := c.BodyParser(&req); err != nil {
			return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
		}
		sess, err := h.svc.Submit(c.Context(), p, id, req.Answers)
		if err != nil {
			return domainError(c, err, "failed to evaluate answers")
		}
		return presenter.JSON(c, http.StatusOK, sess)
	})
}

func withSession(c *fiber.Ctx, fn func(p auth.Principal, id uuid.UUID) error) error {
	p, ok := principal(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, "unauthorized")
	}
	id, ok := pathID(c)
	if !ok {
		return presenter.Error(c, http.StatusBadRequest, "invalid session id")
	}
	return fn(p, id)
}
