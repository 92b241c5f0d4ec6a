package handlers

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/artem13815/resumebuilder/api/http/presenter"
	"github.com/artem13815/resumebuilder/pkg/auth"
	"github.com/artem13815/resumebuilder/pkg/compose"
	"github.com/artem13815/resumebuilder/pkg/draft"
	"github.com/artem13815/resumebuilder/pkg/interview"
	"github.com/artem13815/resumebuilder/pkg/resume"
	"github.com/artem13815/resumebuilder/pkg/security/jwt"
	"github.com/artem13815/resumebuilder/pkg/storage/blob"
)

const defaultMaxUpload = 15 << 20 // 15MB

// readUpload reads the "file" form field. Its errors are *fiber.Error values that
// presenter.ErrorHandler renders as {"message": ...}.
func readUpload(c *fiber.Ctx, maxBytes int64) (string, []byte, error) {
	fh, err := c.FormFile("file")
	if err != nil || fh == nil {
		return "", nil, fiber.NewError(http.StatusBadRequest, "file is required (pdf, docx or txt)")
	}
	if !resume.SupportedExt(fh.Filename) {
		return "", nil, fiber.NewError(http.StatusBadRequest, "unsupported file format: only pdf, docx and txt are allowed")
	}
	file, err := fh.Open()
	if err != nil {
		return "", nil, fiber.NewError(http.StatusBadRequest, "failed to open uploaded file")
	}
	defer file.Close()

	data, err := readAtMost(file, maxBytes)
	if err != nil {
		return "", nil, fiber.NewError(http.StatusRequestEntityTooLarge, err.Error())
	}
	return fh.Filename, data, nil
}

func readAtMost(f multipart.File, max int64) ([]byte, error) {
	limited := io.LimitReader(f, max+1)
	b, err := io.ReadAll(limited)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	if int64(len(b)) > max {
		return nil, fmt.Errorf("file too large: limit is %d bytes", max)
	}
	return b, nil
}

func principal(c *fiber.Ctx) (auth.Principal, bool) {
	p, err := jwt.Principal(c)
	return p, err == nil
}

func pathID(c *fiber.Ctx) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Params("id"))
	return id, err == nil
}

// domainError maps use case errors onto HTTP statuses.
func domainError(c *fiber.Ctx, err error, fallback string) error {
	var verrs resume.ValidationErrors
	var fe *fiber.Error
	switch {
	case errors.As(err, &fe):
		return presenter.Error(c, fe.Code, fe.Message)
	case errors.As(err, &verrs):
		return presenter.ValidationError(c, verrs)
	case errors.Is(err, draft.ErrNotFound), errors.Is(err, interview.ErrNotFound),
		errors.Is(err, blob.ErrNotFound):
		return presenter.Error(c, http.StatusNotFound, err.Error())
	case errors.Is(err, draft.ErrNotRendered), errors.Is(err, draft.ErrConflict),
		errors.Is(err, interview.ErrAlreadyEvaluated):
		return presenter.Error(c, http.StatusConflict, err.Error())
	case errors.Is(err, compose.ErrTemplateInput), errors.Is(err, compose.ErrEmptyInput):
		return presenter.Error(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, resume.ErrUnsupportedFormat), errors.Is(err, resume.ErrUnreadable),
		errors.Is(err, interview.ErrUnknownQuestion):
		return presenter.Error(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, interview.ErrNoSkills):
		return presenter.Error(c, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, interview.ErrEvaluation), errors.Is(err, compose.ErrGeneration):
		return presenter.Error(c, http.StatusBadGateway, err.Error())
	}
	return presenter.Error(c, http.StatusInternalServerError, fallback)
}
