package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/artem13815/resumebuilder/api/http/presenter"
	"github.com/artem13815/resumebuilder/pkg/auth"
)

type AuthHandler struct {
	useCase auth.AuthUseCase
}

func NewAuthHandler(useCase auth.AuthUseCase) *AuthHandler {
	return &AuthHandler{useCase: useCase}
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AccountResponse is the public view of a user.
type AccountResponse struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	IsAdmin   bool      `json:"isAdmin"`
	CreatedAt time.Time `json:"createdAt"`
}

type AuthResponse struct {
	AccountResponse
	Token string `json:"token"`
}

func accountOf(u auth.User) AccountResponse {
	return AccountResponse{ID: u.ID, Email: u.Email, IsAdmin: u.IsAdmin, CreatedAt: u.CreatedAt}
}

func bindCredentials(c *fiber.Ctx) (credentialsRequest, error) {
	var req credentialsRequest
	if err := c.BodyParser(&req); err != nil {
		return req, fiber.NewError(http.StatusBadRequest, "invalid JSON payload")
	}
	if req.Email == "" || req.Password == "" {
		return req, fiber.NewError(http.StatusBadRequest, "email and password are required")
	}
	return req, nil
}

// Register создаёт аккаунт и сразу выдаёт токен.
// @Summary Register user
// @Tags    auth
// @Accept  json
// @Produce json
// @Param   input body credentialsRequest true "registration payload"
// @Success 201 {object} AuthResponse
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 409 {object} presenter.ErrorResponse
// @Router  /auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	req, err := bindCredentials(c)
	if err != nil {
		return domainError(c, err, "")
	}
	res, err := h.useCase.Register(c.Context(), req.Email, req.Password)
	switch {
	case errors.Is(err, auth.ErrUserAlreadyExists):
		return presenter.Error(c, http.StatusConflict, err.Error())
	case errors.Is(err, auth.ErrInvalidEmail), errors.Is(err, auth.ErrWeakPassword):
		return presenter.Error(c, http.StatusBadRequest, err.Error())
	case err != nil:
		return domainError(c, err, "failed to register user")
	}
	return presenter.JSON(c, http.StatusCreated, AuthResponse{AccountResponse: accountOf(res.User), Token: res.Token})
}

// Login обменивает email и пароль на токен.
// @Summary Login
// @Tags    auth
// @Accept  json
// @Produce json
// @Param   input body credentialsRequest true "login payload"
// @Success 200 {object} AuthResponse
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 401 {object} presenter.ErrorResponse
// @Router  /auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	req, err := bindCredentials(c)
	if err != nil {
		return domainError(c, err, "")
	}
	res, err := h.useCase.Login(c.Context(), req.Email, req.Password)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		return presenter.Error(c, http.StatusUnauthorized, err.Error())
	}
	if err != nil {
		return domainError(c, err, "failed to login")
	}
	return presenter.JSON(c, http.StatusOK, AuthResponse{AccountResponse: accountOf(res.User), Token: res.Token})
}

// Me возвращает аккаунт владельца токена.
// @Summary Current account
// @Tags    auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} AccountResponse
// @Failure 401 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	p, ok := principal(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, "unauthorized")
	}
	u, err := h.useCase.Me(c.Context(), p)
	if errors.Is(err, auth.ErrNotFound) {
		return presenter.Error(c, http.StatusNotFound, "account not found")
	}
	if err != nil {
		return domainError(c, err, "failed to load account")
	}
	return presenter.JSON(c, http.StatusOK, accountOf(u))
}
