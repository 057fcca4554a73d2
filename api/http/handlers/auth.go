package handlers

import (
	"log"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/alumni-labs/bolsa/api/http/presenter"
	"github.com/alumni-labs/bolsa/pkg/auth"
	"github.com/alumni-labs/bolsa/pkg/mailer"
	"github.com/alumni-labs/bolsa/pkg/profile"
)

type AuthHandler struct {
	useCase auth.AuthUseCase
	links   *mailer.LinkBuilder
	mail    mailer.Sender
}

func NewAuthHandler(useCase auth.AuthUseCase, links *mailer.LinkBuilder, mail mailer.Sender) *AuthHandler {
	return &AuthHandler{useCase: useCase, links: links, mail: mail}
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
	Name     string `json:"name"`
}

// Register handles user registration. The account starts unconfirmed; a
// signup action link is mailed out (best-effort) and login is refused until
// the email is confirmed.
// @Summary Register user
// @Tags    auth
// @Accept  json
// @Produce json
// @Param   input body registerRequest true "registration payload"
// @Success 201 {object} map[string]any
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 409 {object} presenter.ErrorResponse
// @Router  /auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return presenter.Error(c, http.StatusBadRequest, "email and password are required")
	}
	role := profile.Role(req.Role)
	if req.Role == "" {
		role = profile.RoleStudent
	}
	if !role.Valid() || role == profile.RoleAdmin {
		return presenter.Error(c, http.StatusBadRequest, "role must be STUDENT or COMPANY")
	}

	result, err := h.useCase.Register(c.Context(), req.Email, req.Password, role, req.Name)
	if err != nil {
		switch err {
		case auth.ErrUserAlreadyExists:
			return presenter.Error(c, http.StatusConflict, "user already exists")
		case auth.ErrInvalidCredentials:
			return presenter.Error(c, http.StatusBadRequest, "email and password are required")
		default:
			return presenter.Error(c, http.StatusInternalServerError, "failed to register user")
		}
	}

	// Confirmation email is best-effort; the admin authorize-user endpoint
	// can confirm the account manually when delivery fails.
	if link, lerr := h.links.Build(mailer.LinkSignup, result.Account.Email, ""); lerr == nil {
		html := "<h1>Verifica tu correo</h1><p>Haz clic <a href=\"" + link + "\">aquí</a> para continuar.</p>"
		if _, merr := h.mail.Send(c.Context(), []string{result.Account.Email}, "Verifica tu correo", html, ""); merr != nil {
			log.Printf("register: confirmation mail failed: %v", merr)
		}
	}

	return presenter.JSON(c, http.StatusCreated, fiber.Map{
		"id":        result.Account.ID.String(),
		"email":     result.Account.Email,
		"role":      result.Account.Role,
		"createdAt": result.Account.CreatedAt,
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login handles user login.
// @Summary Login
// @Tags    auth
// @Accept  json
// @Produce json
// @Param   input body loginRequest true "login payload"
// @Success 200 {object} map[string]any
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 401 {object} presenter.ErrorResponse
// @Router  /auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return presenter.Error(c, http.StatusBadRequest, "email and password are required")
	}

	result, err := h.useCase.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		switch err {
		case auth.ErrInvalidCredentials:
			return presenter.Error(c, http.StatusUnauthorized, "invalid credentials")
		case auth.ErrEmailNotConfirmed:
			return presenter.Error(c, http.StatusForbidden, "email not confirmed")
		default:
			return presenter.Error(c, http.StatusInternalServerError, "failed to login")
		}
	}

	return presenter.JSON(c, http.StatusOK, fiber.Map{
		"id":    result.Account.ID.String(),
		"email": result.Account.Email,
		"role":  result.Account.Role,
		"token": result.Token,
	})
}
