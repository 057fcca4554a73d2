package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/alumni-labs/bolsa/api/http/presenter"
	"github.com/alumni-labs/bolsa/pkg/company"
)

type CompanyHandler struct {
	useCase company.UseCase
}

func NewCompanyHandler(useCase company.UseCase) *CompanyHandler {
	return &CompanyHandler{useCase: useCase}
}

// List returns the company directory.
// @Summary List companies
// @Tags    companies
// @Produce json
// @Success 200 {array} company.Company
// @Failure 500 {object} presenter.ErrorResponse
// @Router  /companies [get]
func (h *CompanyHandler) List(c *fiber.Ctx) error {
	companies, err := h.useCase.List(c.Context())
	if err != nil {
		return presenter.Error(c, http.StatusInternalServerError, "failed to list companies")
	}
	return presenter.JSON(c, http.StatusOK, companies)
}

// Get returns one company.
// @Summary Get company by id
// @Tags    companies
// @Produce json
// @Param   id path string true "company id"
// @Success 200 {object} company.Company
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /companies/{id} [get]
func (h *CompanyHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid company id")
	}
	comp, err := h.useCase.GetByID(c.Context(), id)
	if err != nil {
		if err == company.ErrNotFound {
			return presenter.Error(c, http.StatusNotFound, "company not found")
		}
		return presenter.Error(c, http.StatusInternalServerError, "failed to get company")
	}
	return presenter.JSON(c, http.StatusOK, comp)
}

// Mine returns the company owned by the session user.
// @Summary Get own company
// @Tags    companies
// @Produce json
// @Success 200 {object} company.Company
// @Failure 404 {object} presenter.ErrorResponse
// @Security BearerAuth
// @Router  /companies/mine [get]
func (h *CompanyHandler) Mine(c *fiber.Ctx) error {
	actor := sessionActor(c)
	if actor == nil {
		return presenter.Error(c, http.StatusUnauthorized, "authentication required")
	}
	comp, err := h.useCase.GetByOwner(c.Context(), actor.ID)
	if err != nil {
		if err == company.ErrNotFound {
			return presenter.Error(c, http.StatusNotFound, "company not found")
		}
		return presenter.Error(c, http.StatusInternalServerError, "failed to get company")
	}
	return presenter.JSON(c, http.StatusOK, comp)
}
