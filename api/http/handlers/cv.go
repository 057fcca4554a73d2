package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/alumni-labs/bolsa/api/http/presenter"
	"github.com/alumni-labs/bolsa/pkg/cv"
)

type CVHandler struct {
	store   *cv.Store
	options cv.SkillOptionCache
}

func NewCVHandler(store *cv.Store, options cv.SkillOptionCache) *CVHandler {
	return &CVHandler{store: store, options: options}
}

// Load returns the session user's CV: the stored row, a cached draft, or a
// fresh scaffold.
// @Summary Load own CV
// @Tags    cv
// @Produce json
// @Success 200 {object} cv.CV
// @Failure 401 {object} presenter.ErrorResponse
// @Security BearerAuth
// @Router  /cv [get]
func (h *CVHandler) Load(c *fiber.Ctx) error {
	actor := sessionActor(c)
	if actor == nil {
		return presenter.Error(c, http.StatusUnauthorized, "authentication required")
	}
	doc, err := h.store.Load(c.Context(), actor.ID, actor.Email)
	if err != nil {
		return presenter.Error(c, http.StatusInternalServerError, "failed to load cv")
	}
	return presenter.JSON(c, http.StatusOK, doc)
}

// Save persists the session user's CV. An attached base64 PDF payload is
// uploaded first; the stored row carries only the reference URL.
// @Summary Save own CV
// @Tags    cv
// @Accept  json
// @Produce json
// @Param   input body cv.CV true "cv document"
// @Success 200 {object} cv.CV
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 401 {object} presenter.ErrorResponse
// @Security BearerAuth
// @Router  /cv [put]
func (h *CVHandler) Save(c *fiber.Ctx) error {
	actor := sessionActor(c)
	if actor == nil {
		return presenter.Error(c, http.StatusUnauthorized, "authentication required")
	}
	var doc cv.CV
	if err := c.BodyParser(&doc); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	stored, err := h.store.Save(c.Context(), actor.ID, doc)
	if err != nil {
		return presenter.Error(c, http.StatusInternalServerError, "failed to save cv")
	}
	return presenter.JSON(c, http.StatusOK, stored)
}

type skillOptionsRequest struct {
	Options []string `json:"options"`
}

// SkillOptions returns the per-user custom options of one skill category
// selector.
// @Summary Get custom skill options
// @Tags    cv
// @Produce json
// @Param   category path string true "skill category"
// @Success 200 {object} map[string][]string
// @Security BearerAuth
// @Router  /cv/skill-options/{category} [get]
func (h *CVHandler) SkillOptions(c *fiber.Ctx) error {
	actor := sessionActor(c)
	if actor == nil {
		return presenter.Error(c, http.StatusUnauthorized, "authentication required")
	}
	options, err := h.options.Get(c.Context(), actor.ID, c.Params("category"))
	if err != nil {
		options = []string{}
	}
	if options == nil {
		options = []string{}
	}
	return presenter.JSON(c, http.StatusOK, fiber.Map{"options": options})
}

// SaveSkillOptions replaces the per-user custom options of one category.
// @Summary Save custom skill options
// @Tags    cv
// @Accept  json
// @Produce json
// @Param   category path string true "skill category"
// @Param   input body skillOptionsRequest true "options"
// @Success 200 {object} map[string][]string
// @Failure 400 {object} presenter.ErrorResponse
// @Security BearerAuth
// @Router  /cv/skill-options/{category} [put]
func (h *CVHandler) SaveSkillOptions(c *fiber.Ctx) error {
	actor := sessionActor(c)
	if actor == nil {
		return presenter.Error(c, http.StatusUnauthorized, "authentication required")
	}
	var req skillOptionsRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	if req.Options == nil {
		req.Options = []string{}
	}
	if err := h.options.Put(c.Context(), actor.ID, c.Params("category"), req.Options); err != nil {
		return presenter.Error(c, http.StatusInternalServerError, "failed to save options")
	}
	return presenter.JSON(c, http.StatusOK, fiber.Map{"options": req.Options})
}
