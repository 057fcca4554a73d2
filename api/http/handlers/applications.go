package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/alumni-labs/bolsa/api/http/presenter"
	"github.com/alumni-labs/bolsa/pkg/application"
	"github.com/alumni-labs/bolsa/pkg/job"
)

type ApplicationHandler struct {
	gate    *application.Gate
	useCase application.UseCase
	jobs    job.UseCase
}

func NewApplicationHandler(gate *application.Gate, useCase application.UseCase, jobs job.UseCase) *ApplicationHandler {
	return &ApplicationHandler{gate: gate, useCase: useCase, jobs: jobs}
}

// Apply runs the gated apply workflow for one job. The response always
// carries the gate result; blocked outcomes are 200s because the request
// itself succeeded.
// @Summary Apply to a job
// @Tags    applications
// @Produce json
// @Param   id path string true "job id"
// @Success 200 {object} application.Result
// @Failure 400 {object} presenter.ErrorResponse
// @Security BearerAuth
// @Router  /jobs/{id}/apply [post]
func (h *ApplicationHandler) Apply(c *fiber.Ctx) error {
	jobID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid job id")
	}
	result, err := h.gate.Apply(c.Context(), sessionActor(c), jobID)
	if err != nil {
		// The result already names the failure; surface both.
		return presenter.JSON(c, http.StatusInternalServerError, result)
	}
	return presenter.JSON(c, http.StatusOK, result)
}

// applicationResponse is one row of the student's application list, with the
// job it points at resolved inline.
type applicationResponse struct {
	application.Application
	Job *job.Job `json:"job,omitempty"`
}

// Mine lists the session student's applications, newest first, each joined
// with its job.
// @Summary List own applications
// @Tags    applications
// @Produce json
// @Success 200 {array} applicationResponse
// @Failure 401 {object} presenter.ErrorResponse
// @Security BearerAuth
// @Router  /applications/mine [get]
func (h *ApplicationHandler) Mine(c *fiber.Ctx) error {
	actor := sessionActor(c)
	if actor == nil {
		return presenter.Error(c, http.StatusUnauthorized, "authentication required")
	}
	apps, err := h.useCase.ListByStudent(c.Context(), actor.ID)
	if err != nil {
		return presenter.Error(c, http.StatusInternalServerError, "failed to list applications")
	}

	ids := make([]uuid.UUID, 0, len(apps))
	for _, a := range apps {
		ids = append(ids, a.JobID)
	}
	byID := map[uuid.UUID]job.Job{}
	if jobs, jerr := h.jobs.ListByIDs(c.Context(), ids); jerr == nil {
		for _, j := range jobs {
			byID[j.ID] = j
		}
	}

	out := make([]applicationResponse, 0, len(apps))
	for _, a := range apps {
		row := applicationResponse{Application: a}
		if j, ok := byID[a.JobID]; ok {
			row.Job = &j
		}
		out = append(out, row)
	}
	return presenter.JSON(c, http.StatusOK, out)
}

// HasApplied reports whether the session student already applied to the job.
// @Summary Check if already applied
// @Tags    applications
// @Produce json
// @Param   id path string true "job id"
// @Success 200 {object} map[string]bool
// @Failure 400 {object} presenter.ErrorResponse
// @Security BearerAuth
// @Router  /jobs/{id}/applied [get]
func (h *ApplicationHandler) HasApplied(c *fiber.Ctx) error {
	actor := sessionActor(c)
	if actor == nil {
		return presenter.Error(c, http.StatusUnauthorized, "authentication required")
	}
	jobID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid job id")
	}
	applied, err := h.useCase.HasApplied(c.Context(), jobID, actor.ID)
	if err != nil {
		return presenter.Error(c, http.StatusInternalServerError, "failed to check application")
	}
	return presenter.JSON(c, http.StatusOK, fiber.Map{"applied": applied})
}
