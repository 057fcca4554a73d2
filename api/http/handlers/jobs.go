package handlers

import (
	"log"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/alumni-labs/bolsa/api/http/presenter"
	"github.com/alumni-labs/bolsa/pkg/application"
	"github.com/alumni-labs/bolsa/pkg/company"
	"github.com/alumni-labs/bolsa/pkg/cv"
	"github.com/alumni-labs/bolsa/pkg/job"
)

type JobHandler struct {
	jobs      job.UseCase
	companies company.UseCase
	cvs       *cv.Store
	apps      application.UseCase
}

func NewJobHandler(jobs job.UseCase, companies company.UseCase, cvs *cv.Store, apps application.UseCase) *JobHandler {
	return &JobHandler{jobs: jobs, companies: companies, cvs: cvs, apps: apps}
}

// jobResponse is a job row enriched with its company name.
type jobResponse struct {
	job.Job
	CompanyName string `json:"companyName,omitempty"`
}

func (h *JobHandler) companyNames(c *fiber.Ctx) map[uuid.UUID]string {
	names := map[uuid.UUID]string{}
	companies, err := h.companies.List(c.Context())
	if err != nil {
		// Enrichment only; listings still render without the names.
		log.Printf("jobs: company name lookup failed: %v", err)
		return names
	}
	for _, comp := range companies {
		names[comp.ID] = comp.Name
	}
	return names
}

func enrich(jobs []job.Job, names map[uuid.UUID]string) []jobResponse {
	out := make([]jobResponse, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, jobResponse{Job: j, CompanyName: names[j.CompanyID]})
	}
	return out
}

// List returns the active job listings, newest first.
// @Summary List active jobs
// @Tags    jobs
// @Produce json
// @Success 200 {array} jobResponse
// @Failure 500 {object} presenter.ErrorResponse
// @Router  /jobs [get]
func (h *JobHandler) List(c *fiber.Ctx) error {
	jobs, err := h.jobs.List(c.Context())
	if err != nil {
		return presenter.Error(c, http.StatusInternalServerError, "failed to list jobs")
	}
	return presenter.JSON(c, http.StatusOK, enrich(jobs, h.companyNames(c)))
}

// Get returns one job and counts the view.
// @Summary Get job by id
// @Tags    jobs
// @Produce json
// @Param   id path string true "job id"
// @Success 200 {object} jobResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /jobs/{id} [get]
func (h *JobHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid job id")
	}
	j, err := h.jobs.GetByID(c.Context(), id)
	if err != nil {
		if err == job.ErrNotFound {
			return presenter.Error(c, http.StatusNotFound, "job not found")
		}
		return presenter.Error(c, http.StatusInternalServerError, "failed to get job")
	}
	name := ""
	if comp, cerr := h.companies.GetByID(c.Context(), j.CompanyID); cerr == nil {
		name = comp.Name
	}
	return presenter.JSON(c, http.StatusOK, jobResponse{Job: j, CompanyName: name})
}

// Recommended ranks the active listings against the session CV. The optional
// "q" query string participates in the scoring. Without a session CV the
// first listings are returned as-is.
// @Summary Recommended jobs for the session user
// @Tags    jobs
// @Produce json
// @Param   q query string false "free-text query"
// @Success 200 {array} jobResponse
// @Failure 500 {object} presenter.ErrorResponse
// @Security BearerAuth
// @Router  /jobs/recommended [get]
func (h *JobHandler) Recommended(c *fiber.Ctx) error {
	jobs, err := h.jobs.List(c.Context())
	if err != nil {
		return presenter.Error(c, http.StatusInternalServerError, "failed to list jobs")
	}

	var doc *cv.CV
	if actor := sessionActor(c); actor != nil {
		if loaded, found, lerr := h.cvs.Find(c.Context(), actor.ID, actor.Email); lerr == nil && found {
			doc = &loaded
		}
	}

	names := h.companyNames(c)
	ranked := job.Recommend(jobs, doc, names, c.Query("q"))
	return presenter.JSON(c, http.StatusOK, enrich(ranked, names))
}

// companyJobResponse is a job row on the company dashboard, with its
// applicant count.
type companyJobResponse struct {
	job.Job
	Applicants int `json:"applicants"`
}

// ListByCompany returns every job of one company, including inactive ones,
// each with its applicant count.
// @Summary List jobs of a company
// @Tags    jobs
// @Produce json
// @Param   id path string true "company id"
// @Success 200 {array} companyJobResponse
// @Failure 400 {object} presenter.ErrorResponse
// @Router  /companies/{id}/jobs [get]
func (h *JobHandler) ListByCompany(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid company id")
	}
	jobs, err := h.jobs.ListByCompany(c.Context(), id)
	if err != nil {
		return presenter.Error(c, http.StatusInternalServerError, "failed to list jobs")
	}
	ids := make([]uuid.UUID, 0, len(jobs))
	for _, j := range jobs {
		ids = append(ids, j.ID)
	}
	counts, err := h.apps.CountByJobIDs(c.Context(), ids)
	if err != nil {
		counts = map[uuid.UUID]int{}
	}
	out := make([]companyJobResponse, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, companyJobResponse{Job: j, Applicants: counts[j.ID]})
	}
	return presenter.JSON(c, http.StatusOK, out)
}
