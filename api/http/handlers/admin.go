package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/alumni-labs/bolsa/api/http/presenter"
	"github.com/alumni-labs/bolsa/pkg/admin"
	"github.com/alumni-labs/bolsa/pkg/application"
	"github.com/alumni-labs/bolsa/pkg/auth"
	"github.com/alumni-labs/bolsa/pkg/company"
	"github.com/alumni-labs/bolsa/pkg/job"
	"github.com/alumni-labs/bolsa/pkg/mailer"
	"github.com/alumni-labs/bolsa/pkg/profile"
)

// AdminHandler serves the admin proxy endpoints. Every response uses the
// uniform {ok, error?} envelope so the frontend handles all outcomes the
// same way.
type AdminHandler struct {
	useCase   admin.UseCase
	jobs      job.Repository
	companies company.Repository
	apps      application.UseCase
	mail      mailer.Sender
	links     *mailer.LinkBuilder
	validate  *validator.Validate
}

func NewAdminHandler(
	useCase admin.UseCase,
	jobs job.Repository,
	companies company.Repository,
	apps application.UseCase,
	mail mailer.Sender,
	links *mailer.LinkBuilder,
) *AdminHandler {
	return &AdminHandler{
		useCase:   useCase,
		jobs:      jobs,
		companies: companies,
		apps:      apps,
		mail:      mail,
		links:     links,
		validate:  validator.New(),
	}
}

type createJobRequest struct {
	Title         string `json:"title" validate:"required"`
	Description   string `json:"description" validate:"required"`
	Area          string `json:"area" validate:"required"`
	Location      string `json:"location" validate:"required"`
	ExperienceMin *int   `json:"experience_min" validate:"required,gte=0"`
	SalaryMin     *int   `json:"salary_min"`
	SalaryMax     *int   `json:"salary_max"`
	Modality      string `json:"modality" validate:"required"`
	CompanyID     string `json:"company_id" validate:"required,uuid"`
	IsActive      *bool  `json:"is_active"`
}

// CreateJob validates and inserts a job listing.
// @Summary Create job (admin)
// @Tags    admin
// @Accept  json
// @Produce json
// @Param   input body createJobRequest true "job payload"
// @Success 200 {object} presenter.AdminResponse
// @Failure 400 {object} presenter.AdminResponse
// @Security AdminToken
// @Router  /admin/create-job [post]
func (h *AdminHandler) CreateJob(c *fiber.Ctx) error {
	var req createJobRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.AdminFail(c, http.StatusBadRequest, "JSON inválido")
	}
	if err := h.validate.Struct(req); err != nil {
		return presenter.AdminFail(c, http.StatusBadRequest, "faltan campos obligatorios")
	}
	modality := job.Modality(req.Modality)
	if !modality.Valid() {
		return presenter.AdminFail(c, http.StatusBadRequest, "modality inválida")
	}
	companyID, err := uuid.Parse(req.CompanyID)
	if err != nil {
		return presenter.AdminFail(c, http.StatusBadRequest, "company_id inválido")
	}
	var salary *job.SalaryRange
	if req.SalaryMin != nil && req.SalaryMax != nil {
		if *req.SalaryMin > *req.SalaryMax {
			return presenter.AdminFail(c, http.StatusBadRequest, "rango salarial inválido")
		}
		salary = &job.SalaryRange{Min: *req.SalaryMin, Max: *req.SalaryMax}
	}
	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	id, err := h.jobs.Create(c.Context(), job.Job{
		ID:            uuid.New(),
		Title:         req.Title,
		Description:   req.Description,
		Area:          req.Area,
		Location:      req.Location,
		ExperienceMin: *req.ExperienceMin,
		Salary:        salary,
		Modality:      modality,
		CompanyID:     companyID,
		CreatedAt:     time.Now().UTC(),
		IsActive:      active,
	})
	if err != nil {
		log.Printf("admin: create-job failed: %v", err)
		return presenter.AdminFail(c, http.StatusInternalServerError, "Fallo inesperado")
	}
	return presenter.AdminOK(c, fiber.Map{"id": id.String()})
}

type updateJobRequest struct {
	JobID         string  `json:"job_id" validate:"required"`
	Title         *string `json:"title"`
	Description   *string `json:"description"`
	Area          *string `json:"area"`
	Location      *string `json:"location"`
	ExperienceMin *int    `json:"experience_min"`
	SalaryMin     *int    `json:"salary_min"`
	SalaryMax     *int    `json:"salary_max"`
	Modality      *string `json:"modality"`
	IsActive      *bool   `json:"is_active"`
}

// UpdateJob applies a partial change to a job listing.
// @Summary Update job (admin)
// @Tags    admin
// @Accept  json
// @Produce json
// @Param   input body updateJobRequest true "partial job payload"
// @Success 200 {object} presenter.AdminResponse
// @Failure 400 {object} presenter.AdminResponse
// @Security AdminToken
// @Router  /admin/update-job [post]
func (h *AdminHandler) UpdateJob(c *fiber.Ctx) error {
	var req updateJobRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.AdminFail(c, http.StatusBadRequest, "JSON inválido")
	}
	if req.JobID == "" {
		return presenter.AdminFail(c, http.StatusBadRequest, "job_id requerido")
	}
	id, err := uuid.Parse(req.JobID)
	if err != nil {
		return presenter.AdminFail(c, http.StatusBadRequest, "job_id inválido")
	}
	u := job.Update{
		Title:         req.Title,
		Description:   req.Description,
		Area:          req.Area,
		Location:      req.Location,
		ExperienceMin: req.ExperienceMin,
		SalaryMin:     req.SalaryMin,
		SalaryMax:     req.SalaryMax,
		IsActive:      req.IsActive,
	}
	if req.Modality != nil {
		modality := job.Modality(*req.Modality)
		if !modality.Valid() {
			return presenter.AdminFail(c, http.StatusBadRequest, "modality inválida")
		}
		u.Modality = &modality
	}
	if u.Empty() {
		return presenter.AdminFail(c, http.StatusBadRequest, "nada que actualizar")
	}
	if err := h.jobs.Update(c.Context(), id, u); err != nil {
		if err == job.ErrNotFound {
			return presenter.AdminFail(c, http.StatusNotFound, "aviso no encontrado")
		}
		log.Printf("admin: update-job failed: %v", err)
		return presenter.AdminFail(c, http.StatusInternalServerError, "Fallo inesperado")
	}
	return presenter.AdminOK(c, nil)
}

type userTargetRequest struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
}

func (h *AdminHandler) resolveTarget(c *fiber.Ctx, req userTargetRequest) (uuid.UUID, bool) {
	if req.UserID == "" && req.Email == "" {
		_ = presenter.AdminFail(c, http.StatusBadRequest, "user_id o email requerido")
		return uuid.Nil, false
	}
	id, err := h.useCase.ResolveUser(c.Context(), req.UserID, req.Email)
	if err != nil {
		_ = presenter.AdminFail(c, http.StatusNotFound, "usuario no encontrado")
		return uuid.Nil, false
	}
	return id, true
}

// AuthorizeUser marks the target account's email as confirmed.
// @Summary Authorize user (admin)
// @Tags    admin
// @Accept  json
// @Produce json
// @Param   input body userTargetRequest true "target"
// @Success 200 {object} presenter.AdminResponse
// @Failure 404 {object} presenter.AdminResponse
// @Security AdminToken
// @Router  /admin/authorize-user [post]
func (h *AdminHandler) AuthorizeUser(c *fiber.Ctx) error {
	var req userTargetRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.AdminFail(c, http.StatusBadRequest, "JSON inválido")
	}
	id, ok := h.resolveTarget(c, req)
	if !ok {
		return nil
	}
	if err := h.useCase.AuthorizeUser(c.Context(), id); err != nil {
		log.Printf("admin: authorize-user failed: %v", err)
		return presenter.AdminFail(c, http.StatusInternalServerError, "Fallo inesperado")
	}
	return presenter.AdminOK(c, fiber.Map{"user_id": id.String()})
}

// DeleteUser removes the target account and everything hanging off it.
// @Summary Delete user (admin)
// @Tags    admin
// @Accept  json
// @Produce json
// @Param   input body userTargetRequest true "target"
// @Success 200 {object} presenter.AdminResponse
// @Failure 404 {object} presenter.AdminResponse
// @Security AdminToken
// @Router  /admin/delete-user [post]
func (h *AdminHandler) DeleteUser(c *fiber.Ctx) error {
	var req userTargetRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.AdminFail(c, http.StatusBadRequest, "JSON inválido")
	}
	id, ok := h.resolveTarget(c, req)
	if !ok {
		return nil
	}
	if err := h.useCase.DeleteUser(c.Context(), id); err != nil {
		log.Printf("admin: delete-user failed: %v", err)
		return presenter.AdminFail(c, http.StatusInternalServerError, "Fallo inesperado")
	}
	return presenter.AdminOK(c, fiber.Map{"user_id": id.String()})
}

// SearchUsers lists accounts joined with their profiles.
// @Summary Search users (admin)
// @Tags    admin
// @Produce json
// @Param   email query string false "email substring"
// @Param   role query string false "exact role"
// @Param   university query string false "university substring"
// @Param   limit query int false "max results (clamped to 50)"
// @Success 200 {object} presenter.AdminResponse
// @Security AdminToken
// @Router  /admin/search-users [get]
func (h *AdminHandler) SearchUsers(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit"))
	users, err := h.useCase.SearchUsers(c.Context(), admin.SearchQuery{
		Email:      c.Query("email"),
		Role:       c.Query("role"),
		University: c.Query("university"),
		Limit:      limit,
	})
	if err != nil {
		log.Printf("admin: search-users failed: %v", err)
		return presenter.AdminFail(c, http.StatusInternalServerError, "Fallo inesperado")
	}
	if users == nil {
		users = []admin.UserSummary{}
	}
	return presenter.AdminOK(c, fiber.Map{"users": users})
}

type updateProfileRequest struct {
	userTargetRequest
	FirstName       *string `json:"first_name"`
	LastName        *string `json:"last_name"`
	University      *string `json:"university"`
	Role            *string `json:"role"`
	CompanyVerified *bool   `json:"company_verified"`
	ProfileImageURL *string `json:"profile_image_url"`
}

// UpdateProfile applies a partial change to a profile row, mirroring a role
// change into the auth account.
// @Summary Update profile (admin)
// @Tags    admin
// @Accept  json
// @Produce json
// @Param   input body updateProfileRequest true "partial profile payload"
// @Success 200 {object} presenter.AdminResponse
// @Failure 400 {object} presenter.AdminResponse
// @Security AdminToken
// @Router  /admin/update-profile [post]
func (h *AdminHandler) UpdateProfile(c *fiber.Ctx) error {
	var req updateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.AdminFail(c, http.StatusBadRequest, "JSON inválido")
	}
	id, ok := h.resolveTarget(c, req.userTargetRequest)
	if !ok {
		return nil
	}
	u := profile.Update{
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		University:      req.University,
		CompanyVerified: req.CompanyVerified,
		ProfileImageURL: req.ProfileImageURL,
	}
	if req.Role != nil {
		role := profile.Role(*req.Role)
		if !role.Valid() {
			return presenter.AdminFail(c, http.StatusBadRequest, "rol inválido")
		}
		u.Role = &role
	}
	if u.Empty() {
		return presenter.AdminFail(c, http.StatusBadRequest, "nada que actualizar")
	}
	if err := h.useCase.UpdateProfile(c.Context(), id, u); err != nil {
		if err == profile.ErrNotFound {
			return presenter.AdminFail(c, http.StatusNotFound, "perfil no encontrado")
		}
		log.Printf("admin: update-profile failed: %v", err)
		return presenter.AdminFail(c, http.StatusInternalServerError, "Fallo inesperado")
	}
	return presenter.AdminOK(c, fiber.Map{"user_id": id.String()})
}

type createUserRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"required"`
	Name     string `json:"name"`
}

// CreateUser provisions an account directly, already email-confirmed.
// @Summary Create user (admin)
// @Tags    admin
// @Accept  json
// @Produce json
// @Param   input body createUserRequest true "user payload"
// @Success 200 {object} presenter.AdminResponse
// @Failure 400 {object} presenter.AdminResponse
// @Security AdminToken
// @Router  /admin/create-user [post]
func (h *AdminHandler) CreateUser(c *fiber.Ctx) error {
	var req createUserRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.AdminFail(c, http.StatusBadRequest, "JSON inválido")
	}
	if err := h.validate.Struct(req); err != nil {
		return presenter.AdminFail(c, http.StatusBadRequest, "faltan campos obligatorios")
	}
	role := profile.Role(req.Role)
	if !role.Valid() {
		return presenter.AdminFail(c, http.StatusBadRequest, "rol inválido")
	}
	id, err := h.useCase.CreateUser(c.Context(), req.Email, req.Password, role, req.Name)
	if err != nil {
		if err == auth.ErrUserAlreadyExists {
			return presenter.AdminFail(c, http.StatusConflict, "el usuario ya existe")
		}
		log.Printf("admin: create-user failed: %v", err)
		return presenter.AdminFail(c, http.StatusInternalServerError, "Fallo inesperado")
	}
	return presenter.AdminOK(c, fiber.Map{"user_id": id.String()})
}

type resetPasswordRequest struct {
	userTargetRequest
	NewPassword string `json:"new_password" validate:"required,min=6"`
}

// ResetPassword replaces the target account's password.
// @Summary Reset password (admin)
// @Tags    admin
// @Accept  json
// @Produce json
// @Param   input body resetPasswordRequest true "target + new password"
// @Success 200 {object} presenter.AdminResponse
// @Failure 400 {object} presenter.AdminResponse
// @Security AdminToken
// @Router  /admin/reset-password [post]
func (h *AdminHandler) ResetPassword(c *fiber.Ctx) error {
	var req resetPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.AdminFail(c, http.StatusBadRequest, "JSON inválido")
	}
	if err := h.validate.Struct(req); err != nil {
		return presenter.AdminFail(c, http.StatusBadRequest, "contraseña inválida")
	}
	id, ok := h.resolveTarget(c, req.userTargetRequest)
	if !ok {
		return nil
	}
	if err := h.useCase.ResetPassword(c.Context(), id, req.NewPassword); err != nil {
		log.Printf("admin: reset-password failed: %v", err)
		return presenter.AdminFail(c, http.StatusInternalServerError, "Fallo inesperado")
	}
	return presenter.AdminOK(c, fiber.Map{"user_id": id.String()})
}

type sendAuthLinkRequest struct {
	Email      string `json:"email" validate:"required,email"`
	Type       string `json:"type" validate:"required"`
	RedirectTo string `json:"redirect_to"`
}

// SendAuthLink mints a signed action link and mails it to the target.
// @Summary Send auth action link (admin)
// @Tags    admin
// @Accept  json
// @Produce json
// @Param   input body sendAuthLinkRequest true "link request"
// @Success 200 {object} presenter.AdminResponse
// @Failure 400 {object} presenter.AdminResponse
// @Security AdminToken
// @Router  /admin/send-auth-link [post]
func (h *AdminHandler) SendAuthLink(c *fiber.Ctx) error {
	var req sendAuthLinkRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.AdminFail(c, http.StatusBadRequest, "JSON inválido")
	}
	if err := h.validate.Struct(req); err != nil {
		return presenter.AdminFail(c, http.StatusBadRequest, "faltan campos obligatorios")
	}
	if !mailer.ValidLinkType(req.Type) {
		return presenter.AdminFail(c, http.StatusBadRequest, "tipo de enlace inválido")
	}
	link, err := h.links.Build(req.Type, req.Email, req.RedirectTo)
	if err != nil {
		log.Printf("admin: send-auth-link build failed: %v", err)
		return presenter.AdminFail(c, http.StatusInternalServerError, "Fallo inesperado")
	}
	html := "<p>Usa este enlace para continuar: <a href=\"" + link + "\">" + link + "</a></p>"
	if _, err := h.mail.Send(c.Context(), []string{req.Email}, "Enlace de acceso", html, link); err != nil {
		if err == mailer.ErrNotConfigured {
			return presenter.AdminFail(c, http.StatusServiceUnavailable, "correo no configurado")
		}
		log.Printf("admin: send-auth-link mail failed: %v", err)
		return presenter.AdminFail(c, http.StatusInternalServerError, "Fallo inesperado")
	}
	return presenter.AdminOK(c, nil)
}

// recipientList accepts either a single address or a list of addresses.
type recipientList []string

func (r *recipientList) UnmarshalJSON(data []byte) error {
	var one string
	if err := json.Unmarshal(data, &one); err == nil {
		*r = recipientList{one}
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return err
	}
	*r = recipientList(many)
	return nil
}

type sendEmailRequest struct {
	To      recipientList `json:"to" validate:"required,min=1"`
	Subject string        `json:"subject" validate:"required"`
	HTML    string        `json:"html"`
	Text    string        `json:"text"`
}

// SendEmail delivers an arbitrary email through the configured provider.
// @Summary Send email (admin)
// @Tags    admin
// @Accept  json
// @Produce json
// @Param   input body sendEmailRequest true "email payload"
// @Success 200 {object} presenter.AdminResponse
// @Failure 400 {object} presenter.AdminResponse
// @Security AdminToken
// @Router  /admin/send-email [post]
func (h *AdminHandler) SendEmail(c *fiber.Ctx) error {
	var req sendEmailRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.AdminFail(c, http.StatusBadRequest, "JSON inválido")
	}
	if err := h.validate.Struct(req); err != nil {
		return presenter.AdminFail(c, http.StatusBadRequest, "faltan campos obligatorios")
	}
	if req.HTML == "" && req.Text == "" {
		return presenter.AdminFail(c, http.StatusBadRequest, "html o text requerido")
	}
	id, err := h.mail.Send(c.Context(), []string(req.To), req.Subject, req.HTML, req.Text)
	if err != nil {
		if err == mailer.ErrNotConfigured {
			return presenter.AdminFail(c, http.StatusServiceUnavailable, "correo no configurado")
		}
		log.Printf("admin: send-email failed: %v", err)
		return presenter.AdminFail(c, http.StatusInternalServerError, "Fallo inesperado")
	}
	return presenter.AdminOK(c, fiber.Map{"message_id": id})
}

type verifyCompanyRequest struct {
	CompanyID string `json:"company_id" validate:"required"`
	Verified  *bool  `json:"verified"`
	Suspended *bool  `json:"suspended"`
}

// ModerateCompany toggles a company's verified or suspended flags.
// @Summary Verify or suspend a company (admin)
// @Tags    admin
// @Accept  json
// @Produce json
// @Param   input body verifyCompanyRequest true "moderation payload"
// @Success 200 {object} presenter.AdminResponse
// @Failure 400 {object} presenter.AdminResponse
// @Security AdminToken
// @Router  /admin/moderate-company [post]
func (h *AdminHandler) ModerateCompany(c *fiber.Ctx) error {
	var req verifyCompanyRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.AdminFail(c, http.StatusBadRequest, "JSON inválido")
	}
	id, err := uuid.Parse(req.CompanyID)
	if err != nil {
		return presenter.AdminFail(c, http.StatusBadRequest, "company_id inválido")
	}
	if req.Verified == nil && req.Suspended == nil {
		return presenter.AdminFail(c, http.StatusBadRequest, "nada que actualizar")
	}
	if req.Verified != nil {
		if err := h.companies.SetVerified(c.Context(), id, *req.Verified); err != nil {
			log.Printf("admin: moderate-company failed: %v", err)
			return presenter.AdminFail(c, http.StatusInternalServerError, "Fallo inesperado")
		}
	}
	if req.Suspended != nil {
		if err := h.companies.SetSuspended(c.Context(), id, *req.Suspended); err != nil {
			log.Printf("admin: moderate-company failed: %v", err)
			return presenter.AdminFail(c, http.StatusInternalServerError, "Fallo inesperado")
		}
	}
	return presenter.AdminOK(c, nil)
}

type createCompanyRequest struct {
	OwnerID       string `json:"owner_id"`
	Name          string `json:"name" validate:"required"`
	LogoURL       string `json:"logo_url"`
	Website       string `json:"website"`
	Description   string `json:"description"`
	Email         string `json:"email"`
	LegalName     string `json:"legal_name"`
	Industry      string `json:"industry"`
	HRContactName string `json:"hr_contact_name"`
	ContactPhone  string `json:"contact_phone"`
}

// CreateCompany registers a company record.
// @Summary Create company (admin)
// @Tags    admin
// @Accept  json
// @Produce json
// @Param   input body createCompanyRequest true "company payload"
// @Success 200 {object} presenter.AdminResponse
// @Failure 400 {object} presenter.AdminResponse
// @Security AdminToken
// @Router  /admin/create-company [post]
func (h *AdminHandler) CreateCompany(c *fiber.Ctx) error {
	var req createCompanyRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.AdminFail(c, http.StatusBadRequest, "JSON inválido")
	}
	if err := h.validate.Struct(req); err != nil {
		return presenter.AdminFail(c, http.StatusBadRequest, "faltan campos obligatorios")
	}
	var ownerID uuid.UUID
	if req.OwnerID != "" {
		var err error
		if ownerID, err = uuid.Parse(req.OwnerID); err != nil {
			return presenter.AdminFail(c, http.StatusBadRequest, "owner_id inválido")
		}
	}
	comp := company.Company{
		ID:            uuid.New(),
		OwnerID:       ownerID,
		Name:          req.Name,
		LogoURL:       req.LogoURL,
		Website:       req.Website,
		Description:   req.Description,
		Email:         req.Email,
		LegalName:     req.LegalName,
		Industry:      req.Industry,
		HRContactName: req.HRContactName,
		ContactPhone:  req.ContactPhone,
	}
	if err := h.companies.Create(c.Context(), comp); err != nil {
		log.Printf("admin: create-company failed: %v", err)
		return presenter.AdminFail(c, http.StatusInternalServerError, "Fallo inesperado")
	}
	return presenter.AdminOK(c, fiber.Map{"id": comp.ID.String()})
}

type updateApplicationRequest struct {
	ID     string `json:"id" validate:"required"`
	Status string `json:"status" validate:"required"`
}

// UpdateApplication moves one application to a new status.
// @Summary Update application status (admin)
// @Tags    admin
// @Accept  json
// @Produce json
// @Param   input body updateApplicationRequest true "status change"
// @Success 200 {object} presenter.AdminResponse
// @Failure 400 {object} presenter.AdminResponse
// @Security AdminToken
// @Router  /admin/update-application [post]
func (h *AdminHandler) UpdateApplication(c *fiber.Ctx) error {
	var req updateApplicationRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.AdminFail(c, http.StatusBadRequest, "JSON inválido")
	}
	id, err := uuid.Parse(req.ID)
	if err != nil {
		return presenter.AdminFail(c, http.StatusBadRequest, "id inválido")
	}
	if err := h.apps.UpdateStatus(c.Context(), id, application.Status(req.Status)); err != nil {
		if verr, ok := err.(application.ErrValidation); ok {
			return presenter.AdminFail(c, http.StatusBadRequest, verr.Error())
		}
		if err == application.ErrNotFound {
			return presenter.AdminFail(c, http.StatusNotFound, "postulación no encontrada")
		}
		log.Printf("admin: update-application failed: %v", err)
		return presenter.AdminFail(c, http.StatusInternalServerError, "Fallo inesperado")
	}
	return presenter.AdminOK(c, nil)
}

type logRequest struct {
	ActorID  string         `json:"actorId" validate:"required"`
	Action   string         `json:"action" validate:"required"`
	Entity   string         `json:"entity" validate:"required"`
	EntityID string         `json:"entityId"`
	Details  map[string]any `json:"details"`
}

// Log appends one moderation audit entry.
// @Summary Append audit log entry (admin)
// @Tags    admin
// @Accept  json
// @Produce json
// @Param   input body logRequest true "audit entry"
// @Success 200 {object} presenter.AdminResponse
// @Failure 400 {object} presenter.AdminResponse
// @Security AdminToken
// @Router  /admin/log [post]
func (h *AdminHandler) Log(c *fiber.Ctx) error {
	var req logRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.AdminFail(c, http.StatusBadRequest, "JSON inválido")
	}
	if err := h.validate.Struct(req); err != nil {
		return presenter.AdminFail(c, http.StatusBadRequest, "faltan campos obligatorios")
	}
	err := h.useCase.Log(c.Context(), admin.AuditEntry{
		ActorID:  req.ActorID,
		Action:   req.Action,
		Entity:   req.Entity,
		EntityID: req.EntityID,
		Details:  req.Details,
	})
	if err != nil {
		log.Printf("admin: log append failed: %v", err)
		return presenter.AdminFail(c, http.StatusInternalServerError, "Fallo inesperado")
	}
	return presenter.AdminOK(c, nil)
}
