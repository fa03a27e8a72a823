package v1

import (
	"net/http"
	"strconv"
	"time"

	"placementhub-backend/internal/delivery/http/middleware"
	"placementhub-backend/internal/delivery/http/response"
	"placementhub-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type DriveHandler struct {
	driveUC       domain.DriveUsecase
	applicationUC domain.ApplicationUsecase
}

func NewDriveHandler(protected *gin.RouterGroup, driveUC domain.DriveUsecase, applicationUC domain.ApplicationUsecase) {
	handler := &DriveHandler{driveUC: driveUC, applicationUC: applicationUC}

	admin := middleware.RequireRole(domain.RoleAdmin)

	drives := protected.Group("/drives")
	{
		drives.GET("", handler.List)
		drives.GET("/:id", handler.GetDetails)
		drives.GET("/:id/shadow-profile", handler.ShadowProfile)
		drives.POST("/:id/apply", middleware.RequireRole(domain.RoleStudent), handler.Apply)

		drives.POST("", admin, handler.Create)
		drives.PUT("/:id", admin, handler.Update)
		drives.DELETE("/:id", admin, handler.Delete)
	}
}

type DriveRequest struct {
	CompanyName      string     `json:"company_name" binding:"required,min=2,max=120"`
	Title            string     `json:"title" binding:"required,min=2,max=160"`
	Description      string     `json:"description" binding:"max=10000"`
	RequiredSkills   []string   `json:"required_skills" binding:"omitempty,skill_list"`
	PreferredSkills  []string   `json:"preferred_skills" binding:"omitempty,skill_list"`
	MinGPA           float64    `json:"min_gpa" binding:"gpa"`
	SalaryMin        *float64   `json:"salary_min" binding:"omitempty,gte=0"`
	SalaryMax        *float64   `json:"salary_max" binding:"omitempty,gte=0"`
	Location         string     `json:"location" binding:"max=120"`
	EligibleBranches []string   `json:"eligible_branches" binding:"omitempty,max=30"`
	DriveDate        *time.Time `json:"drive_date"`
	Deadline         *time.Time `json:"deadline"`
	Status           string     `json:"status" binding:"omitempty,oneof=draft published closed"`
}

func (r DriveRequest) toDrive() *domain.Drive {
	return &domain.Drive{
		CompanyName:      r.CompanyName,
		Title:            r.Title,
		Description:      r.Description,
		RequiredSkills:   r.RequiredSkills,
		PreferredSkills:  r.PreferredSkills,
		MinGPA:           r.MinGPA,
		SalaryMin:        r.SalaryMin,
		SalaryMax:        r.SalaryMax,
		Location:         r.Location,
		EligibleBranches: r.EligibleBranches,
		DriveDate:        r.DriveDate,
		Deadline:         r.Deadline,
		Status:           r.Status,
	}
}

type ApplyRequest struct {
	CoverNote string `json:"cover_note" binding:"max=2000"`
}

// ListDrives godoc
// @Summary      List drives
// @Description  Students only see published drives; admins may filter by status
// @Tags         drives
// @Produce      json
// @Param        page       query     int     false  "Page number"
// @Param        page_size  query     int     false  "Page size (max 100)"
// @Param        status     query     string  false  "draft, published or closed (admin)"
// @Success      200        {object}  response.Response{data=domain.PaginatedResult[domain.Drive]}
// @Router       /drives [get]
// @Security     BearerAuth
func (h *DriveHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))

	result, err := h.driveUC.ListDrives(c.Request.Context(), c.Query("status"), page, pageSize)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Drive list", result)
}

// GetDrive godoc
// @Summary      Get drive details
// @Tags         drives
// @Produce      json
// @Param        id   path      int  true  "Drive ID"
// @Success      200  {object}  response.Response{data=domain.Drive}
// @Failure      404  {object}  response.Response
// @Router       /drives/{id} [get]
// @Security     BearerAuth
func (h *DriveHandler) GetDetails(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	drive, err := h.driveUC.GetDrive(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Drive details", drive)
}

// CreateDrive godoc
// @Summary      Create a drive
// @Description  Admin only. Status defaults to draft.
// @Tags         drives
// @Accept       json
// @Produce      json
// @Param        drive  body      DriveRequest  true  "Drive"
// @Success      201    {object}  response.Response{data=domain.Drive}
// @Failure      400    {object}  response.Response
// @Failure      403    {object}  response.Response
// @Router       /drives [post]
// @Security     BearerAuth
func (h *DriveHandler) Create(c *gin.Context) {
	var req DriveRequest
	if !bindJSON(c, &req) {
		return
	}

	drive := req.toDrive()
	if err := h.driveUC.CreateDrive(c.Request.Context(), drive); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Drive created", drive)
}

// UpdateDrive godoc
// @Summary      Update a drive
// @Tags         drives
// @Accept       json
// @Produce      json
// @Param        id     path      int           true  "Drive ID"
// @Param        drive  body      DriveRequest  true  "Drive"
// @Success      200    {object}  response.Response{data=domain.Drive}
// @Failure      400    {object}  response.Response
// @Failure      404    {object}  response.Response
// @Router       /drives/{id} [put]
// @Security     BearerAuth
func (h *DriveHandler) Update(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req DriveRequest
	if !bindJSON(c, &req) {
		return
	}

	drive := req.toDrive()
	drive.ID = id
	if err := h.driveUC.UpdateDrive(c.Request.Context(), drive); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Drive updated", drive)
}

// DeleteDrive godoc
// @Summary      Delete a drive
// @Tags         drives
// @Produce      json
// @Param        id   path      int  true  "Drive ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /drives/{id} [delete]
// @Security     BearerAuth
func (h *DriveHandler) Delete(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	if err := h.driveUC.DeleteDrive(c.Request.Context(), id); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Drive deleted", nil)
}

// Apply godoc
// @Summary      Apply to a drive
// @Description  Requires a published drive before its deadline, the GPA floor and an eligible branch
// @Tags         drives
// @Accept       json
// @Produce      json
// @Param        id       path      int           true   "Drive ID"
// @Param        request  body      ApplyRequest  false  "Cover note"
// @Success      201      {object}  response.Response{data=domain.Application}
// @Failure      400      {object}  response.Response
// @Failure      403      {object}  response.Response
// @Failure      409      {object}  response.Response
// @Router       /drives/{id}/apply [post]
// @Security     BearerAuth
func (h *DriveHandler) Apply(c *gin.Context) {
	driveID, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req ApplyRequest
	if !bindOptionalJSON(c, &req) {
		return
	}

	app, err := h.applicationUC.Apply(c.Request.Context(), c.GetString(string(domain.KeyUserID)), driveID, req.CoverNote)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Application submitted", app)
}

// ShadowProfile godoc
// @Summary      Shadow profile of a drive
// @Description  Anonymized statistics of students selected in drives sharing required skills
// @Tags         drives
// @Produce      json
// @Param        id   path      int  true  "Drive ID"
// @Success      200  {object}  response.Response{data=domain.ShadowProfile}
// @Failure      404  {object}  response.Response
// @Router       /drives/{id}/shadow-profile [get]
// @Security     BearerAuth
func (h *DriveHandler) ShadowProfile(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	profile, err := h.driveUC.ShadowProfile(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Shadow profile", profile)
}
