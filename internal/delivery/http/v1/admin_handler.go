package v1

import (
	"net/http"
	"strings"

	"placementhub-backend/internal/delivery/http/middleware"
	"placementhub-backend/internal/delivery/http/response"
	"placementhub-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	applicationUC domain.ApplicationUsecase
	analyticsUC   domain.AnalyticsUsecase
	authUC        domain.AuthUsecase
}

func NewAdminHandler(protected *gin.RouterGroup, applicationUC domain.ApplicationUsecase, analyticsUC domain.AnalyticsUsecase, authUC domain.AuthUsecase) {
	handler := &AdminHandler{
		applicationUC: applicationUC,
		analyticsUC:   analyticsUC,
		authUC:        authUC,
	}

	admin := protected.Group("/admin")
	admin.Use(middleware.RequireRole(domain.RoleAdmin))
	{
		admin.GET("/analytics", handler.Analytics)
		admin.GET("/drives/:id/applications", handler.ListApplications)
		admin.GET("/drives/:id/applications/export", handler.ExportApplications)
		admin.PATCH("/applications/:id", handler.UpdateApplicationStatus)
		admin.PUT("/users/:id/role", handler.AssignRole)
	}
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=shortlisted selected rejected"`
}

type AssignRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=student admin"`
}

// Analytics godoc
// @Summary      Placement analytics
// @Description  Totals, status breakdowns, average readiness and placement rate
// @Tags         admin
// @Produce      json
// @Success      200  {object}  response.Response{data=domain.PlacementAnalytics}
// @Failure      403  {object}  response.Response
// @Router       /admin/analytics [get]
// @Security     BearerAuth
func (h *AdminHandler) Analytics(c *gin.Context) {
	stats, err := h.analyticsUC.GetAnalytics(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Placement analytics", stats)
}

// ListApplications godoc
// @Summary      List applications of a drive
// @Tags         admin
// @Produce      json
// @Param        id   path      int  true  "Drive ID"
// @Success      200  {object}  response.Response{data=[]domain.Application}
// @Failure      404  {object}  response.Response
// @Router       /admin/drives/{id}/applications [get]
// @Security     BearerAuth
func (h *AdminHandler) ListApplications(c *gin.Context) {
	driveID, ok := idParam(c, "id")
	if !ok {
		return
	}

	apps, err := h.applicationUC.ListByDrive(c.Request.Context(), driveID)
	if err != nil {
		c.Error(err)
		return
	}
	if apps == nil {
		apps = []domain.Application{}
	}

	response.Success(c, http.StatusOK, "Applications retrieved", apps)
}

// ExportApplications godoc
// @Summary      Export applications of a drive
// @Description  Downloads the drive's applicants as an Excel or CSV file
// @Tags         admin
// @Produce      application/octet-stream
// @Param        id      path      int     true   "Drive ID"
// @Param        format  query     string  false  "xlsx (default) or csv"
// @Success      200     {file}    file
// @Failure      400     {object}  response.Response
// @Router       /admin/drives/{id}/applications/export [get]
// @Security     BearerAuth
func (h *AdminHandler) ExportApplications(c *gin.Context) {
	driveID, ok := idParam(c, "id")
	if !ok {
		return
	}

	data, filename, err := h.applicationUC.Export(c.Request.Context(), driveID, c.Query("format"))
	if err != nil {
		c.Error(err)
		return
	}

	contentType := "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	if strings.HasSuffix(filename, ".csv") {
		contentType = "text/csv"
	}

	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, contentType, data)
}

// UpdateApplicationStatus godoc
// @Summary      Update application status
// @Description  applied → shortlisted → selected, or rejected from either
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        id       path      int                  true  "Application ID"
// @Param        request  body      UpdateStatusRequest  true  "New status"
// @Success      200      {object}  response.Response{data=domain.Application}
// @Failure      400      {object}  response.Response
// @Failure      409      {object}  response.Response
// @Router       /admin/applications/{id} [patch]
// @Security     BearerAuth
func (h *AdminHandler) UpdateApplicationStatus(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req UpdateStatusRequest
	if !bindJSON(c, &req) {
		return
	}

	app, err := h.applicationUC.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Application status updated", app)
}

// AssignRole godoc
// @Summary      Assign a user role
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        id       path      string             true  "User ID"
// @Param        request  body      AssignRoleRequest  true  "Role"
// @Success      200      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /admin/users/{id}/role [put]
// @Security     BearerAuth
func (h *AdminHandler) AssignRole(c *gin.Context) {
	var req AssignRoleRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.authUC.AssignRole(c.Request.Context(), c.Param("id"), req.Role); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Role assigned", nil)
}
