package v1

import (
	"net/http"

	"placementhub-backend/internal/delivery/http/middleware"
	"placementhub-backend/internal/delivery/http/response"
	"placementhub-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type StudentHandler struct {
	studentUC     domain.StudentUsecase
	applicationUC domain.ApplicationUsecase
	scoringUC     domain.ScoringUsecase
}

func NewStudentHandler(protected *gin.RouterGroup, studentUC domain.StudentUsecase, applicationUC domain.ApplicationUsecase, scoringUC domain.ScoringUsecase) {
	handler := &StudentHandler{
		studentUC:     studentUC,
		applicationUC: applicationUC,
		scoringUC:     scoringUC,
	}

	students := protected.Group("/students/me")
	students.Use(middleware.RequireRole(domain.RoleStudent))
	{
		students.GET("", handler.GetProfile)
		students.PUT("", handler.UpdateProfile)
		students.GET("/applications", handler.MyApplications)
		students.GET("/drives/:id/match", handler.MatchDrive)
	}
}

// UpdateProfileRequest carries the editable profile fields. Completeness and
// readiness are computed server side.
type UpdateProfileRequest struct {
	FullName       string   `json:"full_name" binding:"required"`
	GPA            float64  `json:"gpa"`
	Branch         string   `json:"branch"`
	GraduationYear int      `json:"graduation_year"`
	Skills         []string `json:"skills"`
	ResumeURL      string   `json:"resume_url"`
	GithubURL      string   `json:"github_url"`
	LinkedinURL    string   `json:"linkedin_url"`
}

// GetProfile godoc
// @Summary      Get my profile
// @Tags         students
// @Produce      json
// @Success      200  {object}  response.Response{data=domain.StudentProfile}
// @Failure      404  {object}  response.Response
// @Router       /students/me [get]
// @Security     BearerAuth
func (h *StudentHandler) GetProfile(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	profile, err := h.studentUC.GetProfile(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Profile retrieved", profile)
}

// UpdateProfile godoc
// @Summary      Create or update my profile
// @Description  Saves the profile and recomputes its completeness
// @Tags         students
// @Accept       json
// @Produce      json
// @Param        profile  body      UpdateProfileRequest  true  "Profile"
// @Success      200      {object}  response.Response{data=domain.StudentProfile}
// @Failure      400      {object}  response.Response
// @Router       /students/me [put]
// @Security     BearerAuth
func (h *StudentHandler) UpdateProfile(c *gin.Context) {
	var req UpdateProfileRequest
	if !bindJSON(c, &req) {
		return
	}

	profile := &domain.StudentProfile{
		UserID:         c.GetString(string(domain.KeyUserID)),
		FullName:       req.FullName,
		GPA:            req.GPA,
		Branch:         req.Branch,
		GraduationYear: req.GraduationYear,
		Skills:         req.Skills,
		ResumeURL:      req.ResumeURL,
		GithubURL:      req.GithubURL,
		LinkedinURL:    req.LinkedinURL,
	}

	updated, err := h.studentUC.UpdateProfile(c.Request.Context(), profile)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Profile updated", updated)
}

// MyApplications godoc
// @Summary      List my applications
// @Tags         students
// @Produce      json
// @Success      200  {object}  response.Response{data=[]domain.Application}
// @Router       /students/me/applications [get]
// @Security     BearerAuth
func (h *StudentHandler) MyApplications(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	apps, err := h.applicationUC.GetMyApplications(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}
	if apps == nil {
		apps = []domain.Application{}
	}

	response.Success(c, http.StatusOK, "Applications retrieved", apps)
}

// MatchDrive godoc
// @Summary      Match my profile against a drive
// @Tags         students
// @Produce      json
// @Param        id   path      int  true  "Drive ID"
// @Success      200  {object}  response.Response{data=scoring.MatchResult}
// @Failure      404  {object}  response.Response
// @Router       /students/me/drives/{id}/match [get]
// @Security     BearerAuth
func (h *StudentHandler) MatchDrive(c *gin.Context) {
	driveID, ok := idParam(c, "id")
	if !ok {
		return
	}

	result, err := h.scoringUC.MatchDrive(c.Request.Context(), c.GetString(string(domain.KeyUserID)), driveID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Match computed", result)
}
