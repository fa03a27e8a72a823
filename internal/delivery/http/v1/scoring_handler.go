package v1

import (
	"net/http"

	"placementhub-backend/internal/delivery/http/middleware"
	"placementhub-backend/internal/delivery/http/response"
	"placementhub-backend/internal/domain"
	"placementhub-backend/internal/scoring"

	"github.com/gin-gonic/gin"
)

// The four scoring endpoints answer with bare JSON bodies; only their errors
// go through the envelope.
type ScoringHandler struct {
	scoringUC domain.ScoringUsecase
}

func NewScoringHandler(public *gin.RouterGroup, protected *gin.RouterGroup, scoringUC domain.ScoringUsecase) {
	handler := &ScoringHandler{scoringUC: scoringUC}

	public.POST("/suitability", handler.Suitability)
	public.POST("/distance-to-dream", handler.DistanceToDream)

	protected.GET("/readiness", handler.Readiness)
	protected.POST("/forecast", middleware.RequireRole(domain.RoleAdmin), handler.Forecast)
}

type SuitabilityRequest struct {
	Skills          []string `json:"skills"`
	GPA             float64  `json:"gpa"`
	RequiredSkills  []string `json:"required_skills"`
	PreferredSkills []string `json:"preferred_skills"`
	GPAMin          float64  `json:"gpa_min"`
}

type DistanceRequest struct {
	StudentSkills   []string `json:"studentSkills"`
	StudentGPA      float64  `json:"studentGPA"`
	RequiredSkills  []string `json:"requiredSkills"`
	PreferredSkills []string `json:"preferredSkills"`
	MinGPA          float64  `json:"minGPA"`
}

type DistanceResponse struct {
	Distance float64 `json:"distance"`
}

// Suitability godoc
// @Summary      Suitability score
// @Description  Scores a student's skills and GPA against a drive's requirements
// @Tags         scoring
// @Accept       json
// @Produce      json
// @Param        request  body      SuitabilityRequest  true  "Student and requirements"
// @Success      200      {object}  scoring.MatchResult
// @Failure      400      {object}  response.Response
// @Router       /suitability [post]
func (h *ScoringHandler) Suitability(c *gin.Context) {
	var req SuitabilityRequest
	if !bindJSON(c, &req) {
		return
	}

	result := h.scoringUC.Suitability(scoring.SuitabilityInput{
		Skills:          req.Skills,
		GPA:             req.GPA,
		RequiredSkills:  req.RequiredSkills,
		PreferredSkills: req.PreferredSkills,
		GPAMin:          req.GPAMin,
	})
	response.Contract(c, http.StatusOK, result)
}

// DistanceToDream godoc
// @Summary      Distance to dream
// @Description  How far a student is from a drive: 0 is ready, 100 is far
// @Tags         scoring
// @Accept       json
// @Produce      json
// @Param        request  body      DistanceRequest  true  "Student and requirements"
// @Success      200      {object}  DistanceResponse
// @Failure      400      {object}  response.Response
// @Router       /distance-to-dream [post]
func (h *ScoringHandler) DistanceToDream(c *gin.Context) {
	var req DistanceRequest
	if !bindJSON(c, &req) {
		return
	}

	distance := h.scoringUC.DistanceToDream(scoring.DistanceInput{
		StudentSkills:   req.StudentSkills,
		StudentGPA:      req.StudentGPA,
		RequiredSkills:  req.RequiredSkills,
		PreferredSkills: req.PreferredSkills,
		MinGPA:          req.MinGPA,
	})
	response.Contract(c, http.StatusOK, DistanceResponse{Distance: distance})
}

// Readiness godoc
// @Summary      Placement readiness score
// @Description  Recomputes the readiness score and stores it as the latest snapshot. Defaults to the caller.
// @Tags         scoring
// @Produce      json
// @Param        studentId  query     string  false  "Student user id (admin only for other students)"
// @Success      200        {object}  scoring.Readiness
// @Failure      400        {object}  response.Response
// @Failure      403        {object}  response.Response
// @Router       /readiness [get]
// @Security     BearerAuth
func (h *ScoringHandler) Readiness(c *gin.Context) {
	result, err := h.scoringUC.Readiness(c.Request.Context(), c.Query("studentId"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Contract(c, http.StatusOK, result)
}

// Forecast godoc
// @Summary      Eligibility forecast
// @Description  Simulates eligibility from total_students, or counts real students when it is omitted
// @Tags         scoring
// @Accept       json
// @Produce      json
// @Param        request  body      domain.ForecastRequest  true  "Forecast parameters"
// @Success      200      {object}  domain.ForecastResult
// @Failure      400      {object}  response.Response
// @Failure      403      {object}  response.Response
// @Router       /forecast [post]
// @Security     BearerAuth
func (h *ScoringHandler) Forecast(c *gin.Context) {
	var req domain.ForecastRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.scoringUC.Forecast(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}
	response.Contract(c, http.StatusOK, result)
}
