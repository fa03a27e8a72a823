package v1

import (
	"net/http"

	"placementhub-backend/internal/delivery/http/middleware"
	"placementhub-backend/internal/delivery/http/response"
	"placementhub-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type PrepHandler struct {
	prepUC domain.PrepUsecase
}

// NewPrepHandler mounts the interview prep routes. Routes that reach the
// model share the per-user AI rate limit.
func NewPrepHandler(protected *gin.RouterGroup, prepUC domain.PrepUsecase, aiLimit middleware.RateLimitConfig) {
	handler := &PrepHandler{prepUC: prepUC}

	limited := middleware.RateLimitMiddleware(aiLimit)

	prep := protected.Group("/prep")
	prep.Use(middleware.RequireRole(domain.RoleStudent))
	{
		prep.POST("/mock-interview/questions", limited, handler.Questions)
		prep.POST("/mock-interview/evaluate", limited, handler.Evaluate)
		prep.GET("/mock-interviews", handler.History)
		prep.POST("/flashcards", limited, handler.Flashcards)
		prep.POST("/skill-gap", limited, handler.SkillGap)
	}
}

// Questions godoc
// @Summary      Mock interview questions
// @Description  Generated questions for a role, or a static set when generation is unavailable
// @Tags         prep
// @Accept       json
// @Produce      json
// @Param        request  body      domain.QuestionsRequest  true  "Role and skills"
// @Success      200      {object}  response.Response{data=domain.QuestionSet}
// @Failure      400      {object}  response.Response
// @Failure      429      {object}  response.Response
// @Router       /prep/mock-interview/questions [post]
// @Security     BearerAuth
func (h *PrepHandler) Questions(c *gin.Context) {
	var req domain.QuestionsRequest
	if !bindJSON(c, &req) {
		return
	}

	set, err := h.prepUC.Questions(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Interview questions", set)
}

// Evaluate godoc
// @Summary      Evaluate a mock interview answer
// @Description  Scores the answer and records it as a completed mock interview
// @Tags         prep
// @Accept       json
// @Produce      json
// @Param        request  body      domain.EvaluateRequest  true  "Question and answer"
// @Success      200      {object}  response.Response{data=domain.AnswerEvaluation}
// @Failure      400      {object}  response.Response
// @Router       /prep/mock-interview/evaluate [post]
// @Security     BearerAuth
func (h *PrepHandler) Evaluate(c *gin.Context) {
	var req domain.EvaluateRequest
	if !bindJSON(c, &req) {
		return
	}

	eval, err := h.prepUC.Evaluate(c.Request.Context(), c.GetString(string(domain.KeyUserID)), req)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Answer evaluated", eval)
}

// History godoc
// @Summary      My mock interviews
// @Tags         prep
// @Produce      json
// @Success      200  {object}  response.Response{data=[]domain.MockInterview}
// @Router       /prep/mock-interviews [get]
// @Security     BearerAuth
func (h *PrepHandler) History(c *gin.Context) {
	history, err := h.prepUC.History(c.Request.Context(), c.GetString(string(domain.KeyUserID)))
	if err != nil {
		c.Error(err)
		return
	}
	if history == nil {
		history = []domain.MockInterview{}
	}

	response.Success(c, http.StatusOK, "Mock interview history", history)
}

// Flashcards godoc
// @Summary      Flashcards for a topic
// @Tags         prep
// @Accept       json
// @Produce      json
// @Param        request  body      domain.FlashcardsRequest  true  "Topic"
// @Success      200      {object}  response.Response{data=domain.FlashcardDeck}
// @Failure      400      {object}  response.Response
// @Router       /prep/flashcards [post]
// @Security     BearerAuth
func (h *PrepHandler) Flashcards(c *gin.Context) {
	var req domain.FlashcardsRequest
	if !bindJSON(c, &req) {
		return
	}

	deck, err := h.prepUC.Flashcards(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Flashcards", deck)
}

// SkillGap godoc
// @Summary      Skill gap against a drive
// @Description  Deterministic match and distance plus study recommendations for the missing skills
// @Tags         prep
// @Accept       json
// @Produce      json
// @Param        request  body      domain.SkillGapRequest  true  "Drive"
// @Success      200      {object}  response.Response{data=domain.SkillGapReport}
// @Failure      404      {object}  response.Response
// @Router       /prep/skill-gap [post]
// @Security     BearerAuth
func (h *PrepHandler) SkillGap(c *gin.Context) {
	var req domain.SkillGapRequest
	if !bindJSON(c, &req) {
		return
	}

	report, err := h.prepUC.SkillGap(c.Request.Context(), c.GetString(string(domain.KeyUserID)), req)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Skill gap report", report)
}
