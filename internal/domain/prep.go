package domain

import (
	"context"
	"time"

	"placementhub-backend/internal/scoring"
)

// Sources of prep content
const (
	SourceAI       = "ai"
	SourceCache    = "cache"
	SourceFallback = "fallback"
)

// TextGenerator is the generative-text capability: prompt in, raw text out.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// PrepCache stores generated prep content. A miss is (nil, false, nil).
type PrepCache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

type QuestionsRequest struct {
	Role       string   `json:"role" binding:"required,min=2,max=80"`
	Skills     []string `json:"skills" binding:"omitempty,skill_list"`
	Difficulty string   `json:"difficulty" binding:"omitempty,oneof=easy medium hard"`
	Count      int      `json:"count" binding:"omitempty,gte=1,lte=15"`
}

type InterviewQuestion struct {
	Question string `json:"question"`
	Category string `json:"category"`
	Hint     string `json:"hint"`
}

type QuestionSet struct {
	Role      string              `json:"role"`
	Questions []InterviewQuestion `json:"questions"`
	Source    string              `json:"source"`
}

type EvaluateRequest struct {
	Role     string `json:"role" binding:"required,min=2,max=80"`
	Question string `json:"question" binding:"required,min=5,max=1000"`
	Answer   string `json:"answer" binding:"required,min=1,max=5000"`
}

type AnswerEvaluation struct {
	MockInterviewID int64    `json:"mockInterviewId"`
	Score           float64  `json:"score"`
	Feedback        string   `json:"feedback"`
	Strengths       []string `json:"strengths"`
	Improvements    []string `json:"improvements"`
	Source          string   `json:"source"`
}

type FlashcardsRequest struct {
	Topic string `json:"topic" binding:"required,min=2,max=80"`
	Count int    `json:"count" binding:"omitempty,gte=1,lte=30"`
}

type Flashcard struct {
	Front string `json:"front"`
	Back  string `json:"back"`
}

type FlashcardDeck struct {
	Topic      string      `json:"topic"`
	Flashcards []Flashcard `json:"flashcards"`
	Source     string      `json:"source"`
}

type SkillGapRequest struct {
	DriveID int64 `json:"drive_id" binding:"required,gt=0"`
}

type Recommendation struct {
	Skill     string   `json:"skill"`
	Action    string   `json:"action"`
	Resources []string `json:"resources"`
}

type SkillGapReport struct {
	DriveID         int64               `json:"driveId"`
	Match           scoring.MatchResult `json:"match"`
	Distance        float64             `json:"distance"`
	Recommendations []Recommendation    `json:"recommendations"`
	Source          string              `json:"source"`
}

type PrepUsecase interface {
	Questions(ctx context.Context, req QuestionsRequest) (*QuestionSet, error)
	Evaluate(ctx context.Context, userID string, req EvaluateRequest) (*AnswerEvaluation, error)
	History(ctx context.Context, userID string) ([]MockInterview, error)
	Flashcards(ctx context.Context, req FlashcardsRequest) (*FlashcardDeck, error)
	SkillGap(ctx context.Context, userID string, req SkillGapRequest) (*SkillGapReport, error)
}
