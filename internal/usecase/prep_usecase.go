package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"placementhub-backend/internal/domain"
	"placementhub-backend/internal/scoring"
	"placementhub-backend/pkg/apperror"
	"placementhub-backend/pkg/gemini"
	"placementhub-backend/pkg/logger"
)

const (
	defaultQuestionCount  = 5
	defaultFlashcardCount = 10
	defaultDifficulty     = "medium"
	historyLimit          = 50
)

type prepUsecase struct {
	generator   domain.TextGenerator
	cache       domain.PrepCache
	cacheTTL    time.Duration
	mockRepo    domain.MockInterviewRepository
	studentRepo domain.StudentRepository
	driveRepo   domain.DriveRepository
}

func NewPrepUsecase(
	generator domain.TextGenerator,
	cache domain.PrepCache,
	cacheTTL time.Duration,
	mockRepo domain.MockInterviewRepository,
	studentRepo domain.StudentRepository,
	driveRepo domain.DriveRepository,
) domain.PrepUsecase {
	return &prepUsecase{
		generator:   generator,
		cache:       cache,
		cacheTTL:    cacheTTL,
		mockRepo:    mockRepo,
		studentRepo: studentRepo,
		driveRepo:   driveRepo,
	}
}

// Questions returns practice interview questions for a role, falling back to
// a static set when generation fails.
func (u *prepUsecase) Questions(ctx context.Context, req domain.QuestionsRequest) (*domain.QuestionSet, error) {
	req.Role = strings.TrimSpace(req.Role)
	if req.Count <= 0 {
		req.Count = defaultQuestionCount
	}
	if req.Difficulty == "" {
		req.Difficulty = defaultDifficulty
	}
	skills := dedupeSkills(req.Skills)

	key := cacheKey("questions", req.Role, strings.Join(skills, ","), req.Difficulty, fmt.Sprint(req.Count))
	set := &domain.QuestionSet{Role: req.Role}
	if u.fromCache(ctx, key, &set.Questions) {
		set.Source = domain.SourceCache
		return set, nil
	}

	prompt := fmt.Sprintf(`You are a technical interviewer preparing a campus placement candidate.
Role: %s
Candidate skills: %s
Difficulty: %s
Return JSON {"questions":[{"question":"...","category":"technical|behavioral|situational","hint":"..."}]} with exactly %d questions.`,
		req.Role, joinOrNone(skills), req.Difficulty, req.Count)

	var payload struct {
		Questions []domain.InterviewQuestion `json:"questions"`
	}
	err := u.generate(ctx, prompt, &payload)
	if err == nil {
		payload.Questions = cleanQuestions(payload.Questions, req.Count)
		if len(payload.Questions) == 0 {
			err = errors.New("no usable questions in reply")
		}
	}
	if err != nil {
		logger.Log.Warn("Prep: serving fallback questions", "role", req.Role, "error", err)
		set.Questions = fallbackQuestions(req.Role, skills, req.Count)
		set.Source = domain.SourceFallback
		return set, nil
	}

	set.Questions = payload.Questions
	set.Source = domain.SourceAI
	u.toCache(ctx, key, set.Questions)
	return set, nil
}

// Evaluate scores one answer and records it as a completed mock interview.
func (u *prepUsecase) Evaluate(ctx context.Context, userID string, req domain.EvaluateRequest) (*domain.AnswerEvaluation, error) {
	prompt := fmt.Sprintf(`You are evaluating a mock interview answer for the role of %s.
Question: %s
Answer: %s
Score the answer from 0 to 100 and return JSON {"score":0,"feedback":"...","strengths":["..."],"improvements":["..."]}.`,
		strings.TrimSpace(req.Role), strings.TrimSpace(req.Question), strings.TrimSpace(req.Answer))

	var eval domain.AnswerEvaluation
	if err := u.generate(ctx, prompt, &eval); err != nil || strings.TrimSpace(eval.Feedback) == "" {
		if err == nil {
			err = errors.New("empty feedback in reply")
		}
		logger.Log.Warn("Prep: serving heuristic evaluation", "user_id", userID, "error", err)
		eval = heuristicEvaluation(req.Question, req.Answer)
	} else {
		eval.Score = math.Round(math.Min(math.Max(eval.Score, 0), 100))
		eval.Strengths = nonNil(eval.Strengths)
		eval.Improvements = nonNil(eval.Improvements)
		eval.Source = domain.SourceAI
	}

	interview := &domain.MockInterview{
		StudentUserID: userID,
		Role:          strings.TrimSpace(req.Role),
		Question:      strings.TrimSpace(req.Question),
		Answer:        strings.TrimSpace(req.Answer),
		Score:         eval.Score,
		Feedback:      eval.Feedback,
		Completed:     true,
	}
	if err := u.mockRepo.Create(ctx, interview); err != nil {
		return nil, apperror.Internal(err)
	}

	eval.MockInterviewID = interview.ID
	return &eval, nil
}

func (u *prepUsecase) History(ctx context.Context, userID string) ([]domain.MockInterview, error) {
	return u.mockRepo.ListByUserID(ctx, userID, historyLimit)
}

// Flashcards returns a revision deck for a topic, cached per topic and size.
func (u *prepUsecase) Flashcards(ctx context.Context, req domain.FlashcardsRequest) (*domain.FlashcardDeck, error) {
	req.Topic = strings.TrimSpace(req.Topic)
	if req.Count <= 0 {
		req.Count = defaultFlashcardCount
	}

	key := cacheKey("flashcards", req.Topic, fmt.Sprint(req.Count))
	deck := &domain.FlashcardDeck{Topic: req.Topic}
	if u.fromCache(ctx, key, &deck.Flashcards) {
		deck.Source = domain.SourceCache
		return deck, nil
	}

	prompt := fmt.Sprintf(`Create %d concise revision flashcards about %s for a placement interview.
Return JSON {"flashcards":[{"front":"question or term","back":"short answer"}]}.`, req.Count, req.Topic)

	var payload struct {
		Flashcards []domain.Flashcard `json:"flashcards"`
	}
	err := u.generate(ctx, prompt, &payload)
	if err == nil {
		payload.Flashcards = cleanFlashcards(payload.Flashcards, req.Count)
		if len(payload.Flashcards) == 0 {
			err = errors.New("no usable flashcards in reply")
		}
	}
	if err != nil {
		logger.Log.Warn("Prep: serving fallback flashcards", "topic", req.Topic, "error", err)
		deck.Flashcards = fallbackFlashcards(req.Topic, req.Count)
		deck.Source = domain.SourceFallback
		return deck, nil
	}

	deck.Flashcards = payload.Flashcards
	deck.Source = domain.SourceAI
	u.toCache(ctx, key, deck.Flashcards)
	return deck, nil
}

// SkillGap compares the caller's profile with a drive and suggests how to
// close each missing skill. The match and distance are always computed locally.
func (u *prepUsecase) SkillGap(ctx context.Context, userID string, req domain.SkillGapRequest) (*domain.SkillGapReport, error) {
	drive, err := u.driveRepo.GetByID(ctx, req.DriveID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Drive not found")
		}
		return nil, err
	}
	if _, role := domain.Caller(ctx); role != domain.RoleAdmin && drive.Status == domain.DriveStatusDraft {
		return nil, apperror.NotFound("Drive not found")
	}

	profile, err := u.studentRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	var skills []string
	var gpa float64
	if profile != nil {
		skills, gpa = profile.Skills, profile.GPA
	}

	report := &domain.SkillGapReport{
		DriveID: drive.ID,
		Match: scoring.Suitability(scoring.SuitabilityInput{
			Skills:          skills,
			GPA:             gpa,
			RequiredSkills:  drive.RequiredSkills,
			PreferredSkills: drive.PreferredSkills,
			GPAMin:          drive.MinGPA,
		}),
		Distance: scoring.Distance(scoring.DistanceInput{
			StudentSkills:   skills,
			StudentGPA:      gpa,
			RequiredSkills:  drive.RequiredSkills,
			PreferredSkills: drive.PreferredSkills,
			MinGPA:          drive.MinGPA,
		}),
		Recommendations: []domain.Recommendation{},
		Source:          domain.SourceFallback,
	}

	missing := report.Match.MissingSkills
	if len(missing) == 0 {
		return report, nil
	}

	key := cacheKey("skillgap", strconv.FormatInt(drive.ID, 10), strings.Join(missing, ","))
	if u.fromCache(ctx, key, &report.Recommendations) {
		report.Source = domain.SourceCache
		return report, nil
	}

	prompt := fmt.Sprintf(`A student preparing for the %s role at %s is missing these skills: %s.
For each skill suggest one concrete action and up to three learning resources.
Return JSON {"recommendations":[{"skill":"...","action":"...","resources":["..."]}]}.`,
		drive.Title, drive.CompanyName, strings.Join(missing, ", "))

	var payload struct {
		Recommendations []domain.Recommendation `json:"recommendations"`
	}
	err = u.generate(ctx, prompt, &payload)
	if err == nil && len(payload.Recommendations) == 0 {
		err = errors.New("no recommendations in reply")
	}
	if err != nil {
		logger.Log.Warn("Prep: serving fallback recommendations", "drive_id", drive.ID, "error", err)
		report.Recommendations = fallbackRecommendations(missing)
		return report, nil
	}

	for i := range payload.Recommendations {
		payload.Recommendations[i].Resources = nonNil(payload.Recommendations[i].Resources)
	}
	report.Recommendations = payload.Recommendations
	report.Source = domain.SourceAI
	u.toCache(ctx, key, report.Recommendations)
	return report, nil
}

// generate runs the prompt and decodes the JSON part of the reply into v.
func (u *prepUsecase) generate(ctx context.Context, prompt string, v any) error {
	if u.generator == nil {
		return gemini.ErrNotConfigured
	}
	raw, err := u.generator.Generate(ctx, prompt)
	if err != nil {
		return err
	}
	if err := gemini.DecodeJSON(raw, v); err != nil {
		logger.Log.Debug("Prep: undecodable reply", "reply", logger.Truncate(raw, 500))
		return err
	}
	return nil
}

func (u *prepUsecase) fromCache(ctx context.Context, key string, v any) bool {
	if u.cache == nil {
		return false
	}
	data, ok, err := u.cache.Get(ctx, key)
	if err != nil {
		logger.Log.Warn("Prep: cache read failed", "key", key, "error", err)
		return false
	}
	if !ok {
		return false
	}
	if err := json.Unmarshal(data, v); err != nil {
		logger.Log.Warn("Prep: cache entry corrupt", "key", key, "error", err)
		return false
	}
	return true
}

func (u *prepUsecase) toCache(ctx context.Context, key string, v any) {
	if u.cache == nil {
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := u.cache.Set(ctx, key, data, u.cacheTTL); err != nil {
		logger.Log.Warn("Prep: cache write failed", "key", key, "error", err)
	}
}

// cacheKey hashes the case-folded parts so keys stay short and free of user text.
func cacheKey(kind string, parts ...string) string {
	h := sha256.New()
	for _, p := range parts {
		h.Write([]byte(strings.ToLower(strings.TrimSpace(p))))
		h.Write([]byte{0x1f})
	}
	return kind + ":" + hex.EncodeToString(h.Sum(nil))[:32]
}

func cleanQuestions(in []domain.InterviewQuestion, limit int) []domain.InterviewQuestion {
	out := make([]domain.InterviewQuestion, 0, len(in))
	for _, q := range in {
		q.Question = strings.TrimSpace(q.Question)
		if q.Question == "" {
			continue
		}
		if q.Category == "" {
			q.Category = "technical"
		}
		out = append(out, q)
		if len(out) == limit {
			break
		}
	}
	return out
}

func cleanFlashcards(in []domain.Flashcard, limit int) []domain.Flashcard {
	out := make([]domain.Flashcard, 0, len(in))
	for _, f := range in {
		f.Front, f.Back = strings.TrimSpace(f.Front), strings.TrimSpace(f.Back)
		if f.Front == "" || f.Back == "" {
			continue
		}
		out = append(out, f)
		if len(out) == limit {
			break
		}
	}
	return out
}

func joinOrNone(items []string) string {
	if len(items) == 0 {
		return "not specified"
	}
	return strings.Join(items, ", ")
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
