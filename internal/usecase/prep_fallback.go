package usecase

import (
	"fmt"
	"math"
	"strings"
	"unicode"

	"placementhub-backend/internal/domain"
)

var genericQuestions = []domain.InterviewQuestion{
	{Question: "Tell me about yourself and why you are interested in the %s role.", Category: "behavioral", Hint: "Keep it to two minutes: background, one highlight, why this role."},
	{Question: "Describe a project you built that is relevant to a %s position.", Category: "technical", Hint: "Cover the problem, your design choices and the measurable outcome."},
	{Question: "Tell me about a time you had to learn something quickly to finish a task.", Category: "behavioral", Hint: "Use the STAR structure: situation, task, action, result."},
	{Question: "How would you debug a feature that works locally but fails in production?", Category: "situational", Hint: "Talk about logs, reproducing the issue and narrowing the difference between environments."},
	{Question: "Describe a disagreement with a teammate and how you resolved it.", Category: "behavioral", Hint: "Focus on listening and the outcome, not on who was right."},
	{Question: "Where do you see yourself two years after joining as a %s?", Category: "behavioral", Hint: "Tie your growth to the team's goals."},
}

// skillQuestion is asked once per listed skill before the generic set.
const skillQuestion = "Explain a real problem you solved using %s and the trade-offs you considered."

func fallbackQuestions(role string, skills []string, count int) []domain.InterviewQuestion {
	out := make([]domain.InterviewQuestion, 0, count)
	for _, s := range skills {
		if len(out) == count {
			return out
		}
		out = append(out, domain.InterviewQuestion{
			Question: fmt.Sprintf(skillQuestion, s),
			Category: "technical",
			Hint:     fmt.Sprintf("Name the project, what %s did for it, and what you would change today.", s),
		})
	}
	for i := 0; len(out) < count; i++ {
		q := genericQuestions[i%len(genericQuestions)]
		if strings.Contains(q.Question, "%s") {
			q.Question = fmt.Sprintf(q.Question, role)
		}
		out = append(out, q)
	}
	return out
}

var flashcardTemplates = []domain.Flashcard{
	{Front: "What is %s?", Back: "Give a one-sentence definition of %s and the problem it solves."},
	{Front: "Name three core concepts of %s.", Back: "List the building blocks of %s and one line on each."},
	{Front: "When would you not use %s?", Back: "Describe a situation where %s is the wrong tool and what you would pick instead."},
	{Front: "What is a common mistake when working with %s?", Back: "Describe a frequent pitfall in %s and how to avoid it."},
	{Front: "How do you test code that relies on %s?", Back: "Explain how you isolate %s in tests and what you assert on."},
	{Front: "Compare %s with an alternative.", Back: "Pick one alternative to %s and contrast them on performance, complexity and ecosystem."},
	{Front: "Describe a project where you used %s.", Back: "Summarize the goal, your role and what %s contributed."},
	{Front: "What are the performance considerations of %s?", Back: "Mention the costly operations in %s and how to measure them."},
	{Front: "How does %s handle errors?", Back: "Explain the error model of %s and how failures surface."},
	{Front: "What would you study next in %s?", Back: "Name an advanced topic in %s and why it matters for the role."},
}

func fallbackFlashcards(topic string, count int) []domain.Flashcard {
	out := make([]domain.Flashcard, 0, count)
	for i := 0; len(out) < count; i++ {
		t := flashcardTemplates[i%len(flashcardTemplates)]
		front := fmt.Sprintf(t.Front, topic)
		if i >= len(flashcardTemplates) {
			front = fmt.Sprintf("%s (review %d)", front, i/len(flashcardTemplates)+1)
		}
		out = append(out, domain.Flashcard{Front: front, Back: fmt.Sprintf(t.Back, topic)})
	}
	return out
}

func fallbackRecommendations(missing []string) []domain.Recommendation {
	out := make([]domain.Recommendation, 0, len(missing))
	for _, s := range missing {
		out = append(out, domain.Recommendation{
			Skill:  s,
			Action: fmt.Sprintf("Build a small project that uses %s and add it to your resume", s),
			Resources: []string{
				fmt.Sprintf("Official %s documentation", s),
				fmt.Sprintf("Beginner to intermediate %s course", s),
				fmt.Sprintf("Practice problems on %s", s),
			},
		})
	}
	return out
}

// Heuristic scoring weights: answer length, overlap with the question, structure.
const (
	lengthWeight    = 50.0
	overlapWeight   = 30.0
	structureWeight = 20.0
	targetWords     = 120
)

var structureMarkers = []string{"for example", "for instance", "because", "result", "first", "then", "finally", "e.g"}

// heuristicEvaluation scores an answer without a model. It rewards length up
// to targetWords, reuse of the question's key terms, and explanatory markers.
func heuristicEvaluation(question, answer string) domain.AnswerEvaluation {
	words := strings.Fields(answer)
	lengthScore := math.Min(float64(len(words))/targetWords, 1) * lengthWeight

	keywords := keyTerms(question)
	answerLower := strings.ToLower(answer)
	var hits int
	for _, k := range keywords {
		if strings.Contains(answerLower, k) {
			hits++
		}
	}
	overlapScore := 0.0
	if len(keywords) > 0 {
		overlapScore = float64(hits) / float64(len(keywords)) * overlapWeight
	}

	var markers int
	for _, m := range structureMarkers {
		if strings.Contains(answerLower, m) {
			markers++
		}
	}
	structureScore := math.Min(float64(markers)/3, 1) * structureWeight

	eval := domain.AnswerEvaluation{
		Score:        math.Round(math.Min(lengthScore+overlapScore+structureScore, 100)),
		Strengths:    []string{},
		Improvements: []string{},
		Source:       domain.SourceFallback,
	}

	if len(words) >= targetWords/2 {
		eval.Strengths = append(eval.Strengths, "Answer is reasonably detailed")
	} else {
		eval.Improvements = append(eval.Improvements, "Expand your answer with more detail")
	}
	if len(keywords) > 0 && hits*2 >= len(keywords) {
		eval.Strengths = append(eval.Strengths, "Stays on the topic of the question")
	} else {
		eval.Improvements = append(eval.Improvements, "Address the key terms of the question directly")
	}
	if markers > 0 {
		eval.Strengths = append(eval.Strengths, "Explains reasoning or gives examples")
	} else {
		eval.Improvements = append(eval.Improvements, "Support your points with a concrete example")
	}

	eval.Feedback = fmt.Sprintf("Automated review: your answer scored %.0f/100. AI feedback was unavailable, so this score is based on length, relevance and structure.", eval.Score)
	return eval
}

// keyTerms returns the distinct lowercase words of s longer than three letters.
func keyTerms(s string) []string {
	seen := map[string]bool{}
	var out []string
	for _, w := range strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	}) {
		if len(w) > 3 && !seen[w] {
			seen[w] = true
			out = append(out, w)
		}
	}
	return out
}
