package scoring

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// Sub-score caps of the readiness composite.
const (
	MaxProfileScore  = 35.0
	MaxMockScore     = 30.0
	MaxActivityScore = 35.0
)

const (
	gpaPoints       = 5.0
	skillPoints     = 2.0
	skillTarget     = 5
	branchPoints    = 3.0
	gradYearPoints  = 3.0
	resumePoints    = 7.0
	githubPoints    = 3.0
	linkedinPoints  = 4.0
	mockPoints      = 10.0
	mockTarget      = 3
	mockBonus       = 5.0
	mockBonusFloor  = 80.0
	applyPoints     = 7.0
	applyTarget     = 5
	ApplicationDays = 30
)

// ProfileSignals are the profile fields the readiness score looks at.
type ProfileSignals struct {
	GPA            float64
	SkillsCount    int
	Branch         string
	GraduationYear int
	ResumeURL      string
	GithubURL      string
	LinkedinURL    string
}

// ReadinessInput gathers everything the aggregator needs. Related records
// that could not be read are passed as zero values.
type ReadinessInput struct {
	Profile                 ProfileSignals
	MockInterviewsCompleted int
	MockInterviewAverage    float64
	RecentApplications      int
}

type Level struct {
	Label string `json:"label"`
	Color string `json:"color"`
}

type Breakdown struct {
	ProfileCompleteness float64 `json:"profileCompleteness"`
	MockInterviews      float64 `json:"mockInterviews"`
	ApplicationActivity float64 `json:"applicationActivity"`
}

type Tip struct {
	Category string  `json:"category"`
	Tip      string  `json:"tip"`
	Impact   string  `json:"impact"`
	Points   float64 `json:"points"`
}

// Readiness is the placement readiness score (PRS) of one student.
type Readiness struct {
	ReadinessScore float64   `json:"readinessScore"`
	Level          Level     `json:"level"`
	Breakdown      Breakdown `json:"breakdown"`
	Tips           []Tip     `json:"tips"`
}

// ProfileScore is the weighted presence check of profile fields, max 35.
func ProfileScore(p ProfileSignals) float64 {
	score := 0.0
	if p.GPA > 0 {
		score += gpaPoints
	}
	score += skillPoints * float64(min(max(p.SkillsCount, 0), skillTarget))
	if present(p.Branch) {
		score += branchPoints
	}
	if p.GraduationYear > 0 {
		score += gradYearPoints
	}
	if present(p.ResumeURL) {
		score += resumePoints
	}
	if present(p.GithubURL) {
		score += githubPoints
	}
	if present(p.LinkedinURL) {
		score += linkedinPoints
	}
	return math.Min(score, MaxProfileScore)
}

// ProfileCompleteness rescales ProfileScore to a 0-100 percentage.
func ProfileCompleteness(p ProfileSignals) int {
	return int(math.Round(ProfileScore(p) / MaxProfileScore * 100))
}

// MockScore awards 10 points per completed mock interview up to three, plus
// 5 when the average is 80 or better, never above 30.
func MockScore(completed int, average float64) float64 {
	if completed <= 0 {
		return 0
	}
	score := mockPoints * float64(min(completed, mockTarget))
	if average >= mockBonusFloor {
		score += mockBonus
	}
	return math.Min(score, MaxMockScore)
}

// ActivityScore awards 7 points per application in the trailing 30 days, up to five.
func ActivityScore(recent int) float64 {
	return applyPoints * float64(min(max(recent, 0), applyTarget))
}

// LevelFor maps a composite score to its label.
func LevelFor(score float64) Level {
	switch {
	case score >= 85:
		return Level{Label: "Elite", Color: "purple"}
	case score >= 70:
		return Level{Label: "Highly Ready", Color: "green"}
	case score >= 55:
		return Level{Label: "Ready", Color: "blue"}
	case score >= 40:
		return Level{Label: "Almost There", Color: "yellow"}
	default:
		return Level{Label: "Getting Started", Color: "gray"}
	}
}

// ComputeReadiness sums the three capped sub-scores and derives level and tips.
func ComputeReadiness(in ReadinessInput) Readiness {
	b := Breakdown{
		ProfileCompleteness: ProfileScore(in.Profile),
		MockInterviews:      MockScore(in.MockInterviewsCompleted, in.MockInterviewAverage),
		ApplicationActivity: ActivityScore(in.RecentApplications),
	}
	total := clamp(b.ProfileCompleteness+b.MockInterviews+b.ApplicationActivity, 0, 100)

	return Readiness{
		ReadinessScore: total,
		Level:          LevelFor(total),
		Breakdown:      b,
		Tips:           tipsFor(in, b),
	}
}

func tipsFor(in ReadinessInput, b Breakdown) []Tip {
	tips := []Tip{}
	add := func(category, text string, points float64) {
		if points > 0 {
			tips = append(tips, Tip{Category: category, Tip: text, Impact: impactOf(points), Points: points})
		}
	}

	p := in.Profile
	if p.GPA <= 0 {
		add("Profile", "Add your GPA to your profile", gpaPoints)
	}
	if n := min(max(p.SkillsCount, 0), skillTarget); n < skillTarget {
		add("Profile", fmt.Sprintf("Add %d more skill(s) to your profile", skillTarget-n), skillPoints*float64(skillTarget-n))
	}
	if !present(p.Branch) {
		add("Profile", "Add your branch", branchPoints)
	}
	if p.GraduationYear <= 0 {
		add("Profile", "Add your graduation year", gradYearPoints)
	}
	if !present(p.ResumeURL) {
		add("Profile", "Upload your resume", resumePoints)
	}
	if !present(p.GithubURL) {
		add("Profile", "Link your GitHub profile", githubPoints)
	}
	if !present(p.LinkedinURL) {
		add("Profile", "Link your LinkedIn profile", linkedinPoints)
	}

	if in.MockInterviewsCompleted < mockTarget {
		add("Mock Interviews",
			fmt.Sprintf("Complete %d more mock interview(s)", mockTarget-max(in.MockInterviewsCompleted, 0)),
			MaxMockScore-b.MockInterviews)
		if in.MockInterviewsCompleted > 0 && in.MockInterviewAverage < mockBonusFloor {
			add("Mock Interviews", "Raise your mock interview average to 80 or above", mockBonus)
		}
	}

	if in.RecentApplications < applyTarget {
		add("Applications",
			fmt.Sprintf("Apply to %d more drive(s) in the next %d days", applyTarget-max(in.RecentApplications, 0), ApplicationDays),
			MaxActivityScore-b.ApplicationActivity)
	}

	sort.SliceStable(tips, func(i, j int) bool { return tips[i].Points > tips[j].Points })
	return tips
}

func impactOf(points float64) string {
	switch {
	case points >= 7:
		return "high"
	case points >= 4:
		return "medium"
	default:
		return "low"
	}
}

func present(s string) bool {
	return strings.TrimSpace(s) != ""
}
