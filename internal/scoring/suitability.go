package scoring

const (
	suitabilityGPAPoints       = 20
	suitabilityRequiredPoints  = 10
	suitabilityPreferredPoints = 5
)

// SuitabilityInput is a student's skills and GPA against one drive's requirements.
type SuitabilityInput struct {
	Skills          []string `json:"skills"`
	GPA             float64  `json:"gpa"`
	RequiredSkills  []string `json:"required_skills"`
	PreferredSkills []string `json:"preferred_skills"`
	GPAMin          float64  `json:"gpa_min"`
}

// MatchResult is the outcome of a suitability check. It is derived on demand
// and never persisted.
type MatchResult struct {
	Score         float64  `json:"score"`
	MatchedSkills []string `json:"matchedSkills"`
	MissingSkills []string `json:"missingSkills"`
}

// Suitability awards 20 points for meeting the GPA floor, 10 per required
// skill present and 5 per preferred skill present, clipped to [0,100].
// Unmatched required skills come first in MissingSkills, then unmatched
// preferred ones.
func Suitability(in SuitabilityInput) MatchResult {
	skills := normalizeSkills(in.Skills)
	reqMatched, reqMissing := coverage(skills, in.RequiredSkills)
	prefMatched, prefMissing := coverage(skills, in.PreferredSkills)

	score := 0.0
	if in.GPA >= in.GPAMin {
		score += suitabilityGPAPoints
	}
	score += float64(len(reqMatched) * suitabilityRequiredPoints)
	score += float64(len(prefMatched) * suitabilityPreferredPoints)

	return MatchResult{
		Score:         clamp(score, 0, 100),
		MatchedSkills: append(append([]string{}, reqMatched...), prefMatched...),
		MissingSkills: append(append([]string{}, reqMissing...), prefMissing...),
	}
}
