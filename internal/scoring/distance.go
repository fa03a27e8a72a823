package scoring

import "math"

// Coefficients of the distance-to-dream formula. Fixtures depend on the
// exact values.
const (
	distanceSkillWeight     = 0.7
	distanceGPABonus        = 20.0
	distanceGPAGapFactor    = 0.3
	distanceGPAPenaltyCap   = 20.0
	distancePreferredWeight = 10.0
)

// DistanceInput mirrors the distance-to-dream request body.
type DistanceInput struct {
	StudentSkills   []string `json:"studentSkills"`
	StudentGPA      float64  `json:"studentGPA"`
	RequiredSkills  []string `json:"requiredSkills"`
	PreferredSkills []string `json:"preferredSkills"`
	MinGPA          float64  `json:"minGPA"`
}

// Distance expresses how far a student is from a drive: 0 means ready,
// 100 means far. It is the gap framing of the same ratios Suitability uses.
func Distance(in DistanceInput) float64 {
	skills := normalizeSkills(in.StudentSkills)
	reqMatched, reqMissing := coverage(skills, in.RequiredSkills)
	prefMatched, prefMissing := coverage(skills, in.PreferredSkills)

	reqRatio := ratio(len(reqMatched), len(reqMatched)+len(reqMissing))
	d := 100 - distanceSkillWeight*(reqRatio*100)

	if in.StudentGPA >= in.MinGPA {
		d -= distanceGPABonus
	} else if in.MinGPA > 0 {
		gapPct := (in.MinGPA - in.StudentGPA) / in.MinGPA * 100
		d += math.Min(distanceGPAGapFactor*gapPct, distanceGPAPenaltyCap)
	}

	prefRatio := ratio(len(prefMatched), len(prefMatched)+len(prefMissing))
	d -= distancePreferredWeight * prefRatio

	return clamp(d, 0, 100)
}
