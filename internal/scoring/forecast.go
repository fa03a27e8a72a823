package scoring

import "math"

// ForecastRatio is the fixed-bucket share of a batch assumed eligible for a
// given GPA floor. It is a stand-in simulation policy, not a measurement.
func ForecastRatio(gpaMin float64) float64 {
	switch {
	case gpaMin >= 8.0:
		return 0.30
	case gpaMin >= 7.0:
		return 0.50
	case gpaMin >= 6.0:
		return 0.70
	default:
		return 0.85
	}
}

// ForecastEligible returns floor(total × ForecastRatio(gpaMin)).
func ForecastEligible(gpaMin float64, total int) int {
	if total <= 0 {
		return 0
	}
	// epsilon absorbs float error such as 150*0.3 = 44.999...
	return int(math.Floor(float64(total)*ForecastRatio(gpaMin) + 1e-9))
}
