package risk

import "math"

// Aggregate folds scored factors into a stage assessment: mean score
// rounded to two decimals (zero when empty) classified against the
// thresholds. Factor order is preserved.
func Aggregate(classifier Classifier, factors []Factor) Assessment {
	if len(factors) == 0 {
		return Assessment{Factors: []Factor{}, Score: 0, Level: classifier.Classify(0)}
	}

	total := 0.0
	for _, f := range factors {
		total += f.Score
	}
	score := round2(total / float64(len(factors)))

	return Assessment{
		Factors: factors,
		Score:   score,
		Level:   classifier.Classify(score),
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
