package risk

// Factor is one named, scored piece of evidence contributing to an
// assessment. Level always mirrors Score through the classifier that
// created the factor.
type Factor struct {
	Name        string  `json:"name"`
	Value       string  `json:"value"`
	Score       float64 `json:"score"`
	Level       Level   `json:"risk_level"`
	Description string  `json:"description"`

	// Provenance, set for news-origin factors only.
	Source string `json:"source,omitempty"`
	Link   string `json:"link,omitempty"`
}

// Assessment is the aggregate result for one stage, or for the overall
// combination. Score is the mean of the factor scores rounded to two
// decimals, zero when there are no factors.
type Assessment struct {
	Factors []Factor `json:"risk_factors"`
	Score   float64  `json:"risk_score"`
	Level   Level    `json:"risk_level"`
}

// CombinedAssessment is the weighted merge of the static and news
// stages, with the stage scores and the generated insight text attached.
type CombinedAssessment struct {
	Assessment
	Insights    string  `json:"insights"`
	StaticScore float64 `json:"static_risk_score"`
	NewsScore   float64 `json:"news_risk_score"`
}
