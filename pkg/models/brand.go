package models

// DefaultBrands is the fixed list offered on the comparison page.
var DefaultBrands = []string{"Valio", "Fazer", "Arla", "Nalle", "Sunnuntai"}

// BrandValue pairs a brand with a single integer metric.
type BrandValue struct {
	Brand string `json:"brand"`
	Value int    `json:"value"`
}

// BrandSeries is one weekly series for a brand.
type BrandSeries struct {
	Brand  string `json:"brand"`
	Values []int  `json:"values"`
}

// SentimentMix holds positive/neutral/negative counts for a brand.
type SentimentMix struct {
	Brand    string `json:"brand"`
	Positive int    `json:"positive"`
	Neutral  int    `json:"neutral"`
	Negative int    `json:"negative"`
}

// Counts returns the mix in display order: positive, neutral, negative.
func (m SentimentMix) Counts() [3]int {
	return [3]int{m.Positive, m.Neutral, m.Negative}
}
