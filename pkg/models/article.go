package models

import "time"

// Article is a single news search hit. It has no identity beyond its
// position in the result list and lives for one render only.
type Article struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	URL         string    `json:"url"`
	Source      string    `json:"source,omitempty"`
	PublishedAt time.Time `json:"published_at,omitempty"`
}

// ScoredArticle is an Article with its description polarity attached.
type ScoredArticle struct {
	Article
	Polarity  float64 `json:"polarity"`
	Sentiment string  `json:"sentiment"` // "Positive", "Neutral", "Negative"
	Label     string  `json:"label"`     // emoji + display label
}
