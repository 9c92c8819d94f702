// Package sentiment scores the polarity of short news texts and sorts
// the score into three display buckets.
package sentiment

// Category is a three-way sentiment bucket.
type Category int

const (
	Neutral Category = iota
	Positive
	Negative
)

// Categories lists the buckets in display order.
var Categories = []Category{Positive, Neutral, Negative}

// Classify buckets a polarity score. Thresholds are strict: 0.1 and -0.1
// are Neutral.
func Classify(polarity float64) Category {
	switch {
	case polarity > PositiveThreshold:
		return Positive
	case polarity < NegativeThreshold:
		return Negative
	default:
		return Neutral
	}
}

// String returns the English category name.
func (c Category) String() string {
	switch c {
	case Positive:
		return "Positive"
	case Negative:
		return "Negative"
	default:
		return "Neutral"
	}
}

// Emoji returns the fixed emoji shown next to the label.
func (c Category) Emoji() string {
	switch c {
	case Positive:
		return "😊"
	case Negative:
		return "😟"
	default:
		return "😐"
	}
}

// Label returns the Finnish display label.
func (c Category) Label() string {
	switch c {
	case Positive:
		return "Positiivinen"
	case Negative:
		return "Negatiivinen"
	default:
		return "Neutraali"
	}
}

// Short returns the abbreviated axis label used in comparison charts.
func (c Category) Short() string {
	switch c {
	case Positive:
		return "Pos"
	case Negative:
		return "Neg"
	default:
		return "Neu"
	}
}

// Display returns the emoji/label pair rendered for an article.
func (c Category) Display() string {
	return c.Emoji() + " " + c.Label()
}

// Color returns the fixed chart colour: green, gray or red.
func (c Category) Color() string {
	switch c {
	case Positive:
		return "#2ca02c"
	case Negative:
		return "#d62728"
	default:
		return "#7f7f7f"
	}
}

// Score returns the polarity of text and its category.
func Score(text string) (float64, Category) {
	p := Polarity(text)
	return p, Classify(p)
}
