package sentiment

import (
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// ------------------------------------------------------------------
// Lexicon-based polarity scorer (offline, deterministic).
// Polarity is the mean of the matched word polarities, each scaled by a
// preceding intensifier and flipped by a preceding negator.
// ------------------------------------------------------------------

// Classification thresholds. Values exactly on a threshold are Neutral.
const (
	PositiveThreshold = 0.1
	NegativeThreshold = -0.1
)

// negationFactor matches the usual pattern-lexicon treatment of "not good"
// as mildly negative rather than the exact opposite.
const negationFactor = -0.5

// negationWindow is how many tokens a negator stays active.
const negationWindow = 3

var prefixes []prefixEntry

type prefixEntry struct {
	stem     string
	polarity float64
}

func init() {
	for word, p := range lexicon {
		if strings.HasSuffix(word, "*") {
			prefixes = append(prefixes, prefixEntry{stem: strings.TrimSuffix(word, "*"), polarity: p})
		}
	}
	// Longest stem first so "parempi*" wins over shorter overlaps.
	sort.Slice(prefixes, func(i, j int) bool {
		if len(prefixes[i].stem) != len(prefixes[j].stem) {
			return len(prefixes[i].stem) > len(prefixes[j].stem)
		}
		return prefixes[i].stem < prefixes[j].stem
	})
}

// Polarity returns the sentiment polarity of text in [-1, 1].
// Text without any sentiment-bearing word scores 0.
func Polarity(text string) float64 {
	tokens := Tokenize(text)
	if len(tokens) == 0 {
		return 0
	}

	sum := 0.0
	matches := 0
	mult := 1.0
	negated := 0

	for _, tok := range tokens {
		if isNegator(tok) {
			negated = negationWindow
			continue
		}
		if f, ok := intensifiers[tok]; ok {
			mult *= f
			continue
		}

		p, ok := wordPolarity(tok)
		if !ok {
			if negated > 0 {
				negated--
			}
			mult = 1.0
			continue
		}

		v := p * mult
		if negated > 0 {
			v *= negationFactor
		}
		sum += clamp(v)
		matches++
		mult = 1.0
		negated = 0
	}

	if matches == 0 {
		return 0
	}
	return clamp(sum / float64(matches))
}

// Tokenize normalises text (NFC, Finnish lowercasing) and splits it into
// word tokens. Apostrophes and hyphens inside a word are kept.
func Tokenize(text string) []string {
	if text == "" {
		return nil
	}
	// A Caser is stateful; one per call keeps Tokenize goroutine-safe.
	text = cases.Lower(language.Finnish).String(norm.NFC.String(text))
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '\'' && r != '-'
	})
	tokens := fields[:0]
	for _, f := range fields {
		f = strings.Trim(f, "'-")
		if f != "" {
			tokens = append(tokens, f)
		}
	}
	return tokens
}

func wordPolarity(tok string) (float64, bool) {
	if p, ok := lexicon[tok]; ok {
		return p, true
	}
	for _, e := range prefixes {
		if strings.HasPrefix(tok, e.stem) {
			return e.polarity, true
		}
	}
	return 0, false
}

func isNegator(tok string) bool {
	return negators[tok] || strings.HasSuffix(tok, "n't")
}

func clamp(v float64) float64 {
	switch {
	case v > 1:
		return 1
	case v < -1:
		return -1
	}
	return v
}
