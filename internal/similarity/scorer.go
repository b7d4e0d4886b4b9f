// Package similarity scores how alike two short strings are, such as customer
// folder names. Scores are symmetric and range from 0 (nothing in common) to
// 100 (identical). No normalization is applied; callers pass the raw strings
// they want compared.
package similarity

import (
	"fmt"
	"strings"

	"github.com/agext/levenshtein"
)

// Scorer names accepted by New.
const (
	ScorerMatch = "match"
	ScorerRatio = "ratio"
)

// Scorer computes a similarity score in [0,100] for two strings.
type Scorer interface {
	Score(a, b string) float64
}

// EditScorer scores strings by insert/delete edit distance normalized by their
// combined length. With the prefix bonus enabled, pairs sharing a common
// prefix get a Winkler-style boost once their base ratio reaches 0.7.
type EditScorer struct {
	params *levenshtein.Params
	bonus  bool
}

// indelParams prices a substitution as one delete plus one insert, which makes
// the distance an Indel distance and the maximum distance len(a)+len(b).
func indelParams() *levenshtein.Params {
	return levenshtein.NewParams().SubCost(2)
}

// NewRatio returns the plain edit-distance ratio scorer.
func NewRatio() *EditScorer {
	return &EditScorer{params: indelParams()}
}

// NewMatch returns the ratio scorer with the common-prefix bonus.
// Prefix length is capped at 4 runes with a 0.1 scale, applied above 0.7.
func NewMatch() *EditScorer {
	return &EditScorer{
		params: indelParams().BonusPrefix(4).BonusScale(0.1).BonusThreshold(0.7),
		bonus:  true,
	}
}

// New returns the scorer registered under name.
func New(name string) (Scorer, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", ScorerMatch:
		return NewMatch(), nil
	case ScorerRatio:
		return NewRatio(), nil
	default:
		return nil, fmt.Errorf("unknown similarity scorer %q (expected %s or %s)", name, ScorerMatch, ScorerRatio)
	}
}

// Score returns the similarity of a and b in [0,100].
func (s *EditScorer) Score(a, b string) float64 {
	var sim float64
	if s.bonus {
		sim = levenshtein.Match(a, b, s.params)
	} else {
		sim = levenshtein.Similarity(a, b, s.params)
	}
	return sim * 100
}
