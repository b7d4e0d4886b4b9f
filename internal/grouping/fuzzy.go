package grouping

import (
	"github.com/harrison/archivetidy/internal/models"
	"github.com/harrison/archivetidy/internal/similarity"
)

// DefaultThreshold is the minimum score for a name to join a cluster.
const DefaultThreshold = 80.0

// Fuzzy clusters names by similarity to each cluster's seed.
//
// Names are visited once in input order. A name joins the first cluster whose
// seed scores at or above the threshold against it, otherwise it seeds a new
// cluster. Later members are never compared with each other, so a cluster can
// hold names that are not pairwise similar.
type Fuzzy struct {
	scorer    similarity.Scorer
	threshold float64
}

// NewFuzzy creates a fuzzy policy. A nil scorer selects similarity.NewMatch.
func NewFuzzy(scorer similarity.Scorer, threshold float64) *Fuzzy {
	if scorer == nil {
		scorer = similarity.NewMatch()
	}
	return &Fuzzy{scorer: scorer, threshold: threshold}
}

// Name returns the policy name.
func (f *Fuzzy) Name() string {
	return PolicyFuzzy
}

// Threshold returns the configured join threshold.
func (f *Fuzzy) Threshold() float64 {
	return f.threshold
}

// Group clusters names. Each group's key is its seed.
func (f *Fuzzy) Group(names []string) Result[string] {
	var res Result[string]

	for _, name := range names {
		joined := false
		for i := range res.Groups {
			if f.scorer.Score(res.Groups[i].Key, name) >= f.threshold {
				res.Groups[i].Members = append(res.Groups[i].Members, name)
				joined = true
				break
			}
		}
		if !joined {
			res.Groups = append(res.Groups, Group[string]{Key: name, Members: []string{name}})
		}
	}
	return res
}

// Clusters returns the fuzzy groups of names as models.NameCluster values.
func (f *Fuzzy) Clusters(names []string) []models.NameCluster {
	res := f.Group(names)
	clusters := make([]models.NameCluster, 0, len(res.Groups))
	for _, g := range res.Groups {
		clusters = append(clusters, models.NameCluster{Members: g.Members})
	}
	return clusters
}

// ActionableClusters returns the clusters with at least two members.
func ActionableClusters(clusters []models.NameCluster) []models.NameCluster {
	out := make([]models.NameCluster, 0, len(clusters))
	for _, c := range clusters {
		if c.IsActionable() {
			out = append(out, c)
		}
	}
	return out
}
