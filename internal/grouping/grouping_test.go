package grouping

import (
	"testing"
	"time"

	"github.com/harrison/archivetidy/internal/hasher"
	"github.com/harrison/archivetidy/internal/models"
	"github.com/harrison/archivetidy/internal/naming"
	"github.com/harrison/archivetidy/internal/similarity"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func record(t *testing.T, fs afero.Fs, path, content string, mtime time.Time) models.FileRecord {
	t.Helper()
	require.NoError(t, afero.WriteFile(fs, path, []byte(content), 0644))
	return models.FileRecord{
		Path:           path,
		SizeBytes:      int64(len(content)),
		ModifiedTime:   mtime,
		NormalizedName: naming.Normalize(path),
	}
}

func newHasher(t *testing.T, fs afero.Fs) *hasher.Hasher {
	t.Helper()
	h, err := hasher.New(fs, hasher.AlgorithmMD5, 0)
	require.NoError(t, err)
	return h
}

func TestExactHashGroupsIdenticalContent(t *testing.T) {
	fs := afero.NewMemMapFs()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	records := []models.FileRecord{
		record(t, fs, "/a/Invoice.pdf", "invoice 1001", base),
		record(t, fs, "/a/Lease.pdf", "lease terms", base),
		record(t, fs, "/b/Invoice_copy.pdf", "invoice 1001", base.Add(time.Hour)),
		record(t, fs, "/b/Invoice (1).pdf", "invoice 1002", base),
		record(t, fs, "/c/renamed.pdf", "invoice 1001", base),
	}

	res := ExactHash(newHasher(t, fs)).Group(records)
	require.Empty(t, res.Errors)
	require.Len(t, res.Groups, 3)

	// first-seen key order
	assert.Equal(t, []string{"/a/Invoice.pdf", "/b/Invoice_copy.pdf", "/c/renamed.pdf"}, paths(res.Groups[0].Members))
	assert.Equal(t, []string{"/a/Lease.pdf"}, paths(res.Groups[1].Members))
	assert.Equal(t, []string{"/b/Invoice (1).pdf"}, paths(res.Groups[2].Members))

	actionable := Actionable(res.Groups)
	require.Len(t, actionable, 1)
	assert.Len(t, actionable[0].Members, 3)
}

func TestExactHashRecordsHashErrors(t *testing.T) {
	fs := afero.NewMemMapFs()
	now := time.Now()
	records := []models.FileRecord{
		record(t, fs, "/ok.pdf", "x", now),
		{Path: "/gone.pdf"},
	}

	res := ExactHash(newHasher(t, fs)).Group(records)
	require.Len(t, res.Errors, 1)
	kind, ok := models.KindOf(res.Errors[0])
	require.True(t, ok)
	assert.Equal(t, models.HashError, kind)
	require.Len(t, res.Groups, 1)
	assert.Equal(t, "/ok.pdf", res.Groups[0].Members[0].Path)
}

func TestExactHashUsesExistingDigest(t *testing.T) {
	// no file behind the path: the precomputed digest must be used as is
	records := []models.FileRecord{
		{Path: "/x.pdf", ContentHash: "abc"},
		{Path: "/y.pdf", ContentHash: "abc"},
	}
	res := ExactHash(newHasher(t, afero.NewMemMapFs())).Group(records)
	require.Empty(t, res.Errors)
	require.Len(t, res.Groups, 1)
	assert.Equal(t, "abc", res.Groups[0].Key)
}

func TestNormalizedNameGroupsCopies(t *testing.T) {
	fs := afero.NewMemMapFs()
	now := time.Now()
	records := []models.FileRecord{
		record(t, fs, "/Report.pdf", "v1", now),
		record(t, fs, "/Report copy.pdf", "v1", now),
		record(t, fs, "/Report (2).docx", "v2", now),
		record(t, fs, "/Summary.pdf", "s", now),
	}

	p := NormalizedName()
	assert.Equal(t, PolicyNormalizedName, p.Name())

	res := p.Group(records)
	require.Len(t, res.Groups, 2)
	assert.Equal(t, "Report", res.Groups[0].Key)
	assert.Len(t, res.Groups[0].Members, 3)
	assert.Equal(t, "Summary", res.Groups[1].Key)
}

func TestByKeyEmptyInput(t *testing.T) {
	res := NormalizedName().Group(nil)
	assert.Empty(t, res.Groups)
	assert.Empty(t, res.Errors)

	fuzzy := NewFuzzy(nil, DefaultThreshold).Group(nil)
	assert.Empty(t, fuzzy.Groups)
}

func TestDuplicateGroupsOrdersNewestFirstAndCarriesHash(t *testing.T) {
	base := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	groups := []Group[models.FileRecord]{{
		Key: "d41d8c",
		Members: []models.FileRecord{
			{Path: "/Invoice.pdf", ModifiedTime: base},
			{Path: "/Invoice_copy.pdf", ModifiedTime: base.Add(time.Minute)},
		},
	}}

	out := DuplicateGroups(groups, models.StrategyHash)
	require.Len(t, out, 1)
	assert.Equal(t, "/Invoice_copy.pdf", out[0].Keeper().Path)
	for _, m := range out[0].Members {
		assert.Equal(t, "d41d8c", m.ContentHash)
	}
	// input untouched
	assert.False(t, groups[0].Members[0].HasHash())

	named := DuplicateGroups(groups, models.StrategyName)
	assert.False(t, named[0].Members[0].HasHash())
	assert.Equal(t, models.StrategyName, named[0].Strategy)
}

// tableScorer returns fixed scores for known pairs and 0 otherwise.
type tableScorer map[[2]string]float64

func (s tableScorer) Score(a, b string) float64 {
	if a == b {
		return 100
	}
	if v, ok := s[[2]string{a, b}]; ok {
		return v
	}
	return s[[2]string{b, a}]
}

func TestFuzzyComparesAgainstSeedOnly(t *testing.T) {
	scorer := tableScorer{
		{"A", "B"}: 90,
		{"B", "C"}: 90,
		{"A", "C"}: 10,
	}
	f := NewFuzzy(scorer, 80)

	tests := []struct {
		name  string
		input []string
		want  [][]string
	}{
		{
			name:  "seed A splits C off even though C is close to B",
			input: []string{"A", "B", "C"},
			want:  [][]string{{"A", "B"}, {"C"}},
		},
		{
			name:  "seed B chains A and C together",
			input: []string{"B", "A", "C"},
			want:  [][]string{{"B", "A", "C"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got [][]string
			for _, c := range f.Clusters(tt.input) {
				got = append(got, c.Members)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFuzzyJoinsFirstMatchingCluster(t *testing.T) {
	scorer := tableScorer{
		{"X", "Z"}: 85,
		{"Y", "Z"}: 95,
	}
	res := NewFuzzy(scorer, 80).Group([]string{"X", "Y", "Z"})
	require.Len(t, res.Groups, 2)
	assert.Equal(t, []string{"X", "Z"}, res.Groups[0].Members)
	assert.Equal(t, []string{"Y"}, res.Groups[1].Members)
}

func TestFuzzyThresholdBounds(t *testing.T) {
	names := []string{"Acme Corp", "Acme Corporation", "Globex", "Initech", "Acme"}

	all := NewFuzzy(similarity.NewMatch(), 100).Clusters(names)
	assert.Len(t, all, len(names))
	for _, c := range all {
		assert.Len(t, c.Members, 1)
	}
	assert.Empty(t, ActionableClusters(all))

	one := NewFuzzy(similarity.NewRatio(), 0).Clusters(names)
	require.Len(t, one, 1)
	assert.Equal(t, names, one[0].Members)
}

func TestFuzzyThresholdHundredGroupsExactRepeats(t *testing.T) {
	clusters := NewFuzzy(similarity.NewMatch(), 100).Clusters([]string{"Acme", "Globex", "Acme"})
	require.Len(t, clusters, 2)
	assert.Equal(t, []string{"Acme", "Acme"}, clusters[0].Members)
}

func TestFuzzyAcmeScenario(t *testing.T) {
	f := NewFuzzy(nil, DefaultThreshold)
	assert.Equal(t, PolicyFuzzy, f.Name())
	assert.Equal(t, 80.0, f.Threshold())

	clusters := f.Clusters([]string{"Acme Corp", "Acme Corporation", "Globex"})
	require.Len(t, clusters, 2)
	assert.Equal(t, []string{"Acme Corp", "Acme Corporation"}, clusters[0].Members)
	assert.Equal(t, []string{"Globex"}, clusters[1].Members)

	actionable := ActionableClusters(clusters)
	require.Len(t, actionable, 1)
	target := models.NewMergeTarget(actionable[0])
	assert.Equal(t, "Acme Corp", target.Representative)
	assert.Equal(t, []string{"Acme Corporation"}, target.Sources)
}

func paths(records []models.FileRecord) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.Path
	}
	return out
}
