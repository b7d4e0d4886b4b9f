package dedupe

import (
	"github.com/harrison/archivetidy/internal/grouping"
	"github.com/harrison/archivetidy/internal/hasher"
	"github.com/harrison/archivetidy/internal/models"
)

// ConfirmByContent hashes every member of a name group and splits it into
// hash-confirmed subgroups. Only those subgroups may be passed to Resolve.
// Members that cannot be hashed make the verdict unknown and are returned as
// HashErrors.
func ConfirmByContent(group models.DuplicateGroup, h *hasher.Hasher) (models.ScanGroup, []error) {
	res := grouping.ExactHash(h).Group(group.Members)

	sg := models.ScanGroup{
		Group:     group,
		Confirmed: grouping.DuplicateGroups(grouping.Actionable(res.Groups), models.StrategyHash),
	}

	switch {
	case len(res.Errors) > 0:
		sg.Verdict = models.VerdictUnknown
	case len(res.Groups) == 1:
		sg.Verdict = models.VerdictIdentical
	default:
		sg.Verdict = models.VerdictDifferent
	}
	return sg, res.Errors
}

// BuildScanReport groups records by normalized name and checks the content of
// every group with two or more members.
func BuildScanReport(records []models.FileRecord, h *hasher.Hasher) (models.ScanReport, []error) {
	report := models.ScanReport{FilesScanned: len(records)}
	var errs []error

	res := grouping.NormalizedName().Group(records)
	for _, g := range grouping.DuplicateGroups(grouping.Actionable(res.Groups), models.StrategyName) {
		sg, hashErrs := ConfirmByContent(g, h)
		report.Groups = append(report.Groups, sg)
		errs = append(errs, hashErrs...)
	}
	return report, errs
}
