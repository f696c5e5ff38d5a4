package clinvar

import "strings"

// INFO keys extracted from ClinVar records. Segments are matched by prefix
// in this order.
const (
	keyAlleleID     = "ALLELEID="
	keyDisease      = "CLNDN="
	keyClinSig      = "CLNSIG="
	keyDbSNP        = "RS="
	keyReviewStatus = "CLNREVSTAT="
)

// applyInfo fills the annotation fields of rec from a VCF INFO column.
// Segments with unrecognized keys are ignored.
func applyInfo(info string, rec *Record) error {
	for _, field := range strings.Split(info, ";") {
		switch {
		case strings.HasPrefix(field, keyAlleleID):
			rec.AlleleID = field[len(keyAlleleID):]
		case strings.HasPrefix(field, keyDisease):
			rec.Disease = strings.ReplaceAll(field[len(keyDisease):], "_", " ")
		case strings.HasPrefix(field, keyClinSig):
			rec.ClinSig = field[len(keyClinSig):]
		case strings.HasPrefix(field, keyDbSNP):
			rec.DbSNP = field[len(keyDbSNP):]
		case strings.HasPrefix(field, keyReviewStatus):
			rec.ReviewStatus = field[len(keyReviewStatus):]
			stars, err := Stars(rec.ReviewStatus)
			if err != nil {
				return err
			}
			rec.Stars = stars
		}
	}
	return nil
}
