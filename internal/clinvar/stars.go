package clinvar

// reviewStars maps CLNREVSTAT values to the ClinVar gold-star rating.
var reviewStars = map[string]string{
	"no_assertion_criteria_provided":                       "0",
	"no_assertion_provided":                                "0",
	"no_interpretation_for_the_single_variant":             "0",
	"criteria_provided,_single_submitter":                  "1",
	"criteria_provided,_conflicting_interpretations":       "1",
	"criteria_provided,_multiple_submitters,_no_conflicts": "2",
	"reviewed_by_expert_panel":                             "3",
	"practice_guideline":                                   "4",
}

// Stars returns the confidence tier ("0" to "4") for a review status.
// Unrecognized statuses return an *UnknownReviewStatusError.
func Stars(reviewStatus string) (string, error) {
	stars, ok := reviewStars[reviewStatus]
	if !ok {
		return "", &UnknownReviewStatusError{Status: reviewStatus}
	}
	return stars, nil
}

