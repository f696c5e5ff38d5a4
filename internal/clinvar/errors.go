package clinvar

import (
	"errors"
	"fmt"
)

// ErrInvalidFormat is returned when the input does not start with a VCFv4
// fileformat header.
var ErrInvalidFormat = errors.New("invalid VCF format: expected fileformat=VCFv4 header")

// ErrUnknownReviewStatus matches any *UnknownReviewStatusError.
var ErrUnknownReviewStatus = errors.New("unknown review status")

// UnknownReviewStatusError reports a CLNREVSTAT value outside the star table.
type UnknownReviewStatusError struct {
	Status string
	Line   int
}

func (e *UnknownReviewStatusError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("unknown review status %q at line %d", e.Status, e.Line)
	}
	return fmt.Sprintf("unknown review status %q", e.Status)
}

// Is lets errors.Is match ErrUnknownReviewStatus.
func (e *UnknownReviewStatusError) Is(target error) bool {
	return target == ErrUnknownReviewStatus
}
