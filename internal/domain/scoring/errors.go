package scoring

import "errors"

// Sentinel kinds for scoring errors.
var (
	ErrMemberNotIndexed = errors.New("member not in unit index")
	ErrZeroRequirement  = errors.New("zero member requirement")
)
