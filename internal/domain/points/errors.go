package points

import "errors"

var (
	ErrEntryNotFound    = errors.New("points entry not found")
	ErrEntryConflict    = errors.New("points entry already reviewed")
	ErrReviewDenied     = errors.New("reviewer not permitted to review this entry")
	ErrCommentRequired  = errors.New("review comment required on reject")
	ErrEmployeeInactive = errors.New("employee is inactive")
	ErrInvalidInput     = errors.New("invalid input for standard")
)
