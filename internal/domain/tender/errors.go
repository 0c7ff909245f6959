package tender

import "errors"

var (
	ErrTenderNotFound   = errors.New("tender not found")
	ErrEditWindowClosed = errors.New("tender cannot be edited after start date")
	ErrCannotUnpublish  = errors.New("published tender cannot return to draft")
	ErrEndBeforeStart   = errors.New("end date must not be before start date")
	ErrMissingBidID     = errors.New("bidId is required")
	ErrAwardTooEarly    = errors.New("cannot award tender before end date")
	ErrAlreadyAwarded   = errors.New("tender has already been awarded")

	ErrBidBeforeStart  = errors.New("bidding is not allowed before start date")
	ErrBidAfterEnd     = errors.New("bidding is not allowed after end date")
	ErrBidBelowMinimum = errors.New("bid amount is below minimum start bid price")
	ErrBidAboveMaximum = errors.New("bid amount exceeds maximum bid price")
)
