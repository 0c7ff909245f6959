package bid

import "errors"

var (
	ErrBidNotFound     = errors.New("bid not found")
	ErrNotInvited      = errors.New("you are not invited to this tender")
	ErrDuplicateBid    = errors.New("you have already placed a bid for this tender")
	ErrNotBidOwner     = errors.New("you can only edit your own bid")
	ErrBidWindowClosed = errors.New("bids cannot be edited after tender end date")
)
