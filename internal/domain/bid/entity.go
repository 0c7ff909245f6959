package bid

import (
	"time"

	"github.com/shopspring/decimal"
)

// Bid is a bidder's offer against one tender. TenderID and BidderID are
// immutable after creation; a (tender, bidder) pair holds at most one bid.
type Bid struct {
	ID        string
	TenderID  string
	BidderID  string
	BidAmount decimal.Decimal
	Remarks   *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// WithBidder carries the bidder's public identity fields alongside the
// bid. Credential fields never appear here.
type WithBidder struct {
	Response
	BidderEmail string `json:"bidderEmail"`
	BidderRole  string `json:"bidderRole"`
}
