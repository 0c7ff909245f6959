package bid

import "context"

// BidRepository defines the interface for bid data access
type BidRepository interface {
	// Create inserts a new bid. The store enforces (tender_id, bidder_id)
	// uniqueness; a second bid for the pair returns ErrDuplicateBid.
	Create(ctx context.Context, b Bid) (Bid, error)

	// GetByID retrieves a bid by id
	GetByID(ctx context.Context, id string) (Bid, error)

	// GetByTenderAndBidder retrieves the bid a bidder placed on a tender
	GetByTenderAndBidder(ctx context.Context, tenderID, bidderID string) (Bid, error)

	// Update persists the mutable bid fields
	Update(ctx context.Context, b Bid) (Bid, error)

	// ListByTenderWithBidders retrieves all bids on a tender joined with
	// the bidder's email and role
	ListByTenderWithBidders(ctx context.Context, tenderID string) ([]WithBidder, error)

	// ListByTenderAndBidderIn retrieves the given bidder's bids across a
	// set of tenders
	ListByTenderAndBidderIn(ctx context.Context, tenderIDs []string, bidderID string) ([]Bid, error)

	// CountByTenderIn returns the bid count per tender id
	CountByTenderIn(ctx context.Context, tenderIDs []string) (map[string]int, error)

	// ListBidderEmails returns the distinct emails of every bidder who
	// placed a bid on the tender
	ListBidderEmails(ctx context.Context, tenderID string) ([]string, error)
}
