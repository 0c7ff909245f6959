package tender

import "context"

// TenderRepository defines the interface for tender data access
type TenderRepository interface {
	// Create creates a new tender record
	Create(ctx context.Context, t Tender) (Tender, error)

	// GetByID retrieves a tender by id
	GetByID(ctx context.Context, id string) (Tender, error)

	// Update persists the mutable tender fields
	Update(ctx context.Context, t Tender) (Tender, error)

	// ListByCompany retrieves all tenders in a company scope, newest
	// created first
	ListByCompany(ctx context.Context, companyID string) ([]Tender, error)

	// ListByInvitedEmail retrieves all tenders whose invited list
	// contains the normalized email, newest created first
	ListByInvitedEmail(ctx context.Context, email string) ([]Tender, error)

	// SetAwarded marks the tender awarded with the winning bid in a
	// single row update. It only succeeds while awarded_bid_id is still
	// unset; ErrAlreadyAwarded otherwise.
	SetAwarded(ctx context.Context, id, bidID string) (Tender, error)
}
