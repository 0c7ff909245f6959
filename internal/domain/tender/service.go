package tender

import (
	"context"

	"github.com/etenderhq/etender-backend-go/internal/domain/user"
)

// TenderService owns the tender lifecycle: create/update/publish/award
// transitions and the reads built on top of them. The company scope is
// an explicit parameter on every admin operation.
type TenderService interface {
	// Create creates a tender; publishing at create dispatches
	// invitations after the record is committed
	Create(ctx context.Context, companyID string, req CreateRequest) (Response, error)

	// Update applies allow-listed fields strictly before the start date;
	// a draft-to-published transition dispatches invitations exactly once
	Update(ctx context.Context, companyID, id string, req UpdateRequest) (Response, error)

	// Award irreversibly selects the winning bid after the end date and
	// notifies every bidder
	Award(ctx context.Context, companyID, id, bidID string) (Response, error)

	// List returns all tenders in scope with display status and bid counts
	List(ctx context.Context, companyID string) ([]ListItem, error)

	// GetWithBids returns a tender and its bids; callers must be admin
	// or on the invited list
	GetWithBids(ctx context.Context, id string, caller user.Identity) (WithBids, error)

	// MyTenders returns the tenders the caller is invited to, annotated
	// with their own bid and the award outcome
	MyTenders(ctx context.Context, caller user.Identity) ([]MyTenderItem, error)
}
