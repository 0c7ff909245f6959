package bid

import (
	"context"

	"github.com/etenderhq/etender-backend-go/internal/domain/user"
)

// BidService enforces window and price-bound rules on bid creation and
// edits.
type BidService interface {
	// Create places a bid for an invited bidder inside the bidding window
	Create(ctx context.Context, caller user.Identity, req CreateRequest) (Response, error)

	// Update edits the caller's own bid before the window closes; only
	// supplied fields change and amounts are re-validated
	Update(ctx context.Context, caller user.Identity, bidID string, req UpdateRequest) (Response, error)
}
