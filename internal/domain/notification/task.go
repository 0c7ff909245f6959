package notification

import (
	"context"

	"github.com/etenderhq/etender-backend-go/internal/domain/bid"
	"github.com/etenderhq/etender-backend-go/internal/domain/tender"
)

// Task is a post-commit side effect emitted by a lifecycle transition.
// The transition itself stays synchronous and pure; tasks are executed
// by a Dispatcher after the triggering write has been committed, and a
// failing task never rolls back or fails that write.
type Task interface {
	Kind() string
}

// InvitationTask provisions a bidder account if needed and sends one
// invitation email. One task per normalized invited email; each is
// independent of the others.
type InvitationTask struct {
	Tender tender.Tender
	Email  string
}

func (InvitationTask) Kind() string { return "invitation" }

// AwardTask sends a single award result email to the deduplicated union
// of the winner and every other bidder on the tender. An empty recipient
// set skips the send entirely.
type AwardTask struct {
	Tender      tender.Tender
	WinningBid  bid.Bid
	WinnerEmail string
	Recipients  []string
}

func (AwardTask) Kind() string { return "award" }

// Dispatcher executes tasks detached from the request that produced
// them: an abandoned request must not cancel in-flight sends.
type Dispatcher interface {
	Dispatch(ctx context.Context, tasks []Task)
}
