package bid

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/etenderhq/etender-backend-go/internal/domain/bid"
	"github.com/etenderhq/etender-backend-go/internal/domain/tender"
	"github.com/etenderhq/etender-backend-go/internal/domain/user"
)

type BidServiceImpl struct {
	bidRepo    bid.BidRepository
	tenderRepo tender.TenderRepository

	// now is the per-request clock snapshot source; overridable in tests.
	now func() time.Time
}

func NewBidService(bidRepo bid.BidRepository, tenderRepo tender.TenderRepository) *BidServiceImpl {
	return &BidServiceImpl{
		bidRepo:    bidRepo,
		tenderRepo: tenderRepo,
		now:        time.Now,
	}
}

// Create implements bid.BidService.
func (s *BidServiceImpl) Create(ctx context.Context, caller user.Identity, req bid.CreateRequest) (bid.Response, error) {
	if err := req.Validate(); err != nil {
		return bid.Response{}, err
	}

	t, err := s.tenderRepo.GetByID(ctx, req.TenderID)
	if err != nil {
		return bid.Response{}, err
	}

	if !t.IsInvited(caller.Email) {
		return bid.Response{}, bid.ErrNotInvited
	}

	now := s.now()
	if err := t.ValidateBidWindow(now); err != nil {
		return bid.Response{}, err
	}
	if err := t.ValidateBidAmount(*req.BidAmount); err != nil {
		return bid.Response{}, err
	}

	// The store-level unique index is authoritative; this lookup just
	// gives the common case a clean error without hitting the insert.
	if _, err := s.bidRepo.GetByTenderAndBidder(ctx, t.ID, caller.ID); err == nil {
		return bid.Response{}, bid.ErrDuplicateBid
	}

	created, err := s.bidRepo.Create(ctx, bid.Bid{
		TenderID:  t.ID,
		BidderID:  caller.ID,
		BidAmount: *req.BidAmount,
		Remarks:   req.Remarks,
	})
	if err != nil {
		if errors.Is(err, bid.ErrDuplicateBid) {
			return bid.Response{}, err
		}
		return bid.Response{}, fmt.Errorf("failed to create bid: %w", err)
	}

	return bid.NewResponse(created), nil
}

// Update implements bid.BidService. Edits have no lower window bound:
// a bid cannot have existed before the start date, so only the end
// boundary is enforced.
func (s *BidServiceImpl) Update(ctx context.Context, caller user.Identity, bidID string, req bid.UpdateRequest) (bid.Response, error) {
	b, err := s.bidRepo.GetByID(ctx, bidID)
	if err != nil {
		return bid.Response{}, err
	}

	if b.BidderID != caller.ID {
		return bid.Response{}, bid.ErrNotBidOwner
	}

	t, err := s.tenderRepo.GetByID(ctx, b.TenderID)
	if err != nil {
		return bid.Response{}, err
	}

	if s.now().After(t.EndDate) {
		return bid.Response{}, bid.ErrBidWindowClosed
	}

	if req.BidAmount != nil {
		if err := t.ValidateBidAmount(*req.BidAmount); err != nil {
			return bid.Response{}, err
		}
		b.BidAmount = *req.BidAmount
	}
	if req.Remarks != nil {
		b.Remarks = req.Remarks
	}

	updated, err := s.bidRepo.Update(ctx, b)
	if err != nil {
		return bid.Response{}, fmt.Errorf("failed to update bid: %w", err)
	}

	return bid.NewResponse(updated), nil
}
