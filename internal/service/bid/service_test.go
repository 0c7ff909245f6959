package bid

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/etenderhq/etender-backend-go/internal/domain/bid"
	"github.com/etenderhq/etender-backend-go/internal/domain/tender"
	"github.com/etenderhq/etender-backend-go/internal/domain/user"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTenderRepo struct {
	tenders map[string]tender.Tender
}

func (f *fakeTenderRepo) Create(ctx context.Context, t tender.Tender) (tender.Tender, error) {
	f.tenders[t.ID] = t
	return t, nil
}

func (f *fakeTenderRepo) GetByID(ctx context.Context, id string) (tender.Tender, error) {
	t, ok := f.tenders[id]
	if !ok {
		return tender.Tender{}, tender.ErrTenderNotFound
	}
	return t, nil
}

func (f *fakeTenderRepo) Update(ctx context.Context, t tender.Tender) (tender.Tender, error) {
	f.tenders[t.ID] = t
	return t, nil
}

func (f *fakeTenderRepo) ListByCompany(ctx context.Context, companyID string) ([]tender.Tender, error) {
	return nil, nil
}

func (f *fakeTenderRepo) ListByInvitedEmail(ctx context.Context, email string) ([]tender.Tender, error) {
	return nil, nil
}

func (f *fakeTenderRepo) SetAwarded(ctx context.Context, id, bidID string) (tender.Tender, error) {
	return tender.Tender{}, nil
}

type fakeBidRepo struct {
	bids map[string]bid.Bid
}

func (f *fakeBidRepo) Create(ctx context.Context, b bid.Bid) (bid.Bid, error) {
	for _, existing := range f.bids {
		if existing.TenderID == b.TenderID && existing.BidderID == b.BidderID {
			return bid.Bid{}, bid.ErrDuplicateBid
		}
	}
	b.ID = fmt.Sprintf("bid-%d", len(f.bids)+1)
	f.bids[b.ID] = b
	return b, nil
}

func (f *fakeBidRepo) GetByID(ctx context.Context, id string) (bid.Bid, error) {
	b, ok := f.bids[id]
	if !ok {
		return bid.Bid{}, bid.ErrBidNotFound
	}
	return b, nil
}

func (f *fakeBidRepo) GetByTenderAndBidder(ctx context.Context, tenderID, bidderID string) (bid.Bid, error) {
	for _, b := range f.bids {
		if b.TenderID == tenderID && b.BidderID == bidderID {
			return b, nil
		}
	}
	return bid.Bid{}, bid.ErrBidNotFound
}

func (f *fakeBidRepo) Update(ctx context.Context, b bid.Bid) (bid.Bid, error) {
	f.bids[b.ID] = b
	return b, nil
}

func (f *fakeBidRepo) ListByTenderWithBidders(ctx context.Context, tenderID string) ([]bid.WithBidder, error) {
	return nil, nil
}

func (f *fakeBidRepo) ListByTenderAndBidderIn(ctx context.Context, tenderIDs []string, bidderID string) ([]bid.Bid, error) {
	return nil, nil
}

func (f *fakeBidRepo) CountByTenderIn(ctx context.Context, tenderIDs []string) (map[string]int, error) {
	return map[string]int{}, nil
}

func (f *fakeBidRepo) ListBidderEmails(ctx context.Context, tenderID string) ([]string, error) {
	return nil, nil
}

var (
	bidStart = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	bidEnd   = time.Date(2026, 3, 10, 17, 0, 0, 0, time.UTC)
	inWindow = bidStart.Add(time.Hour)
)

func newBidServiceForTest(now time.Time) (*BidServiceImpl, *fakeBidRepo, *fakeTenderRepo) {
	minPrice := decimal.NewFromInt(100)
	maxPrice := decimal.NewFromInt(500)
	tenderRepo := &fakeTenderRepo{tenders: map[string]tender.Tender{
		"tender-1": {
			ID:            "tender-1",
			CompanyID:     "COMPANY_1",
			StartBidPrice: &minPrice,
			MaxBidPrice:   &maxPrice,
			StartDate:     bidStart,
			EndDate:       bidEnd,
			InvitedEmails: []string{"alice@example.com"},
			Status:        tender.StatusPublished,
		},
	}}
	bidRepo := &fakeBidRepo{bids: make(map[string]bid.Bid)}
	svc := NewBidService(bidRepo, tenderRepo)
	svc.now = func() time.Time { return now }
	return svc, bidRepo, tenderRepo
}

func amountPtr(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

var alice = user.Identity{ID: "user-1", Email: "alice@example.com", Role: user.RoleBidder}

func TestBidService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("places a valid bid", func(t *testing.T) {
		svc, _, _ := newBidServiceForTest(inWindow)

		remarks := "includes delivery"
		resp, err := svc.Create(ctx, alice, bid.CreateRequest{
			TenderID:  "tender-1",
			BidAmount: amountPtr(250),
			Remarks:   &remarks,
		})
		require.NoError(t, err)
		assert.Equal(t, "tender-1", resp.TenderID)
		assert.Equal(t, alice.ID, resp.BidderID)
		assert.True(t, resp.BidAmount.Equal(decimal.NewFromInt(250)))
		require.NotNil(t, resp.Remarks)
		assert.Equal(t, "includes delivery", *resp.Remarks)
	})

	t.Run("invitation check normalizes the caller email", func(t *testing.T) {
		svc, _, _ := newBidServiceForTest(inWindow)
		caller := user.Identity{ID: "user-1", Email: "ALICE@Example.COM", Role: user.RoleBidder}

		_, err := svc.Create(ctx, caller, bid.CreateRequest{TenderID: "tender-1", BidAmount: amountPtr(250)})
		assert.NoError(t, err)
	})

	t.Run("uninvited bidder rejected", func(t *testing.T) {
		svc, _, _ := newBidServiceForTest(inWindow)
		mallory := user.Identity{ID: "user-9", Email: "mallory@example.com", Role: user.RoleBidder}

		_, err := svc.Create(ctx, mallory, bid.CreateRequest{TenderID: "tender-1", BidAmount: amountPtr(250)})
		assert.ErrorIs(t, err, bid.ErrNotInvited)
	})

	t.Run("window boundaries are inclusive", func(t *testing.T) {
		for _, now := range []time.Time{bidStart, bidEnd} {
			svc, _, _ := newBidServiceForTest(now)
			_, err := svc.Create(ctx, alice, bid.CreateRequest{TenderID: "tender-1", BidAmount: amountPtr(250)})
			assert.NoError(t, err)
		}
	})

	t.Run("before window", func(t *testing.T) {
		svc, _, _ := newBidServiceForTest(bidStart.Add(-time.Minute))
		_, err := svc.Create(ctx, alice, bid.CreateRequest{TenderID: "tender-1", BidAmount: amountPtr(250)})
		assert.ErrorIs(t, err, tender.ErrBidBeforeStart)
	})

	t.Run("after window", func(t *testing.T) {
		svc, _, _ := newBidServiceForTest(bidEnd.Add(time.Minute))
		_, err := svc.Create(ctx, alice, bid.CreateRequest{TenderID: "tender-1", BidAmount: amountPtr(250)})
		assert.ErrorIs(t, err, tender.ErrBidAfterEnd)
	})

	t.Run("amount bounds enforced", func(t *testing.T) {
		svc, _, _ := newBidServiceForTest(inWindow)

		_, err := svc.Create(ctx, alice, bid.CreateRequest{TenderID: "tender-1", BidAmount: amountPtr(50)})
		assert.ErrorIs(t, err, tender.ErrBidBelowMinimum)

		_, err = svc.Create(ctx, alice, bid.CreateRequest{TenderID: "tender-1", BidAmount: amountPtr(600)})
		assert.ErrorIs(t, err, tender.ErrBidAboveMaximum)
	})

	t.Run("second bid on same tender rejected", func(t *testing.T) {
		svc, _, _ := newBidServiceForTest(inWindow)

		_, err := svc.Create(ctx, alice, bid.CreateRequest{TenderID: "tender-1", BidAmount: amountPtr(250)})
		require.NoError(t, err)

		_, err = svc.Create(ctx, alice, bid.CreateRequest{TenderID: "tender-1", BidAmount: amountPtr(300)})
		assert.ErrorIs(t, err, bid.ErrDuplicateBid)
	})

	t.Run("unknown tender", func(t *testing.T) {
		svc, _, _ := newBidServiceForTest(inWindow)
		_, err := svc.Create(ctx, alice, bid.CreateRequest{TenderID: "nope", BidAmount: amountPtr(250)})
		assert.ErrorIs(t, err, tender.ErrTenderNotFound)
	})
}

func TestBidService_Update(t *testing.T) {
	ctx := context.Background()

	place := func(svc *BidServiceImpl) string {
		resp, err := svc.Create(ctx, alice, bid.CreateRequest{TenderID: "tender-1", BidAmount: amountPtr(250)})
		require.NoError(t, err)
		return resp.ID
	}

	t.Run("owner edits amount inside window", func(t *testing.T) {
		svc, _, _ := newBidServiceForTest(inWindow)
		id := place(svc)

		resp, err := svc.Update(ctx, alice, id, bid.UpdateRequest{BidAmount: amountPtr(300)})
		require.NoError(t, err)
		assert.True(t, resp.BidAmount.Equal(decimal.NewFromInt(300)))
	})

	t.Run("only supplied fields change", func(t *testing.T) {
		svc, _, _ := newBidServiceForTest(inWindow)
		id := place(svc)

		remarks := "revised offer"
		resp, err := svc.Update(ctx, alice, id, bid.UpdateRequest{Remarks: &remarks})
		require.NoError(t, err)
		assert.True(t, resp.BidAmount.Equal(decimal.NewFromInt(250)))
		require.NotNil(t, resp.Remarks)
		assert.Equal(t, "revised offer", *resp.Remarks)
	})

	t.Run("remarks can be cleared to empty string", func(t *testing.T) {
		svc, _, _ := newBidServiceForTest(inWindow)
		id := place(svc)

		empty := ""
		resp, err := svc.Update(ctx, alice, id, bid.UpdateRequest{Remarks: &empty})
		require.NoError(t, err)
		require.NotNil(t, resp.Remarks)
		assert.Equal(t, "", *resp.Remarks)
	})

	t.Run("non-owner rejected", func(t *testing.T) {
		svc, _, _ := newBidServiceForTest(inWindow)
		id := place(svc)

		other := user.Identity{ID: "user-2", Email: "bob@example.com", Role: user.RoleBidder}
		_, err := svc.Update(ctx, other, id, bid.UpdateRequest{BidAmount: amountPtr(300)})
		assert.ErrorIs(t, err, bid.ErrNotBidOwner)
	})

	t.Run("edit allowed exactly at end, rejected after", func(t *testing.T) {
		svc, _, _ := newBidServiceForTest(inWindow)
		id := place(svc)

		svc.now = func() time.Time { return bidEnd }
		_, err := svc.Update(ctx, alice, id, bid.UpdateRequest{BidAmount: amountPtr(300)})
		assert.NoError(t, err)

		svc.now = func() time.Time { return bidEnd.Add(time.Second) }
		_, err = svc.Update(ctx, alice, id, bid.UpdateRequest{BidAmount: amountPtr(320)})
		assert.ErrorIs(t, err, bid.ErrBidWindowClosed)
	})

	t.Run("new amount re-validated against bounds", func(t *testing.T) {
		svc, _, _ := newBidServiceForTest(inWindow)
		id := place(svc)

		_, err := svc.Update(ctx, alice, id, bid.UpdateRequest{BidAmount: amountPtr(50)})
		assert.ErrorIs(t, err, tender.ErrBidBelowMinimum)
	})

	t.Run("unknown bid", func(t *testing.T) {
		svc, _, _ := newBidServiceForTest(inWindow)
		_, err := svc.Update(ctx, alice, "missing", bid.UpdateRequest{BidAmount: amountPtr(300)})
		assert.ErrorIs(t, err, bid.ErrBidNotFound)
	})
}
