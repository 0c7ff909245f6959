package bid

import (
	"time"

	"github.com/etenderhq/etender-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// CreateRequest - POST /bids
type CreateRequest struct {
	TenderID  string           `json:"tenderId"`
	BidAmount *decimal.Decimal `json:"bidAmount"`
	Remarks   *string          `json:"remarks,omitempty"`
}

func (r *CreateRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.TenderID) {
		errs = append(errs, validator.ValidationError{
			Field:   "tenderId",
			Message: "tenderId is required",
		})
	}

	if r.BidAmount == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "bidAmount",
			Message: "bidAmount is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// UpdateRequest - PUT /bids/{id}. Only supplied fields are applied;
// remarks may be set to the empty string.
type UpdateRequest struct {
	BidAmount *decimal.Decimal `json:"bidAmount,omitempty"`
	Remarks   *string          `json:"remarks,omitempty"`
}

// Response is the bid shape returned to callers.
type Response struct {
	ID        string          `json:"id"`
	TenderID  string          `json:"tenderId"`
	BidderID  string          `json:"bidderId"`
	BidAmount decimal.Decimal `json:"bidAmount"`
	Remarks   *string         `json:"remarks,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// NewResponse maps a bid entity to its response shape.
func NewResponse(b Bid) Response {
	return Response{
		ID:        b.ID,
		TenderID:  b.TenderID,
		BidderID:  b.BidderID,
		BidAmount: b.BidAmount,
		Remarks:   b.Remarks,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}
