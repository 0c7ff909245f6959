package tender

import (
	"time"

	"github.com/etenderhq/etender-backend-go/internal/domain/bid"
	"github.com/etenderhq/etender-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// CreateRequest - POST /admin/tenders
type CreateRequest struct {
	Name          string           `json:"name"`
	Description   string           `json:"description"`
	StartBidPrice *decimal.Decimal `json:"startBidPrice,omitempty"`
	MaxBidPrice   *decimal.Decimal `json:"maxBidPrice,omitempty"`
	StartDate     string           `json:"startDate"`
	EndDate       string           `json:"endDate"`
	InvitedEmails []string         `json:"invitedEmails"`
	Status        string           `json:"status,omitempty"`

	parsedStart time.Time
	parsedEnd   time.Time
}

func (r *CreateRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}

	if validator.IsEmpty(r.Description) {
		errs = append(errs, validator.ValidationError{
			Field:   "description",
			Message: "description is required",
		})
	}

	if validator.IsEmpty(r.StartDate) {
		errs = append(errs, validator.ValidationError{
			Field:   "startDate",
			Message: "startDate is required",
		})
	} else if t, ok := validator.IsValidDateTime(r.StartDate); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "startDate",
			Message: "startDate must be an ISO8601 timestamp",
		})
	} else {
		r.parsedStart = t
	}

	if validator.IsEmpty(r.EndDate) {
		errs = append(errs, validator.ValidationError{
			Field:   "endDate",
			Message: "endDate is required",
		})
	} else if t, ok := validator.IsValidDateTime(r.EndDate); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "endDate",
			Message: "endDate must be an ISO8601 timestamp",
		})
	} else {
		r.parsedEnd = t
	}

	if !r.parsedStart.IsZero() && !r.parsedEnd.IsZero() && r.parsedEnd.Before(r.parsedStart) {
		errs = append(errs, validator.ValidationError{
			Field:   "endDate",
			Message: "endDate must not be before startDate",
		})
	}

	if r.Status != "" && r.Status != string(StatusDraft) && r.Status != string(StatusPublished) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be draft or published",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ParsedStartDate returns the start date parsed during Validate.
func (r *CreateRequest) ParsedStartDate() time.Time { return r.parsedStart }

// ParsedEndDate returns the end date parsed during Validate.
func (r *CreateRequest) ParsedEndDate() time.Time { return r.parsedEnd }

// UpdateRequest - PUT /admin/tenders/{id}. Only supplied fields are
// applied; the allow-list matches the struct fields exactly.
type UpdateRequest struct {
	Name          *string          `json:"name,omitempty"`
	Description   *string          `json:"description,omitempty"`
	StartBidPrice *decimal.Decimal `json:"startBidPrice,omitempty"`
	MaxBidPrice   *decimal.Decimal `json:"maxBidPrice,omitempty"`
	StartDate     *string          `json:"startDate,omitempty"`
	EndDate       *string          `json:"endDate,omitempty"`
	InvitedEmails *[]string        `json:"invitedEmails,omitempty"`
	Status        *string          `json:"status,omitempty"`

	parsedStart *time.Time
	parsedEnd   *time.Time
}

func (r *UpdateRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must not be empty",
		})
	}

	if r.Description != nil && validator.IsEmpty(*r.Description) {
		errs = append(errs, validator.ValidationError{
			Field:   "description",
			Message: "description must not be empty",
		})
	}

	if r.StartDate != nil {
		if t, ok := validator.IsValidDateTime(*r.StartDate); ok {
			r.parsedStart = &t
		} else {
			errs = append(errs, validator.ValidationError{
				Field:   "startDate",
				Message: "startDate must be an ISO8601 timestamp",
			})
		}
	}

	if r.EndDate != nil {
		if t, ok := validator.IsValidDateTime(*r.EndDate); ok {
			r.parsedEnd = &t
		} else {
			errs = append(errs, validator.ValidationError{
				Field:   "endDate",
				Message: "endDate must be an ISO8601 timestamp",
			})
		}
	}

	if r.Status != nil && *r.Status != string(StatusDraft) && *r.Status != string(StatusPublished) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be draft or published",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ParsedStartDate returns the parsed start date, or nil when not supplied.
func (r *UpdateRequest) ParsedStartDate() *time.Time { return r.parsedStart }

// ParsedEndDate returns the parsed end date, or nil when not supplied.
func (r *UpdateRequest) ParsedEndDate() *time.Time { return r.parsedEnd }

// AwardRequest - POST /admin/tenders/{id}/award
type AwardRequest struct {
	BidID string `json:"bidId"`
}

// Response is a tender with its derived display status attached.
type Response struct {
	ID            string           `json:"id"`
	CompanyID     string           `json:"companyId"`
	Name          string           `json:"name"`
	Description   string           `json:"description"`
	StartBidPrice *decimal.Decimal `json:"startBidPrice,omitempty"`
	MaxBidPrice   *decimal.Decimal `json:"maxBidPrice,omitempty"`
	StartDate     time.Time        `json:"startDate"`
	EndDate       time.Time        `json:"endDate"`
	InvitedEmails []string         `json:"invitedEmails"`
	Status        Status           `json:"status"`
	AwardedBidID  *string          `json:"awardedBidId,omitempty"`
	CreatedAt     time.Time        `json:"createdAt"`
	DisplayStatus DisplayStatus    `json:"displayStatus"`
}

// NewResponse attaches the display status derived at now.
func NewResponse(t Tender, now time.Time) Response {
	return Response{
		ID:            t.ID,
		CompanyID:     t.CompanyID,
		Name:          t.Name,
		Description:   t.Description,
		StartBidPrice: t.StartBidPrice,
		MaxBidPrice:   t.MaxBidPrice,
		StartDate:     t.StartDate,
		EndDate:       t.EndDate,
		InvitedEmails: t.InvitedEmails,
		Status:        t.Status,
		AwardedBidID:  t.AwardedBidID,
		CreatedAt:     t.CreatedAt,
		DisplayStatus: t.DisplayStatus(now),
	}
}

// ListItem - GET /admin/tenders entries
type ListItem struct {
	Response
	BidCount int `json:"bidCount"`
}

// WithBids - GET /tenders/{id}/bids
type WithBids struct {
	Tender Response         `json:"tender"`
	Bids   []bid.WithBidder `json:"bids"`
}

// MyTenderItem - GET /my-tenders entries
type MyTenderItem struct {
	Response
	BidCount int           `json:"bidCount"`
	MyBid    *bid.Response `json:"myBid"`
	IsWinner bool          `json:"isWinner"`
}
