package tender

import (
	"time"

	"github.com/etenderhq/etender-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// Status is the persisted, write-driven lifecycle state. Time-driven
// phases are never written into it; see DisplayStatus.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusPublished Status = "published"
	StatusAwarded   Status = "awarded"
)

// DisplayStatus is the time-derived phase, recomputed on every read.
type DisplayStatus string

const (
	DisplayUpcoming DisplayStatus = "Upcoming"
	DisplayActive   DisplayStatus = "Active"
	DisplayClosed   DisplayStatus = "Closed"
	DisplayAwarded  DisplayStatus = "Awarded"
)

// Tender represents a time-boxed solicitation for bids
type Tender struct {
	ID            string
	CompanyID     string
	Name          string
	Description   string
	StartBidPrice *decimal.Decimal
	MaxBidPrice   *decimal.Decimal
	StartDate     time.Time
	EndDate       time.Time
	InvitedEmails []string
	Status        Status
	AwardedBidID  *string
	CreatedAt     time.Time
}

// DisplayStatus derives the lifecycle phase from the award state and the
// bidding window. Pure; callers pass a single now snapshot per request so
// all fields computed for one response agree on the boundary.
func (t *Tender) DisplayStatus(now time.Time) DisplayStatus {
	if t.AwardedBidID != nil {
		return DisplayAwarded
	}
	if now.Before(t.StartDate) {
		return DisplayUpcoming
	}
	if !now.After(t.EndDate) {
		return DisplayActive
	}
	return DisplayClosed
}

// ValidateBidWindow checks that now falls inside the bidding window.
// Both boundaries are inclusive: a bid exactly at StartDate or EndDate
// is accepted.
func (t *Tender) ValidateBidWindow(now time.Time) error {
	if now.Before(t.StartDate) {
		return ErrBidBeforeStart
	}
	if now.After(t.EndDate) {
		return ErrBidAfterEnd
	}
	return nil
}

// ValidateBidAmount checks the amount against the optional price bounds.
// Each bound is independent; an absent bound leaves that side
// unconstrained.
func (t *Tender) ValidateBidAmount(amount decimal.Decimal) error {
	if t.StartBidPrice != nil && amount.LessThan(*t.StartBidPrice) {
		return ErrBidBelowMinimum
	}
	if t.MaxBidPrice != nil && amount.GreaterThan(*t.MaxBidPrice) {
		return ErrBidAboveMaximum
	}
	return nil
}

// IsAwarded reports whether the tender has reached its terminal state.
func (t *Tender) IsAwarded() bool {
	return t.AwardedBidID != nil || t.Status == StatusAwarded
}

// IsInvited reports whether the given email (normalized before the
// check) is on the invited list.
func (t *Tender) IsInvited(email string) bool {
	normalized := validator.NormalizeEmail(email)
	for _, invited := range t.InvitedEmails {
		if invited == normalized {
			return true
		}
	}
	return false
}
