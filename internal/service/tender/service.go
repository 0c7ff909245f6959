package tender

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/etenderhq/etender-backend-go/internal/domain/bid"
	"github.com/etenderhq/etender-backend-go/internal/domain/notification"
	"github.com/etenderhq/etender-backend-go/internal/domain/tender"
	"github.com/etenderhq/etender-backend-go/internal/domain/user"
	"github.com/etenderhq/etender-backend-go/internal/pkg/validator"
)

type TenderServiceImpl struct {
	tenderRepo tender.TenderRepository
	bidRepo    bid.BidRepository
	userRepo   user.UserRepository
	dispatcher notification.Dispatcher

	// now is the per-request clock snapshot source; overridable in tests.
	now func() time.Time
}

func NewTenderService(
	tenderRepo tender.TenderRepository,
	bidRepo bid.BidRepository,
	userRepo user.UserRepository,
	dispatcher notification.Dispatcher,
) *TenderServiceImpl {
	return &TenderServiceImpl{
		tenderRepo: tenderRepo,
		bidRepo:    bidRepo,
		userRepo:   userRepo,
		dispatcher: dispatcher,
		now:        time.Now,
	}
}

// Create implements tender.TenderService.
func (s *TenderServiceImpl) Create(ctx context.Context, companyID string, req tender.CreateRequest) (tender.Response, error) {
	if err := req.Validate(); err != nil {
		return tender.Response{}, err
	}

	status := tender.Status(req.Status)
	if status == "" {
		status = tender.StatusDraft
	}

	newTender := tender.Tender{
		CompanyID:     companyID,
		Name:          req.Name,
		Description:   req.Description,
		StartBidPrice: req.StartBidPrice,
		MaxBidPrice:   req.MaxBidPrice,
		StartDate:     req.ParsedStartDate(),
		EndDate:       req.ParsedEndDate(),
		InvitedEmails: validator.NormalizeEmails(req.InvitedEmails),
		Status:        status,
	}

	created, err := s.tenderRepo.Create(ctx, newTender)
	if err != nil {
		return tender.Response{}, fmt.Errorf("failed to create tender: %w", err)
	}

	if created.Status == tender.StatusPublished {
		s.dispatcher.Dispatch(ctx, invitationTasks(created))
	}

	return tender.NewResponse(created, s.now()), nil
}

// Update implements tender.TenderService. Edits are blocked once the
// bidding window can have begun, regardless of the current display
// phase.
func (s *TenderServiceImpl) Update(ctx context.Context, companyID, id string, req tender.UpdateRequest) (tender.Response, error) {
	if err := req.Validate(); err != nil {
		return tender.Response{}, err
	}

	t, err := s.getScoped(ctx, companyID, id)
	if err != nil {
		return tender.Response{}, err
	}

	now := s.now()
	if !now.Before(t.StartDate) {
		return tender.Response{}, tender.ErrEditWindowClosed
	}

	wasPublished := t.Status == tender.StatusPublished

	if req.Name != nil {
		t.Name = *req.Name
	}
	if req.Description != nil {
		t.Description = *req.Description
	}
	if req.StartBidPrice != nil {
		t.StartBidPrice = req.StartBidPrice
	}
	if req.MaxBidPrice != nil {
		t.MaxBidPrice = req.MaxBidPrice
	}
	if req.ParsedStartDate() != nil {
		t.StartDate = *req.ParsedStartDate()
	}
	if req.ParsedEndDate() != nil {
		t.EndDate = *req.ParsedEndDate()
	}
	if req.InvitedEmails != nil {
		t.InvitedEmails = validator.NormalizeEmails(*req.InvitedEmails)
	}
	if req.Status != nil {
		newStatus := tender.Status(*req.Status)
		if wasPublished && newStatus == tender.StatusDraft {
			return tender.Response{}, tender.ErrCannotUnpublish
		}
		t.Status = newStatus
	}

	if t.EndDate.Before(t.StartDate) {
		return tender.Response{}, tender.ErrEndBeforeStart
	}

	updated, err := s.tenderRepo.Update(ctx, t)
	if err != nil {
		return tender.Response{}, fmt.Errorf("failed to update tender: %w", err)
	}

	// Publish transition fires invitations exactly once; re-publishing
	// an already-published tender does not re-invite.
	if !wasPublished && updated.Status == tender.StatusPublished {
		s.dispatcher.Dispatch(ctx, invitationTasks(updated))
	}

	return tender.NewResponse(updated, now), nil
}

// Award implements tender.TenderService. The transition is one-way: a
// second award attempt against the same tender hard-fails.
func (s *TenderServiceImpl) Award(ctx context.Context, companyID, id, bidID string) (tender.Response, error) {
	if validator.IsEmpty(bidID) {
		return tender.Response{}, tender.ErrMissingBidID
	}

	t, err := s.getScoped(ctx, companyID, id)
	if err != nil {
		return tender.Response{}, err
	}

	if t.IsAwarded() {
		return tender.Response{}, tender.ErrAlreadyAwarded
	}

	now := s.now()
	if now.Before(t.EndDate) {
		return tender.Response{}, tender.ErrAwardTooEarly
	}

	winningBid, err := s.bidRepo.GetByID(ctx, bidID)
	if err != nil {
		if errors.Is(err, bid.ErrBidNotFound) {
			return tender.Response{}, bid.ErrBidNotFound
		}
		return tender.Response{}, fmt.Errorf("failed to get winning bid: %w", err)
	}
	// A bid belonging to another tender reads as not found rather than
	// leaking that the id exists elsewhere.
	if winningBid.TenderID != t.ID {
		return tender.Response{}, bid.ErrBidNotFound
	}

	awarded, err := s.tenderRepo.SetAwarded(ctx, t.ID, winningBid.ID)
	if err != nil {
		return tender.Response{}, err
	}

	winner, err := s.userRepo.GetByID(ctx, winningBid.BidderID)
	if err != nil {
		return tender.Response{}, fmt.Errorf("failed to resolve winning bidder: %w", err)
	}

	recipients, err := s.bidRepo.ListBidderEmails(ctx, t.ID)
	if err != nil {
		return tender.Response{}, fmt.Errorf("failed to list bidder emails: %w", err)
	}

	s.dispatcher.Dispatch(ctx, []notification.Task{notification.AwardTask{
		Tender:      awarded,
		WinningBid:  winningBid,
		WinnerEmail: winner.Email,
		Recipients:  recipients,
	}})

	return tender.NewResponse(awarded, now), nil
}

// List implements tender.TenderService.
func (s *TenderServiceImpl) List(ctx context.Context, companyID string) ([]tender.ListItem, error) {
	tenders, err := s.tenderRepo.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tenders: %w", err)
	}

	ids := make([]string, 0, len(tenders))
	for _, t := range tenders {
		ids = append(ids, t.ID)
	}

	counts, err := s.bidRepo.CountByTenderIn(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to count bids: %w", err)
	}

	now := s.now()
	items := make([]tender.ListItem, 0, len(tenders))
	for _, t := range tenders {
		items = append(items, tender.ListItem{
			Response: tender.NewResponse(t, now),
			BidCount: counts[t.ID],
		})
	}

	return items, nil
}

// GetWithBids implements tender.TenderService.
func (s *TenderServiceImpl) GetWithBids(ctx context.Context, id string, caller user.Identity) (tender.WithBids, error) {
	t, err := s.tenderRepo.GetByID(ctx, id)
	if err != nil {
		return tender.WithBids{}, err
	}

	if !caller.IsAdmin() && !t.IsInvited(caller.Email) {
		return tender.WithBids{}, bid.ErrNotInvited
	}

	bids, err := s.bidRepo.ListByTenderWithBidders(ctx, t.ID)
	if err != nil {
		return tender.WithBids{}, fmt.Errorf("failed to list bids: %w", err)
	}

	return tender.WithBids{
		Tender: tender.NewResponse(t, s.now()),
		Bids:   bids,
	}, nil
}

// MyTenders implements tender.TenderService.
func (s *TenderServiceImpl) MyTenders(ctx context.Context, caller user.Identity) ([]tender.MyTenderItem, error) {
	email := validator.NormalizeEmail(caller.Email)

	tenders, err := s.tenderRepo.ListByInvitedEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to list invited tenders: %w", err)
	}

	ids := make([]string, 0, len(tenders))
	for _, t := range tenders {
		ids = append(ids, t.ID)
	}

	counts, err := s.bidRepo.CountByTenderIn(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to count bids: %w", err)
	}

	myBids, err := s.bidRepo.ListByTenderAndBidderIn(ctx, ids, caller.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list own bids: %w", err)
	}
	myBidByTender := make(map[string]bid.Bid, len(myBids))
	for _, b := range myBids {
		myBidByTender[b.TenderID] = b
	}

	now := s.now()
	items := make([]tender.MyTenderItem, 0, len(tenders))
	for _, t := range tenders {
		item := tender.MyTenderItem{
			Response: tender.NewResponse(t, now),
			BidCount: counts[t.ID],
		}
		if b, ok := myBidByTender[t.ID]; ok {
			resp := bid.NewResponse(b)
			item.MyBid = &resp
			item.IsWinner = t.AwardedBidID != nil && *t.AwardedBidID == b.ID
		}
		items = append(items, item)
	}

	return items, nil
}

// getScoped fetches a tender and hides it from callers outside its
// company scope.
func (s *TenderServiceImpl) getScoped(ctx context.Context, companyID, id string) (tender.Tender, error) {
	t, err := s.tenderRepo.GetByID(ctx, id)
	if err != nil {
		return tender.Tender{}, err
	}
	if t.CompanyID != companyID {
		return tender.Tender{}, tender.ErrTenderNotFound
	}
	return t, nil
}

// invitationTasks builds one independent task per invited email.
func invitationTasks(t tender.Tender) []notification.Task {
	tasks := make([]notification.Task, 0, len(t.InvitedEmails))
	for _, addr := range t.InvitedEmails {
		tasks = append(tasks, notification.InvitationTask{Tender: t, Email: addr})
	}
	return tasks
}
