package notification

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/etenderhq/etender-backend-go/internal/domain/notification"
	"github.com/etenderhq/etender-backend-go/internal/domain/user"
	"github.com/etenderhq/etender-backend-go/internal/pkg/email"
	"github.com/etenderhq/etender-backend-go/internal/pkg/password"
	"github.com/etenderhq/etender-backend-go/internal/pkg/validator"
	"golang.org/x/crypto/bcrypt"
)

const sendTimeout = 30 * time.Second

// DispatcherImpl executes post-commit notification tasks. Failures are
// logged and swallowed: a tender mutation that already committed never
// fails because an email could not be delivered.
type DispatcherImpl struct {
	userRepo    user.UserRepository
	emailSvc    email.EmailService
	frontendURL string

	// wg lets tests wait for async dispatches to drain.
	wg sync.WaitGroup
}

func NewDispatcher(userRepo user.UserRepository, emailSvc email.EmailService, frontendURL string) *DispatcherImpl {
	return &DispatcherImpl{
		userRepo:    userRepo,
		emailSvc:    emailSvc,
		frontendURL: frontendURL,
	}
}

// Dispatch implements notification.Dispatcher. Tasks run on a background
// goroutine with a fresh context: abandoning the originating request
// must not cancel in-flight sends.
func (d *DispatcherImpl) Dispatch(_ context.Context, tasks []notification.Task) {
	if len(tasks) == 0 {
		return
	}

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), sendTimeout*time.Duration(len(tasks)))
		defer cancel()
		d.Run(ctx, tasks)
	}()
}

// Wait blocks until all dispatched task batches have finished.
func (d *DispatcherImpl) Wait() {
	d.wg.Wait()
}

// Run executes tasks synchronously. Each task is independent; one
// failure never prevents attempting the rest.
func (d *DispatcherImpl) Run(ctx context.Context, tasks []notification.Task) {
	for _, task := range tasks {
		var err error
		switch t := task.(type) {
		case notification.InvitationTask:
			err = d.runInvitation(ctx, t)
		case notification.AwardTask:
			err = d.runAward(t)
		default:
			err = fmt.Errorf("unknown task kind %q", task.Kind())
		}
		if err != nil {
			slog.Error("notification task failed", "kind", task.Kind(), "error", err)
		}
	}
}

// runInvitation provisions a bidder account when the invited email is
// unknown, then sends the invitation. Only freshly provisioned accounts
// receive the temporary credential.
func (d *DispatcherImpl) runInvitation(ctx context.Context, task notification.InvitationTask) error {
	addr := validator.NormalizeEmail(task.Email)

	data := email.InvitationData{
		TenderName:        task.Tender.Name,
		TenderDescription: task.Tender.Description,
		StartDate:         task.Tender.StartDate.Format(time.RFC1123),
		EndDate:           task.Tender.EndDate.Format(time.RFC1123),
		TenderLink:        fmt.Sprintf("%s/tenders/%s", d.frontendURL, task.Tender.ID),
		LoginEmail:        addr,
	}

	_, err := d.userRepo.GetByEmail(ctx, addr)
	switch {
	case err == nil:
		// Existing account: invitation without credential material.
	case errors.Is(err, user.ErrUserNotFound):
		tempPassword, genErr := password.Generate(password.DefaultLength)
		if genErr != nil {
			return fmt.Errorf("generate temporary password: %w", genErr)
		}

		hash, hashErr := bcrypt.GenerateFromPassword([]byte(tempPassword), bcrypt.DefaultCost)
		if hashErr != nil {
			return fmt.Errorf("hash temporary password: %w", hashErr)
		}

		_, createErr := d.userRepo.Create(ctx, user.User{
			Email:        addr,
			PasswordHash: string(hash),
			Role:         user.RoleBidder,
		})
		if errors.Is(createErr, user.ErrUserEmailExists) {
			// Raced with another publish; the account exists now, send
			// without credentials.
		} else if createErr != nil {
			return fmt.Errorf("provision bidder account: %w", createErr)
		} else {
			data.IsNewUser = true
			data.TempPassword = tempPassword
		}
	default:
		return fmt.Errorf("look up invited user: %w", err)
	}

	if sendErr := d.emailSvc.SendInvitation(addr, data); sendErr != nil {
		return fmt.Errorf("send invitation to %s: %w", addr, sendErr)
	}
	return nil
}

// runAward sends one result email to the deduplicated recipient union.
// An empty set skips the send entirely.
func (d *DispatcherImpl) runAward(task notification.AwardTask) error {
	recipients := validator.NormalizeEmails(append(append([]string{}, task.Recipients...), task.WinnerEmail))
	if len(recipients) == 0 {
		return nil
	}

	data := email.AwardData{
		TenderName:    task.Tender.Name,
		WinnerEmail:   validator.NormalizeEmail(task.WinnerEmail),
		WinningAmount: task.WinningBid.BidAmount.String(),
		TenderLink:    fmt.Sprintf("%s/tenders/%s", d.frontendURL, task.Tender.ID),
	}

	if err := d.emailSvc.SendAwardResult(recipients, data); err != nil {
		return fmt.Errorf("send award result: %w", err)
	}
	return nil
}
