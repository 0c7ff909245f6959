package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/etenderhq/etender-backend-go/internal/domain/auth"
	"github.com/etenderhq/etender-backend-go/internal/domain/bid"
	"github.com/etenderhq/etender-backend-go/internal/domain/tender"
	"github.com/etenderhq/etender-backend-go/internal/domain/user"
	"github.com/etenderhq/etender-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses. Handlers call this for
// any error coming back from a service so status mapping stays in one place.
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		details := make(map[string]string, len(validationErrs))
		for _, ve := range validationErrs {
			details[ve.Field] = ve.Message
		}
		ValidationError(w, details)
		return
	}

	switch {
	case errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, err.Error())

	case errors.Is(err, user.ErrAdminAccessRequired),
		errors.Is(err, user.ErrBidderAccessRequired),
		errors.Is(err, bid.ErrNotInvited),
		errors.Is(err, bid.ErrNotBidOwner):
		Forbidden(w, err.Error())

	case errors.Is(err, tender.ErrTenderNotFound),
		errors.Is(err, bid.ErrBidNotFound),
		errors.Is(err, user.ErrUserNotFound):
		NotFound(w, err.Error())

	case errors.Is(err, bid.ErrDuplicateBid),
		errors.Is(err, user.ErrUserEmailExists):
		Conflict(w, err.Error())

	case errors.Is(err, tender.ErrEditWindowClosed),
		errors.Is(err, tender.ErrCannotUnpublish),
		errors.Is(err, tender.ErrEndBeforeStart),
		errors.Is(err, tender.ErrMissingBidID),
		errors.Is(err, tender.ErrAwardTooEarly),
		errors.Is(err, tender.ErrAlreadyAwarded),
		errors.Is(err, tender.ErrBidBeforeStart),
		errors.Is(err, tender.ErrBidAfterEnd),
		errors.Is(err, tender.ErrBidBelowMinimum),
		errors.Is(err, tender.ErrBidAboveMaximum),
		errors.Is(err, bid.ErrBidWindowClosed),
		errors.Is(err, auth.ErrResetTokenInvalid),
		errors.Is(err, auth.ErrResetTokenExpired),
		errors.Is(err, auth.ErrResetTokenUsed):
		BadRequest(w, err.Error(), nil)

	default:
		slog.Error("unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
