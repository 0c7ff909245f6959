package user

import "context"

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user record
	Create(ctx context.Context, newUser User) (User, error)

	// GetByID retrieves a user by id
	GetByID(ctx context.Context, id string) (User, error)

	// GetByEmail retrieves a user by normalized email
	GetByEmail(ctx context.Context, email string) (User, error)

	// ListByEmails retrieves all users whose email is in the given set
	ListByEmails(ctx context.Context, emails []string) ([]User, error)

	// UpdatePassword replaces a user's password hash
	UpdatePassword(ctx context.Context, id string, passwordHash string) error
}
