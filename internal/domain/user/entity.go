package user

import "time"

type Role string

const (
	RoleAdmin  Role = "admin"  // Manages tenders, awards bids
	RoleBidder Role = "bidder" // Invited participant, places bids
)

type User struct {
	ID           string
	Email        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsAdmin checks if user can manage tenders
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Identity is the caller identity extracted from a verified credential.
// Only email and role ever leave the core; credential fields never do.
type Identity struct {
	ID    string
	Email string
	Role  Role
}

// IsAdmin checks if the caller has the admin role
func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}
