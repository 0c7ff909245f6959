package auth

import "time"

// PasswordReset is a single-use, expiring reset token issued by the
// forgot-password flow.
type PasswordReset struct {
	ID        string
	UserID    string
	Token     string
	ExpiresAt time.Time
	UsedAt    *time.Time
	CreatedAt time.Time
}

// IsExpired checks if the reset token has expired (query-time check)
func (p *PasswordReset) IsExpired(now time.Time) bool {
	return now.After(p.ExpiresAt)
}

// IsUsed checks if the reset token has been consumed
func (p *PasswordReset) IsUsed() bool {
	return p.UsedAt != nil
}
