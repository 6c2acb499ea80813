package domain

import "time"

// InviteCode gates registration. A code transitions unconsumed -> consumed
// exactly once: UsedBy and UsedAt are set together and never cleared.
type InviteCode struct {
	ID        string
	Code      string
	CreatedBy string
	UsedBy    *string
	UsedAt    *time.Time
	CreatedAt time.Time
	ExpiresAt *time.Time // nil means the code never expires
}

// Consumed reports whether the code has already been redeemed.
func (c InviteCode) Consumed() bool { return c.UsedBy != nil }

// Expired reports whether the code's expiry has passed at the given instant.
func (c InviteCode) Expired(now time.Time) bool {
	return c.ExpiresAt != nil && c.ExpiresAt.Before(now)
}
