package models

import "time"

// SystemInviteIssuer marks invites generated at bootstrap rather than by a user.
const SystemInviteIssuer = "system"

// InviteCode represents a one-time registration token. It transitions from
// unused to used exactly once and is never deleted.
type InviteCode struct {
	Code      string     `json:"code"`
	CreatedBy string     `json:"createdBy"`
	CreatedAt time.Time  `json:"createdAt"`
	Used      bool       `json:"used"`
	UsedBy    *string    `json:"usedBy,omitempty"`
	UsedAt    *time.Time `json:"usedAt,omitempty"`
}
