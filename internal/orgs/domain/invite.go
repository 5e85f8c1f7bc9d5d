package domain

import "time"

type InviteKind string

const (
	// InviteKindLink is a shareable token anyone can redeem.
	InviteKindLink InviteKind = "link"
	// InviteKindTargeted is a token paired with a recipient email.
	InviteKindTargeted InviteKind = "targeted"
)

type InviteToken struct {
	ID             string
	Token          string
	OrganizationID string
	Kind           InviteKind
	ExpiresAt      time.Time
	UsedAt         *time.Time
	UsedBy         string // Empty until first redemption
	CreatedAt      time.Time
}

func (t InviteToken) Expired(now time.Time) bool {
	return !now.Before(t.ExpiresAt)
}

func (t InviteToken) Used() bool {
	return t.UsedAt != nil
}

// Invitation addresses an InviteToken to a single email.
type Invitation struct {
	ID             string
	Token          string
	OrganizationID string
	Email          string
	InviteTokenID  string
	AcceptedAt     *time.Time
	CreatedAt      time.Time
}
