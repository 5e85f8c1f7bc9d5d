package service

import "errors"

// Kind classifies a service failure. The HTTP layer maps kinds to status
// codes; the message is safe to show to the caller.
type Kind string

const (
	KindNotFound       Kind = "not_found"
	KindConflict       Kind = "conflict"
	KindClient         Kind = "client_error"
	KindInvalidRequest Kind = "invalid_request"
	KindInternal       Kind = "internal"
)

// Error is the error type returned by every service operation.
type Error struct {
	Kind    Kind   // Machine-readable classification
	Message string // User-facing message
	Cause   error  // Wrapped store or transport error, never shown to users
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches any *Error of the same kind, so errors.Is(err, ErrNotFound)
// works regardless of message.
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.Kind == t.Kind
	}
	return false
}

// Kind sentinels for errors.Is.
var (
	ErrNotFound       = &Error{Kind: KindNotFound, Message: "not found"}
	ErrConflict       = &Error{Kind: KindConflict, Message: "conflict"}
	ErrClient         = &Error{Kind: KindClient, Message: "Client error"}
	ErrInvalidRequest = &Error{Kind: KindInvalidRequest, Message: "invalid request"}
	ErrInternal       = &Error{Kind: KindInternal, Message: "internal error"}
)

// User-facing messages.
const (
	MsgRegisterFirst     = "Please register to join the organization"
	MsgInvalidToken      = "Invalid invitation token."
	MsgOrgNotFound       = "Organization not found."
	MsgAlreadyMember     = "You are already a member."
	MsgInviteExpired     = "Invitation has expired."
	MsgInviteUsed        = "Invitation has already been used."
	MsgClientError       = "Client error"
	MsgRemoveUserFailed  = "Failed to remove user from organization"
	MsgListOrgsFailed    = "Failed to fetch organizations"
	MsgGetOrgFailed      = "Failed to fetch organization"
	MsgUpdateOrgFailed   = "Failed to update organization"
	MsgListMembersFailed = "Failed to fetch organization members"
	MsgInviteFailed      = "Failed to create invitation"
	MsgRedeemFailed      = "Failed to join organization"
	MsgSearchFailed      = "Failed to search members"
	MsgInvalidEmail      = "Invalid email address"
	MsgNoEmails          = "At least one email is required"
	MsgNameRequired      = "Organization name is required"
	MsgTokenRequired     = "Invitation token is required"
	MsgEmailTaken        = "Email address is registered to another account"
	MsgProvisionFailed   = "Failed to load account"
)

func notFound(msg string) error { return &Error{Kind: KindNotFound, Message: msg} }
func conflict(msg string) error { return &Error{Kind: KindConflict, Message: msg} }

func invalidRequest(msg string) error {
	return &Error{Kind: KindInvalidRequest, Message: msg}
}

func clientError(cause error) error {
	return &Error{Kind: KindClient, Message: MsgClientError, Cause: cause}
}

func internal(msg string, cause error) error {
	return &Error{Kind: KindInternal, Message: msg, Cause: cause}
}

// KindOf returns the kind of err, or KindInternal for foreign errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}
