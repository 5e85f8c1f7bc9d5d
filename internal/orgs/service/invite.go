package service

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	netmail "net/mail"
	"net/url"
	"strings"
	"time"

	"github.com/aussiebroadwan/orgs/internal/orgs/domain"
	"github.com/aussiebroadwan/orgs/internal/orgs/mail"
	"github.com/aussiebroadwan/orgs/internal/orgs/store"
	"github.com/aussiebroadwan/orgs/pkg/idx"
	"github.com/aussiebroadwan/orgs/pkg/slogx"
	"github.com/google/uuid"
)

const (
	InviteSubject   = "Invitation to Join Organization"
	DefaultMailFrom = "no-reply@orgs.local"
)

// InvitePolicy controls what redemption enforces for one kind of token.
type InvitePolicy struct {
	EnforceExpiry bool
	SingleUse     bool
}

var (
	// DefaultLinkPolicy keeps shareable links reusable until they expire.
	DefaultLinkPolicy = InvitePolicy{EnforceExpiry: true, SingleUse: false}

	// DefaultTargetedPolicy lets an emailed invitation be redeemed once.
	DefaultTargetedPolicy = InvitePolicy{EnforceExpiry: true, SingleUse: true}
)

// SendResult reports how many invitations were persisted and enqueued.
type SendResult struct {
	Sent int
}

type InviteService struct {
	Store    store.Store
	Queue    mail.Queue
	Renderer *mail.Renderer

	// BaseURL is the frontend origin used in invite links.
	BaseURL  string
	MailFrom string

	// InviteTTL overrides the default lifetime of one calendar year.
	InviteTTL time.Duration

	LinkPolicy     InvitePolicy
	TargetedPolicy InvitePolicy

	// Now is overridable in tests.
	Now func() time.Time
}

func (s *InviteService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

func (s *InviteService) expiresAt(issued time.Time) time.Time {
	if s.InviteTTL > 0 {
		return issued.Add(s.InviteTTL)
	}
	return issued.AddDate(1, 0, 0)
}

func (s *InviteService) policyFor(kind domain.InviteKind) InvitePolicy {
	if kind == domain.InviteKindTargeted {
		return s.TargetedPolicy
	}
	return s.LinkPolicy
}

// InviteURL builds <base>/accept-invite/<escaped org name>?token=<token>. The
// name is only for display; the token alone identifies the organization.
func InviteURL(baseURL, orgName, token string) string {
	return strings.TrimRight(baseURL, "/") +
		"/accept-invite/" + url.PathEscape(orgName) +
		"?token=" + url.QueryEscape(token)
}

// GenerateInviteLink mints a shareable token for the organization and
// returns the link to redeem it.
func (s *InviteService) GenerateInviteLink(ctx context.Context, orgID string) (string, error) {
	log := slogx.FromContext(ctx).With(slog.String("org_id", orgID))

	// 1. Organization must exist
	org, err := s.Store.Organizations().GetOrganizationByID(ctx, orgID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", notFound(MsgOrgNotFound)
		}
		log.Error("failed to fetch organization", slog.Any("error", err))
		return "", internal(MsgInviteFailed, err)
	}

	// 2. Persist the token
	issued := s.now()
	tok := domain.InviteToken{
		ID:             idx.New().String(),
		Token:          uuid.NewString(),
		OrganizationID: org.ID,
		Kind:           domain.InviteKindLink,
		ExpiresAt:      s.expiresAt(issued),
		CreatedAt:      issued,
	}
	if err := s.Store.InviteTokens().CreateInviteToken(ctx, tok); err != nil {
		log.Error("failed to create invite token", slog.Any("error", err))
		return "", internal(MsgInviteFailed, err)
	}

	log.Debug("invite link generated",
		slog.String("invite_token_id", tok.ID),
		slog.Time("expires_at", tok.ExpiresAt),
	)

	// 3. Build the link
	return InviteURL(s.BaseURL, org.Name, tok.Token), nil
}

// SendInviteLinks mints one targeted token and invitation per email and
// enqueues an invitation email for each. Emails are handled one at a time;
// a failure stops the loop but keeps everything already sent.
func (s *InviteService) SendInviteLinks(ctx context.Context, orgID string, emails []string) (SendResult, error) {
	log := slogx.FromContext(ctx).With(slog.String("org_id", orgID))

	// 1. Validate every address before writing anything
	recipients, err := normalizeEmails(emails)
	if err != nil {
		return SendResult{}, err
	}

	// 2. Organization must exist
	org, err := s.Store.Organizations().GetOrganizationByID(ctx, orgID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return SendResult{}, notFound(MsgOrgNotFound)
		}
		log.Error("failed to fetch organization", slog.Any("error", err))
		return SendResult{}, internal(MsgInviteFailed, err)
	}

	var res SendResult
	for _, email := range recipients {
		// 3. Token and invitation are written together
		issued := s.now()
		tok := domain.InviteToken{
			ID:             idx.New().String(),
			Token:          uuid.NewString(),
			OrganizationID: org.ID,
			Kind:           domain.InviteKindTargeted,
			ExpiresAt:      s.expiresAt(issued),
			CreatedAt:      issued,
		}
		err := s.Store.WithTx(ctx, func(tx store.Tx) error {
			if err := tx.InviteTokens().CreateInviteToken(ctx, tok); err != nil {
				return err
			}
			return tx.Invitations().CreateInvitation(ctx, domain.Invitation{
				ID:             idx.New().String(),
				Token:          tok.Token,
				OrganizationID: org.ID,
				Email:          email,
				InviteTokenID:  tok.ID,
				CreatedAt:      issued,
			})
		})
		if err != nil {
			log.Error("failed to persist invitation",
				slog.String("email", email),
				slog.Int("sent", res.Sent),
				slog.Any("error", err),
			)
			return res, internal(MsgInviteFailed, err)
		}

		// 4. Render and enqueue after commit
		msg, err := s.inviteMessage(org, email, tok.Token)
		if err == nil {
			err = s.Queue.Enqueue(ctx, msg)
		}
		if err != nil {
			log.Error("failed to enqueue invitation email",
				slog.String("email", email),
				slog.Int("sent", res.Sent),
				slog.Any("error", err),
			)
			return res, internal(MsgInviteFailed, err)
		}
		res.Sent++
	}

	log.Info("invitations sent", slog.Int("sent", res.Sent))
	return res, nil
}

func (s *InviteService) inviteMessage(org domain.Organization, to, token string) (mail.Message, error) {
	if s.Renderer == nil {
		return mail.Message{}, errors.New("no mail renderer configured")
	}

	link := InviteURL(s.BaseURL, org.Name, token)
	body := fmt.Sprintf(
		"<p>You have been invited to join %s organization. Please use the following link to accept the invitation:</p>",
		template.HTMLEscapeString(org.Name),
	)

	html, err := s.Renderer.Render(mail.TemplateCustomEmail, mail.Content{
		Title:     InviteSubject,
		Body:      template.HTML(body),
		ActionURL: link,
	})
	if err != nil {
		return mail.Message{}, err
	}

	from := s.MailFrom
	if from == "" {
		from = DefaultMailFrom
	}

	return mail.Message{
		From:    from,
		To:      to,
		Subject: InviteSubject,
		HTML:    html,
	}, nil
}

// normalizeEmails trims, lower-cases and de-duplicates the list, keeping the
// first occurrence order.
func normalizeEmails(emails []string) ([]string, error) {
	out := make([]string, 0, len(emails))
	seen := make(map[string]struct{}, len(emails))

	for _, raw := range emails {
		email := strings.ToLower(strings.TrimSpace(raw))
		if email == "" {
			continue
		}
		addr, err := netmail.ParseAddress(email)
		if err != nil || addr.Address != email {
			return nil, invalidRequest(MsgInvalidEmail + ": " + strings.TrimSpace(raw))
		}
		if _, dup := seen[email]; dup {
			continue
		}
		seen[email] = struct{}{}
		out = append(out, email)
	}

	if len(out) == 0 {
		return nil, invalidRequest(MsgNoEmails)
	}
	return out, nil
}
