package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/orgs/internal/orgs/domain"
	"github.com/aussiebroadwan/orgs/internal/orgs/store"
)

// HousekeepingService periodically deletes expired invite tokens. Their
// invitations go with them through the foreign key cascade. Only kinds whose
// policy enforces expiry are purged, since the others stay redeemable.
type HousekeepingService struct {
	Store    store.Store
	Logger   *slog.Logger
	Interval time.Duration

	// LinkPolicy and TargetedPolicy must match the InviteService's.
	LinkPolicy     InvitePolicy
	TargetedPolicy InvitePolicy

	stopCh chan struct{}
	doneCh chan struct{}
}

// NewHousekeepingService creates a new housekeeping service with the given interval.
// If interval is 0 or negative, defaults to 1 hour.
func NewHousekeepingService(store store.Store, logger *slog.Logger, interval time.Duration) *HousekeepingService {
	if interval <= 0 {
		interval = 1 * time.Hour
	}

	return &HousekeepingService{
		Store:    store,
		Logger:   logger,
		Interval: interval,

		LinkPolicy:     DefaultLinkPolicy,
		TargetedPolicy: DefaultTargetedPolicy,

		stopCh: make(chan struct{}),
		doneCh: make(chan struct{}),
	}
}

// Start runs a cleanup immediately and then on every tick. Non-blocking.
func (s *HousekeepingService) Start() {
	go s.run()
	s.Logger.Info("housekeeping service started", "interval", s.Interval)
}

// Stop blocks until any in-progress cleanup has finished.
func (s *HousekeepingService) Stop() {
	close(s.stopCh)
	<-s.doneCh
	s.Logger.Info("housekeeping service stopped")
}

func (s *HousekeepingService) run() {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	s.Cleanup(context.Background())

	for {
		select {
		case <-ticker.C:
			s.Cleanup(context.Background())
		case <-s.stopCh:
			return
		}
	}
}

// Cleanup deletes expired records and returns how many tokens were removed.
func (s *HousekeepingService) Cleanup(ctx context.Context) int64 {
	kinds := s.expiringKinds()
	if len(kinds) == 0 {
		return 0
	}

	deleted, err := s.Store.InviteTokens().DeleteExpiredInviteTokens(ctx, time.Now().UTC(), kinds...)
	if err != nil {
		s.Logger.Error("failed to delete expired invite tokens", "error", err)
		return 0
	}

	s.Logger.Info("housekeeping cleanup completed", "expired_invite_tokens", deleted)
	return deleted
}

func (s *HousekeepingService) expiringKinds() []domain.InviteKind {
	var kinds []domain.InviteKind
	if s.LinkPolicy.EnforceExpiry {
		kinds = append(kinds, domain.InviteKindLink)
	}
	if s.TargetedPolicy.EnforceExpiry {
		kinds = append(kinds, domain.InviteKindTargeted)
	}
	return kinds
}
