package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// SessionSweeper drops expired in-memory sessions.
type SessionSweeper interface {
	Sweep() int
}

// RevocationPruner forgets revoked tokens that have expired anyway.
type RevocationPruner interface {
	PruneRevokedTokens() int
}

// RefreshTokenCleaner deletes persisted refresh tokens past their expiry.
type RefreshTokenCleaner interface {
	DeleteExpiredRefreshTokens(ctx context.Context) (int64, error)
}

// AuthJobs keeps session and token state bounded.
type AuthJobs struct {
	sessions      SessionSweeper
	revocations   RevocationPruner
	refreshTokens RefreshTokenCleaner
	interval      time.Duration
}

func NewAuthJobs(sessions SessionSweeper, revocations RevocationPruner, refreshTokens RefreshTokenCleaner, interval time.Duration) *AuthJobs {
	return &AuthJobs{
		sessions:      sessions,
		revocations:   revocations,
		refreshTokens: refreshTokens,
		interval:      interval,
	}
}

func (j *AuthJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("sweep_expired_sessions", j.interval, j.SweepSessions)
	scheduler.AddJob("prune_revoked_tokens", j.interval, j.PruneRevokedTokens)
	if j.refreshTokens != nil {
		scheduler.AddJob("delete_expired_refresh_tokens", 6*j.interval, j.DeleteExpiredRefreshTokens)
	}
}

func (j *AuthJobs) SweepSessions(ctx context.Context) error {
	if removed := j.sessions.Sweep(); removed > 0 {
		slog.Info("Cron: expired sessions removed", "count", removed)
	}
	return nil
}

func (j *AuthJobs) PruneRevokedTokens(ctx context.Context) error {
	if removed := j.revocations.PruneRevokedTokens(); removed > 0 {
		slog.Info("Cron: revoked tokens pruned", "count", removed)
	}
	return nil
}

func (j *AuthJobs) DeleteExpiredRefreshTokens(ctx context.Context) error {
	deleted, err := j.refreshTokens.DeleteExpiredRefreshTokens(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete expired refresh tokens: %w", err)
	}
	if deleted > 0 {
		slog.Info("Cron: expired refresh tokens deleted", "count", deleted)
	}
	return nil
}
