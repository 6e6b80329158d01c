package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/adarsh-priydarshi-5646/My-Campus-Hub/internal/config"
	"github.com/adarsh-priydarshi-5646/My-Campus-Hub/internal/observability"
	"github.com/adarsh-priydarshi-5646/My-Campus-Hub/internal/repository"
)

// SessionMaintenance runs the scheduled session hygiene jobs: the sweep
// flips expired-but-still-active sessions to inactive, the purge deletes
// long-inactive rows and clears stale reset tokens. The sweep only ever
// deactivates; deletion is strictly a retention measure.
type SessionMaintenance struct {
	cron     *cron.Cron
	sessions repository.SessionRepository
	users    repository.UserRepository
	logger   *slog.Logger
	retain   time.Duration
}

func NewSessionMaintenance(
	cfg *config.Config,
	sessions repository.SessionRepository,
	users repository.UserRepository,
	logger *slog.Logger,
) (*SessionMaintenance, error) {
	m := &SessionMaintenance{
		cron:     cron.New(),
		sessions: sessions,
		users:    users,
		logger:   logger,
		retain:   cfg.SessionPurgeAfter,
	}
	if _, err := m.cron.AddFunc(cfg.SessionSweepSpec, m.sweep); err != nil {
		return nil, err
	}
	if _, err := m.cron.AddFunc(cfg.SessionPurgeSpec, m.purge); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *SessionMaintenance) Start() { m.cron.Start() }

func (m *SessionMaintenance) Stop() {
	stopCtx := m.cron.Stop()
	<-stopCtx.Done()
}

func (m *SessionMaintenance) sweep() {
	n, err := m.sessions.DeactivateExpired(time.Now())
	if err != nil {
		m.logger.Error("session sweep failed", "error", err)
		return
	}
	observability.RecordSessionSweep(context.Background(), "deactivate", n)
	if n > 0 {
		m.logger.Info("expired sessions deactivated", "count", n)
	}
}

func (m *SessionMaintenance) purge() {
	cutoff := time.Now().Add(-m.retain)
	n, err := m.sessions.PurgeExpiredBefore(cutoff)
	if err != nil {
		m.logger.Error("session purge failed", "error", err)
	} else {
		observability.RecordSessionSweep(context.Background(), "purge", n)
		if n > 0 {
			m.logger.Info("stale sessions purged", "count", n, "cutoff", cutoff)
		}
	}

	cleared, err := m.users.ClearExpiredResetTokens(time.Now())
	if err != nil {
		m.logger.Error("reset token cleanup failed", "error", err)
		return
	}
	if cleared > 0 {
		m.logger.Info("expired reset tokens cleared", "count", cleared)
	}
}
