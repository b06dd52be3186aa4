package background

import (
	"context"
	"log/slog"
	"time"

	"github.com/jdelarosa/entradas/internal/lockout"
	"github.com/jdelarosa/entradas/internal/repositories"
)

// CleanupManager periodically sweeps stale lockout records from memory and
// expired login attempt audit rows from the database.
type CleanupManager struct {
	tracker      *lockout.Tracker
	attemptsRepo *repositories.LoginAttemptRepository
	logger       *slog.Logger
	interval     time.Duration
	stopCh       chan struct{}
}

// NewCleanupManager creates a new cleanup manager
func NewCleanupManager(
	tracker *lockout.Tracker,
	attemptsRepo *repositories.LoginAttemptRepository,
	logger *slog.Logger,
	interval time.Duration,
) *CleanupManager {
	return &CleanupManager{
		tracker:      tracker,
		attemptsRepo: attemptsRepo,
		logger:       logger,
		interval:     interval,
		stopCh:       make(chan struct{}),
	}
}

// Start begins the periodic cleanup task
func (cm *CleanupManager) Start(ctx context.Context) {
	ticker := time.NewTicker(cm.interval)
	defer ticker.Stop()

	// Run immediately on startup
	cm.runCleanup(ctx)

	for {
		select {
		case <-ticker.C:
			cm.runCleanup(ctx)
		case <-cm.stopCh:
			cm.logger.Info("cleanup manager stopped")
			return
		case <-ctx.Done():
			cm.logger.Info("cleanup manager context cancelled")
			return
		}
	}
}

func (cm *CleanupManager) runCleanup(ctx context.Context) {
	swept := cm.tracker.Sweep()
	if swept > 0 {
		cm.logger.Info("lockout sweep completed",
			slog.Int("records_removed", swept),
			slog.Int("records_remaining", cm.tracker.Len()))
	}

	cleanupCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	rowsDeleted, err := cm.attemptsRepo.DeleteExpired(cleanupCtx)
	if err != nil {
		cm.logger.Error("failed to delete expired login attempts", slog.Any("error", err))
		return
	}
	if rowsDeleted > 0 {
		cm.logger.Info("login attempt cleanup completed", slog.Int64("rows_deleted", rowsDeleted))
	}
}

// Stop signals the cleanup manager to stop
func (cm *CleanupManager) Stop() {
	close(cm.stopCh)
}
