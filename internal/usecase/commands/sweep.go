package commands

import (
	"context"
	"log/slog"
	"time"

	"facility-booking/internal/usecase/shared"
)

// IdempotencySweeper deletes expired idempotency keys on a fixed interval.
type IdempotencySweeper struct {
	repo     shared.IdempotencySweeper
	interval time.Duration
}

func NewIdempotencySweeper(repo shared.IdempotencySweeper, interval time.Duration) *IdempotencySweeper {
	return &IdempotencySweeper{repo: repo, interval: interval}
}

// Run blocks until ctx is cancelled.
func (s *IdempotencySweeper) Run(ctx context.Context) {
	if s.interval <= 0 {
		return
	}
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.SweepOnce(ctx)
		}
	}
}

func (s *IdempotencySweeper) SweepOnce(ctx context.Context) int64 {
	deleted, err := s.repo.DeleteExpired(ctx)
	if err != nil {
		slog.Warn("idempotency sweep failed", slog.String("error", err.Error()))
		return 0
	}
	if deleted > 0 {
		slog.Info("expired idempotency keys deleted", slog.Int64("count", deleted))
	}
	return deleted
}
