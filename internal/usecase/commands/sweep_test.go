//go:build unit

package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"facility-booking/internal/usecase/commands"
	sharedmock "facility-booking/tests/mock/shared"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestIdempotencySweeper_SweepOnce(t *testing.T) {
	ctx := context.Background()

	testCases := []struct {
		name     string
		deleted  int64
		err      error
		expected int64
	}{
		{name: "success: deletes expired keys", deleted: 4, expected: 4},
		{name: "success: nothing to delete", deleted: 0, expected: 0},
		{name: "error: database failure counts as zero", err: errors.New("connection reset"), expected: 0},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := sharedmock.NewMockIdempotencySweeper(ctrl)
			repo.EXPECT().DeleteExpired(ctx).Return(tc.deleted, tc.err)

			s := commands.NewIdempotencySweeper(repo, time.Minute)

			assert.Equal(t, tc.expected, s.SweepOnce(ctx))
		})
	}
}

func TestIdempotencySweeper_Run(t *testing.T) {
	t.Run("success: stops on cancel", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := sharedmock.NewMockIdempotencySweeper(ctrl)
		repo.EXPECT().DeleteExpired(gomock.Any()).Return(int64(0), nil).AnyTimes()

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan struct{})
		go func() {
			commands.NewIdempotencySweeper(repo, 10*time.Millisecond).Run(ctx)
			close(done)
		}()

		time.Sleep(35 * time.Millisecond)
		cancel()

		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("sweeper did not stop")
		}
	})

	t.Run("success: zero interval returns immediately", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := sharedmock.NewMockIdempotencySweeper(ctrl)

		commands.NewIdempotencySweeper(repo, 0).Run(context.Background())
	})
}
