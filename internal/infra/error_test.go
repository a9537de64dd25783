//go:build unit

package infra

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestWrapRepoErr(t *testing.T) {
	tests := []struct {
		name string
		err  error
		kind []RepositoryErrorKind
		want RepositoryErrorKind
	}{
		{name: "unique violation", err: &pgconn.PgError{Code: "23505"}, want: KindDuplicateKey},
		{name: "fk violation", err: &pgconn.PgError{Code: "23503"}, want: KindForeignKeyViolated},
		{name: "other pg error", err: &pgconn.PgError{Code: "42P01"}, want: KindDBFailure},
		{name: "plain error", err: errors.New("boom"), want: KindDBFailure},
		{name: "explicit kind", err: errors.New("gone"), kind: []RepositoryErrorKind{KindNotFound}, want: KindNotFound},
		{name: "nil error with kind", err: nil, kind: []RepositoryErrorKind{KindConflict}, want: KindConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := WrapRepoErr("op", tt.err, tt.kind...)
			assert.True(t, IsKind(err, tt.want))
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
			}
		})
	}
}

func TestRepositoryError_Error(t *testing.T) {
	assert.Equal(t, "NOT_FOUND: missing", WrapRepoErr("missing", nil, KindNotFound).Error())
	assert.Contains(t, WrapRepoErr("load", errors.New("timeout")).Error(), "DB_FAILURE: load")
}
