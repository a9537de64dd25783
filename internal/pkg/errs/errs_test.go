//go:build unit

package errs

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMarkAndIs(t *testing.T) {
	cause := errors.New("connection reset")
	marked := Mark(Wrap(cause, "load draft"), ErrDraftStoreFailed)

	assert.True(t, Is(marked, ErrDraftStoreFailed))
	assert.True(t, Is(marked, cause))
	assert.False(t, Is(marked, ErrDraftNotFound))
	assert.Contains(t, marked.Error(), "load draft")
}

func TestMark_NilErr(t *testing.T) {
	assert.Equal(t, ErrDraftConflict, Mark(nil, ErrDraftConflict))
	assert.Nil(t, Wrap(nil, "noop"))
}

func TestExtractStackLines(t *testing.T) {
	assert.Nil(t, ExtractStackLines(nil, 3))
	assert.Len(t, ExtractStackLines(New("boom"), 2), 2)
}
