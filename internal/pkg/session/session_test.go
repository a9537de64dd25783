//go:build unit

package session

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		baseURL string
		want    string
	}{
		{name: "no scheme", baseURL: "fm.example.com", want: "https://fm.example.com"},
		{name: "trailing slash", baseURL: "https://fm.example.com/", want: "https://fm.example.com"},
		{name: "http kept as is", baseURL: "http://localhost:8080", want: "http://localhost:8080"},
		{name: "empty", baseURL: "  ", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(tt.baseURL, "token", " INR ")
			assert.Equal(t, tt.want, s.BaseURL)
			assert.Equal(t, "INR", s.Currency)
		})
	}
}

func TestFromContext(t *testing.T) {
	_, err := FromContext(context.Background())
	require.ErrorIs(t, err, ErrMissingSession)

	_, err = FromContext(WithContext(context.Background(), New("host", "", "INR")))
	require.ErrorIs(t, err, ErrMissingSession)

	want := New("host", "tok", "INR")
	got, err := FromContext(WithContext(context.Background(), want))
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
