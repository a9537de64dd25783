// Package session carries the per-request upstream context: which PMS host to
// call, which token to present and which currency to render amounts in.
//
// A Context is built once per request from the operator token and passed
// explicitly to every component that talks upstream. Nothing in this module
// reads ambient storage for these values.
package session

import (
	"context"
	"errors"
	"strings"
)

var ErrMissingSession = errors.New("session context missing")

type Context struct {
	BaseURL   string
	AuthToken string
	Currency  string
}

type ctxKey struct{}

// New normalises the upstream host. Bare hosts are assumed to be served over https.
func New(baseURL, token, currency string) Context {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL != "" && !strings.Contains(baseURL, "://") {
		baseURL = "https://" + baseURL
	}
	return Context{
		BaseURL:   baseURL,
		AuthToken: token,
		Currency:  strings.TrimSpace(currency),
	}
}

func (c Context) Valid() bool {
	return c.BaseURL != "" && c.AuthToken != ""
}

func WithContext(ctx context.Context, s Context) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

func FromContext(ctx context.Context) (Context, error) {
	s, ok := ctx.Value(ctxKey{}).(Context)
	if !ok || !s.Valid() {
		return Context{}, ErrMissingSession
	}
	return s, nil
}
