package provider

import (
	"context"
	"errors"
)

// Supported OAuth providers.
const (
	ProviderGoogle   = "google"
	ProviderLinkedIn = "linkedin"
	ProviderEmail    = "email"
)

var (
	ErrUnknownProvider = errors.New("unknown oauth provider")
	ErrInvalidToken    = errors.New("invalid provider token")
)

// UserInfo is the normalized identity returned by every OAuth provider.
type UserInfo struct {
	ProviderID string
	Email      string
	Name       string
	Picture    string
}

// OAuthProvider verifies a provider-issued credential and resolves the
// identity behind it.
type OAuthProvider interface {
	Name() string
	VerifyToken(ctx context.Context, token string) (*UserInfo, error)
}

// Registry holds the configured OAuth providers keyed by name.
type Registry struct {
	providers map[string]OAuthProvider
}

// NewRegistry creates a Registry from the given providers.
func NewRegistry(providers ...OAuthProvider) *Registry {
	m := make(map[string]OAuthProvider, len(providers))
	for _, p := range providers {
		m[p.Name()] = p
	}

	return &Registry{providers: m}
}

// Get returns the provider registered under the given name.
func (r *Registry) Get(name string) (OAuthProvider, error) {
	p, ok := r.providers[name]
	if !ok {
		return nil, ErrUnknownProvider
	}

	return p, nil
}
