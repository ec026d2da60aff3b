package provider

import (
	"context"
	"encoding/json"
	"net/http"
	"time"
)

const linkedinUserInfoURL = "https://api.linkedin.com/v2/userinfo"

// LinkedInOAuthProvider resolves LinkedIn identities from OpenID Connect
// access tokens.
type LinkedInOAuthProvider struct {
	client *http.Client
}

// NewLinkedInOAuthProvider creates a LinkedIn provider.
func NewLinkedInOAuthProvider() *LinkedInOAuthProvider {
	return &LinkedInOAuthProvider{
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

func (p *LinkedInOAuthProvider) Name() string { return ProviderLinkedIn }

// VerifyToken calls LinkedIn's userinfo endpoint with the access token. A
// token LinkedIn rejects is reported as ErrInvalidToken.
func (p *LinkedInOAuthProvider) VerifyToken(ctx context.Context, accessToken string) (*UserInfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, linkedinUserInfoURL, nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, ErrInvalidToken
	}

	var payload struct {
		Sub     string `json:"sub"`
		Email   string `json:"email"`
		Name    string `json:"name"`
		Picture string `json:"picture"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, err
	}

	return &UserInfo{
		ProviderID: payload.Sub,
		Email:      payload.Email,
		Name:       payload.Name,
		Picture:    payload.Picture,
	}, nil
}
