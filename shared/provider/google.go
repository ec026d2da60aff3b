package provider

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"google.golang.org/api/oauth2/v2"
	"google.golang.org/api/option"
)

var ErrInvalidGoogleAudience = errors.New("invalid google audience")

// GoogleOAuthProvider verifies Google ID tokens and fetches the profile of
// the user they belong to.
type GoogleOAuthProvider struct {
	clientID string
	client   *http.Client
}

// NewGoogleOAuthProvider creates a provider bound to the given OAuth client ID.
func NewGoogleOAuthProvider(clientID string) *GoogleOAuthProvider {
	return &GoogleOAuthProvider{
		clientID: clientID,
		client:   &http.Client{Timeout: 10 * time.Second},
	}
}

func (p *GoogleOAuthProvider) Name() string { return ProviderGoogle }

// VerifyToken validates the ID token against Google's tokeninfo endpoint and
// resolves the user's profile.
func (p *GoogleOAuthProvider) VerifyToken(ctx context.Context, idToken string) (*UserInfo, error) {
	tokenInfo, err := p.validateIDToken(ctx, idToken)
	if err != nil {
		return nil, err
	}

	info := &UserInfo{
		ProviderID: tokenInfo.UserId,
		Email:      tokenInfo.Email,
	}

	// The tokeninfo endpoint does not return a display name; fetch it from
	// the userinfo endpoint when the token allows it.
	if userInfo, err := p.getUserInfo(ctx, idToken); err == nil {
		info.Name = userInfo.Name
		info.Picture = userInfo.Picture
	}

	return info, nil
}

func (p *GoogleOAuthProvider) validateIDToken(ctx context.Context, idToken string) (*oauth2.Tokeninfo, error) {
	oauth2Service, err := oauth2.NewService(ctx, option.WithHTTPClient(p.client))
	if err != nil {
		return nil, err
	}

	tokenInfoCall := oauth2Service.Tokeninfo()
	tokenInfoCall.IdToken(idToken)
	tokenInfo, err := tokenInfoCall.Do()
	if err != nil {
		return nil, ErrInvalidToken
	}

	if tokenInfo.Audience != p.clientID {
		return nil, ErrInvalidGoogleAudience
	}

	return tokenInfo, nil
}

func (p *GoogleOAuthProvider) getUserInfo(ctx context.Context, accessToken string) (*oauth2.Userinfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, "https://www.googleapis.com/oauth2/v1/userinfo", nil)
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
		return nil, errors.New("status code is not OK")
	}

	var userInfo oauth2.Userinfo
	if err := json.NewDecoder(resp.Body).Decode(&userInfo); err != nil {
		return nil, err
	}

	return &userInfo, nil
}
