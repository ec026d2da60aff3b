package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func newTestAuthenticator() JWTAuthenticator {
	return NewJWTAuthenticator("becopy", "becopy")
}

func TestNewUserTokenAndValidate(t *testing.T) {
	jwtAuth := newTestAuthenticator()

	token, err := jwtAuth.NewUserToken("64f0c2a1d4e8b93f6a1b2c3d", "user", testSecret, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := jwtAuth.ValidateToken(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, "64f0c2a1d4e8b93f6a1b2c3d", claims.UserID)
	assert.Equal(t, "user", claims.Role)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	jwtAuth := newTestAuthenticator()

	token, err := jwtAuth.NewUserToken("64f0c2a1d4e8b93f6a1b2c3d", "admin", testSecret, time.Hour)
	require.NoError(t, err)

	_, err = jwtAuth.ValidateToken(token, "another-secret")
	assert.Error(t, err)
}

func TestValidateTokenExpired(t *testing.T) {
	jwtAuth := newTestAuthenticator()

	token, err := jwtAuth.NewUserToken("64f0c2a1d4e8b93f6a1b2c3d", "user", testSecret, -time.Minute)
	require.NoError(t, err)

	_, err = jwtAuth.ValidateToken(token, testSecret)
	assert.Error(t, err)
}

func TestValidateTokenWrongAudience(t *testing.T) {
	other := NewJWTAuthenticator("someone-else", "someone-else")

	token, err := other.NewUserToken("64f0c2a1d4e8b93f6a1b2c3d", "user", testSecret, time.Hour)
	require.NoError(t, err)

	jwtAuth := newTestAuthenticator()
	_, err = jwtAuth.ValidateToken(token, testSecret)
	assert.Error(t, err)
}

func TestValidateTokenGarbage(t *testing.T) {
	jwtAuth := newTestAuthenticator()

	_, err := jwtAuth.ValidateToken("not-a-token", testSecret)
	assert.Error(t, err)
}
