package usecase

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/becopy/becopy-api/internal/model"
	"github.com/becopy/becopy-api/internal/repository"
)

func TestCreateChatSession(t *testing.T) {
	cfg := newTestConfig()
	cfg.TalkJS.AppID = "app-123"
	cfg.TalkJS.SecretKey = "chat-secret"

	userRepo := newFakeUserRepo()
	user, err := userRepo.CreateUser(context.Background(), &model.User{
		Name:     "Jane Doe",
		Email:    "jane@example.com",
		UserType: model.UserTypeUser,
	})
	require.NoError(t, err)

	u := NewChatUsecase(userRepo, cfg)

	session, err := u.CreateSession(context.Background(), user.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, "app-123", session.AppID)
	assert.Equal(t, user.ID.Hex(), session.UserID)
	assert.Equal(t, "jane@example.com", session.User.Email)

	mac := hmac.New(sha256.New, []byte("chat-secret"))
	mac.Write([]byte(user.ID.Hex()))
	assert.Equal(t, hex.EncodeToString(mac.Sum(nil)), session.Signature)
}

func TestCreateChatSessionNotConfigured(t *testing.T) {
	cfg := newTestConfig()
	u := NewChatUsecase(newFakeUserRepo(), cfg)

	_, err := u.CreateSession(context.Background(), "64b0c5f1e4b0c5f1e4b0c5f1")
	assert.ErrorIs(t, err, ErrChatNotConfigured)
}

func TestCreateChatSessionUnknownUser(t *testing.T) {
	cfg := newTestConfig()
	cfg.TalkJS.SecretKey = "chat-secret"
	u := NewChatUsecase(newFakeUserRepo(), cfg)

	_, err := u.CreateSession(context.Background(), "64b0c5f1e4b0c5f1e4b0c5f1")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

// failingUserRepo simulates a database outage on every lookup.
type failingUserRepo struct {
	repository.UserRepository
	err error
}

func (r *failingUserRepo) GetUser(context.Context, string) (*model.User, error) {
	return nil, r.err
}

func TestCreateChatSessionDatabaseError(t *testing.T) {
	cfg := newTestConfig()
	cfg.TalkJS.SecretKey = "chat-secret"

	dbErr := errors.New("connection reset")
	u := NewChatUsecase(&failingUserRepo{err: dbErr}, cfg)

	_, err := u.CreateSession(context.Background(), "64b0c5f1e4b0c5f1e4b0c5f1")

	// An outage must not masquerade as a missing user.
	assert.ErrorIs(t, err, dbErr)
	assert.NotErrorIs(t, err, ErrUserNotFound)
}
