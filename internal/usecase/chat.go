package usecase

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"

	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/becopy/becopy-api/internal/config"
	"github.com/becopy/becopy-api/internal/model"
	"github.com/becopy/becopy-api/internal/repository"
)

// ChatSession carries everything the frontend needs to open the embedded chat
// widget in identity-verification mode.
type ChatSession struct {
	AppID     string      `json:"appId"`
	UserID    string      `json:"userId"`
	Signature string      `json:"signature"`
	User      *model.User `json:"user"`
}

// ChatUsecase mints chat provider sessions.
type ChatUsecase interface {
	CreateSession(ctx context.Context, userID string) (*ChatSession, error)
}

// ErrChatNotConfigured is returned when no chat provider secret is set.
var ErrChatNotConfigured = errors.New("chat provider is not configured")

type chatUsecase struct {
	userRepo repository.UserRepository
	cfg      *config.Config
}

// NewChatUsecase creates a new instance of ChatUsecase.
func NewChatUsecase(userRepo repository.UserRepository, cfg *config.Config) ChatUsecase {
	return &chatUsecase{
		userRepo: userRepo,
		cfg:      cfg,
	}
}

func (u *chatUsecase) CreateSession(ctx context.Context, userID string) (*ChatSession, error) {
	if u.cfg.TalkJS.SecretKey == "" {
		return nil, ErrChatNotConfigured
	}

	user, err := u.userRepo.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	// The provider expects hex(HMAC-SHA256(secret, userID)) so that the
	// widget can prove the session was minted server side.
	mac := hmac.New(sha256.New, []byte(u.cfg.TalkJS.SecretKey))
	mac.Write([]byte(userID))
	signature := hex.EncodeToString(mac.Sum(nil))

	return &ChatSession{
		AppID:     u.cfg.TalkJS.AppID,
		UserID:    userID,
		Signature: signature,
		User:      user,
	}, nil
}
