package usecase

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/becopy/becopy-api/internal/model"
	"github.com/becopy/becopy-api/internal/repository"
)

// InviteUsecase defines the chat invite use cases.
type InviteUsecase interface {
	SendInvite(ctx context.Context, senderID, recipientID, message string) (*model.Invite, error)
	ListReceived(ctx context.Context, userID string) ([]*model.Invite, error)
	ListSent(ctx context.Context, userID string) ([]*model.Invite, error)

	// Accept moves a pending invite to accepted and mints the conversation
	// id the chat provider will use. Only the recipient may accept.
	Accept(ctx context.Context, inviteID, userID string) (*model.Invite, error)

	// Decline moves a pending invite to declined. Only the recipient may
	// decline.
	Decline(ctx context.Context, inviteID, userID string) (*model.Invite, error)
}

var (
	ErrInviteNotFound = errors.New("invite not found")
	ErrInvitePending  = errors.New("an invite between these users is already pending")
	ErrInviteResolved = errors.New("invite has already been resolved")
	ErrNotRecipient   = errors.New("only the recipient may resolve an invite")
	ErrSelfInvite     = errors.New("cannot invite yourself")
)

type inviteUsecase struct {
	inviteRepo repository.InviteRepository
	userRepo   repository.UserRepository
}

// NewInviteUsecase creates a new instance of InviteUsecase.
func NewInviteUsecase(inviteRepo repository.InviteRepository, userRepo repository.UserRepository) InviteUsecase {
	return &inviteUsecase{
		inviteRepo: inviteRepo,
		userRepo:   userRepo,
	}
}

func (u *inviteUsecase) SendInvite(ctx context.Context, senderID, recipientID, message string) (*model.Invite, error) {
	if senderID == recipientID {
		return nil, ErrSelfInvite
	}

	if _, err := u.userRepo.GetUser(ctx, recipientID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	pending, err := u.inviteRepo.HasPendingInvite(ctx, senderID, recipientID)
	if err != nil {
		return nil, err
	}
	if pending {
		return nil, ErrInvitePending
	}

	senderOID, err := bson.ObjectIDFromHex(senderID)
	if err != nil {
		return nil, err
	}
	recipientOID, err := bson.ObjectIDFromHex(recipientID)
	if err != nil {
		return nil, err
	}

	return u.inviteRepo.CreateInvite(ctx, &model.Invite{
		SenderID:    senderOID,
		RecipientID: recipientOID,
		Message:     message,
	})
}

func (u *inviteUsecase) ListReceived(ctx context.Context, userID string) ([]*model.Invite, error) {
	return u.inviteRepo.ListByRecipient(ctx, userID)
}

func (u *inviteUsecase) ListSent(ctx context.Context, userID string) ([]*model.Invite, error) {
	return u.inviteRepo.ListBySender(ctx, userID)
}

func (u *inviteUsecase) Accept(ctx context.Context, inviteID, userID string) (*model.Invite, error) {
	if err := u.checkResolvable(ctx, inviteID, userID); err != nil {
		return nil, err
	}

	invite, err := u.inviteRepo.ResolveInvite(ctx, inviteID, model.InviteStatusAccepted, uuid.NewString())
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			// Lost the race against another resolution.
			return nil, ErrInviteResolved
		}
		return nil, err
	}

	return invite, nil
}

func (u *inviteUsecase) Decline(ctx context.Context, inviteID, userID string) (*model.Invite, error) {
	if err := u.checkResolvable(ctx, inviteID, userID); err != nil {
		return nil, err
	}

	invite, err := u.inviteRepo.ResolveInvite(ctx, inviteID, model.InviteStatusDeclined, "")
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrInviteResolved
		}
		return nil, err
	}

	return invite, nil
}

func (u *inviteUsecase) checkResolvable(ctx context.Context, inviteID, userID string) error {
	invite, err := u.inviteRepo.GetInvite(ctx, inviteID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrInviteNotFound
		}
		return err
	}

	if invite.RecipientID.Hex() != userID {
		return ErrNotRecipient
	}

	if invite.Resolved() {
		return ErrInviteResolved
	}

	return nil
}
