package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/becopy/becopy-api/internal/model"
)

type inviteFixture struct {
	usecase    InviteUsecase
	inviteRepo *fakeInviteRepo
	sender     string
	recipient  string
}

func newInviteFixture(t *testing.T) *inviteFixture {
	t.Helper()

	userRepo := newFakeUserRepo()
	inviteRepo := newFakeInviteRepo()
	ctx := context.Background()

	sender, err := userRepo.CreateUser(ctx, &model.User{
		Name:     "Sender",
		Email:    "sender@example.com",
		UserType: model.UserTypeUser,
	})
	require.NoError(t, err)

	recipient, err := userRepo.CreateUser(ctx, &model.User{
		Name:     "Recipient",
		Email:    "recipient@example.com",
		UserType: model.UserTypeUser,
	})
	require.NoError(t, err)

	return &inviteFixture{
		usecase:    NewInviteUsecase(inviteRepo, userRepo),
		inviteRepo: inviteRepo,
		sender:     sender.ID.Hex(),
		recipient:  recipient.ID.Hex(),
	}
}

func TestSendInvite(t *testing.T) {
	f := newInviteFixture(t)
	ctx := context.Background()

	invite, err := f.usecase.SendInvite(ctx, f.sender, f.recipient, "let's talk")
	require.NoError(t, err)
	assert.Equal(t, model.InviteStatusPending, invite.Status)
	assert.Equal(t, "let's talk", invite.Message)

	received, err := f.usecase.ListReceived(ctx, f.recipient)
	require.NoError(t, err)
	require.Len(t, received, 1)
	assert.Equal(t, invite.ID, received[0].ID)

	sent, err := f.usecase.ListSent(ctx, f.sender)
	require.NoError(t, err)
	require.Len(t, sent, 1)
}

func TestSendInviteToSelf(t *testing.T) {
	f := newInviteFixture(t)

	_, err := f.usecase.SendInvite(context.Background(), f.sender, f.sender, "hi me")
	assert.ErrorIs(t, err, ErrSelfInvite)
}

func TestSendInviteUnknownRecipient(t *testing.T) {
	f := newInviteFixture(t)

	_, err := f.usecase.SendInvite(context.Background(), f.sender, "64b0c5f1e4b0c5f1e4b0c5f1", "hello")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestSendInviteDuplicatePending(t *testing.T) {
	f := newInviteFixture(t)
	ctx := context.Background()

	_, err := f.usecase.SendInvite(ctx, f.sender, f.recipient, "first")
	require.NoError(t, err)

	_, err = f.usecase.SendInvite(ctx, f.sender, f.recipient, "second")
	assert.ErrorIs(t, err, ErrInvitePending)

	// The pending check is direction agnostic.
	_, err = f.usecase.SendInvite(ctx, f.recipient, f.sender, "back at you")
	assert.ErrorIs(t, err, ErrInvitePending)
}

func TestAcceptInvite(t *testing.T) {
	f := newInviteFixture(t)
	ctx := context.Background()

	invite, err := f.usecase.SendInvite(ctx, f.sender, f.recipient, "hello")
	require.NoError(t, err)

	accepted, err := f.usecase.Accept(ctx, invite.ID.Hex(), f.recipient)
	require.NoError(t, err)
	assert.Equal(t, model.InviteStatusAccepted, accepted.Status)
	assert.NotEmpty(t, accepted.ConversationID)

	// Once resolved, the same pair may exchange a fresh invite.
	_, err = f.usecase.SendInvite(ctx, f.sender, f.recipient, "again")
	assert.NoError(t, err)
}

func TestDeclineInvite(t *testing.T) {
	f := newInviteFixture(t)
	ctx := context.Background()

	invite, err := f.usecase.SendInvite(ctx, f.sender, f.recipient, "hello")
	require.NoError(t, err)

	declined, err := f.usecase.Decline(ctx, invite.ID.Hex(), f.recipient)
	require.NoError(t, err)
	assert.Equal(t, model.InviteStatusDeclined, declined.Status)
	assert.Empty(t, declined.ConversationID)
}

func TestAcceptInviteOnlyRecipient(t *testing.T) {
	f := newInviteFixture(t)
	ctx := context.Background()

	invite, err := f.usecase.SendInvite(ctx, f.sender, f.recipient, "hello")
	require.NoError(t, err)

	// The sender cannot accept their own invite.
	_, err = f.usecase.Accept(ctx, invite.ID.Hex(), f.sender)
	assert.ErrorIs(t, err, ErrNotRecipient)
}

func TestAcceptInviteTwice(t *testing.T) {
	f := newInviteFixture(t)
	ctx := context.Background()

	invite, err := f.usecase.SendInvite(ctx, f.sender, f.recipient, "hello")
	require.NoError(t, err)

	_, err = f.usecase.Accept(ctx, invite.ID.Hex(), f.recipient)
	require.NoError(t, err)

	_, err = f.usecase.Accept(ctx, invite.ID.Hex(), f.recipient)
	assert.ErrorIs(t, err, ErrInviteResolved)

	_, err = f.usecase.Decline(ctx, invite.ID.Hex(), f.recipient)
	assert.ErrorIs(t, err, ErrInviteResolved)
}

func TestAcceptInviteNotFound(t *testing.T) {
	f := newInviteFixture(t)

	_, err := f.usecase.Accept(context.Background(), "64b0c5f1e4b0c5f1e4b0c5f1", f.recipient)
	assert.ErrorIs(t, err, ErrInviteNotFound)
}
