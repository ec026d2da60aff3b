package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/becopy/becopy-api/internal/config"
	"github.com/becopy/becopy-api/internal/model"
	"github.com/becopy/becopy-api/internal/repository"
	"github.com/becopy/becopy-api/shared/security"
)

// PasswordResetUsecase drives the forgot-password flow: a code is emailed,
// matched, and finally consumed when the password is changed. Matching alone
// never consumes the code.
type PasswordResetUsecase interface {
	// SendCode emails a reset code to the given address. Unknown addresses
	// are silently ignored to prevent email enumeration.
	SendCode(ctx context.Context, email string) error

	// MatchCode checks a submitted code without consuming it.
	MatchCode(ctx context.Context, email, code string) error

	// ChangePassword consumes the code and stores the new password hash.
	ChangePassword(ctx context.Context, email, code, newPassword string) error
}

type passwordResetUsecase struct {
	userRepo repository.UserRepository
	codeRepo repository.VerificationCodeRepository
	mailer   Mailer
	cfg      *config.Config
}

// NewPasswordResetUsecase creates a new instance of PasswordResetUsecase.
func NewPasswordResetUsecase(
	userRepo repository.UserRepository,
	codeRepo repository.VerificationCodeRepository,
	mailer Mailer,
	cfg *config.Config,
) PasswordResetUsecase {
	return &passwordResetUsecase{
		userRepo: userRepo,
		codeRepo: codeRepo,
		mailer:   mailer,
		cfg:      cfg,
	}
}

func (u *passwordResetUsecase) SendCode(ctx context.Context, email string) error {
	user, err := u.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			// To prevent email enumeration, do not reveal that the email
			// does not exist.
			return nil
		}
		return err
	}

	if err := u.codeRepo.InvalidateUserCodes(ctx, user.ID.Hex(), model.CodePurposePasswordReset); err != nil {
		return err
	}

	code, err := security.GenerateCode()
	if err != nil {
		return err
	}

	codeHash, err := security.HashCode(code)
	if err != nil {
		return err
	}

	ttl := u.cfg.Token.ResetCodeTTL
	if _, err := u.codeRepo.CreateCode(ctx, &model.VerificationCode{
		UserID:    user.ID,
		Email:     user.Email,
		CodeHash:  codeHash,
		Purpose:   model.CodePurposePasswordReset,
		ExpiresAt: time.Now().Add(ttl),
	}); err != nil {
		return err
	}

	htmlBody := fmt.Sprintf(`
		<p>Hi,</p>
		<p>We received a request to reset the password for your account.</p>
		<p>If you made this request, enter the code below to create a new password:</p>

		<h2>%s</h2>

		<p>The code expires in %s for your security.</p>
		<p>If you did not request a password reset, you can safely ignore this email; your account will remain secure.</p>

		<p>Thank you,</p>
		<p>BeCopy Team</p>
	`, code, ttl)

	return u.mailer.SendHTML([]string{user.Email}, "Password Reset Request", htmlBody)
}

func (u *passwordResetUsecase) MatchCode(ctx context.Context, email, code string) error {
	_, _, err := u.matchResetCode(ctx, email, code)
	return err
}

func (u *passwordResetUsecase) ChangePassword(ctx context.Context, email, code, newPassword string) error {
	user, stored, err := u.matchResetCode(ctx, email, code)
	if err != nil {
		return err
	}

	passwordHash, err := security.HashPassword(newPassword)
	if err != nil {
		return err
	}

	if _, err := u.userRepo.UpdateUser(ctx, user.ID.Hex(), repository.UpdateUserParams{
		PasswordHash: &passwordHash,
	}); err != nil {
		return err
	}

	return u.codeRepo.MarkCodeAsUsed(ctx, stored.ID.Hex())
}

func (u *passwordResetUsecase) matchResetCode(
	ctx context.Context,
	email, code string,
) (*model.User, *model.VerificationCode, error) {
	user, err := u.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			// Indistinguishable from a wrong code on purpose.
			return nil, nil, ErrInvalidCode
		}
		return nil, nil, err
	}

	stored, err := u.codeRepo.GetLatestCode(ctx, user.ID.Hex(), model.CodePurposePasswordReset)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil, ErrInvalidCode
		}
		return nil, nil, err
	}

	if stored.Used {
		return nil, nil, ErrCodeAlreadyUsed
	}
	if stored.Expired(time.Now()) {
		return nil, nil, ErrCodeExpired
	}
	if stored.Attempts >= u.cfg.Token.MaxVerifyAttempts {
		return nil, nil, ErrTooManyAttempts
	}

	ok, err := security.VerifyCode(code, stored.CodeHash)
	if err != nil {
		return nil, nil, err
	}
	if !ok {
		if err := u.codeRepo.IncrementAttempts(ctx, stored.ID.Hex()); err != nil {
			return nil, nil, err
		}
		return nil, nil, ErrInvalidCode
	}

	return user, stored, nil
}
