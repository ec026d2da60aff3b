package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/becopy/becopy-api/internal/config"
	"github.com/becopy/becopy-api/internal/model"
	"github.com/becopy/becopy-api/internal/repository"
	"github.com/becopy/becopy-api/shared/auth"
	"github.com/becopy/becopy-api/shared/provider"
	"github.com/becopy/becopy-api/shared/security"
)

// Mailer is the slice of the shared mailer the auth use cases need.
type Mailer interface {
	SendHTML(to []string, subject, htmlBody string) error
}

// AuthUsecase defines the public sign-up/sign-in use cases. OAuth and
// credential sign-ups both funnel through a 6-digit OTP before a token is
// issued.
type AuthUsecase interface {
	// StartOAuth opens a server-side auth flow for the chosen user type and
	// country and returns its nonce.
	StartOAuth(ctx context.Context, params StartOAuthParams) (*model.AuthFlow, error)

	// OAuthLogin verifies a provider credential, creates or resolves the
	// user behind it and issues a signup OTP.
	OAuthLogin(ctx context.Context, params OAuthLoginParams) (*OAuthLoginResult, error)

	// VerifyOTP redeems a signup OTP and returns the access token together
	// with any actions queued while the user was anonymous.
	VerifyOTP(ctx context.Context, params VerifyOTPParams) (*VerifyOTPResult, error)

	// ResendOTP invalidates the outstanding OTP of a flow and issues a new
	// one. The flow state is left untouched.
	ResendOTP(ctx context.Context, nonce string) error

	// QueueAction attaches an anonymous action to a flow for later replay.
	QueueAction(ctx context.Context, nonce string, action model.QueuedAction) error

	// Register creates a credential-based account and issues a signup OTP.
	Register(ctx context.Context, params RegisterUserParams) (*OAuthLoginResult, error)

	// Login authenticates a verified credential-based account.
	Login(ctx context.Context, email, password string) (*model.User, string, error)
}

// StartOAuthParams defines the parameters for opening an auth flow.
type StartOAuthParams struct {
	UserType string
	Country  string
}

// OAuthLoginParams defines the parameters for the OAuth callback exchange.
type OAuthLoginParams struct {
	Nonce    string
	Provider string
	Token    string
}

// OAuthLoginResult identifies the user awaiting OTP verification.
type OAuthLoginResult struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
}

// VerifyOTPParams defines the parameters for redeeming an OTP. Either Nonce
// or UserID must be set; Nonce wins when both are present.
type VerifyOTPParams struct {
	Nonce  string
	UserID string
	Code   string
}

// VerifyOTPResult is the outcome of a successful OTP verification.
type VerifyOTPResult struct {
	Token         string               `json:"token"`
	User          *model.User          `json:"user"`
	QueuedActions []model.QueuedAction `json:"queuedActions,omitempty"`
}

// RegisterUserParams defines the parameters for credential-based sign-up.
type RegisterUserParams struct {
	Name     string
	Email    string
	Password string
	UserType string
	Country  string
}

var (
	ErrFlowNotFound         = errors.New("auth flow not found")
	ErrFlowExpired          = errors.New("auth flow has expired")
	ErrInvalidUserType      = errors.New("invalid user type")
	ErrInvalidProviderToken = errors.New("invalid provider token")
	ErrInvalidCode          = errors.New("invalid verification code")
	ErrCodeExpired          = errors.New("verification code has expired")
	ErrCodeAlreadyUsed      = errors.New("verification code has already been used")
	ErrTooManyAttempts      = errors.New("too many verification attempts")
	ErrEmailNotVerified     = errors.New("email is not verified")
	ErrUserNotFound         = errors.New("user not found")
)

type authUsecase struct {
	userRepo     repository.UserRepository
	identityRepo repository.IdentityRepository
	flowRepo     repository.AuthFlowRepository
	codeRepo     repository.VerificationCodeRepository
	providers    *provider.Registry
	jwtAuth      auth.JWTAuthenticator
	mailer       Mailer
	cfg          *config.Config
}

// NewAuthUsecase creates a new instance of AuthUsecase.
func NewAuthUsecase(
	userRepo repository.UserRepository,
	identityRepo repository.IdentityRepository,
	flowRepo repository.AuthFlowRepository,
	codeRepo repository.VerificationCodeRepository,
	providers *provider.Registry,
	jwtAuth auth.JWTAuthenticator,
	mailer Mailer,
	cfg *config.Config,
) AuthUsecase {
	return &authUsecase{
		userRepo:     userRepo,
		identityRepo: identityRepo,
		flowRepo:     flowRepo,
		codeRepo:     codeRepo,
		providers:    providers,
		jwtAuth:      jwtAuth,
		mailer:       mailer,
		cfg:          cfg,
	}
}

func (u *authUsecase) StartOAuth(ctx context.Context, params StartOAuthParams) (*model.AuthFlow, error) {
	if params.UserType != model.UserTypeUser && params.UserType != model.UserTypeRecruiter {
		return nil, ErrInvalidUserType
	}

	flow := &model.AuthFlow{
		Nonce:     uuid.NewString(),
		State:     model.FlowUnauthenticated,
		UserType:  params.UserType,
		Country:   params.Country,
		ExpiresAt: time.Now().Add(u.cfg.Token.AuthFlowTTL),
	}

	if err := flow.Advance(model.FlowOAuthPending); err != nil {
		return nil, err
	}

	return u.flowRepo.CreateFlow(ctx, flow)
}

func (u *authUsecase) OAuthLogin(ctx context.Context, params OAuthLoginParams) (*OAuthLoginResult, error) {
	flow, err := u.getLiveFlow(ctx, params.Nonce)
	if err != nil {
		return nil, err
	}

	p, err := u.providers.Get(params.Provider)
	if err != nil {
		return nil, err
	}

	info, err := p.VerifyToken(ctx, params.Token)
	if err != nil {
		if errors.Is(err, provider.ErrInvalidToken) || errors.Is(err, provider.ErrInvalidGoogleAudience) {
			return nil, ErrInvalidProviderToken
		}
		return nil, err
	}

	user, err := u.resolveOAuthUser(ctx, flow, p.Name(), info)
	if err != nil {
		return nil, err
	}

	if err := u.issueCode(ctx, user, model.CodePurposeSignup); err != nil {
		return nil, err
	}

	if err := flow.Advance(model.FlowOTPPending); err != nil {
		return nil, err
	}

	userID := user.ID.Hex()
	providerName := p.Name()
	if _, err := u.flowRepo.UpdateFlow(ctx, flow.Nonce, repository.UpdateFlowParams{
		State:    &flow.State,
		Provider: &providerName,
		UserID:   &userID,
	}); err != nil {
		return nil, err
	}

	return &OAuthLoginResult{UserID: userID, Email: user.Email}, nil
}

// resolveOAuthUser finds the account behind a provider identity, linking or
// creating it as needed.
func (u *authUsecase) resolveOAuthUser(
	ctx context.Context,
	flow *model.AuthFlow,
	providerName string,
	info *provider.UserInfo,
) (*model.User, error) {
	identity, err := u.identityRepo.GetIdentityByProvider(ctx, info.ProviderID, providerName)
	if err == nil {
		user, err := u.userRepo.GetUser(ctx, identity.UserID)
		if err != nil {
			return nil, err
		}

		if err := u.identityRepo.UpdateLastLogin(ctx, identity.UserID); err != nil {
			return nil, err
		}

		return user, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, err
	}

	// First time this provider identity is seen. Attach it to an existing
	// account with the same email, or create a fresh one.
	user, err := u.userRepo.GetUserByEmail(ctx, info.Email)
	if errors.Is(err, mongo.ErrNoDocuments) {
		user, err = u.userRepo.CreateUser(ctx, &model.User{
			Name:     info.Name,
			Email:    info.Email,
			UserType: flow.UserType,
			Country:  flow.Country,
		})
	}
	if err != nil {
		return nil, err
	}

	if _, err := u.identityRepo.CreateIdentity(ctx, &model.Identity{
		UserID:     user.ID.Hex(),
		Provider:   providerName,
		ProviderID: info.ProviderID,
		Email:      info.Email,
	}); err != nil {
		return nil, err
	}

	return user, nil
}

func (u *authUsecase) VerifyOTP(ctx context.Context, params VerifyOTPParams) (*VerifyOTPResult, error) {
	var flow *model.AuthFlow

	userID := params.UserID
	if params.Nonce != "" {
		var err error
		flow, err = u.getLiveFlow(ctx, params.Nonce)
		if err != nil {
			return nil, err
		}
		userID = flow.UserID
	}

	if err := u.redeemCode(ctx, userID, model.CodePurposeSignup, params.Code); err != nil {
		return nil, err
	}

	verified := true
	user, err := u.userRepo.UpdateUser(ctx, userID, repository.UpdateUserParams{IsEmailVerified: &verified})
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	token, err := u.jwtAuth.NewUserToken(userID, user.UserType, u.cfg.Token.Secret, u.cfg.Token.AccessTokenTTL)
	if err != nil {
		return nil, err
	}

	result := &VerifyOTPResult{Token: token, User: user}

	if flow != nil {
		if err := flow.Advance(model.FlowAuthenticated); err != nil {
			return nil, err
		}
		if _, err := u.flowRepo.UpdateFlow(ctx, flow.Nonce, repository.UpdateFlowParams{
			State: &flow.State,
		}); err != nil {
			return nil, err
		}

		// Queued actions are handed back exactly once, on the transition to
		// authenticated.
		result.QueuedActions = flow.QueuedActions
	}

	return result, nil
}

func (u *authUsecase) ResendOTP(ctx context.Context, nonce string) error {
	flow, err := u.getLiveFlow(ctx, nonce)
	if err != nil {
		return err
	}

	if flow.State != model.FlowOTPPending {
		return fmt.Errorf("%w: cannot resend in state %s", model.ErrInvalidTransition, flow.State)
	}

	user, err := u.userRepo.GetUser(ctx, flow.UserID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrUserNotFound
		}
		return err
	}

	return u.issueCode(ctx, user, model.CodePurposeSignup)
}

func (u *authUsecase) QueueAction(ctx context.Context, nonce string, action model.QueuedAction) error {
	flow, err := u.getLiveFlow(ctx, nonce)
	if err != nil {
		return err
	}

	if flow.State == model.FlowAuthenticated {
		return fmt.Errorf("%w: flow already authenticated", model.ErrInvalidTransition)
	}

	return u.flowRepo.AppendQueuedAction(ctx, nonce, action)
}

func (u *authUsecase) Register(ctx context.Context, params RegisterUserParams) (*OAuthLoginResult, error) {
	if params.UserType != model.UserTypeUser && params.UserType != model.UserTypeRecruiter {
		return nil, ErrInvalidUserType
	}

	passwordHash, err := security.HashPassword(params.Password)
	if err != nil {
		return nil, err
	}

	user, err := u.userRepo.CreateUser(ctx, &model.User{
		Name:         params.Name,
		Email:        params.Email,
		PasswordHash: passwordHash,
		UserType:     params.UserType,
		Country:      params.Country,
	})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	if _, err := u.identityRepo.CreateIdentity(ctx, &model.Identity{
		UserID:   user.ID.Hex(),
		Provider: provider.ProviderEmail,
		Email:    user.Email,
	}); err != nil {
		return nil, err
	}

	if err := u.issueCode(ctx, user, model.CodePurposeSignup); err != nil {
		return nil, err
	}

	return &OAuthLoginResult{UserID: user.ID.Hex(), Email: user.Email}, nil
}

func (u *authUsecase) Login(ctx context.Context, email, password string) (*model.User, string, error) {
	user, err := u.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}

	if ok, err := security.VerifyPassword(password, user.PasswordHash); err != nil {
		return nil, "", err
	} else if !ok {
		return nil, "", ErrInvalidCredentials
	}

	if !user.IsEmailVerified {
		return nil, "", ErrEmailNotVerified
	}

	if err := u.identityRepo.UpdateLastLogin(ctx, user.ID.Hex()); err != nil {
		return nil, "", err
	}

	token, err := u.jwtAuth.NewUserToken(user.ID.Hex(), user.UserType, u.cfg.Token.Secret, u.cfg.Token.AccessTokenTTL)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

func (u *authUsecase) getLiveFlow(ctx context.Context, nonce string) (*model.AuthFlow, error) {
	flow, err := u.flowRepo.GetFlowByNonce(ctx, nonce)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrFlowNotFound
		}
		return nil, err
	}

	if flow.Expired(time.Now()) {
		return nil, ErrFlowExpired
	}

	return flow, nil
}

// issueCode invalidates any outstanding codes for the user and purpose, then
// generates, stores and emails a fresh one.
func (u *authUsecase) issueCode(ctx context.Context, user *model.User, purpose string) error {
	if err := u.codeRepo.InvalidateUserCodes(ctx, user.ID.Hex(), purpose); err != nil {
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

	ttl := u.cfg.Token.OTPCodeTTL
	if purpose == model.CodePurposePasswordReset {
		ttl = u.cfg.Token.ResetCodeTTL
	}

	if _, err := u.codeRepo.CreateCode(ctx, &model.VerificationCode{
		UserID:    user.ID,
		Email:     user.Email,
		CodeHash:  codeHash,
		Purpose:   purpose,
		ExpiresAt: time.Now().Add(ttl),
	}); err != nil {
		return err
	}

	subject := "Your BeCopy verification code"
	if purpose == model.CodePurposePasswordReset {
		subject = "Your BeCopy password reset code"
	}

	htmlBody := fmt.Sprintf(`
		<p>Hi %s,</p>
		<p>Your verification code is:</p>

		<h2>%s</h2>

		<p>The code expires in %s.</p>
		<p>If you did not request this code, you can safely ignore this email.</p>

		<p>Thank you,</p>
		<p>BeCopy Team</p>
	`, user.Name, code, ttl)

	return u.mailer.SendHTML([]string{user.Email}, subject, htmlBody)
}

// matchCode validates a code without consuming it. Wrong guesses count
// against the attempt cap; a consumed or expired code never validates again.
func (u *authUsecase) matchCode(ctx context.Context, userID, purpose, code string) (*model.VerificationCode, error) {
	stored, err := u.codeRepo.GetLatestCode(ctx, userID, purpose)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrInvalidCode
		}
		return nil, err
	}

	if stored.Used {
		return nil, ErrCodeAlreadyUsed
	}
	if stored.Expired(time.Now()) {
		return nil, ErrCodeExpired
	}
	if stored.Attempts >= u.cfg.Token.MaxVerifyAttempts {
		return nil, ErrTooManyAttempts
	}

	ok, err := security.VerifyCode(code, stored.CodeHash)
	if err != nil {
		return nil, err
	}
	if !ok {
		if err := u.codeRepo.IncrementAttempts(ctx, stored.ID.Hex()); err != nil {
			return nil, err
		}
		return nil, ErrInvalidCode
	}

	return stored, nil
}

// redeemCode validates and consumes the live code of a user.
func (u *authUsecase) redeemCode(ctx context.Context, userID, purpose, code string) error {
	stored, err := u.matchCode(ctx, userID, purpose, code)
	if err != nil {
		return err
	}

	return u.codeRepo.MarkCodeAsUsed(ctx, stored.ID.Hex())
}
