package usecase

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/becopy/becopy-api/internal/config"
	"github.com/becopy/becopy-api/internal/model"
	"github.com/becopy/becopy-api/internal/repository"
	"github.com/becopy/becopy-api/shared/auth"
	"github.com/becopy/becopy-api/shared/security"
)

// AdminUsecase defines the admin-panel authentication use cases.
type AdminUsecase interface {
	Register(ctx context.Context, params RegisterAdminParams) (*model.Admin, string, error)
	Login(ctx context.Context, email, password string) (*model.Admin, string, error)
	UpdateProfile(ctx context.Context, id string, params UpdateAdminProfileParams) (*model.Admin, error)
}

// RegisterAdminParams defines the parameters for admin registration.
type RegisterAdminParams struct {
	Name      string
	Email     string
	Password  string
	SecretKey string
}

// UpdateAdminProfileParams defines the optional fields of a profile update.
// A password change requires both CurrentPassword and NewPassword.
type UpdateAdminProfileParams struct {
	Name            *string
	Email           *string
	CurrentPassword *string
	NewPassword     *string
}

var (
	ErrInvalidSecretKey   = errors.New("invalid secret key")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAdminNotFound      = errors.New("admin not found")
)

type adminUsecase struct {
	adminRepo repository.AdminRepository
	jwtAuth   auth.JWTAuthenticator
	cfg       *config.Config
}

// NewAdminUsecase creates a new instance of AdminUsecase.
func NewAdminUsecase(
	adminRepo repository.AdminRepository,
	jwtAuth auth.JWTAuthenticator,
	cfg *config.Config,
) AdminUsecase {
	return &adminUsecase{
		adminRepo: adminRepo,
		jwtAuth:   jwtAuth,
		cfg:       cfg,
	}
}

func (u *adminUsecase) Register(ctx context.Context, params RegisterAdminParams) (*model.Admin, string, error) {
	if params.SecretKey != u.cfg.AdminSecretKey {
		return nil, "", ErrInvalidSecretKey
	}

	passwordHash, err := security.HashPassword(params.Password)
	if err != nil {
		return nil, "", err
	}

	admin, err := u.adminRepo.CreateAdmin(ctx, &model.Admin{
		Name:         params.Name,
		Email:        params.Email,
		PasswordHash: passwordHash,
		Role:         model.RoleAdmin,
	})
	if err != nil {
		// The unique email index is the authority on duplicates; there is no
		// separate existence check that could race with a concurrent insert.
		if mongo.IsDuplicateKeyError(err) {
			return nil, "", ErrEmailTaken
		}

		return nil, "", err
	}

	token, err := u.jwtAuth.NewUserToken(admin.ID.Hex(), admin.Role, u.cfg.Token.Secret, u.cfg.Token.AccessTokenTTL)
	if err != nil {
		return nil, "", err
	}

	return admin, token, nil
}

func (u *adminUsecase) Login(ctx context.Context, email, password string) (*model.Admin, string, error) {
	admin, err := u.adminRepo.GetAdminByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			// Unknown email and wrong password are deliberately
			// indistinguishable to the caller.
			return nil, "", ErrInvalidCredentials
		}

		return nil, "", err
	}

	if ok, err := security.VerifyPassword(password, admin.PasswordHash); err != nil {
		return nil, "", err
	} else if !ok {
		return nil, "", ErrInvalidCredentials
	}

	token, err := u.jwtAuth.NewUserToken(admin.ID.Hex(), admin.Role, u.cfg.Token.Secret, u.cfg.Token.AccessTokenTTL)
	if err != nil {
		return nil, "", err
	}

	return admin, token, nil
}

func (u *adminUsecase) UpdateProfile(
	ctx context.Context,
	id string,
	params UpdateAdminProfileParams,
) (*model.Admin, error) {
	updateParams := repository.UpdateAdminParams{
		Name:  params.Name,
		Email: params.Email,
	}

	if params.NewPassword != nil {
		if params.CurrentPassword == nil {
			return nil, ErrInvalidCredentials
		}

		admin, err := u.adminRepo.GetAdmin(ctx, id)
		if err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return nil, ErrAdminNotFound
			}
			return nil, err
		}

		if ok, err := security.VerifyPassword(*params.CurrentPassword, admin.PasswordHash); err != nil {
			return nil, err
		} else if !ok {
			return nil, ErrInvalidCredentials
		}

		passwordHash, err := security.HashPassword(*params.NewPassword)
		if err != nil {
			return nil, err
		}
		updateParams.PasswordHash = &passwordHash
	}

	admin, err := u.adminRepo.UpdateAdmin(ctx, id, updateParams)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrAdminNotFound
		}
		return nil, err
	}

	return admin, nil
}
