package usecase

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/becopy/becopy-api/internal/model"
	"github.com/becopy/becopy-api/internal/repository"
)

// UserUsecase defines the user profile and directory use cases.
type UserUsecase interface {
	GetProfile(ctx context.Context, id string) (*model.User, error)
	UpdateProfile(ctx context.Context, id string, params UpdateProfileParams) (*model.User, error)

	// Directory lists users for the invite picker, excluding the caller.
	Directory(ctx context.Context, callerID string, params repository.FilterUsersParams) ([]*model.User, error)
}

// UpdateProfileParams defines the optional fields of a profile update.
type UpdateProfileParams struct {
	Name           *string
	Country        *string
	AdditionalInfo *model.AdditionalInfo
}

type userUsecase struct {
	userRepo repository.UserRepository
}

// NewUserUsecase creates a new instance of UserUsecase.
func NewUserUsecase(userRepo repository.UserRepository) UserUsecase {
	return &userUsecase{userRepo: userRepo}
}

func (u *userUsecase) GetProfile(ctx context.Context, id string) (*model.User, error) {
	user, err := u.userRepo.GetUser(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return user, nil
}

func (u *userUsecase) UpdateProfile(
	ctx context.Context,
	id string,
	params UpdateProfileParams,
) (*model.User, error) {
	user, err := u.userRepo.UpdateUser(ctx, id, repository.UpdateUserParams{
		Name:           params.Name,
		Country:        params.Country,
		AdditionalInfo: params.AdditionalInfo,
	})
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return user, nil
}

func (u *userUsecase) Directory(
	ctx context.Context,
	callerID string,
	params repository.FilterUsersParams,
) ([]*model.User, error) {
	users, err := u.userRepo.ListUsers(ctx, params)
	if err != nil {
		return nil, err
	}

	filtered := make([]*model.User, 0, len(users))
	for _, user := range users {
		if user.ID.Hex() == callerID {
			continue
		}
		filtered = append(filtered, user)
	}

	return filtered, nil
}
