package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/becopy/becopy-api/internal/model"
	"github.com/becopy/becopy-api/internal/repository"
)

func TestUpdateProfile(t *testing.T) {
	userRepo := newFakeUserRepo()
	ctx := context.Background()

	created, err := userRepo.CreateUser(ctx, &model.User{
		Name:     "Jane Doe",
		Email:    "jane@example.com",
		Country:  "DE",
		UserType: model.UserTypeUser,
	})
	require.NoError(t, err)

	u := NewUserUsecase(userRepo)

	name := "Jane Smith"
	info := model.AdditionalInfo{Description: "Gopher", ProfileLink: "https://example.com/jane"}

	updated, err := u.UpdateProfile(ctx, created.ID.Hex(), UpdateProfileParams{
		Name:           &name,
		AdditionalInfo: &info,
	})
	require.NoError(t, err)
	assert.Equal(t, "Jane Smith", updated.Name)
	assert.Equal(t, "DE", updated.Country)
	assert.Equal(t, "Gopher", updated.AdditionalInfo.Description)

	_, err = u.UpdateProfile(ctx, "64b0c5f1e4b0c5f1e4b0c5f1", UpdateProfileParams{Name: &name})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestDirectoryExcludesCaller(t *testing.T) {
	userRepo := newFakeUserRepo()
	ctx := context.Background()

	caller, err := userRepo.CreateUser(ctx, &model.User{
		Name:     "Caller",
		Email:    "caller@example.com",
		UserType: model.UserTypeUser,
	})
	require.NoError(t, err)

	other, err := userRepo.CreateUser(ctx, &model.User{
		Name:     "Other",
		Email:    "other@example.com",
		UserType: model.UserTypeUser,
	})
	require.NoError(t, err)

	u := NewUserUsecase(userRepo)

	users, err := u.Directory(ctx, caller.ID.Hex(), repository.FilterUsersParams{})
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, other.ID, users[0].ID)
}

func TestDirectoryFiltersByUserType(t *testing.T) {
	userRepo := newFakeUserRepo()
	ctx := context.Background()

	caller, err := userRepo.CreateUser(ctx, &model.User{
		Name:     "Caller",
		Email:    "caller@example.com",
		UserType: model.UserTypeUser,
	})
	require.NoError(t, err)

	_, err = userRepo.CreateUser(ctx, &model.User{
		Name:     "Recruiter",
		Email:    "recruiter@example.com",
		UserType: model.UserTypeRecruiter,
	})
	require.NoError(t, err)

	_, err = userRepo.CreateUser(ctx, &model.User{
		Name:     "Dev",
		Email:    "dev@example.com",
		UserType: model.UserTypeUser,
	})
	require.NoError(t, err)

	u := NewUserUsecase(userRepo)

	recruiterType := model.UserTypeRecruiter
	users, err := u.Directory(ctx, caller.ID.Hex(), repository.FilterUsersParams{UserType: &recruiterType})
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "recruiter@example.com", users[0].Email)
}
