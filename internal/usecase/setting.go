package usecase

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/becopy/becopy-api/internal/model"
	"github.com/becopy/becopy-api/internal/repository"
)

// SettingUsecase exposes the singleton site settings.
type SettingUsecase interface {
	Get(ctx context.Context) (*model.Setting, error)
	Update(ctx context.Context, setting *model.Setting) (*model.Setting, error)
}

type settingUsecase struct {
	settingRepo repository.SettingRepository
}

// NewSettingUsecase creates a new instance of SettingUsecase.
func NewSettingUsecase(settingRepo repository.SettingRepository) SettingUsecase {
	return &settingUsecase{settingRepo: settingRepo}
}

func (u *settingUsecase) Get(ctx context.Context) (*model.Setting, error) {
	setting, err := u.settingRepo.GetSetting(ctx)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			// A fresh deployment has no settings document yet; everything
			// defaults to off until an admin saves one.
			return &model.Setting{ID: model.SettingID}, nil
		}
		return nil, err
	}

	return setting, nil
}

func (u *settingUsecase) Update(ctx context.Context, setting *model.Setting) (*model.Setting, error) {
	return u.settingRepo.UpsertSetting(ctx, setting)
}
