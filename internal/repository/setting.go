package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/becopy/becopy-api/internal/model"
)

// SettingRepository defines the interface for the singleton site settings.
type SettingRepository interface {
	GetSetting(ctx context.Context) (*model.Setting, error)
	UpsertSetting(ctx context.Context, setting *model.Setting) (*model.Setting, error)
}

const settingCollection = "settings"

type settingMongoRepository struct {
	db *mongo.Database
}

// NewSettingMongoRepository creates a new MongoDB repository for settings.
func NewSettingMongoRepository(db *mongo.Database) SettingRepository {
	return &settingMongoRepository{db: db}
}

func (r *settingMongoRepository) GetSetting(ctx context.Context) (*model.Setting, error) {
	result := r.db.Collection(settingCollection).FindOne(ctx, bson.M{"_id": model.SettingID})
	if result.Err() != nil {
		return nil, result.Err()
	}

	var setting model.Setting
	if err := result.Decode(&setting); err != nil {
		return nil, err
	}

	return &setting, nil
}

func (r *settingMongoRepository) UpsertSetting(ctx context.Context, setting *model.Setting) (*model.Setting, error) {
	setting.ID = model.SettingID
	setting.UpdatedAt = time.Now()

	// Whole-document replace: last writer wins, no versioning.
	_, err := r.db.Collection(settingCollection).ReplaceOne(
		ctx,
		bson.M{"_id": model.SettingID},
		setting,
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return nil, err
	}

	return setting, nil
}
