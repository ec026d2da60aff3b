package repository

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/becopy/becopy-api/internal/model"
)

// AdminRepository defines the interface for admin-related database operations.
type AdminRepository interface {
	CreateAdmin(ctx context.Context, admin *model.Admin) (*model.Admin, error)
	GetAdmin(ctx context.Context, id string) (*model.Admin, error)
	GetAdminByEmail(ctx context.Context, email string) (*model.Admin, error)
	UpdateAdmin(ctx context.Context, id string, params UpdateAdminParams) (*model.Admin, error)
}

// UpdateAdminParams defines the optional parameters for updating an admin.
// Only the fields that are not nil will be updated.
type UpdateAdminParams struct {
	Name         *string
	Email        *string
	PasswordHash *string
}

const adminCollection = "admins"

type adminMongoRepository struct {
	db *mongo.Database
}

// NewAdminMongoRepository creates a new MongoDB repository for admins.
func NewAdminMongoRepository(ctx context.Context, logger *zerolog.Logger, db *mongo.Database) AdminRepository {
	collection := db.Collection(adminCollection)

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create admin indexes")
	}

	return &adminMongoRepository{db: db}
}

func (r *adminMongoRepository) CreateAdmin(ctx context.Context, admin *model.Admin) (*model.Admin, error) {
	now := time.Now()
	admin.CreatedAt = now
	admin.UpdatedAt = now

	result, err := r.db.Collection(adminCollection).InsertOne(ctx, admin)
	if err != nil {
		return nil, err
	}

	if objectID, ok := result.InsertedID.(bson.ObjectID); ok {
		admin.ID = objectID
	} else {
		return nil, errors.New("failed to convert inserted ID to ObjectID")
	}

	return admin, nil
}

func (r *adminMongoRepository) GetAdmin(ctx context.Context, id string) (*model.Admin, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	result := r.db.Collection(adminCollection).FindOne(ctx, bson.M{"_id": objectID})
	if result.Err() != nil {
		return nil, result.Err()
	}

	var admin model.Admin
	if err := result.Decode(&admin); err != nil {
		return nil, err
	}

	return &admin, nil
}

func (r *adminMongoRepository) GetAdminByEmail(ctx context.Context, email string) (*model.Admin, error) {
	result := r.db.Collection(adminCollection).FindOne(ctx, bson.M{"email": email})
	if result.Err() != nil {
		return nil, result.Err()
	}

	var admin model.Admin
	if err := result.Decode(&admin); err != nil {
		return nil, err
	}

	return &admin, nil
}

func (r *adminMongoRepository) UpdateAdmin(
	ctx context.Context,
	id string,
	params UpdateAdminParams,
) (*model.Admin, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	updateMap := bson.M{}
	if params.Name != nil {
		updateMap["name"] = *params.Name
	}
	if params.Email != nil {
		updateMap["email"] = *params.Email
	}
	if params.PasswordHash != nil {
		updateMap["password_hash"] = *params.PasswordHash
	}

	if len(updateMap) == 0 {
		return nil, errors.New("no admin fields to update")
	}

	updateMap["updated_at"] = time.Now()

	result := r.db.Collection(adminCollection).FindOneAndUpdate(
		ctx,
		bson.M{"_id": objectID},
		bson.M{"$set": updateMap},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	if result.Err() != nil {
		return nil, result.Err()
	}

	var admin model.Admin
	if err := result.Decode(&admin); err != nil {
		return nil, err
	}

	return &admin, nil
}
