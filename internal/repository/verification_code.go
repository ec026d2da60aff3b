package repository

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/becopy/becopy-api/internal/model"
)

// VerificationCodeRepository defines the interface for verification code operations.
type VerificationCodeRepository interface {
	// CreateCode stores a freshly issued code.
	CreateCode(ctx context.Context, code *model.VerificationCode) (*model.VerificationCode, error)

	// GetLatestCode retrieves the most recently issued code for a user and purpose.
	GetLatestCode(ctx context.Context, userID, purpose string) (*model.VerificationCode, error)

	// MarkCodeAsUsed marks a code as used.
	MarkCodeAsUsed(ctx context.Context, id string) error

	// IncrementAttempts bumps the failed attempt counter of a code.
	IncrementAttempts(ctx context.Context, id string) error

	// InvalidateUserCodes invalidates all unused codes for a user and purpose.
	InvalidateUserCodes(ctx context.Context, userID, purpose string) error
}

const verificationCodeCollection = "verification_codes"

type verificationCodeMongoRepository struct {
	db *mongo.Database
}

// NewVerificationCodeMongoRepository creates a new MongoDB repository for verification codes.
func NewVerificationCodeMongoRepository(
	ctx context.Context,
	logger *zerolog.Logger,
	db *mongo.Database,
) VerificationCodeRepository {
	collection := db.Collection(verificationCodeCollection)

	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "purpose", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "email", Value: 1}},
		},
		{
			Keys:    bson.D{{Key: "expires_at", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(0), // TTL index
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create verification code indexes")
	}

	return &verificationCodeMongoRepository{db: db}
}

func (r *verificationCodeMongoRepository) CreateCode(
	ctx context.Context,
	code *model.VerificationCode,
) (*model.VerificationCode, error) {
	now := time.Now()
	code.CreatedAt = now
	code.UpdatedAt = now
	code.Used = false
	code.Attempts = 0

	result, err := r.db.Collection(verificationCodeCollection).InsertOne(ctx, code)
	if err != nil {
		return nil, err
	}

	if objectID, ok := result.InsertedID.(bson.ObjectID); ok {
		code.ID = objectID
	}

	return code, nil
}

func (r *verificationCodeMongoRepository) GetLatestCode(
	ctx context.Context,
	userID, purpose string,
) (*model.VerificationCode, error) {
	objectID, err := bson.ObjectIDFromHex(userID)
	if err != nil {
		return nil, err
	}

	filter := bson.M{"user_id": objectID, "purpose": purpose}
	opts := options.FindOne().SetSort(bson.D{{Key: "created_at", Value: -1}})

	var code model.VerificationCode
	if err := r.db.Collection(verificationCodeCollection).FindOne(ctx, filter, opts).Decode(&code); err != nil {
		return nil, err
	}

	return &code, nil
}

func (r *verificationCodeMongoRepository) MarkCodeAsUsed(ctx context.Context, id string) error {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return err
	}

	update := bson.M{
		"$set": bson.M{
			"used":       true,
			"updated_at": time.Now(),
		},
	}

	_, err = r.db.Collection(verificationCodeCollection).UpdateOne(ctx, bson.M{"_id": objectID}, update)
	return err
}

func (r *verificationCodeMongoRepository) IncrementAttempts(ctx context.Context, id string) error {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return err
	}

	update := bson.M{
		"$inc": bson.M{"attempts": 1},
		"$set": bson.M{"updated_at": time.Now()},
	}

	_, err = r.db.Collection(verificationCodeCollection).UpdateOne(ctx, bson.M{"_id": objectID}, update)
	return err
}

func (r *verificationCodeMongoRepository) InvalidateUserCodes(ctx context.Context, userID, purpose string) error {
	objectID, err := bson.ObjectIDFromHex(userID)
	if err != nil {
		return err
	}

	filter := bson.M{
		"user_id": objectID,
		"purpose": purpose,
		"used":    false,
	}
	update := bson.M{
		"$set": bson.M{
			"used":       true,
			"updated_at": time.Now(),
		},
	}

	_, err = r.db.Collection(verificationCodeCollection).UpdateMany(ctx, filter, update)
	return err
}
