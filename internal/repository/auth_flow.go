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

// AuthFlowRepository defines the interface for auth flow state operations.
type AuthFlowRepository interface {
	CreateFlow(ctx context.Context, flow *model.AuthFlow) (*model.AuthFlow, error)
	GetFlowByNonce(ctx context.Context, nonce string) (*model.AuthFlow, error)
	UpdateFlow(ctx context.Context, nonce string, params UpdateFlowParams) (*model.AuthFlow, error)
	AppendQueuedAction(ctx context.Context, nonce string, action model.QueuedAction) error
}

// UpdateFlowParams defines the optional parameters for updating an auth flow.
type UpdateFlowParams struct {
	State    *model.FlowState
	Provider *string
	UserID   *string
}

const authFlowCollection = "auth_flows"

type authFlowMongoRepository struct {
	db *mongo.Database
}

// NewAuthFlowMongoRepository creates a new MongoDB repository for auth flows.
func NewAuthFlowMongoRepository(ctx context.Context, logger *zerolog.Logger, db *mongo.Database) AuthFlowRepository {
	collection := db.Collection(authFlowCollection)

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "nonce", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "expires_at", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(0), // TTL index
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create auth flow indexes")
	}

	return &authFlowMongoRepository{db: db}
}

func (r *authFlowMongoRepository) CreateFlow(ctx context.Context, flow *model.AuthFlow) (*model.AuthFlow, error) {
	now := time.Now()
	flow.CreatedAt = now
	flow.UpdatedAt = now

	result, err := r.db.Collection(authFlowCollection).InsertOne(ctx, flow)
	if err != nil {
		return nil, err
	}

	if objectID, ok := result.InsertedID.(bson.ObjectID); ok {
		flow.ID = objectID
	}

	return flow, nil
}

func (r *authFlowMongoRepository) GetFlowByNonce(ctx context.Context, nonce string) (*model.AuthFlow, error) {
	result := r.db.Collection(authFlowCollection).FindOne(ctx, bson.M{"nonce": nonce})
	if result.Err() != nil {
		return nil, result.Err()
	}

	var flow model.AuthFlow
	if err := result.Decode(&flow); err != nil {
		return nil, err
	}

	return &flow, nil
}

func (r *authFlowMongoRepository) UpdateFlow(
	ctx context.Context,
	nonce string,
	params UpdateFlowParams,
) (*model.AuthFlow, error) {
	updateMap := bson.M{}
	if params.State != nil {
		updateMap["state"] = *params.State
	}
	if params.Provider != nil {
		updateMap["provider"] = *params.Provider
	}
	if params.UserID != nil {
		updateMap["user_id"] = *params.UserID
	}

	updateMap["updated_at"] = time.Now()

	result := r.db.Collection(authFlowCollection).FindOneAndUpdate(
		ctx,
		bson.M{"nonce": nonce},
		bson.M{"$set": updateMap},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	if result.Err() != nil {
		return nil, result.Err()
	}

	var flow model.AuthFlow
	if err := result.Decode(&flow); err != nil {
		return nil, err
	}

	return &flow, nil
}

func (r *authFlowMongoRepository) AppendQueuedAction(
	ctx context.Context,
	nonce string,
	action model.QueuedAction,
) error {
	update := bson.M{
		"$push": bson.M{"queued_actions": action},
		"$set":  bson.M{"updated_at": time.Now()},
	}

	_, err := r.db.Collection(authFlowCollection).UpdateOne(ctx, bson.M{"nonce": nonce}, update)
	return err
}
