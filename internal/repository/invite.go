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

// InviteRepository defines the interface for chat invite database operations.
type InviteRepository interface {
	CreateInvite(ctx context.Context, invite *model.Invite) (*model.Invite, error)
	GetInvite(ctx context.Context, id string) (*model.Invite, error)
	ListBySender(ctx context.Context, senderID string) ([]*model.Invite, error)
	ListByRecipient(ctx context.Context, recipientID string) ([]*model.Invite, error)

	// HasPendingInvite reports whether a pending invite already exists
	// between the two users.
	HasPendingInvite(ctx context.Context, senderID, recipientID string) (bool, error)

	// ResolveInvite atomically moves a pending invite to a terminal status.
	// mongo.ErrNoDocuments is returned if the invite is missing or no longer
	// pending.
	ResolveInvite(ctx context.Context, id string, status model.InviteStatus, conversationID string) (*model.Invite, error)
}

const inviteCollection = "invites"

type inviteMongoRepository struct {
	db *mongo.Database
}

// NewInviteMongoRepository creates a new MongoDB repository for invites.
func NewInviteMongoRepository(ctx context.Context, logger *zerolog.Logger, db *mongo.Database) InviteRepository {
	collection := db.Collection(inviteCollection)

	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "sender_id", Value: 1},
				{Key: "recipient_id", Value: 1},
				{Key: "status", Value: 1},
			},
		},
		{
			Keys: bson.D{{Key: "recipient_id", Value: 1}},
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create invite indexes")
	}

	return &inviteMongoRepository{db: db}
}

func (r *inviteMongoRepository) CreateInvite(ctx context.Context, invite *model.Invite) (*model.Invite, error) {
	now := time.Now()
	invite.CreatedAt = now
	invite.UpdatedAt = now
	invite.Status = model.InviteStatusPending

	result, err := r.db.Collection(inviteCollection).InsertOne(ctx, invite)
	if err != nil {
		return nil, err
	}

	if objectID, ok := result.InsertedID.(bson.ObjectID); ok {
		invite.ID = objectID
	} else {
		return nil, errors.New("failed to convert inserted ID to ObjectID")
	}

	return invite, nil
}

func (r *inviteMongoRepository) GetInvite(ctx context.Context, id string) (*model.Invite, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	result := r.db.Collection(inviteCollection).FindOne(ctx, bson.M{"_id": objectID})
	if result.Err() != nil {
		return nil, result.Err()
	}

	var invite model.Invite
	if err := result.Decode(&invite); err != nil {
		return nil, err
	}

	return &invite, nil
}

func (r *inviteMongoRepository) ListBySender(ctx context.Context, senderID string) ([]*model.Invite, error) {
	return r.list(ctx, "sender_id", senderID)
}

func (r *inviteMongoRepository) ListByRecipient(ctx context.Context, recipientID string) ([]*model.Invite, error) {
	return r.list(ctx, "recipient_id", recipientID)
}

func (r *inviteMongoRepository) list(ctx context.Context, field, id string) ([]*model.Invite, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.db.Collection(inviteCollection).Find(ctx, bson.M{field: objectID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var invites []*model.Invite
	for cursor.Next(ctx) {
		var invite model.Invite
		if err := cursor.Decode(&invite); err != nil {
			return nil, err
		}
		invites = append(invites, &invite)
	}

	if err := cursor.Err(); err != nil {
		return nil, err
	}

	return invites, nil
}

func (r *inviteMongoRepository) HasPendingInvite(ctx context.Context, senderID, recipientID string) (bool, error) {
	senderOID, err := bson.ObjectIDFromHex(senderID)
	if err != nil {
		return false, err
	}
	recipientOID, err := bson.ObjectIDFromHex(recipientID)
	if err != nil {
		return false, err
	}

	// Pending is pending regardless of who sent first, so both orientations
	// of the pair count.
	filter := bson.M{
		"status": model.InviteStatusPending,
		"$or": bson.A{
			bson.M{"sender_id": senderOID, "recipient_id": recipientOID},
			bson.M{"sender_id": recipientOID, "recipient_id": senderOID},
		},
	}

	count, err := r.db.Collection(inviteCollection).CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

func (r *inviteMongoRepository) ResolveInvite(
	ctx context.Context,
	id string,
	status model.InviteStatus,
	conversationID string,
) (*model.Invite, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	updateMap := bson.M{
		"status":     status,
		"updated_at": time.Now(),
	}
	if conversationID != "" {
		updateMap["conversation_id"] = conversationID
	}

	// Filtering on status makes the transition a compare-and-set: a second
	// accept or decline finds no pending document and fails.
	result := r.db.Collection(inviteCollection).FindOneAndUpdate(
		ctx,
		bson.M{"_id": objectID, "status": model.InviteStatusPending},
		bson.M{"$set": updateMap},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	if result.Err() != nil {
		return nil, result.Err()
	}

	var invite model.Invite
	if err := result.Decode(&invite); err != nil {
		return nil, err
	}

	return &invite, nil
}
