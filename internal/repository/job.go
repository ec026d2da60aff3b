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

// JobRepository defines the interface for job posting database operations.
type JobRepository interface {
	CreateJob(ctx context.Context, job *model.Job) (*model.Job, error)
	GetJob(ctx context.Context, id string) (*model.Job, error)
	ListJobs(ctx context.Context, params FilterJobsParams) ([]*model.Job, error)

	// ListJobsWithCoordinates returns every job carrying usable coordinates,
	// without the pagination cap of ListJobs. The radius scan must consider
	// the whole collection, not just the newest page.
	ListJobsWithCoordinates(ctx context.Context) ([]*model.Job, error)
}

// FilterJobsParams defines the parameters for filtering and paginating jobs.
type FilterJobsParams struct {
	JobType  *string
	Company  *string
	PostedBy *string
	Limit    uint64
	Offset   uint64
}

const jobCollection = "jobs"

type jobMongoRepository struct {
	db *mongo.Database
}

// NewJobMongoRepository creates a new MongoDB repository for jobs.
func NewJobMongoRepository(ctx context.Context, logger *zerolog.Logger, db *mongo.Database) JobRepository {
	collection := db.Collection(jobCollection)

	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "job_type", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "posted_by", Value: 1}},
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create job indexes")
	}

	return &jobMongoRepository{db: db}
}

func (r *jobMongoRepository) CreateJob(ctx context.Context, job *model.Job) (*model.Job, error) {
	now := time.Now()
	job.CreatedAt = now
	job.UpdatedAt = now

	result, err := r.db.Collection(jobCollection).InsertOne(ctx, job)
	if err != nil {
		return nil, err
	}

	if objectID, ok := result.InsertedID.(bson.ObjectID); ok {
		job.ID = objectID
	} else {
		return nil, errors.New("failed to convert inserted ID to ObjectID")
	}

	return job, nil
}

func (r *jobMongoRepository) GetJob(ctx context.Context, id string) (*model.Job, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	result := r.db.Collection(jobCollection).FindOne(ctx, bson.M{"_id": objectID})
	if result.Err() != nil {
		return nil, result.Err()
	}

	var job model.Job
	if err := result.Decode(&job); err != nil {
		return nil, err
	}

	return &job, nil
}

func (r *jobMongoRepository) ListJobs(ctx context.Context, params FilterJobsParams) ([]*model.Job, error) {
	findOptions := options.Find()

	limit := params.Limit
	if limit == 0 {
		limit = 50
	}
	findOptions.SetLimit(int64(limit))

	if params.Offset > 0 {
		findOptions.SetSkip(int64(params.Offset))
	}

	findOptions.SetSort(bson.D{{Key: "created_at", Value: -1}})

	filter := bson.M{}
	if params.JobType != nil {
		filter["job_type"] = *params.JobType
	}
	if params.Company != nil {
		filter["company"] = *params.Company
	}
	if params.PostedBy != nil {
		objectID, err := bson.ObjectIDFromHex(*params.PostedBy)
		if err != nil {
			return nil, err
		}
		filter["posted_by"] = objectID
	}

	cursor, err := r.db.Collection(jobCollection).Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}

	return decodeJobs(ctx, cursor)
}

func (r *jobMongoRepository) ListJobsWithCoordinates(ctx context.Context) ([]*model.Job, error) {
	// Zero coordinates are omitted on write, so field existence is the
	// "has a usable location" test.
	filter := bson.M{
		"location.latitude":  bson.M{"$exists": true},
		"location.longitude": bson.M{"$exists": true},
	}

	cursor, err := r.db.Collection(jobCollection).Find(ctx, filter)
	if err != nil {
		return nil, err
	}

	return decodeJobs(ctx, cursor)
}

func decodeJobs(ctx context.Context, cursor *mongo.Cursor) ([]*model.Job, error) {
	defer cursor.Close(ctx)

	var jobs []*model.Job
	for cursor.Next(ctx) {
		var job model.Job
		if err := cursor.Decode(&job); err != nil {
			return nil, err
		}
		jobs = append(jobs, &job)
	}

	if err := cursor.Err(); err != nil {
		return nil, err
	}

	return jobs, nil
}
