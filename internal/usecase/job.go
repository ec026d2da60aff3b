package usecase

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/becopy/becopy-api/internal/config"
	"github.com/becopy/becopy-api/internal/geo"
	"github.com/becopy/becopy-api/internal/model"
	"github.com/becopy/becopy-api/internal/repository"
)

// JobUsecase defines the job posting use cases.
type JobUsecase interface {
	CreateJob(ctx context.Context, posterID string, params CreateJobParams) (*model.Job, error)
	GetJob(ctx context.Context, id string) (*model.Job, error)
	ListJobs(ctx context.Context, params repository.FilterJobsParams) ([]*model.Job, error)

	// NearbyJobs geolocates the client IP and returns the jobs whose
	// coordinates fall within radiusKM of it. A radius of zero means the
	// configured default. When the IP cannot be located, every job with
	// coordinates is returned rather than none.
	NearbyJobs(ctx context.Context, clientIP string, radiusKM float64) (*NearbyJobsResult, error)
}

// CreateJobParams defines the parameters for posting a job.
type CreateJobParams struct {
	Title        string
	Company      string
	Location     model.JobLocation
	Description  string
	Requirements []string
	Salary       string
	JobType      string
}

// NearbyJobsResult carries the filtered jobs together with the location the
// filter was anchored at.
type NearbyJobsResult struct {
	Jobs     []*model.Job
	Location geo.Location
	RadiusKM float64
}

var (
	ErrJobNotFound  = errors.New("job not found")
	ErrNotRecruiter = errors.New("only recruiters can post jobs")
)

// LocationResolver resolves a client IP to a geographic location.
type LocationResolver interface {
	Resolve(ctx context.Context, ip string) geo.Location
}

type jobUsecase struct {
	jobRepo  repository.JobRepository
	userRepo repository.UserRepository
	resolver LocationResolver
	cfg      *config.Config
}

// NewJobUsecase creates a new instance of JobUsecase.
func NewJobUsecase(
	jobRepo repository.JobRepository,
	userRepo repository.UserRepository,
	resolver LocationResolver,
	cfg *config.Config,
) JobUsecase {
	return &jobUsecase{
		jobRepo:  jobRepo,
		userRepo: userRepo,
		resolver: resolver,
		cfg:      cfg,
	}
}

func (u *jobUsecase) CreateJob(ctx context.Context, posterID string, params CreateJobParams) (*model.Job, error) {
	poster, err := u.userRepo.GetUser(ctx, posterID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if poster.UserType != model.UserTypeRecruiter {
		return nil, ErrNotRecruiter
	}

	posterOID, err := bson.ObjectIDFromHex(posterID)
	if err != nil {
		return nil, err
	}

	return u.jobRepo.CreateJob(ctx, &model.Job{
		Title:        params.Title,
		Company:      params.Company,
		Location:     params.Location,
		Description:  params.Description,
		Requirements: params.Requirements,
		Salary:       params.Salary,
		JobType:      params.JobType,
		PostedBy:     posterOID,
	})
}

func (u *jobUsecase) GetJob(ctx context.Context, id string) (*model.Job, error) {
	job, err := u.jobRepo.GetJob(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrJobNotFound
		}
		return nil, err
	}

	return job, nil
}

func (u *jobUsecase) ListJobs(ctx context.Context, params repository.FilterJobsParams) ([]*model.Job, error) {
	return u.jobRepo.ListJobs(ctx, params)
}

func (u *jobUsecase) NearbyJobs(ctx context.Context, clientIP string, radiusKM float64) (*NearbyJobsResult, error) {
	if radiusKM <= 0 {
		radiusKM = u.cfg.Geo.DefaultRadiusKM
	}

	jobs, err := u.jobRepo.ListJobsWithCoordinates(ctx)
	if err != nil {
		return nil, err
	}

	location := u.resolver.Resolve(ctx, clientIP)

	nearby := make([]*model.Job, 0, len(jobs))
	for _, job := range jobs {
		if location.Unknown || geo.IsWithinRadius(
			location.Latitude, location.Longitude,
			job.Location.Latitude, job.Location.Longitude,
			radiusKM,
		) {
			nearby = append(nearby, job)
		}
	}

	return &NearbyJobsResult{
		Jobs:     nearby,
		Location: location,
		RadiusKM: radiusKM,
	}, nil
}
