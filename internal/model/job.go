package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Job types.
const (
	JobTypeFullTime = "full-time"
	JobTypePartTime = "part-time"
	JobTypeContract = "contract"
	JobTypeRemote   = "remote"
)

// JobLocation is where a job is based. Latitude and longitude are optional;
// when present they make the job eligible for nearby filtering.
type JobLocation struct {
	Name      string  `bson:"name"                json:"name"`
	Latitude  float64 `bson:"latitude,omitempty"  json:"latitude,omitempty"`
	Longitude float64 `bson:"longitude,omitempty" json:"longitude,omitempty"`
}

// Job is a recruiter-posted job listing.
type Job struct {
	ID           bson.ObjectID `bson:"_id,omitempty" json:"id"`
	Title        string        `bson:"title"         json:"title"`
	Company      string        `bson:"company"       json:"company"`
	Location     JobLocation   `bson:"location"      json:"location"`
	Description  string        `bson:"description"   json:"description"`
	Requirements []string      `bson:"requirements"  json:"requirements"`
	Salary       string        `bson:"salary"        json:"salary"`
	JobType      string        `bson:"job_type"      json:"type"`
	PostedBy     bson.ObjectID `bson:"posted_by"     json:"postedBy"`
	CreatedAt    time.Time     `bson:"created_at"    json:"createdAt"`
	UpdatedAt    time.Time     `bson:"updated_at"    json:"updatedAt"`
}
