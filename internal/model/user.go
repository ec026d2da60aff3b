package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// User types.
const (
	UserTypeUser      = "user"
	UserTypeRecruiter = "recruiter"
)

// AdditionalInfo is the optional profile sub-document a user fills in after
// signing up. Recruiters use the company fields, regular users the rest.
type AdditionalInfo struct {
	PhoneNumber    string `bson:"phone_number,omitempty"    json:"phoneNumber,omitempty"`
	ProfileLink    string `bson:"profile_link,omitempty"    json:"profileLink,omitempty"`
	CompanyName    string `bson:"company_name,omitempty"    json:"companyName,omitempty"`
	CompanyWebsite string `bson:"company_website,omitempty" json:"companyWebsite,omitempty"`
	Description    string `bson:"description,omitempty"     json:"description,omitempty"`
}

// User represents a public-facing account, created either through an OAuth
// provider or with email and password. IsEmailVerified flips to true exactly
// once, when the signup OTP is verified.
type User struct {
	ID              bson.ObjectID  `bson:"_id,omitempty"           json:"id"`
	Name            string         `bson:"name"                    json:"name"`
	Email           string         `bson:"email"                   json:"email"`
	PasswordHash    string         `bson:"password_hash,omitempty" json:"-"`
	UserType        string         `bson:"user_type"               json:"userType"`
	Country         string         `bson:"country"                 json:"country"`
	IsEmailVerified bool           `bson:"is_email_verified"       json:"isEmailVerified"`
	AdditionalInfo  AdditionalInfo `bson:"additional_info"         json:"additionalInfo"`
	CreatedAt       time.Time      `bson:"created_at"              json:"createdAt"`
	UpdatedAt       time.Time      `bson:"updated_at"              json:"updatedAt"`
}
