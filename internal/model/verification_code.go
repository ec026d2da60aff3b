package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Purposes a verification code can be issued for.
const (
	CodePurposeSignup        = "signup"
	CodePurposePasswordReset = "password_reset"
)

// VerificationCode is a single-use 6-digit code emailed to a user, stored
// hashed. One mechanism backs both signup OTPs and forgot-password codes;
// Purpose tells them apart.
type VerificationCode struct {
	ID        bson.ObjectID `bson:"_id,omitempty"`
	UserID    bson.ObjectID `bson:"user_id"`
	Email     string        `bson:"email"`
	CodeHash  string        `bson:"code_hash"`
	Purpose   string        `bson:"purpose"`
	Attempts  int           `bson:"attempts"`
	Used      bool          `bson:"used"`
	ExpiresAt time.Time     `bson:"expires_at"`
	CreatedAt time.Time     `bson:"created_at"`
	UpdatedAt time.Time     `bson:"updated_at"`
}

// Expired reports whether the code can no longer be redeemed because its
// lifetime ran out.
func (c *VerificationCode) Expired(now time.Time) bool {
	return now.After(c.ExpiresAt)
}
