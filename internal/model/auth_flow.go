package model

import (
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// FlowState is the state of a sign-up/sign-in flow. The flow used to live in
// browser local storage as loose "pending" values; it is now a server-side
// document keyed by an opaque nonce, advanced only along legal transitions.
type FlowState string

const (
	FlowUnauthenticated FlowState = "unauthenticated"
	FlowOAuthPending    FlowState = "oauth_pending"
	FlowOTPPending      FlowState = "otp_pending"
	FlowAuthenticated   FlowState = "authenticated"
)

// ErrInvalidTransition is returned when a flow is advanced to a state that is
// not reachable from its current one.
var ErrInvalidTransition = errors.New("invalid auth flow transition")

var flowTransitions = map[FlowState][]FlowState{
	FlowUnauthenticated: {FlowOAuthPending},
	FlowOAuthPending:    {FlowOTPPending},
	FlowOTPPending:      {FlowAuthenticated},
	FlowAuthenticated:   {},
}

// QueuedAction is an action the user attempted while anonymous (apply to a
// job, add code, submit a contribution). It is held on the flow and handed
// back exactly once when the flow reaches FlowAuthenticated, so the client
// can replay it with the now-known identity.
type QueuedAction struct {
	Kind    string         `bson:"kind"    json:"kind"`
	Payload map[string]any `bson:"payload" json:"payload"`
}

// AuthFlow is the server-side record of one sign-up/sign-in attempt.
type AuthFlow struct {
	ID            bson.ObjectID  `bson:"_id,omitempty"`
	Nonce         string         `bson:"nonce"`
	State         FlowState      `bson:"state"`
	UserType      string         `bson:"user_type"`
	Country       string         `bson:"country"`
	Provider      string         `bson:"provider,omitempty"`
	UserID        string         `bson:"user_id,omitempty"`
	QueuedActions []QueuedAction `bson:"queued_actions,omitempty"`
	ExpiresAt     time.Time      `bson:"expires_at"`
	CreatedAt     time.Time      `bson:"created_at"`
	UpdatedAt     time.Time      `bson:"updated_at"`
}

// Advance moves the flow to the given state, failing if the transition is not
// legal from the current state.
func (f *AuthFlow) Advance(to FlowState) error {
	for _, next := range flowTransitions[f.State] {
		if next == to {
			f.State = to
			return nil
		}
	}

	return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, f.State, to)
}

// Expired reports whether the flow has outlived its TTL.
func (f *AuthFlow) Expired(now time.Time) bool {
	return now.After(f.ExpiresAt)
}
