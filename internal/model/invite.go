package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// InviteStatus is the lifecycle state of a chat invite. Pending is the only
// non-terminal state; accepted and declined are never left again.
type InviteStatus string

const (
	InviteStatusPending  InviteStatus = "pending"
	InviteStatusAccepted InviteStatus = "accepted"
	InviteStatusDeclined InviteStatus = "declined"
)

// Invite is a request from one user to another to open a chat conversation.
// Messaging itself is handled by the external chat provider; the invite only
// tracks whether the recipient agreed to talk.
type Invite struct {
	ID             bson.ObjectID `bson:"_id,omitempty"             json:"id"`
	SenderID       bson.ObjectID `bson:"sender_id"                 json:"senderId"`
	RecipientID    bson.ObjectID `bson:"recipient_id"              json:"recipientId"`
	Message        string        `bson:"message"                   json:"message"`
	Status         InviteStatus  `bson:"status"                    json:"status"`
	ConversationID string        `bson:"conversation_id,omitempty" json:"conversationId,omitempty"`
	CreatedAt      time.Time     `bson:"created_at"                json:"createdAt"`
	UpdatedAt      time.Time     `bson:"updated_at"                json:"updatedAt"`
}

// Resolved reports whether the invite already reached a terminal state.
func (i *Invite) Resolved() bool {
	return i.Status == InviteStatusAccepted || i.Status == InviteStatusDeclined
}
