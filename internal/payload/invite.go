package payload

type SendInviteRequest struct {
	RecipientID string `json:"recipientId" validate:"required"`
	Message     string `json:"message"     validate:"max=500"`
}
