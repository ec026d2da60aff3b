package payload

type StartOAuthRequest struct {
	UserType string `json:"userType" validate:"required,oneof=user recruiter"`
	Country  string `json:"country"`
}

type StartOAuthResponse struct {
	Nonce     string `json:"nonce"`
	State     string `json:"state"`
	ExpiresAt string `json:"expiresAt"`
}

type OAuthLoginRequest struct {
	Nonce    string `json:"nonce"    validate:"required"`
	Provider string `json:"provider" validate:"required,oneof=google linkedin"`
	Token    string `json:"token"    validate:"required"`
}

type VerifyOTPRequest struct {
	Nonce  string `json:"nonce"`
	UserID string `json:"userId"`
	Code   string `json:"code" validate:"required,len=6,numeric"`
}

type ResendOTPRequest struct {
	Nonce string `json:"nonce" validate:"required"`
}

type QueueActionRequest struct {
	Nonce   string         `json:"nonce"   validate:"required"`
	Kind    string         `json:"kind"    validate:"required"`
	Payload map[string]any `json:"payload"`
}

type RegisterRequest struct {
	Name     string `json:"name"     validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	UserType string `json:"userType" validate:"required,oneof=user recruiter"`
	Country  string `json:"country"`
}

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type ForgotPasswordSendRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ForgotPasswordVerifyRequest struct {
	Email string `json:"email" validate:"required,email"`
	Code  string `json:"code"  validate:"required,len=6,numeric"`
}

type ForgotPasswordResetRequest struct {
	Email       string `json:"email"       validate:"required,email"`
	Code        string `json:"code"        validate:"required,len=6,numeric"`
	NewPassword string `json:"newPassword" validate:"required,min=8"`
}
