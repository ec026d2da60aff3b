package payload

type ConvertCodeRequest struct {
	Code         string `json:"code"         validate:"required"`
	FromLanguage string `json:"fromLanguage" validate:"required"`
	ToLanguage   string `json:"toLanguage"   validate:"required"`
}

type ConvertCodeResponse struct {
	ConvertedCode string `json:"convertedCode"`
}

type ChatMessagePayload struct {
	Role    string `json:"role"    validate:"required,oneof=system user assistant"`
	Content string `json:"content" validate:"required"`
}

type ChatRequest struct {
	Messages []ChatMessagePayload `json:"messages" validate:"required,min=1,dive"`
}

type ChatResponse struct {
	Reply string `json:"reply"`
}
