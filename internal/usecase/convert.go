package usecase

import (
	"context"
	"fmt"

	"github.com/becopy/becopy-api/internal/openai"
)

// ConvertUsecase proxies code conversion and assistant chat to the completion
// API. Requests pass through unmodified; upstream failures surface as
// *openai.UpstreamError.
type ConvertUsecase interface {
	// ConvertCode translates a source snippet from one programming language
	// to another and returns only the translated code.
	ConvertCode(ctx context.Context, code, fromLanguage, toLanguage string) (string, error)

	// Chat forwards a free-form conversation to the assistant.
	Chat(ctx context.Context, messages []openai.Message) (string, error)
}

// CompletionClient is the slice of the completion API the usecase needs.
type CompletionClient interface {
	ChatCompletion(ctx context.Context, messages []openai.Message) (string, error)
}

type convertUsecase struct {
	client CompletionClient
}

// NewConvertUsecase creates a new instance of ConvertUsecase.
func NewConvertUsecase(client CompletionClient) ConvertUsecase {
	return &convertUsecase{client: client}
}

func (u *convertUsecase) ConvertCode(ctx context.Context, code, fromLanguage, toLanguage string) (string, error) {
	prompt := fmt.Sprintf(
		"Convert the following %s code to %s. Reply with only the converted code, no explanation.\n\n%s",
		fromLanguage, toLanguage, code,
	)

	return u.client.ChatCompletion(ctx, []openai.Message{
		{Role: "system", Content: "You are a code conversion assistant."},
		{Role: "user", Content: prompt},
	})
}

func (u *convertUsecase) Chat(ctx context.Context, messages []openai.Message) (string, error) {
	return u.client.ChatCompletion(ctx, messages)
}
