package usecase

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/becopy/becopy-api/internal/openai"
)

// fakeCompletionClient records the last message batch and replies with a fixed
// string or error.
type fakeCompletionClient struct {
	reply    string
	err      error
	messages []openai.Message
}

func (c *fakeCompletionClient) ChatCompletion(_ context.Context, messages []openai.Message) (string, error) {
	c.messages = messages
	if c.err != nil {
		return "", c.err
	}
	return c.reply, nil
}

func TestConvertCode(t *testing.T) {
	client := &fakeCompletionClient{reply: "print(\"hi\")"}
	u := NewConvertUsecase(client)

	result, err := u.ConvertCode(context.Background(), `fmt.Println("hi")`, "Go", "Python")
	require.NoError(t, err)
	assert.Equal(t, "print(\"hi\")", result)

	require.Len(t, client.messages, 2)
	assert.Equal(t, "system", client.messages[0].Role)
	assert.Contains(t, client.messages[1].Content, "Convert the following Go code to Python")
	assert.Contains(t, client.messages[1].Content, `fmt.Println("hi")`)
}

func TestConvertChatPassthrough(t *testing.T) {
	client := &fakeCompletionClient{reply: "sure"}
	u := NewConvertUsecase(client)

	messages := []openai.Message{
		{Role: "user", Content: "explain goroutines"},
	}

	result, err := u.Chat(context.Background(), messages)
	require.NoError(t, err)
	assert.Equal(t, "sure", result)
	assert.Equal(t, messages, client.messages)
}

func TestConvertUpstreamErrorSurfaces(t *testing.T) {
	upstream := &openai.UpstreamError{StatusCode: http.StatusTooManyRequests, Body: `{"error":"rate limited"}`}
	u := NewConvertUsecase(&fakeCompletionClient{err: upstream})

	_, err := u.ConvertCode(context.Background(), "code", "Go", "Python")

	var got *openai.UpstreamError
	require.ErrorAs(t, err, &got)
	assert.Equal(t, http.StatusTooManyRequests, got.StatusCode)
}
