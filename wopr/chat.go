package wopr

import (
	"context"

	openai "github.com/sashabaranov/go-openai"

	"github.com/wopr-network/wopr-go/core"
	"github.com/wopr-network/wopr-go/transport"
)

// chatCompletionsPath is the API endpoint for chat completions.
const chatCompletionsPath = "/chat/completions"

// ChatStream yields chat completion chunks as they arrive.
type ChatStream = core.Stream[openai.ChatCompletionStreamResponse]

// Chat is the chat namespace.
type Chat struct {
	Completions *ChatCompletions
}

// ChatCompletions creates chat completions.
type ChatCompletions struct {
	d *transport.Dispatcher
}

// New creates a chat completion and waits for the full response.
// req.Stream is forced to false.
func (c *ChatCompletions) New(ctx context.Context, req openai.ChatCompletionRequest) (*openai.ChatCompletionResponse, error) {
	req.Stream = false

	var resp openai.ChatCompletionResponse
	if err := c.d.PostJSON(ctx, chatCompletionsPath, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// NewStreaming creates a chat completion in stream mode. req.Stream is forced
// to true. The caller must drain or Close the returned stream.
func (c *ChatCompletions) NewStreaming(ctx context.Context, req openai.ChatCompletionRequest) (*ChatStream, error) {
	req.Stream = true

	resp, err := c.d.PostJSONStream(ctx, chatCompletionsPath, req)
	if err != nil {
		return nil, err
	}
	return core.DecodeStream[openai.ChatCompletionStreamResponse](resp)
}
