package wopr

import (
	"context"

	openai "github.com/sashabaranov/go-openai"

	"github.com/wopr-network/wopr-go/transport"
)

// Completions creates legacy text completions.
type Completions struct {
	d *transport.Dispatcher
}

// New creates a text completion. req.Stream is forced to false.
func (c *Completions) New(ctx context.Context, req openai.CompletionRequest) (*openai.CompletionResponse, error) {
	req.Stream = false

	var resp openai.CompletionResponse
	if err := c.d.PostJSON(ctx, "/completions", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
