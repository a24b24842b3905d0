package wopr

import (
	"context"

	openai "github.com/sashabaranov/go-openai"

	"github.com/wopr-network/wopr-go/transport"
)

// Embeddings creates vector embeddings.
type Embeddings struct {
	d *transport.Dispatcher
}

// New creates embeddings for the request input.
func (e *Embeddings) New(ctx context.Context, req openai.EmbeddingRequest) (*openai.EmbeddingResponse, error) {
	var resp openai.EmbeddingResponse
	if err := e.d.PostJSON(ctx, "/embeddings", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
