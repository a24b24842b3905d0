package wopr

import (
	"context"

	openai "github.com/sashabaranov/go-openai"

	"github.com/wopr-network/wopr-go/transport"
)

// Images generates images.
type Images struct {
	d *transport.Dispatcher
}

// Generate creates images from a prompt.
func (i *Images) Generate(ctx context.Context, req openai.ImageRequest) (*openai.ImageResponse, error) {
	var resp openai.ImageResponse
	if err := i.d.PostJSON(ctx, "/images/generations", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
