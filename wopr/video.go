package wopr

import (
	"context"

	"github.com/wopr-network/wopr-go/transport"
)

// DefaultVideoDuration is the clip length in seconds when none is given.
const DefaultVideoDuration = 4

// VideoGenerateParams describes a video generation request.
type VideoGenerateParams struct {
	Prompt string `json:"prompt" validate:"required"`

	// Duration in whole seconds, 1 to 60. Nil means DefaultVideoDuration.
	Duration *int `json:"duration" validate:"required,min=1,max=60"`
}

// VideoGenerateResponse is the result of a video generation.
type VideoGenerateResponse struct {
	Created int64       `json:"created"`
	Data    []VideoData `json:"data"`
}

// VideoData points at one generated clip.
type VideoData struct {
	URL string `json:"url"`
}

// Video generates video clips.
type Video struct {
	d *transport.Dispatcher
}

// Generate creates a video from a prompt.
func (v *Video) Generate(ctx context.Context, params VideoGenerateParams) (*VideoGenerateResponse, error) {
	if params.Duration == nil {
		params.Duration = Ptr(DefaultVideoDuration)
	}
	if err := validateParams(params); err != nil {
		return nil, err
	}

	var resp VideoGenerateResponse
	if err := v.d.PostJSON(ctx, "/video/generations", params, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
