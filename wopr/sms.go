package wopr

import (
	"context"

	"github.com/wopr-network/wopr-go/transport"
)

// SMSSendParams describes an SMS or MMS message. Setting MediaURLs makes
// it an MMS.
type SMSSendParams struct {
	To        string   `json:"to" validate:"required"`
	Body      string   `json:"body" validate:"required"`
	From      string   `json:"from" validate:"required"`
	MediaURLs []string `json:"media_url,omitempty" validate:"omitempty,dive,url"`
}

// SMSSendResponse is the gateway's receipt for a message.
type SMSSendResponse struct {
	SID        string `json:"sid"`
	Status     string `json:"status"`
	Capability string `json:"capability"`
}

// SMS sends text messages.
type SMS struct {
	d *transport.Dispatcher
}

// Send sends a message.
func (s *SMS) Send(ctx context.Context, params SMSSendParams) (*SMSSendResponse, error) {
	if err := validateParams(params); err != nil {
		return nil, err
	}

	var resp SMSSendResponse
	if err := s.d.PostJSON(ctx, "/messages/sms", params, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
