package wopr

import (
	"context"
	"net/url"

	"github.com/wopr-network/wopr-go/core"
	"github.com/wopr-network/wopr-go/transport"
)

// DefaultCountry is the country used when provisioning without one.
const DefaultCountry = "US"

// PhoneCallParams describes an outbound call.
type PhoneCallParams struct {
	To         string `json:"to" validate:"required"`
	From       string `json:"from" validate:"required"`
	WebhookURL string `json:"webhook_url,omitempty" validate:"omitempty,url"`
}

// PhoneCallResponse is the gateway's acknowledgement of a call.
type PhoneCallResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// PhoneNumberProvisionParams describes the number to provision.
// The zero value provisions any US number.
type PhoneNumberProvisionParams struct {
	AreaCode     string               `json:"area_code,omitempty"`
	Country      string               `json:"country"`
	Capabilities *CapabilitiesRequest `json:"capabilities,omitempty"`
}

// CapabilitiesRequest selects the capabilities a provisioned number needs.
type CapabilitiesRequest struct {
	SMS   *bool `json:"sms,omitempty"`
	Voice *bool `json:"voice,omitempty"`
	MMS   *bool `json:"mms,omitempty"`
}

// PhoneNumber is a number owned by the tenant.
type PhoneNumber struct {
	ID           string       `json:"id"`
	PhoneNumber  string       `json:"phone_number"`
	FriendlyName string       `json:"friendly_name"`
	Capabilities Capabilities `json:"capabilities"`
}

// Capabilities reports what a number supports.
type Capabilities struct {
	SMS   bool `json:"sms"`
	Voice bool `json:"voice"`
	MMS   bool `json:"mms"`
}

// PhoneNumberList is the result of listing numbers.
type PhoneNumberList struct {
	Data []PhoneNumber `json:"data"`
}

// PhoneNumberReleaseResponse confirms a released number.
type PhoneNumberReleaseResponse struct {
	Status string `json:"status"`
	ID     string `json:"id"`
}

// Phone places calls and manages numbers.
type Phone struct {
	Numbers *PhoneNumbers

	d *transport.Dispatcher
}

// Call initiates an outbound phone call.
func (p *Phone) Call(ctx context.Context, params PhoneCallParams) (*PhoneCallResponse, error) {
	if err := validateParams(params); err != nil {
		return nil, err
	}

	var resp PhoneCallResponse
	if err := p.d.PostJSON(ctx, "/phone/outbound", params, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// PhoneNumbers manages the tenant's phone numbers.
type PhoneNumbers struct {
	d *transport.Dispatcher
}

// Provision acquires a new phone number.
func (n *PhoneNumbers) Provision(ctx context.Context, params PhoneNumberProvisionParams) (*PhoneNumber, error) {
	if params.Country == "" {
		params.Country = DefaultCountry
	}

	var resp PhoneNumber
	if err := n.d.PostJSON(ctx, "/phone/numbers", params, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// List returns all numbers owned by the tenant.
func (n *PhoneNumbers) List(ctx context.Context) (*PhoneNumberList, error) {
	var resp PhoneNumberList
	if err := n.d.Get(ctx, "/phone/numbers", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// phoneNumberRoute labels per-number requests in telemetry.
const phoneNumberRoute = "/phone/numbers/{id}"

// Release gives a number back. The id is path-escaped.
func (n *PhoneNumbers) Release(ctx context.Context, id string) (*PhoneNumberReleaseResponse, error) {
	if id == "" {
		return nil, &core.ValidationError{Field: "id", Message: "is required"}
	}

	ctx = transport.WithRoute(ctx, phoneNumberRoute)

	var resp PhoneNumberReleaseResponse
	if err := n.d.Delete(ctx, "/phone/numbers/"+url.PathEscape(id), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
