// Package wopr is the Go client for the WOPR inference gateway.
//
// A Client exposes one namespace per gateway resource:
//
//	client, err := wopr.New("wopr_sk_...")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	resp, err := client.Chat.Completions.New(ctx, openai.ChatCompletionRequest{
//	    Model:    "gpt-4o",
//	    Messages: []openai.ChatCompletionMessage{{Role: "user", Content: "hi"}},
//	})
//
// Failed calls return errors from the core package; see core.Error for the
// taxonomy. Parameters rejected locally are *core.ValidationError values and
// never reach the network. Client is safe for concurrent use.
package wopr

import (
	"errors"
	"os"

	"github.com/wopr-network/wopr-go/transport"
)

// Environment variables read by NewFromEnv.
const (
	APIKeyEnvVar  = "WOPR_API_KEY"
	BaseURLEnvVar = "WOPR_BASE_URL"
)

// Version is the SDK version sent in the default User-Agent.
const Version = "0.3.0"

// ErrAPIKeyRequired is returned when a client is created without an API key.
var ErrAPIKeyRequired = errors.New("wopr: apiKey is required. Get one at https://api.wopr.bot/settings")

// Client is the entry point to the gateway.
type Client struct {
	Chat        *Chat
	Completions *Completions
	Embeddings  *Embeddings
	Audio       *Audio
	Images      *Images
	Video       *Video
	Phone       *Phone
	SMS         *SMS
	Models      *Models

	d *transport.Dispatcher
}

// New creates a client authenticated with apiKey.
func New(apiKey string, opts ...Option) (*Client, error) {
	if apiKey == "" {
		return nil, ErrAPIKeyRequired
	}

	cfg := Config{
		BaseURL:   DefaultBaseURL,
		UserAgent: "wopr-go/" + Version,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}

	topts := []transport.Option{
		transport.WithHTTPClient(cfg.HTTPClient),
		transport.WithTimeout(cfg.Timeout),
		transport.WithUserAgent(cfg.UserAgent),
		transport.WithTelemetry(cfg.Telemetry),
		transport.WithLogger(cfg.Logger),
	}
	for key, values := range cfg.Headers {
		for _, v := range values {
			topts = append(topts, transport.WithHeader(key, v))
		}
	}

	return newClient(transport.New(apiKey, cfg.BaseURL, topts...)), nil
}

// NewFromEnv creates a client from WOPR_API_KEY and, when set, WOPR_BASE_URL.
// Options passed explicitly take precedence over the environment.
func NewFromEnv(opts ...Option) (*Client, error) {
	apiKey := os.Getenv(APIKeyEnvVar)
	if apiKey == "" {
		return nil, ErrAPIKeyRequired
	}
	if base := os.Getenv(BaseURLEnvVar); base != "" {
		opts = append([]Option{WithBaseURL(base)}, opts...)
	}
	return New(apiKey, opts...)
}

func newClient(d *transport.Dispatcher) *Client {
	return &Client{
		Chat:        &Chat{Completions: &ChatCompletions{d: d}},
		Completions: &Completions{d: d},
		Embeddings:  &Embeddings{d: d},
		Audio: &Audio{
			Transcriptions: &Transcriptions{d: d},
			Speech:         &SpeechService{d: d},
		},
		Images: &Images{d: d},
		Video:  &Video{d: d},
		Phone: &Phone{
			Numbers: &PhoneNumbers{d: d},
			d:       d,
		},
		SMS:    &SMS{d: d},
		Models: &Models{d: d},
		d:      d,
	}
}

// BaseURL returns the normalized gateway base URL.
func (c *Client) BaseURL() string {
	return c.d.BaseURL()
}
