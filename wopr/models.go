package wopr

import (
	"context"

	"github.com/wopr-network/wopr-go/transport"
)

// Tier is the pricing tier of a model.
type Tier string

// Model tiers.
const (
	TierStandard Tier = "standard"
	TierPremium  Tier = "premium"
	TierBYOK     Tier = "byok"
)

// ModelInfo describes a model served by the gateway.
type ModelInfo struct {
	ID         string `json:"id"`
	Object     string `json:"object"`
	Created    int64  `json:"created"`
	OwnedBy    string `json:"owned_by"`
	Capability string `json:"capability"`
	Tier       Tier   `json:"tier"`
}

// ModelList is the result of listing models.
type ModelList struct {
	Object string      `json:"object"`
	Data   []ModelInfo `json:"data"`
}

// Models lists available models.
type Models struct {
	d *transport.Dispatcher
}

// List returns every model available to the caller.
func (m *Models) List(ctx context.Context) (*ModelList, error) {
	var resp ModelList
	if err := m.d.Get(ctx, "/models", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
