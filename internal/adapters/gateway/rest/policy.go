package rest

import (
	"context"

	"github.com/leavedesk/leavedesk/internal/core/domain"
)

// PolicyAdapter implements the policy settings port.
type PolicyAdapter struct {
	client *Client
}

// NewPolicyAdapter builds the policy adapter on the shared client.
func NewPolicyAdapter(client *Client) *PolicyAdapter {
	return &PolicyAdapter{client: client}
}

func (a *PolicyAdapter) PolicySettings(ctx context.Context) (*domain.PolicySettings, error) {
	var out domain.PolicySettings
	if err := a.client.get(ctx, "/api/v1/policy-settings", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *PolicyAdapter) SavePolicySettings(ctx context.Context, s domain.PolicySettings) error {
	return a.client.put(ctx, "/api/v1/policy-settings", s, nil)
}
