package apiclient

import (
	"context"

	"github.com/jonathan/freelance-desk/internal/types"
)

// Operation names for settings and first-time setup.
const (
	OpSettings       = "settings"
	OpSettingsUpdate = "settings_update"
	OpSetup          = "setup"
	OpSetupStatus    = "setup_status"
)

type settingsResponse struct {
	Settings *types.Settings `json:"settings"`
}

// GetSettings returns the operator settings. A store without settings
// yields zero-valued settings.
func (c *Client) GetSettings(ctx context.Context) (*types.Settings, error) {
	var resp settingsResponse
	if err := c.get(ctx, OpSettings, nil, &resp); err != nil {
		return nil, err
	}
	if resp.Settings == nil {
		return &types.Settings{}, nil
	}
	return resp.Settings, nil
}

// UpdateSettings stores new operator settings.
func (c *Client) UpdateSettings(ctx context.Context, in types.SettingsInput) (*types.Settings, error) {
	if err := in.Validate(); err != nil {
		return nil, &InputError{Operation: OpSettingsUpdate, Cause: err}
	}

	var resp settingsResponse
	if err := c.post(ctx, OpSettingsUpdate, in, &resp); err != nil {
		return nil, err
	}
	if resp.Settings == nil {
		return &types.Settings{}, nil
	}
	return resp.Settings, nil
}

// Setup initialises a fresh remote store.
func (c *Client) Setup(ctx context.Context, req types.SetupRequest) error {
	if err := req.Validate(); err != nil {
		return &InputError{Operation: OpSetup, Cause: err}
	}
	return c.post(ctx, OpSetup, req, nil)
}

// SetupStatus reports whether the remote store has been initialised.
func (c *Client) SetupStatus(ctx context.Context) (*types.SetupStatus, error) {
	var status types.SetupStatus
	if err := c.get(ctx, OpSetupStatus, nil, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// RenderContext fetches a project with its client and the settings.
func (c *Client) RenderContext(ctx context.Context, projectID string) (types.RenderContext, error) {
	project, err := c.GetProject(ctx, projectID)
	if err != nil {
		return types.RenderContext{}, err
	}

	rc := types.RenderContext{Project: *project}

	if id := project.ClientID.String(); id != "" {
		client, err := c.GetClient(ctx, id)
		if err != nil {
			return types.RenderContext{}, err
		}
		rc.Client = *client
	}

	settings, err := c.GetSettings(ctx)
	if err != nil {
		return types.RenderContext{}, err
	}
	rc.Settings = *settings

	return rc, nil
}
