package apiclient

import (
	"context"
	"net/url"
	"strings"

	"github.com/jonathan/freelance-desk/internal/types"
)

// Operation names for client records.
const (
	OpClients      = "clients"
	OpClient       = "client"
	OpClientCreate = "client_create"
	OpClientUpdate = "client_update"
	OpClientDelete = "client_delete"
)

type clientsResponse struct {
	Clients []types.Client `json:"clients"`
}

type clientResponse struct {
	Client *types.Client `json:"client"`
}

// ListClients returns every client. A missing list is an empty list.
func (c *Client) ListClients(ctx context.Context) ([]types.Client, error) {
	var resp clientsResponse
	if err := c.get(ctx, OpClients, nil, &resp); err != nil {
		return nil, err
	}
	if resp.Clients == nil {
		return []types.Client{}, nil
	}
	return resp.Clients, nil
}

// GetClient returns one client.
func (c *Client) GetClient(ctx context.Context, clientID string) (*types.Client, error) {
	clientID = strings.TrimSpace(clientID)
	if clientID == "" {
		return nil, &InputError{Operation: OpClient, Cause: errEmptyID("client")}
	}

	var resp clientResponse
	if err := c.get(ctx, OpClient, url.Values{"client_id": {clientID}}, &resp); err != nil {
		return nil, err
	}
	if resp.Client == nil {
		return nil, &NotFoundError{Resource: "client", ID: clientID}
	}
	return resp.Client, nil
}

// CreateClient creates a client and returns the stored record.
func (c *Client) CreateClient(ctx context.Context, in types.ClientInput) (*types.Client, error) {
	if err := in.Validate(); err != nil {
		return nil, &InputError{Operation: OpClientCreate, Cause: err}
	}

	var resp clientResponse
	if err := c.post(ctx, OpClientCreate, in, &resp); err != nil {
		return nil, err
	}
	if resp.Client == nil {
		return nil, &ResponseError{Operation: OpClientCreate, Message: "response carries no client"}
	}
	return resp.Client, nil
}

// UpdateClient replaces the fields of an existing client.
func (c *Client) UpdateClient(ctx context.Context, clientID string, in types.ClientInput) (*types.Client, error) {
	clientID = strings.TrimSpace(clientID)
	if clientID == "" {
		return nil, &InputError{Operation: OpClientUpdate, Cause: errEmptyID("client")}
	}
	if err := in.Validate(); err != nil {
		return nil, &InputError{Operation: OpClientUpdate, Cause: err}
	}

	payload, err := withID("client_id", clientID, in)
	if err != nil {
		return nil, &InputError{Operation: OpClientUpdate, Cause: err}
	}

	var resp clientResponse
	if err := c.post(ctx, OpClientUpdate, payload, &resp); err != nil {
		return nil, err
	}
	if resp.Client == nil {
		return nil, &NotFoundError{Resource: "client", ID: clientID}
	}
	return resp.Client, nil
}

// DeleteClient removes a client.
func (c *Client) DeleteClient(ctx context.Context, clientID string) error {
	clientID = strings.TrimSpace(clientID)
	if clientID == "" {
		return &InputError{Operation: OpClientDelete, Cause: errEmptyID("client")}
	}
	return c.post(ctx, OpClientDelete, map[string]string{"client_id": clientID}, nil)
}
