package apiclient

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/jonathan/freelance-desk/internal/types"
)

// Operation names for project records.
const (
	OpProjects                = "projects"
	OpClientProjects          = "client_projects"
	OpProject                 = "project"
	OpProjectCreate           = "project_create"
	OpProjectUpdate           = "project_update"
	OpProjectDelete           = "project_delete"
	OpDuplicateProjectAsDraft = "duplicate_project_as_draft"
)

type projectsResponse struct {
	Projects []types.Project `json:"projects"`
}

type projectResponse struct {
	Project *types.Project `json:"project"`
}

func errEmptyID(resource string) error {
	return fmt.Errorf("%s id is required", resource)
}

// ListProjects returns every project.
func (c *Client) ListProjects(ctx context.Context) ([]types.Project, error) {
	return c.listProjects(ctx, OpProjects, nil)
}

// ListClientProjects returns the projects of one client.
func (c *Client) ListClientProjects(ctx context.Context, clientID string) ([]types.Project, error) {
	clientID = strings.TrimSpace(clientID)
	if clientID == "" {
		return nil, &InputError{Operation: OpClientProjects, Cause: errEmptyID("client")}
	}
	return c.listProjects(ctx, OpClientProjects, url.Values{"client_id": {clientID}})
}

func (c *Client) listProjects(ctx context.Context, operation string, params url.Values) ([]types.Project, error) {
	var resp projectsResponse
	if err := c.get(ctx, operation, params, &resp); err != nil {
		return nil, err
	}
	if resp.Projects == nil {
		return []types.Project{}, nil
	}
	return resp.Projects, nil
}

// GetProject returns one project.
func (c *Client) GetProject(ctx context.Context, projectID string) (*types.Project, error) {
	projectID = strings.TrimSpace(projectID)
	if projectID == "" {
		return nil, &InputError{Operation: OpProject, Cause: errEmptyID("project")}
	}

	var resp projectResponse
	if err := c.get(ctx, OpProject, url.Values{"project_id": {projectID}}, &resp); err != nil {
		return nil, err
	}
	if resp.Project == nil {
		return nil, &NotFoundError{Resource: "project", ID: projectID}
	}
	return resp.Project, nil
}

// CreateProject creates a project and returns the stored record.
func (c *Client) CreateProject(ctx context.Context, in types.ProjectInput) (*types.Project, error) {
	if err := in.Validate(); err != nil {
		return nil, &InputError{Operation: OpProjectCreate, Cause: err}
	}

	var resp projectResponse
	if err := c.post(ctx, OpProjectCreate, in, &resp); err != nil {
		return nil, err
	}
	if resp.Project == nil {
		return nil, &ResponseError{Operation: OpProjectCreate, Message: "response carries no project"}
	}
	return resp.Project, nil
}

// UpdateProject replaces the fields of an existing project.
func (c *Client) UpdateProject(ctx context.Context, projectID string, in types.ProjectInput) (*types.Project, error) {
	projectID = strings.TrimSpace(projectID)
	if projectID == "" {
		return nil, &InputError{Operation: OpProjectUpdate, Cause: errEmptyID("project")}
	}
	if err := in.Validate(); err != nil {
		return nil, &InputError{Operation: OpProjectUpdate, Cause: err}
	}

	payload, err := withID("project_id", projectID, in)
	if err != nil {
		return nil, &InputError{Operation: OpProjectUpdate, Cause: err}
	}

	var resp projectResponse
	if err := c.post(ctx, OpProjectUpdate, payload, &resp); err != nil {
		return nil, err
	}
	if resp.Project == nil {
		return nil, &NotFoundError{Resource: "project", ID: projectID}
	}
	return resp.Project, nil
}

// DeleteProject removes a project.
func (c *Client) DeleteProject(ctx context.Context, projectID string) error {
	projectID = strings.TrimSpace(projectID)
	if projectID == "" {
		return &InputError{Operation: OpProjectDelete, Cause: errEmptyID("project")}
	}
	return c.post(ctx, OpProjectDelete, map[string]string{"project_id": projectID}, nil)
}

// DuplicateProjectAsDraft copies a project as a draft, optionally for a new
// client created from req.NewClientData.
func (c *Client) DuplicateProjectAsDraft(ctx context.Context, req types.DuplicateDraftRequest) (*types.Project, error) {
	if err := req.Validate(); err != nil {
		return nil, &InputError{Operation: OpDuplicateProjectAsDraft, Cause: err}
	}

	var resp projectResponse
	if err := c.post(ctx, OpDuplicateProjectAsDraft, req, &resp); err != nil {
		return nil, err
	}
	if resp.Project == nil {
		return nil, &NotFoundError{Resource: "project", ID: req.OriginalProjectID}
	}
	return resp.Project, nil
}
