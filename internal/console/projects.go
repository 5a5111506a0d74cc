package console

import (
	"context"
	"net/http"
)

// Project is a backend project owned by a team.
type Project struct {
	ID     string `json:"$id"`
	Name   string `json:"name"`
	TeamID string `json:"teamId"`
	Region string `json:"region"`
}

// Key is a project-scoped API credential. Secret is only guaranteed to be
// populated on the response to the create call.
type Key struct {
	ID     string   `json:"$id"`
	Name   string   `json:"name"`
	Scopes []string `json:"scopes"`
	Secret string   `json:"secret"`
}

type keyList struct {
	Total int   `json:"total"`
	Keys  []Key `json:"keys"`
}

// CreateProject creates a project under the owning team.
func (c *Client) CreateProject(ctx context.Context, projectID, name, teamID, region string) (Project, error) {
	body := map[string]any{
		"projectId": projectID,
		"name":      name,
		"teamId":    teamID,
		"region":    region,
	}
	var project Project
	if err := c.DoJSON(ctx, http.MethodPost, "/projects", nil, body, &project); err != nil {
		return Project{}, err
	}
	return project, nil
}

// CreateKey creates an API credential scoped to the project with exactly the
// given scope set.
func (c *Client) CreateKey(ctx context.Context, projectID, name string, scopes []string) (Key, error) {
	body := map[string]any{
		"name":   name,
		"scopes": scopes,
	}
	var key Key
	if err := c.DoJSON(ctx, http.MethodPost, "/projects/"+projectID+"/keys", nil, body, &key); err != nil {
		return Key{}, err
	}
	return key, nil
}

// ListKeys returns the project's existing API credentials.
func (c *Client) ListKeys(ctx context.Context, projectID string) ([]Key, error) {
	var list keyList
	if err := c.DoJSON(ctx, http.MethodGet, "/projects/"+projectID+"/keys", nil, nil, &list); err != nil {
		return nil, err
	}
	return list.Keys, nil
}
