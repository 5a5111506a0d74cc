package console

import (
	"context"
	"net/http"
)

// Team is an organization unit on the backend.
type Team struct {
	ID   string `json:"$id"`
	Name string `json:"name"`
}

// Membership relates a user to a team under a set of roles.
type Membership struct {
	ID     string `json:"$id"`
	TeamID string `json:"teamId"`
	UserID string `json:"userId"`
}

// CreateTeam creates a team. Pass UniqueID as teamID for a server-assigned
// identifier.
func (c *Client) CreateTeam(ctx context.Context, teamID, name string) (Team, error) {
	body := map[string]any{
		"teamId": teamID,
		"name":   name,
	}
	var team Team
	if err := c.DoJSON(ctx, http.MethodPost, "/teams", nil, body, &team); err != nil {
		return Team{}, err
	}
	return team, nil
}

// CreateMembership adds a user to a team. The redirect URL is required by the
// backend for its invite flow even when the membership is created directly.
func (c *Client) CreateMembership(ctx context.Context, teamID, userID string, roles []string, redirectURL string) (Membership, error) {
	body := map[string]any{
		"userId": userID,
		"roles":  roles,
		"url":    redirectURL,
	}
	var membership Membership
	if err := c.DoJSON(ctx, http.MethodPost, "/teams/"+teamID+"/memberships", nil, body, &membership); err != nil {
		return Membership{}, err
	}
	return membership, nil
}
