package console

import (
	"context"
	"net/http"
)

// User is a synthetic end-user record.
type User struct {
	ID                string `json:"$id"`
	Email             string `json:"email"`
	Phone             string `json:"phone"`
	Name              string `json:"name"`
	EmailVerification bool   `json:"emailVerification"`
	Status            bool   `json:"status"`
}

// CreateUser registers a user. Pass UniqueID as userID for a server-assigned
// identifier; phone may be empty.
func (c *Client) CreateUser(ctx context.Context, userID, email, phone, password, name string) (User, error) {
	body := map[string]any{
		"userId":   userID,
		"email":    email,
		"password": password,
		"name":     name,
	}
	if phone != "" {
		body["phone"] = phone
	}
	var user User
	if err := c.DoJSON(ctx, http.MethodPost, "/users", nil, body, &user); err != nil {
		return User{}, err
	}
	return user, nil
}

// UpdateEmailVerification sets the user's email-verification flag.
func (c *Client) UpdateEmailVerification(ctx context.Context, userID string, verified bool) (User, error) {
	body := map[string]any{
		"emailVerification": verified,
	}
	var user User
	if err := c.DoJSON(ctx, http.MethodPatch, "/users/"+userID+"/verification", nil, body, &user); err != nil {
		return User{}, err
	}
	return user, nil
}
