package console

import (
	"context"
	"fmt"
	"net/http"
	"strings"
)

// CreateAccount registers the operator account. The backend answers with a
// conflict when the account already exists; callers decide whether that is
// benign.
func (c *Client) CreateAccount(ctx context.Context, userID, email, password, name string) error {
	body := map[string]any{
		"userId":   userID,
		"email":    email,
		"password": password,
		"name":     name,
	}
	return c.DoJSON(ctx, http.MethodPost, "/account", nil, body, nil)
}

// CreateEmailSession exchanges credentials for an admin session. The session
// cookie is captured from the Set-Cookie response headers.
func (c *Client) CreateEmailSession(ctx context.Context, email, password string) (Session, error) {
	body := map[string]any{
		"email":    email,
		"password": password,
	}
	resp, err := c.Do(ctx, http.MethodPost, "/account/sessions/email", nil, body)
	if err != nil {
		return Session{}, err
	}
	data, err := ReadBody(resp)
	if err != nil {
		return Session{}, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Session{}, newAPIError(resp.StatusCode, data)
	}

	var pairs []string
	for _, cookie := range resp.Header.Values("Set-Cookie") {
		if pair, _, found := strings.Cut(cookie, ";"); found || pair != "" {
			pairs = append(pairs, strings.TrimSpace(pair))
		}
	}
	if len(pairs) == 0 {
		return Session{}, fmt.Errorf("session response carried no cookies")
	}
	return Session{Cookie: strings.Join(pairs, "; ")}, nil
}
