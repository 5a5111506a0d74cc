// Package provision brings a fresh backend instance into a known state: an
// authenticated admin session, a team, a project, and a project-scoped API
// credential. Every step tolerates the resource already existing, so running
// it twice against the same instance converges instead of failing.
package provision

import (
	"context"
	"fmt"
	"log/slog"

	"appseed/internal/console"
)

// AdminAccount identifies the operator account used to mint sessions.
type AdminAccount struct {
	UserID   string
	Email    string
	Password string
	Name     string
}

// Authenticate mints an admin session. When minting fails the account is
// assumed absent: it is created (an "already exists" answer is benign, any
// other failure is fatal) and minting is retried once.
func Authenticate(ctx context.Context, client *console.Client, admin AdminAccount, logger *slog.Logger) (console.Session, error) {
	session, err := client.CreateEmailSession(ctx, admin.Email, admin.Password)
	if err == nil {
		return session, nil
	}
	logger.Debug("session mint failed, creating admin account", "email", admin.Email, "cause", err)

	if err := client.CreateAccount(ctx, admin.UserID, admin.Email, admin.Password, admin.Name); err != nil {
		if !console.IsConflict(err) {
			return console.Session{}, fmt.Errorf("create admin account: %w", err)
		}
		logger.Debug("admin account already exists", "email", admin.Email)
	}

	session, err = client.CreateEmailSession(ctx, admin.Email, admin.Password)
	if err != nil {
		return console.Session{}, fmt.Errorf("create session after account creation: %w", err)
	}
	return session, nil
}
