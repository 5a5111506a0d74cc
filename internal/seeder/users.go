package seeder

import (
	"context"
	"errors"
	"fmt"

	"appseed/internal/console"
)

// ErrNoUsers signals that a run created zero users. Team assignment depends
// on a non-empty user set, so callers must treat this distinctly from an
// empty-but-successful batch.
var ErrNoUsers = errors.New("no users were created")

// Users creates count synthetic users and returns the ones actually created.
// Duplicate-identity conflicts are logged and skipped without aborting the
// batch; any other failure is fatal. After every PauseEvery-th iteration the
// loop pauses for PauseDuration to avoid overwhelming the backend.
func (g *Generator) Users(ctx context.Context, count int, progress Progress) ([]console.User, error) {
	users := make([]console.User, 0, count)

	for i := 0; i < count; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		profile := g.faker.Profile()
		email := g.faker.DisambiguateEmail(profile.Email)

		user, err := g.client.CreateUser(ctx, console.UniqueID, email, profile.Phone, profile.Password, profile.Name)
		switch {
		case err == nil:
			if _, err := g.client.UpdateEmailVerification(ctx, user.ID, profile.EmailVerified); err != nil {
				return nil, fmt.Errorf("set verification for user %s: %w", user.ID, err)
			}
			user.EmailVerification = profile.EmailVerified
			users = append(users, user)
			if progress != nil {
				progress(len(users), count)
			}
		case console.IsUserExists(err):
			g.logger.Warn("duplicate identity, skipping", "email", email, "name", profile.Name)
		default:
			return nil, fmt.Errorf("create user %q: %w", email, err)
		}

		if g.cfg.PauseEvery > 0 && (i+1)%g.cfg.PauseEvery == 0 {
			g.logger.Debug("pausing to let the backend catch up", "after_iteration", i+1, "pause", g.cfg.PauseDuration)
			if err := g.sleep(ctx, g.cfg.PauseDuration); err != nil {
				return nil, err
			}
		}
	}

	if len(users) == 0 {
		return nil, ErrNoUsers
	}
	return users, nil
}
