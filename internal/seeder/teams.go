package seeder

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"appseed/internal/console"
)

// Teams creates count teams with randomized organization names. Identifiers
// are server-generated, so a conflict here is unexpected and fatal.
func (g *Generator) Teams(ctx context.Context, count int, progress Progress) ([]console.Team, error) {
	teams := make([]console.Team, 0, count)
	for i := 0; i < count; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		team, err := g.client.CreateTeam(ctx, console.UniqueID, g.faker.CompanyName())
		if err != nil {
			return nil, fmt.Errorf("create team: %w", err)
		}
		teams = append(teams, team)
		if progress != nil {
			progress(len(teams), count)
		}
	}
	return teams, nil
}

// AssignmentOutcome records the result of one membership request.
type AssignmentOutcome struct {
	UserID string
	TeamID string
	Err    error
}

// Assign gives every user an owner membership on a team chosen uniformly at
// random (with replacement). Requests run on a bounded worker pool; every
// request runs to completion and per-user outcomes are always returned. Any
// individual failure fails the fan-out as a whole, but only after all
// requests have finished.
func (g *Generator) Assign(ctx context.Context, teams []console.Team, users []console.User, progress Progress) ([]AssignmentOutcome, error) {
	if len(teams) == 0 {
		return nil, errors.New("membership assignment requires at least one team")
	}
	if len(users) == 0 {
		return nil, ErrNoUsers
	}

	// Team choices are drawn up front: the faker's random source must not be
	// shared across worker goroutines.
	outcomes := make([]AssignmentOutcome, len(users))
	for i, user := range users {
		outcomes[i] = AssignmentOutcome{
			UserID: user.ID,
			TeamID: teams[g.faker.Intn(len(teams))].ID,
		}
	}

	var done atomic.Int64
	group := new(errgroup.Group)
	group.SetLimit(g.cfg.Workers)
	for i := range outcomes {
		outcome := &outcomes[i]
		group.Go(func() error {
			_, err := g.client.CreateMembership(ctx, outcome.TeamID, outcome.UserID, []string{"owner"}, g.cfg.RedirectURL)
			outcome.Err = err
			if err == nil && progress != nil {
				progress(int(done.Add(1)), len(outcomes))
			}
			// Outcomes are aggregated after the wait; returning the error here
			// would cancel siblings mid-flight.
			return nil
		})
	}
	_ = group.Wait()

	failed := lo.Filter(outcomes, func(o AssignmentOutcome, _ int) bool { return o.Err != nil })
	if len(failed) > 0 {
		for _, f := range failed {
			g.logger.Error("membership assignment failed", "user_id", f.UserID, "team_id", f.TeamID, "cause", f.Err)
		}
		return outcomes, fmt.Errorf("%d of %d membership assignments failed (first: %w)", len(failed), len(outcomes), failed[0].Err)
	}
	return outcomes, nil
}
