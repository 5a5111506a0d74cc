package cli

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"appseed/internal/faker"
	"appseed/internal/run"
	"appseed/internal/seeder"
)

func newSeedCmd(opts *rootOptions) *cobra.Command {
	var (
		userCount int
		teamCount int
		assign    bool
		seed      int64
		workers   int
		pause     time.Duration
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Flood a provisioned project with synthetic users and teams",
		Long:  "Seed creates synthetic users and teams through a project-scoped API key and optionally assigns every user to a random team as owner.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			logger := newLogger(opts.verbose)
			prompt := newPrompter()

			if opts.projectID == "" {
				return errors.New("no project configured; pass --project, set APPWRITE_PROJECT_ID, or run bootstrap first")
			}
			if opts.apiKey == "" {
				return errors.New("no API key configured; pass --api-key, set APPWRITE_API_KEY, or run bootstrap first")
			}

			users := resolveCount(cmd.Flags(), "users", userCount, prompt, "How many users?", 100)
			teams := resolveCount(cmd.Flags(), "teams", teamCount, prompt, "How many teams?", 10)
			if !cmd.Flags().Changed("assign") && prompt.interactive() {
				assign = prompt.Confirm("Assign each user to a random team?", true)
			}

			fk, effectiveSeed := faker.NewSeeded(seed)
			logger.Info("random source initialized", "seed", effectiveSeed)

			client := newConsoleClient(opts, opts.endpoint).WithKey(opts.projectID, opts.apiKey)
			gen := seeder.New(client, fk, logger, seeder.Config{
				Workers:       workers,
				PauseDuration: pause,
			})

			tracker := run.NewTracker()
			if err := tracker.Advance(run.Authenticated); err != nil {
				return err
			}
			if err := tracker.Advance(run.Provisioned); err != nil {
				return err
			}
			if err := tracker.Advance(run.Seeding); err != nil {
				return err
			}

			progress := func(noun string) seeder.Progress {
				return func(created, total int) {
					fmt.Fprintf(os.Stderr, "\r%d/%d %s created", created, total, noun)
					if created == total {
						fmt.Fprintln(os.Stderr)
					}
				}
			}

			createdUsers, err := gen.Users(ctx, users, progress("users"))
			if err != nil {
				if errors.Is(err, seeder.ErrNoUsers) {
					logger.Warn("No users were created; skipping team generation.")
					return nil
				}
				_ = tracker.Abort()
				return fmt.Errorf("seed users: %w", err)
			}

			createdTeams, err := gen.Teams(ctx, teams, progress("teams"))
			if err != nil {
				_ = tracker.Abort()
				return fmt.Errorf("seed teams: %w", err)
			}

			var outcomes []seeder.AssignmentOutcome
			if assign {
				outcomes, err = gen.Assign(ctx, createdTeams, createdUsers, progress("memberships"))
				if err != nil {
					_ = tracker.Abort()
					return fmt.Errorf("assign memberships: %w", err)
				}
			}

			if err := tracker.Advance(run.Complete); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Created %d users and %d teams\n", len(createdUsers), len(createdTeams))
			if assign {
				assigned := lo.Uniq(lo.Map(outcomes, func(o seeder.AssignmentOutcome, _ int) string {
					return o.TeamID
				}))
				fmt.Fprintf(out, "Assigned %d memberships across %d teams\n", len(outcomes), len(assigned))
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&userCount, "users", 0, "Number of users to create")
	cmd.Flags().IntVar(&teamCount, "teams", 0, "Number of teams to create")
	cmd.Flags().BoolVar(&assign, "assign", true, "Assign each user to a random team as owner")
	cmd.Flags().Int64Var(&seed, "seed", 0, "Random seed (0 = time-based)")
	cmd.Flags().IntVar(&workers, "workers", 16, "Concurrent membership requests")
	cmd.Flags().DurationVar(&pause, "pause", 5*time.Second, "Pause after every 100th user creation")
	return cmd
}

// resolveCount returns the flag value when set, otherwise prompts when
// interactive, otherwise the default.
func resolveCount(flags *pflag.FlagSet, name string, value int, prompt *prompter, question string, def int) int {
	if flags.Changed(name) {
		return value
	}
	if prompt.interactive() {
		return prompt.Int(question, def)
	}
	return def
}
