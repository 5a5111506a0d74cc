package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"appseed/internal/console"
	"appseed/internal/provision"
	"appseed/internal/run"
)

// bootstrapDefaults are the answers applied with --defaults or when the
// operator accepts the default setup interactively.
type bootstrapDefaults struct {
	adminEmail    string
	adminPassword string
	adminName     string
	teamID        string
	teamName      string
	projectID     string
	projectName   string
	region        string
	keyName       string
}

func defaultBootstrap() bootstrapDefaults {
	return bootstrapDefaults{
		adminEmail:    "admin@test.com",
		adminPassword: "password",
		adminName:     "Admin",
		teamID:        "test",
		teamName:      "Test Team",
		projectID:     "test",
		projectName:   "Test Project",
		region:        "eu-de",
		keyName:       "Project Key",
	}
}

func newBootstrapCmd(opts *rootOptions) *cobra.Command {
	var (
		useDefaults bool
		saveEnv     bool
	)

	cmd := &cobra.Command{
		Use:   "bootstrap",
		Short: "Provision an admin account, team, project, and API key",
		Long:  "Bootstrap brings a fresh backend instance into a known state. Every step tolerates existing resources, so rerunning against the same instance converges.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			logger := newLogger(opts.verbose)
			prompt := newPrompter()

			answers := defaultBootstrap()
			if !useDefaults && prompt.interactive() {
				if !prompt.Confirm("Bootstrap with the default setup?", true) {
					opts.endpoint = prompt.Input("Endpoint", opts.endpoint)
					answers.adminEmail = prompt.Input("Admin email", answers.adminEmail)
					answers.adminPassword = prompt.Password("Admin password", answers.adminPassword)
					answers.adminName = prompt.Input("Admin name", answers.adminName)
					answers.teamID = prompt.Input("Team ID", answers.teamID)
					answers.teamName = prompt.Input("Team name", answers.teamName)
					answers.projectID = prompt.Input("Project ID", answers.projectID)
					answers.projectName = prompt.Input("Project name", answers.projectName)
					answers.region = prompt.Input("Project region", answers.region)
					answers.keyName = prompt.Input("API key name", answers.keyName)
				}
			}

			tracker := run.NewTracker()
			client := newConsoleClient(opts, opts.endpoint)

			admin := provision.AdminAccount{
				UserID:   console.UniqueID,
				Email:    answers.adminEmail,
				Password: answers.adminPassword,
				Name:     answers.adminName,
			}
			session, err := provision.Authenticate(ctx, client, admin, logger)
			if err != nil {
				_ = tracker.Abort()
				return fmt.Errorf("authenticate: %w", err)
			}
			if err := tracker.Advance(run.Authenticated); err != nil {
				return err
			}
			logger.Info("admin session established", "email", admin.Email)

			provisioner := provision.New(client.WithSession(session), logger)
			result, err := provisioner.Run(ctx,
				provision.TeamSpec{ID: answers.teamID, Name: answers.teamName},
				provision.ProjectSpec{ID: answers.projectID, Name: answers.projectName, Region: answers.region},
				provision.KeySpec{Name: answers.keyName, Scopes: provision.DefaultKeyScopes},
			)
			if err != nil {
				_ = tracker.Abort()
				return fmt.Errorf("provision: %w", err)
			}
			if err := tracker.Advance(run.Provisioned); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Team %q: %s\n", result.Team.ID, result.Team.Outcome)
			fmt.Fprintf(out, "Project %q: %s\n", result.Project.ID, result.Project.Outcome)
			fmt.Fprintf(out, "API key %q: %s\n", answers.keyName, result.Key.Outcome)
			fmt.Fprintf(out, "\nAPPWRITE_ENDPOINT=%s\n", opts.endpoint)
			fmt.Fprintf(out, "APPWRITE_PROJECT_ID=%s\n", answers.projectID)
			fmt.Fprintf(out, "APPWRITE_API_KEY=%s\n", result.Secret)

			writeEnv := saveEnv
			if !writeEnv && prompt.interactive() {
				writeEnv = prompt.Confirm("Write credentials to .env?", true)
			}
			if writeEnv {
				if err := WriteEnvFile(".env", opts.endpoint, result.Secret, answers.projectID); err != nil {
					return fmt.Errorf("write env file: %w", err)
				}
				fmt.Fprintln(os.Stderr, "Wrote .env")
			}

			if err := saveProfile(opts.profile, opts.endpoint, result.Secret, answers.projectID); err != nil {
				logger.Warn("could not save profile", "cause", err)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&useDefaults, "defaults", false, "Use the default setup without prompting")
	cmd.Flags().BoolVar(&saveEnv, "save-env", false, "Write credentials to .env without prompting")
	return cmd
}
