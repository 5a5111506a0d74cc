// Package cli implements the appseed command tree.
package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/time/rate"

	"appseed/internal/console"
)

var (
	version = "dev"
	commit  = "none"
)

// Execute runs the CLI.
func Execute() int {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// rootOptions holds the resolved persistent flags shared by all commands.
type rootOptions struct {
	endpoint  string
	projectID string
	apiKey    string
	profile   string
	insecure  bool
	verbose   bool
	rps       float64
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:           "appseed",
		Short:         "Bootstrap and seed an Appwrite-compatible backend",
		Long:          "appseed provisions a fresh backend instance (admin account, team, project, API key) and floods it with synthetic users and teams for testing.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := LoadUserConfig()
			if err != nil {
				// The config file is optional.
				cfg = &UserConfig{Profiles: map[string]Profile{}}
			}
			opts.resolve(cmd.Flags(), cfg)
			return nil
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.endpoint, "endpoint", "http://localhost/v1", "Backend endpoint URL")
	flags.StringVar(&opts.projectID, "project", "", "Project identifier")
	flags.StringVar(&opts.apiKey, "api-key", "", "Project-scoped API key")
	flags.StringVarP(&opts.profile, "profile", "p", "", "Config profile to use")
	flags.BoolVar(&opts.insecure, "insecure", false, "Skip TLS certificate verification")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Verbose diagnostic output")
	flags.Float64Var(&opts.rps, "rps", 0, "Client-side request rate limit (0 = unlimited)")

	rootCmd.AddCommand(newBootstrapCmd(opts))
	rootCmd.AddCommand(newSeedCmd(opts))
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// resolve fills the connection options. Precedence per value: an explicitly
// set flag, then the environment, then the active profile, then the flag
// default.
func (o *rootOptions) resolve(flags *pflag.FlagSet, cfg *UserConfig) {
	p := cfg.ActiveProfile(o.profile)

	if !flags.Changed("endpoint") {
		if v := os.Getenv("APPWRITE_ENDPOINT"); v != "" {
			o.endpoint = v
		} else if p.Endpoint != "" {
			o.endpoint = p.Endpoint
		}
	}
	if !flags.Changed("project") {
		if v := os.Getenv("APPWRITE_PROJECT_ID"); v != "" {
			o.projectID = v
		} else if p.ProjectID != "" {
			o.projectID = p.ProjectID
		}
	}
	if !flags.Changed("api-key") {
		if v := os.Getenv("APPWRITE_API_KEY"); v != "" {
			o.apiKey = v
		} else if p.APIKey != "" {
			o.apiKey = p.APIKey
		}
	}
}

// newLogger builds the diagnostic logger. User-facing output goes to stdout
// via fmt; this logger is for progress diagnostics on stderr.
func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// newConsoleClient builds an unauthenticated client from the resolved options.
func newConsoleClient(opts *rootOptions, endpoint string) *console.Client {
	client := console.NewClient(endpoint)
	if opts.insecure {
		client.HTTPClient = console.InsecureHTTPClient()
	}
	if opts.rps > 0 {
		burst := int(opts.rps)
		if burst < 1 {
			burst = 1
		}
		client.Limiter = rate.NewLimiter(rate.Limit(opts.rps), burst)
	}
	return client
}
