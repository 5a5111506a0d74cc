package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage connection profiles",
	}
	cmd.AddCommand(newConfigViewCmd())
	cmd.AddCommand(newConfigUseCmd())
	return cmd
}

func newConfigViewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "view",
		Short: "Show the stored profiles with secrets redacted",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := LoadUserConfig()
			if err != nil {
				return fmt.Errorf("no config found at %s", ConfigPath())
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "current-profile: %s\n", cfg.CurrentProfile)
			for name, p := range cfg.Profiles {
				fmt.Fprintf(out, "%s:\n", name)
				fmt.Fprintf(out, "  endpoint: %s\n", p.Endpoint)
				fmt.Fprintf(out, "  project-id: %s\n", p.ProjectID)
				fmt.Fprintf(out, "  api-key: %s\n", redact(p.APIKey))
			}
			return nil
		},
	}
}

func newConfigUseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "use <profile>",
		Short: "Switch the current profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := LoadUserConfig()
			if err != nil {
				return fmt.Errorf("no config found at %s", ConfigPath())
			}
			name := args[0]
			if _, ok := cfg.Profiles[name]; !ok {
				return fmt.Errorf("unknown profile %q", name)
			}
			cfg.CurrentProfile = name
			if err := SaveUserConfig(cfg); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Switched to profile %q\n", name)
			return nil
		},
	}
}

func redact(secret string) string {
	if secret == "" {
		return ""
	}
	if len(secret) <= 8 {
		return "********"
	}
	return secret[:4] + "..." + secret[len(secret)-4:]
}
