package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/gee/internal/adapters/driven/config/file"
	"github.com/custodia-labs/gee/internal/connectors/github"
	"github.com/custodia-labs/gee/internal/core/domain"
	"github.com/custodia-labs/gee/internal/core/ports/driven"
	"github.com/custodia-labs/gee/internal/core/ports/driving"
	"github.com/custodia-labs/gee/internal/core/services"
	"github.com/custodia-labs/gee/internal/logger"
)

// EnvToken is the environment variable holding a personal access token.
//
//nolint:gosec // G101: environment variable name, not a credential.
const EnvToken = "GITHUB_TOKEN"

// version is set at build time via ldflags.
var version = "dev"

var (
	flagToken        string
	flagClientID     string
	flagClientSecret string
	flagVerbose      bool
	flagConfigDir    string
)

// settingsService is wired on first use unless injected by tests.
var settingsService driving.SettingsService

// newGitHubSource builds the GitHub source; tests replace it with a fake.
var newGitHubSource = func(ctx context.Context, cfg github.Config) (driven.GitHubSource, error) {
	return github.NewClient(ctx, cfg)
}

var rootCmd = &cobra.Command{
	Use:   "gee",
	Short: "Extract GitHub users and emails from repositories",
	Long: `gee lists the people who interacted with GitHub repositories (owner,
stargazers, watchers, fork owners, issue reporters, assignees and commenters),
resolves their public profiles and infers an email address from their public
push events when the profile declares none.

Examples:
  gee status
  gee status --client-id XX --client-secret YY
  gee extract --repos jbe456/github-email-extractor
  gee extract --query "topic:cli language:go" --output results.csv`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(flagVerbose)
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&flagToken, "token", "", "GitHub personal access token (default $"+EnvToken+")")
	flags.StringVar(&flagClientID, "client-id", "", "GitHub OAuth app client id")
	flags.StringVar(&flagClientSecret, "client-secret", "", "GitHub OAuth app client secret")
	flags.BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")
	flags.StringVar(&flagConfigDir, "config-dir", "", "configuration directory (default ~/.gee)")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// getSettingsService returns the settings service, opening the config file on first use.
func getSettingsService() (driving.SettingsService, error) {
	if settingsService != nil {
		return settingsService, nil
	}

	store, err := file.NewConfigStore(flagConfigDir)
	if err != nil {
		return nil, fmt.Errorf("failed to open config: %w", err)
	}
	settingsService = services.NewSettingsService(store)
	return settingsService, nil
}

// loadSettings returns persisted settings with credential flags and
// environment applied. Flags win over the environment, which wins over
// the config file.
func loadSettings() (domain.Settings, error) {
	svc, err := getSettingsService()
	if err != nil {
		return domain.Settings{}, err
	}

	settings, err := svc.Get()
	if err != nil {
		return domain.Settings{}, fmt.Errorf("failed to load settings: %w", err)
	}

	if env := os.Getenv(EnvToken); env != "" {
		settings.Credentials.Token = env
	}
	if flagToken != "" {
		settings.Credentials.Token = flagToken
	}
	if flagClientID != "" || flagClientSecret != "" {
		if flagClientID == "" || flagClientSecret == "" {
			return domain.Settings{}, errors.New("--client-id and --client-secret must be used together")
		}
		settings.Credentials.ClientID = flagClientID
		settings.Credentials.ClientSecret = flagClientSecret
		if flagToken == "" {
			// Explicit app credentials take over a token from config or environment.
			settings.Credentials.Token = ""
		}
	}

	return settings, nil
}

// connect builds the GitHub source for the given settings.
func connect(ctx context.Context, settings domain.Settings) (driven.GitHubSource, error) {
	source, err := newGitHubSource(ctx, github.ConfigFromSettings(settings))
	if err != nil {
		return nil, fmt.Errorf("failed to create GitHub client: %w", err)
	}
	logger.Debug("authentication: %s", settings.Credentials.Method())
	return source, nil
}
