package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/gee/internal/adapters/driven/export/csv"
	"github.com/custodia-labs/gee/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/gee/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/gee/internal/core/domain"
	"github.com/custodia-labs/gee/internal/core/ports/driven"
	"github.com/custodia-labs/gee/internal/core/ports/driving"
	"github.com/custodia-labs/gee/internal/core/services"
	"github.com/custodia-labs/gee/internal/logger"
)

var (
	extractRepos       []string
	extractQuery       string
	extractOutput      string
	extractMaxEmails   int
	extractCacheExpiry int
	extractCachePath   string
	extractNoCache     bool
	extractOwnerMode   string
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract users and emails from repositories",
	Long: `Extract the users who interacted with repositories and infer their emails.

Repositories are given explicitly with --repos or found with a GitHub
repository search --query. Exactly one of the two is required.

Results are written as CSV. An --output with a file extension receives
every repository in one file; otherwise --output is a directory receiving
one <owner>-<repo>.csv file per repository.`,
	Example: `  gee extract --repos jbe456/github-email-extractor
  gee extract --repos owner/one,owner/two --output contacts.csv
  gee extract --query "topic:cli language:go stars:>100" --max-emails 1`,
	Args: cobra.NoArgs,
	RunE: runExtract,
}

func init() {
	flags := extractCmd.Flags()
	flags.StringSliceVar(&extractRepos, "repos", nil, "repositories to analyse (owner/name, repeatable or comma separated)")
	flags.StringVar(&extractQuery, "query", "", "GitHub repository search query")
	flags.StringVarP(&extractOutput, "output", "o", "", "output file (with extension) or directory (default current directory)")
	flags.IntVar(&extractMaxEmails, "max-emails", domain.DefaultMaxEmails, "maximum number of emails per user")
	flags.IntVar(&extractCacheExpiry, "cache-expiry", domain.DefaultCacheExpiryDays, "cache expiry in days, 0 disables the persistent cache")
	flags.StringVar(&extractCachePath, "cache-path", "", "cache directory (default ~/.gee/cache)")
	flags.BoolVar(&extractNoCache, "no-cache", false, "do not read or write the persistent cache")
	flags.StringVar(&extractOwnerMode, "owner-mode", "", "where the repository owner is merged: step or append")
	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	req := driving.ExtractRequest{Repositories: extractRepos, Query: extractQuery}
	if err := services.ValidateExtractRequest(req); err != nil {
		return err
	}

	settings, err := extractSettings(cmd)
	if err != nil {
		return err
	}

	source, err := connect(ctx, settings)
	if err != nil {
		return err
	}

	cache, closeCache, err := openCache(settings)
	if err != nil {
		return err
	}
	defer closeCache()

	sink := csv.NewExporter(extractOutput, settings.MaxEmails)
	var extractor driving.Extractor = services.NewExtractService(source, cache, settings.OwnerMode)

	summary, err := extractor.Extract(ctx, req, newCLIObserver(cmd), sink)
	if err != nil {
		return fmt.Errorf("extraction failed: %w", err)
	}

	out := newStyles(cmd.OutOrStdout())
	cmd.Println()
	cmd.Println(out.heading("SUMMARY"))
	if summary.ExportPath != "" {
		cmd.Printf("Results exported to %s\n", summary.ExportPath)
	}
	cmd.Println(out.summaryTable(summary))
	return nil
}

// extractSettings applies the extract flags the user set on top of the
// loaded settings.
func extractSettings(cmd *cobra.Command) (domain.Settings, error) {
	settings, err := loadSettings()
	if err != nil {
		return domain.Settings{}, err
	}

	flags := cmd.Flags()
	if flags.Changed("max-emails") {
		if extractMaxEmails < 1 {
			return domain.Settings{}, fmt.Errorf("%w: --max-emails must be a positive integer", domain.ErrInvalidInput)
		}
		settings.MaxEmails = extractMaxEmails
	}
	if flags.Changed("cache-expiry") {
		if extractCacheExpiry < 0 {
			return domain.Settings{}, fmt.Errorf("%w: --cache-expiry must not be negative", domain.ErrInvalidInput)
		}
		settings.CacheExpiryDays = extractCacheExpiry
	}
	if flags.Changed("cache-path") {
		settings.CachePath = extractCachePath
	}
	if extractNoCache {
		settings.CacheExpiryDays = 0
	}
	if flags.Changed("owner-mode") {
		mode, err := domain.ParseOwnerMode(extractOwnerMode)
		if err != nil {
			return domain.Settings{}, err
		}
		settings.OwnerMode = mode
	}
	return settings, nil
}

// openCache opens the persistent cache, or an in-memory one scoped to this
// run when the persistent cache is disabled.
func openCache(settings domain.Settings) (driven.Cache, func(), error) {
	if !settings.CacheEnabled() {
		logger.Debug("persistent cache disabled")
		return memory.NewCache(0), func() {}, nil
	}

	store, err := sqlite.NewStore(settings.CachePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open cache: %w", err)
	}
	logger.Debug("cache: %s (expiry %d days)", store.Path(), settings.CacheExpiryDays)

	closeFn := func() {
		if err := store.Close(); err != nil {
			logger.Warn("failed to close cache: %v", err)
		}
	}
	return store.Cache(settings.CacheTTL()), closeFn, nil
}

// cliObserver prints extraction progress.
type cliObserver struct {
	cmd    *cobra.Command
	styles *styles
}

var _ driving.ExtractObserver = (*cliObserver)(nil)

func newCLIObserver(cmd *cobra.Command) *cliObserver {
	return &cliObserver{cmd: cmd, styles: newStyles(cmd.OutOrStdout())}
}

func (o *cliObserver) RepositoriesResolved(repos []domain.RepositoryRef) {
	o.cmd.Println(o.styles.heading("Repositories to analyze"))
	for _, r := range repos {
		o.cmd.Printf("  %s\n", r)
	}
}

func (o *cliObserver) RepositoryStarted(repo domain.RepositoryRef) {
	o.cmd.Println()
	o.cmd.Println(o.styles.Repo.Render("* " + repo.String()))
	o.cmd.Printf("Fetching %s topics...\n", repo)
}

func (o *cliObserver) TopicsFetched(repo domain.RepositoryRef, topics []string) {
	o.cmd.Printf("Topics: %s\n", strings.Join(topics, ", "))
	o.cmd.Printf("Extracting users from %s...\n", repo)
}

func (o *cliObserver) StepMerged(_ domain.RepositoryRef, y domain.DiscoveryYield) {
	o.cmd.Printf("- Found %d %s and %d additional user(s).\n", y.TotalFound, y.Step.Label(), y.NewlyAdded)
}

func (o *cliObserver) UsersDiscovered(_ domain.RepositoryRef, count int) {
	o.cmd.Printf("Extracted %d users total.\n", count)
	o.cmd.Println("Extracting user infos...")
}

func (o *cliObserver) RepositoryCompleted(report *domain.RepositoryReport, exportPath string) {
	o.cmd.Println(o.styles.Success.Render(
		fmt.Sprintf("Extracted %d/%d emails (%d%%).", report.EmailsCount, report.UsersCount, report.EmailRate),
	))
	if exportPath != "" {
		o.cmd.Printf("Results exported to %s\n", exportPath)
	}
}
