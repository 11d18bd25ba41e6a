package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/gee/internal/core/domain"
	"github.com/custodia-labs/gee/internal/core/ports/driving"
	"github.com/custodia-labs/gee/internal/core/services"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show GitHub API rate-limit status",
	Long: `Show the remaining GitHub API quota for the credentials in use.

The core bucket serves repository, user and event listings. The search
bucket serves --query lookups.`,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	settings, err := loadSettings()
	if err != nil {
		return err
	}
	source, err := connect(ctx, settings)
	if err != nil {
		return err
	}

	var svc driving.StatusService = services.NewStatusService(source)
	status, err := svc.RateLimits(ctx)
	if err != nil {
		return fmt.Errorf("failed to get rate limits: %w", err)
	}

	printWindow(cmd, "Core", status.Core)
	printWindow(cmd, "Search", status.Search)
	return nil
}

func printWindow(cmd *cobra.Command, name string, w domain.RateWindow) {
	cmd.Printf("%s status: %d/%d", name, w.Remaining, w.Limit)
	if !w.Reset.IsZero() {
		cmd.Printf(" (resets at %s)", w.Reset.Local().Format(time.TimeOnly))
	}
	cmd.Println()
}
