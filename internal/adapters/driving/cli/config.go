package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/gee/internal/core/services"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage persistent settings",
	Long: `Manage settings persisted in the configuration file.

Keys:
  ` + strings.Join(services.SettingKeys(), "\n  "),
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show persisted settings",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> [value]",
	Short: "Set a persistent setting",
	Long: `Set a persistent setting.

When the value is omitted for a secret key it is read from the terminal
without echo.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runConfigSet,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	svc, err := getSettingsService()
	if err != nil {
		return err
	}

	cmd.Printf("Config file: %s\n", svc.Path())
	values := svc.Values()
	if len(values) == 0 {
		cmd.Println("No settings stored.")
		return nil
	}
	for _, v := range values {
		cmd.Printf("  %s = %s\n", v.Key, v.Value)
	}
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	svc, err := getSettingsService()
	if err != nil {
		return err
	}

	key := args[0]
	var value string
	if len(args) == 2 {
		value = args[1]
	} else {
		value, err = readPassword(cmd, key+": ")
		if err != nil {
			return err
		}
	}

	if err := svc.Set(key, value); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}
	cmd.Printf("Set %s\n", key)
	return nil
}

// stdinIsTerminal reports whether stdin is an interactive terminal.
var stdinIsTerminal = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// readPassword reads a secret without echo when stdin is a terminal and
// falls back to a plain line otherwise.
func readPassword(cmd *cobra.Command, prompt string) (string, error) {
	cmd.Print(prompt)
	if stdinIsTerminal() {
		password, err := term.ReadPassword(int(os.Stdin.Fd()))
		cmd.Println()
		if err != nil {
			return "", fmt.Errorf("failed to read value: %w", err)
		}
		return string(password), nil
	}

	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read value: %w", err)
	}
	return strings.TrimSpace(line), nil
}
