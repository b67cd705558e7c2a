package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// yesConfirm skips the interactive confirmation of destructive commands.
var yesConfirm bool

// cacheCmd is the parent command for page cache operations.
var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage cached documentation pages",
}

// cachePurgeCmd removes every cached page of a family.
var cachePurgeCmd = &cobra.Command{
	Use:   "purge <family>",
	Short: "Delete every cached page of a family",
	Long: `Deletes all cached pages of a family from object storage, e.g. after a
rendering change. Pages are rebuilt on demand.

Examples:
  # Purge with interactive confirmation
  cache purge gems

  # Purge without prompting
  cache purge modules --yes`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		if a.pages == nil {
			return fmt.Errorf("cache invalidation is disabled (CACHE_ENABLED=false)")
		}
		families, err := a.families(args[0])
		if err != nil {
			return err
		}

		if !confirmDestructiveAction() {
			a.logger.Warn("Operation cancelled by user. No changes were made.")
			return nil
		}

		for _, family := range families {
			removed, err := a.pages.Purge(cmd.Context(), family)
			if err != nil {
				return fmt.Errorf("failed to purge %s pages: %w", family, err)
			}
			a.logger.Info("Purged cached pages", zap.String("family", family), zap.Int("removed", removed))
		}
		return nil
	},
}

func init() {
	cachePurgeCmd.Flags().BoolVar(&yesConfirm, "yes", false, "Auto-confirm (non-interactive)")
	cacheCmd.AddCommand(cachePurgeCmd)
	RootCmd.AddCommand(cacheCmd)
}

// confirmDestructiveAction prompts the user for confirmation or uses --yes flag.
func confirmDestructiveAction() bool {
	if yesConfirm {
		fmt.Println("Auto-confirmed via --yes flag")
		return true
	}

	fmt.Print("Type 'yes' to confirm: ")
	reader := bufio.NewReader(os.Stdin)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	return strings.TrimSpace(response) == "yes"
}
