package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// migrateCmd creates or updates the mirror tables of the enabled families.
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create and verify the mirror tables",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		for _, family := range a.orchestrator.Families() {
			store := a.stores[family]
			if err := store.Migrate(cmd.Context()); err != nil {
				return fmt.Errorf("failed to migrate %s: %w", family, err)
			}
			if err := store.CheckSchema(cmd.Context()); err != nil {
				return fmt.Errorf("schema check failed for %s: %w", family, err)
			}
			a.logger.Info("Mirror table ready", zap.String("family", family), zap.String("table", store.Table()))
		}

		if a.pages != nil {
			if err := a.pages.Check(cmd.Context()); err != nil {
				return err
			}
			a.logger.Info("Cache bucket ready", zap.String("bucket", a.cfg.Storage.Bucket))
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(migrateCmd)
}
