package cmd

import (
	"catalog-mirror/core/reconcile"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// registerCmd merges one release into a mirror without fetching the catalog.
var registerCmd = &cobra.Command{
	Use:   "register <family> <name> <version> [platform]",
	Short: "Record a single published release",
	Long: `Merges one release into the mirror and invalidates the package's cached pages.
Use it from publish hooks so new releases show up before the next pass.`,
	Args: cobra.RangeArgs(3, 4),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		record := reconcile.VersionRecord{Name: args[1], Version: args[2]}
		if len(args) == 4 {
			record.Platform = args[3]
		}

		changed, err := a.orchestrator.Register(cmd.Context(), args[0], record)
		if err != nil {
			return err
		}
		if !changed {
			a.logger.Info("Release already mirrored", zap.String("name", record.Name), zap.String("version", record.Version))
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(registerCmd)
}
