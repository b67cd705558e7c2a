package cmd

import (
	"fmt"

	"catalog-mirror/core/reconcile"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var (
	// Flags for the sync command
	incrementalSync bool
	dryRunSync      bool
)

// syncCmd runs one reconciliation pass per selected family.
var syncCmd = &cobra.Command{
	Use:   "sync <family|all>",
	Short: "Reconcile the mirror against the upstream catalog",
	Long: `Fetches the upstream catalog and reconciles the mirror against it.

Examples:
  # Full pass of the gems family
  sync gems

  # Incremental pass of every family that supports it
  sync all --incremental

  # Show what a full pass would change without writing
  sync modules --dry-run`,
	Args: cobra.ExactArgs(1),
	RunE: runSync,
}

func init() {
	syncCmd.Flags().BoolVar(&incrementalSync, "incremental", false, "Only record releases newer than the mirror")
	syncCmd.Flags().BoolVar(&dryRunSync, "dry-run", false, "Plan a full pass and report it without writing")
	RootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command, args []string) error {
	if incrementalSync && dryRunSync {
		return fmt.Errorf("--incremental and --dry-run cannot be combined")
	}

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	families, err := a.families(args[0])
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	var g errgroup.Group
	for _, family := range families {
		switch {
		case dryRunSync:
			g.Go(func() error {
				plan, err := a.orchestrator.PlanSync(ctx, family)
				if err != nil {
					return err
				}
				printPlanReport(a.logger.With(zap.String("family", family)), plan)
				return nil
			})
		case incrementalSync:
			if !a.orchestrator.SupportsIncremental(family) {
				if len(families) == 1 {
					return fmt.Errorf("%w: %s", reconcile.ErrIncrementalUnsupported, family)
				}
				a.logger.Info("Skipping family without incremental support", zap.String("family", family))
				continue
			}
			g.Go(func() error {
				_, err := a.orchestrator.IncrementalSync(ctx, family)
				return err
			})
		default:
			g.Go(func() error {
				_, err := a.orchestrator.FullSync(ctx, family)
				return err
			})
		}
	}
	return g.Wait()
}

// printPlanReport logs a planned full pass with a sample of its writes.
func printPlanReport(l *zap.Logger, plan *reconcile.Plan) {
	l.Info("Reconciliation plan",
		zap.Int("fetched", plan.Fetched),
		zap.Int("unchanged", plan.Unchanged),
		zap.Int("writes", len(plan.Writes)),
		zap.Int("removed", len(plan.Removed)),
		zap.Bool("partial", plan.Partial),
	)

	result := plan.Result()
	names := result.ChangedNames()
	maxShow := 5
	if len(names) < maxShow {
		maxShow = len(names)
	}
	for _, name := range names[:maxShow] {
		l.Info("Sample write",
			zap.String("name", name),
			zap.Strings("previous", plan.Previous[name]),
			zap.Strings("versions", plan.Writes[name]),
		)
	}
	if len(names) > maxShow {
		l.Info("Additional writes not shown", zap.Int("count", len(names)-maxShow))
	}
	if len(plan.Removed) > 0 {
		l.Info("Packages to remove", zap.Strings("names", plan.Removed))
	}
}
