package cli

import (
	"context"
	"fmt"
	"log"

	"github.com/ondieki1237/stayfresh-sub001/internal/domain/entities"
	"github.com/ondieki1237/stayfresh-sub001/internal/infrastructure/config"
	"github.com/ondieki1237/stayfresh-sub001/internal/infrastructure/metrics"
	"github.com/ondieki1237/stayfresh-sub001/internal/usecase"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// RootCommand builds the single-entry migration command. open connects the
// backing store; pass OpenStore outside tests.
func RootCommand(open StoreOpener) *cobra.Command {
	v := config.NewViper()

	cmd := &cobra.Command{
		Use:           "stayfresh-migrate",
		Short:         "Migrate legacy produce records into stored produce",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.FromViper(v)
			if err != nil {
				return err
			}
			return run(cmd, open, cfg)
		},
	}

	if err := setupFlags(cmd, v); err != nil {
		log.Printf("[migration][cli] %v", err)
	}
	return cmd
}

func setupFlags(cmd *cobra.Command, v *viper.Viper) error {
	d := config.Default()
	flags := cmd.Flags()
	flags.Bool(config.KeyDryRun, d.DryRun, "Run the pipeline without persisting anything")
	flags.String(config.KeyAdminID, d.AdminID, "Approver id recorded on every migrated record")
	flags.StringSlice(config.KeyStatus, d.Statuses, "Legacy statuses eligible for migration")
	flags.Bool(config.KeyIncludeSold, d.IncludeSold, "Also migrate records flagged as sold")
	flags.Bool(config.KeyAtomic, d.Atomic, "Commit each record in one store transaction when supported")
	flags.String(config.KeyOutput, d.Output, "Report format: text or json")
	flags.String(config.KeyStore, d.StoreDriver, "Backing store: dynamodb or sqlite")
	flags.String(config.KeySQLitePath, d.SQLitePath, "SQLite database path for --store=sqlite")
	flags.Duration(config.KeyTimeout, d.StoreTimeout, "Timeout of each store call")
	flags.String(config.KeyMetricsFile, d.MetricsFile, "Write run metrics to this Prometheus textfile")

	if err := v.BindPFlags(flags); err != nil {
		return fmt.Errorf("error binding flags: %w", err)
	}
	return nil
}

func run(cmd *cobra.Command, open StoreOpener, cfg config.Config) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	filter, err := cfg.EligibilityFilter()
	if err != nil {
		return err
	}

	store, err := open(ctx, cfg)
	if err != nil {
		return fmt.Errorf("connect store: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Printf("[migration][cli] close store failed err=%v", err)
		}
	}()

	uc := usecase.NewMigrationUseCase(store.Legacy, store.Canonical, store.Rooms, store.Owners, store.Transactor)
	report, runErr := uc.Run(ctx, runOptions(cfg, filter))

	if cfg.MetricsFile != "" {
		if err := writeMetrics(cfg.MetricsFile, report); err != nil {
			log.Printf("[migration][cli] write metrics failed path=%s err=%v", cfg.MetricsFile, err)
		}
	}

	if err := render(cmd, cfg.Output, report); err != nil {
		return fmt.Errorf("render report: %w", err)
	}
	if runErr != nil {
		return fmt.Errorf("migration aborted: %w", runErr)
	}
	return nil
}

func runOptions(cfg config.Config, filter entities.EligibilityFilter) usecase.RunOptions {
	return usecase.RunOptions{
		DryRun:  cfg.DryRun,
		AdminID: cfg.AdminID,
		Filter:  filter,
		Atomic:  cfg.Atomic,
	}
}

func writeMetrics(path string, report entities.MigrationReport) error {
	m, err := metrics.NewMigrationMetrics(prometheus.NewRegistry())
	if err != nil {
		return err
	}
	m.ObserveReport(report)
	return m.WriteTextfile(path)
}

func render(cmd *cobra.Command, output string, report entities.MigrationReport) error {
	if output == config.OutputJSON {
		return RenderJSON(cmd.OutOrStdout(), report)
	}
	return RenderText(cmd.OutOrStdout(), report)
}
