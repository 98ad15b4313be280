// Package cli wires the jobtrack command tree. The store is opened once
// before the subcommand runs and closed after it; each subcommand performs
// one short transaction against that handle.
package cli

import (
	"log/slog"

	"github.com/spf13/cobra"

	"jobtrack/internal/common"
	"jobtrack/internal/export"
	"jobtrack/internal/jobs"
	"jobtrack/internal/repository"
)

type app struct {
	cfg    *common.Config
	logger *slog.Logger

	dbPath string
	store  *repository.Store
	jobs   *jobs.Service
	export *export.Service
}

func (a *app) open(cmd *cobra.Command, _ []string) error {
	store, err := repository.Open(cmd.Context(), repository.Config{
		Path:        a.dbPath,
		BusyTimeout: a.cfg.Database.BusyTimeout,
	}, a.logger)
	if err != nil {
		return err
	}
	if err := store.HealthCheck(cmd.Context(), a.cfg.Database.BusyTimeout); err != nil {
		_ = store.Close()
		return err
	}
	a.store = store

	jobRepo := repository.NewJobRepository(store, a.logger)
	a.jobs = jobs.NewService(jobRepo, a.logger)
	a.export = export.NewService(jobRepo, a.logger)
	return nil
}

func (a *app) close(_ *cobra.Command, _ []string) error {
	return a.store.Close()
}

// NewRootCmd builds the jobtrack command tree.
func NewRootCmd(cfg *common.Config, logger *slog.Logger) *cobra.Command {
	a := &app{cfg: cfg, logger: logger}

	root := &cobra.Command{
		Use:           "jobtrack",
		Short:         "Track job applications in a local SQLite file",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&a.dbPath, "db", cfg.Database.Path, "path to the SQLite database file")
	root.PersistentPreRunE = a.open
	root.PersistentPostRunE = a.close

	root.AddCommand(
		newInitCmd(a),
		newAddCmd(a),
		newListCmd(a),
		newUpdateCmd(a),
		newRemoveCmd(a),
		newDetailCmd(a),
		newExportCmd(a),
		newSearchCmd(a),
	)
	return root
}
