package cli

import (
	"errors"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"jobtrack/internal/common"
	"jobtrack/internal/jobs"
)

// defaultExportFile matches the documented default destination.
const defaultExportFile = "jobs_export.csv"

func newInitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the database if it doesn't exist",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// The store was already opened (and the schema ensured) by the
			// root command, so there is nothing left to do here.
			cmd.Println("Database ready")
			return nil
		},
	}
}

func newAddCmd(a *app) *cobra.Command {
	var req jobs.AddJobRequest
	cmd := &cobra.Command{
		Use:   "add <title> <company>",
		Short: "Add a job application",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			req.Title = args[0]
			req.Company = args[1]
			job, err := a.jobs.Add(cmd.Context(), req)
			if err != nil {
				return err
			}
			cmd.Printf("Added %s @ %s (id=%d)\n", job.Title, job.Company, job.ID)
			return nil
		},
	}
	cmd.Flags().StringVarP(&req.Link, "link", "l", "", "URL to job listing")
	cmd.Flags().StringVarP(&req.Deadline, "deadline", "d", "", "application deadline (YYYY-MM-DD)")
	cmd.Flags().StringVarP(&req.Notes, "notes", "n", "", "any notes")
	cmd.Flags().StringVarP(&req.Status, "status", "s", "", "interested/applied/interview/offer/rejected")
	return cmd
}

func newListCmd(a *app) *cobra.Command {
	var status string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List jobs (optionally filter by status)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			jobList, err := a.jobs.List(cmd.Context(), status)
			if err != nil {
				return err
			}
			renderJobs(cmd.OutOrStdout(), jobList)
			return nil
		},
	}
	cmd.Flags().StringVarP(&status, "status", "s", "", "filter by exact status")
	return cmd
}

func newUpdateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "update <id> <status>",
		Short: "Update a job's status",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := a.jobs.UpdateStatus(cmd.Context(), id, args[1]); err != nil {
				return err
			}
			cmd.Printf("Updated %d -> %s\n", id, args[1])
			return nil
		},
	}
}

func newRemoveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <id>",
		Short: "Delete a job by ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := a.jobs.Remove(cmd.Context(), id); err != nil {
				return err
			}
			cmd.Printf("Removed %d\n", id)
			return nil
		},
	}
}

func newDetailCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "detail <id>",
		Short: "Show details for a single job by ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			job, err := a.jobs.Detail(cmd.Context(), id)
			if err != nil {
				return err
			}
			renderJobDetail(cmd.OutOrStdout(), job)
			return nil
		},
	}
}

func newExportCmd(a *app) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "export [filename]",
		Short: "Export all jobs to a CSV or XLSX file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := defaultExportFile
			if len(args) == 1 {
				path = args[0]
			}

			f := format
			if f == "" {
				if strings.EqualFold(filepath.Ext(path), ".xlsx") {
					f = "xlsx"
				} else {
					f = "csv"
				}
			}

			var (
				n   int
				err error
			)
			switch f {
			case "csv":
				n, err = a.export.ExportCSV(cmd.Context(), path)
			case "xlsx":
				n, err = a.export.ExportXLSX(cmd.Context(), path)
			default:
				return common.InvalidInputErrorf("format %q not one of csv, xlsx", f)
			}
			// Absence of data is a report, not a failure.
			if errors.Is(err, common.ErrEmptyResult) {
				cmd.Println("No jobs to export")
				return nil
			}
			if err != nil {
				return err
			}
			cmd.Printf("Exported %d jobs to %s\n", n, path)
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "", "export format: csv or xlsx (default inferred from filename)")
	return cmd
}

func newSearchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "search <keyword>",
		Short: "Search jobs by keyword in title, company, or notes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			matches, err := a.jobs.Search(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if len(matches) == 0 {
				cmd.Printf("No jobs found for %q\n", args[0])
				return nil
			}
			renderJobs(cmd.OutOrStdout(), matches)
			return nil
		},
	}
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, common.InvalidInputErrorf("id %q is not an integer", s)
	}
	return id, nil
}
