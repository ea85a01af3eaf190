package main

// packctl drives the packaging pipeline from the command line against the
// same wiring the API server uses. Useful for headless exports where the
// archive target is a path on this machine.

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/a-a-ronc/LePerfectPermit-sub001/internal/bootstrap"
	"github.com/a-a-ronc/LePerfectPermit-sub001/internal/packaging"
	"github.com/a-a-ronc/LePerfectPermit-sub001/internal/packaging/archive"
	"github.com/a-a-ronc/LePerfectPermit-sub001/internal/shared/config"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "packctl",
		Short:         "Assemble and export permit submission packages",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newExportCmd(), newProgressCmd())
	return root
}

func newExportCmd() *cobra.Command {
	var (
		outPath   string
		exportDir string
	)

	cmd := &cobra.Command{
		Use:   "export <project-id>",
		Short: "Assemble the submission package and persist it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			if strings.TrimSpace(outPath) != "" {
				cfg.ExportSavePath = outPath
			}
			if strings.TrimSpace(exportDir) != "" {
				cfg.ExportDir = exportDir
			}

			app, err := bootstrap.Build(cfg)
			if err != nil {
				return err
			}

			result, err := app.PackagingService.Export(cmd.Context(), args[0])
			switch {
			case errors.Is(err, packaging.ErrNotEligible):
				fmt.Fprintf(cmd.OutOrStdout(), "project is not ready: %d%% complete, missing %s\n",
					result.Report.Percent, joinCategories(result.Report))
				return err
			case errors.Is(err, archive.ErrCancelled):
				fmt.Fprintln(cmd.OutOrStdout(), "export cancelled")
				return nil
			case err != nil:
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "exported %d entries via %s: %s\n",
				result.Persist.Entries, result.Persist.Method, result.Persist.Location)
			for _, name := range result.Skipped {
				fmt.Fprintf(cmd.OutOrStdout(), "warning: skipped %s (content unavailable)\n", name)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&outPath, "out", "", "write the archive to this exact path")
	cmd.Flags().StringVar(&exportDir, "dir", "", "write package files into a folder under this directory")
	return cmd
}

func newProgressCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "progress <project-id>",
		Short: "Show submission readiness for a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := bootstrap.Build(config.Load())
			if err != nil {
				return err
			}

			report, err := app.PackagingService.ProjectProgress(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%d%% complete (%d of 7 categories approved)\n",
				report.Percent, report.Approved)
			if report.Eligible {
				fmt.Fprintln(cmd.OutOrStdout(), "ready for submission")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "missing: %s\n", joinCategories(report))
			return nil
		},
	}
}

func joinCategories(report packaging.Report) string {
	if len(report.Missing) == 0 {
		return "nothing"
	}
	names := make([]string, 0, len(report.Missing))
	for _, category := range report.Missing {
		names = append(names, category.DisplayName())
	}
	return strings.Join(names, ", ")
}
