package cmd

import (
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/gnzdotmx/ytpappend/internal/fetch"
	"github.com/gnzdotmx/ytpappend/internal/history"
	"github.com/gnzdotmx/ytpappend/internal/utils"
	"github.com/gnzdotmx/ytpappend/pkg/importer"

	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Import a folder of playlist exports into a FreeTube playlist file",
	Long: `Read every .csv file of the input folder, look up the listed videos and
append one playlist per file to the FreeTube playlist store.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := resolveConfig(cmd)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		opts := importer.Options{
			InputDir:          cfg.Input,
			Target:            cfg.Target,
			APIKey:            cfg.APIKey,
			OAuthCredentials:  cfg.OAuthCredentials,
			RequestsPerSecond: cfg.RequestsPerSecond,
			BatchSize:         cfg.BatchSize,
			Backup:            cfg.Backup,
			Progress: func(done, total int) {
				utils.LogVerbose("Progress: %d/%d files", done, total)
			},
		}

		if cfg.HistoryDB != "" {
			db, err := history.Open(cfg.HistoryDB)
			if err != nil {
				return err
			}
			defer func() {
				if err := db.Close(); err != nil {
					utils.LogWarning("Failed to close history database: %v", err)
				}
			}()
			opts.History = db
		}

		report, err := importer.Run(ctx, opts)
		if report == nil {
			return fmt.Errorf("import failed: %w", err)
		}

		printSummary(report)

		if cfg.Report != "" {
			if werr := report.WriteFile(cfg.Report); werr != nil {
				utils.LogWarning("Failed to write report: %v", werr)
			} else {
				utils.LogInfo("Report written to %s", cfg.Report)
			}
		}

		if err != nil {
			if errors.Is(err, ctx.Err()) {
				return fmt.Errorf("import interrupted after %d files: %w", len(report.Files), err)
			}
			return err
		}
		return nil
	},
}

func printSummary(report *importer.Report) {
	utils.LogInfo("")
	utils.LogInfo("Import summary for %s:", report.Target)
	for _, f := range report.Files {
		switch f.Status {
		case importer.StatusAppended:
			utils.LogSuccess("  ✓ %s (%d/%d videos)", utils.Highlight(f.Playlist), f.Videos, f.Requested)
		case importer.StatusSkipped:
			utils.LogWarning("  - %s", f.Message())
		default:
			utils.LogError("  ✗ %s", f.Message())
		}
	}
	utils.LogInfo("All selected CSV files have been processed: %d appended, %d skipped, %d failed",
		report.Count(importer.StatusAppended), report.Count(importer.StatusSkipped), report.Count(importer.StatusFailed))
}

func init() {
	runCmd.Flags().StringP("input", "i", "", "Folder containing the playlist .csv exports")
	runCmd.Flags().StringP("target", "t", "", "FreeTube playlists.db to append to")
	runCmd.Flags().String("api-key", "", "YouTube Data API key (default $YOUTUBE_API_KEY)")
	runCmd.Flags().String("oauth-credentials", "", "OAuth client secrets file, used when no API key is set")
	runCmd.Flags().Float64("rps", fetch.DefaultRequestsPerSecond, "Maximum metadata requests per second (0 = unlimited)")
	runCmd.Flags().Int("batch-size", fetch.MaxBatchSize, "Video IDs per metadata request (max 50)")
	runCmd.Flags().Bool("backup", false, "Copy the target file aside before appending")
	runCmd.Flags().String("history-db", "", "SQLite file recording each import (default $YTPAPPEND_HISTORY_DB)")
	runCmd.Flags().String("report", "", "Write a YAML report of the run to this path")
	rootCmd.AddCommand(runCmd)
}
