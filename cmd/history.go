package cmd

import (
	"github.com/gnzdotmx/ytpappend/internal/history"
	"github.com/gnzdotmx/ytpappend/internal/utils"
	"github.com/gnzdotmx/ytpappend/pkg/importer"
	"github.com/spf13/cobra"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded imports",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := resolveConfig(cmd)
		if err != nil {
			return err
		}

		path := cfg.HistoryDB
		if path == "" {
			if path, err = history.DefaultPath(); err != nil {
				return err
			}
		}

		db, err := history.Open(path)
		if err != nil {
			return err
		}
		defer func() {
			if err := db.Close(); err != nil {
				utils.LogWarning("Failed to close history database: %v", err)
			}
		}()

		entries, err := db.Recent(historyLimit)
		if err != nil {
			return err
		}

		if len(entries) == 0 {
			utils.LogInfo("No imports recorded in %s", path)
			return nil
		}

		for _, e := range entries {
			line := e.RunAt.Format("2006-01-02 15:04:05") + "  " + e.Status + "  " + utils.Highlight(e.Playlist)
			switch e.Status {
			case string(importer.StatusAppended):
				utils.LogSuccess("%s (%d videos) -> %s", line, e.Videos, e.Target)
			case string(importer.StatusSkipped):
				utils.LogWarning("%s: %s", line, e.Message)
			default:
				utils.LogError("%s: %s", line, e.Message)
			}
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().String("history-db", "", "SQLite history file (default ~/.ytpappend/history.db)")
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "Number of entries to show")
	rootCmd.AddCommand(historyCmd)
}
