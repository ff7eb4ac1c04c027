package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/gnzdotmx/ytpappend/internal/utils"
	"github.com/spf13/cobra"
)

var (
	keepLatest    int
	olderThanDays int
	cleanupDryRun bool
)

var cleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Remove old backups of a playlist file",
	Long:  `Remove backups created by "run --backup" based on age or count.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := resolveConfig(cmd)
		if err != nil {
			return err
		}
		if cfg.Target == "" {
			return fmt.Errorf("target file is required")
		}

		backups, err := utils.ListBackups(cfg.Target)
		if err != nil {
			return err
		}

		if len(backups) == 0 {
			fmt.Println("No backups found.")
			return nil
		}

		toDelete := selectBackups(backups, keepLatest, olderThanDays, time.Now())
		if len(toDelete) == 0 {
			fmt.Println("No backups to delete.")
			return nil
		}

		fmt.Printf("Found %d backups to delete:\n", len(toDelete))
		for _, b := range toDelete {
			fmt.Printf("- %s\n", b.Path)
		}

		if cleanupDryRun {
			fmt.Println("Dry run - no backups were deleted.")
			return nil
		}

		for _, b := range toDelete {
			fmt.Printf("Deleting %s...\n", b.Path)
			if err := os.Remove(b.Path); err != nil {
				fmt.Printf("Error deleting %s: %v\n", b.Path, err)
			}
		}

		fmt.Println("Cleanup completed.")
		return nil
	},
}

// selectBackups picks the backups to delete from backups (oldest first):
// everything but the newest keep ones, plus anything older than the given
// number of days. Zero disables the respective rule.
func selectBackups(backups []utils.Backup, keep, olderThan int, now time.Time) []utils.Backup {
	marked := make(map[string]bool)
	var toDelete []utils.Backup

	if keep > 0 && len(backups) > keep {
		for _, b := range backups[:len(backups)-keep] {
			marked[b.Path] = true
			toDelete = append(toDelete, b)
		}
	}

	if olderThan > 0 {
		cutoff := now.AddDate(0, 0, -olderThan)
		for _, b := range backups {
			if b.CreatedAt.Before(cutoff) && !marked[b.Path] {
				marked[b.Path] = true
				toDelete = append(toDelete, b)
			}
		}
	}

	return toDelete
}

func init() {
	cleanupCmd.Flags().StringP("target", "t", "", "Playlist file whose backups are cleaned up")
	cleanupCmd.Flags().IntVarP(&keepLatest, "keep-latest", "k", 0, "Keep this many latest backups")
	cleanupCmd.Flags().IntVarP(&olderThanDays, "older-than", "o", 0, "Delete backups older than this many days")
	cleanupCmd.Flags().BoolVarP(&cleanupDryRun, "dry-run", "n", false, "Show what would be deleted without actually deleting")
	rootCmd.AddCommand(cleanupCmd)
}
