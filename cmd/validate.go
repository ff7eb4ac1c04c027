package cmd

import (
	"fmt"

	"github.com/gnzdotmx/ytpappend/internal/utils"
	"github.com/gnzdotmx/ytpappend/internal/validator"
	"github.com/gnzdotmx/ytpappend/pkg/importer"

	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate an import setup without calling the API",
	Long:  `Check the credential, the input folder and the target file that "run" would use.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := resolveConfig(cmd)
		if err != nil {
			return err
		}

		utils.LogInfo("Validating import setup...")

		if err := validator.ValidateCredentials(cfg); err != nil {
			return fmt.Errorf("credential validation failed: %w", err)
		}
		utils.LogSuccess("Credential: OK")

		files, err := importer.Preflight(importer.Options{
			InputDir:         cfg.Input,
			Target:           cfg.Target,
			APIKey:           cfg.APIKey,
			OAuthCredentials: cfg.OAuthCredentials,
		})
		if err != nil {
			return fmt.Errorf("setup validation failed: %w", err)
		}
		utils.LogSuccess("Input folder: OK (%d .csv files)", len(files))
		for _, f := range files {
			utils.LogVerbose("%s", f)
		}

		if err := utils.ValidateFileExtension(cfg.Target, []string{".db"}); err != nil {
			utils.LogWarning("Target does not look like a FreeTube playlist store: %v", err)
		}
		utils.LogSuccess("Target file: OK")

		utils.LogSuccess("Validation completed successfully")
		return nil
	},
}

func init() {
	validateCmd.Flags().StringP("input", "i", "", "Folder containing the playlist .csv exports")
	validateCmd.Flags().StringP("target", "t", "", "FreeTube playlists.db to append to")
	validateCmd.Flags().String("api-key", "", "YouTube Data API key (default $YOUTUBE_API_KEY)")
	validateCmd.Flags().String("oauth-credentials", "", "OAuth client secrets file")
	rootCmd.AddCommand(validateCmd)
}
