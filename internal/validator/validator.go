package validator

import (
	"fmt"
	"os"

	"github.com/gnzdotmx/ytpappend/internal/config"
	"github.com/gnzdotmx/ytpappend/internal/utils"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/youtube/v3"
)

// ValidateCredentials checks that the run has a usable YouTube credential.
// An OAuth client file must exist and hold installed or web client secrets.
func ValidateCredentials(cfg *config.Config) error {
	if !cfg.HasCredential() {
		return fmt.Errorf("no YouTube credential: set --api-key, %s or %s",
			config.EnvAPIKey, config.EnvOAuthCredentials)
	}

	if cfg.APIKey != "" {
		// Don't print the actual value for security
		utils.LogVerbose("✓ API key is set (%d characters)", len(cfg.APIKey))
		return nil
	}

	data, err := os.ReadFile(cfg.OAuthCredentials)
	if err != nil {
		return &utils.ValidationError{
			Field:   "oauthCredentials",
			Message: "cannot read OAuth client file",
			Err:     err,
		}
	}

	if _, err := google.ConfigFromJSON(data, youtube.YoutubeReadonlyScope); err != nil {
		return &utils.ValidationError{
			Field:   "oauthCredentials",
			Message: "invalid OAuth client file",
			Err:     err,
		}
	}

	utils.LogVerbose("✓ OAuth client file %s is valid", cfg.OAuthCredentials)
	return nil
}
