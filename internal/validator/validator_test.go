package validator

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/gnzdotmx/ytpappend/internal/config"
	"github.com/gnzdotmx/ytpappend/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const clientSecrets = `{"installed":{"client_id":"id.apps.googleusercontent.com","client_secret":"secret",
"auth_uri":"https://accounts.google.com/o/oauth2/auth","token_uri":"https://oauth2.googleapis.com/token",
"redirect_uris":["http://localhost"]}}`

func TestValidateCredentials(t *testing.T) {
	dir := t.TempDir()
	valid := filepath.Join(dir, "client.json")
	invalid := filepath.Join(dir, "broken.json")
	require.NoError(t, os.WriteFile(valid, []byte(clientSecrets), 0600))
	require.NoError(t, os.WriteFile(invalid, []byte(`{"nothing":{}}`), 0600))

	tests := []struct {
		name      string
		cfg       config.Config
		wantErr   bool
		wantField string
	}{
		{name: "nothing set", cfg: config.Config{}, wantErr: true},
		{name: "api key", cfg: config.Config{APIKey: "AIza-test"}},
		{name: "api key wins over broken oauth file", cfg: config.Config{APIKey: "k", OAuthCredentials: invalid}},
		{name: "valid oauth file", cfg: config.Config{OAuthCredentials: valid}},
		{name: "missing oauth file", cfg: config.Config{OAuthCredentials: filepath.Join(dir, "nope.json")}, wantErr: true, wantField: "oauthCredentials"},
		{name: "invalid oauth file", cfg: config.Config{OAuthCredentials: invalid}, wantErr: true, wantField: "oauthCredentials"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCredentials(&tt.cfg)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			if tt.wantField != "" {
				var vErr *utils.ValidationError
				require.True(t, errors.As(err, &vErr))
				assert.Equal(t, tt.wantField, vErr.Field)
			}
		})
	}
}
