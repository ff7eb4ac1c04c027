package cmd

import (
	"fmt"

	"github.com/gnzdotmx/ytpappend/internal/config"
	"github.com/spf13/cobra"
)

// resolveConfig layers command-line flags over the config file, which in
// turn wins over environment variables and defaults.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(configFilePath)
	if err != nil {
		return nil, err
	}
	cfg.ApplyEnv()

	flags := cmd.Flags()
	stringFlags := map[string]*string{
		"input":             &cfg.Input,
		"target":            &cfg.Target,
		"api-key":           &cfg.APIKey,
		"oauth-credentials": &cfg.OAuthCredentials,
		"history-db":        &cfg.HistoryDB,
		"report":            &cfg.Report,
	}
	for name, dst := range stringFlags {
		if !flags.Changed(name) {
			continue
		}
		if *dst, err = flags.GetString(name); err != nil {
			return nil, fmt.Errorf("flag --%s: %w", name, err)
		}
	}

	if flags.Changed("rps") {
		if cfg.RequestsPerSecond, err = flags.GetFloat64("rps"); err != nil {
			return nil, fmt.Errorf("flag --rps: %w", err)
		}
	}
	if flags.Changed("batch-size") {
		if cfg.BatchSize, err = flags.GetInt("batch-size"); err != nil {
			return nil, fmt.Errorf("flag --batch-size: %w", err)
		}
	}
	if flags.Changed("backup") {
		if cfg.Backup, err = flags.GetBool("backup"); err != nil {
			return nil, fmt.Errorf("flag --backup: %w", err)
		}
	}

	if err := cfg.ExpandPaths(); err != nil {
		return nil, err
	}
	return cfg, nil
}
