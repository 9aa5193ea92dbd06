package config

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"fit4/internal/dirs"
)

// Init wires Viper with the config path, env, and flag bindings.
// A missing config file is not an error; a malformed one is.
func Init(root *cobra.Command) error {
	// Config file lookup does not create the directory.
	if cfgDir, err := dirs.ConfigDir(); err == nil {
		viper.AddConfigPath(cfgDir)
	}
	viper.SetConfigName("config") // supports config.{yaml|yml|json|toml}

	// Environment variables: FIT4_*
	viper.SetEnvPrefix("FIT4")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	// Bind root persistent flags to Viper keys
	for _, name := range []string{"jobs", "verbose", "exact", "no-ui"} {
		if err := viper.BindPFlag(key(name), root.PersistentFlags().Lookup(name)); err != nil {
			return err
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return err
	}
	return nil
}

func key(flag string) string {
	return strings.ReplaceAll(flag, "-", "_")
}
