// Package cfg provides configuration and command-line interface setup for vidgrab.
package cfg

import (
	"fmt"
	"path/filepath"
	"strings"

	"vidgrab/internal/domain/consts"
	"vidgrab/internal/domain/keys"
	"vidgrab/internal/validation"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:          consts.ProgramName,
	Short:        "vidgrab is a web front end for grabbing videos and audio.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if configFile := viper.GetString(keys.ConfigFile); configFile != "" {
			// load and normalize keys from any Viper-supported config file
			if err := loadConfigFile(configFile); err != nil {
				return fmt.Errorf("failed loading config file: %w", err)
			}
		}
		return validation.ValidateViperFlags()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Lookup("help").Changed {
			return nil
		}
		viper.Set(keys.Execute, true)
		return nil
	},
}

// InitCommands initializes the root command and its flags.
func InitCommands() error {
	viper.SetEnvPrefix(consts.EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_")) // "work-dir" reads VIDGRAB_WORK_DIR
	viper.AutomaticEnv()

	if err := initProgramFlags(rootCmd); err != nil {
		return err
	}
	if err := initServerFlags(rootCmd); err != nil {
		return err
	}
	if err := initCookieFlags(rootCmd); err != nil {
		return err
	}
	return initDownloadFlags(rootCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// loadConfigFile reads a config file into the configuration.
//
// TOML files are decoded directly, other formats go through Viper.
func loadConfigFile(file string) error {
	if _, err := validation.ValidateFile(file); err != nil {
		return err
	}

	if strings.EqualFold(filepath.Ext(file), ".toml") {
		return loadTomlFile(file)
	}

	viper.SetConfigFile(file)
	return viper.ReadInConfig()
}

// loadTomlFile decodes a TOML file and merges its keys into Viper.
func loadTomlFile(file string) error {
	config := make(map[string]any)
	if _, err := toml.DecodeFile(file, &config); err != nil {
		return fmt.Errorf("failed to decode TOML file %q: %w", file, err)
	}
	return viper.MergeConfigMap(config)
}
