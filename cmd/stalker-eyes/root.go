package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/lixenwraith/stalker-eyes/config"
)

// Version is overridden at build time
var Version = "dev"

// runFunc starts the program with a validated configuration
type runFunc func(cmd *cobra.Command, cfg *config.Config) error

// newRootCmd builds the root command, flags bound over file and env settings
func newRootCmd(run runFunc) *cobra.Command {
	var cfgFile string
	v := config.NewViper()

	cmd := &cobra.Command{
		Use:           "stalker-eyes",
		Short:         "A pair of cartoon eyes that watch your mouse pointer",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(v, cfgFile)
			if err != nil {
				return err
			}
			return run(cmd, cfg)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&cfgFile, "config", "c", "", "config file (default is ./stalker-eyes.yaml)")
	flags.String("color", config.ColorAuto, "color mode: auto, truecolor, 256")
	flags.Bool("sound", false, "play sound cues on expression changes")
	flags.String("log-file", "", "write JSON logs to this file")
	flags.String("log-level", "info", "log level: debug, info, warn, error")
	flags.Uint64("seed", 0, "fix the mood sequence (0 seeds from the clock)")

	bind := map[string]string{
		"display.color": "color",
		"sound.enabled": "sound",
		"logger.file":   "log-file",
		"logger.level":  "log-level",
		"seed":          "seed",
	}
	for key, name := range bind {
		// Flag names are static; binding only fails on a nil flag
		if err := v.BindPFlag(key, flags.Lookup(name)); err != nil {
			panic(err)
		}
	}

	cmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)
	return cmd
}

// loadConfig reads the optional config file and merges it with env and flags
func loadConfig(v *viper.Viper, cfgFile string) (*config.Config, error) {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("stalker-eyes")
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	return config.NewConfigFromViper(v)
}
