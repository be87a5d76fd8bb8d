package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"pickerbot/core"
	"pickerbot/platforms/discord"
	"pickerbot/platforms/matrix"
)

var version = "dev"

// platform is a gateway connection with an explicit two-phase lifecycle.
type platform interface {
	Start(ctx context.Context) error
	Close() error
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		configPath string
		logLevel   string
	)

	cmd := &cobra.Command{
		Use:           "pickerbot",
		Short:         "Reply to \"pick!\" with a random member of the channel",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := loadConfig(configPath, logLevel)
			if err != nil {
				log := defaultLogger()
				log.Error().Err(err).Msg("Failed to load config")
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return run(ctx, config, NewLogger(config.Log, os.Stderr))
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "config.toml", "path to the TOML config file")
	cmd.Flags().StringVar(&logLevel, "log-level", "", "override the configured log level")
	return cmd
}

// loadConfig applies the --log-level flag on top of LoadConfig and validates
// the result again.
func loadConfig(path, logLevel string) (*Config, error) {
	config, err := LoadConfig(path)
	if err != nil {
		return nil, err
	}
	if logLevel == "" {
		return config, nil
	}

	config.Log.Level = logLevel
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func run(ctx context.Context, config *Config, log zerolog.Logger) error {
	log.Info().Str("version", version).Msg("PickerBot starting")

	selector := core.NewSelector(core.NewRand(), log)
	bot := core.NewBot(&config.Bot, selector, log)

	platforms, err := newPlatforms(config, bot, log)
	if err != nil {
		return err
	}

	var started []platform
	defer func() {
		log.Info().Msg("PickerBot stopping")
		for _, p := range started {
			if err := p.Close(); err != nil {
				log.Error().Err(err).Msg("Failed to close platform")
			}
		}
	}()

	for _, p := range platforms {
		if err := p.Start(ctx); err != nil {
			return err
		}
		started = append(started, p)
	}

	<-ctx.Done()
	return nil
}

func newPlatforms(config *Config, bot *core.Bot, log zerolog.Logger) ([]platform, error) {
	var platforms []platform

	if config.Discord.Enabled {
		da, err := discord.NewDiscordAdapter(config.Discord.Token, bot, log)
		if err != nil {
			return nil, fmt.Errorf("failed to create discord adapter: %w", err)
		}
		platforms = append(platforms, da)
	}

	if config.Matrix.Enabled {
		ma, err := matrix.NewMatrixAdapter(config.Matrix, bot, log)
		if err != nil {
			return nil, fmt.Errorf("failed to create matrix adapter: %w", err)
		}
		platforms = append(platforms, ma)
	}

	return platforms, nil
}
