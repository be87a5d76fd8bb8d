package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/pelletier/go-toml/v2"

	"pickerbot/core"
	"pickerbot/platforms/discord"
	"pickerbot/platforms/matrix"
)

const envPrefix = "PICKERBOT"

var ErrNoPlatform = errors.New("no platform enabled")

var validate = validator.New()

type LogConfig struct {
	Level  string `toml:"level" validate:"oneof=trace debug info warn error"`
	Format string `toml:"format" validate:"oneof=console json"`
}

type Config struct {
	Discord discord.Config `toml:"discord"`
	Matrix  matrix.Config  `toml:"matrix"`
	Bot     core.BotConfig `toml:"bot"`
	Log     LogConfig      `toml:"log"`
}

// envOverrides are read from PICKERBOT_* variables and win over the file.
type envOverrides struct {
	DiscordToken      string `envconfig:"DISCORD_TOKEN"`
	MatrixHomeserver  string `envconfig:"MATRIX_HOMESERVER"`
	MatrixUserID      string `envconfig:"MATRIX_USER_ID"`
	MatrixAccessToken string `envconfig:"MATRIX_ACCESS_TOKEN"`
	Trigger           string `envconfig:"TRIGGER"`
	LogLevel          string `envconfig:"LOG_LEVEL"`
	LogFormat         string `envconfig:"LOG_FORMAT"`
}

func defaultConfig() Config {
	return Config{
		Discord: discord.Config{Enabled: true},
		Bot: core.BotConfig{
			Trigger:    core.DefaultTrigger,
			IgnoreBots: true,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// LoadConfig reads path (a missing file is fine), applies .env and PICKERBOT_*
// overrides and validates the result.
func LoadConfig(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	config := defaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("failed to read config: %w", err)
	default:
		if err := toml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	var env envOverrides
	if err := envconfig.Process(envPrefix, &env); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}
	env.apply(&config)

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func (e envOverrides) apply(c *Config) {
	override(&c.Discord.Token, e.DiscordToken)
	override(&c.Matrix.Homeserver, e.MatrixHomeserver)
	override(&c.Matrix.UserID, e.MatrixUserID)
	override(&c.Matrix.AccessToken, e.MatrixAccessToken)
	override(&c.Bot.Trigger, e.Trigger)
	override(&c.Log.Level, e.LogLevel)
	override(&c.Log.Format, e.LogFormat)
}

func override(dst *string, value string) {
	if value != "" {
		*dst = value
	}
}

func (c *Config) Validate() error {
	if !c.Discord.Enabled && !c.Matrix.Enabled {
		return ErrNoPlatform
	}
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
