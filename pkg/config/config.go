package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/limaJavier/courseplanner/pkg/model"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

const envPrefix = "PLANNER"

type Config struct {
	Env    string       `mapstructure:"env" validate:"oneof=development production"`
	Log    LogConfig    `mapstructure:"log"`
	Grid   GridConfig   `mapstructure:"grid"`
	Search SearchConfig `mapstructure:"search"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format" validate:"oneof=json console"`
}

// GridConfig bounds the placement grid, both boundaries being "HH:MM" labels aligned to half hours
type GridConfig struct {
	Start string `mapstructure:"start" validate:"required"`
	End   string `mapstructure:"end" validate:"required"`
}

type SearchConfig struct {
	GapThresholdMinutes int `mapstructure:"gap_threshold_minutes" validate:"min=0"`
	MaxSkip             int `mapstructure:"max_skip" validate:"min=0"`
	MaxCombinations     int `mapstructure:"max_combinations" validate:"min=0"`
}

// Loads the configuration from defaults, an optional config file and PLANNER_* environment variables, in increasing
// order of precedence. A .env file in the working directory is loaded into the environment first
func Load(file string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("cannot read config file: %v", err)
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("cannot decode config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("env", EnvDevelopment)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("grid.start", "07:00")
	v.SetDefault("grid.end", "19:00")
	v.SetDefault("search.gap_threshold_minutes", 15)
	v.SetDefault("search.max_skip", 3)
	v.SetDefault("search.max_combinations", 0)
}

func (cfg *Config) Validate() error {
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("invalid config: %v", err)
	}
	if _, err := cfg.PlacementGrid(); err != nil {
		return fmt.Errorf("invalid config: %v", err)
	}
	return nil
}

func (cfg *Config) PlacementGrid() (model.Grid, error) {
	return model.NewGrid(cfg.Grid.Start, cfg.Grid.End)
}
