package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/limaJavier/localsearch-timetabling/pkg/solver"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"

	envPrefix = "TIMETABLE"
)

type Config struct {
	Env         string        `mapstructure:"env" validate:"oneof=development production"`
	Log         LogConfig     `mapstructure:"log"`
	MetricsAddr string        `mapstructure:"metricsAddr"`
	Solver      solver.Config `mapstructure:"solver"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format" validate:"oneof=console json"`
}

// Keys that can be set through the environment, e.g. solver.stepLimit as TIMETABLE_SOLVER_STEPLIMIT
var keys = []string{
	"env",
	"log.level",
	"log.format",
	"metricsAddr",
	"solver.timeLimit",
	"solver.stepLimit",
	"solver.unimprovedStepLimit",
	"solver.randomSeed",
	"solver.moveSelection",
	"solver.acceptance",
	"solver.startingTemperature",
	"solver.hardWeight",
	"solver.candidates",
	"solver.workers",
}

// Load layers, from lowest to highest precedence: defaults, the optional config file (json, yaml or toml),
// a .env file in the working directory and TIMETABLE_* environment variables.
// Solver options left unset are filled in when the solver is built.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	for _, key := range keys {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("cannot bind environment variable for \"%v\": %w", key, err)
		}
	}
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("cannot read config file: %w", err)
		}
	}

	cfg := &Config{}
	hooks := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	))
	if err := v.Unmarshal(cfg, hooks); err != nil {
		return nil, fmt.Errorf("cannot decode configuration: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("env", EnvDevelopment)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("metricsAddr", "")

	v.SetDefault("solver.timeLimit", solver.DefaultTimeLimit.String())
	v.SetDefault("solver.moveSelection", "randomized")
	v.SetDefault("solver.acceptance", string(solver.SimulatedAnnealing))
}
