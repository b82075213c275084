package config

import (
	"fmt"

	"github.com/caarlos0/env/v10"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	App      App
	Driffle  Driffle
	Sheets   Sheets
	Worker   Worker
	Postgres Postgres
	Redis    Redis
	Bot      Bot
}

type App struct {
	Name                 string `env:"APP_NAME" envDefault:"driffle-tool"`
	Version              string `env:"APP_VERSION" envDefault:"dev"`
	ProbeListenAddress   string `env:"PROBE_LISTEN_ADDRESS" envDefault:":8091"`
	MetricsListenAddress string `env:"METRICS_LISTEN_ADDRESS" envDefault:":8092"`
	StatusListenAddress  string `env:"STATUS_LISTEN_ADDRESS" envDefault:":8090"`
}

func Load() (Config, error) {
	_ = godotenv.Load()

	var config Config

	if err := env.Parse(&config); err != nil {
		return Config{}, fmt.Errorf("env.Parse: %w", err)
	}

	if err := validator.New().Struct(config); err != nil {
		return Config{}, fmt.Errorf("config validate: %w", err)
	}

	return config, nil
}
