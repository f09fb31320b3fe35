package config

import (
	"fmt"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	App     App
	Log     Log
	HTTP    HTTP
	Probe   Probe
	Metrics Metrics
	Session Session
	Socrata Socrata
}

type App struct {
	Name    string `env:"APP_NAME"    envDefault:"treehealth"`
	Version string `env:"APP_VERSION" envDefault:"dev"`
}

type Log struct {
	Level       string `env:"LOG_LEVEL"         envDefault:"info"`
	Format      string `env:"LOG_FORMAT"        envDefault:"text"`
	FieldMaxLen int    `env:"LOG_FIELD_MAX_LEN" envDefault:"4096"`
}

// Load читает окружение, предварительно подгрузив .env, если файл есть.
func Load() (Config, error) {
	_ = godotenv.Load()

	var config Config

	if err := env.Parse(&config); err != nil {
		return Config{}, fmt.Errorf("env.Parse: %w", err)
	}

	return config, nil
}
