package config

import (
	"fmt"
	"log/slog"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	App      App
	HTTP     HTTP
	Postgres Postgres
	Redis    Redis
	Bot      Bot
	Mail     Mail
	Pricing  Pricing
	Session  Session
}

type App struct {
	Name     string `env:"APP_NAME" envDefault:"avenqor-api"`
	Version  string `env:"APP_VERSION" envDefault:"dev"`
	I18nDir  string `env:"I18N_DIR" envDefault:"config/i18n"`
	LogLevel slog.Level `env:"LOG_LEVEL" envDefault:"info"`
}

type Bot struct {
	Token  string `env:"BOT_TOKEN,required"`
	ChatID int64  `env:"BOT_CHAT_ID,required"`
}

func Load() (Config, error) {
	_ = godotenv.Load()

	var config Config

	if err := env.Parse(&config); err != nil {
		return Config{}, fmt.Errorf("env.Parse: %w", err)
	}

	return config, nil
}
