package config

import (
	"fmt"
	"log/slog"
	"time"

	"ilabattach/internal/model"
)

const (
	TokenEnv       = "ILAB_API_TOKEN"
	DefaultBaseURL = "https://api.ilabsolutions.com/v1/"
)

type Logger struct {
	Level     slog.Level
	Plaintext bool
}

type API struct {
	BaseURL string
	Token   Credential
	Timeout time.Duration // ограничивает каждый запрос целиком, включая выгрузку файла
}

type Config struct {
	Logger Logger
	API    API
}

// Load читает окружение один раз. Без токена возвращает ошибку, и дальше
// ничего запускать нельзя.
func Load() (Config, error) {
	var ge getenv
	cfg := Config{
		Logger: Logger{
			Level:     ge.LogLevel("LOG_LEVEL", false, slog.LevelInfo),
			Plaintext: ge.Bool("LOG_PLAINTEXT", false, true),
		},
		API: API{
			BaseURL: ge.URL("ILAB_API_BASE", false, DefaultBaseURL),
			Token:   Credential(ge.String(TokenEnv, true, "")),
			Timeout: ge.Duration("ILAB_API_TIMEOUT", false, 30*time.Second),
		},
	}
	if cfg.API.Timeout <= 0 {
		ge.errs = append(ge.errs, fmt.Errorf("ILAB_API_TIMEOUT must be positive, got %v", cfg.API.Timeout))
	}
	if err := ge.Err(); err != nil {
		return cfg, fmt.Errorf("%w: %w", model.ErrConfiguration, err)
	}
	return cfg, nil
}
