package main

import (
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"time"

	"ilabattach/internal/command"
	"ilabattach/internal/config"
	"ilabattach/internal/ilab"
	"ilabattach/internal/logger"

	"github.com/joho/godotenv"
)

func main() {
	godotenv.Load()

	// Токен читаем до разбора аргументов: без него делать нечего.
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config failed: %v\n", err)
		fmt.Fprintf(os.Stderr, "This program requires an environment variable named %s\n", config.TokenEnv)
		os.Exit(1)
	}

	level := logger.SetupDefault(cfg.Logger)

	slog.Debug("config", "cfg", cfg)

	client, err := ilab.New(newHTTPClient(cfg.API.Timeout), cfg.API)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	root := command.NewRootCommand(command.Dependencies{
		Client:   client,
		Output:   os.Stdout,
		LogLevel: level,
	})
	root.SetOut(os.Stdout)
	root.SetErr(os.Stderr)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// newHTTPClient таймаут клиента ограничивает весь обмен, включая выгрузку файла:
// на плохой связи загрузка не должна висеть бесконечно.
func newHTTPClient(timeout time.Duration) *http.Client {
	dialer := &net.Dialer{
		Timeout:   5 * time.Second,
		KeepAlive: 30 * time.Second,
	}
	return &http.Client{
		Timeout: timeout,
		Transport: &logger.Transport{
			Base: &http.Transport{
				Proxy:                 http.ProxyFromEnvironment,
				DialContext:           dialer.DialContext,
				TLSHandshakeTimeout:   10 * time.Second,
				ExpectContinueTimeout: 1 * time.Second,
				MaxIdleConns:          10,
				IdleConnTimeout:       90 * time.Second,
			},
		},
	}
}
