package cli

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"

	httpadapter "github.com/randomtoy/volva-go/internal/adapters/http"
	"github.com/randomtoy/volva-go/internal/adapters/llm/openai"
	"github.com/randomtoy/volva-go/internal/app"
	"github.com/randomtoy/volva-go/internal/config"
	"github.com/randomtoy/volva-go/internal/content"
	"github.com/randomtoy/volva-go/internal/session"
)

// stdRNG delegates to math/rand/v2 (auto-seeded).
type stdRNG struct{}

func (stdRNG) Intn(n int) int   { return rand.IntN(n) }
func (stdRNG) Float64() float64 { return rand.Float64() }

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP service",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
		slog.SetDefault(logger)

		store, err := content.Load(cfg.DetailPath, cfg.FullPath, cfg.DailyPath, cfg.ImageRoot, logger)
		if err != nil {
			return fmt.Errorf("load content: %w", err)
		}

		prophet := openai.NewClient(
			&http.Client{Timeout: cfg.LLMTimeout},
			cfg.LLMBaseURL,
			cfg.LLMModel,
			logger,
		)

		sessions := session.NewManager()
		svc := app.NewVolvaService(store, prophet, stdRNG{}, cfg.LLMModel, cfg.OpenAIAPIKey, logger)

		e := echo.New()
		e.HideBanner = true
		e.HidePort = true

		e.Use(httpadapter.RequestIDMiddleware())
		e.Use(httpadapter.LoggingMiddleware(logger))
		e.Use(httpadapter.SessionMiddleware(sessions))

		handler := httpadapter.NewHandler(svc)
		handler.Register(e)

		// Graceful shutdown.
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		go func() {
			logger.Info("starting server", "addr", cfg.HTTPAddr)
			if err := e.Start(cfg.HTTPAddr); err != nil && err != http.ErrServerClosed {
				logger.Error("server error", "error", err)
				os.Exit(1)
			}
		}()

		<-ctx.Done()
		logger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	},
}
