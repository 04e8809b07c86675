package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/khadamat/webgate/internal/backend"
	httpRouter "github.com/khadamat/webgate/internal/interfaces/http"
	"github.com/khadamat/webgate/internal/router"
	"github.com/khadamat/webgate/internal/storage"
	"github.com/khadamat/webgate/internal/store/locale"
	"github.com/khadamat/webgate/internal/store/portfolio"
	"github.com/khadamat/webgate/internal/store/requests"
	"github.com/khadamat/webgate/internal/store/services"
	"github.com/khadamat/webgate/internal/store/session"
	"github.com/khadamat/webgate/pkg/config"
	"github.com/khadamat/webgate/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("load configuration: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("backend", cfg.Backend.BaseURL).
		Msg("starting application")

	state, err := storage.NewFileStore(cfg.State.Path)
	if err != nil {
		log.Fatal().Err(err).Msg("open state store")
	}

	page := locale.NewPageState()
	localeStore := locale.New(page, state, nil, cfg.Locale.Default, log)

	client := backend.New(backend.Config{
		BaseURL: cfg.Backend.BaseURL,
		Timeout: cfg.Backend.Timeout(),
		Locale:  localeStore,
		State:   state,
		Logger:  log,
	})

	sess := session.New(client, state, log)
	if sess.Token() != "" {
		// Verify the persisted token before serving; an invalid one is
		// cleared here instead of failing the first admin navigation.
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Backend.Timeout())
		if sess.CheckAuth(ctx) {
			log.Info().Msg("persisted session verified")
		}
		cancel()
	}

	servicesStore := services.New(client, log)
	portfolioStore := portfolio.New(client, log)
	requestsStore := requests.New(client, log)

	guard := router.NewGuard(localeStore, sess, log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(requestid.New())

	httpRouter.Router(app, httpRouter.RouterDeps{
		Guard:     guard,
		Session:   sess,
		Locale:    localeStore,
		Page:      page,
		Services:  servicesStore,
		Portfolio: portfolioStore,
		Requests:  requestsStore,
		AppName:   cfg.App.Name,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("HTTP server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutdown signal received, stopping server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}

	log.Info().Msg("application stopped")
}
