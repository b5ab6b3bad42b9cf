package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"bluepriori-dashboard/config"
	"bluepriori-dashboard/pkg/handlers"
	"bluepriori-dashboard/pkg/interfaces"
	middleware "bluepriori-dashboard/pkg/middlewares"
	service "bluepriori-dashboard/pkg/services"
	"bluepriori-dashboard/pkg/utils"
	"bluepriori-dashboard/pkg/version"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/template/html/v2"
	"github.com/sirupsen/logrus"
)

// setupServices initialise le client d'inventaire et la boucle du dashboard
func setupServices(ctx context.Context, cfg *config.Config, log *utils.Logger) (*service.Dashboard, *service.EventLoop, interfaces.DetailCacheInterface) {
	cache, err := service.NewDetailCache(ctx, cfg, log)
	if err != nil {
		log.WithFunc().WithError(err).Fatal("Failed to initialize vulnerability cache")
	}

	client, err := service.NewInventoryClient(cfg, cache, log)
	if err != nil {
		log.WithFunc().WithError(err).Fatal("Failed to initialize inventory client")
	}

	loop := service.NewEventLoop(ctx)
	dashboard := service.NewLoopDashboard(client, loop, cfg.Inventory.PerPage, log)
	if err := dashboard.Start(); err != nil {
		log.WithFunc().WithError(err).Fatal("Failed to start dashboard")
	}

	return dashboard, loop, cache
}

// setupHandlers initialise tous les handlers
func setupHandlers(dashboard interfaces.DashboardInterface, cfg *config.Config, log *utils.Logger) (*handlers.DashboardHandler, *handlers.ConfigHandler) {
	return handlers.NewDashboardHandler(dashboard, log), handlers.NewConfigHandler(cfg, log)
}

func setupRoutes(app *fiber.App, dashboardHandler *handlers.DashboardHandler, configHandler *handlers.ConfigHandler) {
	app.Static("/static", "./views/static")

	app.Get("/health", dashboardHandler.Health)
	app.Get("/version", dashboardHandler.Version)
	app.Get("/config", configHandler.GetConfig)

	// Routes Portal Interface
	app.Get("/", dashboardHandler.DisplayDashboard)

	api := app.Group("/api")
	api.Get("/view", dashboardHandler.GetView)
	api.Post("/sort/:key", dashboardHandler.SortBy)
	api.Post("/page/next", dashboardHandler.NextPage)
	api.Post("/page/prev", dashboardHandler.PrevPage)
	api.Post("/refresh", dashboardHandler.Refresh)
	api.Post("/assets/:id/select", dashboardHandler.SelectAsset)
	api.Get("/detail", dashboardHandler.GetDetail)
	api.Delete("/detail", dashboardHandler.CloseDetail)
}

func setupHTTPServer(app *fiber.App, port int, log *utils.Logger) {
	addr := fmt.Sprintf(":%d", port)
	log.WithFunc().WithField("port", addr).Info("🚀 Application starting")

	if err := app.Listen(addr); err != nil {
		log.WithFunc().WithError(err).Fatal("HTTP Server failed")
	}
}

func main() {
	// Configuration - load first to get logging settings
	cfg, err := config.LoadConfig(config.Path())
	if err != nil {
		// Use a basic logger for startup errors
		logrus.WithError(err).Fatal("Failed to load configuration")
	}

	log := utils.NewLogger(utils.Config{
		LogLevel:  cfg.Logging.Level,
		LogFormat: cfg.Logging.Format,
		Pretty:    true,
	})

	log.WithFields(logrus.Fields{
		"version":   version.Version,
		"commit":    version.Commit,
		"inventory": cfg.Inventory.BaseURL,
		"perPage":   cfg.Inventory.PerPage,
	}).Info("bluepriori dashboard starting")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dashboard, loop, cache := setupServices(ctx, cfg, log)
	dashboardHandler, configHandler := setupHandlers(dashboard, cfg, log)

	app := fiber.New(fiber.Config{
		AppName:       "bluepriori dashboard",
		Prefork:       false,
		CaseSensitive: true,
		StrictRouting: true,
		ServerHeader:  "bluepriori",
		Views:         html.New("./views", ".html"),

		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			log.WithFields(logrus.Fields{
				"path":   c.Path(),
				"method": c.Method(),
				"error":  err.Error(),
			}).Error("Error handling request")
			return handlers.HTTPError(c, code, err.Error())
		},
	})

	app.Use(middleware.NewRequestLogger(log).Handle())
	setupRoutes(app, dashboardHandler, configHandler)

	go func() {
		<-ctx.Done()
		log.Info("Shutting down")
		if err := app.Shutdown(); err != nil {
			log.WithError(err).Warn("HTTP shutdown failed")
		}
	}()

	setupHTTPServer(app, cfg.Server.Port, log)

	loop.Stop()
	if cache != nil {
		if err := cache.Close(); err != nil {
			log.WithError(err).Warn("Failed to close vulnerability cache")
		}
	}
}
