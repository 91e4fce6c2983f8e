package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pv-battery-estimator/internal/api/handlers"
	"pv-battery-estimator/internal/api/middleware"
	"pv-battery-estimator/internal/config"
	"pv-battery-estimator/internal/data"
	"pv-battery-estimator/internal/logger"
	"pv-battery-estimator/internal/metrics"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	log := logger.New("api")
	if err := run(log); err != nil {
		log.Errorf("server stopped: %v", err)
		os.Exit(1)
	}
}

// configPath returns CONFIG_FILE, or config.yaml when present.
func configPath() string {
	if p := os.Getenv("CONFIG_FILE"); p != "" {
		return p
	}
	if _, err := os.Stat("config.yaml"); err == nil {
		return "config.yaml"
	}
	return ""
}

func run(log logger.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(configPath())
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := logger.SetLevel(cfg.Logging.Level); err != nil {
		return err
	}

	provider, cache, err := data.NewProvider(cfg.Forecast, logger.New("forecast"))
	if err != nil {
		return err
	}
	if cache != nil {
		go cache.Run(ctx, cfg.Forecast.Cache.TTL)
	}

	var rec *metrics.Recorder
	if cfg.Metrics.Enabled {
		if rec, err = metrics.New(); err != nil {
			return fmt.Errorf("metrics: %w", err)
		}
	}

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(middleware.ErrorHandler(log))
	router.Use(middleware.CORS(cfg.Server.CORSOrigins))
	router.Use(middleware.Logger(logger.New("http")))
	if rec != nil {
		router.Use(middleware.Metrics(rec))
	}

	simulateHandler := handlers.NewSimulateHandler(provider, handlers.NewResultStore(cfg.Simulation.ResultStoreSize), handlers.SimulateOptions{
		SystemsDir:      cfg.Simulation.SystemsDir,
		DefaultCostMode: cfg.Simulation.CostMode,
		Metrics:         rec,
		Logger:          logger.New("simulate"),
	})
	systemsHandler := handlers.NewSystemsHandler(cfg.Simulation.SystemsDir, log)
	citiesHandler := handlers.NewCitiesHandler(cfg.Simulation.CitiesFile, log)
	costModesHandler := handlers.NewCostModesHandler(cfg.Simulation.CostMode)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "forecast_source": provider.Name()})
	})
	if rec != nil {
		router.GET(cfg.Metrics.Path, gin.WrapH(promhttp.Handler()))
	}

	// Legacy route of the first version of the service.
	router.POST("/calcular", simulateHandler.Calculate)

	api := router.Group("/api/v1")
	{
		api.POST("/simulate", simulateHandler.Simulate)
		api.GET("/simulate/:id/hours", simulateHandler.GetHours)
		api.POST("/simulate/compare", simulateHandler.Compare)

		api.GET("/systems", systemsHandler.ListSystems)
		api.GET("/cities", citiesHandler.ListCities)
		api.GET("/cost-modes", costModesHandler.ListCostModes)
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": gin.H{"code": "NOT_FOUND", "message": "Not found"}})
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		log.Infof("starting API server on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Infof("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
