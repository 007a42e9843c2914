package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"warehouse-pricing/internal/api/handlers"
	"warehouse-pricing/internal/api/middleware"
	"warehouse-pricing/internal/catalog"
	"warehouse-pricing/internal/config"
	"warehouse-pricing/internal/store"
)

func main() {
	cfgPath := flag.String("config", "", "Path to config file (optional; WAREHOUSE_* env vars also apply)")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log, err := config.NewLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer log.Sync()

	if err := os.MkdirAll(cfg.StateDir, 0o755); err != nil {
		log.Fatal("failed to create state dir", zap.String("dir", cfg.StateDir), zap.Error(err))
	}

	history, err := store.NewHistory(cfg.HistoryPath(), log)
	if err != nil {
		log.Fatal("failed to open history store", zap.Error(err))
	}
	defer history.Close()

	pipeline := catalog.NewPipeline(cfg.SampleCapacity, cfg.EngineSeed, log)
	cache := catalog.NewSnapshotCache(cfg.CacheDir(), log)
	loader := catalog.NewLoader(pipeline, cache, log)

	if os.Getenv("API_ENV") == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(middleware.ErrorHandler(log))

	snapshotHandler := handlers.NewSnapshotHandler(loader, cfg.DataDir, cfg.SettingsPath())
	pricingHandler := handlers.NewPricingHandler(snapshotHandler, cfg.SettingsPath(), cfg.EngineSeed, history, log)
	historyHandler := handlers.NewHistoryHandler(history)
	settingsHandler := handlers.NewSettingsHandler(cfg.SettingsPath())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api/v1")
	{
		api.GET("/snapshot", snapshotHandler.GetSnapshot)
		api.GET("/sources", snapshotHandler.ListSources)

		api.POST("/simulate", pricingHandler.RunSimulation)
		api.POST("/suggest", pricingHandler.SuggestPrice)

		api.GET("/history", historyHandler.List)
		api.DELETE("/history", historyHandler.Clear)

		api.GET("/settings", settingsHandler.Get)
		api.PUT("/settings", settingsHandler.Put)
	}

	corsWrapper := cors.New(cors.Options{
		AllowedOrigins: cfg.Server.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowedHeaders: []string{"Content-Type"},
	})

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Info("starting API server", zap.String("addr", addr), zap.String("data_dir", cfg.DataDir))
	if err := http.ListenAndServe(addr, corsWrapper.Handler(router)); err != nil {
		log.Fatal("server exited", zap.Error(err))
	}
}
