package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/arnavshah/shift-roster-go/pkg/cache"
	"github.com/arnavshah/shift-roster-go/pkg/config"
	"github.com/arnavshah/shift-roster-go/pkg/database"
	"github.com/arnavshah/shift-roster-go/pkg/handlers"
	"github.com/arnavshah/shift-roster-go/pkg/logger"
)

func main() {
	configFile := flag.String("config", "", "path to a YAML config file (defaults to ./config/config.yaml when present)")
	flag.Parse()

	// Load .env if it exists
	config.LoadEnvFiles()

	cfg, err := config.Load(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.ValidateServer(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.NewLogger(&cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	db, err := database.InitDB(&cfg.Database, log)
	if err != nil {
		log.Fatal("database init failed", zap.Error(err))
	}

	rc, err := cache.NewClient(&cfg.Redis, log)
	if err != nil {
		log.Warn("redis unavailable, rate limits use the database", zap.Error(err))
		rc = nil
	}
	if rc != nil {
		defer rc.Close()
	}

	h := handlers.New(cfg, db, rc, log)
	if err := h.Auth.EnsureAdminExists(db, log); err != nil {
		log.Fatal("admin bootstrap failed", zap.Error(err))
	}

	if cfg.Server.GinMode == "" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(cfg.Server.GinMode)
	}

	r := handlers.NewRouter(h)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Info("server starting", zap.String("addr", addr), zap.String("version", handlers.Version))
	if err := r.Run(addr); err != nil {
		log.Fatal("could not run server", zap.Error(err))
	}
}
