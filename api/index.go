package handler

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/arnavshah/shift-roster-go/pkg/cache"
	"github.com/arnavshah/shift-roster-go/pkg/config"
	"github.com/arnavshah/shift-roster-go/pkg/database"
	"github.com/arnavshah/shift-roster-go/pkg/handlers"
	"github.com/arnavshah/shift-roster-go/pkg/logger"
)

var (
	once    sync.Once
	r       *gin.Engine
	initErr error
)

func setup() (*gin.Engine, error) {
	// Load .env if it exists (for local testing with vercel dev)
	config.LoadEnvFiles()

	cfg, err := config.Load("")
	if err != nil {
		return nil, err
	}
	if err := cfg.ValidateServer(); err != nil {
		return nil, err
	}
	log, err := logger.NewLogger(&cfg.Log)
	if err != nil {
		return nil, err
	}

	db, err := database.InitDB(&cfg.Database, log)
	if err != nil {
		return nil, err
	}
	rc, err := cache.NewClient(&cfg.Redis, log)
	if err != nil {
		log.Warn("redis unavailable, rate limits use the database", zap.Error(err))
		rc = nil
	}

	h := handlers.New(cfg, db, rc, log)
	if err := h.Auth.EnsureAdminExists(db, log); err != nil {
		return nil, err
	}

	gin.SetMode(gin.ReleaseMode)
	return handlers.NewRouter(h), nil
}

// Handler is the entry point for Vercel Go Runtime
func Handler(w http.ResponseWriter, req *http.Request) {
	once.Do(func() { r, initErr = setup() })
	if initErr != nil {
		http.Error(w, "service misconfigured: "+initErr.Error(), http.StatusInternalServerError)
		return
	}
	r.ServeHTTP(w, req)
}
