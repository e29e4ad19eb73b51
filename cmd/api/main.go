package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/clinicbook/clinic-scheduler/internal/config"
	dbpkg "github.com/clinicbook/clinic-scheduler/internal/db"
	"github.com/clinicbook/clinic-scheduler/internal/logging"
	"github.com/clinicbook/clinic-scheduler/internal/middleware"
	"github.com/clinicbook/clinic-scheduler/internal/routes"
)

func main() {

	cfg := config.Load()
	logging.Init("clinic-scheduler", cfg.Env)

	db := dbpkg.NewDB(cfg)

	if cfg.Env != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORSMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, cfg)

	log.Info().Str("addr", cfg.Addr()).Msg("server running")
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatal().Err(err).Msg("failed to start server")
	}
}
