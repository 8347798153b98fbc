package main

import (
	"context"
	"os"

	"github.com/gin-gonic/gin"

	"landmarket/internal/config"
	"landmarket/internal/logging"
	"landmarket/internal/market"
)

func main() {
	cfg := config.Load()
	log := logging.New(cfg.Debug)
	defer log.Sync()

	client, err := market.Connect(context.Background(), cfg.MongoURI)
	if err != nil {
		log.Errorw("failed to connect to mongodb", "uri", cfg.MongoURI, "error", err)
		os.Exit(1)
	}
	defer client.Disconnect(context.Background())

	repo := market.NewMongoRepository(client.Database(cfg.MongoDatabase))
	h := &market.Handler{Repo: repo, Log: log}

	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	h.RegisterRoutes(router.Group("/api"))

	log.Infow("starting server", "addr", cfg.ServerAddr)
	if err := router.Run(cfg.ServerAddr); err != nil {
		log.Errorw("server stopped", "error", err)
		os.Exit(1)
	}
}
