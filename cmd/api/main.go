package main

import (
	"log"

	"token-analysis-backend/internal/config"
	"token-analysis-backend/internal/server"
	"token-analysis-backend/internal/shared/telemetry"
)

func main() {
	cfg := config.Load()
	telemetry.Init(cfg.LogFile, cfg.Env == "production")
	defer telemetry.Sync()

	r := server.NewRouter(cfg)

	addr := server.Addr(cfg.Port)
	log.Printf("Starting API server on %s", addr)

	if err := r.Run(addr); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
