package main

import (
	"log"

	"github.com/currybox/currybox/internal/config"
	"github.com/currybox/currybox/internal/logger"
	gormstore "github.com/currybox/currybox/internal/repository/gorm"
	"github.com/joho/godotenv"
)

// Standalone schema migration for deployed environments where the server
// runs without DDL privileges at startup.
func main() {
	_ = godotenv.Load()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	l, err := logger.NewLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}

	db, err := gormstore.NewClient(cfg, l)
	if err != nil {
		l.Fatalf("Failed to connect to postgres: %v", err)
	}

	l.Info("Running database migrations...")
	if err := gormstore.Migrate(db); err != nil {
		l.Fatalf("Migration failed: %v", err)
	}
	l.Info("Migrations completed successfully")
}
