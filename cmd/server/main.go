package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/procura/notice-harvester/internal/api"
	"github.com/procura/notice-harvester/internal/db"
	"github.com/procura/notice-harvester/internal/ingest"
)

func main() {
	configPath := flag.String("config", "", "path to a harvester config file (optional)")
	flag.Parse()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8081"
	}

	cfg, err := ingest.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	if err := db.ApplyMigrations(ctx, pool); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	srv := api.NewServer(pool, cfg)
	log.Printf("Server starting on port %s...", port)
	if err := srv.Start(port); err != nil {
		log.Fatal(err)
	}
}
