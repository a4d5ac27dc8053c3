package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"viewsync/internal/adapters/airtable"
	"viewsync/internal/adapters/runlog"
	"viewsync/internal/adapters/youtube"
	"viewsync/internal/config"
	"viewsync/internal/service"
)

func main() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		// It's okay if .env doesn't exist, environment variables might be set manually
		log.Println("No .env file found")
	}

	// Parse flags
	dataDir := flag.String("data-dir", "./data", "Base directory for storing run artifacts")
	dryRun := flag.Bool("dry-run", false, "Fetch records and stats but skip writing back")
	flag.Parse()

	// Setup logger
	logger := log.New(os.Stdout, "", log.LstdFlags)

	logger.Println("=== View Engagement Sync ===")
	logger.Printf("Data Directory: %s", *dataDir)
	if *dryRun {
		logger.Println("Mode: dry run (no writes)")
	}

	// Load configuration (fails fast on missing credentials)
	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize adapters
	store := airtable.NewClient(cfg)
	stats := youtube.NewClient(cfg)
	archive := runlog.NewStorage(*dataDir)

	// Create orchestrator
	orchestrator := service.NewOrchestrator(store, stats, store, archive, cfg.URLField, *dryRun, logger)

	// Setup context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		logger.Println("\nReceived interrupt signal, cancelling...")
		cancel()
	}()

	// Run the job
	result, err := orchestrator.Run(ctx)
	if err != nil {
		logger.Printf("Run failed: %v", err)
		os.Exit(1)
	}

	// Print summary
	fmt.Println("\n=== Run Summary ===")
	fmt.Printf("Run ID:       %s\n", result.RunID)
	fmt.Printf("Pulled:       %d\n", result.Pulled)
	if result.Updated > 0 {
		fmt.Printf("Updated:      %d\n", result.Updated)
	} else {
		fmt.Println("Updated:      0 (no updates were needed)")
	}
	fmt.Printf("Skipped:      %d no video ID, %d lookup failed\n", result.SkippedNoVideoID, result.SkippedLookup)
	fmt.Printf("Completed At: %s\n", result.CompletedAt.Format("2006-01-02 15:04:05 UTC"))
}
