package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/procurehub/match-engine/api"
	"github.com/procurehub/match-engine/config"
	"github.com/procurehub/match-engine/internal/engine"
	"github.com/procurehub/match-engine/store"
)

func main() {
	// Define command-line flags
	var (
		help            = flag.Bool("help", false, "Show help message")
		version         = flag.Bool("version", false, "Show version information")
		port            = flag.String("port", "8080", "Port to run the server on")
		providerTimeout = flag.Duration("provider-timeout", 10*time.Second, "Upper bound per entity provider call")
		cacheCapacity   = flag.Int("cache-capacity", 10, "Max entries in the result cache")
		maxBodySize     = flag.Int64("max-body-size", 10<<20, "Maximum request body size in bytes")
	)

	flag.Parse()

	// Handle help flag
	if *help {
		fmt.Printf("Match Engine - multi-criteria matching and ranking for procurement marketplaces\n\n")
		fmt.Printf("Usage: %s [options]\n\n", os.Args[0])
		fmt.Printf("Options:\n")
		flag.PrintDefaults()
		fmt.Printf("\nExamples:\n")
		fmt.Printf("  %s                            # Start server on default port 8080\n", os.Args[0])
		fmt.Printf("  %s --port 9000                # Start server on port 9000\n", os.Args[0])
		fmt.Printf("  %s --provider-timeout 5s      # Fail slow providers after 5 seconds\n", os.Args[0])
		return
	}

	// Handle version flag
	if *version {
		fmt.Printf("Match Engine v1.0.0\n")
		fmt.Printf("Weighted bid scoring, relevance ranking, and cached fan-out search\n")
		return
	}

	settings := config.EngineSettings{
		ProviderTimeout: *providerTimeout,
		CacheCapacity:   *cacheCapacity,
	}
	settings.ApplyDefaults()

	catalog := store.NewCatalog()
	matchEngine, err := engine.NewEngine(settings, catalog.Providers(), catalog)
	if err != nil {
		log.Fatalf("Failed to initialize engine: %v", err)
	}

	// Initialize Gin router
	router := gin.Default()
	router.Use(api.CORSMiddleware())
	router.Use(api.RequestSizeLimitMiddleware(*maxBodySize))

	// Setup API routes
	api.SetupRoutes(router, matchEngine, catalog)

	// Start the server
	log.Printf("Starting server on port %s...", *port)
	if err := router.Run(":" + *port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
