package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	clog "cosmossdk.io/log"

	"github.com/openalpha/dealflow/api"
)

// Standalone API server. Serves mock fixture data for frontend development,
// or an empty in-memory keeper with --keeper; a node process embeds the same
// api.Server with its own keeper-backed services instead.
func main() {
	// Command line flags
	host := flag.String("host", "0.0.0.0", "Server host")
	port := flag.Int("port", 8080, "Server port")
	keeperMode := flag.Bool("keeper", false, "Serve from an in-memory keeper instead of mock fixtures")
	benchMode := flag.Bool("bench", false, "Enable benchmark mode (no rate limiting)")
	interval := flag.Duration("broadcast-interval", 2*time.Second, "WebSocket snapshot push interval")
	flag.Parse()

	config := &api.Config{
		Host:              *host,
		Port:              *port,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		MockMode:          !*keeperMode,
		DisableRateLimit:  *benchMode,
		BroadcastInterval: *interval,
	}

	if *benchMode {
		log.Println("Benchmark mode: Rate limiting disabled")
	}

	var server *api.Server
	if *keeperMode {
		svc, err := api.NewStandaloneKeeperService(clog.NewNopLogger())
		if err != nil {
			log.Fatalf("Failed to create keeper service: %v", err)
		}
		server = api.NewServerWithServices(config, svc, svc, svc)
		log.Println("Using in-memory keeper service (state starts empty)")
	} else {
		server = api.NewServer(config)
	}

	// Start server in goroutine
	go func() {
		if err := server.Start(); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	log.Printf("Dealflow API server started on %s:%d", *host, *port)
	log.Printf("WebSocket endpoint: ws://%s:%d/ws", *host, *port)
	log.Printf("Health check: http://%s:%d/health", *host, *port)

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Stop(ctx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}

	log.Println("Server exited")
}
