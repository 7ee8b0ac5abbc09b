package api

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/openalpha/dealflow/api/handlers"
	"github.com/openalpha/dealflow/api/middleware"
	"github.com/openalpha/dealflow/api/types"
	"github.com/openalpha/dealflow/api/websocket"
	"github.com/openalpha/dealflow/metrics"
)

// Server represents the API server
type Server struct {
	httpServer *http.Server
	wsServer   *websocket.Server
	config     *Config
	mockMode   bool

	// Services
	poolService  types.PoolService
	dealService  types.DealService
	tokenService types.TokenService

	// Handlers
	poolHandler  *handlers.PoolHandler
	dealHandler  *handlers.DealHandler
	tokenHandler *handlers.TokenHandler

	// Rate limiter
	rateLimiter *middleware.RateLimiter
}

// Config contains server configuration
type Config struct {
	Host             string
	Port             int
	ReadTimeout      time.Duration
	WriteTimeout     time.Duration
	MockMode         bool
	DisableRateLimit bool // For testing purposes

	// BroadcastInterval is how often pool and deal snapshots are pushed
	// to WebSocket subscribers
	BroadcastInterval time.Duration
}

// DefaultConfig returns default configuration.
// MockMode defaults to false; use --mock explicitly for development.
func DefaultConfig() *Config {
	return &Config{
		Host:              "0.0.0.0",
		Port:              8080,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		MockMode:          false,
		BroadcastInterval: 2 * time.Second,
	}
}

// NewServer creates a new API server backed by mock data
func NewServer(config *Config) *Server {
	if config == nil {
		config = DefaultConfig()
	}
	config.MockMode = true

	mockService := NewMockService()
	return newServer(config, mockService, mockService, mockService)
}

// NewServerWithServices creates a new API server with custom services,
// typically the keeper-backed query service of a running node.
func NewServerWithServices(config *Config, poolSvc types.PoolService, dealSvc types.DealService, tokenSvc types.TokenService) *Server {
	if config == nil {
		config = DefaultConfig()
	}
	return newServer(config, poolSvc, dealSvc, tokenSvc)
}

func newServer(config *Config, poolSvc types.PoolService, dealSvc types.DealService, tokenSvc types.TokenService) *Server {
	wsConfig := websocket.DefaultServerConfig()
	wsConfig.Port = config.Port

	s := &Server{
		config:       config,
		wsServer:     websocket.NewServer(wsConfig),
		mockMode:     config.MockMode,
		poolService:  poolSvc,
		dealService:  dealSvc,
		tokenService: tokenSvc,
		rateLimiter:  middleware.NewRateLimiter(middleware.DefaultRateLimitConfig()),
	}

	s.poolHandler = handlers.NewPoolHandler(s.poolService)
	s.dealHandler = handlers.NewDealHandler(s.dealService)
	s.tokenHandler = handlers.NewTokenHandler(s.tokenService)

	return s
}

// Start starts the API server
func (s *Server) Start() error {
	mux := http.NewServeMux()

	// Health check (support both /health and /v1/health for compatibility)
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/v1/health", s.handleHealth)

	// Prometheus metrics
	mux.Handle("/metrics", metrics.Handler())

	// Pool endpoints
	mux.HandleFunc("/v1/pools", s.poolHandler.HandlePools)
	mux.HandleFunc("/v1/pools/", s.poolHandler.HandlePool)

	// Deal endpoints
	mux.HandleFunc("/v1/deals", s.dealHandler.HandleDeals)
	mux.HandleFunc("/v1/deals/", s.dealHandler.HandleDeal)

	// Token ledger endpoints
	mux.HandleFunc("/v1/tokens", s.tokenHandler.HandleTokens)
	mux.HandleFunc("/v1/tokens/", s.tokenHandler.HandleToken)

	// WebSocket
	mux.HandleFunc("/ws", s.wsServer.GetHub().ServeWS)

	// Apply middleware chain: CORS -> metrics -> RateLimit -> Handler
	var handler http.Handler = metricsMiddleware(mux)
	if !s.config.DisableRateLimit {
		handler = middleware.RateLimitMiddleware(s.rateLimiter)(handler)
	}
	handler = corsMiddleware(handler)

	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
	}

	// Start WebSocket hub
	go s.wsServer.GetHub().Run()

	// Push pool and deal snapshots to subscribers
	go s.startStateBroadcaster()

	log.Printf("API server starting on %s (mock mode: %v)", addr, s.mockMode)
	if s.config.DisableRateLimit {
		log.Printf("Rate limiting DISABLED (for testing)")
	} else {
		log.Printf("Rate limiting enabled: %d req/s per IP", 100)
	}
	return s.httpServer.ListenAndServe()
}

// Stop gracefully shuts down the server
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// startStateBroadcaster periodically loads pool and deal state from the
// services and refreshes the hub's snapshot buffers.
func (s *Server) startStateBroadcaster() {
	interval := s.config.BroadcastInterval
	if interval <= 0 {
		interval = 2 * time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	hub := s.wsServer.GetHub()
	for range ticker.C {
		ctx, cancel := context.WithTimeout(context.Background(), interval)

		pools, err := s.poolService.ListPools(ctx)
		if err == nil {
			now := nowMillis()
			for _, p := range pools {
				hub.UpdatePool(p.PoolID, &websocket.PoolMessage{
					PoolID:            p.PoolID,
					TotalPurchased:    p.TotalPurchased,
					Cap:               p.Cap,
					Status:            p.Status,
					PurchaseWindowEnd: p.PurchaseWindowEnd,
					PoolExpiry:        p.PoolExpiry,
					DealID:            p.DealID,
					Timestamp:         now,
				})
			}
		}

		deals, err := s.dealService.ListDeals(ctx)
		if err == nil {
			now := nowMillis()
			for _, d := range deals {
				hub.UpdateDeal(d.DealID, &websocket.DealMessage{
					DealID:                d.DealID,
					Window:                d.Window,
					DepositTotal:          d.DepositTotal,
					DepositComplete:       d.DepositComplete,
					TotalAcceptedPurchase: d.TotalAcceptedPurchase,
					RemainingCapacity:     d.RemainingCapacity,
					TotalClaimed:          d.TotalClaimed,
					Timestamp:             now,
				})
			}
		}

		cancel()
	}
}

// handleHealth handles health check requests
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	mode := "keeper"
	if s.mockMode {
		mode = "mock"
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().Unix(),
		"mode":      mode,
		"clients":   s.wsServer.GetHub().GetClientCount(),
	})
}

// Helper functions

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]interface{}{
		"error": message,
	})
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-API-Key")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// metricsMiddleware records request counts and latency per route
func metricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		timer := metrics.NewTimer()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(sw, r)

		metrics.GetCollector().RecordAPIRequest(r.Method, routeLabel(r.URL.Path), strconv.Itoa(sw.status), timer.ElapsedMs())
	})
}

// routeLabel collapses resource IDs out of the path so the metric label
// set stays bounded.
func routeLabel(path string) string {
	prefixes := []string{"/v1/pools/", "/v1/deals/", "/v1/tokens/"}
	for _, prefix := range prefixes {
		if len(path) > len(prefix) && path[:len(prefix)] == prefix {
			return prefix + ":id"
		}
	}
	return path
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}
