package metrics

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Singleton collector
	collector     *Collector
	collectorOnce sync.Once
)

// Collector holds all dealflow metrics
type Collector struct {
	// Pool metrics
	PoolsCreated      prometheus.Counter
	PurchasesTotal    *prometheus.CounterVec
	PurchaseVolume    *prometheus.CounterVec
	WithdrawalsTotal  *prometheus.CounterVec
	WithdrawalVolume  *prometheus.CounterVec
	PoolTotalRaised   *prometheus.GaugeVec
	PoolCapRatio      *prometheus.GaugeVec
	PoolsExpiredTotal prometheus.Counter

	// Deal metrics
	DealsCreated        prometheus.Counter
	DealDepositsTotal   *prometheus.CounterVec
	DealFundingExpired  prometheus.Counter
	ConversionsTotal    *prometheus.CounterVec
	ConversionVolume    *prometheus.CounterVec
	ClaimsTotal         *prometheus.CounterVec
	ClaimVolume         *prometheus.CounterVec
	HolderWithdrawals   *prometheus.CounterVec
	DealEscrowBalance   *prometheus.GaugeVec
	RedeemWindowsActive prometheus.Gauge

	// Ledger metrics
	TokensRegistered prometheus.Counter
	TransfersTotal   *prometheus.CounterVec
	TransfersBlocked *prometheus.CounterVec

	// WebSocket metrics
	WSConnectionsActive prometheus.Gauge
	WSMessagesTotal     *prometheus.CounterVec
	WSSubscriptions     *prometheus.GaugeVec

	// API metrics
	APIRequestsTotal  *prometheus.CounterVec
	APIRequestLatency *prometheus.HistogramVec
	APIErrorsTotal    *prometheus.CounterVec
	RateLimitHits     *prometheus.CounterVec

	// System metrics
	BlockHeight       prometheus.Gauge
	EndBlockerLatency *prometheus.HistogramVec
}

// GetCollector returns the singleton metrics collector
func GetCollector() *Collector {
	collectorOnce.Do(func() {
		collector = newCollector()
	})
	return collector
}

func newCollector() *Collector {
	c := &Collector{}

	c.PoolsCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "dealflow",
			Subsystem: "pools",
			Name:      "created_total",
			Help:      "Total number of pools created",
		},
	)

	c.PurchasesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "dealflow",
			Subsystem: "pools",
			Name:      "purchases_total",
			Help:      "Total number of pool contributions",
		},
		[]string{"pool_id"},
	)

	c.PurchaseVolume = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "dealflow",
			Subsystem: "pools",
			Name:      "purchase_volume",
			Help:      "Total contributed volume in purchase token base units",
		},
		[]string{"pool_id", "denom"},
	)

	c.WithdrawalsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "dealflow",
			Subsystem: "pools",
			Name:      "withdrawals_total",
			Help:      "Total number of pool withdrawals",
		},
		[]string{"pool_id"},
	)

	c.WithdrawalVolume = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "dealflow",
			Subsystem: "pools",
			Name:      "withdrawal_volume",
			Help:      "Total refunded volume in purchase token base units",
		},
		[]string{"pool_id", "denom"},
	)

	c.PoolTotalRaised = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "dealflow",
			Subsystem: "pools",
			Name:      "total_raised",
			Help:      "Current total purchased per pool",
		},
		[]string{"pool_id"},
	)

	c.PoolCapRatio = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "dealflow",
			Subsystem: "pools",
			Name:      "cap_ratio",
			Help:      "Raised amount as a fraction of the cap (0-1, capped pools only)",
		},
		[]string{"pool_id"},
	)

	c.PoolsExpiredTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "dealflow",
			Subsystem: "pools",
			Name:      "expired_total",
			Help:      "Total pools that expired without a deal",
		},
	)

	c.DealsCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "dealflow",
			Subsystem: "deals",
			Name:      "created_total",
			Help:      "Total number of deals created",
		},
	)

	c.DealDepositsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "dealflow",
			Subsystem: "deals",
			Name:      "deposits_total",
			Help:      "Total holder deposits",
		},
		[]string{"deal_id"},
	)

	c.DealFundingExpired = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "dealflow",
			Subsystem: "deals",
			Name:      "funding_expired_total",
			Help:      "Total deals whose holder missed the funding deadline",
		},
	)

	c.ConversionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "dealflow",
			Subsystem: "deals",
			Name:      "conversions_total",
			Help:      "Total position-to-claim conversions",
		},
		[]string{"deal_id", "window"},
	)

	c.ConversionVolume = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "dealflow",
			Subsystem: "deals",
			Name:      "conversion_volume",
			Help:      "Total converted volume in purchase token base units",
		},
		[]string{"deal_id"},
	)

	c.ClaimsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "dealflow",
			Subsystem: "deals",
			Name:      "claims_total",
			Help:      "Total vesting claims",
		},
		[]string{"deal_id"},
	)

	c.ClaimVolume = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "dealflow",
			Subsystem: "deals",
			Name:      "claim_volume",
			Help:      "Total claimed volume in underlying base units",
		},
		[]string{"deal_id"},
	)

	c.HolderWithdrawals = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "dealflow",
			Subsystem: "deals",
			Name:      "holder_withdrawals_total",
			Help:      "Total holder withdrawals (excess and expiry)",
		},
		[]string{"deal_id", "kind"},
	)

	c.DealEscrowBalance = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "dealflow",
			Subsystem: "deals",
			Name:      "escrow_balance",
			Help:      "Current underlying escrow balance per deal",
		},
		[]string{"deal_id"},
	)

	c.RedeemWindowsActive = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "dealflow",
			Subsystem: "deals",
			Name:      "redeem_windows_active",
			Help:      "Number of deals currently inside a redemption window",
		},
	)

	c.TokensRegistered = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "dealflow",
			Subsystem: "ledger",
			Name:      "tokens_registered_total",
			Help:      "Total tokens registered on the ledger",
		},
	)

	c.TransfersTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "dealflow",
			Subsystem: "ledger",
			Name:      "transfers_total",
			Help:      "Total ledger transfers",
		},
		[]string{"denom"},
	)

	c.TransfersBlocked = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "dealflow",
			Subsystem: "ledger",
			Name:      "transfers_blocked_total",
			Help:      "Total transfers rejected by a block flag",
		},
		[]string{"denom"},
	)

	c.WSConnectionsActive = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "dealflow",
			Subsystem: "websocket",
			Name:      "connections_active",
			Help:      "Number of active WebSocket connections",
		},
	)

	c.WSMessagesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "dealflow",
			Subsystem: "websocket",
			Name:      "messages_total",
			Help:      "Total WebSocket messages sent",
		},
		[]string{"channel"},
	)

	c.WSSubscriptions = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "dealflow",
			Subsystem: "websocket",
			Name:      "subscriptions",
			Help:      "Number of active subscriptions per channel",
		},
		[]string{"channel"},
	)

	c.APIRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "dealflow",
			Subsystem: "api",
			Name:      "requests_total",
			Help:      "Total API requests",
		},
		[]string{"method", "path", "status"},
	)

	c.APIRequestLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "dealflow",
			Subsystem: "api",
			Name:      "request_latency_ms",
			Help:      "API request latency in milliseconds",
			Buckets:   []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000},
		},
		[]string{"method", "path"},
	)

	c.APIErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "dealflow",
			Subsystem: "api",
			Name:      "errors_total",
			Help:      "Total API errors",
		},
		[]string{"method", "path", "error_type"},
	)

	c.RateLimitHits = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "dealflow",
			Subsystem: "api",
			Name:      "rate_limit_hits",
			Help:      "Total rate limit hits",
		},
		[]string{"limit_type"},
	)

	c.BlockHeight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "dealflow",
			Subsystem: "system",
			Name:      "block_height",
			Help:      "Current block height",
		},
	)

	c.EndBlockerLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "dealflow",
			Subsystem: "system",
			Name:      "endblocker_latency_ms",
			Help:      "EndBlocker phase latency in milliseconds",
			Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 25, 50},
		},
		[]string{"phase"},
	)

	c.registerAll()

	return c
}

func (c *Collector) registerAll() {
	prometheus.MustRegister(c.PoolsCreated)
	prometheus.MustRegister(c.PurchasesTotal)
	prometheus.MustRegister(c.PurchaseVolume)
	prometheus.MustRegister(c.WithdrawalsTotal)
	prometheus.MustRegister(c.WithdrawalVolume)
	prometheus.MustRegister(c.PoolTotalRaised)
	prometheus.MustRegister(c.PoolCapRatio)
	prometheus.MustRegister(c.PoolsExpiredTotal)

	prometheus.MustRegister(c.DealsCreated)
	prometheus.MustRegister(c.DealDepositsTotal)
	prometheus.MustRegister(c.DealFundingExpired)
	prometheus.MustRegister(c.ConversionsTotal)
	prometheus.MustRegister(c.ConversionVolume)
	prometheus.MustRegister(c.ClaimsTotal)
	prometheus.MustRegister(c.ClaimVolume)
	prometheus.MustRegister(c.HolderWithdrawals)
	prometheus.MustRegister(c.DealEscrowBalance)
	prometheus.MustRegister(c.RedeemWindowsActive)

	prometheus.MustRegister(c.TokensRegistered)
	prometheus.MustRegister(c.TransfersTotal)
	prometheus.MustRegister(c.TransfersBlocked)

	prometheus.MustRegister(c.WSConnectionsActive)
	prometheus.MustRegister(c.WSMessagesTotal)
	prometheus.MustRegister(c.WSSubscriptions)

	prometheus.MustRegister(c.APIRequestsTotal)
	prometheus.MustRegister(c.APIRequestLatency)
	prometheus.MustRegister(c.APIErrorsTotal)
	prometheus.MustRegister(c.RateLimitHits)

	prometheus.MustRegister(c.BlockHeight)
	prometheus.MustRegister(c.EndBlockerLatency)
}

// ============ Recording Helpers ============

// RecordPurchase records a pool contribution
func (c *Collector) RecordPurchase(poolID, denom string, amount float64) {
	c.PurchasesTotal.WithLabelValues(poolID).Inc()
	c.PurchaseVolume.WithLabelValues(poolID, denom).Add(amount)
}

// RecordWithdrawal records a pool withdrawal
func (c *Collector) RecordWithdrawal(poolID, denom string, amount float64) {
	c.WithdrawalsTotal.WithLabelValues(poolID).Inc()
	c.WithdrawalVolume.WithLabelValues(poolID, denom).Add(amount)
}

// RecordConversion records a position-to-claim conversion
func (c *Collector) RecordConversion(dealID, window string, purchaseAmount float64) {
	c.ConversionsTotal.WithLabelValues(dealID, window).Inc()
	c.ConversionVolume.WithLabelValues(dealID).Add(purchaseAmount)
}

// RecordClaim records a vesting claim
func (c *Collector) RecordClaim(dealID string, amount float64) {
	c.ClaimsTotal.WithLabelValues(dealID).Inc()
	c.ClaimVolume.WithLabelValues(dealID).Add(amount)
}

// RecordAPIRequest records an API request
func (c *Collector) RecordAPIRequest(method, path, status string, latencyMs float64) {
	c.APIRequestsTotal.WithLabelValues(method, path, status).Inc()
	c.APIRequestLatency.WithLabelValues(method, path).Observe(latencyMs)
}

// RecordWSConnection records WebSocket connection changes
func (c *Collector) RecordWSConnection(delta int) {
	c.WSConnectionsActive.Add(float64(delta))
}

// RecordWSMessage records a WebSocket message
func (c *Collector) RecordWSMessage(channel string) {
	c.WSMessagesTotal.WithLabelValues(channel).Inc()
}

// RecordEndBlockerPhase records an EndBlocker phase duration
func (c *Collector) RecordEndBlockerPhase(phase string, latencyMs float64) {
	c.EndBlockerLatency.WithLabelValues(phase).Observe(latencyMs)
}

// ============ HTTP Handler ============

// Handler returns the Prometheus HTTP handler
func Handler() http.Handler {
	return promhttp.Handler()
}

// Timer is a helper for measuring latency
type Timer struct {
	start time.Time
}

// NewTimer creates a new timer
func NewTimer() *Timer {
	return &Timer{start: time.Now()}
}

// ElapsedMs returns the elapsed time in milliseconds
func (t *Timer) ElapsedMs() float64 {
	return float64(time.Since(t.start).Microseconds()) / 1000.0
}
