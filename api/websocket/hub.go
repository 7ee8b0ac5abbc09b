package websocket

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"
)

// Hub maintains the set of active clients and broadcasts messages
type Hub struct {
	// Registered clients by channel
	clients  map[*Client]bool
	channels map[string]map[*Client]bool // channel -> clients

	// Subscription management
	subscriptions map[string]map[*Client]bool // topic -> clients

	// Inbound messages from clients
	broadcast chan []byte

	// Register/unregister requests
	register   chan *Client
	unregister chan *Client

	// Channel subscription requests
	subscribe   chan *SubscriptionRequest
	unsubscribe chan *SubscriptionRequest

	// Snapshot buffers flushed on the update tickers
	poolBuffer map[string]*PoolMessage
	dealBuffer map[string]*DealMessage

	// Mutex for thread-safe operations
	mu sync.RWMutex

	// Configuration
	config *HubConfig
}

// HubConfig contains hub configuration
type HubConfig struct {
	// Update intervals. Pool and deal state only moves on block commit,
	// so sub-second pushes would just repeat themselves.
	PoolInterval time.Duration
	DealInterval time.Duration

	// Connection limits
	MaxClientsPerIP  int
	MaxSubscriptions int

	// Rate limiting
	MessageRateLimit int // Messages per second per client
}

// DefaultHubConfig returns default hub configuration
func DefaultHubConfig() *HubConfig {
	return &HubConfig{
		PoolInterval:     time.Second,
		DealInterval:     time.Second,
		MaxClientsPerIP:  10,
		MaxSubscriptions: 50,
		MessageRateLimit: 100,
	}
}

// SubscriptionRequest represents a subscription request
type SubscriptionRequest struct {
	Client  *Client
	Channel string
	Action  string // "subscribe" or "unsubscribe"
}

// NewHub creates a new Hub
func NewHub(config *HubConfig) *Hub {
	if config == nil {
		config = DefaultHubConfig()
	}

	return &Hub{
		clients:       make(map[*Client]bool),
		channels:      make(map[string]map[*Client]bool),
		subscriptions: make(map[string]map[*Client]bool),
		broadcast:     make(chan []byte, 256),
		register:      make(chan *Client),
		unregister:    make(chan *Client),
		subscribe:     make(chan *SubscriptionRequest, 256),
		unsubscribe:   make(chan *SubscriptionRequest, 256),
		poolBuffer:    make(map[string]*PoolMessage),
		dealBuffer:    make(map[string]*DealMessage),
		config:        config,
	}
}

// Run starts the hub's main loop
func (h *Hub) Run() {
	poolTicker := time.NewTicker(h.config.PoolInterval)
	dealTicker := time.NewTicker(h.config.DealInterval)

	defer poolTicker.Stop()
	defer dealTicker.Stop()

	for {
		select {
		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case req := <-h.subscribe:
			h.handleSubscription(req)

		case req := <-h.unsubscribe:
			h.handleUnsubscription(req)

		case message := <-h.broadcast:
			h.broadcastMessage(message)

		case <-poolTicker.C:
			h.broadcastPools()

		case <-dealTicker.C:
			h.broadcastDeals()
		}
	}
}

// registerClient adds a new client
func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.clients[client] = true
}

// unregisterClient removes a client
func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)

		// Remove from all channels
		for channel, clients := range h.channels {
			delete(clients, client)
			if len(clients) == 0 {
				delete(h.channels, channel)
			}
		}

		// Remove from all subscriptions
		for topic := range h.subscriptions {
			delete(h.subscriptions[topic], client)
		}

		close(client.send)
	}
}

// handleSubscription handles a subscription request
func (h *Hub) handleSubscription(req *SubscriptionRequest) {
	h.mu.Lock()
	defer h.mu.Unlock()

	channel := req.Channel
	client := req.Client

	if _, ok := h.channels[channel]; !ok {
		h.channels[channel] = make(map[*Client]bool)
	}
	h.channels[channel][client] = true

	// Send subscription confirmation
	confirmation := &WSMessage{
		Type:    "subscribed",
		Channel: channel,
		Data:    nil,
	}
	data, _ := json.Marshal(confirmation)
	client.send <- data
}

// handleUnsubscription handles an unsubscription request
func (h *Hub) handleUnsubscription(req *SubscriptionRequest) {
	h.mu.Lock()
	defer h.mu.Unlock()

	channel := req.Channel
	client := req.Client

	if clients, ok := h.channels[channel]; ok {
		delete(clients, client)
		if len(clients) == 0 {
			delete(h.channels, channel)
		}
	}

	// Send unsubscription confirmation
	confirmation := &WSMessage{
		Type:    "unsubscribed",
		Channel: channel,
		Data:    nil,
	}
	data, _ := json.Marshal(confirmation)
	client.send <- data
}

// broadcastMessage sends a message to all clients in a channel
func (h *Hub) broadcastMessage(message []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.clients {
		select {
		case client.send <- message:
		default:
			// Client buffer is full, skip
		}
	}
}

// BroadcastToChannel sends a message to all clients subscribed to a channel
func (h *Hub) BroadcastToChannel(channel string, message interface{}) {
	h.mu.RLock()
	clients, ok := h.channels[channel]
	if !ok {
		h.mu.RUnlock()
		return
	}

	// Make a copy of clients to avoid holding lock during send
	clientList := make([]*Client, 0, len(clients))
	for client := range clients {
		clientList = append(clientList, client)
	}
	h.mu.RUnlock()

	data, err := json.Marshal(message)
	if err != nil {
		return
	}

	for _, client := range clientList {
		select {
		case client.send <- data:
		default:
			// Client buffer is full, skip
		}
	}
}

// ============ Channel-specific broadcasts ============

// UpdatePool updates the snapshot buffer for a pool
func (h *Hub) UpdatePool(poolID string, pool *PoolMessage) {
	h.mu.Lock()
	h.poolBuffer[poolID] = pool
	h.mu.Unlock()
}

// UpdateDeal updates the snapshot buffer for a deal
func (h *Hub) UpdateDeal(dealID string, deal *DealMessage) {
	h.mu.Lock()
	h.dealBuffer[dealID] = deal
	h.mu.Unlock()
}

// broadcastPools broadcasts all buffered pool snapshots
func (h *Hub) broadcastPools() {
	h.mu.RLock()
	pools := make(map[string]*PoolMessage)
	for k, v := range h.poolBuffer {
		pools[k] = v
	}
	h.mu.RUnlock()

	for poolID, pool := range pools {
		channel := "pool:" + poolID
		msg := &WSMessage{
			Type:    "pool",
			Channel: channel,
			Data:    pool,
		}
		h.BroadcastToChannel(channel, msg)
	}
}

// broadcastDeals broadcasts all buffered deal snapshots
func (h *Hub) broadcastDeals() {
	h.mu.RLock()
	deals := make(map[string]*DealMessage)
	for k, v := range h.dealBuffer {
		deals[k] = v
	}
	h.mu.RUnlock()

	for dealID, deal := range deals {
		channel := "deal:" + dealID
		msg := &WSMessage{
			Type:    "deal",
			Channel: channel,
			Data:    deal,
		}
		h.BroadcastToChannel(channel, msg)
	}
}

// BroadcastPurchase broadcasts a contribution event to pool subscribers
func (h *Hub) BroadcastPurchase(poolID string, purchase *PurchaseMessage) {
	channel := "pool:" + poolID
	msg := &WSMessage{
		Type:    "purchase",
		Channel: channel,
		Data:    purchase,
	}
	h.BroadcastToChannel(channel, msg)
}

// BroadcastConversion broadcasts a redemption event to deal subscribers
func (h *Hub) BroadcastConversion(dealID string, conversion *ConversionMessage) {
	channel := "deal:" + dealID
	msg := &WSMessage{
		Type:    "conversion",
		Channel: channel,
		Data:    conversion,
	}
	h.BroadcastToChannel(channel, msg)
}

// BroadcastClaim broadcasts a vesting claim to a specific participant
func (h *Hub) BroadcastClaim(participant string, claim *ClaimMessage) {
	channel := "claims:" + participant
	msg := &WSMessage{
		Type:    "claim",
		Channel: channel,
		Data:    claim,
	}
	h.BroadcastToChannel(channel, msg)
}

// BroadcastAllocation broadcasts an allocation update to a specific participant
func (h *Hub) BroadcastAllocation(participant string, alloc *AllocationMessage) {
	channel := "allocations:" + participant
	msg := &WSMessage{
		Type:    "allocation",
		Channel: channel,
		Data:    alloc,
	}
	h.BroadcastToChannel(channel, msg)
}

// ============ Message Types ============

// WSMessage represents a WebSocket message
type WSMessage struct {
	Type    string      `json:"type"`
	Channel string      `json:"channel"`
	Data    interface{} `json:"data,omitempty"`
}

// PoolMessage represents a pool state snapshot
type PoolMessage struct {
	PoolID            string `json:"pool_id"`
	TotalPurchased    string `json:"total_purchased"`
	Cap               string `json:"cap"`
	Status            string `json:"status"`
	PurchaseWindowEnd int64  `json:"purchase_window_end"`
	PoolExpiry        int64  `json:"pool_expiry"`
	DealID            string `json:"deal_id,omitempty"`
	Timestamp         int64  `json:"timestamp"`
}

// DealMessage represents a deal state snapshot
type DealMessage struct {
	DealID                string `json:"deal_id"`
	Window                string `json:"window"`
	DepositTotal          string `json:"deposit_total"`
	DepositComplete       bool   `json:"deposit_complete"`
	TotalAcceptedPurchase string `json:"total_accepted_purchase"`
	RemainingCapacity     string `json:"remaining_capacity"`
	TotalClaimed          string `json:"total_claimed"`
	Timestamp             int64  `json:"timestamp"`
}

// PurchaseMessage represents a pool contribution event
type PurchaseMessage struct {
	PoolID      string `json:"pool_id"`
	Participant string `json:"participant"`
	Amount      string `json:"amount"`
	Credited    string `json:"credited"`
	Timestamp   int64  `json:"timestamp"`
}

// ConversionMessage represents a position redemption event
type ConversionMessage struct {
	DealID      string `json:"deal_id"`
	Participant string `json:"participant"`
	Purchase    string `json:"purchase"`
	ClaimCredit string `json:"claim_credit"`
	Window      string `json:"window"`
	Timestamp   int64  `json:"timestamp"`
}

// ClaimMessage represents a vesting claim payout
type ClaimMessage struct {
	DealID      string `json:"deal_id"`
	Participant string `json:"participant"`
	Amount      string `json:"amount"`
	Remaining   string `json:"remaining"`
	Timestamp   int64  `json:"timestamp"`
}

// AllocationMessage represents an allocation update
type AllocationMessage struct {
	DealID           string `json:"deal_id"`
	Participant      string `json:"participant"`
	AcceptedPurchase string `json:"accepted_purchase"`
	ClaimBalance     string `json:"claim_balance"`
	Claimed          string `json:"claimed"`
	Timestamp        int64  `json:"timestamp"`
}

// GetClientCount returns the number of connected clients
func (h *Hub) GetClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// GetChannelCount returns the number of active channels
func (h *Hub) GetChannelCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.channels)
}

// GetChannelClientCount returns the number of clients in a channel
func (h *Hub) GetChannelClientCount(channel string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if clients, ok := h.channels[channel]; ok {
		return len(clients)
	}
	return 0
}

// ServeWS handles WebSocket upgrade requests
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}

	clientID := r.URL.Query().Get("client_id")
	if clientID == "" {
		clientID = generateID()
	}

	userID := r.URL.Query().Get("user_id")
	ip := getClientIPFromRequest(r)

	client := NewClient(h, conn, clientID, userID, ip)

	h.register <- client

	go client.writePump()
	go client.readPump()
}

// Helper function to get client IP
func getClientIPFromRequest(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		for i := 0; i < len(xff); i++ {
			if xff[i] == ',' {
				return xff[:i]
			}
		}
		return xff
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}
	ip := r.RemoteAddr
	for i := len(ip) - 1; i >= 0; i-- {
		if ip[i] == ':' {
			return ip[:i]
		}
	}
	return ip
}

// Generate a simple ID
func generateID() string {
	return fmt.Sprintf("%d", time.Now().UnixNano())
}
