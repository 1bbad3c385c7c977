package stream

import (
	"errors"
	"time"
)

// DefaultFeedURL is the public CLOB market-channel endpoint.
const DefaultFeedURL = "wss://ws-subscriptions-clob.polymarket.com/ws/market"

// Errors
var (
	ErrNotConnected    = errors.New("not connected")
	ErrStaleConnection = errors.New("connection stale (no pong)")
	ErrAlreadyClosed   = errors.New("already closed")
)

// TimestampedMessage wraps one raw feed frame with its receive timestamp.
type TimestampedMessage struct {
	Data       []byte    // Raw frame bytes from the WebSocket
	ReceivedAt time.Time // Local timestamp when ReadMessage() returned
}

// subscribeMessage is the market-channel subscription sent after connect.
type subscribeMessage struct {
	Type     string   `json:"type"`
	AssetIDs []string `json:"assets_ids"`
}

// ClientConfig configures a WebSocket client.
type ClientConfig struct {
	URL              string        // Feed URL
	HandshakeTimeout time.Duration // Dial deadline
	PingInterval     time.Duration // How often to ping the server
	PongTimeout      time.Duration // Grace period for a pong after each ping
	CloseTimeout     time.Duration // Deadline for the close frame on shutdown
	WriteTimeout     time.Duration // Write deadline for sends
	BufferSize       int           // Message channel buffer size
}

// DefaultClientConfig returns sensible defaults.
func DefaultClientConfig() ClientConfig {
	return ClientConfig{
		URL:              DefaultFeedURL,
		HandshakeTimeout: 10 * time.Second,
		PingInterval:     20 * time.Second,
		PongTimeout:      20 * time.Second,
		CloseTimeout:     5 * time.Second,
		WriteTimeout:     5 * time.Second,
		BufferSize:       4096,
	}
}

// SessionConfig configures a recording session.
type SessionConfig struct {
	Client        ClientConfig
	IdleTimeout   time.Duration // Heartbeat log after this long without a frame
	ReconnectBase time.Duration // First reconnect delay
	ReconnectMax  time.Duration // Reconnect delay cap
	PrintEvery    int           // Log every Nth update (0 disables progress logs)
	MaxRawLen     int           // Raw frame bytes kept per record (0 = unlimited)
}

// DefaultSessionConfig returns sensible defaults.
func DefaultSessionConfig() SessionConfig {
	return SessionConfig{
		Client:        DefaultClientConfig(),
		IdleTimeout:   10 * time.Second,
		ReconnectBase: time.Second,
		ReconnectMax:  30 * time.Second,
		PrintEvery:    1,
		MaxRawLen:     20000,
	}
}

// Stats is a point-in-time snapshot of session progress.
type Stats struct {
	Connected      bool      `json:"connected"`
	Frames         int64     `json:"frames"`
	Updates        int64     `json:"updates"`
	RecordsWritten int64     `json:"records_written"`
	Reconnects     int64     `json:"reconnects"`
	LastMessageAt  time.Time `json:"last_message_at"`
}
