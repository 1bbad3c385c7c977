package config

import (
	"time"

	"github.com/google/uuid"
)

// Default values for optional configuration fields.
const (
	DefaultGammaBaseURL       = "https://gamma-api.polymarket.com"
	DefaultGammaTimeout       = 20 * time.Second
	DefaultGammaMaxRetries    = 3
	DefaultGammaRateLimit     = 10.0
	DefaultGammaRateBurst     = 10
	DefaultFeedURL            = "wss://ws-subscriptions-clob.polymarket.com/ws/market"
	DefaultHandshakeTimeout   = 10 * time.Second
	DefaultPingInterval       = 20 * time.Second
	DefaultPongTimeout        = 20 * time.Second
	DefaultCloseTimeout       = 5 * time.Second
	DefaultWriteTimeout       = 5 * time.Second
	DefaultBufferSize         = 4096
	DefaultIdleTimeout        = 10 * time.Second
	DefaultReconnectBaseDelay = 1 * time.Second
	DefaultReconnectMaxDelay  = 30 * time.Second
	DefaultPrintEvery         = 1
	DefaultMaxRawLen          = 20000
	DefaultSinkDir            = "data"
	DefaultSinkFilename       = "polymarket_book.csv"
	DefaultMetricsPath        = "/metrics"
)

func (c *RecorderConfig) applyDefaults() {
	// Instance defaults. An ID is generated so records from concurrent
	// recorders can be told apart in logs.
	if c.Instance.ID == "" {
		c.Instance.ID = uuid.NewString()
	}

	// Gamma defaults
	if c.Gamma.BaseURL == "" {
		c.Gamma.BaseURL = DefaultGammaBaseURL
	}
	if c.Gamma.Timeout == 0 {
		c.Gamma.Timeout = DefaultGammaTimeout
	}
	if c.Gamma.MaxRetries == 0 {
		c.Gamma.MaxRetries = DefaultGammaMaxRetries
	}
	if c.Gamma.RateLimit == 0 {
		c.Gamma.RateLimit = DefaultGammaRateLimit
	}
	if c.Gamma.RateBurst == 0 {
		c.Gamma.RateBurst = DefaultGammaRateBurst
	}

	// Feed defaults
	if c.Feed.URL == "" {
		c.Feed.URL = DefaultFeedURL
	}
	if c.Feed.HandshakeTimeout == 0 {
		c.Feed.HandshakeTimeout = DefaultHandshakeTimeout
	}
	if c.Feed.PingInterval == 0 {
		c.Feed.PingInterval = DefaultPingInterval
	}
	if c.Feed.PongTimeout == 0 {
		c.Feed.PongTimeout = DefaultPongTimeout
	}
	if c.Feed.CloseTimeout == 0 {
		c.Feed.CloseTimeout = DefaultCloseTimeout
	}
	if c.Feed.WriteTimeout == 0 {
		c.Feed.WriteTimeout = DefaultWriteTimeout
	}
	if c.Feed.BufferSize == 0 {
		c.Feed.BufferSize = DefaultBufferSize
	}

	// Session defaults
	if c.Session.IdleTimeout == 0 {
		c.Session.IdleTimeout = DefaultIdleTimeout
	}
	if c.Session.ReconnectBaseDelay == 0 {
		c.Session.ReconnectBaseDelay = DefaultReconnectBaseDelay
	}
	if c.Session.ReconnectMaxDelay == 0 {
		c.Session.ReconnectMaxDelay = DefaultReconnectMaxDelay
	}
	if c.Session.PrintEvery == 0 {
		c.Session.PrintEvery = DefaultPrintEvery
	}
	if c.Session.MaxRawLen == 0 {
		c.Session.MaxRawLen = DefaultMaxRawLen
	}

	// Sink defaults
	if c.Sink.Dir == "" {
		c.Sink.Dir = DefaultSinkDir
	}
	if c.Sink.Filename == "" {
		c.Sink.Filename = DefaultSinkFilename
	}

	// Metrics defaults. The port stays 0 so the listener is opt-in.
	if c.Metrics.Path == "" {
		c.Metrics.Path = DefaultMetricsPath
	}
}
