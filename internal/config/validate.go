package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate checks that all required fields are set and values are valid.
func (c *RecorderConfig) Validate() error {
	if c.Gamma.BaseURL == "" {
		return errors.New("gamma.base_url is required")
	}
	if c.Gamma.MaxRetries < 0 {
		return errors.New("gamma.max_retries must be >= 0")
	}
	if c.Gamma.RateLimit <= 0 {
		return errors.New("gamma.rate_limit must be > 0")
	}
	if c.Gamma.RateBurst < 1 {
		return errors.New("gamma.rate_burst must be >= 1")
	}

	if !strings.HasPrefix(c.Feed.URL, "ws://") && !strings.HasPrefix(c.Feed.URL, "wss://") {
		return fmt.Errorf("feed.url must be a ws:// or wss:// URL, got %q", c.Feed.URL)
	}
	if c.Feed.BufferSize < 1 {
		return errors.New("feed.buffer_size must be >= 1")
	}
	if c.Feed.PingInterval <= 0 {
		return errors.New("feed.ping_interval must be > 0")
	}

	if c.Session.ReconnectBaseDelay <= 0 {
		return errors.New("session.reconnect_base_delay must be > 0")
	}
	if c.Session.ReconnectMaxDelay < c.Session.ReconnectBaseDelay {
		return fmt.Errorf("session.reconnect_max_delay (%v) cannot be less than reconnect_base_delay (%v)",
			c.Session.ReconnectMaxDelay, c.Session.ReconnectBaseDelay)
	}
	if c.Session.PrintEvery < 0 {
		return errors.New("session.print_every must be >= 0")
	}
	if c.Session.MaxRawLen < 0 {
		return errors.New("session.max_raw_len must be >= 0")
	}

	if c.Sink.Dir == "" {
		return errors.New("sink.dir is required")
	}
	if c.Sink.Filename == "" {
		return errors.New("sink.filename is required")
	}

	if c.Metrics.Port < 0 || c.Metrics.Port > 65535 {
		return fmt.Errorf("metrics.port must be between 0 and 65535, got %d", c.Metrics.Port)
	}

	return nil
}
