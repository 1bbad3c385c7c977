package config

import "time"

// RecorderConfig is the root configuration for a recorder instance.
type RecorderConfig struct {
	Instance InstanceConfig `yaml:"instance"`
	Gamma    GammaConfig    `yaml:"gamma"`
	Feed     FeedConfig     `yaml:"feed"`
	Session  SessionConfig  `yaml:"session"`
	Sink     SinkConfig     `yaml:"sink"`
	Metrics  MetricsConfig  `yaml:"metrics"`
}

// InstanceConfig identifies this recorder run in logs and metrics.
type InstanceConfig struct {
	ID string `yaml:"id"`
}

// GammaConfig holds Gamma REST API settings.
type GammaConfig struct {
	BaseURL    string        `yaml:"base_url"`
	Timeout    time.Duration `yaml:"timeout"`
	MaxRetries int           `yaml:"max_retries"`
	RateLimit  float64       `yaml:"rate_limit"` // requests per second
	RateBurst  int           `yaml:"rate_burst"`
}

// FeedConfig holds CLOB WebSocket connection settings.
type FeedConfig struct {
	URL              string        `yaml:"url"`
	HandshakeTimeout time.Duration `yaml:"handshake_timeout"`
	PingInterval     time.Duration `yaml:"ping_interval"`
	PongTimeout      time.Duration `yaml:"pong_timeout"`
	CloseTimeout     time.Duration `yaml:"close_timeout"`
	WriteTimeout     time.Duration `yaml:"write_timeout"`
	BufferSize       int           `yaml:"buffer_size"`
}

// SessionConfig holds recording loop settings.
type SessionConfig struct {
	IdleTimeout        time.Duration `yaml:"idle_timeout"`
	ReconnectBaseDelay time.Duration `yaml:"reconnect_base_delay"`
	ReconnectMaxDelay  time.Duration `yaml:"reconnect_max_delay"`
	PrintEvery         int           `yaml:"print_every"`
	MaxRawLen          int           `yaml:"max_raw_len"`
}

// SinkConfig holds CSV output settings.
type SinkConfig struct {
	Dir      string `yaml:"dir"`
	Filename string `yaml:"filename"`
}

// MetricsConfig holds the ops HTTP listener settings. Port 0 leaves the
// listener off.
type MetricsConfig struct {
	Port int    `yaml:"port"`
	Path string `yaml:"path"`
}
