package stream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/clobwatch/polymarket-data/internal/market"
	"github.com/clobwatch/polymarket-data/internal/metrics"
	"github.com/clobwatch/polymarket-data/internal/model"
	"github.com/clobwatch/polymarket-data/internal/quote"
	"github.com/clobwatch/polymarket-data/internal/sink"
)

// Sink persists finished records.
type Sink interface {
	Write(rec *model.Record) error
}

// Session records one market's order-book feed. It dials the CLOB
// endpoint, subscribes with the market's token IDs, and turns book frames
// into records. Connection failures reset the session with exponential
// backoff; persistence failures end it.
type Session struct {
	cfg     SessionConfig
	desc    *market.Descriptor
	out     Sink
	metrics *metrics.Registry
	logger  *slog.Logger

	mu    sync.Mutex
	stats Stats
}

// NewSession creates a recording session. reg may be nil to disable
// instrumentation.
func NewSession(cfg SessionConfig, desc *market.Descriptor, out Sink, reg *metrics.Registry, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}

	return &Session{
		cfg:     cfg,
		desc:    desc,
		out:     out,
		metrics: reg,
		logger:  logger,
	}
}

// Run drives the connect/consume/reconnect loop until ctx is canceled or a
// record fails to persist. Lost data is unrecoverable, so a sink failure
// is fatal; every connection failure is retried forever.
func (s *Session) Run(ctx context.Context) error {
	s.logger.Info("starting feed session",
		"url", s.cfg.Client.URL,
		"slug", s.desc.Slug,
		"assets", len(s.desc.AssetIDs),
	)

	delay := s.cfg.ReconnectBase

	for {
		connected, err := s.runOnce(ctx)
		if connected {
			delay = s.cfg.ReconnectBase
		}

		var writeErr *sink.WriteError
		if errors.As(err, &writeErr) {
			return err
		}
		if ctx.Err() != nil {
			return nil
		}

		s.logger.Warn("feed disconnected",
			"error", err,
			"reconnect_in", delay,
		)
		s.metrics.Reconnect()
		s.noteReconnect()

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(delay):
		}

		delay = nextDelay(delay, s.cfg.ReconnectMax)
	}
}

// runOnce dials, subscribes, and consumes frames until the connection
// fails. connected reports whether the dial itself succeeded, which is
// what resets the reconnect backoff.
func (s *Session) runOnce(ctx context.Context) (connected bool, err error) {
	client := NewClient(s.cfg.Client, s.logger)

	if err := client.Connect(ctx); err != nil {
		return false, err
	}
	defer client.Close()

	s.setConnected(true)
	s.metrics.SetConnectionUp(true)
	defer func() {
		s.setConnected(false)
		s.metrics.SetConnectionUp(false)
	}()

	if err := s.subscribe(client); err != nil {
		return true, err
	}

	s.logger.Info("subscribed, waiting for messages",
		"assets", len(s.desc.AssetIDs),
	)

	return true, s.consume(ctx, client)
}

func (s *Session) subscribe(client Client) error {
	data, err := json.Marshal(subscribeMessage{
		Type:     "MARKET",
		AssetIDs: s.desc.AssetIDs,
	})
	if err != nil {
		return fmt.Errorf("marshal subscribe: %w", err)
	}
	return client.Send(data)
}

// consume pulls frames off the connection until it fails or ctx ends. A
// quiet connection logs a heartbeat every IdleTimeout so operators can
// tell silence from a hang.
func (s *Session) consume(ctx context.Context, client Client) error {
	idle := time.NewTimer(s.cfg.IdleTimeout)
	defer idle.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case err := <-client.Errors():
			return err

		case msg := <-client.Messages():
			if err := s.handleFrame(msg); err != nil {
				return err
			}
			if !idle.Stop() {
				select {
				case <-idle.C:
				default:
				}
			}
			idle.Reset(s.cfg.IdleTimeout)

		case <-idle.C:
			s.logger.Info("heartbeat, connected and waiting for updates")
			s.metrics.Heartbeat()
			idle.Reset(s.cfg.IdleTimeout)
		}
	}
}

// handleFrame turns one raw frame into records, one per update it holds.
// Only book updates are persisted; everything is counted and logged.
func (s *Session) handleFrame(msg TimestampedMessage) error {
	s.metrics.FrameReceived()
	s.noteFrame(msg.ReceivedAt)

	updates, ok := decodeFrame(msg.Data)
	if !ok {
		s.metrics.DecodeError()
		return nil
	}

	raw, truncated := truncateRaw(msg.Data, s.cfg.MaxRawLen)

	for i := range updates {
		u := &updates[i]

		var bb, ba, mid *float64
		if u.EventType == "book" {
			bb = bestPrice(u.Bids, quote.BestBid)
			ba = bestPrice(u.Asks, quote.BestAsk)
			mid = quote.Midpoint(bb, ba)
		}

		procEnd := time.Now()
		procMS := float64(procEnd.Sub(msg.ReceivedAt)) / float64(time.Millisecond)

		var netMS, e2eMS *float64
		if u.HasFeedTS {
			n := float64(msg.ReceivedAt.UnixNano())/1e6 - float64(u.FeedTS)
			e := float64(procEnd.UnixNano())/1e6 - float64(u.FeedTS)
			netMS, e2eMS = &n, &e
		}

		rec := &model.Record{
			CapturedAt:    procEnd,
			Slug:          s.desc.Slug,
			Question:      s.desc.Question,
			AssetID:       u.AssetID,
			EventType:     u.EventType,
			BestBid:       bb,
			BestAsk:       ba,
			Mid:           mid,
			FeedTSRaw:     u.FeedTSRaw,
			RecvTSNS:      msg.ReceivedAt.UnixNano(),
			ProcEndTSNS:   procEnd.UnixNano(),
			ProcLatencyMS: procMS,
			NetLatencyMS:  netMS,
			E2ELatencyMS:  e2eMS,
			RawJSON:       raw,
			RawTruncated:  truncated,
		}

		if u.EventType == "book" {
			if err := s.out.Write(rec); err != nil {
				return err
			}
			s.metrics.RecordWritten()
			s.noteWritten()
		}

		s.metrics.UpdateProcessed(u.EventType)
		if netMS != nil {
			s.metrics.ObserveNetLatency(*netMS)
		}

		n := s.noteUpdate()
		if s.cfg.PrintEvery > 0 && n%int64(s.cfg.PrintEvery) == 0 {
			s.logger.Info("update",
				"n", n,
				"type", u.EventType,
				"asset", u.AssetID,
				"bb", floatArg(bb),
				"ba", floatArg(ba),
				"mid", floatArg(mid),
				"net_ms", floatArg(netMS),
				"proc_ms", procMS,
			)
		}
	}

	return nil
}

// Stats returns a snapshot of session progress for health reporting.
func (s *Session) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats
}

func (s *Session) setConnected(up bool) {
	s.mu.Lock()
	s.stats.Connected = up
	s.mu.Unlock()
}

func (s *Session) noteFrame(at time.Time) {
	s.mu.Lock()
	s.stats.Frames++
	s.stats.LastMessageAt = at
	s.mu.Unlock()
}

func (s *Session) noteWritten() {
	s.mu.Lock()
	s.stats.RecordsWritten++
	s.mu.Unlock()
}

func (s *Session) noteReconnect() {
	s.mu.Lock()
	s.stats.Reconnects++
	s.mu.Unlock()
}

func (s *Session) noteUpdate() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stats.Updates++
	return s.stats.Updates
}

// nextDelay doubles the backoff up to the cap.
func nextDelay(current, max time.Duration) time.Duration {
	next := current * 2
	if next > max {
		return max
	}
	return next
}

// truncateRaw caps the raw frame kept on each record. Full books on busy
// markets serialize to hundreds of kilobytes.
func truncateRaw(data []byte, max int) (string, bool) {
	if max <= 0 || len(data) <= max {
		return string(data), false
	}
	return string(data[:max]), true
}

func bestPrice(raw json.RawMessage, pick func([]quote.Level) (quote.Level, bool)) *float64 {
	lvl, ok := pick(quote.ParseLevels(raw))
	if !ok {
		return nil
	}
	return &lvl.Price
}

// floatArg renders an optional float for logging.
func floatArg(p *float64) any {
	if p == nil {
		return nil
	}
	return *p
}
