package linkcheck

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"

	"github.com/statickit/siteconf/internal/config"
)

// BrokenLinkEvent is published for every target that fails verification.
type BrokenLinkEvent struct {
	URL       string    `json:"url"`
	Source    string    `json:"source"`
	Status    int       `json:"status,omitempty"`
	Error     string    `json:"error,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// ReloadEvent is published when the daemon accepts a new configuration.
type ReloadEvent struct {
	RevisionID string    `json:"revision_id"`
	SourcePath string    `json:"source_path"`
	SHA256     string    `json:"sha256"`
	GitCommit  string    `json:"git_commit,omitempty"`
	Warnings   []string  `json:"warnings,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

// NATSClient manages the NATS connection and KV bucket used by link checking
// and reload notifications.
type NATSClient struct {
	conn          *nats.Conn
	js            jetstream.JetStream
	kv            jetstream.KeyValue
	cfg           *config.LinkCheckConfig
	subject       string
	reloadSubject string
	kvBucket      string
}

// NewNATSClient connects to NATS and ensures the link cache bucket exists.
func NewNATSClient(cfg *config.LinkCheckConfig) (*NATSClient, error) {
	if cfg == nil {
		return nil, fmt.Errorf("link check config is required")
	}

	conn, err := nats.Connect(cfg.NATSURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	js, err := jetstream.New(conn)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to create JetStream context: %w", err)
	}

	client := &NATSClient{
		conn:          conn,
		js:            js,
		cfg:           cfg,
		subject:       cfg.Subject,
		reloadSubject: cfg.ReloadSubject,
		kvBucket:      cfg.KVBucket,
	}

	if err := client.initKVBucket(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to initialize KV bucket: %w", err)
	}

	slog.Info("NATS client initialized",
		"url", cfg.NATSURL,
		"subject", cfg.Subject,
		"kv_bucket", cfg.KVBucket)

	return client, nil
}

// initKVBucket creates or gets the KV bucket for the link cache.
func (c *NATSClient) initKVBucket() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	kv, err := c.js.KeyValue(ctx, c.kvBucket)
	if err == nil {
		c.kv = kv
		return nil
	}

	kv, err = c.js.CreateKeyValue(ctx, jetstream.KeyValueConfig{
		Bucket:      c.kvBucket,
		Description: "Link verification cache for siteconf",
		MaxBytes:    16 * 1024 * 1024,
		History:     1, // Keep only latest value
	})
	if err != nil {
		return fmt.Errorf("failed to create KV bucket: %w", err)
	}

	c.kv = kv
	slog.Info("Created KV bucket for link cache", "bucket", c.kvBucket)
	return nil
}

// PublishBrokenLink publishes a broken link event.
func (c *NATSClient) PublishBrokenLink(event *BrokenLinkEvent) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	event.Timestamp = time.Now()

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	if _, err := c.js.Publish(ctx, c.subject, data); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	slog.Debug("Published broken link event",
		"url", event.URL,
		"source", event.Source)

	return nil
}

// PublishReload publishes a configuration reload event.
func (c *NATSClient) PublishReload(event *ReloadEvent) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	event.Timestamp = time.Now()

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	if _, err := c.js.Publish(ctx, c.reloadSubject, data); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	slog.Debug("Published reload event", "revision", event.RevisionID)
	return nil
}

// CacheEntry represents a cached link verification result.
type CacheEntry struct {
	URL         string    `json:"url"`
	Status      int       `json:"status"`
	IsValid     bool      `json:"is_valid"`
	Error       string    `json:"error,omitempty"`
	LastChecked time.Time `json:"last_checked"`
}

// GetCachedResult retrieves a cached link verification result; nil when the
// URL has no cache entry.
func (c *NATSClient) GetCachedResult(url string) (*CacheEntry, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	entry, err := c.kv.Get(ctx, cacheKey(url))
	if err != nil {
		if err == jetstream.ErrKeyNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get cache entry: %w", err)
	}

	var cached CacheEntry
	if err := json.Unmarshal(entry.Value(), &cached); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cache entry: %w", err)
	}

	return &cached, nil
}

// SetCachedResult stores a link verification result in cache.
func (c *NATSClient) SetCachedResult(entry *CacheEntry) error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	entry.LastChecked = time.Now()

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal cache entry: %w", err)
	}

	if _, err := c.kv.Put(ctx, cacheKey(entry.URL), data); err != nil {
		return fmt.Errorf("failed to put cache entry: %w", err)
	}

	return nil
}

// IsCacheValid checks whether a cache entry is still fresh. Failures expire
// faster than successes so recovering links are re-verified sooner.
func (c *NATSClient) IsCacheValid(entry *CacheEntry) bool {
	if entry == nil {
		return false
	}

	var ttl time.Duration
	if entry.IsValid {
		ttl, _ = time.ParseDuration(c.cfg.CacheTTL)
	} else {
		ttl, _ = time.ParseDuration(c.cfg.CacheTTLFailures)
	}

	return time.Since(entry.LastChecked) < ttl
}

// cacheKey derives a KV-safe key from a URL; raw URLs contain characters the
// KV key syntax rejects.
func cacheKey(url string) string {
	sum := sha256.Sum256([]byte(url))
	return hex.EncodeToString(sum[:])
}

// Close closes the NATS connection.
func (c *NATSClient) Close() error {
	if c.conn != nil {
		c.conn.Close()
	}
	return nil
}
