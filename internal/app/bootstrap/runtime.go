package bootstrap

import (
	"context"
	"crypto/rand"
	"crypto/tls"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"

	appconfig "github.com/wolfman30/tennis-booking/internal/config"
	"github.com/wolfman30/tennis-booking/internal/session"
	"github.com/wolfman30/tennis-booking/pkg/logging"
)

// BuildRedisClient returns a configured Redis client or nil when disabled.
// When verify is true, a ping is issued and failures return nil.
func BuildRedisClient(ctx context.Context, cfg *appconfig.Config, logger *logging.Logger, verify bool) *redis.Client {
	if cfg == nil || cfg.UseMemorySessions || strings.TrimSpace(cfg.RedisAddr) == "" {
		return nil
	}
	if logger == nil {
		logger = logging.Default()
	}
	if ctx == nil {
		ctx = context.Background()
	}

	redisOptions := &redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	}
	if cfg.RedisTLS {
		redisOptions.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	client := redis.NewClient(redisOptions)
	if !verify {
		return client
	}
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("redis not available", "error", err, "addr", cfg.RedisAddr)
		_ = client.Close()
		return nil
	}
	return client
}

// BuildSessionStore keeps sessions in Redis when a client is available.
// Production refuses to fall back to process memory, since sessions would
// not survive a restart or be shared between replicas.
func BuildSessionStore(cfg *appconfig.Config, client *redis.Client, logger *logging.Logger) (session.Store, error) {
	if cfg == nil {
		return nil, fmt.Errorf("bootstrap: config is required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	if client != nil {
		logger.Info("session store: redis", "addr", cfg.RedisAddr, "ttl", cfg.SessionTTL)
		return session.NewRedisStore(client, cfg.SessionTTL), nil
	}
	if cfg.IsProduction() && !cfg.UseMemorySessions {
		return nil, fmt.Errorf("bootstrap: redis unavailable and memory sessions not enabled")
	}
	logger.Warn("session store: memory", "ttl", cfg.SessionTTL)
	return session.NewMemoryStore(cfg.SessionTTL), nil
}

// BuildSessionSigner returns the cookie signer. Outside production a
// missing SESSION_SECRET is replaced by a random one, which logs every
// visitor out on restart.
func BuildSessionSigner(cfg *appconfig.Config, logger *logging.Logger) (*session.Signer, error) {
	if cfg == nil {
		return nil, fmt.Errorf("bootstrap: config is required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	secret := strings.TrimSpace(cfg.SessionSecret)
	if secret == "" {
		if cfg.IsProduction() {
			return nil, fmt.Errorf("bootstrap: SESSION_SECRET is required in production")
		}
		buf := make([]byte, 32)
		if _, err := rand.Read(buf); err != nil {
			return nil, fmt.Errorf("bootstrap: generate session secret: %w", err)
		}
		secret = hex.EncodeToString(buf)
		logger.Warn("SESSION_SECRET not set; using an ephemeral secret")
	}
	return session.NewSigner(secret, cfg.SessionTTL)
}
