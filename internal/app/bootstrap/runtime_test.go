package bootstrap

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appconfig "github.com/wolfman30/tennis-booking/internal/config"
	"github.com/wolfman30/tennis-booking/internal/session"
	"github.com/wolfman30/tennis-booking/pkg/logging"
)

func TestBuildRedisClientVerifiesConnection(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := &appconfig.Config{RedisAddr: mr.Addr()}

	client := BuildRedisClient(context.Background(), cfg, logging.New("error"), true)
	require.NotNil(t, client)
	t.Cleanup(func() { _ = client.Close() })
}

func TestBuildRedisClientUnavailable(t *testing.T) {
	cfg := &appconfig.Config{RedisAddr: "127.0.0.1:1"}
	assert.Nil(t, BuildRedisClient(context.Background(), cfg, logging.New("error"), true))
}

func TestBuildRedisClientDisabled(t *testing.T) {
	assert.Nil(t, BuildRedisClient(context.Background(), nil, nil, false))
	assert.Nil(t, BuildRedisClient(context.Background(), &appconfig.Config{RedisAddr: "redis:6379", UseMemorySessions: true}, nil, false))
}

func TestBuildSessionStore(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := &appconfig.Config{RedisAddr: mr.Addr(), SessionTTL: time.Hour}
	client := BuildRedisClient(context.Background(), cfg, logging.New("error"), true)
	require.NotNil(t, client)
	t.Cleanup(func() { _ = client.Close() })

	store, err := BuildSessionStore(cfg, client, logging.New("error"))
	require.NoError(t, err)
	assert.IsType(t, &session.RedisStore{}, store)

	store, err = BuildSessionStore(&appconfig.Config{Env: "development"}, nil, logging.New("error"))
	require.NoError(t, err)
	assert.IsType(t, &session.MemoryStore{}, store)
}

func TestBuildSessionStoreProductionNeedsRedis(t *testing.T) {
	_, err := BuildSessionStore(&appconfig.Config{Env: "production"}, nil, logging.New("error"))
	assert.Error(t, err)

	store, err := BuildSessionStore(&appconfig.Config{Env: "production", UseMemorySessions: true}, nil, logging.New("error"))
	require.NoError(t, err)
	assert.IsType(t, &session.MemoryStore{}, store)
}

func TestBuildSessionSigner(t *testing.T) {
	signer, err := BuildSessionSigner(&appconfig.Config{SessionSecret: "s3cret", SessionTTL: time.Hour}, nil)
	require.NoError(t, err)
	token, err := signer.Sign("abc")
	require.NoError(t, err)
	id, err := signer.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "abc", id)

	_, err = BuildSessionSigner(&appconfig.Config{Env: "production"}, logging.New("error"))
	assert.Error(t, err)

	signer, err = BuildSessionSigner(&appconfig.Config{Env: "development", SessionTTL: time.Hour}, logging.New("error"))
	require.NoError(t, err)
	assert.NotNil(t, signer)
}
