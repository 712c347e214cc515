package cache

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedis_UnavailableBypasses(t *testing.T) {
	r := &Redis{}
	ctx := context.Background()

	var out []string
	hit, err := r.GetJSON(ctx, "jobs:list:active", &out)
	require.NoError(t, err)
	assert.False(t, hit)

	assert.NoError(t, r.SetJSON(ctx, "jobs:list:active", []string{"a"}, 0))
	n, err := r.Incr(ctx, "jobs:list:gen")
	require.NoError(t, err)
	assert.Zero(t, n)
	n, err = r.GetInt(ctx, "jobs:list:gen")
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.NoError(t, r.Close())
	assert.Error(t, r.Ping(ctx))
	assert.False(t, r.Enabled())
}

func TestRedis_NilReceiverBypasses(t *testing.T) {
	var r *Redis
	hit, err := r.GetJSON(context.Background(), "k", &struct{}{})
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, defaultTTL, r.TTL())
}

func TestRedis_TTL(t *testing.T) {
	assert.Equal(t, defaultTTL, (&Redis{}).TTL())
	assert.Equal(t, time.Minute, (&Redis{ttl: time.Minute}).TTL())
}

func TestRedis_CommandErrorIsReturned(t *testing.T) {
	// Nothing listens on this port; commands fail fast.
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", DialTimeout: 100 * time.Millisecond, MaxRetries: -1})
	r := NewRedisWithClient(client, time.Minute, nil)
	defer r.Close()

	var out []string
	hit, err := r.GetJSON(context.Background(), "k", &out)
	assert.Error(t, err)
	assert.False(t, hit)
	assert.True(t, r.warnedUnavailable.Load())

	_, err = r.GetInt(context.Background(), "jobs:list:gen")
	assert.Error(t, err)
	_, err = r.Incr(context.Background(), "jobs:list:gen")
	assert.Error(t, err)
}
