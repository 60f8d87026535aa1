package store

import (
	"os"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedis_Key(t *testing.T) {
	tests := []struct {
		prefix, name, want string
	}{
		{prefix: "confessions", name: "secret:abc", want: "confessions:secret:abc"},
		{prefix: "confessions:", name: "confessions", want: "confessions:confessions"},
		{prefix: "", name: "secrets:exp", want: "secrets:exp"},
	}
	for _, tt := range tests {
		t.Run(tt.prefix+"|"+tt.name, func(t *testing.T) {
			r := &Redis{prefix: tt.prefix}
			assert.Equal(t, tt.want, r.key(tt.name))
		})
	}
}

// TestRedis runs against a real redis, set TEST_REDIS_ADDR to enable.
// Each subtest works under its own key prefix and removes its keys on cleanup.
func TestRedis(t *testing.T) {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR not set")
	}

	runEngineTests(t, func(t *testing.T) engine {
		prefix := "test-" + GenerateToken()[:8] + ":"
		r, err := NewRedis(&redis.Options{Addr: addr}, prefix)
		require.NoError(t, err)
		t.Cleanup(func() {
			keys, err := r.client.Keys(t.Context(), prefix+"*").Result()
			if err == nil && len(keys) > 0 {
				_ = r.client.Del(t.Context(), keys...).Err()
			}
			_ = r.Close()
		})
		return r
	})
}
