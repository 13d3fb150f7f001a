// Package ratelimit counts attempts per key in fixed Redis windows.
package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "storefront:ratelimit:"

// The expiry is set only by the first hit so later attempts do not extend the window.
var incrWindow = redis.NewScript(`
local n = redis.call("INCR", KEYS[1])
if n == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return n
`)

type FixedWindow struct {
	client *redis.Client
	limit  int64
	window time.Duration
}

func New(client *redis.Client, limit int, window time.Duration) *FixedWindow {
	return &FixedWindow{client: client, limit: int64(limit), window: window}
}

// Connect parses redisURL and checks the server answers.
func Connect(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}
	return client, nil
}

// Allow counts one attempt for key and reports whether it fits the window.
// The window starts with the first attempt.
func (w *FixedWindow) Allow(ctx context.Context, key string) (bool, error) {
	n, err := incrWindow.Run(ctx, w.client, []string{keyPrefix + key}, w.window.Milliseconds()).Int64()
	if err != nil {
		return false, fmt.Errorf("ratelimit: %w", err)
	}
	return n <= w.limit, nil
}
