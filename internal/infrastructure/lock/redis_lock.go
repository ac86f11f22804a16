package lock

import (
	"context"
	"fmt"
	"time"

	"grant_portal/internal/usecase/interfaces"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix  = "grant:lock:"
	defaultTTL = 2 * time.Minute
)

// releaseScript deletes the key only if this holder still owns it, so a lock
// that expired and was taken by someone else is left alone.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisActionLock guards one in-flight action per key with SET NX PX.
type RedisActionLock struct {
	client *redis.Client
	ttl    time.Duration
}

var _ interfaces.IActionLock = (*RedisActionLock)(nil)

func NewRedisActionLock(client *redis.Client, ttl time.Duration) *RedisActionLock {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &RedisActionLock{client: client, ttl: ttl}
}

func (l *RedisActionLock) Acquire(ctx context.Context, key string) (interfaces.ReleaseFunc, error) {
	fullKey := keyPrefix + key
	token := uuid.NewString()

	ok, err := l.client.SetNX(ctx, fullKey, token, l.ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("acquire lock %s: %w", key, err)
	}
	if !ok {
		return nil, interfaces.ErrActionInProgress
	}

	return func(ctx context.Context) error {
		if err := releaseScript.Run(ctx, l.client, []string{fullKey}, token).Err(); err != nil {
			return fmt.Errorf("release lock %s: %w", key, err)
		}
		return nil
	}, nil
}

// NewRedisClient builds the client and checks the connection.
func NewRedisClient(ctx context.Context, addr, password string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis %s: %w", addr, err)
	}
	return client, nil
}
