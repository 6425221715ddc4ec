package lock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

var ErrNotAcquired = errors.New("agenda lock not acquired")

// Locker serializa seções críticas por agenda (barbeiro + dia).
// É uma barreira barata na frente da transação; o lock de linha no
// banco continua sendo a garantia final.
type Locker interface {
	WithAgendaLock(ctx context.Context, barberID uint, day string, fn func(ctx context.Context) error) error
}

// ===============================
// Redis
// ===============================

type redisAgendaLocker struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisAgendaLocker(client *redis.Client, ttl time.Duration) Locker {
	return &redisAgendaLocker{
		client: client,
		ttl:    ttl,
	}
}

func (l *redisAgendaLocker) WithAgendaLock(ctx context.Context, barberID uint, day string, fn func(ctx context.Context) error) error {
	key := fmt.Sprintf("lock:agenda:%d:%s", barberID, day)
	token := uuid.NewString()

	ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
	if err != nil {
		return fmt.Errorf("acquire agenda lock: %w", err)
	}
	if !ok {
		return ErrNotAcquired
	}

	defer func() {
		_ = l.release(ctx, key, token)
	}()

	ctxWithTimeout, cancel := context.WithTimeout(ctx, l.ttl)
	defer cancel()

	return fn(ctxWithTimeout)
}

var unlockScript = redis.NewScript(`
local val = redis.call("GET", KEYS[1])
if val == ARGV[1] then
  return redis.call("DEL", KEYS[1])
else
  return 0
end
`)

func (l *redisAgendaLocker) release(ctx context.Context, key, token string) error {
	_, err := unlockScript.Run(ctx, l.client, []string{key}, token).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("release agenda lock: %w", err)
	}
	return nil
}

// ===============================
// Noop (sem Redis configurado)
// ===============================

type noopLocker struct{}

func NewNoopLocker() Locker {
	return noopLocker{}
}

func (noopLocker) WithAgendaLock(ctx context.Context, _ uint, _ string, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
