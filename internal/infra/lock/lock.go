package lock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrNotHeld возвращается при снятии блокировки, которой владеет другой процесс или срок которой истек
var ErrNotHeld = errors.New("lock: lock is not held")

// unlockScript удаляет ключ, только если он все еще принадлежит владельцу токена
var unlockScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
  return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisLock распределенная блокировка на SET NX с токеном владельца
type RedisLock struct {
	client *redis.Client
}

// NewRedisLock подключается к Redis и проверяет соединение
func NewRedisLock(addr, password string, db int) (*RedisLock, error) {
	const op = "lock.NewRedisLock"

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &RedisLock{client: client}, nil
}

// Lock пытается захватить key на ttl. Возвращает токен владельца и false, если ключ уже занят
func (r *RedisLock) Lock(ctx context.Context, key string, ttl time.Duration) (string, bool, error) {
	const op = "lock.RedisLock.Lock"

	token := uuid.NewString()
	ok, err := r.client.SetNX(ctx, lockKey(key), token, ttl).Result()
	if err != nil {
		return "", false, fmt.Errorf("%s: %w", op, err)
	}
	if !ok {
		return "", false, nil
	}

	return token, true, nil
}

// Unlock снимает блокировку, если она все еще принадлежит token
func (r *RedisLock) Unlock(ctx context.Context, key, token string) error {
	const op = "lock.RedisLock.Unlock"

	deleted, err := unlockScript.Run(ctx, r.client, []string{lockKey(key)}, token).Int()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if deleted == 0 {
		return fmt.Errorf("%s: %w", op, ErrNotHeld)
	}

	return nil
}

func (r *RedisLock) Close() error {
	return r.client.Close()
}

func lockKey(key string) string {
	return "lock:" + key
}

// NoopLock используется, когда Redis отключен: блокировка всегда захватывается
type NoopLock struct{}

func (NoopLock) Lock(context.Context, string, time.Duration) (string, bool, error) {
	return "", true, nil
}

func (NoopLock) Unlock(context.Context, string, string) error {
	return nil
}

func (NoopLock) Close() error {
	return nil
}

// StaffDayKey ключ блокировки расписания специалиста на календарный день
func StaffDayKey(staffID uuid.UUID, day time.Time) string {
	return fmt.Sprintf("appointment:staff:%s:%s", staffID, day.Format("2006-01-02"))
}

// StaffDayKeys ключи всех календарных дней в loc, которые задевает интервал [start, end), по порядку.
// Интервал, заканчивающийся ровно в полночь, следующий день не задевает.
func StaffDayKeys(staffID uuid.UUID, start, end time.Time, loc *time.Location) []string {
	if loc == nil {
		loc = time.UTC
	}

	last := end
	if end.After(start) {
		last = end.Add(-time.Nanosecond)
	}
	last = last.In(loc)

	y, m, d := start.In(loc).Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, loc)

	keys := []string{StaffDayKey(staffID, day)}
	for {
		day = day.AddDate(0, 0, 1)
		if day.After(last) {
			break
		}
		keys = append(keys, StaffDayKey(staffID, day))
	}
	return keys
}

// Locker захватывает и снимает блокировку по ключу
type Locker interface {
	Lock(ctx context.Context, key string, ttl time.Duration) (token string, ok bool, err error)
	Unlock(ctx context.Context, key, token string) error
}

// Held набор захваченных блокировок
type Held struct {
	locker Locker
	keys   []string
	tokens []string
}

// Keys возвращает захваченные ключи в порядке захвата
func (h *Held) Keys() []string {
	return h.keys
}

// LockAll захватывает keys по порядку. Если какой-то ключ занят или Redis вернул ошибку,
// уже захваченные ключи снимаются. Возвращает false, если ключ занят.
func LockAll(ctx context.Context, locker Locker, keys []string, ttl time.Duration) (*Held, bool, error) {
	held := &Held{locker: locker}

	for _, key := range keys {
		token, ok, err := locker.Lock(ctx, key, ttl)
		if err != nil || !ok {
			_ = held.Release(context.WithoutCancel(ctx))
			if err != nil {
				return nil, false, fmt.Errorf("lock %s: %w", key, err)
			}
			return nil, false, nil
		}
		held.keys = append(held.keys, key)
		held.tokens = append(held.tokens, token)
	}

	return held, true, nil
}

// Release снимает блокировки в обратном порядке
func (h *Held) Release(ctx context.Context) error {
	var errs []error
	for i := len(h.keys) - 1; i >= 0; i-- {
		if err := h.locker.Unlock(ctx, h.keys[i], h.tokens[i]); err != nil {
			errs = append(errs, fmt.Errorf("unlock %s: %w", h.keys[i], err))
		}
	}
	h.keys = nil
	h.tokens = nil
	return errors.Join(errs...)
}
