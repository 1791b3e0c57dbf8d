// Package redis хранит историю просмотров сущностей в Redis.
package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/pribylovaa/comment-router/internal/config"
	"github.com/pribylovaa/comment-router/internal/models"
	"github.com/pribylovaa/comment-router/internal/storage"

	goredis "github.com/redis/go-redis/v9"
)

// History реализует storage.HistoryStore.
// Ключ: <prefix><user_id>:<entity_type>:<entity_id>, значение — unix-время в миллисекундах.
// Запись живёт NewWindow: после этого все комментарии сущности перестают считаться новыми.
type History struct {
	client *goredis.Client
	prefix string
	ttl    time.Duration
}

var _ storage.HistoryStore = (*History)(nil)

// New подключается к Redis по cfg.Redis.URL и проверяет соединение.
func New(ctx context.Context, cfg *config.Config) (*History, error) {
	if cfg == nil {
		return nil, fmt.Errorf("redis: nil config")
	}

	opts, err := goredis.ParseURL(cfg.Redis.URL)
	if err != nil {
		return nil, fmt.Errorf("redis parse url: %w", err)
	}

	cli := goredis.NewClient(opts)
	if err := cli.Ping(ctx).Err(); err != nil {
		_ = cli.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return NewWithClient(cli, cfg.Redis.Prefix, cfg.Limits.NewWindow), nil
}

// NewWithClient оборачивает готовый клиент.
func NewWithClient(cli *goredis.Client, prefix string, ttl time.Duration) *History {
	return &History{client: cli, prefix: prefix, ttl: ttl}
}

// Close закрывает клиент.
func (h *History) Close() error {
	return h.client.Close()
}

// Ping проверяет доступность Redis (используется в /healthz).
func (h *History) Ping(ctx context.Context) error {
	return h.client.Ping(ctx).Err()
}

func (h *History) key(userID uuid.UUID, ref models.EntityRef) string {
	return h.prefix + userID.String() + ":" + ref.Type + ":" + ref.ID
}

// LastViewed возвращает время последнего просмотра; нулевое время, если записи нет.
func (h *History) LastViewed(ctx context.Context, userID uuid.UUID, ref models.EntityRef) (time.Time, error) {
	const op = "storage/redis/LastViewed"

	raw, err := h.client.Get(ctx, h.key(userID, ref)).Result()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return time.Time{}, nil
		}

		return time.Time{}, fmt.Errorf("%s: %w", op, err)
	}

	ms, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s: bad value %q: %w", op, raw, err)
	}

	return time.UnixMilli(ms).UTC(), nil
}

// markViewedScript записывает ARGV[1] (мс), только если сохранённое значение отсутствует или меньше.
// ARGV[2] — TTL в мс, 0 — без срока.
var markViewedScript = goredis.NewScript(`
local prev = tonumber(redis.call('GET', KEYS[1]))
if prev and prev >= tonumber(ARGV[1]) then
	return 0
end
if tonumber(ARGV[2]) > 0 then
	redis.call('SET', KEYS[1], ARGV[1], 'PX', ARGV[2])
else
	redis.call('SET', KEYS[1], ARGV[1])
end
return 1
`)

// MarkViewed запоминает время просмотра. Более раннее время не затирает уже сохранённое,
// сравнение и запись выполняются в Redis одной командой.
func (h *History) MarkViewed(ctx context.Context, userID uuid.UUID, ref models.EntityRef, at time.Time) error {
	const op = "storage/redis/MarkViewed"

	ms := at.UTC().UnixMilli()
	if err := markViewedScript.Run(ctx, h.client, []string{h.key(userID, ref)}, ms, h.ttl.Milliseconds()).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
