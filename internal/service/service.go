// service содержит бизнес-логику comment-router: разрешение пермалинков,
// проверку права ответа и подсчёт новых комментариев.
package service

import (
	"errors"
	"time"

	"github.com/pribylovaa/comment-router/internal/config"
	"github.com/pribylovaa/comment-router/internal/storage"
)

var (
	// ErrNotFound — комментарий, сущность или поле отсутствуют.
	ErrNotFound = errors.New("not found")
	// ErrAccessDenied — у пользователя нет доступа (просмотр сущности, модерация, аноним).
	ErrAccessDenied = errors.New("access denied")
	// ErrInvalidArgument — неверные входные параметры запроса к сервису.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrConflict — хранилище не смогло выдать уникальный ключ thread.
	ErrConflict = errors.New("conflict")
	// ErrInternal — внутренняя ошибка (стораж/БД/контекст/и т.д.).
	ErrInternal = errors.New("internal")
)

// Service — бизнес-логика comment-router.
// Состояния между запросами не хранит: номера страниц пересчитываются каждый раз.
type Service struct {
	entities storage.EntityStore
	index    storage.CommentIndex
	history  storage.HistoryStore
	cfg      config.Config
	now      func() time.Time
}

// New создает новый экземпляр Service.
func New(entities storage.EntityStore, index storage.CommentIndex, history storage.HistoryStore, cfg config.Config) *Service {
	return &Service{
		entities: entities,
		index:    index,
		history:  history,
		cfg:      cfg,
		now:      time.Now,
	}
}
