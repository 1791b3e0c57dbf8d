package storage

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/pribylovaa/comment-router/internal/models"
)

var (
	// ErrNotFound — сущность или комментарий отсутствуют в хранилище.
	ErrNotFound = errors.New("not found")
	// ErrConflict — конфликт уникальности (например, ключа thread).
	ErrConflict = errors.New("conflict")
	// ErrParentNotFound — указан parent_id, но родитель не найден.
	ErrParentNotFound = errors.New("parent not found")
)

// EntityStore — загрузка сущностей и комментариев, проверка доступа и изменение статуса.
type EntityStore interface {
	// Entity загружает комментируемую сущность. Если её нет — ErrNotFound.
	Entity(ctx context.Context, ref models.EntityRef) (*models.Entity, error)

	// Comment загружает комментарий по идентификатору. Если его нет — ErrNotFound.
	// Некорректный формат id трактуется как «нет такой записи».
	Comment(ctx context.Context, id string) (*models.CommentRef, error)

	// CommentFields возвращает имена полей комментариев, объявленных для типа сущности,
	// в алфавитном порядке. Пустой список — у типа нет полей комментариев.
	CommentFields(ctx context.Context, entityType string) ([]string, error)

	// CanAccess решает, может ли actor выполнить action над entity.
	CanAccess(ctx context.Context, entity models.Entity, action models.Action, actor models.Actor) (bool, error)

	// SetPublished публикует комментарий. Если его нет — ErrNotFound.
	SetPublished(ctx context.Context, commentID string) error

	// CreateComment сохраняет новый комментарий; ID, Thread и CreatedAt вычисляет хранилище.
	// Возможные ошибки: ErrParentNotFound, ErrConflict.
	CreateComment(ctx context.Context, comment models.CommentRef) (*models.CommentRef, error)
}

// CommentIndex — порядковые номера и счётчики комментариев в порядке вывода.
type CommentIndex interface {
	// Position — число видимых комментариев того же поля, стоящих перед commentID
	// в заданном порядке (нумерация с нуля). Если комментария нет — ErrNotFound.
	Position(ctx context.Context, commentID string, order models.Ordering) (int64, error)

	// Count — число опубликованных комментариев поля сущности.
	Count(ctx context.Context, ref models.EntityRef, fieldName string) (int64, error)

	// CountNewSince — число опубликованных комментариев, созданных строго после since.
	CountNewSince(ctx context.Context, ref models.EntityRef, fieldName string, since time.Time) (int64, error)

	// FirstNewPosition — порядковый номер первого (в порядке вывода) из newCount
	// самых свежих опубликованных комментариев.
	FirstNewPosition(ctx context.Context, ref models.EntityRef, fieldName string, newCount int64, order models.Ordering) (int64, error)
}

// HistoryStore — время последнего просмотра сущности пользователем.
type HistoryStore interface {
	// LastViewed возвращает время последнего просмотра или нулевое время, если просмотров не было.
	LastViewed(ctx context.Context, userID uuid.UUID, ref models.EntityRef) (time.Time, error)

	// MarkViewed запоминает время просмотра.
	MarkViewed(ctx context.Context, userID uuid.UUID, ref models.EntityRef, at time.Time) error
}
