// Package models содержит доменные сущности comment-router.
package models

import (
	"time"

	"github.com/google/uuid"
)

// CommentStatus — состояние публикации комментария.
type CommentStatus int32

const (
	// Unpublished — комментарий ждёт модерации и виден только администраторам.
	Unpublished CommentStatus = 0
	// Published — комментарий опубликован.
	Published CommentStatus = 1
)

func (s CommentStatus) String() string {
	if s == Published {
		return "published"
	}

	return "unpublished"
}

// CommentRef — снимок комментария, загруженный из хранилища на время запроса.
// Важно:
//   - ID — ObjectID MongoDB в hex-представлении;
//   - EntityType/EntityID/FieldName — к какой сущности и какому полю привязан комментарий;
//   - ParentID — пустая строка для корневого комментария;
//   - Thread — ключ сортировки в дереве (см. пакет thread), корень = "01", ответ = "01.00".
type CommentRef struct {
	ID         string
	EntityType string
	EntityID   string
	FieldName  string
	ParentID   string
	Status     CommentStatus
	Thread     string
	UserID     uuid.UUID
	Body       string
	CreatedAt  time.Time
}

// IsReply сообщает, является ли комментарий ответом на другой комментарий.
func (c CommentRef) IsReply() bool {
	return c.ParentID != ""
}

// Entity возвращает ссылку на комментируемую сущность.
func (c CommentRef) Entity() EntityRef {
	return EntityRef{Type: c.EntityType, ID: c.EntityID}
}

// Draft — заготовка нового комментария, под которую вызывающая сторона рисует форму ответа.
type Draft struct {
	EntityType string
	EntityID   string
	FieldName  string
	ParentID   string
}
