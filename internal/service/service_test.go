package service

// Тесты сервисного слоя comment-router.
//
//  Проверяем:
//  - номер страницы пермалинка и адрес редиректа;
//  - порядок проверок права ответа (в том числе отсутствие обращений к хранилищу);
//  - математику страниц новых комментариев и ограничение пакета;
//  - маппинг ошибок storage -> service.
//
// Моки хранилищ сгенерированы в пакете /mocks:
//   mockgen -source=./internal/storage/storage.go -destination=./mocks/storage.go -package=mocks

import (
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/pribylovaa/comment-router/internal/config"
	"github.com/pribylovaa/comment-router/internal/models"
	"github.com/pribylovaa/comment-router/mocks"
)

// fixedNow — «текущее» время во всех тестах пакета.
var fixedNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

type fixture struct {
	svc      *Service
	entities *mocks.MockEntityStore
	index    *mocks.MockCommentIndex
	history  *mocks.MockHistoryStore
}

// newServiceWithMocks — поднимает сервис с моками хранилищ.
func newServiceWithMocks(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	f := fixture{
		entities: mocks.NewMockEntityStore(ctrl),
		index:    mocks.NewMockCommentIndex(ctrl),
		history:  mocks.NewMockHistoryStore(ctrl),
	}

	cfg := config.Config{
		Limits: config.LimitsConfig{
			NewLinksBatch: 100,
			NewWindow:     30 * 24 * time.Hour,
			MaxBody:       64,
		},
	}

	f.svc = New(f.entities, f.index, f.history, cfg)
	f.svc.now = func() time.Time { return fixedNow }

	return f
}

func article(id string, paging models.FieldPagingConfig, status models.FieldStatus) *models.Entity {
	return &models.Entity{
		Type:      "node",
		ID:        id,
		Path:      "/node/" + id,
		Published: true,
		Fields: map[string]models.CommentField{
			"comment": {Name: "comment", Status: status, Paging: paging},
		},
	}
}

func flat(perPage int64) models.FieldPagingConfig {
	return models.FieldPagingConfig{PerPage: perPage, Mode: models.Flat}
}

func threaded(perPage int64) models.FieldPagingConfig {
	return models.FieldPagingConfig{PerPage: perPage, Mode: models.Threaded}
}

func comment(id, entityID, parentID string, status models.CommentStatus) *models.CommentRef {
	return &models.CommentRef{
		ID:         id,
		EntityType: "node",
		EntityID:   entityID,
		FieldName:  "comment",
		ParentID:   parentID,
		Status:     status,
	}
}

func user(perms ...models.Permission) models.Actor {
	return models.Actor{ID: uuid.New(), Permissions: perms}
}
