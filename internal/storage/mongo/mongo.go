package mongo

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/pribylovaa/comment-router/internal/config"
	"github.com/pribylovaa/comment-router/internal/storage"
	"go.mongodb.org/mongo-driver/bson"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	entitiesCollection = "entities"
	commentsCollection = "comments"
	defaultDBName      = "comment_router"
)

// Mongo — адаптер MongoDB: реализует storage.EntityStore и storage.CommentIndex.
type Mongo struct {
	client   *mongodriver.Client
	db       *mongodriver.Database
	entities *mongodriver.Collection
	comments *mongodriver.Collection
}

var (
	_ storage.EntityStore  = (*Mongo)(nil)
	_ storage.CommentIndex = (*Mongo)(nil)
)

// New подключается к MongoDB, проверяет соединение, подготавливает коллекции и индексы.
func New(ctx context.Context, cfg *config.Config) (*Mongo, error) {
	if cfg == nil {
		return nil, fmt.Errorf("mongo: nil config")
	}

	if cfg.DB.URL == "" {
		return nil, fmt.Errorf("mongo: empty cfg.DB.URL")
	}

	cli, err := mongodriver.Connect(ctx, options.Client().ApplyURI(cfg.DB.URL))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := cli.Ping(ctx, readpref.Primary()); err != nil {
		_ = cli.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	db := cli.Database(databaseFromURI(cfg.DB.URL))

	m := &Mongo{
		client:   cli,
		db:       db,
		entities: db.Collection(entitiesCollection),
		comments: db.Collection(commentsCollection),
	}

	if err := m.ensureIndexes(ctx); err != nil {
		_ = m.Close(ctx)
		return nil, err
	}

	return m, nil
}

// Close закрывает соединение с MongoDB.
func (m *Mongo) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}

// Ping проверяет доступность primary (используется в /healthz).
func (m *Mongo) Ping(ctx context.Context) error {
	return m.client.Ping(ctx, readpref.Primary())
}

// ensureIndexes создаёт индексы:
//   - сущности: уникальность (type, entity_id);
//   - комментарии: уникальный thread в пределах поля сущности (защита от гонок при выдаче ключа);
//   - обратный порядок дерева: поле + torder;
//   - счётчики и порядок flat-вывода: поле + status + created_at;
//   - поиск последнего ребёнка: parent_id + thread.
func (m *Mongo) ensureIndexes(ctx context.Context) error {
	entityModels := []mongodriver.IndexModel{
		{
			Keys:    bson.D{{Key: "type", Value: 1}, {Key: "entity_id", Value: 1}},
			Options: options.Index().SetName("type_entity_uq").SetUnique(true),
		},
	}

	if _, err := m.entities.Indexes().CreateMany(ctx, entityModels); err != nil {
		return fmt.Errorf("mongo ensure entity indexes: %w", err)
	}

	commentModels := []mongodriver.IndexModel{
		{
			Keys: bson.D{
				{Key: "entity_type", Value: 1},
				{Key: "entity_id", Value: 1},
				{Key: "field_name", Value: 1},
				{Key: "thread", Value: 1},
			},
			Options: options.Index().SetName("entity_field_thread_uq").SetUnique(true),
		},
		{
			Keys: bson.D{
				{Key: "entity_type", Value: 1},
				{Key: "entity_id", Value: 1},
				{Key: "field_name", Value: 1},
				{Key: "torder", Value: -1},
			},
			Options: options.Index().SetName("entity_field_torder_desc"),
		},
		{
			Keys: bson.D{
				{Key: "entity_type", Value: 1},
				{Key: "entity_id", Value: 1},
				{Key: "field_name", Value: 1},
				{Key: "status", Value: 1},
				{Key: "created_at", Value: 1},
			},
			Options: options.Index().SetName("entity_field_status_created"),
		},
		{
			Keys:    bson.D{{Key: "parent_id", Value: 1}, {Key: "thread", Value: -1}},
			Options: options.Index().SetName("parent_thread_desc"),
		},
	}

	if _, err := m.comments.Indexes().CreateMany(ctx, commentModels); err != nil {
		return fmt.Errorf("mongo ensure comment indexes: %w", err)
	}

	return nil
}

// databaseFromURI извлекает имя базы данных из URI-пути mongodb.
// Если оно отсутствует или не поддаётся разбору, возвращает значение по умолчанию.
func databaseFromURI(uri string) string {
	u, err := url.Parse(uri)
	if err == nil {
		if name := strings.Trim(u.Path, "/"); name != "" {
			return name
		}
	}

	return defaultDBName
}
