package mongo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pribylovaa/comment-router/internal/models"
	"github.com/pribylovaa/comment-router/internal/storage"
	"github.com/pribylovaa/comment-router/internal/thread"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// maxThreadAttempts — сколько раз пытаемся выдать ключ thread при гонке вставок.
const maxThreadAttempts = 5

// commentDoc — документ коллекции comments.
type commentDoc struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	EntityType string             `bson:"entity_type"`
	EntityID   string             `bson:"entity_id"`
	FieldName  string             `bson:"field_name"`
	ParentID   string             `bson:"parent_id"`
	Status     int32              `bson:"status"`
	Thread     string             `bson:"thread"`
	// TOrder — thread.DescKey(Thread), порядок вывода «сначала новые».
	TOrder     string             `bson:"torder"`
	UserID     string             `bson:"user_id"`
	Body       string             `bson:"body"`
	CreatedAt  time.Time          `bson:"created_at"`
}

func (d commentDoc) toModel() models.CommentRef {
	uid, _ := uuid.Parse(d.UserID)

	return models.CommentRef{
		ID:         d.ID.Hex(),
		EntityType: d.EntityType,
		EntityID:   d.EntityID,
		FieldName:  d.FieldName,
		ParentID:   d.ParentID,
		Status:     models.CommentStatus(d.Status),
		Thread:     d.Thread,
		UserID:     uid,
		Body:       d.Body,
		CreatedAt:  d.CreatedAt.UTC(),
	}
}

// fieldFilter — фильтр «все комментарии поля сущности».
func fieldFilter(ref models.EntityRef, fieldName string) bson.D {
	return bson.D{
		{Key: "entity_type", Value: ref.Type},
		{Key: "entity_id", Value: ref.ID},
		{Key: "field_name", Value: fieldName},
	}
}

func publishedOnly(filter bson.D) bson.D {
	return append(filter, bson.E{Key: "status", Value: int32(models.Published)})
}

// findComment ищет документ по hex-id. Некорректный id == ErrNotFound.
func (m *Mongo) findComment(ctx context.Context, id string) (*commentDoc, error) {
	oid, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return nil, storage.ErrNotFound
	}

	var doc commentDoc
	if err := m.comments.FindOne(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&doc); err != nil {
		if errors.Is(err, mongodriver.ErrNoDocuments) {
			return nil, storage.ErrNotFound
		}

		return nil, err
	}

	return &doc, nil
}

// Comment загружает комментарий по идентификатору.
func (m *Mongo) Comment(ctx context.Context, id string) (*models.CommentRef, error) {
	const op = "storage/mongo/Comment"

	doc, err := m.findComment(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	c := doc.toModel()
	return &c, nil
}

// SetPublished публикует комментарий. Повторная публикация не ошибка.
func (m *Mongo) SetPublished(ctx context.Context, commentID string) error {
	const op = "storage/mongo/SetPublished"

	oid, err := primitive.ObjectIDFromHex(strings.TrimSpace(commentID))
	if err != nil {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	res, err := m.comments.UpdateByID(ctx, oid, bson.D{
		{Key: "$set", Value: bson.D{{Key: "status", Value: int32(models.Published)}}},
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if res.MatchedCount == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return nil
}

// CreateComment сохраняет новый комментарий и выдаёт ему ключ thread.
// Ответ наследует сущность и поле родителя; родитель из другой сущности == ErrParentNotFound.
// При конфликте уникального ключа thread вставка повторяется до maxThreadAttempts раз.
func (m *Mongo) CreateComment(ctx context.Context, comm models.CommentRef) (*models.CommentRef, error) {
	const op = "storage/mongo/CreateComment"

	doc := commentDoc{
		EntityType: comm.EntityType,
		EntityID:   comm.EntityID,
		FieldName:  comm.FieldName,
		ParentID:   strings.TrimSpace(comm.ParentID),
		Status:     int32(comm.Status),
		UserID:     comm.UserID.String(),
		Body:       comm.Body,
		// MongoDB DateTime хранит миллисекунды.
		CreatedAt: time.Now().UTC().Truncate(time.Millisecond),
	}

	var parent *commentDoc
	if doc.ParentID != "" {
		p, err := m.findComment(ctx, doc.ParentID)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return nil, fmt.Errorf("%s: %w", op, storage.ErrParentNotFound)
			}

			return nil, fmt.Errorf("%s: find parent: %w", op, err)
		}

		if p.EntityType != doc.EntityType || p.EntityID != doc.EntityID || p.FieldName != doc.FieldName {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrParentNotFound)
		}
		parent = p
	}

	for attempt := 0; attempt < maxThreadAttempts; attempt++ {
		key, err := m.nextThread(ctx, doc, parent)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		doc.Thread = key
		doc.TOrder = thread.DescKey(key)

		res, err := m.comments.InsertOne(ctx, doc)
		if err != nil {
			if mongodriver.IsDuplicateKeyError(err) {
				continue
			}

			return nil, fmt.Errorf("%s: insert: %w", op, err)
		}

		oid, ok := res.InsertedID.(primitive.ObjectID)
		if !ok {
			return nil, fmt.Errorf("%s: inserted id type", op)
		}
		doc.ID = oid

		out := doc.toModel()
		return &out, nil
	}

	return nil, fmt.Errorf("%s: %w", op, storage.ErrConflict)
}

// nextThread вычисляет ключ thread для нового комментария:
// корень — следующий после максимального корня поля, ответ — следующий после последнего ребёнка родителя.
func (m *Mongo) nextThread(ctx context.Context, doc commentDoc, parent *commentDoc) (string, error) {
	filter := fieldFilter(models.EntityRef{Type: doc.EntityType, ID: doc.EntityID}, doc.FieldName)
	if parent == nil {
		filter = append(filter, bson.E{Key: "parent_id", Value: ""})
	} else {
		filter = append(filter, bson.E{Key: "parent_id", Value: parent.ID.Hex()})
	}

	opts := options.FindOne().
		SetSort(bson.D{{Key: "thread", Value: -1}}).
		SetProjection(bson.D{{Key: "thread", Value: 1}})

	var last commentDoc
	err := m.comments.FindOne(ctx, filter, opts).Decode(&last)
	if err != nil && !errors.Is(err, mongodriver.ErrNoDocuments) {
		return "", fmt.Errorf("find last thread: %w", err)
	}

	if parent == nil {
		return thread.NextRoot(last.Thread)
	}

	return thread.NextChild(parent.Thread, last.Thread)
}
