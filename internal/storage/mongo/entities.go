package mongo

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/pribylovaa/comment-router/internal/models"
	"github.com/pribylovaa/comment-router/internal/storage"

	"go.mongodb.org/mongo-driver/bson"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// entityDoc — документ коллекции entities.
type entityDoc struct {
	ID        string     `bson:"_id"`
	Type      string     `bson:"type"`
	EntityID  string     `bson:"entity_id"`
	Path      string     `bson:"path"`
	Published bool       `bson:"published"`
	Fields    []fieldDoc `bson:"comment_fields"`
}

// fieldDoc — настройки поля комментариев внутри entityDoc.
type fieldDoc struct {
	Name    string `bson:"name"`
	Status  int32  `bson:"status"`
	PerPage int64  `bson:"per_page"`
	Mode    int32  `bson:"mode"`
	Sort    int32  `bson:"sort"`
}

func entityKey(entityType, id string) string {
	return entityType + ":" + id
}

func (d entityDoc) toModel() models.Entity {
	e := models.Entity{
		Type:      d.Type,
		ID:        d.EntityID,
		Path:      d.Path,
		Published: d.Published,
		Fields:    make(map[string]models.CommentField, len(d.Fields)),
	}

	for _, f := range d.Fields {
		e.Fields[f.Name] = models.CommentField{
			Name:   f.Name,
			Status: models.FieldStatus(f.Status),
			Paging: models.FieldPagingConfig{
				PerPage: f.PerPage,
				Mode:    models.ThreadingMode(f.Mode),
				Sort:    models.SortOrder(f.Sort),
			},
		}
	}

	return e
}

func entityFromModel(e models.Entity) entityDoc {
	d := entityDoc{
		ID:        entityKey(e.Type, e.ID),
		Type:      e.Type,
		EntityID:  e.ID,
		Path:      e.Path,
		Published: e.Published,
	}

	for _, name := range e.FieldNames() {
		f := e.Fields[name]
		d.Fields = append(d.Fields, fieldDoc{
			Name:    name,
			Status:  int32(f.Status),
			PerPage: f.Paging.PerPage,
			Mode:    int32(f.Paging.Mode),
			Sort:    int32(f.Paging.Sort),
		})
	}

	return d
}

// SaveEntity создаёт или полностью заменяет снимок сущности.
func (m *Mongo) SaveEntity(ctx context.Context, e models.Entity) error {
	const op = "storage/mongo/SaveEntity"

	if strings.TrimSpace(e.Type) == "" || strings.TrimSpace(e.ID) == "" {
		return fmt.Errorf("%s: empty entity type or id", op)
	}

	doc := entityFromModel(e)
	_, err := m.entities.ReplaceOne(ctx, bson.D{{Key: "_id", Value: doc.ID}}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// Entity загружает сущность. Если её нет — storage.ErrNotFound.
func (m *Mongo) Entity(ctx context.Context, ref models.EntityRef) (*models.Entity, error) {
	const op = "storage/mongo/Entity"

	var doc entityDoc
	err := m.entities.FindOne(ctx, bson.D{{Key: "_id", Value: entityKey(ref.Type, ref.ID)}}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongodriver.ErrNoDocuments) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	e := doc.toModel()
	return &e, nil
}

// CommentFields возвращает имена полей комментариев, встречающихся у сущностей типа.
func (m *Mongo) CommentFields(ctx context.Context, entityType string) ([]string, error) {
	const op = "storage/mongo/CommentFields"

	raw, err := m.entities.Distinct(ctx, "comment_fields.name", bson.D{{Key: "type", Value: entityType}})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	names := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok && s != "" {
			names = append(names, s)
		}
	}
	sort.Strings(names)

	return names, nil
}

// CanAccess применяет правило доступа сущности (models.Entity.Allows).
func (m *Mongo) CanAccess(_ context.Context, entity models.Entity, action models.Action, actor models.Actor) (bool, error) {
	return entity.Allows(action, actor), nil
}
