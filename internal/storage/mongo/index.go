package mongo

import (
	"context"
	"fmt"
	"time"

	"github.com/pribylovaa/comment-router/internal/models"
	"github.com/pribylovaa/comment-router/internal/thread"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Position — число комментариев поля, стоящих перед commentID в порядке вывода.
// Threaded: сравнение по thread (лексикографический порядок == порядок дерева),
// для NewestFirst — по torder, чтобы родитель оставался перед ответами.
// Flat: сравнение по (created_at, _id).
func (m *Mongo) Position(ctx context.Context, commentID string, order models.Ordering) (int64, error) {
	const op = "storage/mongo/Position"

	doc, err := m.findComment(ctx, commentID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	n, err := m.countBefore(ctx, *doc, order)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return n, nil
}

// Count — число опубликованных комментариев поля сущности.
func (m *Mongo) Count(ctx context.Context, ref models.EntityRef, fieldName string) (int64, error) {
	const op = "storage/mongo/Count"

	n, err := m.comments.CountDocuments(ctx, publishedOnly(fieldFilter(ref, fieldName)))
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return n, nil
}

// CountNewSince — число опубликованных комментариев, созданных строго после since.
func (m *Mongo) CountNewSince(ctx context.Context, ref models.EntityRef, fieldName string, since time.Time) (int64, error) {
	const op = "storage/mongo/CountNewSince"

	filter := publishedOnly(fieldFilter(ref, fieldName))
	filter = append(filter, bson.E{Key: "created_at", Value: bson.D{{Key: "$gt", Value: since.UTC()}}})

	n, err := m.comments.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return n, nil
}

// FirstNewPosition находит среди newCount самых свежих опубликованных комментариев
// тот, что выводится первым, и возвращает его порядковый номер.
// newCount <= 0 — новых нет, возвращается 0.
func (m *Mongo) FirstNewPosition(ctx context.Context, ref models.EntityRef, fieldName string, newCount int64, order models.Ordering) (int64, error) {
	const op = "storage/mongo/FirstNewPosition"

	if newCount <= 0 {
		return 0, nil
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}).
		SetLimit(newCount).
		SetProjection(bson.D{{Key: "thread", Value: 1}, {Key: "created_at", Value: 1}})

	cur, err := m.comments.Find(ctx, publishedOnly(fieldFilter(ref, fieldName)), opts)
	if err != nil {
		return 0, fmt.Errorf("%s: find: %w", op, err)
	}
	defer cur.Close(ctx)

	var fresh []commentDoc
	if err := cur.All(ctx, &fresh); err != nil {
		return 0, fmt.Errorf("%s: cursor: %w", op, err)
	}

	if len(fresh) == 0 {
		return 0, nil
	}

	first := firstDisplayed(fresh, order)
	first.EntityType, first.EntityID, first.FieldName = ref.Type, ref.ID, fieldName

	// Считаем только опубликованные: новые комментарии модерацией не видны никому.
	n, err := m.countBefore(ctx, first, models.Ordering{Mode: order.Mode, Sort: order.Sort})
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return n, nil
}

// firstDisplayed выбирает документ, который при выводе окажется раньше остальных.
// fresh отсортирован по (created_at, _id) по убыванию.
func firstDisplayed(fresh []commentDoc, order models.Ordering) commentDoc {
	if order.Mode == models.Flat {
		if order.Sort == models.NewestFirst {
			return fresh[0]
		}

		return fresh[len(fresh)-1]
	}

	best := fresh[0]
	for _, d := range fresh[1:] {
		if order.Sort == models.NewestFirst {
			if thread.DescKey(d.Thread) > thread.DescKey(best.Thread) {
				best = d
			}
			continue
		}

		if d.Thread < best.Thread {
			best = d
		}
	}

	return best
}

// countBefore считает комментарии того же поля, стоящие перед doc.
func (m *Mongo) countBefore(ctx context.Context, doc commentDoc, order models.Ordering) (int64, error) {
	filter := fieldFilter(models.EntityRef{Type: doc.EntityType, ID: doc.EntityID}, doc.FieldName)
	if !order.IncludeUnpublished {
		filter = publishedOnly(filter)
	}

	cmp := "$lt"
	if order.Sort == models.NewestFirst {
		cmp = "$gt"
	}

	switch {
	case order.Mode == models.Threaded && order.Sort == models.NewestFirst:
		filter = append(filter, bson.E{Key: "torder", Value: bson.D{{Key: cmp, Value: thread.DescKey(doc.Thread)}}})
	case order.Mode == models.Threaded:
		filter = append(filter, bson.E{Key: "thread", Value: bson.D{{Key: cmp, Value: doc.Thread}}})
	default:
		filter = append(filter, bson.E{Key: "$or", Value: bson.A{
			bson.D{{Key: "created_at", Value: bson.D{{Key: cmp, Value: doc.CreatedAt}}}},
			bson.D{
				{Key: "created_at", Value: doc.CreatedAt},
				{Key: "_id", Value: bson.D{{Key: cmp, Value: doc.ID}}},
			},
		}})
	}

	n, err := m.comments.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("count: %w", err)
	}

	return n, nil
}
