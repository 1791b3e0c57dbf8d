package service

import (
	"context"
	"net/url"
	"strings"

	"github.com/pribylovaa/comment-router/internal/models"
)

// PageOf — номер страницы (с нуля), на которой выводится комментарий с порядковым номером ordinal.
// Некорректный perPage или отрицательный ordinal дают первую страницу.
func PageOf(ordinal, perPage int64) int64 {
	if perPage <= 0 || ordinal < 0 {
		return 0
	}

	return ordinal / perPage
}

// orderingFor — порядок вывода поля с учётом прав: модераторы видят неопубликованные.
func orderingFor(paging models.FieldPagingConfig, actor models.Actor) models.Ordering {
	return models.Ordering{
		Mode:               paging.Mode,
		Sort:               paging.Sort,
		IncludeUnpublished: actor.Has(models.PermAdministerComments),
	}
}

// newCommentsPage — страница, на которой выводится первый из newCount новых комментариев.
//   - все комментарии помещаются на одну страницу или новых нет: 0;
//   - flat: новые идут последними (oldest-first) либо первыми (newest-first);
//   - threaded: позиция первого нового в дереве считается хранилищем.
func (s *Service) newCommentsPage(ctx context.Context, entity models.Entity, field models.CommentField, total, newCount int64) (int64, error) {
	perPage := field.Paging.PerPage
	if perPage <= 0 || total <= perPage || newCount <= 0 {
		return 0, nil
	}

	if field.Paging.Mode == models.Flat {
		if field.Paging.Sort == models.NewestFirst {
			return 0, nil
		}

		return PageOf(total-newCount, perPage), nil
	}

	pos, err := s.index.FirstNewPosition(ctx, entity.Ref(), field.Name, newCount, models.Ordering{
		Mode: field.Paging.Mode,
		Sort: field.Paging.Sort,
	})
	if err != nil {
		return 0, err
	}

	return PageOf(pos, perPage), nil
}

// entityPath — путь сущности, когда сама сущность ещё не загружена.
func entityPath(ref models.EntityRef) string {
	return "/" + url.PathEscape(ref.Type) + "/" + url.PathEscape(ref.ID)
}

func validRef(ref models.EntityRef) bool {
	return strings.TrimSpace(ref.Type) != "" && strings.TrimSpace(ref.ID) != ""
}

// permalinkLocation — канонический адрес комментария.
func permalinkLocation(commentID string) models.Location {
	return models.Location{
		Path:     "/comment/" + url.PathEscape(commentID),
		Fragment: "comment-" + commentID,
	}
}
