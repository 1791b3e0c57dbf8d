package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/pribylovaa/comment-router/pkg/log"

	"github.com/pribylovaa/comment-router/internal/models"
	"github.com/pribylovaa/comment-router/internal/storage"
)

// PermalinkInput — запрос на разрешение пермалинка.
// Query — исходные query-параметры запроса; сохраняются в адресе редиректа.
type PermalinkInput struct {
	CommentID string
	Query     url.Values
}

// ResolvePermalink вычисляет страницу, на которой выводится комментарий,
// и возвращает адрес редиректа на неё. Результат не кешируется.
//
// Поведение/ошибки:
//   - ErrInvalidArgument — пустой id;
//   - ErrNotFound — нет комментария, сущности или поля комментариев;
//   - ErrAccessDenied — сущность недоступна для просмотра либо комментарий
//     не опубликован, а у пользователя нет права "administer comments";
//   - ErrInternal — прочие ошибки хранилища.
func (s *Service) ResolvePermalink(ctx context.Context, in PermalinkInput, actor models.Actor) (*models.PageDecision, error) {
	const op = "service/permalink/ResolvePermalink"

	id := strings.TrimSpace(in.CommentID)
	lg := log.From(ctx).With("op", op, "comment_id", id, "actor_id", actor.ID.String())

	if id == "" {
		lg.Warn("invalid argument: empty comment_id")
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	comment, err := s.entities.Comment(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			lg.Warn("comment not found")
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}

		lg.Error("storage error on Comment", "err", err)
		return nil, fmt.Errorf("%s: %w", op, ErrInternal)
	}

	entity, err := s.entities.Entity(ctx, comment.Entity())
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			lg.Warn("commented entity not found", "entity_type", comment.EntityType, "entity_id", comment.EntityID)
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}

		lg.Error("storage error on Entity", "err", err)
		return nil, fmt.Errorf("%s: %w", op, ErrInternal)
	}

	field, ok := entity.Field(comment.FieldName)
	if !ok {
		lg.Warn("comment field not found", "field_name", comment.FieldName)
		return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
	}

	canView, err := s.entities.CanAccess(ctx, *entity, models.ActionView, actor)
	if err != nil {
		lg.Error("storage error on CanAccess", "err", err)
		return nil, fmt.Errorf("%s: %w", op, ErrInternal)
	}

	if !canView {
		lg.Warn("access denied: entity not viewable")
		return nil, fmt.Errorf("%s: %w", op, ErrAccessDenied)
	}

	if comment.Status != models.Published && !actor.Has(models.PermAdministerComments) {
		lg.Warn("access denied: comment unpublished")
		return nil, fmt.Errorf("%s: %w", op, ErrAccessDenied)
	}

	ordinal, err := s.index.Position(ctx, id, orderingFor(field.Paging, actor))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			lg.Warn("comment vanished while counting position")
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}

		lg.Error("storage error on Position", "err", err)
		return nil, fmt.Errorf("%s: %w", op, ErrInternal)
	}

	page := PageOf(ordinal, field.Paging.PerPage)

	loc := models.Location{
		Path:     entity.Path,
		Query:    in.Query,
		Fragment: "comment-" + id,
	}.WithPage(page)

	lg.Debug("permalink resolved", "ordinal", ordinal, "page", page)

	return &models.PageDecision{
		Page:             page,
		RedirectRequired: true,
		Reason:           models.ReasonFound,
		Location:         loc,
	}, nil
}
