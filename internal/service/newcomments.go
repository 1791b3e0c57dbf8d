package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/pribylovaa/comment-router/pkg/log"

	"github.com/pribylovaa/comment-router/internal/models"
	"github.com/pribylovaa/comment-router/internal/storage"
)

// defaultNewLinksBatch — сколько сущностей обрабатывается за запрос, если лимит не задан.
const defaultNewLinksBatch = 100

// NewCommentsInput — пакетный запрос ссылок на новые комментарии.
// EntityIDs == nil отличается от пустого списка: параметр не передан вовсе.
type NewCommentsInput struct {
	EntityType string
	EntityIDs  []string
	FieldName  string
}

// NewCommentsLinks возвращает для каждой сущности число новых с последнего визита комментариев
// и ссылку на страницу с первым из них (<path>[?page=N]#new, page только при N >= 1).
// Обрабатываются первые limits.new_links_batch идентификаторов; отсутствующие
// или недоступные для просмотра сущности пропускаются.
//
// Поведение/ошибки:
//   - ErrAccessDenied — анонимный пользователь;
//   - ErrNotFound — список идентификаторов не передан;
//   - ErrInvalidArgument — пустое имя поля;
//   - ErrInternal — ошибки хранилищ.
func (s *Service) NewCommentsLinks(ctx context.Context, in NewCommentsInput, actor models.Actor) (map[string]models.NewCommentsLink, error) {
	const op = "service/newcomments/NewCommentsLinks"

	lg := log.From(ctx).With("op", op, "actor_id", actor.ID.String(), "field_name", in.FieldName)

	if actor.IsAnonymous() {
		lg.Warn("access denied: anonymous")
		return nil, fmt.Errorf("%s: %w", op, ErrAccessDenied)
	}

	if in.EntityIDs == nil {
		lg.Warn("entity ids not provided")
		return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
	}

	fieldName := strings.TrimSpace(in.FieldName)
	if fieldName == "" {
		lg.Warn("invalid argument: empty field_name")
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	entityType := strings.TrimSpace(in.EntityType)
	if entityType == "" {
		entityType = "node"
	}

	ids := in.EntityIDs
	batch := s.cfg.Limits.NewLinksBatch
	if batch <= 0 {
		batch = defaultNewLinksBatch
	}
	if len(ids) > batch {
		lg.Info("entity ids truncated", "requested", len(ids), "batch", batch)
		ids = ids[:batch]
	}

	cutoff := time.Time{}
	if s.cfg.Limits.NewWindow > 0 {
		cutoff = s.now().UTC().Add(-s.cfg.Limits.NewWindow)
	}

	links := make(map[string]models.NewCommentsLink, len(ids))
	for _, id := range ids {
		if _, done := links[id]; done {
			continue
		}

		link, ok, err := s.newCommentsLink(ctx, models.EntityRef{Type: entityType, ID: id}, fieldName, actor, cutoff)
		if err != nil {
			lg.Error("storage error on new comments link", "entity_id", id, "err", err)
			return nil, fmt.Errorf("%s: %w", op, ErrInternal)
		}

		if !ok {
			lg.Debug("entity skipped", "entity_id", id)
			continue
		}

		links[id] = link
	}

	return links, nil
}

// newCommentsLink считает ссылку для одной сущности; ok == false — сущность пропускается.
func (s *Service) newCommentsLink(ctx context.Context, ref models.EntityRef, fieldName string, actor models.Actor, cutoff time.Time) (models.NewCommentsLink, bool, error) {
	entity, err := s.entities.Entity(ctx, ref)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return models.NewCommentsLink{}, false, nil
		}

		return models.NewCommentsLink{}, false, err
	}

	field, ok := entity.Field(fieldName)
	if !ok {
		return models.NewCommentsLink{}, false, nil
	}

	canView, err := s.entities.CanAccess(ctx, *entity, models.ActionView, actor)
	if err != nil {
		return models.NewCommentsLink{}, false, err
	}

	if !canView {
		return models.NewCommentsLink{}, false, nil
	}

	since, err := s.history.LastViewed(ctx, actor.ID, ref)
	if err != nil {
		return models.NewCommentsLink{}, false, err
	}

	if since.Before(cutoff) {
		since = cutoff
	}

	newCount, err := s.index.CountNewSince(ctx, ref, fieldName, since)
	if err != nil {
		return models.NewCommentsLink{}, false, err
	}

	total, err := s.index.Count(ctx, ref, fieldName)
	if err != nil {
		return models.NewCommentsLink{}, false, err
	}

	page, err := s.newCommentsPage(ctx, *entity, field, total, newCount)
	if err != nil {
		return models.NewCommentsLink{}, false, err
	}

	loc := models.Location{Path: entity.Path, Fragment: "new"}
	if page >= 1 {
		loc = loc.WithPage(page)
	}

	return models.NewCommentsLink{
		NewCommentCount:     newCount,
		FirstNewCommentLink: loc.String(),
	}, true, nil
}

// MarkRead запоминает текущий момент как время последнего просмотра сущности пользователем.
//
// Поведение/ошибки:
//   - ErrInvalidArgument — пустая ссылка на сущность;
//   - ErrAccessDenied — анонимный пользователь или сущность недоступна для просмотра;
//   - ErrNotFound — сущности нет;
//   - ErrInternal — ошибки хранилищ.
func (s *Service) MarkRead(ctx context.Context, ref models.EntityRef, actor models.Actor) error {
	const op = "service/newcomments/MarkRead"

	lg := log.From(ctx).With("op", op, "entity_type", ref.Type, "entity_id", ref.ID, "actor_id", actor.ID.String())

	if !validRef(ref) {
		lg.Warn("invalid argument: empty entity")
		return fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	if actor.IsAnonymous() {
		lg.Warn("access denied: anonymous")
		return fmt.Errorf("%s: %w", op, ErrAccessDenied)
	}

	entity, err := s.entities.Entity(ctx, ref)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			lg.Warn("entity not found")
			return fmt.Errorf("%s: %w", op, ErrNotFound)
		}

		lg.Error("storage error on Entity", "err", err)
		return fmt.Errorf("%s: %w", op, ErrInternal)
	}

	canView, err := s.entities.CanAccess(ctx, *entity, models.ActionView, actor)
	if err != nil {
		lg.Error("storage error on CanAccess", "err", err)
		return fmt.Errorf("%s: %w", op, ErrInternal)
	}

	if !canView {
		lg.Warn("access denied: entity not viewable")
		return fmt.Errorf("%s: %w", op, ErrAccessDenied)
	}

	if err := s.history.MarkViewed(ctx, actor.ID, ref, s.now().UTC()); err != nil {
		lg.Error("storage error on MarkViewed", "err", err)
		return fmt.Errorf("%s: %w", op, ErrInternal)
	}

	return nil
}
