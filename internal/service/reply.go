package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/pribylovaa/comment-router/pkg/log"

	"github.com/pribylovaa/comment-router/internal/models"
	"github.com/pribylovaa/comment-router/internal/storage"
)

// Сообщения, которые пользователь видит после отказа.
const (
	MsgNoPostPermission = "You are not authorized to post comments."
	MsgFieldClosed      = "This discussion is closed: you can't post new comments."
	MsgNoViewPermission = "You are not authorized to view comments."
	MsgInvalidParent    = "The comment you are replying to does not exist."
	MsgApproved         = "Comment approved."
)

// ReplyRequest — запрос формы ответа.
// ParentID пуст — ответ на саму сущность; Preview — повторная отрисовка формы с предпросмотром.
type ReplyRequest struct {
	Entity    models.EntityRef
	FieldName string
	ParentID  string
	Preview   bool
}

// PostReplyInput — сохранение ответа.
type PostReplyInput struct {
	ReplyRequest
	Body string
}

// PostReplyResult — итог сохранения: при отказе Comment == nil, причина в Decision.
type PostReplyResult struct {
	Decision *models.ReplyDecision
	Comment  *models.CommentRef
}

func denied(reason models.Reason, msg, path string) *models.ReplyDecision {
	return &models.ReplyDecision{
		Allowed:  false,
		Reason:   reason,
		Message:  msg,
		Location: models.Location{Path: path},
	}
}

// AuthorizeReply решает, может ли пользователь ответить на сущность или комментарий.
// Проверки выполняются строго по порядку, срабатывает первая:
//  1. нет "post comments" — отказ NoPostPermission, хранилище не вызывается;
//  2. нет сущности или поля — ErrNotFound; поле не Open — отказ FieldClosed;
//  3. с ParentID: нет "access comments" — отказ NoViewPermission, затем родитель
//     должен быть опубликован и принадлежать той же сущности и полю, иначе отказ InvalidParent;
//     без ParentID: сущность показывается над формой, если пользователь может её просматривать.
//
// Для Preview шаги 2 (кроме NotFound) и 3 пропускаются.
// Отказы — это решения, а не ошибки: error возвращается только для NotFound/InvalidArgument/Internal.
func (s *Service) AuthorizeReply(ctx context.Context, req ReplyRequest, actor models.Actor) (*models.ReplyDecision, error) {
	const op = "service/reply/AuthorizeReply"

	req.FieldName = strings.TrimSpace(req.FieldName)
	req.ParentID = strings.TrimSpace(req.ParentID)

	lg := log.From(ctx).With(
		"op", op,
		"entity_type", req.Entity.Type,
		"entity_id", req.Entity.ID,
		"field_name", req.FieldName,
		"parent_id", req.ParentID,
		"actor_id", actor.ID.String(),
	)

	if !validRef(req.Entity) || req.FieldName == "" {
		lg.Warn("invalid argument: empty entity or field")
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	if !actor.Has(models.PermPostComments) {
		lg.Warn("reply denied: no post permission")
		return denied(models.ReasonNoPostPermission, MsgNoPostPermission, entityPath(req.Entity)), nil
	}

	entity, err := s.entities.Entity(ctx, req.Entity)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			lg.Warn("entity not found")
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}

		lg.Error("storage error on Entity", "err", err)
		return nil, fmt.Errorf("%s: %w", op, ErrInternal)
	}

	field, ok := entity.Field(req.FieldName)
	if !ok {
		lg.Warn("comment field not found")
		return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
	}

	decision := &models.ReplyDecision{
		Allowed:  true,
		Reason:   models.ReasonAllowed,
		Location: models.Location{Path: entity.Path},
		Draft: &models.Draft{
			EntityType: entity.Type,
			EntityID:   entity.ID,
			FieldName:  field.Name,
			ParentID:   req.ParentID,
		},
		Preview: req.Preview,
	}

	if req.Preview {
		return decision, nil
	}

	if field.Status != models.FieldOpen {
		lg.Warn("reply denied: field closed", "field_status", field.Status.String())
		return denied(models.ReasonFieldClosed, MsgFieldClosed, entity.Path), nil
	}

	if req.ParentID != "" {
		if !actor.Has(models.PermAccessComments) {
			lg.Warn("reply denied: no access comments permission")
			return denied(models.ReasonNoViewPermission, MsgNoViewPermission, entity.Path), nil
		}

		parent, err := s.entities.Comment(ctx, req.ParentID)
		if err != nil && !errors.Is(err, storage.ErrNotFound) {
			lg.Error("storage error on Comment", "err", err)
			return nil, fmt.Errorf("%s: %w", op, ErrInternal)
		}

		if parent == nil || parent.Status != models.Published ||
			parent.Entity() != entity.Ref() || parent.FieldName != field.Name {
			lg.Warn("reply denied: invalid parent")
			return denied(models.ReasonInvalidParent, MsgInvalidParent, entity.Path), nil
		}

		decision.Parent = parent
		return decision, nil
	}

	canView, err := s.entities.CanAccess(ctx, *entity, models.ActionView, actor)
	if err != nil {
		lg.Error("storage error on CanAccess", "err", err)
		return nil, fmt.Errorf("%s: %w", op, ErrInternal)
	}

	// Поле комментариев сущности над формой не выводится: иначе форма рисуется рекурсивно.
	decision.RenderEntity = canView
	decision.HideCommentField = canView

	return decision, nil
}

// PostReply проверяет право ответа (как AuthorizeReply без предпросмотра) и сохраняет комментарий.
// Комментарий публикуется сразу, если у пользователя есть "skip comment approval"
// или "administer comments"; иначе ждёт модерации.
//
// Поведение/ошибки:
//   - отказ — PostReplyResult.Decision с Allowed == false, error == nil;
//   - ErrInvalidArgument — пустое тело или тело длиннее limits.max_body;
//   - ErrNotFound — сущность, поле или родитель исчезли;
//   - ErrConflict — не удалось выдать ключ thread;
//   - ErrInternal — прочие ошибки хранилища.
func (s *Service) PostReply(ctx context.Context, in PostReplyInput, actor models.Actor) (*PostReplyResult, error) {
	const op = "service/reply/PostReply"

	in.Preview = false
	decision, err := s.AuthorizeReply(ctx, in.ReplyRequest, actor)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if !decision.Allowed {
		return &PostReplyResult{Decision: decision}, nil
	}

	lg := log.From(ctx).With("op", op, "entity_id", in.Entity.ID, "actor_id", actor.ID.String())

	body := strings.TrimSpace(in.Body)
	if body == "" {
		lg.Warn("invalid argument: empty body")
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	if limit := s.cfg.Limits.MaxBody; limit > 0 && len(body) > limit {
		lg.Warn("invalid argument: body too long", "len", len(body), "max", limit)
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	if !utf8.ValidString(body) {
		lg.Warn("invalid argument: body is not valid utf-8")
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	status := models.Unpublished
	if actor.Has(models.PermSkipApproval) || actor.Has(models.PermAdministerComments) {
		status = models.Published
	}

	draft := decision.Draft
	created, err := s.entities.CreateComment(ctx, models.CommentRef{
		EntityType: draft.EntityType,
		EntityID:   draft.EntityID,
		FieldName:  draft.FieldName,
		ParentID:   draft.ParentID,
		Status:     status,
		UserID:     actor.ID,
		Body:       body,
	})
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrParentNotFound):
			lg.Warn("parent not found")
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		case errors.Is(err, storage.ErrConflict):
			lg.Warn("conflict")
			return nil, fmt.Errorf("%s: %w", op, ErrConflict)
		default:
			lg.Error("storage error on CreateComment", "err", err)
			return nil, fmt.Errorf("%s: %w", op, ErrInternal)
		}
	}

	lg.Info("reply posted", "comment_id", created.ID, "status", created.Status.String(), "thread", created.Thread)

	return &PostReplyResult{Decision: decision, Comment: created}, nil
}
