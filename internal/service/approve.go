package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/pribylovaa/comment-router/pkg/log"

	"github.com/pribylovaa/comment-router/internal/models"
	"github.com/pribylovaa/comment-router/internal/storage"
)

// ApproveResult — адрес пермалинка одобренного комментария и сообщение для пользователя.
type ApproveResult struct {
	Location models.Location
	Message  string
}

// ApproveComment публикует комментарий. Требует "administer comments".
// Повторное одобрение опубликованного комментария не ошибка.
//
// Поведение/ошибки:
//   - ErrInvalidArgument — пустой id;
//   - ErrAccessDenied — нет права модерации (хранилище не вызывается);
//   - ErrNotFound — комментария нет;
//   - ErrInternal — прочие ошибки хранилища.
func (s *Service) ApproveComment(ctx context.Context, commentID string, actor models.Actor) (*ApproveResult, error) {
	const op = "service/approve/ApproveComment"

	id := strings.TrimSpace(commentID)
	lg := log.From(ctx).With("op", op, "comment_id", id, "actor_id", actor.ID.String())

	if id == "" {
		lg.Warn("invalid argument: empty comment_id")
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	if !actor.Has(models.PermAdministerComments) {
		lg.Warn("access denied: no administer comments permission")
		return nil, fmt.Errorf("%s: %w", op, ErrAccessDenied)
	}

	if err := s.entities.SetPublished(ctx, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			lg.Warn("comment not found")
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}

		lg.Error("storage error on SetPublished", "err", err)
		return nil, fmt.Errorf("%s: %w", op, ErrInternal)
	}

	lg.Info("comment approved")

	return &ApproveResult{
		Location: permalinkLocation(id),
		Message:  MsgApproved,
	}, nil
}
