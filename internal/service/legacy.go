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

// LegacyNodeRedirect переводит старую ссылку /node/{id}/comments на форму ответа
// первого (по имени) поля комментариев типа node.
//
// Поведение/ошибки:
//   - ErrNotFound — у типа node нет полей комментариев или нет самой сущности;
//   - ErrInternal — прочие ошибки хранилища.
func (s *Service) LegacyNodeRedirect(ctx context.Context, nodeID string) (*models.Location, error) {
	const op = "service/legacy/LegacyNodeRedirect"

	ref := models.EntityRef{Type: "node", ID: strings.TrimSpace(nodeID)}
	lg := log.From(ctx).With("op", op, "entity_id", ref.ID)

	if !validRef(ref) {
		lg.Warn("invalid argument: empty node id")
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	fields, err := s.entities.CommentFields(ctx, ref.Type)
	if err != nil {
		lg.Error("storage error on CommentFields", "err", err)
		return nil, fmt.Errorf("%s: %w", op, ErrInternal)
	}

	if len(fields) == 0 {
		lg.Warn("node type has no comment fields")
		return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
	}

	if _, err := s.entities.Entity(ctx, ref); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			lg.Warn("node not found")
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}

		lg.Error("storage error on Entity", "err", err)
		return nil, fmt.Errorf("%s: %w", op, ErrInternal)
	}

	return &models.Location{
		Path: "/comment/reply/node/" + url.PathEscape(ref.ID) + "/" + url.PathEscape(fields[0]),
	}, nil
}
