// Реализация gRPC-эндпоинтов commentrouter.v1.CommentRouter.
//
// Пользователь берётся из metadata "authorization: Bearer <jwt>"; без неё запрос анонимный.
//
// Маппинг ошибок сервиса в коды gRPC:
//
//	ErrInvalidArgument        -> codes.InvalidArgument
//	ErrAccessDenied           -> codes.PermissionDenied
//	ErrNotFound               -> codes.NotFound
//	ErrConflict               -> codes.Aborted
//	auth.ErrInvalidToken      -> codes.Unauthenticated
//	auth.ErrTokenExpired      -> codes.Unauthenticated
//	context.Canceled          -> codes.Canceled
//	context.DeadlineExceeded  -> codes.DeadlineExceeded
//	прочее                    -> codes.Internal
//
// Отказы в ответе (NoPostPermission, FieldClosed, ...) — не ошибки: allowed=false в теле ответа.
package grpc

import (
	"context"
	"errors"
	"strings"

	"github.com/pribylovaa/comment-router/internal/auth"
	apierrors "github.com/pribylovaa/comment-router/internal/errors"
	"github.com/pribylovaa/comment-router/internal/metrics"
	"github.com/pribylovaa/comment-router/internal/models"
	"github.com/pribylovaa/comment-router/internal/service"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

// Service — операции сервисного слоя, доступные по gRPC.
type Service interface {
	ResolvePermalink(ctx context.Context, in service.PermalinkInput, actor models.Actor) (*models.PageDecision, error)
	AuthorizeReply(ctx context.Context, req service.ReplyRequest, actor models.Actor) (*models.ReplyDecision, error)
	NewCommentsLinks(ctx context.Context, in service.NewCommentsInput, actor models.Actor) (map[string]models.NewCommentsLink, error)
}

// Server — gRPC-сервер CommentRouter.
type Server struct {
	service  Service
	verifier *auth.Verifier
	metrics  *metrics.Decisions
}

func NewServer(svc Service, v *auth.Verifier, m *metrics.Decisions) *Server {
	return &Server{service: svc, verifier: v, metrics: m}
}

var _ CommentRouterServer = (*Server)(nil)

// actor разбирает metadata authorization.
func (s *Server) actor(ctx context.Context) (models.Actor, error) {
	var header string
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if vals := md.Get("authorization"); len(vals) > 0 {
			header = vals[0]
		}
	}

	if s.verifier == nil {
		return models.Anonymous(), nil
	}

	return s.verifier.FromHeader(header)
}

// toStatus переводит ошибку сервиса в gRPC-статус и учитывает её в метриках.
func (s *Server) toStatus(op, operation string, err error) error {
	s.metrics.Observe(operation, apierrors.Code(err))

	switch {
	case errors.Is(err, service.ErrInvalidArgument):
		return status.Errorf(codes.InvalidArgument, "%s: %v", op, err)
	case errors.Is(err, auth.ErrInvalidToken), errors.Is(err, auth.ErrTokenExpired):
		return status.Errorf(codes.Unauthenticated, "%s: unauthenticated", op)
	case errors.Is(err, service.ErrAccessDenied):
		return status.Errorf(codes.PermissionDenied, "%s: %v", op, err)
	case errors.Is(err, service.ErrNotFound):
		return status.Errorf(codes.NotFound, "%s: %v", op, err)
	case errors.Is(err, service.ErrConflict):
		return status.Errorf(codes.Aborted, "%s: %v", op, err)
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, "canceled")
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, "deadline exceeded")
	default:
		return status.Errorf(codes.Internal, "internal server error")
	}
}

// ResolvePermalink — {comment_id, query?} -> {page, redirect_required, reason, location}.
func (s *Server) ResolvePermalink(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	const op = "transport/grpc/ResolvePermalink"
	const operation = "permalink"

	actor, err := s.actor(ctx)
	if err != nil {
		return nil, s.toStatus(op, operation, err)
	}

	id, err := stringField(req, "comment_id")
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "%s: %v", op, err)
	}

	query, err := queryField(req, "query")
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "%s: %v", op, err)
	}

	dec, err := s.service.ResolvePermalink(ctx, service.PermalinkInput{
		CommentID: strings.TrimSpace(id),
		Query:     query,
	}, actor)
	if err != nil {
		return nil, s.toStatus(op, operation, err)
	}

	s.metrics.Observe(operation, string(dec.Reason))

	out, err := pageDecisionToStruct(dec)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "internal server error")
	}

	return out, nil
}

// AuthorizeReply — {entity_type, entity_id, field_name, parent_id?, preview?} -> решение.
func (s *Server) AuthorizeReply(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	const op = "transport/grpc/AuthorizeReply"
	const operation = "authorize_reply"

	actor, err := s.actor(ctx)
	if err != nil {
		return nil, s.toStatus(op, operation, err)
	}

	var rr service.ReplyRequest
	for key, dst := range map[string]*string{
		"entity_type": &rr.Entity.Type,
		"entity_id":   &rr.Entity.ID,
		"field_name":  &rr.FieldName,
		"parent_id":   &rr.ParentID,
	} {
		if *dst, err = stringField(req, key); err != nil {
			return nil, status.Errorf(codes.InvalidArgument, "%s: %v", op, err)
		}
	}

	if rr.Preview, err = boolField(req, "preview"); err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "%s: %v", op, err)
	}

	dec, err := s.service.AuthorizeReply(ctx, rr, actor)
	if err != nil {
		return nil, s.toStatus(op, operation, err)
	}

	s.metrics.Observe(operation, string(dec.Reason))

	out, err := replyDecisionToStruct(dec)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "internal server error")
	}

	return out, nil
}

// NewCommentsLinks — {node_ids, field_name, entity_type?} -> {"<id>": {new_comment_count, first_new_comment_link}}.
func (s *Server) NewCommentsLinks(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	const op = "transport/grpc/NewCommentsLinks"
	const operation = "new_comments_links"

	actor, err := s.actor(ctx)
	if err != nil {
		return nil, s.toStatus(op, operation, err)
	}

	ids, err := stringListField(req, "node_ids")
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "%s: %v", op, err)
	}

	fieldName, err := stringField(req, "field_name")
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "%s: %v", op, err)
	}

	entityType, err := stringField(req, "entity_type")
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "%s: %v", op, err)
	}

	links, err := s.service.NewCommentsLinks(ctx, service.NewCommentsInput{
		EntityType: entityType,
		EntityIDs:  ids,
		FieldName:  fieldName,
	}, actor)
	if err != nil {
		return nil, s.toStatus(op, operation, err)
	}

	s.metrics.Observe(operation, "ok")

	out, err := linksToStruct(links)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "internal server error")
	}

	return out, nil
}
