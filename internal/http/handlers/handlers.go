package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/pribylovaa/comment-router/internal/auth"
	apierrors "github.com/pribylovaa/comment-router/internal/errors"
	"github.com/pribylovaa/comment-router/internal/metrics"
	"github.com/pribylovaa/comment-router/internal/models"
	"github.com/pribylovaa/comment-router/internal/service"
)

// NoticeHeader — заголовок с сообщением для пользователя при редиректе.
const NoticeHeader = "X-Comment-Notice"

// maxRequestBody — ограничение тела JSON-запросов.
const maxRequestBody = 1 << 20

// Service — операции сервисного слоя, которые обслуживает HTTP API.
type Service interface {
	ResolvePermalink(ctx context.Context, in service.PermalinkInput, actor models.Actor) (*models.PageDecision, error)
	AuthorizeReply(ctx context.Context, req service.ReplyRequest, actor models.Actor) (*models.ReplyDecision, error)
	PostReply(ctx context.Context, in service.PostReplyInput, actor models.Actor) (*service.PostReplyResult, error)
	ApproveComment(ctx context.Context, commentID string, actor models.Actor) (*service.ApproveResult, error)
	LegacyNodeRedirect(ctx context.Context, nodeID string) (*models.Location, error)
	NewCommentsLinks(ctx context.Context, in service.NewCommentsInput, actor models.Actor) (map[string]models.NewCommentsLink, error)
	MarkRead(ctx context.Context, ref models.EntityRef, actor models.Actor) error
}

// Handlers агрегирует зависимости: сервис и счётчик решений.
type Handlers struct {
	svc     Service
	metrics *metrics.Decisions
}

func New(svc Service, m *metrics.Decisions) *Handlers {
	return &Handlers{svc: svc, metrics: m}
}

// writeJSON — единый ответ JSON с нужным Content-Type.
// Ошибки выводим через apierrors.WriteError.
func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}

// decodeStrict — строгий JSON-декодер: запрещаем неизвестные поля.
func decodeStrict(w http.ResponseWriter, r *http.Request, value any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody))
	dec.DisallowUnknownFields()
	return dec.Decode(value)
}

// redirect отправляет пользователя на loc; notice (если есть) кладётся в NoticeHeader.
func redirect(w http.ResponseWriter, r *http.Request, loc models.Location, code int, notice string) {
	if notice != "" {
		w.Header().Set(NoticeHeader, notice)
	}
	http.Redirect(w, r, loc.String(), code)
}

// actor достаёт пользователя, положенного middleware.Actor.
// Без мидлвара запрос считается анонимным без прав.
func actor(r *http.Request) models.Actor {
	a, ok := auth.ActorFrom(r.Context())
	if !ok {
		return models.Anonymous()
	}

	return a
}

// fail пишет ошибку и учитывает её в метриках.
func (h *Handlers) fail(w http.ResponseWriter, r *http.Request, operation string, err error) {
	h.metrics.Observe(operation, apierrors.Code(err))
	apierrors.WriteError(w, r, err)
}

// invalidArgument — локальная ошибка разбора запроса.
func invalidArgument() error {
	return service.ErrInvalidArgument
}
