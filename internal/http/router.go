package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/pribylovaa/comment-router/internal/auth"
	"github.com/pribylovaa/comment-router/internal/http/handlers"
	"github.com/pribylovaa/comment-router/internal/http/middleware"
	"github.com/pribylovaa/comment-router/internal/metrics"
)

// Options — параметры сборки HTTP-роутера.
type Options struct {
	Logger   *slog.Logger
	Timeout  time.Duration
	BasePath string // например, "/api"; если пустой — роуты регистрируются на корне.
	Verifier *auth.Verifier
	Metrics  *metrics.Decisions
}

// NewRouter собирает http.Handler с chi и подключёнными middleware/роутами.
func NewRouter(svc handlers.Service, opts Options) http.Handler {
	root := chi.NewRouter()

	// Middleware (внешний -> внутренний).
	root.Use(
		middleware.Recover(),            // безопасно ловим паники
		middleware.RequestID(),          // формируем/прокидываем X-Request-Id (до логирования!)
		middleware.Logging(opts.Logger), // кладём request-scoped логгер в контекст и логируем
		middleware.Actor(opts.Verifier), // пользователь из Bearer-токена или анонимный
	)
	if opts.Timeout > 0 {
		root.Use(middleware.Timeout(opts.Timeout)) // общий дедлайн запроса
	}

	h := handlers.New(svc, opts.Metrics)

	if opts.BasePath != "" {
		sub := chi.NewRouter()
		registerRoutes(sub, h)
		root.Mount(opts.BasePath, sub)
		return root
	}

	registerRoutes(root, h)
	return root
}

// registerRoutes — единая точка регистрации всех REST-эндпойнтов.
func registerRoutes(r chi.Router, h *handlers.Handlers) {
	// permalink и модерация
	r.Get("/comment/{id}", h.Permalink)
	r.Post("/comment/{id}/approve", h.Approve)
	r.Get("/node/{id}/comments", h.LegacyNode)

	// форма ответа
	for _, pattern := range []string{
		"/comment/reply/{type}/{id}/{field}",
		"/comment/reply/{type}/{id}/{field}/{pid}",
	} {
		r.Get(pattern, h.ReplyForm)
		r.Post(pattern, h.ReplyForm)
		r.Post(pattern+"/submit", h.SubmitReply)
	}

	// новые комментарии
	r.Post("/comments/render_new_comments_node_links", h.NewCommentsLinks)
	r.Post("/history/{type}/{id}/read", h.MarkRead)
}
