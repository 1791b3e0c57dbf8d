package middleware

import (
	"log/slog"
	"net/http"

	"github.com/pribylovaa/comment-router/internal/auth"
	apierrors "github.com/pribylovaa/comment-router/internal/errors"
	logctx "github.com/pribylovaa/comment-router/pkg/log"
)

// Actor разбирает Authorization: Bearer и кладёт models.Actor в контекст (auth.WithActor).
// Без заголовка — анонимный пользователь с правами из конфигурации;
// битый или просроченный токен — 401. v == nil — мидлвар no-op.
func Actor(v *auth.Verifier) Middleware {
	return func(next http.Handler) http.Handler {
		if v == nil {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor, err := v.FromHeader(r.Header.Get("Authorization"))
			if err != nil {
				logctx.From(r.Context()).LogAttrs(r.Context(), slog.LevelWarn, "bearer_rejected",
					slog.String("err", err.Error()),
				)
				apierrors.WriteError(w, r, err)
				return
			}

			ctx := auth.WithActor(r.Context(), actor)
			ctx = logctx.With(ctx, slog.String("actor_id", actor.ID.String()))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
