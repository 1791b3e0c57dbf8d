package auth

import (
	"context"

	"github.com/pribylovaa/comment-router/internal/models"
)

type ctxKey struct{}

// WithActor кладёт пользователя запроса в контекст.
func WithActor(ctx context.Context, a models.Actor) context.Context {
	return context.WithValue(ctx, ctxKey{}, a)
}

// ActorFrom достаёт пользователя из контекста. ok == false — транспорт его не положил.
func ActorFrom(ctx context.Context) (models.Actor, bool) {
	a, ok := ctx.Value(ctxKey{}).(models.Actor)
	return a, ok
}
