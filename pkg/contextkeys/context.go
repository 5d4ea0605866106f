package contextkeys

import "context"

// Используем кастомный тип, чтобы избежать коллизий
type contextKey string

// ActorIDContextKey - ключ, по которому храним id действующего
// пользователя (берется из path или заголовка X-Actor-ID).
const ActorIDContextKey = contextKey("actor_id")

// WithActorID кладет id действующего пользователя в контекст.
func WithActorID(ctx context.Context, actorID string) context.Context {
	return context.WithValue(ctx, ActorIDContextKey, actorID)
}

// ActorID достает id действующего пользователя из контекста.
// Пустая строка - актор неизвестен.
func ActorID(ctx context.Context) string {
	if id, ok := ctx.Value(ActorIDContextKey).(string); ok {
		return id
	}
	return ""
}
