package middleware

import (
	"context"

	"github.com/delanoso/safetyhub/pkg/auth"
)

type contextKey string

const ctxActor contextKey = "actor"

const (
	// SessionCookie carries the signed session token.
	SessionCookie = "session"
	// RoleCookie mirrors the user's role for the frontend; it is never trusted.
	RoleCookie = "role"
)

// ActorFromContext returns the caller resolved by Session, if any.
func ActorFromContext(ctx context.Context) (auth.Actor, bool) {
	if ctx == nil {
		return auth.Actor{}, false
	}
	actor, ok := ctx.Value(ctxActor).(auth.Actor)
	return actor, ok
}

// WithActor injects the resolved caller into the context.
func WithActor(ctx context.Context, actor auth.Actor) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxActor, actor)
}
