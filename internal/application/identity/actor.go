package identity

import (
	"context"

	"github.com/DiegoEspinoz/Proyecto-innovacion-digital/internal/domain/user"
)

// Actor is the resolved identity acting on a request. It is resolved per
// request and never persisted by the order core itself.
type Actor struct {
	ID    uint
	Email string
	Name  string
	Role  user.Role
	Demo  bool
}

func (a *Actor) IsAdmin() bool {
	return a != nil && a.Role == user.RoleAdmin
}

type actorKey struct{}

// ContextWithActor stores the resolved actor as an explicit context value.
// The order core reads it from the context it is handed, never from ambient
// per-request globals.
func ContextWithActor(ctx context.Context, actor *Actor) context.Context {
	if actor == nil {
		return ctx
	}
	return context.WithValue(ctx, actorKey{}, actor)
}

// ActorFromContext returns the resolved actor, or nil for anonymous requests.
func ActorFromContext(ctx context.Context) *Actor {
	if ctx == nil {
		return nil
	}
	if actor, ok := ctx.Value(actorKey{}).(*Actor); ok {
		return actor
	}
	return nil
}
