package identity_test

import (
	"context"
	"testing"

	"github.com/DiegoEspinoz/Proyecto-innovacion-digital/internal/application/auth"
	"github.com/DiegoEspinoz/Proyecto-innovacion-digital/internal/application/identity"
	"github.com/DiegoEspinoz/Proyecto-innovacion-digital/internal/domain/user"
	"github.com/DiegoEspinoz/Proyecto-innovacion-digital/internal/infrastructure/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedUser(t *testing.T, repo user.Repository, email, name string, role user.Role) *user.User {
	t.Helper()
	u, err := user.New(email, name, "not-a-real-hash", role)
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), u))
	return u
}

func TestResolveAnonymous(t *testing.T) {
	r := identity.NewResolver(memory.NewUserRepository(), auth.NewTokenManager("s"), true)

	actor, err := r.Resolve(context.Background(), identity.Metadata{})
	require.NoError(t, err)
	assert.Nil(t, actor)
}

func TestResolveExplicitHeader(t *testing.T) {
	users := memory.NewUserRepository()
	u := seedUser(t, users, "ana@example.com", "Ana", user.RoleCustomer)
	r := identity.NewResolver(users, auth.NewTokenManager("s"), true)

	actor, err := r.Resolve(context.Background(), identity.Metadata{UserID: "1"})
	require.NoError(t, err)
	require.NotNil(t, actor)
	assert.Equal(t, u.ID, actor.ID)
	assert.Equal(t, user.RoleCustomer, actor.Role)
	assert.False(t, actor.Demo)
}

func TestResolveExplicitHeaderUnknownUser(t *testing.T) {
	r := identity.NewResolver(memory.NewUserRepository(), auth.NewTokenManager("s"), true)

	_, err := r.Resolve(context.Background(), identity.Metadata{UserID: "404"})
	assert.ErrorIs(t, err, identity.ErrUserNotFound)
}

func TestResolveExplicitHeaderMalformed(t *testing.T) {
	r := identity.NewResolver(memory.NewUserRepository(), auth.NewTokenManager("s"), true)

	_, err := r.Resolve(context.Background(), identity.Metadata{UserID: "not-a-number"})
	assert.ErrorIs(t, err, identity.ErrUnauthenticated)
}

func TestExplicitHeaderDisabledFallsThrough(t *testing.T) {
	users := memory.NewUserRepository()
	seedUser(t, users, "ana@example.com", "Ana", user.RoleCustomer)
	r := identity.NewResolver(users, auth.NewTokenManager("s"), false)

	// With the header path off, a lone X-User-Id resolves to anonymous.
	actor, err := r.Resolve(context.Background(), identity.Metadata{UserID: "1"})
	require.NoError(t, err)
	assert.Nil(t, actor)
}

func TestExplicitHeaderBeatsValidBearer(t *testing.T) {
	users := memory.NewUserRepository()
	header := seedUser(t, users, "header@example.com", "Header", user.RoleCustomer)
	bearer := seedUser(t, users, "bearer@example.com", "Bearer", user.RoleAdmin)

	tokens := auth.NewTokenManager("s")
	token, err := tokens.Issue(bearer.Email, string(bearer.Role))
	require.NoError(t, err)

	r := identity.NewResolver(users, tokens, true)
	actor, err := r.Resolve(context.Background(), identity.Metadata{UserID: "1", Bearer: token})
	require.NoError(t, err)
	require.NotNil(t, actor)

	// Paths are mutually exclusive; the first applicable one decides alone.
	assert.Equal(t, header.ID, actor.ID)
	assert.Equal(t, user.RoleCustomer, actor.Role)
}

func TestResolveDemoAdmin(t *testing.T) {
	r := identity.NewResolver(memory.NewUserRepository(), auth.NewTokenManager("s"), true)

	actor, err := r.Resolve(context.Background(), identity.Metadata{
		DemoMode: "true",
		DemoUser: "admin@ecoliving.com",
	})
	require.NoError(t, err)
	require.NotNil(t, actor)
	assert.Equal(t, user.RoleAdmin, actor.Role)
	assert.True(t, actor.Demo)
	assert.True(t, actor.IsAdmin())
}

func TestResolveDemoOtherMarkerIsCustomer(t *testing.T) {
	r := identity.NewResolver(memory.NewUserRepository(), auth.NewTokenManager("s"), true)

	for _, marker := range []string{"shopper@ecoliving.com", "Admin@ecoliving.com"} {
		actor, err := r.Resolve(context.Background(), identity.Metadata{
			DemoMode: "true",
			DemoUser: marker,
		})
		require.NoError(t, err)
		require.NotNil(t, actor)
		assert.Equal(t, user.RoleCustomer, actor.Role, "marker %q", marker)
		assert.True(t, actor.Demo)
	}
}

func TestResolveDemoRequiresExactModeValue(t *testing.T) {
	r := identity.NewResolver(memory.NewUserRepository(), auth.NewTokenManager("s"), true)

	// Any other mode value deactivates the demo path entirely.
	actor, err := r.Resolve(context.Background(), identity.Metadata{
		DemoMode: "TRUE",
		DemoUser: "admin@ecoliving.com",
	})
	require.NoError(t, err)
	assert.Nil(t, actor)
}

func TestResolveBearer(t *testing.T) {
	users := memory.NewUserRepository()
	u := seedUser(t, users, "ana@example.com", "Ana", user.RoleAdmin)

	tokens := auth.NewTokenManager("s")
	token, err := tokens.Issue(u.Email, string(u.Role))
	require.NoError(t, err)

	r := identity.NewResolver(users, tokens, false)
	actor, err := r.Resolve(context.Background(), identity.Metadata{Bearer: token})
	require.NoError(t, err)
	require.NotNil(t, actor)
	assert.Equal(t, u.ID, actor.ID)
	assert.Equal(t, user.RoleAdmin, actor.Role)
}

func TestResolveBearerInvalidToken(t *testing.T) {
	users := memory.NewUserRepository()
	seedUser(t, users, "ana@example.com", "Ana", user.RoleCustomer)

	other := auth.NewTokenManager("other-secret")
	forged, err := other.Issue("ana@example.com", "admin")
	require.NoError(t, err)

	r := identity.NewResolver(users, auth.NewTokenManager("s"), false)

	for _, bearer := range []string{"garbage", forged} {
		_, err := r.Resolve(context.Background(), identity.Metadata{Bearer: bearer})
		assert.ErrorIs(t, err, identity.ErrUnauthenticated, "bearer %q", bearer)
	}
}

func TestResolveBearerUnknownSubject(t *testing.T) {
	tokens := auth.NewTokenManager("s")
	token, err := tokens.Issue("ghost@example.com", "customer")
	require.NoError(t, err)

	r := identity.NewResolver(memory.NewUserRepository(), tokens, false)
	_, err = r.Resolve(context.Background(), identity.Metadata{Bearer: token})
	assert.ErrorIs(t, err, identity.ErrUserNotFound)
}
