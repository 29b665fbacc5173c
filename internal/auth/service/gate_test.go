package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAuthorizationGate(t *testing.T) {
	ctx := context.Background()

	t.Run("listed user is promoted", func(t *testing.T) {
		f := newFixture(t)
		u := f.register(t, "Root", adminEmail, "correcthorse")
		require.NoError(t, f.store.Users().SetAdmin(ctx, u.ID, false))

		err := f.gate.Authorize(ctx, Identity{UserID: u.ID, Email: u.Email})
		require.NoError(t, err)

		got, err := f.store.Users().GetUserByID(ctx, u.ID)
		require.NoError(t, err)
		require.True(t, got.IsAdmin)
	})

	t.Run("stored flag alone is not enough", func(t *testing.T) {
		f := newFixture(t)
		u := f.register(t, "Ana", "ana@example.com", "correcthorse")
		require.NoError(t, f.store.Users().SetAdmin(ctx, u.ID, true))

		err := f.gate.Authorize(ctx, Identity{UserID: u.ID, Email: u.Email, IsAdmin: true})
		require.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("listed email without a record", func(t *testing.T) {
		f := newFixture(t)
		err := f.gate.Authorize(ctx, Identity{UserID: "gone", Email: adminEmail})
		require.ErrorIs(t, err, ErrUnauthenticated)
	})

	t.Run("email match ignores case", func(t *testing.T) {
		f := newFixture(t)
		u := f.register(t, "Root", "ROOT@example.com", "correcthorse")
		require.NoError(t, f.gate.Authorize(ctx, Identity{UserID: u.ID, Email: u.Email}))
	})
}
