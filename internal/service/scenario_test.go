package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/bookshelf-service/internal/domain"
)

// Exercises the full flow: two accounts, one shelf each, token refresh, and
// the guarantee that neither account can see the other's records.
func TestTwoUserLifecycle(t *testing.T) {
	authSvc, _, tokens := newTestAuthService(t)
	bookSvc, _ := newTestBookService()
	ctx := context.Background()

	alice, err := authSvc.Register(ctx, "alice", "pw1")
	require.NoError(t, err)
	bob, err := authSvc.Register(ctx, "bob", "pw2")
	require.NoError(t, err)
	assert.NotEqual(t, alice.ID, bob.ID)

	alicePair, err := authSvc.Login(ctx, "alice", "pw1")
	require.NoError(t, err)
	_, err = authSvc.Login(ctx, "bob", "pw2")
	require.NoError(t, err)

	book, err := bookSvc.CreateBook(ctx, alice.ID, BookInput{Title: "Solaris", Author: "Stanislaw Lem"})
	require.NoError(t, err)
	assert.Equal(t, alice.ID, book.OwnerID)

	_, err = bookSvc.GetBook(ctx, bob.ID, book.ID)
	assert.Equal(t, "NOT_FOUND", domainErrorCode(t, err))

	got, err := bookSvc.GetBook(ctx, alice.ID, book.ID)
	require.NoError(t, err)
	assert.Equal(t, book.ID, got.ID)

	// A refreshed access token works exactly like the original one.
	refreshed, err := authSvc.Refresh(ctx, alicePair.RefreshToken)
	require.NoError(t, err)
	claims, err := tokens.ParseToken(refreshed.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Subject)
	assert.Equal(t, domain.TokenKindAccess, claims.Kind)

	_, err = bookSvc.GetBook(ctx, alice.ID, book.ID)
	require.NoError(t, err)
}
