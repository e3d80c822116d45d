package auth

import (
	"context"
	"io"
	"log"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soulstitch/storefront/internal/cache"
	"github.com/soulstitch/storefront/internal/docstore"
)

func newService(t *testing.T) *Service {
	t.Helper()
	tokens, err := NewTokens("test-secret", time.Hour)
	require.NoError(t, err)
	return NewService(NewRepository(docstore.NewMemory()), tokens, cache.NewMemory(), log.New(io.Discard, "", 0))
}

func TestSignUpSignIn(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	sess, err := svc.SignUp(ctx, SignUpInput{Email: " Asha@Example.com ", Password: "secret1", DisplayName: "Asha"})
	require.NoError(t, err)
	assert.NotEmpty(t, sess.Token)
	assert.Equal(t, "asha@example.com", sess.User.Email)
	assert.Equal(t, "Asha", sess.User.DisplayName)

	_, err = svc.SignUp(ctx, SignUpInput{Email: "asha@example.com", Password: "another1", DisplayName: "A"})
	require.ErrorIs(t, err, ErrEmailTaken)

	sess2, err := svc.SignIn(ctx, "ASHA@example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, sess.User.ID, sess2.User.ID)

	_, err = svc.SignIn(ctx, "asha@example.com", "wrong-password")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.SignIn(ctx, "nobody@example.com", "secret1")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestSignUp_Validation(t *testing.T) {
	svc := newService(t)
	tests := []SignUpInput{
		{Email: "", Password: "secret1", DisplayName: "A"},
		{Email: "a@b.co", Password: "", DisplayName: "A"},
		{Email: "a@b.co", Password: "secret1", DisplayName: "  "},
		{Email: "not-an-email", Password: "secret1", DisplayName: "A"},
		{Email: "a@b.co", Password: "123", DisplayName: "A"},
	}
	for _, in := range tests {
		_, err := svc.SignUp(context.Background(), in)
		require.ErrorIs(t, err, ErrValidation, "input %+v", in)
	}
}

func TestAuthenticateAndSignOut(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	sess, err := svc.SignUp(ctx, SignUpInput{Email: "asha@example.com", Password: "secret1", DisplayName: "Asha"})
	require.NoError(t, err)

	id, err := svc.Authenticate(ctx, sess.Token)
	require.NoError(t, err)
	assert.Equal(t, sess.User.ID, id.UserID)
	assert.Equal(t, "asha@example.com", id.Email)

	require.NoError(t, svc.SignOut(ctx, sess.Token))
	_, err = svc.Authenticate(ctx, sess.Token)
	require.ErrorIs(t, err, ErrInvalidToken)

	_, err = svc.Authenticate(ctx, "garbage")
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokens_Expiry(t *testing.T) {
	tokens, err := NewTokens("test-secret", time.Minute)
	require.NoError(t, err)

	now := time.Now()
	tokens.now = func() time.Time { return now }
	tok, _, err := tokens.Issue(User{ID: "u1", Email: "a@b.co"})
	require.NoError(t, err)

	_, err = tokens.Parse(tok)
	require.NoError(t, err)

	now = now.Add(2 * time.Minute)
	_, err = tokens.Parse(tok)
	require.ErrorIs(t, err, ErrInvalidToken)

	other, err := NewTokens("other-secret", time.Minute)
	require.NoError(t, err)
	_, err = other.Parse(tok)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestUpdateProfile(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	sess, err := svc.SignUp(ctx, SignUpInput{Email: "asha@example.com", Password: "secret1", DisplayName: "Asha"})
	require.NoError(t, err)

	name := "Asha K"
	photo := "https://cdn/p.jpg"
	p, err := svc.UpdateProfile(ctx, sess.User.ID, ProfileUpdate{DisplayName: &name, PhotoURL: &photo})
	require.NoError(t, err)
	assert.Equal(t, "Asha K", p.DisplayName)
	assert.Equal(t, "https://cdn/p.jpg", p.PhotoURL)

	empty := " "
	_, err = svc.UpdateProfile(ctx, sess.User.ID, ProfileUpdate{DisplayName: &empty})
	require.ErrorIs(t, err, ErrValidation)

	_, err = svc.UpdateProfile(ctx, "", ProfileUpdate{DisplayName: &name})
	require.ErrorIs(t, err, ErrNotAuthenticated)

	u, err := svc.User(ctx, sess.User.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, u.PasswordHash)
	assert.Equal(t, "Asha K", u.DisplayName)
}
