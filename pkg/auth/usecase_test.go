package auth_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artem13815/resumebuilder/pkg/auth"
	"github.com/artem13815/resumebuilder/pkg/repository/memory"
)

type tokenStub struct{}

func (tokenStub) Generate(_ context.Context, u auth.User) (string, error) {
	return "token-" + u.Email, nil
}

func TestRegisterThenLogin(t *testing.T) {
	ctx := context.Background()
	svc := auth.NewAuthService(memory.NewUserRepository(), tokenStub{})

	reg, err := svc.Register(ctx, "  Ann@Example.com ", "secret-pass")
	require.NoError(t, err)
	assert.Equal(t, "ann@example.com", reg.User.Email)
	assert.False(t, reg.User.IsAdmin)
	assert.Equal(t, "token-ann@example.com", reg.Token)

	login, err := svc.Login(ctx, "ANN@example.com", "secret-pass")
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID, login.User.ID)

	_, err = svc.Login(ctx, "ann@example.com", "wrong-pass")
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestRegisterRejectsDuplicatesAndBadInput(t *testing.T) {
	ctx := context.Background()
	svc := auth.NewAuthService(memory.NewUserRepository(), tokenStub{})

	_, err := svc.Register(ctx, "bob@example.com", "secret-pass")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "BOB@example.com", "secret-pass")
	assert.ErrorIs(t, err, auth.ErrUserAlreadyExists)

	_, err = svc.Register(ctx, "", "secret-pass")
	assert.ErrorIs(t, err, auth.ErrInvalidEmail)

	_, err = svc.Register(ctx, "Bob <bob2@example.com>", "secret-pass")
	assert.ErrorIs(t, err, auth.ErrInvalidEmail)

	_, err = svc.Register(ctx, "not-an-email", "secret-pass")
	assert.ErrorIs(t, err, auth.ErrInvalidEmail)

	_, err = svc.Register(ctx, "carl@example.com", "short")
	assert.ErrorIs(t, err, auth.ErrWeakPassword)
}

func TestRegisterMarksConfiguredAdmins(t *testing.T) {
	svc := auth.NewAuthService(memory.NewUserRepository(), tokenStub{}, "Root@Example.com")

	res, err := svc.Register(context.Background(), "root@example.com", "secret-pass")
	require.NoError(t, err)
	assert.True(t, res.User.IsAdmin)
}

func TestLoginUnknownUser(t *testing.T) {
	svc := auth.NewAuthService(memory.NewUserRepository(), tokenStub{})
	_, err := svc.Login(context.Background(), "ghost@example.com", "secret-pass")
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestMe(t *testing.T) {
	ctx := context.Background()
	svc := auth.NewAuthService(memory.NewUserRepository(), tokenStub{})
	reg, err := svc.Register(ctx, "dana@example.com", "secret-pass")
	require.NoError(t, err)

	me, err := svc.Me(ctx, auth.Principal{UserID: reg.User.ID})
	require.NoError(t, err)
	assert.Equal(t, "dana@example.com", me.Email)

	_, err = svc.Me(ctx, auth.Principal{UserID: uuid.New()})
	assert.ErrorIs(t, err, auth.ErrNotFound)
}
