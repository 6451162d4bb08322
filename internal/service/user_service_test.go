package service

import (
	"context"
	"testing"
	"time"

	"github.com/projectblurimedia/Veggie-Tracker/internal/repository/memory"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func TestRegisterAndLogin(t *testing.T) {
	users := NewUserService(memory.NewStore().Users(), testSecret, time.Hour)
	ctx := context.Background()

	reg, err := users.Register(ctx, RegisterRequest{
		FirstName: "Ravi",
		LastName:  "Kumar",
		Username:  "Ravi",
		Password:  "secret1",
		IsAdmin:   true,
	})
	require.NoError(t, err)
	assert.Equal(t, "ravi", reg.User.Username)
	assert.NotEmpty(t, reg.Token)

	res, err := users.Login(ctx, LoginRequest{Username: "RAVI", Password: "secret1"})
	require.NoError(t, err)

	claims := jwt.MapClaims{}
	_, err = jwt.ParseWithClaims(res.Token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	})
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID.String(), claims["sub"])
	assert.Equal(t, true, claims["isAdmin"])
	assert.WithinDuration(t, time.Now().Add(time.Hour), res.ExpiresAt, time.Minute)

	me, err := users.GetUser(ctx, reg.User.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "Ravi", me.FirstName)
}

func TestLoginFailures(t *testing.T) {
	users := NewUserService(memory.NewStore().Users(), testSecret, time.Hour)
	ctx := context.Background()
	_, err := users.Register(ctx, RegisterRequest{FirstName: "Ravi", LastName: "Kumar", Username: "ravi", Password: "secret1"})
	require.NoError(t, err)

	_, err = users.Login(ctx, LoginRequest{Username: "ravi", Password: "wrong"})
	assertKind(t, ErrUnauthorized, err)

	_, err = users.Login(ctx, LoginRequest{Username: "nobody", Password: "secret1"})
	assertKind(t, ErrUnauthorized, err)
}

func TestRegisterRejects(t *testing.T) {
	users := NewUserService(memory.NewStore().Users(), testSecret, time.Hour)
	ctx := context.Background()
	_, err := users.Register(ctx, RegisterRequest{FirstName: "Ravi", LastName: "Kumar", Username: "ravi", Password: "secret1"})
	require.NoError(t, err)

	_, err = users.Register(ctx, RegisterRequest{FirstName: "R", LastName: "K", Username: "ravi", Password: "secret1"})
	assertKind(t, ErrConflict, err)

	_, err = users.Register(ctx, RegisterRequest{FirstName: "R", LastName: "K", Username: "other", Password: "123"})
	assertKind(t, ErrValidation, err)

	_, err = users.Register(ctx, RegisterRequest{Username: "other", Password: "secret1"})
	assertKind(t, ErrValidation, err)
}
