package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/Freeeeeet/studio_booking_bot/internal/model"
)

func TestUserService_TouchKeepsPhone(t *testing.T) {
	repo := &fakeUserRepo{users: map[int64]*model.User{}}
	svc := NewUserService(repo, &fakeAdminRepo{}, zaptest.NewLogger(t))
	ctx := context.Background()

	require.NoError(t, svc.Touch(ctx, &model.User{ID: 7, FirstName: "Анна"}))
	require.NoError(t, svc.SetPhone(ctx, 7, " +79990000000 "))
	require.NoError(t, svc.Touch(ctx, &model.User{ID: 7, FirstName: "Анна", Username: "anna"}))

	u, err := svc.GetByID(ctx, 7)
	require.NoError(t, err)
	require.NotNil(t, u.Phone)
	assert.Equal(t, "+79990000000", *u.Phone)
	assert.Equal(t, "anna", u.Username)

	assert.ErrorIs(t, svc.SetPhone(ctx, 8, "+7"), model.ErrNotFound)
	assert.ErrorIs(t, svc.SetPhone(ctx, 7, "  "), model.ErrValidation)
	assert.ErrorIs(t, svc.Touch(ctx, &model.User{}), model.ErrValidation)
}

func TestUserService_Admins(t *testing.T) {
	admins := &fakeAdminRepo{}
	svc := NewUserService(&fakeUserRepo{users: map[int64]*model.User{}}, admins, zaptest.NewLogger(t))
	ctx := context.Background()

	require.NoError(t, svc.BootstrapAdmins(ctx, []int64{100, 0, 200, 100}))

	ids, err := svc.AdminIDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int64{100, 200}, ids)

	ok, err := svc.IsAdmin(ctx, 200)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.IsAdmin(ctx, 7)
	require.NoError(t, err)
	assert.False(t, ok)
}
