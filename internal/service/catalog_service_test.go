package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/Freeeeeet/studio_booking_bot/internal/model"
)

func TestCatalogService_Seed(t *testing.T) {
	l := &ledger{services: map[int64]*model.Service{}}
	repo := &fakeServiceRepo{l: l}
	svc := NewCatalogService(repo, zaptest.NewLogger(t))
	ctx := context.Background()

	require.NoError(t, svc.Seed(ctx, DefaultServices))
	require.NoError(t, svc.Seed(ctx, DefaultServices))

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, len(DefaultServices))
	for i := 1; i < len(list); i++ {
		assert.LessOrEqual(t, list[i-1].Price, list[i].Price)
	}

	// существующие записи не перезаписываются
	l.services[list[0].ID].Price = 1
	require.NoError(t, svc.Seed(ctx, DefaultServices))
	got, err := svc.GetByID(ctx, list[0].ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.Price)

	missing, err := svc.GetByID(ctx, 999)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestCatalogService_SeedRejectsInvalid(t *testing.T) {
	svc := NewCatalogService(&fakeServiceRepo{l: &ledger{services: map[int64]*model.Service{}}}, zaptest.NewLogger(t))

	err := svc.Seed(context.Background(), []model.Service{{Name: "Без длительности", Price: 100}})
	assert.ErrorIs(t, err, model.ErrValidation)
}

func TestDefaultServices(t *testing.T) {
	require.Len(t, DefaultServices, 10)
	names := map[string]bool{}
	for _, s := range DefaultServices {
		assert.Positive(t, s.DurationMinutes, s.Name)
		assert.False(t, names[s.Name], "duplicate %s", s.Name)
		names[s.Name] = true
	}
}
