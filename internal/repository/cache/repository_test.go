package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/you-humble/pcbuilder/internal/model"
	"github.com/you-humble/pcbuilder/internal/service/mocks"
)

func fakeGPU() *model.Part {
	return &model.Part{
		ID:       gofakeit.UUID(),
		Name:     gofakeit.ProductName(),
		Category: model.CategoryGPU,
		Price:    gofakeit.Price(100, 2000),
	}
}

func TestPartsByCategoryCached(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	gpus := []*model.Part{fakeGPU(), fakeGPU()}

	next := mocks.NewMockCatalogProvider(t)
	next.On("PartsByCategory", mock.Anything, model.CategoryGPU).Return(gpus, nil).Once()

	repo := NewPartRepository(next, 16, time.Minute)

	first, err := repo.PartsByCategory(ctx, model.CategoryGPU)
	require.NoError(t, err)
	second, err := repo.PartsByCategory(ctx, model.CategoryGPU)
	require.NoError(t, err)
	assert.Equal(t, gpus, first)
	assert.Equal(t, gpus, second)

	second[0] = nil
	third, err := repo.PartsByCategory(ctx, model.CategoryGPU)
	require.NoError(t, err)
	assert.Equal(t, gpus, third)

	got, err := repo.PartByID(ctx, gpus[1].ID)
	require.NoError(t, err)
	assert.Same(t, gpus[1], got)
}

func TestPartByIDErrorsAreNotCached(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	p := fakeGPU()

	next := mocks.NewMockCatalogProvider(t)
	next.On("PartByID", mock.Anything, p.ID).Return(nil, model.ErrPartNotFound).Once()
	next.On("PartByID", mock.Anything, p.ID).Return(p, nil).Once()

	repo := NewPartRepository(next, 16, 0)

	_, err := repo.PartByID(ctx, p.ID)
	require.ErrorIs(t, err, model.ErrPartNotFound)

	for range 3 {
		got, err := repo.PartByID(ctx, p.ID)
		require.NoError(t, err)
		assert.Same(t, p, got)
	}
}

func TestPurge(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	wantErr := errors.New("mongo down")

	next := mocks.NewMockCatalogProvider(t)
	next.On("PartsByCategory", mock.Anything, model.CategoryCPU).Return([]*model.Part{}, nil).Once()
	next.On("PartsByCategory", mock.Anything, model.CategoryCPU).Return(nil, wantErr).Once()

	repo := NewPartRepository(next, 4, time.Minute)

	_, err := repo.PartsByCategory(ctx, model.CategoryCPU)
	require.NoError(t, err)

	repo.Purge()

	_, err = repo.PartsByCategory(ctx, model.CategoryCPU)
	require.ErrorIs(t, err, wantErr)
}
