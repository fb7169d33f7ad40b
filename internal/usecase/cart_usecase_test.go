package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gamerverse/internal/domain/entity"
	"gamerverse/pkg/errors"
)

func newCartFixture() (*memStore, *CartUseCase) {
	s := newMemStore()
	s.games["g1"] = &entity.Game{ID: "g1", Slug: "hades", Title: "Hades", Price: 20, ImageURL: "https://cdn.example.com/hades.png"}
	return s, NewCartUseCase(fakeCartRepo{s}, fakeGameRepo{s})
}

func TestAddItemSnapshotsGame(t *testing.T) {
	s, uc := newCartFixture()

	item, err := uc.AddItem(context.Background(), "u1", "g1", 1)
	require.NoError(t, err)
	assert.Equal(t, "Hades", item.Title)
	assert.Equal(t, 20.0, item.Price)

	s.games["g1"].Price = 99
	item, err = uc.AddItem(context.Background(), "u1", "g1", 2)
	require.NoError(t, err)
	assert.Equal(t, 3, item.Quantity)
	assert.Equal(t, 20.0, item.Price)

	view, err := uc.GetCart(context.Background(), "u1")
	require.NoError(t, err)
	assert.Len(t, view.Items, 1)
	assert.Equal(t, 60.0, view.Total)
	assert.Equal(t, 3, view.ItemCount)
}

func TestAddItemValidation(t *testing.T) {
	_, uc := newCartFixture()

	_, err := uc.AddItem(context.Background(), "u1", "g1", 0)
	assert.True(t, errors.Is(err, errors.CodeBadRequest))

	_, err = uc.AddItem(context.Background(), "u1", "missing", 1)
	assert.True(t, errors.Is(err, errors.CodeNotFound))

	_, err = uc.AddItem(context.Background(), "u1", "g1", 99)
	require.NoError(t, err)
	_, err = uc.AddItem(context.Background(), "u1", "g1", 1)
	assert.True(t, errors.Is(err, errors.CodeBadRequest))
}

func TestUpdateAndRemoveItem(t *testing.T) {
	s, uc := newCartFixture()
	_, err := uc.AddItem(context.Background(), "u1", "g1", 1)
	require.NoError(t, err)

	item, err := uc.UpdateQuantity(context.Background(), "u1", "g1", 5)
	require.NoError(t, err)
	assert.Equal(t, 5, item.Quantity)

	require.NoError(t, uc.RemoveItem(context.Background(), "u1", "g1"))
	assert.Equal(t, 0, s.cartLen("u1"))
	assert.True(t, errors.Is(uc.RemoveItem(context.Background(), "u1", "g1"), errors.CodeNotFound))
}

func TestEmptyCartView(t *testing.T) {
	_, uc := newCartFixture()

	view, err := uc.GetCart(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Empty(t, view.Items)
	assert.Equal(t, 0.0, view.Total)
}
