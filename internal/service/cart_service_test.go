package service

import (
	"context"
	"testing"

	"github.com/Nishantvidhuri/storebackend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetCartMissingCartReadsEmpty(t *testing.T) {
	svc := NewCartService(newFakeStore())

	view, err := svc.GetCart(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, int64(7), view.UserID)
	assert.Empty(t, view.Items)
}

func TestGetCartDropsDanglingLines(t *testing.T) {
	store := newFakeStore()
	store.seedProduct(models.Product{ID: 1, Name: "Water Purifier", Price: 100})
	store.seedCart(7,
		models.CartItem{ID: 10, ProductID: 1, Quantity: 2},
		models.CartItem{ID: 11, ProductID: 99, Quantity: 1}, // product deleted since
	)

	svc := NewCartService(store)

	view, err := svc.GetCart(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	assert.Equal(t, int64(1), view.Items[0].ProductID)
	assert.Equal(t, "Water Purifier", view.Items[0].Name)
}

func TestAddItemCreatesCartAndMergesLines(t *testing.T) {
	store := newFakeStore()
	store.seedProduct(models.Product{ID: 1, Name: "Water Purifier", Price: 100})

	svc := NewCartService(store)

	view, err := svc.AddItem(context.Background(), 7, 1, 2)
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	assert.Equal(t, 2, view.Items[0].Quantity)

	// same product again merges into the existing line
	view, err = svc.AddItem(context.Background(), 7, 1, 3)
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	assert.Equal(t, 5, view.Items[0].Quantity)
}

func TestAddItemValidation(t *testing.T) {
	store := newFakeStore()
	store.seedProduct(models.Product{ID: 1, Price: 100})
	svc := NewCartService(store)

	_, err := svc.AddItem(context.Background(), 7, 1, 0)
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = svc.AddItem(context.Background(), 7, -1, 1)
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = svc.AddItem(context.Background(), 7, 99, 1)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestUpdateItemQuantity(t *testing.T) {
	store := newFakeStore()
	store.seedProduct(models.Product{ID: 1, Price: 100})
	store.seedCart(7, models.CartItem{ID: 10, ProductID: 1, Quantity: 1})

	svc := NewCartService(store)

	view, err := svc.UpdateItemQuantity(context.Background(), 7, 10, 4)
	require.NoError(t, err)
	assert.Equal(t, 4, view.Items[0].Quantity)

	_, err = svc.UpdateItemQuantity(context.Background(), 7, 10, 0)
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = svc.UpdateItemQuantity(context.Background(), 7, 999, 2)
	assert.ErrorIs(t, err, ErrCartItemNotFound)

	_, err = svc.UpdateItemQuantity(context.Background(), 8, 10, 2)
	assert.ErrorIs(t, err, ErrCartNotFound)
}

func TestRemoveItem(t *testing.T) {
	store := newFakeStore()
	store.seedProduct(models.Product{ID: 1, Price: 100})
	store.seedCart(7, models.CartItem{ID: 10, ProductID: 1, Quantity: 1})

	svc := NewCartService(store)

	view, err := svc.RemoveItem(context.Background(), 7, 10)
	require.NoError(t, err)
	assert.Empty(t, view.Items)

	_, err = svc.RemoveItem(context.Background(), 7, 10)
	assert.ErrorIs(t, err, ErrCartItemNotFound)
}

func TestClearCartIdempotent(t *testing.T) {
	store := newFakeStore()
	store.seedCart(7, models.CartItem{ID: 10, ProductID: 1, Quantity: 1})

	svc := NewCartService(store)

	require.NoError(t, svc.ClearCart(context.Background(), 7))
	assert.Nil(t, store.carts[7])

	// clearing an absent cart still succeeds
	require.NoError(t, svc.ClearCart(context.Background(), 7))
}
