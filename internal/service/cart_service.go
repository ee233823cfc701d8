package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Nishantvidhuri/storebackend/internal/models"
	"github.com/Nishantvidhuri/storebackend/internal/util"

	"go.uber.org/zap"
)

// CartStore is the persistence surface the cart operations need
type CartStore interface {
	GetCartByUserID(ctx context.Context, userID int64) (*models.Cart, error)
	GetOrCreateCart(ctx context.Context, userID int64) (*models.Cart, error)
	GetCartItemViews(ctx context.Context, cartID int64) ([]models.CartItemView, error)
	GetProductByID(ctx context.Context, id int64) (*models.Product, error)
	UpsertCartItem(ctx context.Context, cartID, productID int64, quantity int) error
	SetCartItemQuantity(ctx context.Context, cartID, itemID int64, quantity int) error
	DeleteCartItem(ctx context.Context, cartID, itemID int64) error
	DeleteCartByUserID(ctx context.Context, userID int64) error
}

// CartView is a cart resolved against the catalog for display
type CartView struct {
	UserID int64                 `json:"user_id"`
	Items  []models.CartItemView `json:"items"`
}

// CartService manages the per-user pending purchase
type CartService struct {
	store  CartStore
	logger *zap.Logger
}

// NewCartService creates a new cart service
func NewCartService(store CartStore) *CartService {
	return &CartService{store: store, logger: util.GetLogger()}
}

// GetCart returns the user's cart for display. Lines whose product no
// longer resolves are silently dropped; a missing cart reads as empty.
func (s *CartService) GetCart(ctx context.Context, userID int64) (*CartView, error) {
	view := &CartView{UserID: userID, Items: []models.CartItemView{}}

	cart, err := s.store.GetCartByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	if cart == nil {
		return view, nil
	}

	items, err := s.store.GetCartItemViews(ctx, cart.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart items: %w", err)
	}
	if items != nil {
		view.Items = items
	}
	return view, nil
}

// AddItem puts quantity of a product into the cart, creating the cart on
// first use and merging into an existing line. The product must exist now;
// it is not re-validated afterward.
func (s *CartService) AddItem(ctx context.Context, userID, productID int64, quantity int) (*CartView, error) {
	if productID <= 0 || quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	_, err := s.store.GetProductByID(ctx, productID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to validate product: %w", err)
	}

	cart, err := s.store.GetOrCreateCart(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to create cart: %w", err)
	}

	if err := s.store.UpsertCartItem(ctx, cart.ID, productID, quantity); err != nil {
		return nil, fmt.Errorf("failed to add item to cart: %w", err)
	}

	util.CartItemsAddedTotal.Inc()
	s.logger.Debug("Cart item added",
		zap.Int64("user_id", userID),
		zap.Int64("product_id", productID),
		zap.Int("quantity", quantity))

	return s.GetCart(ctx, userID)
}

// UpdateItemQuantity replaces a line's quantity
func (s *CartService) UpdateItemQuantity(ctx context.Context, userID, itemID int64, quantity int) (*CartView, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	cart, err := s.store.GetCartByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	if cart == nil {
		return nil, ErrCartNotFound
	}

	err = s.store.SetCartItemQuantity(ctx, cart.ID, itemID, quantity)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCartItemNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update cart item: %w", err)
	}

	return s.GetCart(ctx, userID)
}

// RemoveItem deletes a single line from the cart
func (s *CartService) RemoveItem(ctx context.Context, userID, itemID int64) (*CartView, error) {
	cart, err := s.store.GetCartByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	if cart == nil {
		return nil, ErrCartNotFound
	}

	err = s.store.DeleteCartItem(ctx, cart.ID, itemID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCartItemNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to remove cart item: %w", err)
	}

	return s.GetCart(ctx, userID)
}

// ClearCart deletes the cart row entirely; clearing an absent cart succeeds
func (s *CartService) ClearCart(ctx context.Context, userID int64) error {
	if err := s.store.DeleteCartByUserID(ctx, userID); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}
