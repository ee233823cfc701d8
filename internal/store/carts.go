package store

import (
	"context"
	"database/sql"

	"github.com/Nishantvidhuri/storebackend/internal/models"
)

// GetCartByUserID retrieves a user's cart, or nil when none exists
func (s *Store) GetCartByUserID(ctx context.Context, userID int64) (*models.Cart, error) {
	var cart models.Cart
	err := s.db.GetContext(ctx, &cart, "SELECT * FROM carts WHERE user_id = $1", userID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

// GetOrCreateCart returns the user's cart, creating it on first use
func (s *Store) GetOrCreateCart(ctx context.Context, userID int64) (*models.Cart, error) {
	var cart models.Cart
	query := `
		INSERT INTO carts (user_id)
		VALUES ($1)
		ON CONFLICT (user_id) DO UPDATE SET updated_at = NOW()
		RETURNING id, user_id, created_at, updated_at`

	if err := s.db.GetContext(ctx, &cart, query, userID); err != nil {
		return nil, err
	}
	return &cart, nil
}

// GetCartItems retrieves the raw line items of a cart, no catalog join
func (s *Store) GetCartItems(ctx context.Context, cartID int64) ([]models.CartItem, error) {
	var items []models.CartItem
	err := s.db.SelectContext(ctx, &items,
		"SELECT * FROM cart_items WHERE cart_id = $1 ORDER BY id", cartID)
	return items, err
}

// GetCartItemViews joins cart lines against the catalog. The inner join
// silently drops lines whose product has been deleted; that soft filter is
// deliberate and applies only to this read path, not to order placement.
func (s *Store) GetCartItemViews(ctx context.Context, cartID int64) ([]models.CartItemView, error) {
	var items []models.CartItemView
	err := s.db.SelectContext(ctx, &items, `
		SELECT ci.id, ci.product_id, p.name, p.price, p.image, ci.quantity
		FROM cart_items ci
		JOIN products p ON p.id = ci.product_id
		WHERE ci.cart_id = $1
		ORDER BY ci.id`, cartID)
	return items, err
}

// UpsertCartItem adds quantity to an existing line or inserts a new one
func (s *Store) UpsertCartItem(ctx context.Context, cartID, productID int64, quantity int) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO cart_items (cart_id, product_id, quantity)
		VALUES ($1, $2, $3)
		ON CONFLICT (cart_id, product_id)
		DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity`,
		cartID, productID, quantity)
	return err
}

// SetCartItemQuantity replaces a line's quantity
func (s *Store) SetCartItemQuantity(ctx context.Context, cartID, itemID int64, quantity int) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE cart_items SET quantity = $1 WHERE cart_id = $2 AND id = $3",
		quantity, cartID, itemID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// DeleteCartItem removes a single line
func (s *Store) DeleteCartItem(ctx context.Context, cartID, itemID int64) error {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM cart_items WHERE cart_id = $1 AND id = $2", cartID, itemID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// DeleteCartByUserID removes the cart row and, by cascade, its items.
// Deleting an absent cart is not an error.
func (s *Store) DeleteCartByUserID(ctx context.Context, userID int64) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM carts WHERE user_id = $1", userID)
	return err
}
