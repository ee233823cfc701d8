package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/Nishantvidhuri/storebackend/internal/models"
)

// PlaceOrderTx inserts the order with its snapshot items and empties the
// originating cart's lines in a single transaction. The cart row itself
// survives with zero items.
func (s *Store) PlaceOrderTx(ctx context.Context, order *models.Order, cartID int64) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `
		INSERT INTO orders (user_id, total_price, payment_method, is_paid, status,
		                    area, landmark, city, state, pincode, instructions)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at, updated_at`

	var id int64
	var createdAt, updatedAt time.Time
	row := tx.QueryRowxContext(ctx, query,
		order.UserID, order.TotalPrice, order.PaymentMethod, order.IsPaid, order.Status,
		order.Address.Area, order.Address.Landmark, order.Address.City,
		order.Address.State, order.Address.Pincode, order.Address.Instructions)
	if err := row.Scan(&id, &createdAt, &updatedAt); err != nil {
		return err
	}
	order.ID = id
	order.CreatedAt = createdAt
	order.UpdatedAt = updatedAt

	for i := range order.Items {
		item := &order.Items[i]
		item.OrderID = order.ID
		err := tx.GetContext(ctx, &item.ID, `
			INSERT INTO order_items (order_id, product_id, name, image, unit_price, quantity)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id`,
			item.OrderID, item.ProductID, item.Name, item.Image, item.UnitPrice, item.Quantity)
		if err != nil {
			return err
		}
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM cart_items WHERE cart_id = $1", cartID); err != nil {
		return err
	}

	return tx.Commit()
}

// GetOrderByID retrieves an order with its items
func (s *Store) GetOrderByID(ctx context.Context, id int64) (*models.Order, error) {
	var order models.Order
	if err := s.db.GetContext(ctx, &order, "SELECT * FROM orders WHERE id = $1", id); err != nil {
		return nil, err
	}

	items, err := s.GetOrderItems(ctx, id)
	if err != nil {
		return nil, err
	}
	order.Items = items
	order.Hydrate()
	return &order, nil
}

// GetOrderItems retrieves the snapshot items of an order
func (s *Store) GetOrderItems(ctx context.Context, orderID int64) ([]models.OrderItem, error) {
	var items []models.OrderItem
	err := s.db.SelectContext(ctx, &items,
		"SELECT * FROM order_items WHERE order_id = $1 ORDER BY id", orderID)
	return items, err
}

// GetOrdersByUserID retrieves a user's orders, newest first
func (s *Store) GetOrdersByUserID(ctx context.Context, userID int64) ([]models.Order, error) {
	var orders []models.Order
	err := s.db.SelectContext(ctx, &orders,
		"SELECT * FROM orders WHERE user_id = $1 ORDER BY created_at DESC", userID)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		orders[i].Hydrate()
	}
	return orders, nil
}

// GetAllOrders retrieves every order, newest first
func (s *Store) GetAllOrders(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	err := s.db.SelectContext(ctx, &orders, "SELECT * FROM orders ORDER BY created_at DESC")
	if err != nil {
		return nil, err
	}
	for i := range orders {
		orders[i].Hydrate()
	}
	return orders, nil
}

// MarkOrderPaid flips the order to paid and overwrites the payment result
// columns. Calling it again replaces the same fields; nothing accumulates.
func (s *Store) MarkOrderPaid(ctx context.Context, orderID int64, paidAt time.Time, result models.PaymentResult) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE orders
		SET is_paid = TRUE, paid_at = $1,
		    payment_id = $2, payment_status = $3, payment_update_time = $4, payer_email = $5,
		    updated_at = NOW()
		WHERE id = $6`,
		paidAt, result.PaymentID, result.Status, result.UpdateTime, result.PayerEmail, orderID)
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

// UpdateOrderFields applies an admin update. Nil pointers leave the column
// untouched, so zero values are applied rather than discarded.
func (s *Store) UpdateOrderFields(ctx context.Context, orderID int64, isPaid *bool, paidAt *time.Time, status *string) error {
	order, err := s.GetOrderByID(ctx, orderID)
	if err != nil {
		return err
	}

	newPaid := order.IsPaid
	if isPaid != nil {
		newPaid = *isPaid
	}
	newPaidAt := order.PaidAt
	if paidAt != nil {
		newPaidAt = sql.NullTime{Time: *paidAt, Valid: true}
	}
	newStatus := order.Status
	if status != nil {
		newStatus = *status
	}

	_, err = s.db.ExecContext(ctx, `
		UPDATE orders
		SET is_paid = $1, paid_at = $2, status = $3, updated_at = NOW()
		WHERE id = $4`,
		newPaid, newPaidAt, newStatus, orderID)
	return err
}

// IsEventProcessed checks if an event has been handled by a consumer
func (s *Store) IsEventProcessed(ctx context.Context, eventID string) (bool, error) {
	var exists bool
	err := s.db.GetContext(ctx, &exists,
		"SELECT EXISTS(SELECT 1 FROM processed_events WHERE event_id = $1)", eventID)
	return exists, err
}

// MarkEventProcessed records an event as handled
func (s *Store) MarkEventProcessed(ctx context.Context, eventID, eventType string) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO processed_events (event_id, event_type) VALUES ($1, $2) ON CONFLICT (event_id) DO NOTHING",
		eventID, eventType)
	return err
}
