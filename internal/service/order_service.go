package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Nishantvidhuri/storebackend/internal/models"
	"github.com/Nishantvidhuri/storebackend/internal/util"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// OrderStore is the persistence surface the order workflow needs
type OrderStore interface {
	GetCartByUserID(ctx context.Context, userID int64) (*models.Cart, error)
	GetCartItems(ctx context.Context, cartID int64) ([]models.CartItem, error)
	GetProductsByIDs(ctx context.Context, ids []int64) ([]models.Product, error)
	PlaceOrderTx(ctx context.Context, order *models.Order, cartID int64) error
	GetOrderByID(ctx context.Context, id int64) (*models.Order, error)
	GetOrdersByUserID(ctx context.Context, userID int64) ([]models.Order, error)
	GetAllOrders(ctx context.Context) ([]models.Order, error)
	UpdateOrderFields(ctx context.Context, orderID int64, isPaid *bool, paidAt *time.Time, status *string) error
}

// NotificationSink dispatches SMS. Failures are always logged and swallowed;
// no caller of this interface may let a send error propagate.
type NotificationSink interface {
	SendSMS(ctx context.Context, to, body string) error
}

// OrderEventPublisher publishes order lifecycle events, best-effort
type OrderEventPublisher interface {
	PublishOrderPlaced(ctx context.Context, event *models.OrderPlacedEvent) error
	PublishOrderPaid(ctx context.Context, event *models.OrderPaidEvent) error
}

// OrderService converts carts into orders and serves order reads
type OrderService struct {
	store      OrderStore
	sink       NotificationSink
	events     OrderEventPublisher
	adminPhone string
	logger     *zap.Logger
}

// NewOrderService creates a new order service
func NewOrderService(store OrderStore, sink NotificationSink, events OrderEventPublisher, adminPhone string) *OrderService {
	return &OrderService{
		store:      store,
		sink:       sink,
		events:     events,
		adminPhone: adminPhone,
		logger:     util.GetLogger(),
	}
}

// PlaceOrderRequest is the order placement body
type PlaceOrderRequest struct {
	Address       models.ShippingAddress `json:"address" binding:"required"`
	PaymentMethod string                 `json:"paymentMethod" binding:"required"`
}

// PlaceOrder snapshots the user's cart into a new order and empties the
// cart in the same transaction. The admin SMS and the OrderPlaced event are
// best-effort and never fail the placement.
func (s *OrderService) PlaceOrder(ctx context.Context, userID int64, req *PlaceOrderRequest) (*models.Order, error) {
	ctx, span := util.StartSpan(ctx, "OrderService.PlaceOrder")
	defer span.End()

	cart, err := s.store.GetCartByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	if cart == nil {
		util.OrdersFailedTotal.WithLabelValues("empty_cart").Inc()
		return nil, ErrEmptyCart
	}

	lines, err := s.store.GetCartItems(ctx, cart.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart items: %w", err)
	}
	if len(lines) == 0 {
		util.OrdersFailedTotal.WithLabelValues("empty_cart").Inc()
		return nil, ErrEmptyCart
	}

	// Strict resolution: a product deleted after it was carted is a data
	// error here. Only the cart read view soft-filters such lines.
	productIDs := make([]int64, len(lines))
	for i, line := range lines {
		productIDs[i] = line.ProductID
	}
	products, err := s.store.GetProductsByIDs(ctx, productIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve cart products: %w", err)
	}
	productMap := make(map[int64]*models.Product, len(products))
	for i := range products {
		productMap[products[i].ID] = &products[i]
	}

	items := make([]models.OrderItem, 0, len(lines))
	var total int64
	for _, line := range lines {
		product, ok := productMap[line.ProductID]
		if !ok {
			util.OrdersFailedTotal.WithLabelValues("missing_product").Inc()
			return nil, fmt.Errorf("cart references missing product %d", line.ProductID)
		}
		items = append(items, models.OrderItem{
			ProductID: product.ID,
			Name:      product.Name,
			Image:     product.Image,
			UnitPrice: product.Price,
			Quantity:  line.Quantity,
		})
		total += product.Price * int64(line.Quantity)
	}

	order := &models.Order{
		UserID:        userID,
		TotalPrice:    total,
		PaymentMethod: req.PaymentMethod,
		IsPaid:        false,
		Status:        models.OrderStatusReceived,
		Address:       req.Address,
		Items:         items,
	}

	if err := s.store.PlaceOrderTx(ctx, order, cart.ID); err != nil {
		util.OrdersFailedTotal.WithLabelValues("db_error").Inc()
		return nil, fmt.Errorf("failed to place order: %w", err)
	}

	util.OrdersPlacedTotal.Inc()
	s.logger.Info("Order placed",
		zap.Int64("order_id", order.ID),
		zap.Int64("user_id", userID),
		zap.Int64("total_price", total))

	s.notifyAdmin(ctx, order)

	if s.events != nil {
		eventItems := make([]models.OrderItemData, len(items))
		for i, it := range items {
			eventItems[i] = models.OrderItemData{
				ProductID: it.ProductID,
				Quantity:  it.Quantity,
				UnitPrice: it.UnitPrice,
			}
		}
		event := &models.OrderPlacedEvent{
			BaseEvent: models.BaseEvent{
				EventID:   uuid.New().String(),
				EventType: models.EventTypeOrderPlaced,
				Timestamp: time.Now(),
			},
			OrderID:       order.ID,
			UserID:        order.UserID,
			TotalPrice:    order.TotalPrice,
			PaymentMethod: order.PaymentMethod,
			Items:         eventItems,
		}
		if err := s.events.PublishOrderPlaced(ctx, event); err != nil {
			s.logger.Error("Failed to publish OrderPlaced event", zap.Error(err))
		}
	}

	return order, nil
}

// notifyAdmin sends the placement SMS; the error never leaves this method
func (s *OrderService) notifyAdmin(ctx context.Context, order *models.Order) {
	if s.sink == nil || s.adminPhone == "" {
		return
	}
	msg := fmt.Sprintf("New order placed! Order ID: %d. Total Price: ₹%.2f. Payment Method: %s.",
		order.ID, float64(order.TotalPrice)/100, strings.ToUpper(order.PaymentMethod))
	if err := s.sink.SendSMS(ctx, s.adminPhone, msg); err != nil {
		util.SMSFailedTotal.Inc()
		s.logger.Error("Failed to send admin order notification",
			zap.Int64("order_id", order.ID),
			zap.Error(err))
		return
	}
	util.SMSSentTotal.Inc()
}

// GetMyOrders retrieves the caller's orders
func (s *OrderService) GetMyOrders(ctx context.Context, userID int64) ([]models.Order, error) {
	return s.store.GetOrdersByUserID(ctx, userID)
}

// GetOrder retrieves one order with its items
func (s *OrderService) GetOrder(ctx context.Context, orderID int64) (*models.Order, error) {
	order, err := s.store.GetOrderByID(ctx, orderID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	return order, nil
}

// GetAllOrders retrieves every order
func (s *OrderService) GetAllOrders(ctx context.Context) ([]models.Order, error) {
	return s.store.GetAllOrders(ctx)
}

// UpdateOrderRequest carries an admin order update. Pointer fields
// distinguish "not provided" from zero values, so paid can be explicitly
// set back to false and timestamps to concrete values.
type UpdateOrderRequest struct {
	IsPaid *bool      `json:"isPaid"`
	PaidAt *time.Time `json:"paidAt"`
	Status *string    `json:"status"`
}

// UpdateOrder applies an admin delivery/payment-flag update
func (s *OrderService) UpdateOrder(ctx context.Context, orderID int64, req *UpdateOrderRequest) (*models.Order, error) {
	if req.Status != nil && !models.ValidOrderStatus(*req.Status) {
		return nil, ErrInvalidStatus
	}

	err := s.store.UpdateOrderFields(ctx, orderID, req.IsPaid, req.PaidAt, req.Status)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update order: %w", err)
	}

	return s.GetOrder(ctx, orderID)
}
