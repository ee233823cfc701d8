package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Nishantvidhuri/storebackend/internal/models"
	"github.com/Nishantvidhuri/storebackend/internal/util"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PaymentGateway is the external payment capability. VerifySignature is the
// only cryptographic trust boundary in the system.
type PaymentGateway interface {
	CreateIntent(ctx context.Context, amount int64, currency, receipt string) (json.RawMessage, error)
	VerifySignature(gatewayOrderID, gatewayPaymentID, signature string) bool
}

// PaymentStore is the persistence surface payment verification needs
type PaymentStore interface {
	GetOrderByID(ctx context.Context, id int64) (*models.Order, error)
	MarkOrderPaid(ctx context.Context, orderID int64, paidAt time.Time, result models.PaymentResult) error
	DeleteCartByUserID(ctx context.Context, userID int64) error
}

// PaymentService creates gateway intents and verifies payment callbacks
type PaymentService struct {
	store   PaymentStore
	gateway PaymentGateway
	events  OrderEventPublisher
	logger  *zap.Logger
}

// NewPaymentService creates a new payment service
func NewPaymentService(store PaymentStore, gateway PaymentGateway, events OrderEventPublisher) *PaymentService {
	return &PaymentService{
		store:   store,
		gateway: gateway,
		events:  events,
		logger:  util.GetLogger(),
	}
}

// CreateIntentRequest is the create-payment body. The gateway is the source
// of truth for amount/currency legality; only presence is checked here.
type CreateIntentRequest struct {
	Amount   int64  `json:"amount" binding:"required"`
	Currency string `json:"currency" binding:"required"`
}

// CreateIntent requests a payment intent and returns the gateway's response
// verbatim. The receipt label is time-derived, unique enough to avoid
// gateway-side collisions.
func (s *PaymentService) CreateIntent(ctx context.Context, req *CreateIntentRequest) (json.RawMessage, error) {
	ctx, span := util.StartSpan(ctx, "PaymentService.CreateIntent")
	defer span.End()

	receipt := fmt.Sprintf("receipt_%d", time.Now().UnixMilli())

	intent, err := s.gateway.CreateIntent(ctx, req.Amount, req.Currency, receipt)
	if err != nil {
		util.PaymentIntentFailedTotal.Inc()
		return nil, fmt.Errorf("failed to create payment intent: %w", err)
	}

	util.PaymentIntentsTotal.Inc()
	s.logger.Info("Payment intent created",
		zap.Int64("amount", req.Amount),
		zap.String("currency", req.Currency),
		zap.String("receipt", receipt))

	return intent, nil
}

// VerifyPaymentRequest is the gateway callback relayed by the client
type VerifyPaymentRequest struct {
	GatewayOrderID   string `json:"razorpay_order_id" binding:"required"`
	GatewayPaymentID string `json:"razorpay_payment_id" binding:"required"`
	GatewaySignature string `json:"razorpay_signature" binding:"required"`
	OrderData        struct {
		ID int64 `json:"_id" binding:"required"`
	} `json:"orderData" binding:"required"`
}

// VerifyPayment authenticates a payment callback and transitions the order
// to paid. The signature is checked before anything is loaded or mutated;
// unpaid→paid is the only transition and re-verification overwrites the
// same payment result fields rather than accumulating anything. The
// requester's cart is deleted outright, a second clearing point kept
// deliberately redundant with placement's in-transaction clear.
func (s *PaymentService) VerifyPayment(ctx context.Context, user *models.User, req *VerifyPaymentRequest) (*models.Order, error) {
	ctx, span := util.StartSpan(ctx, "PaymentService.VerifyPayment")
	defer span.End()

	if !s.gateway.VerifySignature(req.GatewayOrderID, req.GatewayPaymentID, req.GatewaySignature) {
		util.PaymentVerifyFailedTotal.WithLabelValues("invalid_signature").Inc()
		s.logger.Warn("Payment signature rejected",
			zap.String("gateway_order_id", req.GatewayOrderID),
			zap.Int64("user_id", user.ID))
		return nil, ErrInvalidSignature
	}

	order, err := s.store.GetOrderByID(ctx, req.OrderData.ID)
	if errors.Is(err, sql.ErrNoRows) {
		util.PaymentVerifyFailedTotal.WithLabelValues("order_not_found").Inc()
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load order: %w", err)
	}

	now := time.Now()
	result := models.PaymentResult{
		PaymentID:  req.GatewayPaymentID,
		Status:     models.PaymentStatusCompleted,
		UpdateTime: now,
		PayerEmail: user.Email,
	}
	if err := s.store.MarkOrderPaid(ctx, order.ID, now, result); err != nil {
		return nil, fmt.Errorf("failed to mark order paid: %w", err)
	}

	if err := s.store.DeleteCartByUserID(ctx, user.ID); err != nil {
		return nil, fmt.Errorf("failed to clear cart: %w", err)
	}

	util.OrdersPaidTotal.Inc()
	s.logger.Info("Order paid",
		zap.Int64("order_id", order.ID),
		zap.String("payment_id", req.GatewayPaymentID))

	if s.events != nil {
		event := &models.OrderPaidEvent{
			BaseEvent: models.BaseEvent{
				EventID:   uuid.New().String(),
				EventType: models.EventTypeOrderPaid,
				Timestamp: now,
			},
			OrderID:    order.ID,
			UserID:     user.ID,
			TotalPrice: order.TotalPrice,
			PaymentID:  req.GatewayPaymentID,
			PayerEmail: user.Email,
			PayerPhone: user.Phone,
		}
		if err := s.events.PublishOrderPaid(ctx, event); err != nil {
			s.logger.Error("Failed to publish OrderPaid event", zap.Error(err))
		}
	}

	return s.store.GetOrderByID(ctx, order.ID)
}
