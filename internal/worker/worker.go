package worker

import (
	"context"
	"fmt"
	"strings"

	"github.com/Nishantvidhuri/storebackend/internal/broker"
	"github.com/Nishantvidhuri/storebackend/internal/models"
	"github.com/Nishantvidhuri/storebackend/internal/util"

	"go.uber.org/zap"
)

// EventStore tracks which events have already been handled
type EventStore interface {
	IsEventProcessed(ctx context.Context, eventID string) (bool, error)
	MarkEventProcessed(ctx context.Context, eventID, eventType string) error
}

// NotificationSink delivers SMS messages
type NotificationSink interface {
	SendSMS(ctx context.Context, to, body string) error
}

// NotificationWorker consumes order events and sends customer notifications
type NotificationWorker struct {
	consumer     *broker.Consumer
	eventHandler *broker.EventHandler
	store        EventStore
	sink         NotificationSink
	logger       *zap.Logger
}

// NewNotificationWorker creates a new notification worker
func NewNotificationWorker(
	consumer *broker.Consumer,
	store EventStore,
	sink NotificationSink,
) *NotificationWorker {
	w := &NotificationWorker{
		consumer: consumer,
		store:    store,
		sink:     sink,
		logger:   util.GetLogger(),
	}

	eventHandler := broker.NewEventHandler()
	eventHandler.OnOrderPaid(w.handleOrderPaid)
	w.eventHandler = eventHandler

	return w
}

// Start starts the worker
func (w *NotificationWorker) Start(ctx context.Context) error {
	w.logger.Info("Starting notification worker...")
	return w.consumer.StartConsuming(ctx, w.eventHandler.HandleMessage)
}

// Stop stops the worker
func (w *NotificationWorker) Stop() error {
	w.logger.Info("Stopping notification worker...")
	return w.consumer.Close()
}

func (w *NotificationWorker) handleOrderPaid(ctx context.Context, event *models.OrderPaidEvent) error {
	processed, err := w.store.IsEventProcessed(ctx, event.EventID)
	if err != nil {
		return fmt.Errorf("failed to check event %s: %w", event.EventID, err)
	}
	if processed {
		w.logger.Info("Skipping already processed event", zap.String("event_id", event.EventID))
		return nil
	}

	if strings.TrimSpace(event.PayerPhone) == "" {
		w.logger.Warn("OrderPaid event has no payer phone, skipping SMS",
			zap.Int64("order_id", event.OrderID))
		return w.store.MarkEventProcessed(ctx, event.EventID, event.EventType)
	}

	msg := fmt.Sprintf("Payment received for order %d. Amount: ₹%.2f. Thank you for shopping with us!",
		event.OrderID, float64(event.TotalPrice)/100)

	if err := w.sink.SendSMS(ctx, event.PayerPhone, msg); err != nil {
		util.SMSFailedTotal.Inc()
		w.logger.Error("Failed to send payment confirmation SMS",
			zap.Int64("order_id", event.OrderID),
			zap.Error(err))
		// do not mark processed; the message will be retried on redelivery
		return err
	}
	util.SMSSentTotal.Inc()

	w.logger.Info("Payment confirmation SMS sent",
		zap.Int64("order_id", event.OrderID),
		zap.String("payment_id", event.PaymentID))

	return w.store.MarkEventProcessed(ctx, event.EventID, event.EventType)
}
