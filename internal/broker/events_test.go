package broker

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/Nishantvidhuri/storebackend/internal/models"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func messageFor(t *testing.T, event interface{}) kafka.Message {
	t.Helper()
	value, err := json.Marshal(event)
	require.NoError(t, err)
	return kafka.Message{Value: value}
}

func TestHandleMessageRoutesOrderPaid(t *testing.T) {
	eh := NewEventHandler()

	var got *models.OrderPaidEvent
	eh.OnOrderPaid(func(ctx context.Context, event *models.OrderPaidEvent) error {
		got = event
		return nil
	})

	event := &models.OrderPaidEvent{
		BaseEvent: models.BaseEvent{
			EventID:   "evt-1",
			EventType: models.EventTypeOrderPaid,
			Timestamp: time.Now(),
		},
		OrderID:   42,
		PaymentID: "pay_xyz789",
	}

	require.NoError(t, eh.HandleMessage(context.Background(), messageFor(t, event)))
	require.NotNil(t, got)
	assert.Equal(t, int64(42), got.OrderID)
	assert.Equal(t, "pay_xyz789", got.PaymentID)
}

func TestHandleMessageIgnoresOrderPlaced(t *testing.T) {
	eh := NewEventHandler()

	called := false
	eh.OnOrderPaid(func(ctx context.Context, event *models.OrderPaidEvent) error {
		called = true
		return nil
	})

	placed := &models.OrderPlacedEvent{
		BaseEvent: models.BaseEvent{
			EventID:   "evt-2",
			EventType: models.EventTypeOrderPlaced,
			Timestamp: time.Now(),
		},
		OrderID: 42,
	}

	// placement events have no consumer; they are acknowledged, not errored
	require.NoError(t, eh.HandleMessage(context.Background(), messageFor(t, placed)))
	assert.False(t, called)
}

func TestHandleMessageRejectsGarbage(t *testing.T) {
	eh := NewEventHandler()
	err := eh.HandleMessage(context.Background(), kafka.Message{Value: []byte("{not json")})
	assert.Error(t, err)
}
