package eventbus_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nexttoyou/nexttoyou/internal/shared/infrastructure/eventbus"
)

type recordingConsumer struct {
	types    []string
	received []*eventbus.ConsumedEvent
	err      error
}

func (c *recordingConsumer) EventTypes() []string { return c.types }

func (c *recordingConsumer) Handle(ctx context.Context, event *eventbus.ConsumedEvent) error {
	c.received = append(c.received, event)
	return c.err
}

func triggeredPayload(t *testing.T, taskID uuid.UUID) []byte {
	t.Helper()
	raw, err := json.Marshal(map[string]any{
		"event_id":       uuid.New(),
		"aggregate_id":   taskID,
		"aggregate_type": "Task",
		"routing_key":    "reminders.reminder.triggered",
		"occurred_at":    time.Now().UTC(),
	})
	require.NoError(t, err)
	return raw
}

func TestConsumerRegistry_Dispatch(t *testing.T) {
	registry := eventbus.NewConsumerRegistry(nil)

	reminders := &recordingConsumer{types: []string{"reminders.reminder.triggered"}}
	deals := &recordingConsumer{types: []string{"deals.deal.found"}}
	registry.Register(reminders)
	registry.Register(deals)

	assert.Equal(t, 2, registry.ConsumerCount())

	event := &eventbus.ConsumedEvent{
		EventID:    uuid.New(),
		RoutingKey: "reminders.reminder.triggered",
	}
	require.NoError(t, registry.Dispatch(context.Background(), event))

	assert.Len(t, reminders.received, 1)
	assert.Empty(t, deals.received)
}

func TestConsumerRegistry_DispatchWithoutConsumers(t *testing.T) {
	registry := eventbus.NewConsumerRegistry(nil)
	err := registry.Dispatch(context.Background(), &eventbus.ConsumedEvent{
		RoutingKey: "reminders.reminder.triggered",
	})
	assert.NoError(t, err)
}

func TestConsumerRegistry_ContinuesPastFailingConsumer(t *testing.T) {
	registry := eventbus.NewConsumerRegistry(nil)

	failing := &recordingConsumer{
		types: []string{"reminders.reminder.triggered"},
		err:   errors.New("push gateway down"),
	}
	healthy := &recordingConsumer{types: []string{"reminders.reminder.triggered"}}
	registry.Register(failing)
	registry.Register(healthy)

	err := registry.Dispatch(context.Background(), &eventbus.ConsumedEvent{
		RoutingKey: "reminders.reminder.triggered",
	})
	assert.Error(t, err)
	assert.Len(t, failing.received, 1)
	assert.Len(t, healthy.received, 1)
}

func TestInProcessEventBus_Publish(t *testing.T) {
	bus := eventbus.NewInProcessEventBus(nil)
	consumer := &recordingConsumer{types: []string{"reminders.reminder.triggered"}}
	bus.RegisterConsumer(consumer)

	taskID := uuid.New()
	err := bus.Publish(context.Background(), "reminders.reminder.triggered", triggeredPayload(t, taskID))
	require.NoError(t, err)

	require.Len(t, consumer.received, 1)
	assert.Equal(t, taskID, consumer.received[0].AggregateID)
	assert.Equal(t, "reminders.reminder.triggered", consumer.received[0].RoutingKey)
}

func TestInProcessEventBus_FillsMissingRoutingKey(t *testing.T) {
	bus := eventbus.NewInProcessEventBus(nil)
	consumer := &recordingConsumer{types: []string{"reminders.reminder.triggered"}}
	bus.RegisterConsumer(consumer)

	raw, err := json.Marshal(map[string]any{"event_id": uuid.New()})
	require.NoError(t, err)

	require.NoError(t, bus.Publish(context.Background(), "reminders.reminder.triggered", raw))
	require.Len(t, consumer.received, 1)
	assert.Equal(t, "reminders.reminder.triggered", consumer.received[0].RoutingKey)
}

func TestNoopPublisher(t *testing.T) {
	publisher := eventbus.NewNoopPublisher(nil)
	assert.NoError(t, publisher.Publish(context.Background(), "reminders.reminder.triggered", []byte("{}")))
	assert.NoError(t, publisher.Close())
}
