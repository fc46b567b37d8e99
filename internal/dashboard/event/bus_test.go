package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/impactlab/aiboard/internal/dashboard/model"
)

func TestBusDeliversToSubscribers(t *testing.T) {
	bus := NewBus(nil)
	defer bus.Close()

	var got []ProjectEvent
	unsubscribe := bus.Subscribe(func(ev ProjectEvent) {
		got = append(got, ev)
	})
	defer unsubscribe()

	ev := ProjectEvent{Type: EventCreated, Project: model.Project{ProjectId: "p1", Name: "A"}}
	bus.Publish(ev)

	require.Len(t, got, 1)
	assert.Equal(t, ev, got[0])
}

func TestBusNoDeliveryAfterUnsubscribe(t *testing.T) {
	bus := NewBus(nil)
	defer bus.Close()

	count := 0
	unsubscribe := bus.Subscribe(func(ProjectEvent) { count++ })

	bus.Publish(ProjectEvent{Type: EventUpdated})
	unsubscribe()
	bus.Publish(ProjectEvent{Type: EventUpdated})

	assert.Equal(t, 1, count)
}

func TestBusUnsubscribeIsIdempotent(t *testing.T) {
	bus := NewBus(nil)
	defer bus.Close()

	unsubscribe := bus.Subscribe(func(ProjectEvent) {})
	require.Equal(t, 1, bus.SubscriberCount())

	unsubscribe()
	unsubscribe()
	assert.Equal(t, 0, bus.SubscriberCount())
}

func TestBusMultipleSubscribers(t *testing.T) {
	bus := NewBus(nil)
	defer bus.Close()

	a, b := 0, 0
	cancelA := bus.Subscribe(func(ProjectEvent) { a++ })
	defer cancelA()
	cancelB := bus.Subscribe(func(ProjectEvent) { b++ })
	defer cancelB()

	bus.Publish(ProjectEvent{Type: EventDeleted})

	assert.Equal(t, 1, a)
	assert.Equal(t, 1, b)
}
