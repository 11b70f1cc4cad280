package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotifierDeliversToSubscribers(t *testing.T) {
	n := NewNotifier()
	ch, cancel := n.Subscribe(4)
	defer cancel()

	n.Publish(EventTaskCreated, 42, 7)

	event := <-ch
	assert.Equal(t, EventTaskCreated, event.Kind)
	assert.Equal(t, uint64(42), event.TaskID)
	assert.Equal(t, uint64(7), event.UserID)
	assert.NotEmpty(t, event.ID)
}

func TestNotifierDropsWhenSubscriberIsFull(t *testing.T) {
	n := NewNotifier()
	ch, cancel := n.Subscribe(1)
	defer cancel()

	n.Publish(EventTaskCreated, 1, 0)
	n.Publish(EventTaskRescheduled, 2, 0)

	first := <-ch
	assert.Equal(t, uint64(1), first.TaskID)

	select {
	case event := <-ch:
		t.Fatalf("expected second event to be dropped, got %v", event)
	default:
	}
}

func TestNotifierCancelStopsDelivery(t *testing.T) {
	n := NewNotifier()
	ch, cancel := n.Subscribe(4)
	cancel()

	n.Publish(EventStatusChanged, 9, 0)

	_, open := <-ch
	require.False(t, open)
}
