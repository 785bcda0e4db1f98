package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatcherDeliversToAllSubscribers(t *testing.T) {
	dispatcher := NewInMemoryDispatcher()

	var first, second int
	dispatcher.Subscribe(EventBookCreated, func(_ context.Context, _ Event) error {
		first++
		return errors.New("handler failure must not stop delivery")
	})
	dispatcher.Subscribe(EventBookCreated, func(_ context.Context, _ Event) error {
		second++
		return nil
	})

	err := dispatcher.Publish(context.Background(), Event{Type: EventBookCreated})
	require.NoError(t, err)
	assert.Equal(t, 1, first)
	assert.Equal(t, 1, second)
}

func TestDispatcherIgnoresUnsubscribedTypes(t *testing.T) {
	dispatcher := NewInMemoryDispatcher()

	var called int
	dispatcher.Subscribe(EventBookDeleted, func(_ context.Context, _ Event) error {
		called++
		return nil
	})

	err := dispatcher.Publish(context.Background(), Event{Type: EventUserRegistered})
	require.NoError(t, err)
	assert.Zero(t, called)
}
