package events

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatcher_PublishReachesSubscribers(t *testing.T) {
	d := NewInMemoryDispatcher()

	var seen []Event
	d.Subscribe(EventUserRegistered, func(_ context.Context, e Event) error {
		seen = append(seen, e)
		return nil
	})

	event := Event{
		Type:      EventUserRegistered,
		UserID:    "u1",
		Timestamp: time.Now(),
		Payload:   UserRegisteredPayload{Email: "a@x.com"},
	}
	require.NoError(t, d.Publish(context.Background(), event))

	require.Len(t, seen, 1)
	assert.Equal(t, "u1", seen[0].UserID)
}

func TestDispatcher_HandlerErrorsDoNotStopFanout(t *testing.T) {
	d := NewInMemoryDispatcher()

	var calls int
	d.Subscribe(EventUserDeactivated, func(context.Context, Event) error {
		calls++
		return errors.New("boom")
	})
	d.Subscribe(EventUserDeactivated, func(context.Context, Event) error {
		calls++
		return nil
	})

	require.NoError(t, d.Publish(context.Background(), Event{Type: EventUserDeactivated}))
	assert.Equal(t, 2, calls)
}

func TestDispatcher_IgnoresUnsubscribedTypes(t *testing.T) {
	d := NewInMemoryDispatcher()

	var calls int
	d.Subscribe(EventUserLoggedIn, func(context.Context, Event) error {
		calls++
		return nil
	})

	require.NoError(t, d.Publish(context.Background(), Event{Type: EventUserUpdated}))
	assert.Zero(t, calls)
}
