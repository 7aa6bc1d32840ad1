package types

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventBusPublishSubscribe(t *testing.T) {
	bus := NewEventBus()
	ch := bus.Subscribe(addrA)
	defer bus.Unsubscribe(addrA, ch)

	bus.Publish(NewWalletConnected(addrA, true))

	select {
	case event := <-ch:
		connected, ok := event.(*WalletConnected)
		require.True(t, ok)
		assert.Equal(t, "WalletConnected", connected.Type())
		assert.Equal(t, addrA, connected.Address())
		assert.True(t, connected.IsOwner())
	case <-time.After(time.Second):
		t.Fatal("no event received")
	}
}

// Subscription keys are normalized, so a mixed-case subscriber still
// sees events published under the lowercase identity.
func TestEventBusCaseInsensitiveKey(t *testing.T) {
	bus := NewEventBus()
	ch := bus.Subscribe("0xAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA")
	defer bus.Unsubscribe("0xAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA", ch)

	bus.Publish(NewActionSubmitted(addrA, "pay"))

	select {
	case event := <-ch:
		assert.Equal(t, "ActionSubmitted", event.Type())
	case <-time.After(time.Second):
		t.Fatal("no event received")
	}
}

func TestEventBusOtherAccountNotDelivered(t *testing.T) {
	bus := NewEventBus()
	ch := bus.Subscribe(addrA)
	defer bus.Unsubscribe(addrA, ch)

	bus.Publish(NewWalletDisconnected(addrB))

	select {
	case event := <-ch:
		t.Fatalf("unexpected event %s", event.Type())
	case <-time.After(50 * time.Millisecond):
	}
}

func TestEventBusUnsubscribe(t *testing.T) {
	bus := NewEventBus()
	ch := bus.Subscribe(addrA)
	assert.Equal(t, 1, bus.SubscriberCount(addrA))

	bus.Unsubscribe(addrA, ch)
	assert.Equal(t, 0, bus.SubscriberCount(addrA))

	_, open := <-ch
	assert.False(t, open)
}

func TestActionFinishedCarriesError(t *testing.T) {
	cause := errors.New("rejected")
	event := NewActionFinished(addrA, "pay", cause)

	assert.Equal(t, "ActionFinished", event.Type())
	assert.Equal(t, "pay", event.Action())
	assert.Equal(t, cause, event.Err())
	assert.WithinDuration(t, time.Now(), event.Timestamp(), time.Second)
}
