package event

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryBus_PublishSubscribe(t *testing.T) {
	bus := NewInMemoryBus()
	got := make(chan Event, 1)

	id := bus.Subscribe(EventSyncComplete, func(e Event) { got <- e })
	require.NotEmpty(t, id)

	bus.Publish(EventSyncComplete, SyncProgress{Done: 3, Total: 3, Changed: 1})

	select {
	case e := <-got:
		assert.Equal(t, EventSyncComplete, e.Type)
		assert.Equal(t, SyncProgress{Done: 3, Total: 3, Changed: 1}, e.Payload)
	case <-time.After(time.Second):
		t.Fatal("handler was not called")
	}
}

func TestInMemoryBus_Unsubscribe(t *testing.T) {
	bus := NewInMemoryBus()
	called := make(chan struct{}, 1)

	id := bus.Subscribe(EventBaseTitleChanged, func(Event) { called <- struct{}{} })
	bus.Unsubscribe(EventBaseTitleChanged, id)
	bus.Publish(EventBaseTitleChanged, TitleChange{WorkshopID: "1"})

	select {
	case <-called:
		t.Fatal("unsubscribed handler was called")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestInMemoryBus_TopicsAreIsolated(t *testing.T) {
	bus := NewInMemoryBus()
	called := make(chan struct{}, 1)

	bus.Subscribe(EventSyncProgress, func(Event) { called <- struct{}{} })
	bus.Publish(EventSyncComplete, nil)

	select {
	case <-called:
		t.Fatal("handler for another topic was called")
	case <-time.After(50 * time.Millisecond):
	}
}
