package sse

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishReachesSubscribers(t *testing.T) {
	hub := NewHub(true)

	ch, cleanup := hub.Subscribe(TopicAttendance)
	defer cleanup()

	hub.Publish(TopicAttendance, Event{Event: "punch_in", Data: map[string]string{"id": "a1"}})

	select {
	case event := <-ch:
		assert.Equal(t, TopicAttendance, event.Topic)
		assert.Equal(t, "punch_in", event.Event)
	case <-time.After(time.Second):
		t.Fatal("expected event, got none")
	}
}

func TestPublishIsScopedToTopic(t *testing.T) {
	hub := NewHub(true)

	ch, cleanup := hub.Subscribe(TopicEmployees)
	defer cleanup()

	hub.Publish(TopicAttendance, Event{Event: "punch_in"})

	select {
	case <-ch:
		t.Fatal("employees subscriber received an attendance event")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestMockModeDropsEvents(t *testing.T) {
	hub := NewHub(false)

	ch, cleanup := hub.Subscribe(TopicAttendance)
	defer cleanup()

	hub.Publish(TopicAttendance, Event{Event: "punch_in"})

	select {
	case <-ch:
		t.Fatal("mock hub should drop events")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestTopicStateTransitions(t *testing.T) {
	hub := NewHub(true)
	assert.Equal(t, StateDisconnected, hub.TopicState(TopicAttendance))

	_, cleanup := hub.Subscribe(TopicAttendance)
	assert.Equal(t, StateConnected, hub.TopicState(TopicAttendance))
	assert.Equal(t, StateDisconnected, hub.TopicState(TopicSettings))

	cleanup()
	assert.Equal(t, StateDisconnected, hub.TopicState(TopicAttendance))
}

func TestTopicStateMock(t *testing.T) {
	hub := NewHub(false)
	assert.Equal(t, StateMock, hub.TopicState(TopicAttendance))

	// Even with a subscriber attached, mock mode wins.
	_, cleanup := hub.Subscribe(TopicAttendance)
	defer cleanup()
	assert.Equal(t, StateMock, hub.TopicState(TopicAttendance))
}

func TestFullSubscriberDoesNotBlockPublish(t *testing.T) {
	hub := NewHub(true)

	ch, cleanup := hub.Subscribe(TopicAttendance)
	defer cleanup()

	// Channel capacity is 10; pushing past it must not deadlock.
	done := make(chan struct{})
	go func() {
		for i := 0; i < 50; i++ {
			hub.Publish(TopicAttendance, Event{Event: "punch_in"})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("publish blocked on a full subscriber channel")
	}

	require.Len(t, ch, 10)
}

func TestSubscriberCounts(t *testing.T) {
	hub := NewHub(true)

	_, cleanupA := hub.Subscribe(TopicAttendance)
	_, cleanupB := hub.Subscribe(TopicAttendance)
	_, cleanupC := hub.Subscribe(TopicSettings)

	assert.Equal(t, 2, hub.SubscriberCount(TopicAttendance))
	assert.Equal(t, 3, hub.TotalSubscribers())

	cleanupA()
	cleanupB()
	cleanupC()
	assert.Equal(t, 0, hub.TotalSubscribers())
}
