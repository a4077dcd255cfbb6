package sse

import (
	"testing"

	"github.com/google/uuid"

	"github.com/venturedeck/venturedeck-backend/internal/logger"
)

func newTestHub(t *testing.T) *Hub {
	t.Helper()
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("init logger: %v", err)
	}
	return NewHub(log)
}

func TestBroadcastReachesOnlySubscribedChannel(t *testing.T) {
	hub := newTestHub(t)
	ventureA := VentureChannel(uuid.New())
	ventureB := VentureChannel(uuid.New())

	subscriber := hub.NewClient(uuid.New())
	bystander := hub.NewClient(uuid.New())
	hub.AddChannel(subscriber, ventureA)
	hub.AddChannel(bystander, ventureB)

	hub.Broadcast(Message{Channel: ventureA, Event: EventCommentCreated})

	select {
	case msg := <-subscriber.Outbound:
		if msg.Event != EventCommentCreated {
			t.Fatalf("unexpected event: %s", msg.Event)
		}
	default:
		t.Fatalf("subscriber did not receive the broadcast")
	}
	select {
	case msg := <-bystander.Outbound:
		t.Fatalf("bystander received %+v for another venture", msg)
	default:
	}
}

func TestRemoveChannelStopsDelivery(t *testing.T) {
	hub := newTestHub(t)
	channel := VentureChannel(uuid.New())

	client := hub.NewClient(uuid.New())
	hub.AddChannel(client, channel)
	hub.RemoveChannel(client, channel)

	hub.Broadcast(Message{Channel: channel, Event: EventKPIUpdated})

	select {
	case msg := <-client.Outbound:
		t.Fatalf("unsubscribed client received %+v", msg)
	default:
	}
}

func TestBroadcastDropsWhenBufferFull(t *testing.T) {
	hub := newTestHub(t)
	channel := VentureChannel(uuid.New())

	client := hub.NewClient(uuid.New())
	hub.AddChannel(client, channel)

	for i := 0; i < cap(client.Outbound)+5; i++ {
		hub.Broadcast(Message{Channel: channel, Event: EventChatMessageCreated})
	}
	if len(client.Outbound) != cap(client.Outbound) {
		t.Fatalf("expected a full buffer, got %d/%d", len(client.Outbound), cap(client.Outbound))
	}
}
