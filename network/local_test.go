package network

import (
	"testing"

	"github.com/automoto/slipstream-mp/pubsub"
	"github.com/automoto/slipstream-mp/shared/messages"
)

func TestLocalChannelDeliversImmediately(t *testing.T) {
	ch := NewLocalChannel()

	var got []string
	pubsub.Subscribe(ch.Bus(), func(m messages.ClientJoined) {
		got = append(got, m.ClientID)
	})

	if err := ch.Publish(messages.ClientJoined{ClientID: "a"}); err != nil {
		t.Fatalf("publish: %v", err)
	}

	// No Pump needed for local delivery.
	if len(got) != 1 || got[0] != "a" {
		t.Fatalf("got %v, want [a]", got)
	}
}

func TestLocalChannelPreservesPublishOrder(t *testing.T) {
	ch := NewLocalChannel()

	var order []string
	pubsub.Subscribe(ch.Bus(), func(m messages.ClientJoined) {
		order = append(order, "client:"+m.ClientID)
	})
	pubsub.Subscribe(ch.Bus(), func(m messages.PlayerJoined) {
		order = append(order, "player:"+m.ClientID)
	})

	ch.Publish(messages.ClientJoined{ClientID: "a"})
	ch.Publish(messages.PlayerJoined{ClientID: "a"})
	ch.Publish(messages.ClientJoined{ClientID: "b"})

	want := []string{"client:a", "player:a", "client:b"}
	if len(order) != len(want) {
		t.Fatalf("got %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("got %v, want %v", order, want)
		}
	}
}

func TestLocalChannelClosedDropsMessages(t *testing.T) {
	ch := NewLocalChannel()

	var calls int
	pubsub.Subscribe(ch.Bus(), func(m messages.ClientJoined) { calls++ })

	ch.Close()
	if err := ch.Publish(messages.ClientJoined{ClientID: "a"}); err != nil {
		t.Fatalf("publish after close: %v", err)
	}

	if calls != 0 {
		t.Errorf("handler ran after close")
	}
}

func TestRemoteChannelPumpDispatchesInArrivalOrder(t *testing.T) {
	ch := NewRemoteChannel()

	var got []string
	pubsub.Subscribe(ch.Bus(), func(m messages.PlayerJoined) {
		got = append(got, m.ClientID)
	})

	// Simulate the receive goroutine filling the queue between pumps.
	ch.mu.Lock()
	ch.queue = append(ch.queue,
		messages.PlayerJoined{ClientID: "a"},
		messages.PlayerJoined{ClientID: "b"},
	)
	ch.mu.Unlock()

	if len(got) != 0 {
		t.Fatal("messages dispatched before Pump")
	}

	ch.Pump()

	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Fatalf("got %v, want [a b]", got)
	}

	// Queue is drained; a second pump dispatches nothing.
	ch.Pump()
	if len(got) != 2 {
		t.Fatalf("second pump redispatched messages: %v", got)
	}
}

func TestRemoteChannelPublishWhileDisconnected(t *testing.T) {
	ch := NewRemoteChannel()

	if err := ch.Publish(messages.ClientJoined{ClientID: "a"}); err == nil {
		t.Fatal("expected an error publishing with no connection")
	}
}
