package broadcast

import (
	"testing"

	"ulapchat/model"
)

func TestPublishReachesRoomSubscribers(t *testing.T) {
	h := NewHub()

	a, cancelA := h.Subscribe("store-1")
	defer cancelA()
	b, cancelB := h.Subscribe("store-1")
	defer cancelB()
	other, cancelOther := h.Subscribe("store-2")
	defer cancelOther()

	msg := model.NewUserMessage("hello room")
	h.Publish("store-1", msg)

	for name, ch := range map[string]<-chan model.Message{"a": a, "b": b} {
		select {
		case got := <-ch:
			if got.ID != msg.ID {
				t.Errorf("subscriber %s: got message %q", name, got.ID)
			}
		default:
			t.Errorf("subscriber %s received nothing", name)
		}
	}

	select {
	case got := <-other:
		t.Errorf("other room received %q", got.Text)
	default:
	}
}

func TestPublishToEmptyRoom(t *testing.T) {
	h := NewHub()
	// Must not panic or block.
	h.Publish("nobody-home", model.NewUserMessage("hello?"))
}

func TestCancelStopsDelivery(t *testing.T) {
	h := NewHub()

	ch, cancel := h.Subscribe("store-1")
	cancel()
	cancel() // repeated cancel is a no-op

	h.Publish("store-1", model.NewUserMessage("after cancel"))

	if _, open := <-ch; open {
		t.Error("channel still open after cancel")
	}
}

func TestSlowSubscriberDropsInsteadOfBlocking(t *testing.T) {
	h := NewHub()

	ch, cancel := h.Subscribe("store-1")
	defer cancel()

	for i := 0; i < subscriberBuffer+5; i++ {
		h.Publish("store-1", model.NewUserMessage("flood"))
	}

	received := 0
	for {
		select {
		case <-ch:
			received++
			continue
		default:
		}
		break
	}
	if received != subscriberBuffer {
		t.Errorf("received %d messages, want %d buffered", received, subscriberBuffer)
	}
}
