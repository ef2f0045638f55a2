package events

import (
	"encoding/json"
	"testing"
	"time"
)

func TestBusFanOut(t *testing.T) {
	bus := NewBus(4)
	a, cancelA := bus.Subscribe()
	b, cancelB := bus.Subscribe()
	defer cancelA()
	defer cancelB()

	bus.Publish(ChoiceCorrect{Profile: "ada", LevelID: 3})

	for name, ch := range map[string]<-chan Event{"a": a, "b": b} {
		select {
		case ev := <-ch:
			if ev.Kind() != KindChoiceCorrect {
				t.Errorf("%s received %s", name, ev.Kind())
			}
		case <-time.After(time.Second):
			t.Fatalf("%s timed out waiting for event", name)
		}
	}
}

func TestBusDropsWhenFull(t *testing.T) {
	bus := NewBus(1)
	_, cancel := bus.Subscribe()
	defer cancel()

	bus.Publish(Click{})
	bus.Publish(Click{}) // queue full, must not block

	if bus.Dropped() != 1 {
		t.Errorf("Dropped() = %d, want 1", bus.Dropped())
	}
}

func TestBusCancel(t *testing.T) {
	bus := NewBus(2)
	ch, cancel := bus.Subscribe()
	cancel()
	cancel()

	if _, ok := <-ch; ok {
		t.Error("channel should be closed after cancel")
	}
	if bus.Subscribers() != 0 {
		t.Errorf("Subscribers() = %d, want 0", bus.Subscribers())
	}
	bus.Publish(Hover{}) // no subscribers, no panic
}

func TestBusClose(t *testing.T) {
	bus := NewBus(2)
	ch, cancel := bus.Subscribe()
	bus.Close()
	cancel()

	if _, ok := <-ch; ok {
		t.Error("channel should be closed after Close")
	}
	late, _ := bus.Subscribe()
	if _, ok := <-late; ok {
		t.Error("subscriptions after Close should be closed")
	}
}

func TestNilBusPublish(t *testing.T) {
	var bus *Bus
	bus.Publish(Click{})
}

func TestEnvelopeJSON(t *testing.T) {
	data, err := json.Marshal(Wrap(BadgeUnlocked{Profile: "ada", Badge: "first_boss", Label: "First Boss Win"}))
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var decoded struct {
		Kind  string         `json:"kind"`
		Event map[string]any `json:"event"`
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if decoded.Kind != "badge_unlocked" || decoded.Event["badge"] != "first_boss" {
		t.Errorf("envelope = %s", data)
	}
}
