package eventbus

import (
	"testing"
	"time"

	"github.com/greengrid/simulator/core/events"
)

func TestBusPublishSubscribe(t *testing.T) {
	bus := New()
	ch := bus.Subscribe()
	ev := events.InverterFailureEvent{Timestamp: time.Now(), RemainingHours: 12}
	bus.Publish(ev)
	got := <-ch
	if got != ev {
		t.Fatalf("expected %v got %v", ev, got)
	}
	bus.Unsubscribe(ch)
}

func TestBusClose(t *testing.T) {
	bus := New()
	ch1 := bus.Subscribe()
	ch2 := bus.Subscribe()
	bus.Close()
	if _, ok := <-ch1; ok {
		t.Fatalf("expected ch1 closed")
	}
	if _, ok := <-ch2; ok {
		t.Fatalf("expected ch2 closed")
	}
}

func TestBusPublishAfterClose(t *testing.T) {
	bus := New()
	bus.Close()
	defer func() {
		if r := recover(); r != nil {
			t.Fatalf("panic on Publish after Close: %v", r)
		}
	}()
	bus.Publish(events.DayCompletedEvent{Day: 1})
}
