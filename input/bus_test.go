package input

import "testing"

func TestBusBroadcastsToAll(t *testing.T) {
	bus := NewBus()

	var a, b []Kind
	bus.Subscribe(func(ev Event) { a = append(a, ev.Kind) })
	bus.Subscribe(func(ev Event) { b = append(b, ev.Kind) })

	bus.Publish(Pointer(PointerDown, 1, 2))
	bus.Publish(Resized(800, 600))

	if len(a) != 2 || len(b) != 2 {
		t.Fatalf("expected both subscribers to see 2 events, got %d and %d", len(a), len(b))
	}
	if a[1] != Resize || b[0] != PointerDown {
		t.Errorf("unexpected event order: %v %v", a, b)
	}
}

func TestBusUnsubscribe(t *testing.T) {
	bus := NewBus()

	count := 0
	unsub := bus.Subscribe(func(Event) { count++ })
	bus.Publish(Pointer(PointerMove, 0, 0))
	unsub()
	unsub()
	bus.Publish(Pointer(PointerMove, 0, 0))

	if count != 1 {
		t.Errorf("expected 1 delivery, got %d", count)
	}
	if bus.Len() != 0 {
		t.Errorf("expected no subscribers, got %d", bus.Len())
	}
}

func TestBusUnsubscribeDuringPublish(t *testing.T) {
	bus := NewBus()

	var unsubFirst func()
	secondCalls := 0
	unsubFirst = bus.Subscribe(func(Event) { unsubFirst() })
	bus.Subscribe(func(Event) { secondCalls++ })

	bus.Publish(Pointer(PointerUp, 0, 0))
	bus.Publish(Pointer(PointerUp, 0, 0))

	if secondCalls != 2 {
		t.Errorf("expected second handler to see both events, got %d", secondCalls)
	}
	if bus.Len() != 1 {
		t.Errorf("expected 1 subscriber left, got %d", bus.Len())
	}
}

func TestTouchEvent(t *testing.T) {
	ev := Touch(TouchStart, Point{X: 3, Y: 4}, Point{X: 9, Y: 9})
	if ev.SingleTouch() {
		t.Error("two touch points reported as single touch")
	}
	if ev.Pos != (Point{X: 3, Y: 4}) {
		t.Errorf("expected Pos to mirror first touch, got %+v", ev.Pos)
	}
	if !ev.IsTouch() {
		t.Error("expected touch event")
	}
	if Pointer(PointerDown, 0, 0).IsTouch() {
		t.Error("pointer event reported as touch")
	}
	if TouchEnd.String() != "touch_end" {
		t.Errorf("unexpected kind name %q", TouchEnd.String())
	}
}
