package eventbus

import (
	"context"
	"testing"
	"time"
)

func TestMemoryBusDeliversToSubscriber(t *testing.T) {
	bus := NewMemoryBus(16)

	received := make(chan *Envelope, 1)
	_, err := bus.Subscribe(context.Background(), Filter{}, func(ctx context.Context, ev *Envelope) {
		received <- ev
	})
	if err != nil {
		t.Fatalf("Ошибка подписки: %v", err)
	}

	ev := NewEnvelope("world", "tile_placed", []byte(`{"x":1,"y":2}`))
	if err := bus.Publish(context.Background(), ev); err != nil {
		t.Fatalf("Ошибка публикации: %v", err)
	}

	select {
	case got := <-received:
		if got.ID != ev.ID || got.EventType != "tile_placed" {
			t.Errorf("Получено чужое событие: %+v", got)
		}
	case <-time.After(time.Second):
		t.Fatal("Событие не доставлено за секунду")
	}
}

func TestMemoryBusFilter(t *testing.T) {
	bus := NewMemoryBus(16)

	tokenEvents := make(chan *Envelope, 4)
	_, err := bus.Subscribe(context.Background(), Filter{Types: []string{"token_placed"}}, func(ctx context.Context, ev *Envelope) {
		tokenEvents <- ev
	})
	if err != nil {
		t.Fatalf("Ошибка подписки: %v", err)
	}

	_ = bus.Publish(context.Background(), NewEnvelope("world", "tile_placed", nil))
	_ = bus.Publish(context.Background(), NewEnvelope("world", "token_placed", nil))

	select {
	case got := <-tokenEvents:
		if got.EventType != "token_placed" {
			t.Errorf("Фильтр пропустил событие %s", got.EventType)
		}
	case <-time.After(time.Second):
		t.Fatal("Отфильтрованное событие не доставлено")
	}

	select {
	case got := <-tokenEvents:
		t.Errorf("Лишнее событие прошло фильтр: %s", got.EventType)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestMemoryBusUnsubscribe(t *testing.T) {
	bus := NewMemoryBus(16)

	received := make(chan *Envelope, 1)
	sub, err := bus.Subscribe(context.Background(), Filter{}, func(ctx context.Context, ev *Envelope) {
		received <- ev
	})
	if err != nil {
		t.Fatalf("Ошибка подписки: %v", err)
	}
	sub.Unsubscribe()

	_ = bus.Publish(context.Background(), NewEnvelope("world", "tile_placed", nil))

	select {
	case <-received:
		t.Error("Отписанный обработчик получил событие")
	case <-time.After(100 * time.Millisecond):
	}
}
