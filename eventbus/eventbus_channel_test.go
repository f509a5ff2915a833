package eventbus_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"glana/eventbus"
)

func TestChannelBusDeliversPublishedEvents(t *testing.T) {
	bus := eventbus.NewChannelEventBus(8, 2)
	defer bus.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var mu sync.Mutex
	received := map[string]bool{}
	done := make(chan struct{})

	go func() {
		_ = bus.Subscribe(ctx, "test-group", eventbus.TopicItemEvents, func(_ context.Context, evt eventbus.Event) error {
			mu.Lock()
			received[evt.ID] = true
			if len(received) == 3 {
				close(done)
			}
			mu.Unlock()
			return nil
		})
	}()

	for _, id := range []string{"a", "b", "c"} {
		evt, err := eventbus.NewJSONEvent(id, map[string]string{"id": id})
		require.NoError(t, err)
		require.NoError(t, bus.Publish(ctx, eventbus.TopicItemEvents.Base(), evt))
	}

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("events were not delivered")
	}

	mu.Lock()
	defer mu.Unlock()
	assert.Len(t, received, 3)
}

func TestChannelBusHandlerFailureDoesNotStopWorkers(t *testing.T) {
	bus := eventbus.NewChannelEventBus(8, 1)
	defer bus.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var mu sync.Mutex
	var seen []string
	done := make(chan struct{})

	go func() {
		_ = bus.Subscribe(ctx, "test-group", eventbus.TopicItemEvents, func(_ context.Context, evt eventbus.Event) error {
			mu.Lock()
			seen = append(seen, evt.ID)
			if len(seen) == 2 {
				close(done)
			}
			mu.Unlock()
			if evt.ID == "boom" {
				return errors.New("handler blew up")
			}
			return nil
		})
	}()

	for _, id := range []string{"boom", "after"} {
		evt, err := eventbus.NewJSONEvent(id, map[string]string{})
		require.NoError(t, err)
		require.NoError(t, bus.Publish(ctx, eventbus.TopicItemEvents.Base(), evt))
	}

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("worker stopped after handler failure")
	}

	mu.Lock()
	defer mu.Unlock()
	// 단일 워커이므로 실패한 이벤트 다음 것도 순서대로 처리된다.
	assert.Equal(t, []string{"boom", "after"}, seen)
}

func TestChannelBusPublishRespectsContext(t *testing.T) {
	// 버퍼 1, 소비자 없음: 두 번째 발행은 컨텍스트 취소까지 블록된다.
	bus := eventbus.NewChannelEventBus(1, 1)
	defer bus.Close()

	evt, err := eventbus.NewJSONEvent("first", map[string]string{})
	require.NoError(t, err)
	require.NoError(t, bus.Publish(context.Background(), "quiet-topic", evt))

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	evt2, err := eventbus.NewJSONEvent("second", map[string]string{})
	require.NoError(t, err)
	err = bus.Publish(ctx, "quiet-topic", evt2)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestChannelBusCloseDuringPublish(t *testing.T) {
	// Close와 동시에 발행해도 panic 없이 끝나야 한다.
	// 버퍼는 총 발행량보다 크게 잡아 발행이 블록되지 않게 한다.
	bus := eventbus.NewChannelEventBus(512, 1)

	var wg sync.WaitGroup
	for w := 0; w < 4; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				evt, err := eventbus.NewJSONEvent("racy", map[string]string{})
				require.NoError(t, err)
				if err := bus.Publish(context.Background(), "racy-topic", evt); err != nil {
					// 닫힌 뒤의 발행은 거부된다.
					return
				}
			}
		}()
	}

	bus.Close()
	wg.Wait()

	evt, err := eventbus.NewJSONEvent("late", map[string]string{})
	require.NoError(t, err)
	assert.Error(t, bus.Publish(context.Background(), "racy-topic", evt))
}

func TestDecodeJSONRoundTrip(t *testing.T) {
	type payload struct {
		Name string `json:"name"`
		N    int    `json:"n"`
	}

	evt, err := eventbus.NewJSONEvent("evt-1", payload{Name: "swipe", N: 7})
	require.NoError(t, err)

	got, err := eventbus.DecodeJSON[payload](evt)
	require.NoError(t, err)
	assert.Equal(t, payload{Name: "swipe", N: 7}, got)
}
