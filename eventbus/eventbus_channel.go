package eventbus

import (
	"context"
	"sync"

	"glana/internal/logger"
)

// ChannelEventBus는 단일 프로세스 배포를 위한 인메모리 EventBus 구현체입니다.
// Subscribe는 고정 크기의 워커 풀을 띄워 이벤트를 소비하므로, 발행 측은
// 핸들러(AI 호출 포함)를 기다리지 않습니다. 핸들러 실패는 로그만 남기고
// 이벤트는 버려집니다 (자동 재시도 없음).
type ChannelEventBus struct {
	mu      sync.Mutex
	chans   map[string]chan Event
	buffer  int
	workers int
	closed  bool
	wg      sync.WaitGroup
}

// NewChannelEventBus는 토픽당 buffer 크기의 채널과 workers개의 소비
// 고루틴을 사용하는 버스를 생성합니다.
func NewChannelEventBus(buffer, workers int) *ChannelEventBus {
	if buffer <= 0 {
		buffer = 256
	}
	if workers <= 0 {
		workers = 4
	}
	return &ChannelEventBus{
		chans:   map[string]chan Event{},
		buffer:  buffer,
		workers: workers,
	}
}

func (b *ChannelEventBus) topicChan(topic string) chan Event {
	b.mu.Lock()
	defer b.mu.Unlock()
	ch, ok := b.chans[topic]
	if !ok {
		ch = make(chan Event, b.buffer)
		b.chans[topic] = ch
	}
	return ch
}

// Publish는 이벤트를 토픽 채널에 넣습니다. 버퍼가 가득 찬 경우
// 컨텍스트 취소 전까지 블록됩니다.
func (b *ChannelEventBus) Publish(ctx context.Context, topic string, event Event) error {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return context.Canceled
	}
	ch, ok := b.chans[topic]
	if !ok {
		ch = make(chan Event, b.buffer)
		b.chans[topic] = ch
	}
	b.mu.Unlock()

	select {
	case ch <- event:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Subscribe는 워커 풀을 시작하고 ctx가 취소될 때까지 블록됩니다.
// groupID는 Kafka 구현과의 시그니처 호환을 위해 받지만 사용하지 않습니다.
func (b *ChannelEventBus) Subscribe(ctx context.Context, groupID string, topic Topic, handler EventHandler) error {
	ch := b.topicChan(topic.Base())

	for i := 0; i < b.workers; i++ {
		b.wg.Add(1)
		go func() {
			defer b.wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case evt := <-ch:
					if err := handler(ctx, evt); err != nil {
						// 실패는 관측 가능해야 하지만 전파되지는 않는다.
						logger.Log.Errorf("event %s handler failed: %v", evt.ID, err)
					}
				}
			}
		}()
	}

	<-ctx.Done()
	b.wg.Wait()
	return ctx.Err()
}

// Close는 버스를 닫아 이후의 Publish를 거부합니다. 토픽 채널 자체는 닫지
// 않습니다. 닫으면 진행 중인 Publish의 송신과 경합해 panic할 수 있기
// 때문이며, 워커 고루틴은 Subscribe 컨텍스트 취소로 종료됩니다.
func (b *ChannelEventBus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
}
