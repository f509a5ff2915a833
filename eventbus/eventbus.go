package eventbus

import (
	"context"
	"encoding/json"
)

// Topic은 토픽 이름을 관리합니다.
type Topic struct {
	base string
}

func NewTopic(base string) Topic {
	return Topic{base: base}
}

func (t Topic) Base() string {
	return t.base
}

// Event는 버스 메시지의 페이로드로 사용되는 구조체입니다.
type Event struct {
	ID      string          `json:"id"`
	Payload json.RawMessage `json:"payload"`
}

// EventHandler는 이벤트 처리 함수의 시그니처입니다.
type EventHandler func(ctx context.Context, event Event) error

// EventBus 인터페이스는 이벤트 발행 및 구독의 추상화를 정의합니다.
// 핸들러가 실패해도 이벤트는 재발행되지 않습니다. 분류 작업은 자동
// 재시도 없이 best-effort 로 동작하며, 실패는 로그로만 남깁니다.
type EventBus interface {
	Publish(ctx context.Context, topic string, event Event) error
	// Subscribe는 토픽을 구독하여 메인 로직을 실행합니다. ctx가 취소될 때까지 블록됩니다.
	Subscribe(ctx context.Context, groupID string, topic Topic, handler EventHandler) error
	Close()
}
