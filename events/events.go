package events

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// EventType 이벤트 타입 정의
type EventType string

const (
	ItemCaptured EventType = "item.captured"
)

// BaseEvent 모든 이벤트의 기본 구조
type BaseEvent struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Source    string    `json:"source"`
	Version   string    `json:"version"`
}

// ItemCapturedEvent 아이템 분류 파이프라인 트리거 이벤트.
// 신규 수집 또는 강제 재분류 시 발행된다. 소비자는 분류를 수행하고
// 아이템 문서를 갱신한다.
type ItemCapturedEvent struct {
	BaseEvent
	ItemID     primitive.ObjectID `json:"item_id"`
	ExternalID string             `json:"external_id"`
	SourceURL  string             `json:"source_url"`
}
