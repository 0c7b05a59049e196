package event

import (
	"sync"

	"github.com/google/uuid"
)

// EventType 定义事件类型
type EventType string

const (
	EventSyncProgress     EventType = "sync_progress"
	EventSyncComplete     EventType = "sync_complete"
	EventBaseTitleChanged EventType = "base_title_changed"
)

// Event 代表一个系统事件
type Event struct {
	Type    EventType
	Payload interface{}
}

// SyncProgress 是 EventSyncProgress / EventSyncComplete 的 payload
type SyncProgress struct {
	Done    int `json:"done"`
	Total   int `json:"total"`
	Changed int `json:"changed"`
}

// TitleChange 是 EventBaseTitleChanged 的 payload
type TitleChange struct {
	ItemID     uint   `json:"item_id"`
	WorkshopID string `json:"workshop_id"`
	OldBase    string `json:"old_base"`
	NewBase    string `json:"new_base"`
	LocalPath  string `json:"local_path"`
}

// Handler 处理事件的函数签名
type Handler func(event Event)

// Bus 事件总线接口
type Bus interface {
	Subscribe(topic EventType, handler Handler) string // 返回 Subscription ID
	Unsubscribe(topic EventType, subID string)
	Publish(topic EventType, payload interface{})
}

type handlerWrapper struct {
	ID      string
	Handler Handler
}

// InMemoryBus 简单的内存事件总线实现
type InMemoryBus struct {
	mu       sync.RWMutex
	handlers map[EventType][]handlerWrapper
}

// GlobalBus 全局单例
var GlobalBus Bus = NewInMemoryBus()

func NewInMemoryBus() *InMemoryBus {
	return &InMemoryBus{
		handlers: make(map[EventType][]handlerWrapper),
	}
}

func (b *InMemoryBus) Subscribe(topic EventType, handler Handler) string {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := uuid.New().String()
	b.handlers[topic] = append(b.handlers[topic], handlerWrapper{ID: id, Handler: handler})
	return id
}

func (b *InMemoryBus) Unsubscribe(topic EventType, subID string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	wrappers := b.handlers[topic]
	for i, w := range wrappers {
		if w.ID == subID {
			// copy, Publish 可能还持有旧 slice
			next := make([]handlerWrapper, 0, len(wrappers)-1)
			next = append(next, wrappers[:i]...)
			b.handlers[topic] = append(next, wrappers[i+1:]...)
			break
		}
	}
}

func (b *InMemoryBus) Publish(topic EventType, payload interface{}) {
	b.mu.RLock()
	wrappers := b.handlers[topic]
	b.mu.RUnlock()

	// 异步执行所有 Handler，避免阻塞发布者
	evt := Event{Type: topic, Payload: payload}
	for _, w := range wrappers {
		go w.Handler(evt)
	}
}
