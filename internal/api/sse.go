package api

import (
	"encoding/json"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/pokerjest/workshopTitleTool/internal/event"
)

// SSEHandler 处理 Server-Sent Events 连接
func (s *Server) SSEHandler(c *gin.Context) {
	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")

	// InMemoryBus 是 callback 模式, 用一个带缓冲的 channel 桥接到当前连接
	clientChan := make(chan event.Event, 10)
	bridgeHandler := func(e event.Event) {
		// 非阻塞发送，避免慢客户端阻塞总线
		select {
		case clientChan <- e:
		default:
		}
	}

	topics := []event.EventType{
		event.EventSyncProgress,
		event.EventSyncComplete,
		event.EventBaseTitleChanged,
	}
	subIDs := make(map[event.EventType]string, len(topics))
	for _, t := range topics {
		subIDs[t] = s.Bus.Subscribe(t, bridgeHandler)
	}
	// handler 可能在 Unsubscribe 之后仍在运行, 所以不关闭 clientChan
	defer func() {
		for t, id := range subIDs {
			s.Bus.Unsubscribe(t, id)
		}
		log.Println("SSE Client disconnected")
	}()

	c.SSEvent("message", "connected")
	c.Writer.Flush()

	for {
		select {
		case evt := <-clientChan:
			data, err := json.Marshal(evt.Payload)
			if err != nil {
				log.Printf("SSE JSON Marshal error: %v", err)
				continue
			}
			// 事件名即为 Topic
			c.SSEvent(string(evt.Type), string(data))
			c.Writer.Flush()

		case <-c.Request.Context().Done():
			return
		}
	}
}
