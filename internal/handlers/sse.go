package handlers

import (
	"github.com/dimitrije/signshop-api/internal/middleware"
	"github.com/dimitrije/signshop-api/internal/sse"
	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
)

type SSEHandler struct {
	hub HubInterface
}

func NewSSEHandler(hub HubInterface) *SSEHandler {
	return &SSEHandler{hub: hub}
}

// AdminEvents streams back-office events (new quote requests, catalog
// reloads) to a super admin until the request is cancelled.
func (h *SSEHandler) AdminEvents(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	sseCtx := c.SSE()

	client := sse.NewClient(userID, sse.TopicAdmin)
	h.hub.Register(client)
	defer h.hub.Unregister(client)

	if err := sseCtx.SendJSON(map[string]string{
		"type":      "connected",
		"client_id": client.ID,
	}, "system", ""); err != nil {
		return
	}

	done := c.Request.Context().Done()
	for {
		select {
		case msg, ok := <-client.Send:
			if !ok {
				return
			}
			if err := sseCtx.Send(string(msg), "message", ""); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}
