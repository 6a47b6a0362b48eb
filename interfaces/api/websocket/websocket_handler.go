package websocket

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"

	websocketManager "heritage-archive/infrastructure/websocket"
	"heritage-archive/interfaces/api/middleware"
	"heritage-archive/pkg/logger"
)

type WebSocketHandler struct {
	manager *websocketManager.Manager
}

func NewWebSocketHandler(manager *websocketManager.Manager) *WebSocketHandler {
	return &WebSocketHandler{manager: manager}
}

// WebSocketUpgrade runs after the admin check and copies the admin id into
// the connection locals before the upgrade.
func (h *WebSocketHandler) WebSocketUpgrade(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}
	if p := middleware.CurrentProfile(c); p != nil {
		c.Locals("admin_id", p.ID)
	}
	return c.Next()
}

// HandleWebSocket keeps the connection registered until the client goes away.
// The feed is one-way; anything the client sends is read and discarded.
func (h *WebSocketHandler) HandleWebSocket(c *websocket.Conn) {
	adminID, _ := c.Locals("admin_id").(string)

	h.manager.RegisterClient(c, adminID)
	defer h.manager.UnregisterClient(c)

	for {
		if _, _, err := c.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger.WebSocketError("read_message", "WebSocket read error", err, map[string]interface{}{"user_id": adminID})
			}
			return
		}
	}
}
