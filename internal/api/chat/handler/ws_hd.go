package chatHandler

import (
	"context"
	"strings"
	"time"

	"HealthAssistant/internal/api/chat"
	"HealthAssistant/internal/middleware"
	contextPkg "HealthAssistant/pkg/context"
	"HealthAssistant/pkg/response"
	"github.com/gofiber/websocket/v2"
	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
)

const wsIdleTimeout = 10 * time.Minute

func (h *ChatHandler) handleChatWebSocket(c *websocket.Conn) {
	sessionID, _ := c.Locals(contextPkg.SessionIDKey).(string)
	requestID, _ := c.Locals(middleware.RequestIDKey).(string)

	fields := logrus.Fields{
		"request_id": requestID,
		"session_id": sessionID,
	}

	h.log.WithFields(fields).Info("Chat WebSocket client connected")
	defer h.log.WithFields(fields).Info("Chat WebSocket client disconnected")

	c.SetPingHandler(func(data string) error {
		if err := c.WriteControl(websocket.PongMessage, []byte(data), time.Now().Add(5*time.Second)); err != nil {
			h.log.Errorf("Error sending pong: %v", err)
		}
		return nil
	})

	for {
		if err := c.SetReadDeadline(time.Now().Add(wsIdleTimeout)); err != nil {
			h.log.Errorf("Error setting read deadline: %v", err)
			break
		}

		messageType, raw, err := c.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.log.WithFields(fields).Errorf("Chat WebSocket error: %v", err)
			}
			break
		}

		if messageType != websocket.TextMessage {
			h.log.Warnf("Received unexpected message type: %d", messageType)
			continue
		}

		req := parseWSMessage(raw)
		if err := h.validator.Struct(req); err != nil {
			if writeErr := c.WriteJSON(map[string]string{"error": "Validation failed: " + err.Error()}); writeErr != nil {
				break
			}
			continue
		}

		ctx, cancel := context.WithTimeout(contextPkg.WithSessionID(contextPkg.WithRequestID(context.Background(), requestID), sessionID), sendTimeout)
		reply, err := h.chatService.SendMessage(ctx, sessionID, req.Message)
		cancel()

		var out interface{}
		if err != nil {
			h.log.WithFields(fields).Errorf("Error processing chat message: %v", err)
			out = map[string]interface{}{
				"error": err.Error(),
				"code":  response.CodeOf(err, 500),
			}
		} else {
			out = chat.NewSendMessageResponse(reply)
		}

		if err := c.SetWriteDeadline(time.Now().Add(10 * time.Second)); err != nil {
			h.log.Errorf("Error setting write deadline: %v", err)
			break
		}

		if err := c.WriteJSON(out); err != nil {
			h.log.Errorf("Error writing JSON response: %v", err)
			break
		}

		if err := c.SetWriteDeadline(time.Time{}); err != nil {
			h.log.Errorf("Error resetting write deadline: %v", err)
			break
		}
	}
}

// parseWSMessage accepts either a JSON {"message": ...} object or plain text.
func parseWSMessage(raw []byte) chat.SendMessageRequest {
	var req chat.SendMessageRequest
	trimmed := strings.TrimSpace(string(raw))
	if strings.HasPrefix(trimmed, "{") && jsoniter.Unmarshal(raw, &req) == nil {
		return req
	}
	return chat.SendMessageRequest{Message: string(raw)}
}
