package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"finance-advisor/domain"
	"finance-advisor/service"
)

// ClientMessage is one inbound WebSocket frame.
type ClientMessage struct {
	Type           string `json:"type"`
	Query          string `json:"query"`
	IncludeContext bool   `json:"include_context"`
}

// ServerMessage is one outbound WebSocket frame. Exactly one of Advice,
// Reply, and Error is set depending on Type.
type ServerMessage struct {
	Type           string                  `json:"type"`
	ConversationID string                  `json:"conversation_id,omitempty"`
	Advice         *domain.AdvisorResponse `json:"advice,omitempty"`
	Reply          *domain.ChatResponse    `json:"reply,omitempty"`
	Error          string                  `json:"error,omitempty"`
}

// WSHandler serves a per-connection chat session. Each query frame is
// routed: finance queries get the full advisory bundle, everything else a
// chat reply.
type WSHandler struct {
	advisor  *service.AdvisorService
	chat     *service.ChatService
	upgrader websocket.Upgrader
}

func NewWSHandler(advisor *service.AdvisorService, chat *service.ChatService) *WSHandler {
	return &WSHandler{
		advisor: advisor,
		chat:    chat,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

func (h *WSHandler) Serve(w http.ResponseWriter, r *http.Request) {
	userID := UserFromContext(r.Context())
	if userID == "" {
		userID = r.URL.Query().Get("user_id")
	}
	if userID == "" {
		http.Error(w, "user_id is required", http.StatusBadRequest)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	conversationID := uuid.NewString()
	log.Printf("WebSocket session %s opened for user %s", conversationID, userID)
	h.send(conn, ServerMessage{Type: "session", ConversationID: conversationID})

	for {
		_, msgBytes, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error on session %s: %v", conversationID, err)
			}
			break
		}

		var msg ClientMessage
		if err := json.Unmarshal(msgBytes, &msg); err != nil {
			h.send(conn, ServerMessage{Type: "error", ConversationID: conversationID, Error: "invalid message format"})
			continue
		}

		switch msg.Type {
		case "query":
			h.handleQuery(r.Context(), conn, conversationID, userID, msg)
		default:
			h.send(conn, ServerMessage{
				Type:           "error",
				ConversationID: conversationID,
				Error:          fmt.Sprintf("unknown message type: %s", msg.Type),
			})
		}
	}

	log.Printf("WebSocket session %s closed", conversationID)
}

func (h *WSHandler) handleQuery(ctx context.Context, conn *websocket.Conn, conversationID, userID string, msg ClientMessage) {
	reply, err := h.chat.Reply(ctx, domain.ChatRequest{
		UserID:         userID,
		Query:          msg.Query,
		IncludeContext: msg.IncludeContext,
	})
	if err == nil {
		h.send(conn, ServerMessage{Type: "reply", ConversationID: conversationID, Reply: &reply})
		return
	}

	if errors.Is(err, service.ErrFinanceQuery) {
		advice := h.advisor.Advise(ctx, domain.AdvisorRequest{UserID: userID, Query: msg.Query})
		h.send(conn, ServerMessage{Type: "advice", ConversationID: conversationID, Advice: &advice})
		return
	}

	log.Printf("Error answering query on session %s: %v", conversationID, err)
	h.send(conn, ServerMessage{Type: "error", ConversationID: conversationID, Error: "failed to answer query"})
}

func (h *WSHandler) send(conn *websocket.Conn, msg ServerMessage) {
	if err := conn.WriteJSON(msg); err != nil {
		log.Printf("Error writing WebSocket message: %v", err)
	}
}
