package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/courtside/badminton-scoring/scoreboard"
	"github.com/courtside/badminton-scoring/services"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Scoreboard displays run on venue hardware; origin checks belong
		// in the reverse proxy config.
		return true
	},
}

type WebSocketHandler struct {
	hub          *scoreboard.Hub
	matchService services.MatchService
}

func NewWebSocketHandler(hub *scoreboard.Hub, matchService services.MatchService) *WebSocketHandler {
	return &WebSocketHandler{hub: hub, matchService: matchService}
}

// ServeWs subscribes a scoreboard display to one match. The client gets an
// immediate snapshot, then a fresh document on every committed action.
func (h *WebSocketHandler) ServeWs(w http.ResponseWriter, r *http.Request) {
	matchID, err := getIDFromURL(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	match, err := h.matchService.GetByID(r.Context(), matchID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already replied to the client.
		log.Printf("Failed to upgrade connection for match %d: %v", matchID, err)
		return
	}

	roomID := scoreboard.RoomForMatch(matchID)
	client := &scoreboard.Client{
		Hub:  h.hub,
		Conn: conn,
		Send: make(chan []byte, 256),
		Room: roomID,
	}
	client.Hub.Register <- client

	go client.WritePump()
	go client.ReadPump()

	snapshot, err := json.Marshal(scoreboard.Message{
		Type:    scoreboard.MessageMatchSnapshot,
		Payload: match,
		RoomID:  roomID,
	})
	if err != nil {
		log.Printf("Failed to marshal snapshot for match %d: %v", matchID, err)
		return
	}
	client.Send <- snapshot
}
