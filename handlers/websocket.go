package handlers

import (
	"log"
	"net/http"
	"sync/atomic"
	"time"

	"restofinder/events"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const wsWriteTimeout = 10 * time.Second

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// WebSocket streams the user's favourite and blacklist changes as they happen
func (h *Handlers) WebSocket(c *gin.Context, userID uint64) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Print("upgrade:", err)
		return
	}
	defer conn.Close()

	// Setup client
	var isConnected atomic.Bool
	isConnected.Store(true)
	client := events.NewClient(func(data []byte) bool {
		if !isConnected.Load() {
			return false
		}
		_ = conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			log.Println("write err:", err)
			isConnected.Store(false)
			return false
		}
		return true
	})
	h.Hub.Add(userID, client)
	defer h.Hub.Remove(userID, client)
	// Main read cycle, clients only ping
	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			isConnected.Store(false)
			break
		}
		if string(message) == "ping" {
			client.Send([]byte("pong"))
		}
	}
}
