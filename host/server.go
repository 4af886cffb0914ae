package host

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"docengine/presence"
)

var upgrader = websocket.Upgrader{CheckOrigin: func(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" || origin == "null" {
		return true
	}
	for _, prefix := range []string{"http://localhost", "http://127.0.0.1", "https://localhost", "https://127.0.0.1"} {
		if strings.HasPrefix(origin, prefix) {
			return true
		}
	}
	return false
}}

// Server wires a Hub to gin's HTTP routing, the reference embedding of
// this engine described by SPEC_FULL.md's host package: it is a
// consumer of document.Controller, never a participant in the
// rules/tree/delta internals.
type Server struct {
	hub      *Hub
	presence presence.Cache
}

// NewServer returns a Server over hub, optionally backed by a presence
// cache (nil disables roster tracking).
func NewServer(hub *Hub, pc presence.Cache) *Server {
	return &Server{hub: hub, presence: pc}
}

// Register attaches the websocket upgrade endpoint and a health check
// to r, mirroring collab_server/main.go's route wiring.
func (s *Server) Register(r gin.IRouter) {
	r.GET("/ws", s.handleWebsocket)
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

func (s *Server) handleWebsocket(c *gin.Context) {
	authorID := c.GetString("authorId")
	name := c.GetString("authorName")

	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}
	conn := NewConn(ws, s.hub, authorID, name, s.presence)
	go conn.WriteLoop()
	conn.enqueue(ServerMessage{Type: "welcome"})
	conn.ReadLoop()
}
