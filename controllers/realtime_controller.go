package controllers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/warbee0712/lunajoy/services"
)

type RealtimeController struct {
	Hub *services.Hub
}

func NewRealtimeController(hub *services.Hub) *RealtimeController {
	return &RealtimeController{Hub: hub}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true }, // CORS is enforced at the router
}

// clientFrame is what the browser sends: joinRoom / leaveRoom with a userId.
type clientFrame struct {
	Event  string `json:"event"`
	UserID string `json:"userId"`
}

// HandleWS upgrades the connection and runs the session's read loop. Room
// membership follows the client's joinRoom/leaveRoom frames; any read error
// is treated as a disconnect and performs the implicit leave.
func (rc *RealtimeController) HandleWS(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	session := services.NewSession(uuid.NewString(), conn)
	go session.WritePump()
	slog.Info("realtime session connected", "session", session.ID)

	for {
		var frame clientFrame
		if err := conn.ReadJSON(&frame); err != nil {
			rc.Hub.Unregister(session)
			slog.Info("realtime session disconnected", "session", session.ID)
			return
		}

		switch frame.Event {
		case "joinRoom":
			if frame.UserID != "" {
				rc.Hub.Join(session, frame.UserID)
				slog.Info("session joined room", "session", session.ID, "userId", frame.UserID)
			}
		case "leaveRoom":
			rc.Hub.Leave(session, frame.UserID)
		}
	}
}
