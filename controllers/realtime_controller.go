package controllers

import (
	"net/http"
	"time"

	"github.com/UlyssesVaz/SoundCreditUnion/middlewares"
	"github.com/UlyssesVaz/SoundCreditUnion/services"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

type RealtimeController struct {
	RT *services.RealtimeHub
}

func NewRealtimeController(rt *services.RealtimeHub) *RealtimeController {
	return &RealtimeController{RT: rt}
}

var upgrader = websocket.Upgrader{
	// the extension connects from chrome-extension:// origins
	CheckOrigin: func(r *http.Request) bool { return true },
}

// EventsWS streams recommendation tracking events to the member's open
// extension sessions.
func (rc *RealtimeController) EventsWS(c *gin.Context) {
	userID := middlewares.CurrentUserID(c)

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}
	cl := &services.WSClient{UserID: userID, Conn: conn}
	rc.RT.Register(cl)

	// keep connections alive through proxies
	go func() {
		t := time.NewTicker(25 * time.Second)
		defer t.Stop()
		for range t.C {
			if err := cl.Ping(); err != nil {
				rc.RT.Unregister(cl)
				return
			}
		}
	}()

	// read loop ends on client close/error
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			rc.RT.Unregister(cl)
			return
		}
	}
}
