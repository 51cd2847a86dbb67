package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sweetcrumb/cakeshop-backend/internal/errors"
	"github.com/sweetcrumb/cakeshop-backend/internal/middleware"
	ws "github.com/sweetcrumb/cakeshop-backend/internal/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// The feed sits behind JWT auth, so cross-origin dashboards
		// are allowed
		return true
	},
}

type EventsController struct {
	hub *ws.Hub
}

func NewEventsController(hub *ws.Hub) *EventsController {
	return &EventsController{
		hub: hub,
	}
}

// StreamOrderEvents upgrades the connection and streams order events
// to the manager dashboard. Auth runs in middleware; browsers pass the
// token as a query parameter since WebSocket requests cannot carry an
// Authorization header.
// GET /api/v1/manage/orders/events
func (ctrl *EventsController) StreamOrderEvents(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		errors.Unauthorized(c, "")
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error("Failed to upgrade order feed connection", err, map[string]interface{}{
			"user_id": userID,
		})
		return
	}

	client := ws.NewClient(ctrl.hub, conn, userID)
	ctrl.hub.Register(client)

	log.Info("Order feed session started", map[string]interface{}{
		"user_id": userID,
	})

	go client.WritePump()
	go client.ReadPump()
}
