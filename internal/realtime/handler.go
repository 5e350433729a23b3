package realtime

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"tigerlife/internal/pkg/logger"
	"tigerlife/internal/pkg/response"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	maxMsgSize = 4 * 1024
)

// Handler upgrades authenticated requests to websocket sessions.
type Handler struct {
	hub      *Hub
	poller   *Poller
	upgrader websocket.Upgrader
	log      *zap.Logger
}

// NewHandler allows any origin when allowedOrigins is empty.
func NewHandler(hub *Hub, poller *Poller, allowedOrigins []string, log *zap.Logger) *Handler {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = true
	}
	return &Handler{
		hub:    hub,
		poller: poller,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return len(allowed) == 0 || origin == "" || allowed[origin]
			},
		},
		log: logger.OrNop(log),
	}
}

func (h *Handler) RegisterProtectedRoutes(rg *gin.RouterGroup) {
	rg.GET("/ws", h.ServeWS)
}

// ServeWS runs one session: GET /ws?token=<jwt>[&peer_id=<user>].
func (h *Handler) ServeWS(c *gin.Context) {
	userID := c.GetInt64("user_id")

	var peerID int64
	if raw := c.Query("peer_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			response.Error(c, http.StatusBadRequest, "VALIDATION", "Invalid peer ID")
			return
		}
		peerID = id
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Warn("websocket upgrade failed", zap.Int64("user_id", userID), zap.Error(err))
		return
	}

	cl := &client{userID: userID, conn: conn, send: make(chan []byte, sendBuffer)}
	h.hub.register(cl)
	h.log.Debug("websocket connected", zap.Int64("user_id", userID))

	ctx, cancel := context.WithCancel(context.Background())
	polling := make(chan struct{})
	go func() {
		defer close(polling)
		h.poller.Run(ctx, userID, peerID, func(e *Event) {
			h.hub.pushTo(cl, e)
		})
	}()
	go h.writePump(cl)

	h.readPump(cl)

	cancel()
	<-polling
	h.hub.unregister(cl)
	h.log.Debug("websocket disconnected", zap.Int64("user_id", userID))
}

// readPump only keeps the connection alive; clients do not send commands.
func (h *Handler) readPump(c *client) {
	c.conn.SetReadLimit(maxMsgSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.log.Debug("websocket read failed", zap.Int64("user_id", c.userID), zap.Error(err))
			}
			return
		}
	}
}

func (h *Handler) writePump(c *client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
