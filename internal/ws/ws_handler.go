package ws

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"showcase-server/internal/middleware"
)

const (
	// Time allowed to write a message to the client.
	writeWait = 10 * time.Second
	// Time allowed to read the next pong message from the client.
	pongWait = 60 * time.Second
	// Ping period, must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10
	// Maximum message size allowed from the client.
	maxMessageSize = 512
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// TODO: restrict Origin to the configured CORS origins
		return true
	},
}

// WebSocketHandler upgrades display connections that subscribe to interface
// updates.
type WebSocketHandler struct {
	manager  *ConnectionManager
	verifier middleware.TokenVerifier
	logger   zerolog.Logger
}

// NewWebSocketHandler creates a new WebSocket handler.
func NewWebSocketHandler(manager *ConnectionManager, verifier middleware.TokenVerifier, logger zerolog.Logger) *WebSocketHandler {
	return &WebSocketHandler{
		manager:  manager,
		verifier: verifier,
		logger:   logger.With().Str("component", "WebSocketHandler").Logger(),
	}
}

// ServeWS handles GET /ws/interfaces/:interfaceID?token=... Displays pass
// the bearer token as a query parameter because browsers cannot set headers
// on WebSocket upgrades.
func (h *WebSocketHandler) ServeWS(c *gin.Context) {
	tokenString := c.Query("token")
	if tokenString == "" {
		h.logger.Warn().Msg("Missing 'token' query parameter")
		c.String(http.StatusUnauthorized, "Unauthorized: Missing token")
		return
	}

	claims, err := h.verifier(c.Request.Context(), tokenString)
	if err != nil {
		h.logger.Warn().Err(err).Msg("Invalid token")
		c.String(http.StatusUnauthorized, "Unauthorized: Invalid token")
		return
	}

	interfaceID, err := uuid.Parse(c.Param("interfaceID"))
	if err != nil {
		h.logger.Warn().Str("raw", c.Param("interfaceID")).Msg("Invalid interface id")
		c.String(http.StatusBadRequest, "Bad request: invalid interface id")
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to upgrade connection")
		return
	}

	log := h.logger.With().
		Str("userID", claims.UserID.String()).
		Str("interfaceID", interfaceID.String()).
		Logger()
	log.Info().Msg("WebSocket connection established")

	client := &Client{
		InterfaceID: interfaceID,
		Conn:        conn,
		send:        make(chan []byte, 256),
	}
	h.manager.RegisterClient(client)

	go client.writePump(log)
	go client.readPump(h.manager, log)
}

// readPump drains messages from the connection. Clients are not expected to
// send anything; reads only serve pong handling and close detection.
func (c *Client) readPump(manager *ConnectionManager, logger zerolog.Logger) {
	defer func() {
		manager.UnregisterClient(c)
		_ = c.Conn.Close()
		logger.Info().Msg("readPump finished")
	}()
	c.Conn.SetReadLimit(maxMessageSize)
	_ = c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		_ = c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Warn().Err(err).Msg("WebSocket read error")
			} else {
				logger.Info().Msg("WebSocket connection closed")
			}
			break
		}
		logger.Warn().Bytes("message", message).Msg("Received unexpected message from client (ignored)")
	}
}

// writePump pumps messages from the send channel to the connection.
func (c *Client) writePump(logger zerolog.Logger) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		logger.Info().Msg("writePump finished")
	}()
	for {
		select {
		case message, ok := <-c.send:
			_ = c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				logger.Error().Err(err).Msg("Failed to write message")
				return
			}

		case <-ticker.C:
			_ = c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				logger.Warn().Err(err).Msg("Failed to send ping")
				return
			}
		}
	}
}
