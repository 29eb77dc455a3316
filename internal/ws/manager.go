package ws

import (
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

// Client is one WebSocket connection subscribed to a single interface.
type Client struct {
	InterfaceID uuid.UUID
	Conn        *websocket.Conn
	send        chan []byte
}

// ConnectionManager tracks which displays are subscribed to which interface.
// Several displays may watch the same interface at once.
type ConnectionManager struct {
	clients    map[uuid.UUID]map[*Client]bool
	register   chan *Client
	unregister chan *Client
	mu         sync.RWMutex
	logger     zerolog.Logger
}

// NewConnectionManager creates and starts a new connection manager.
func NewConnectionManager(logger zerolog.Logger) *ConnectionManager {
	m := &ConnectionManager{
		clients:    make(map[uuid.UUID]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		logger:     logger.With().Str("component", "ConnectionManager").Logger(),
	}
	go m.run()
	return m
}

func (m *ConnectionManager) run() {
	m.logger.Info().Msg("ConnectionManager started")
	for {
		select {
		case client := <-m.register:
			m.mu.Lock()
			subscribers, ok := m.clients[client.InterfaceID]
			if !ok {
				subscribers = make(map[*Client]bool)
				m.clients[client.InterfaceID] = subscribers
			}
			subscribers[client] = true
			m.mu.Unlock()
			m.logger.Info().Str("interfaceID", client.InterfaceID.String()).Msg("Client registered")

		case client := <-m.unregister:
			m.mu.Lock()
			if subscribers, ok := m.clients[client.InterfaceID]; ok {
				if _, known := subscribers[client]; known {
					delete(subscribers, client)
					close(client.send)
					if len(subscribers) == 0 {
						delete(m.clients, client.InterfaceID)
					}
					m.logger.Info().Str("interfaceID", client.InterfaceID.String()).Msg("Client unregistered")
				}
			}
			m.mu.Unlock()
		}
	}
}

// RegisterClient registers a new client.
func (m *ConnectionManager) RegisterClient(client *Client) {
	m.register <- client
}

// UnregisterClient removes a client.
func (m *ConnectionManager) UnregisterClient(client *Client) {
	m.unregister <- client
}

// NotifyInterface sends the message to every client subscribed to the
// interface. Returns the number of clients the message was queued for.
func (m *ConnectionManager) NotifyInterface(interfaceID uuid.UUID, message []byte) int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	delivered := 0
	for client := range m.clients[interfaceID] {
		select {
		case client.send <- message:
			delivered++
		default:
			// Send queue full, the client is stalling or disconnecting.
			m.logger.Warn().Str("interfaceID", interfaceID.String()).Msg("Dropping message for slow client")
		}
	}
	return delivered
}
