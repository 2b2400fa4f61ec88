package websocket

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/iamasit07/connect-four/internal/domain"
)

const writeWait = 10 * time.Second

// ConnectionManager handles active WebSocket connections thread-safely
type ConnectionManager struct {
	connections map[int64]*websocket.Conn
	usernames   map[int64]string

	// gorilla connections allow one concurrent writer
	writeMu map[int64]*sync.Mutex

	mu sync.RWMutex // Protects the maps themselves
}

func NewConnectionManager() *ConnectionManager {
	return &ConnectionManager{
		connections: make(map[int64]*websocket.Conn),
		usernames:   make(map[int64]string),
		writeMu:     make(map[int64]*sync.Mutex),
	}
}

// AddConnection registers a connection. A user has at most one socket, an
// older one is closed.
func (cm *ConnectionManager) AddConnection(userID int64, conn *websocket.Conn, username string) {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if oldConn, exists := cm.connections[userID]; exists && oldConn != conn {
		oldConn.Close()
	}

	cm.connections[userID] = conn
	cm.usernames[userID] = username
	cm.writeMu[userID] = &sync.Mutex{}
}

// RemoveConnectionIfMatching avoids race conditions where we might accidentally
// close a NEW connection when trying to clean up an OLD one.
func (cm *ConnectionManager) RemoveConnectionIfMatching(userID int64, conn *websocket.Conn) {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if currentConn, exists := cm.connections[userID]; exists && currentConn == conn {
		currentConn.Close()
		delete(cm.connections, userID)
		delete(cm.usernames, userID)
		delete(cm.writeMu, userID)
	}
}

func (cm *ConnectionManager) IsCurrentConnection(userID int64, conn *websocket.Conn) bool {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	currentConn, exists := cm.connections[userID]
	return exists && currentConn == conn
}

// SendMessage writes a JSON message to userID. Messages to users without a
// socket are dropped.
func (cm *ConnectionManager) SendMessage(userID int64, message domain.ServerMessage) error {
	cm.mu.RLock()
	conn, exists := cm.connections[userID]
	mu, muExists := cm.writeMu[userID]
	cm.mu.RUnlock()

	if !exists || !muExists {
		return nil
	}

	mu.Lock()
	defer mu.Unlock()

	conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(message)
}

func (cm *ConnectionManager) GetUsername(userID int64) (string, bool) {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	name, exists := cm.usernames[userID]
	return name, exists
}

func (cm *ConnectionManager) Count() int {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	return len(cm.connections)
}
