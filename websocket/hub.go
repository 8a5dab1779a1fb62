package websocket

import (
	"context"
	"log"
	"strings"
	"sync"

	"github.com/CUknot/realtime_chat/models"
)

// MessageStore persists chat messages before they are broadcast.
type MessageStore interface {
	CreateMessage(ctx context.Context, roomID, username, content string) (*models.Message, error)
}

// PublishRequest is a message a client asks to post to a room.
type PublishRequest struct {
	RoomID   string
	Username string
	Content  string
}

// Hub tracks connected clients and routes room traffic to per-room actors.
type Hub struct {
	store MessageStore

	mu       sync.Mutex
	clients  map[*Client]struct{}
	rooms    map[string]*room
	shutdown bool

	// pumps counts running read/write goroutines of registered clients.
	pumps sync.WaitGroup
}

// NewHub creates a new hub instance
func NewHub(store MessageStore) *Hub {
	return &Hub{
		store:   store,
		clients: make(map[*Client]struct{}),
		rooms:   make(map[string]*room),
	}
}

// acquire returns the actor for roomID, starting one if needed, and takes a reference.
func (h *Hub) acquire(roomID string) *room {
	h.mu.Lock()
	defer h.mu.Unlock()

	r, ok := h.rooms[roomID]
	if !ok {
		r = newRoom(roomID)
		h.rooms[roomID] = r
		go r.run()
	}
	r.refs++
	return r
}

// acquireExisting is acquire without creating; nil means the room has no members.
func (h *Hub) acquireExisting(roomID string) *room {
	h.mu.Lock()
	defer h.mu.Unlock()

	r, ok := h.rooms[roomID]
	if !ok {
		return nil
	}
	r.refs++
	return r
}

// release drops n references and stops the actor once none remain.
func (h *Hub) release(r *room, n int) {
	h.mu.Lock()
	defer h.mu.Unlock()

	r.refs -= n
	if r.refs <= 0 {
		delete(h.rooms, r.id)
		close(r.events)
	}
}

// Join adds client to roomID. Joining twice is a no-op, and so is joining
// after the client has disconnected.
func (h *Hub) Join(client *Client, roomID string) {
	roomID = strings.TrimSpace(roomID)
	if roomID == "" {
		return
	}

	client.mu.Lock()
	defer client.mu.Unlock()
	if client.closed {
		return
	}
	if _, ok := client.rooms[roomID]; ok {
		return
	}

	r := h.acquire(roomID)
	ack := make(chan bool, 1)
	r.events <- joinEvent{client: client, ack: ack}
	if <-ack {
		client.rooms[roomID] = struct{}{}
		// The membership keeps the operation reference.
		return
	}
	h.release(r, 1)
}

// Leave removes client from roomID; leaving a room the client is not in is a no-op.
func (h *Hub) Leave(client *Client, roomID string) {
	roomID = strings.TrimSpace(roomID)

	client.mu.Lock()
	defer client.mu.Unlock()
	if _, ok := client.rooms[roomID]; !ok {
		return
	}
	delete(client.rooms, roomID)
	h.leave(client, roomID, func(c *Client, ack chan bool) roomEvent {
		return leaveEvent{client: c, ack: ack}
	})
}

// leave must be called with client.mu held.
func (h *Hub) leave(client *Client, roomID string, event func(*Client, chan bool) roomEvent) {
	r := h.acquireExisting(roomID)
	if r == nil {
		return
	}

	ack := make(chan bool, 1)
	r.events <- event(client, ack)
	refs := 1
	if <-ack {
		refs++
	}
	h.release(r, refs)
}

// Publish persists req and broadcasts the stored message to the room. When the
// store fails nothing is delivered and, if client is non-nil, it alone receives
// an error event.
func (h *Hub) Publish(ctx context.Context, client *Client, req PublishRequest) (*models.Message, error) {
	msg, err := h.store.CreateMessage(ctx, req.RoomID, req.Username, req.Content)
	if err != nil {
		log.Printf("Error sending message to room %q: %v", req.RoomID, err)
		if client != nil {
			client.sendError(ErrTextSendFailed)
		}
		return nil, err
	}

	h.Broadcast(msg.RoomID, msg)
	return msg, nil
}

// Broadcast sends an already stored message to every current member of roomID
// and returns how many members it was queued for.
func (h *Hub) Broadcast(roomID string, msg *models.Message) int {
	data, err := encodeMessage(EventNewMessage, msg)
	if err != nil {
		log.Printf("error marshaling message: %v", err)
		return 0
	}
	return h.broadcastToRoom(roomID, data)
}

// broadcastToRoom sends a frame to all clients in a room
func (h *Hub) broadcastToRoom(roomID string, data []byte) int {
	r := h.acquireExisting(roomID)
	if r == nil {
		return 0
	}
	defer h.release(r, 1)

	ack := make(chan int, 1)
	r.events <- deliverEvent{data: data, ack: ack}
	return <-ack
}

// Register tracks a connected client. It returns false once Shutdown has begun.
func (h *Hub) Register(client *Client) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.shutdown {
		return false
	}
	h.clients[client] = struct{}{}
	if client.conn != nil {
		h.pumps.Add(2)
	}
	return true
}

// Disconnect removes client from every room and then closes its send queue.
// No delivery reaches the client after Disconnect returns.
func (h *Hub) Disconnect(client *Client) {
	client.mu.Lock()
	if client.closed {
		client.mu.Unlock()
		return
	}
	client.closed = true

	for roomID := range client.rooms {
		h.leave(client, roomID, func(c *Client, ack chan bool) roomEvent {
			return disconnectEvent{client: c, ack: ack}
		})
	}
	client.rooms = make(map[string]struct{})
	close(client.send)
	client.mu.Unlock()

	h.mu.Lock()
	delete(h.clients, client)
	h.mu.Unlock()

	log.Printf("Client %s disconnected", client.id)
}

// ClientCount returns the number of registered clients.
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// RoomCount returns the number of rooms with members or pending work.
func (h *Hub) RoomCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.rooms)
}

// MemberCount returns the number of clients currently in roomID.
func (h *Hub) MemberCount(roomID string) int {
	r := h.acquireExisting(roomID)
	if r == nil {
		return 0
	}
	defer h.release(r, 1)

	ack := make(chan int, 1)
	r.events <- countEvent{ack: ack}
	return <-ack
}

// Shutdown closes every client connection and waits for their pumps to exit.
func (h *Hub) Shutdown(ctx context.Context) error {
	h.mu.Lock()
	h.shutdown = true
	clients := make([]*Client, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.Unlock()

	log.Printf("Closing %d websocket connections", len(clients))
	for _, c := range clients {
		c.closeConn()
	}

	done := make(chan struct{})
	go func() {
		h.pumps.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
