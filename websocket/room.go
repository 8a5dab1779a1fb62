package websocket

import "log"

// roomEvent is one unit of work for a room actor.
type roomEvent interface {
	apply(r *room)
}

// joinEvent adds a client; ack reports whether it was newly added.
type joinEvent struct {
	client *Client
	ack    chan bool
}

// leaveEvent removes a client; ack reports whether it had been a member.
type leaveEvent struct {
	client *Client
	ack    chan bool
}

// deliverEvent fans an encoded frame out to the current members.
type deliverEvent struct {
	data []byte
	ack  chan int
}

// disconnectEvent drops a client that is going away; same result as leaveEvent.
type disconnectEvent struct {
	client *Client
	ack    chan bool
}

// countEvent reports the member count.
type countEvent struct {
	ack chan int
}

// room owns the member set of one room id. Only its run goroutine touches members.
type room struct {
	id      string
	events  chan roomEvent
	members map[*Client]struct{}

	// refs counts members plus in-flight operations; guarded by Hub.mu.
	refs int
}

func newRoom(id string) *room {
	return &room{
		id:      id,
		events:  make(chan roomEvent, 64),
		members: make(map[*Client]struct{}),
	}
}

// run processes events in arrival order until the hub closes the channel.
func (r *room) run() {
	for ev := range r.events {
		ev.apply(r)
	}
}

func (e joinEvent) apply(r *room) {
	if _, ok := r.members[e.client]; ok {
		e.ack <- false
		return
	}
	r.members[e.client] = struct{}{}
	log.Printf("Client %s joined room %s", e.client.id, r.id)
	e.ack <- true
}

func (e leaveEvent) apply(r *room) {
	e.ack <- r.remove(e.client)
}

func (e disconnectEvent) apply(r *room) {
	e.ack <- r.remove(e.client)
}

func (e deliverEvent) apply(r *room) {
	delivered := 0
	for client := range r.members {
		select {
		case client.send <- e.data:
			delivered++
		default:
			log.Printf("Dropping message for client %s in room %s: send queue full", client.id, r.id)
		}
	}
	e.ack <- delivered
}

func (e countEvent) apply(r *room) {
	e.ack <- len(r.members)
}

func (r *room) remove(c *Client) bool {
	if _, ok := r.members[c]; !ok {
		return false
	}
	delete(r.members, c)
	log.Printf("Client %s left room %s", c.id, r.id)
	return true
}
