package session

import (
	"slices"
	"sync"

	"go.uber.org/zap"

	"codesync/internal/models"
)

// Messages surfaced to a requester whose join did not proceed.
const (
	msgUsernameTaken = "This username is already taken."
	msgJoinFailed    = "An error occurred while joining."
)

// Coordinator is the room session core: it owns the connection registry and
// room directory, runs the join/leave lifecycle, serializes document updates,
// and drives every send and broadcast against the transport.
//
// All event handling is serialized under one mutex. A handler always runs to
// completion before the next event is processed, so membership stays
// consistent with the transport's group state and broadcasts within a room
// are observed in the order their events were accepted.
type Coordinator struct {
	mu         sync.Mutex
	transport  Transport
	registry   *Registry
	directory  *Directory
	membership *Membership
	log        *zap.Logger
}

func NewCoordinator(transport Transport, log *zap.Logger) *Coordinator {
	registry := NewRegistry()
	return &Coordinator{
		transport:  transport,
		registry:   registry,
		directory:  NewDirectory(),
		membership: NewMembership(transport, registry),
		log:        log,
	}
}

// Dispatch processes one inbound event to completion.
func (c *Coordinator) Dispatch(ev Event) {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch e := ev.(type) {
	case Join:
		c.handleJoin(e)
	case CodeUpdate:
		c.directory.SetCode(e.RoomID, e.Code)
		c.transport.Broadcast(e.RoomID, models.EventCodeSync, models.CodeSync{Code: e.Code}, e.ConnID)
	case LanguageUpdate:
		c.directory.SetLanguage(e.RoomID, e.Language)
		c.transport.Broadcast(e.RoomID, models.EventLanguageSync, models.LanguageSync{LanguageUsed: e.Language}, e.ConnID)
	case TypingStart:
		c.transport.Broadcast(e.RoomID, models.EventUserTypingStart, models.Presence{Username: e.Username}, e.ConnID)
	case TypingStop:
		c.transport.Broadcast(e.RoomID, models.EventUserTypingStop, models.Presence{Username: e.Username}, e.ConnID)
	case Leave:
		c.transport.Unsubscribe(e.ConnID, e.RoomID)
		entry, ok := c.registry.Lookup(e.ConnID)
		if !ok {
			return
		}
		c.registry.Unregister(e.ConnID)
		c.notifyDeparture(e.ConnID, e.RoomID, entry.Username)
	case Disconnect:
		// The transport deregisters group membership itself after this event
		// is handled, so only the leave bookkeeping runs here, once per room
		// the connection was grouped into. A connection's private channel is
		// named by its own id and is skipped.
		entry, ok := c.registry.Lookup(e.ConnID)
		if !ok {
			return
		}
		c.registry.Unregister(e.ConnID)
		for _, group := range c.transport.ConnGroups(e.ConnID) {
			if group == e.ConnID {
				continue
			}
			c.notifyDeparture(e.ConnID, group, entry.Username)
		}
	}
}

// Stats reports registered connections and tracked room documents.
func (c *Coordinator) Stats() (connections, documents int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.registry.Len(), c.directory.Len()
}

func (c *Coordinator) handleJoin(e Join) {
	users, err := c.membership.ListUsers(e.RoomID)
	if err != nil {
		c.log.Error("join failed", zap.String("roomId", e.RoomID), zap.Error(err))
		c.transport.Send(e.ConnID, models.EventJoinError, models.JoinError{Message: msgJoinFailed})
		return
	}
	if slices.Contains(users, e.Username) {
		c.transport.Send(e.ConnID, models.EventJoinError, models.JoinError{Message: msgUsernameTaken})
		return
	}

	c.registry.Register(e.ConnID, e.Username, e.RoomID)
	c.transport.Subscribe(e.ConnID, e.RoomID)

	// Catch a late joiner up with the room's stored state. Both sends are
	// conditional: an unset field is never sent as an empty placeholder.
	if doc, ok := c.directory.Get(e.RoomID); ok {
		if doc.Language != "" {
			c.transport.Send(e.ConnID, models.EventLanguageSync, models.LanguageSync{LanguageUsed: doc.Language})
		}
		if doc.Code != "" {
			c.transport.Send(e.ConnID, models.EventCodeSync, models.CodeSync{Code: doc.Code})
		}
	}

	users, err = c.membership.ListUsers(e.RoomID)
	if err != nil {
		c.log.Error("membership recompute failed after join", zap.String("roomId", e.RoomID), zap.Error(err))
		c.transport.Send(e.ConnID, models.EventJoinError, models.JoinError{Message: msgJoinFailed})
		return
	}
	c.transport.Broadcast(e.RoomID, models.EventClientList, models.ClientList{Users: users})
	c.transport.Broadcast(e.RoomID, models.EventMemberJoined, models.Presence{Username: e.Username}, e.ConnID)
}

// notifyDeparture runs the leave bookkeeping for one (connection, room)
// pair: presence notification, membership rebroadcast, and room reclamation
// when the last member is gone. The registry entry is already removed, so
// the recomputed list never includes the departing user even while their
// connection is still subscribed to the group.
func (c *Coordinator) notifyDeparture(connID, roomID, username string) {
	c.transport.Broadcast(roomID, models.EventMemberLeft, models.Presence{Username: username}, connID)

	users, err := c.membership.ListUsers(roomID)
	if err != nil {
		c.log.Error("membership recompute failed after leave", zap.String("roomId", roomID), zap.Error(err))
		return
	}
	c.transport.Broadcast(roomID, models.EventClientList, models.ClientList{Users: users})

	if len(users) == 0 {
		c.directory.Delete(roomID)
		c.log.Info("room deleted as it is now empty", zap.String("roomId", roomID))
	}
}
