package session

// Event is the closed set of inbound session events. Each carries the id of
// the connection it arrived on; Dispatch switches over the concrete types, so
// the whole protocol is reviewable in one place.
type Event interface {
	isEvent()
}

type Join struct {
	ConnID   string
	RoomID   string
	Username string
}

type CodeUpdate struct {
	ConnID string
	RoomID string
	Code   string
}

type LanguageUpdate struct {
	ConnID   string
	RoomID   string
	Language string
}

type TypingStart struct {
	ConnID   string
	RoomID   string
	Username string
}

type TypingStop struct {
	ConnID   string
	RoomID   string
	Username string
}

type Leave struct {
	ConnID string
	RoomID string
}

// Disconnect is synthesized by the transport when a connection drops. The
// leave sequence runs once per room the connection was subscribed to.
type Disconnect struct {
	ConnID string
}

func (Join) isEvent()           {}
func (CodeUpdate) isEvent()     {}
func (LanguageUpdate) isEvent() {}
func (TypingStart) isEvent()    {}
func (TypingStop) isEvent()     {}
func (Leave) isEvent()          {}
func (Disconnect) isEvent()     {}
