package models

// Wire event names, matching the client protocol.
const (
	EventJoin            = "join"
	EventJoinError       = "join-error"
	EventCodeSync        = "code-sync"
	EventLanguageSync    = "language-sync"
	EventClientList      = "client-list-update"
	EventMemberJoined    = "member-joined"
	EventMemberLeft      = "member-left"
	EventCodeUpdate      = "code-update"
	EventLanguageUpdate  = "language-update"
	EventTypingStart     = "typing-start"
	EventTypingStop      = "typing-stop"
	EventUserTypingStart = "user-typing-start"
	EventUserTypingStop  = "user-typing-stop"
	EventLeave           = "leave"
)

// Frame is the envelope for every websocket event in both directions.
type Frame struct {
	Event string `json:"event"`
	Data  any    `json:"data,omitempty"`
}

/*** Session event payloads ***/

type JoinRequest struct {
	RoomID   string `json:"roomId"`
	Username string `json:"username"`
}

type JoinError struct {
	Message string `json:"message"`
}

type CodeSync struct {
	Code string `json:"code"`
}

type LanguageSync struct {
	LanguageUsed string `json:"languageUsed"`
}

// ClientList is the authoritative membership snapshot for a room.
type ClientList struct {
	Users []string `json:"userslist"`
}

type Presence struct {
	Username string `json:"username"`
}

type CodeUpdate struct {
	RoomID string `json:"roomId"`
	Code   string `json:"code"`
}

type LanguageUpdate struct {
	RoomID       string `json:"roomId"`
	LanguageUsed string `json:"languageUsed"`
}

type TypingEvent struct {
	RoomID   string `json:"roomId"`
	Username string `json:"username"`
}

type LeaveRequest struct {
	RoomID string `json:"roomId"`
}

/*** HTTP API payloads ***/

type ExecuteRequest struct {
	Language string `json:"language"`
	Code     string `json:"code"`
}

type AskAIRequest struct {
	Code   string `json:"code"`
	Prompt string `json:"prompt"`
}

type AskAIResponse struct {
	Response string `json:"response"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
