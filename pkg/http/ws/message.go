package ws

import (
	"encoding/json"
	"time"
)

// MessageType constants for the question feed protocol.
const (
	// Client -> Server
	TypePing = "ping"

	// Server -> Client
	TypeQuestionCreated = "question_created"
	TypeQuestionDeleted = "question_deleted"
	TypePong            = "pong"
	TypeError           = "error"
)

// Message wraps all WebSocket payloads with type and optional request ID.
type Message struct {
	Type      string          `json:"type"`
	Payload   json.RawMessage `json:"payload,omitempty"`
	RequestID string          `json:"request_id,omitempty"`
}

// QuestionEventPayload describes a catalog change. Action is one of the
// question_* message types.
type QuestionEventPayload struct {
	Action     string    `json:"action"`
	QuestionID int       `json:"question_id"`
	Category   int       `json:"category"`
	Difficulty int       `json:"difficulty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// ErrorPayload is sent when a client message cannot be handled.
type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// NewMessage marshals payload into a typed message.
func NewMessage(msgType string, payload interface{}) (Message, error) {
	if payload == nil {
		return Message{Type: msgType}, nil
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return Message{}, err
	}
	return Message{Type: msgType, Payload: raw}, nil
}
