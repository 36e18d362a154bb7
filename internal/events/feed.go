package events

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/trivia-api/internal/metrics"
	httperrors "github.com/gokatarajesh/trivia-api/pkg/http/errors"
	ws "github.com/gokatarajesh/trivia-api/pkg/http/ws"
)

// FeedHandler serves GET /ws/questions.
type FeedHandler struct {
	hub      *ws.Hub
	upgrader *websocket.Upgrader
	logger   zerolog.Logger
}

func NewFeedHandler(hub *ws.Hub, upgrader *websocket.Upgrader, logger zerolog.Logger) *FeedHandler {
	return &FeedHandler{
		hub:      hub,
		upgrader: upgrader,
		logger:   logger.With().Str("component", "question_feed").Logger(),
	}
}

// HandleWebSocket upgrades the request and keeps the client subscribed until it disconnects.
func (h *FeedHandler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httperrors.RespondMethodNotAllowed(w)
		return
	}

	raw, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}

	id := uuid.New()
	conn := ws.NewConnection(raw, h.logger.With().Str("conn_id", id.String()).Logger())
	h.hub.RegisterConnection(id, conn)
	metrics.FeedConnected(1)
	defer func() {
		h.hub.UnregisterConnection(id)
		metrics.FeedConnected(-1)
	}()

	go conn.WritePump()
	conn.ReadPump(func(msg ws.Message) error {
		return h.handleMessage(conn, msg)
	})
}

func (h *FeedHandler) handleMessage(conn *ws.Connection, msg ws.Message) error {
	switch msg.Type {
	case ws.TypePing:
		return conn.Send(ws.Message{Type: ws.TypePong, RequestID: msg.RequestID})
	default:
		reply, err := ws.NewMessage(ws.TypeError, ws.ErrorPayload{
			Code:    "unknown_message_type",
			Message: "unsupported message type " + msg.Type,
		})
		if err != nil {
			return err
		}
		reply.RequestID = msg.RequestID
		return conn.Send(reply)
	}
}
