package events

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gokatarajesh/trivia-api/internal/trivia"
	ws "github.com/gokatarajesh/trivia-api/pkg/http/ws"
)

func TestEncodeEvent(t *testing.T) {
	at := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	data, err := encodeEvent(ws.TypeQuestionCreated, trivia.Question{ID: 12, Category: 3, Difficulty: 4}, at)
	require.NoError(t, err)

	var evt ws.QuestionEventPayload
	require.NoError(t, json.Unmarshal(data, &evt))
	assert.Equal(t, ws.QuestionEventPayload{
		Action:     ws.TypeQuestionCreated,
		QuestionID: 12,
		Category:   3,
		Difficulty: 4,
		OccurredAt: at,
	}, evt)
}

func TestPublisherReportsRedisFailure(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()

	pub := NewPublisher(client, "")
	err := pub.QuestionDeleted(context.Background(), trivia.Question{ID: 1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), ws.TypeQuestionDeleted)
}

func dialFeed(t *testing.T, hub *ws.Hub) *websocket.Conn {
	t.Helper()
	logger := zerolog.New(io.Discard)
	handler := NewFeedHandler(hub, ws.NewUpgrader([]string{"*"}), logger)
	srv := httptest.NewServer(http.HandlerFunc(handler.HandleWebSocket))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) ws.Message {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var msg ws.Message
	require.NoError(t, conn.ReadJSON(&msg))
	return msg
}

func TestFeedPingPong(t *testing.T) {
	hub := ws.NewHub(zerolog.Nop())
	conn := dialFeed(t, hub)

	require.NoError(t, conn.WriteJSON(ws.Message{Type: ws.TypePing, RequestID: "r1"}))
	msg := readMessage(t, conn)
	assert.Equal(t, ws.TypePong, msg.Type)
	assert.Equal(t, "r1", msg.RequestID)

	require.NoError(t, conn.WriteJSON(ws.Message{Type: "subscribe"}))
	msg = readMessage(t, conn)
	assert.Equal(t, ws.TypeError, msg.Type)
}

func TestBroadcasterForwardsToFeed(t *testing.T) {
	hub := ws.NewHub(zerolog.Nop())
	conn := dialFeed(t, hub)

	// A pong proves the connection is registered with the hub.
	require.NoError(t, conn.WriteJSON(ws.Message{Type: ws.TypePing}))
	readMessage(t, conn)
	require.Equal(t, 1, hub.Count())

	b := NewBroadcaster(nil, hub, "", zerolog.Nop())

	b.forward(`not json`)
	b.forward(`{"action":"question_updated","question_id":1}`)

	data, err := encodeEvent(ws.TypeQuestionDeleted, trivia.Question{ID: 7, Category: 2, Difficulty: 1}, time.Now())
	require.NoError(t, err)
	b.forward(string(data))

	msg := readMessage(t, conn)
	assert.Equal(t, ws.TypeQuestionDeleted, msg.Type)

	var evt ws.QuestionEventPayload
	require.NoError(t, json.Unmarshal(msg.Payload, &evt))
	assert.Equal(t, 7, evt.QuestionID)
	assert.Equal(t, 2, evt.Category)
}

func TestBroadcasterRunWithoutRedis(t *testing.T) {
	b := NewBroadcaster(nil, ws.NewHub(zerolog.Nop()), "", zerolog.Nop())
	assert.NoError(t, b.Run(context.Background()))
}
