// Package room adapts the multiplayer backend's event stream to local
// state. The channel is fire-and-forget: outbound actions never await a
// reply, and all state changes arrive asynchronously as events.
// Messages in flight during a disconnect are lost, not retried; the
// next roster snapshot re-syncs membership.
package room

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512 * 1024

	reconnectMin = time.Second
	reconnectMax = 30 * time.Second
)

// Channel is a persistent websocket connection to the room backend.
// Reconnection is automatic with capped backoff until Close is called.
type Channel struct {
	url    string
	events chan Event
	send   chan []byte
	done   chan struct{}

	closeOnce sync.Once

	mu        sync.Mutex
	connected bool
}

// Dial starts the channel's connection loop against the given websocket
// URL. The first connection attempt happens asynchronously; the caller
// observes readiness via an EventConnected on Events.
func Dial(ctx context.Context, url string) *Channel {
	c := &Channel{
		url:    url,
		events: make(chan Event, 32),
		send:   make(chan []byte, 32),
		done:   make(chan struct{}),
	}
	go c.run(ctx)
	return c
}

// Events delivers inbound events in arrival order. The channel closes
// after Close.
func (c *Channel) Events() <-chan Event {
	return c.events
}

// Connected reports the current connection status.
func (c *Channel) Connected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.connected
}

// Close tears down the connection loop. Idempotent.
func (c *Channel) Close() {
	c.closeOnce.Do(func() {
		close(c.done)
	})
}

func (c *Channel) setConnected(v bool) {
	c.mu.Lock()
	c.connected = v
	c.mu.Unlock()
}

// run dials, pumps, and redials until Close. Each failed attempt backs
// off up to the cap; a successful connection resets the backoff.
func (c *Channel) run(ctx context.Context) {
	defer close(c.events)

	backoff := reconnectMin
	for {
		select {
		case <-c.done:
			return
		case <-ctx.Done():
			return
		default:
		}

		conn, _, err := websocket.DefaultDialer.DialContext(ctx, c.url, nil)
		if err != nil {
			c.emit(Event{Type: EventConnectError, Message: err.Error()})
			select {
			case <-time.After(backoff):
			case <-c.done:
				return
			case <-ctx.Done():
				return
			}
			backoff *= 2
			if backoff > reconnectMax {
				backoff = reconnectMax
			}
			continue
		}

		backoff = reconnectMin
		c.setConnected(true)
		c.emit(Event{Type: EventConnected})

		c.pump(conn)

		c.setConnected(false)
		c.emit(Event{Type: EventDisconnected})

		select {
		case <-c.done:
			return
		case <-ctx.Done():
			return
		default:
		}
	}
}

// pump runs the write loop in a goroutine and reads until the
// connection drops, then returns so run can redial.
func (c *Channel) pump(conn *websocket.Conn) {
	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		c.writeLoop(conn)
	}()

	conn.SetReadLimit(maxMessageSize)
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			break
		}
		var env envelope
		if err := json.Unmarshal(raw, &env); err != nil {
			continue
		}
		if ev, ok := decodeEvent(env); ok {
			c.emit(ev)
		}
	}

	conn.Close()
	<-writerDone
}

func (c *Channel) writeLoop(conn *websocket.Conn) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case msg := <-c.send:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-c.done:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		}
	}
}

// emit delivers an event, dropping it if the consumer has fallen too
// far behind. Roster snapshots are idempotent so drops self-heal.
func (c *Channel) emit(ev Event) {
	select {
	case c.events <- ev:
	default:
	}
}

// post marshals and queues an outbound envelope. Fire-and-forget: when
// the send buffer is full (e.g. while disconnected) the message is
// dropped rather than blocking the UI loop.
func (c *Channel) post(event string, data any) {
	raw, err := json.Marshal(data)
	if err != nil {
		return
	}
	msg, err := json.Marshal(envelope{Event: event, Data: raw})
	if err != nil {
		return
	}
	select {
	case c.send <- msg:
	default:
	}
}

// CreateRoom asks the backend to create a room for a quiz. The room
// code and host quiz payload arrive in a room_created event.
func (c *Channel) CreateRoom(quizID, username, avatar string) {
	c.post("create_room", createRoomPayload{QuizID: quizID, Username: username, Avatar: avatar})
}

// JoinRoom joins an existing room by its 6-character code. The quiz
// payload for joiners arrives in a quiz_data_received event.
func (c *Channel) JoinRoom(code, username, avatar string) {
	c.post("join_room", joinRoomPayload{RoomCode: code, Username: username, Avatar: avatar})
}

// StartGame requests game start. Only honored by the backend for the host.
func (c *Channel) StartGame(code string) {
	c.post("start_game", startGamePayload{RoomCode: code})
}

// UpdateScore broadcasts a score delta with streak and correctness.
func (c *Channel) UpdateScore(code, username string, delta, streak int, correct bool) {
	c.post("update_score", updateScorePayload{
		RoomCode: code, Username: username, Delta: delta, Streak: streak, Correct: correct,
	})
}

// PlayerAnswered notifies the room that this player resolved a question.
func (c *Channel) PlayerAnswered(code, username, questionID string, correct bool) {
	c.post("player_answered", playerAnsweredPayload{
		RoomCode: code, Username: username, QuestionID: questionID, Correct: correct,
	})
}
