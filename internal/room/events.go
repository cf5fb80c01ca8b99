package room

import "encoding/json"

// EventType names a room channel event. Wire names match the backend's
// socket protocol; connection lifecycle events are synthesized locally.
type EventType string

const (
	// Synthesized by the channel itself.
	EventConnected    EventType = "connected"
	EventDisconnected EventType = "disconnected"
	EventConnectError EventType = "connect_error"

	// Server-pushed.
	EventRoomCreated  EventType = "room_created"
	EventQuizReceived EventType = "quiz_data_received"
	EventPlayerJoined EventType = "player_joined"
	EventRoomUpdate   EventType = "update_room"
	EventGameStarted  EventType = "game_started"
	EventNextQuestion EventType = "question_next"
	EventError        EventType = "error"
)

// Player is one roster entry.
type Player struct {
	ID     string `json:"sid"`
	Name   string `json:"username"`
	Avatar string `json:"avatar"`
	Score  int    `json:"score"`
	Streak int    `json:"streak"`
}

// Event is one inbound room channel event, decoded into the fields the
// session consumes. QuizData stays raw so the quiz package validates it.
type Event struct {
	Type          EventType
	RoomCode      string
	QuizData      json.RawMessage
	PlayerName    string
	Roster        []Player
	QuestionIndex int
	Message       string
}

// envelope is the wire format both directions: a tag plus a payload.
type envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

type roomCreatedPayload struct {
	RoomCode string          `json:"room_code"`
	QuizData json.RawMessage `json:"quiz_data"`
}

type quizReceivedPayload struct {
	QuizData json.RawMessage `json:"quiz_data"`
}

type playerJoinedPayload struct {
	Username string `json:"username"`
}

type rosterPayload struct {
	Players []Player `json:"players"`
}

type nextQuestionPayload struct {
	QuestionIndex int `json:"questionIndex"`
}

type errorPayload struct {
	Message string `json:"message"`
}

// decodeEvent maps a wire envelope to a typed Event. Unknown event tags
// return ok=false and are dropped.
func decodeEvent(env envelope) (Event, bool) {
	switch EventType(env.Event) {
	case EventRoomCreated:
		var p roomCreatedPayload
		if err := json.Unmarshal(env.Data, &p); err != nil {
			return Event{}, false
		}
		return Event{Type: EventRoomCreated, RoomCode: p.RoomCode, QuizData: p.QuizData}, true

	case EventQuizReceived:
		var p quizReceivedPayload
		if err := json.Unmarshal(env.Data, &p); err != nil {
			return Event{}, false
		}
		return Event{Type: EventQuizReceived, QuizData: p.QuizData}, true

	case EventPlayerJoined:
		var p playerJoinedPayload
		if err := json.Unmarshal(env.Data, &p); err != nil {
			return Event{}, false
		}
		return Event{Type: EventPlayerJoined, PlayerName: p.Username}, true

	case EventRoomUpdate:
		var p rosterPayload
		if err := json.Unmarshal(env.Data, &p); err != nil {
			return Event{}, false
		}
		return Event{Type: EventRoomUpdate, Roster: p.Players}, true

	case EventGameStarted:
		return Event{Type: EventGameStarted}, true

	case EventNextQuestion:
		var p nextQuestionPayload
		if err := json.Unmarshal(env.Data, &p); err != nil {
			return Event{}, false
		}
		return Event{Type: EventNextQuestion, QuestionIndex: p.QuestionIndex}, true

	case EventError:
		var p errorPayload
		if err := json.Unmarshal(env.Data, &p); err != nil {
			return Event{}, false
		}
		return Event{Type: EventError, Message: p.Message}, true
	}

	return Event{}, false
}

// Outbound payloads.

type createRoomPayload struct {
	QuizID   string `json:"quiz_id"`
	Username string `json:"username"`
	Avatar   string `json:"avatar"`
}

type joinRoomPayload struct {
	RoomCode string `json:"room_code"`
	Username string `json:"username"`
	Avatar   string `json:"avatar"`
}

type startGamePayload struct {
	RoomCode string `json:"room_code"`
}

type updateScorePayload struct {
	RoomCode string `json:"room_code"`
	Username string `json:"username"`
	Delta    int    `json:"delta"`
	Streak   int    `json:"streak"`
	Correct  bool   `json:"isCorrect"`
}

type playerAnsweredPayload struct {
	RoomCode   string `json:"room_code"`
	Username   string `json:"username"`
	QuestionID string `json:"questionId"`
	Correct    bool   `json:"isCorrect"`
}
