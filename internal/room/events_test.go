package room

import (
	"encoding/json"
	"testing"
)

func TestDecodeEvent(t *testing.T) {
	tests := []struct {
		name  string
		event string
		data  string
		want  Event
		ok    bool
	}{
		{
			name:  "room created",
			event: "room_created",
			data:  `{"room_code": "ABC123", "quiz_data": {"questions": []}}`,
			want:  Event{Type: EventRoomCreated, RoomCode: "ABC123"},
			ok:    true,
		},
		{
			name:  "quiz received",
			event: "quiz_data_received",
			data:  `{"quiz_data": {}}`,
			want:  Event{Type: EventQuizReceived},
			ok:    true,
		},
		{
			name:  "player joined",
			event: "player_joined",
			data:  `{"username": "ash"}`,
			want:  Event{Type: EventPlayerJoined, PlayerName: "ash"},
			ok:    true,
		},
		{
			name:  "roster update",
			event: "update_room",
			data:  `{"players": [{"sid": "1", "username": "ash", "score": 100, "streak": 2}]}`,
			want:  Event{Type: EventRoomUpdate},
			ok:    true,
		},
		{
			name:  "game started with no data",
			event: "game_started",
			want:  Event{Type: EventGameStarted},
			ok:    true,
		},
		{
			name:  "next question",
			event: "question_next",
			data:  `{"questionIndex": 4}`,
			want:  Event{Type: EventNextQuestion, QuestionIndex: 4},
			ok:    true,
		},
		{
			name:  "error",
			event: "error",
			data:  `{"message": "room full"}`,
			want:  Event{Type: EventError, Message: "room full"},
			ok:    true,
		},
		{
			name:  "unknown tag dropped",
			event: "mystery_event",
			data:  `{}`,
			ok:    false,
		},
		{
			name:  "malformed payload dropped",
			event: "update_room",
			data:  `"not an object"`,
			ok:    false,
		},
	}

	for _, tt := range tests {
		env := envelope{Event: tt.event}
		if tt.data != "" {
			env.Data = json.RawMessage(tt.data)
		}
		got, ok := decodeEvent(env)
		if ok != tt.ok {
			t.Errorf("%s: ok = %v, want %v", tt.name, ok, tt.ok)
			continue
		}
		if !ok {
			continue
		}
		if got.Type != tt.want.Type {
			t.Errorf("%s: type = %q, want %q", tt.name, got.Type, tt.want.Type)
		}
		if got.RoomCode != tt.want.RoomCode {
			t.Errorf("%s: roomCode = %q, want %q", tt.name, got.RoomCode, tt.want.RoomCode)
		}
		if got.PlayerName != tt.want.PlayerName {
			t.Errorf("%s: playerName = %q, want %q", tt.name, got.PlayerName, tt.want.PlayerName)
		}
		if got.QuestionIndex != tt.want.QuestionIndex {
			t.Errorf("%s: questionIndex = %d, want %d", tt.name, got.QuestionIndex, tt.want.QuestionIndex)
		}
		if got.Message != tt.want.Message {
			t.Errorf("%s: message = %q, want %q", tt.name, got.Message, tt.want.Message)
		}
	}
}

func TestDecodeEventRoster(t *testing.T) {
	env := envelope{
		Event: "update_room",
		Data:  json.RawMessage(`{"players": [{"sid": "1", "username": "ash", "avatar": "🦊", "score": 100, "streak": 2}]}`),
	}
	got, ok := decodeEvent(env)
	if !ok {
		t.Fatal("decode failed")
	}
	if len(got.Roster) != 1 {
		t.Fatalf("roster = %d players, want 1", len(got.Roster))
	}
	p := got.Roster[0]
	if p.Name != "ash" || p.Score != 100 || p.Streak != 2 || p.Avatar != "🦊" {
		t.Errorf("player = %+v", p)
	}
}

func TestDecodeEventQuizDataStaysRaw(t *testing.T) {
	quizJSON := `{"quiz_id": "qz", "questions": []}`
	env := envelope{
		Event: "room_created",
		Data:  json.RawMessage(`{"room_code": "XYZ789", "quiz_data": ` + quizJSON + `}`),
	}
	got, ok := decodeEvent(env)
	if !ok {
		t.Fatal("decode failed")
	}
	if string(got.QuizData) != quizJSON {
		t.Errorf("quizData = %s, want untouched %s", got.QuizData, quizJSON)
	}
}
