package scoring

import "testing"

func TestPointsFor(t *testing.T) {
	tests := []struct {
		name     string
		correct  bool
		timeLeft int
		combo    int
		want     int
	}{
		{"full time combo 1", true, 30, 1, 160},
		{"no time combo 1", true, 0, 1, 110},
		{"half time combo 1", true, 15, 1, 135},
		{"full time combo 3", true, 30, 3, 180},
		{"incorrect scores zero", false, 30, 5, 0},
		{"negative time clamps to zero", true, -4, 1, 110},
		{"time above ceiling clamps", true, 99, 1, 160},
		{"combo below 1 clamps", true, 30, 0, 160},
	}

	for _, tt := range tests {
		got := PointsFor(tt.correct, tt.timeLeft, tt.combo)
		if got != tt.want {
			t.Errorf("%s: PointsFor(%v, %d, %d) = %d, want %d",
				tt.name, tt.correct, tt.timeLeft, tt.combo, got, tt.want)
		}
	}
}

func TestRecordCorrectAccumulates(t *testing.T) {
	e := NewEngine(false)

	out := e.RecordCorrect(30, -1)
	if out.Points != 160 {
		t.Errorf("first answer points = %d, want 160", out.Points)
	}
	if e.Score != 1 || e.Streak != 1 || e.Combo != 2 {
		t.Errorf("after first: score=%d streak=%d combo=%d, want 1 1 2", e.Score, e.Streak, e.Combo)
	}

	// Second correct answer uses the raised combo.
	out = e.RecordCorrect(30, -1)
	if out.Points != 170 {
		t.Errorf("second answer points = %d, want 170", out.Points)
	}
	if e.Points != 330 {
		t.Errorf("total points = %d, want 330", e.Points)
	}
}

func TestPerfectShortQuiz(t *testing.T) {
	// Five instant correct answers: 160+170+180+190+200.
	e := NewEngine(false)
	for i := 0; i < 5; i++ {
		e.RecordCorrect(30, -1)
	}
	if e.Points != 900 {
		t.Errorf("points = %d, want 900", e.Points)
	}
	if e.Streak != 5 || e.Combo != 6 {
		t.Errorf("streak=%d combo=%d, want 5 6", e.Streak, e.Combo)
	}
}

func TestRecordCorrectBackendOverride(t *testing.T) {
	e := NewEngine(false)
	out := e.RecordCorrect(30, 500)
	if out.Points != 500 {
		t.Errorf("points = %d, want backend value 500", out.Points)
	}
	if e.Points != 500 {
		t.Errorf("total = %d, want 500", e.Points)
	}
}

func TestRecordMissResetsStreakAndCombo(t *testing.T) {
	e := NewEngine(false)
	e.RecordCorrect(30, -1)
	e.RecordCorrect(30, -1)

	out := e.RecordMiss()
	if e.Streak != 0 || e.Combo != 1 {
		t.Errorf("after miss: streak=%d combo=%d, want 0 1", e.Streak, e.Combo)
	}
	if out.LifeLost {
		t.Error("solo miss should not lose a life")
	}
	if e.Score != 2 {
		t.Errorf("score = %d, want 2 (misses don't subtract)", e.Score)
	}
}

func TestMultiplayerLives(t *testing.T) {
	e := NewEngine(true)
	if e.Lives != StartingLives {
		t.Fatalf("lives = %d, want %d", e.Lives, StartingLives)
	}

	for i, wantLeft := range []int{2, 1, 0} {
		out := e.RecordMiss()
		if !out.LifeLost {
			t.Errorf("miss %d: expected LifeLost", i+1)
		}
		if out.LivesRemaining != wantLeft {
			t.Errorf("miss %d: lives remaining = %d, want %d", i+1, out.LivesRemaining, wantLeft)
		}
	}
	if !e.Exhausted() {
		t.Error("expected Exhausted after three misses")
	}
}

func TestSoloNeverExhausts(t *testing.T) {
	e := NewEngine(false)
	for i := 0; i < 5; i++ {
		e.RecordMiss()
	}
	if e.Exhausted() {
		t.Error("solo engine must never exhaust")
	}
}

func TestShieldAbsorbsOneMiss(t *testing.T) {
	e := NewEngine(true)

	if !e.ArmShield() {
		t.Fatal("first ArmShield should succeed")
	}
	if e.ArmShield() {
		t.Error("second ArmShield should fail while armed")
	}

	out := e.RecordMiss()
	if !out.ShieldConsumed {
		t.Error("expected shield to absorb the miss")
	}
	if out.LifeLost || e.Lives != StartingLives {
		t.Errorf("shielded miss lost a life: lives=%d", e.Lives)
	}
	if e.Streak != 0 || e.Combo != 1 {
		t.Error("shield must not preserve streak or combo")
	}

	// Shield is spent; the next miss costs a life.
	out = e.RecordMiss()
	if !out.LifeLost || e.Lives != StartingLives-1 {
		t.Errorf("post-shield miss: lifeLost=%v lives=%d", out.LifeLost, e.Lives)
	}
}
