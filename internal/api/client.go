// Package api is the HTTP client for the QuizArena platform backend.
// Payload shapes mirror what the backend serves; only the consumed
// fields are modeled.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/anshgoel/quizarena/internal/quiz"
	"github.com/anshgoel/quizarena/internal/session"
)

const defaultTimeout = 15 * time.Second

// Client talks to the platform backend. Safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a Client for the given base URL (e.g.
// "https://api.quizarena.app/api"). A zero timeout gets the default.
func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// FetchQuiz retrieves and validates a playground quiz payload.
// A 404 or malformed payload surfaces as quiz.ErrNotFound.
func (c *Client) FetchQuiz(ctx context.Context, quizID string) (*quiz.Quiz, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/playground/"+quizID, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch quiz: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, quiz.ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch quiz: unexpected status %d", resp.StatusCode)
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, fmt.Errorf("read quiz payload: %w", err)
	}
	return quiz.Parse(raw)
}

// StartSessionInput opens an analytics session at quiz mount.
type StartSessionInput struct {
	UserID      string `json:"user_id"`
	QuizID      string `json:"quiz_id"`
	Difficulty  string `json:"difficulty"`
	Multiplayer bool   `json:"is_multiplayer"`
	RoomCode    string `json:"room_code,omitempty"`
}

// StartSession returns the backend-assigned analytics session id.
func (c *Client) StartSession(ctx context.Context, in StartSessionInput) (string, error) {
	var out struct {
		SessionID string `json:"session_id"`
	}
	if err := c.post(ctx, "/analytics/start-session", in, &out); err != nil {
		return "", err
	}
	if out.SessionID == "" {
		return "", fmt.Errorf("start session: empty session_id")
	}
	return out.SessionID, nil
}

// SubmitAnswerInput is one answer submission.
type SubmitAnswerInput struct {
	UserID        string `json:"user_id"`
	QuizID        string `json:"quiz_id"`
	QuestionIndex int    `json:"question_index"`
	Answer        string `json:"answer"`
}

// SubmitAnswer sends the chosen label and returns the backend verdict.
// Absent points fields come back as -1 so the local estimate can stand
// in for display.
func (c *Client) SubmitAnswer(ctx context.Context, in SubmitAnswerInput) (*session.Result, error) {
	var out struct {
		Correct       bool   `json:"correct"`
		CorrectAnswer string `json:"correct_answer"`
		Explanation   string `json:"explanation"`
		PointsAwarded *int   `json:"points_awarded"`
		TotalPoints   *int   `json:"total_points"`
	}
	if err := c.post(ctx, "/submit-answer", in, &out); err != nil {
		return nil, err
	}

	res := &session.Result{
		Correct:       out.Correct,
		CorrectLabel:  out.CorrectAnswer,
		Explanation:   out.Explanation,
		PointsAwarded: -1,
		TotalPoints:   -1,
		Verified:      true,
	}
	if out.PointsAwarded != nil {
		res.PointsAwarded = *out.PointsAwarded
	}
	if out.TotalPoints != nil {
		res.TotalPoints = *out.TotalPoints
	}
	return res, nil
}

// QuestionTiming is one per-question entry of the finalize payload.
type QuestionTiming struct {
	QuestionIndex int  `json:"question_index"`
	TimeTaken     int  `json:"time_taken"`
	Correct       bool `json:"correct"`
}

// EndSessionInput closes an analytics session. FinalRank stays nil in
// solo mode and when the multiplayer rank is unknown.
type EndSessionInput struct {
	SessionID       string           `json:"session_id"`
	Score           int              `json:"score"`
	TotalQuestions  int              `json:"total_questions"`
	QuestionTimings []QuestionTiming `json:"question_timings"`
	PowerupsUsed    []string         `json:"powerups_used"`
	FinalRank       *int             `json:"final_rank"`
}

// EndSession finalizes the analytics session. The response body carries
// nothing the client consumes.
func (c *Client) EndSession(ctx context.Context, in EndSessionInput) error {
	return c.post(ctx, "/analytics/end-session", in, nil)
}

// post sends a JSON body and optionally decodes a JSON response into out.
func (c *Client) post(ctx context.Context, path string, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%s: unexpected status %d", path, resp.StatusCode)
	}

	if out == nil {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 1<<20))
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s: decode response: %w", path, err)
	}
	return nil
}
