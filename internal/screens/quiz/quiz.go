// Package quiz hosts the quiz session controller screen: it owns the
// session state machine and coordinates the countdown, power-ups,
// answer submission, room broadcasts, and session finalization.
package quiz

import (
	"context"
	"math/rand"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/anshgoel/quizarena/internal/api"
	"github.com/anshgoel/quizarena/internal/config"
	"github.com/anshgoel/quizarena/internal/powerup"
	quizdata "github.com/anshgoel/quizarena/internal/quiz"
	"github.com/anshgoel/quizarena/internal/recorder"
	"github.com/anshgoel/quizarena/internal/room"
	"github.com/anshgoel/quizarena/internal/router"
	"github.com/anshgoel/quizarena/internal/screen"
	"github.com/anshgoel/quizarena/internal/scoring"
	"github.com/anshgoel/quizarena/internal/screens/summary"
	"github.com/anshgoel/quizarena/internal/session"
	"github.com/anshgoel/quizarena/internal/store"
	"github.com/anshgoel/quizarena/internal/ui/components"
	"github.com/anshgoel/quizarena/internal/ui/layout"
)

// Deps are the shared dependencies every quiz session needs.
type Deps struct {
	Config config.Config
	API    *api.Client
	Store  *store.Store
}

// QuizScreen implements screen.Screen for an active quiz session.
type QuizScreen struct {
	deps Deps

	quizID string // solo: fetched on Init
	state  *session.State
	rec    *recorder.Recorder
	opts   components.OptionList

	// Multiplayer only.
	channel   *room.Channel
	roomState *room.State

	loading     bool
	errMsg      string
	quitConfirm bool
	toast       string // last room error, shown one frame at a time
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)
var _ screen.StatsProvider = (*QuizScreen)(nil)

// NewSolo creates a solo session screen that fetches the quiz on Init.
func NewSolo(deps Deps, quizID string) *QuizScreen {
	return &QuizScreen{
		deps:    deps,
		quizID:  quizID,
		loading: true,
	}
}

// NewMultiplayer creates a session screen for a started room game. The
// quiz payload already arrived over the channel; the lobby hands over
// the live channel and room state.
func NewMultiplayer(deps Deps, q *quizdata.Quiz, ch *room.Channel, rs *room.State) *QuizScreen {
	s := &QuizScreen{
		deps:      deps,
		quizID:    q.ID,
		channel:   ch,
		roomState: rs,
	}
	s.mount(q, true)
	return s
}

// mount builds the session state machine around a validated quiz.
func (s *QuizScreen) mount(q *quizdata.Quiz, multiplayer bool) {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	engine := scoring.NewEngine(multiplayer)
	bank := powerup.NewBank(rng)
	s.state = session.NewState(q, engine, bank)

	var history recorder.HistoryWriter
	if s.deps.Store != nil {
		history = s.deps.Store
	}
	s.rec = recorder.New("", s.deps.API, history)

	s.opts = components.NewOptionList(q.Questions[0].Prompt, s.visibleOptions())
	s.loading = false
}

func (s *QuizScreen) Init() tea.Cmd {
	if s.state == nil {
		return s.fetchQuiz()
	}
	cmds := []tea.Cmd{s.startSession(), tickCmd(s.state.Index)}
	if s.channel != nil {
		cmds = append(cmds, listenRoom(s.channel))
	}
	return tea.Batch(cmds...)
}

func (s *QuizScreen) Title() string {
	if s.roomState != nil {
		return "Room " + s.roomState.Code
	}
	return "Solo Quiz"
}

// HeaderStats feeds the live points and streak into the header bar.
func (s *QuizScreen) HeaderStats() (int, int) {
	if s.state == nil {
		return 0, 0
	}
	return s.state.Engine.Points, s.state.Engine.Streak
}

// HandlesEsc claims the esc key so the app-level back navigation does
// not bypass the quit confirmation.
func (s *QuizScreen) HandlesEsc() bool {
	return true
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	if s.quitConfirm {
		return []layout.KeyHint{
			{Key: "Y", Description: "Leave quiz"},
			{Key: "N", Description: "Keep playing"},
		}
	}
	if s.state == nil {
		return nil
	}
	switch s.state.Phase {
	case session.PhaseResolved:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Continue"},
		}
	case session.PhaseActive:
		hints := []layout.KeyHint{
			{Key: "↑↓", Description: "Select"},
			{Key: "Enter", Description: "Submit"},
			{Key: "F", Description: "50:50"},
			{Key: "T", Description: "+10s"},
		}
		if s.state.Engine.Multiplayer() {
			hints = append(hints, layout.KeyHint{Key: "S", Description: "Shield"})
		}
		return append(hints, layout.KeyHint{Key: "Esc", Description: "Quit"})
	}
	return nil
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case quizLoadedMsg:
		return s.handleQuizLoaded(msg)

	case sessionStartedMsg:
		if msg.Err == nil && s.rec != nil {
			s.rec.SetSessionID(msg.SessionID)
		}
		return s, nil

	case timerTickMsg:
		return s.handleTick(msg)

	case submitResultMsg:
		return s.handleSubmitResult(msg)

	case roomEventMsg:
		return s.handleRoomEvent(msg)

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	return s, nil
}

func (s *QuizScreen) handleQuizLoaded(msg quizLoadedMsg) (screen.Screen, tea.Cmd) {
	if msg.Err != nil {
		s.loading = false
		s.errMsg = msg.Err.Error()
		return s, nil
	}
	s.mount(msg.Quiz, false)
	return s, tea.Batch(s.startSession(), tickCmd(s.state.Index))
}

func (s *QuizScreen) handleTick(msg timerTickMsg) (screen.Screen, tea.Cmd) {
	// A tick armed for another question or phase is stale; dropping it
	// keeps a lingering timer from draining the next question's clock.
	if s.state == nil || msg.QuestionIndex != s.state.Index || s.state.Phase != session.PhaseActive {
		return s, nil
	}

	s.state.TimeLeft--
	if s.state.TimeLeft <= 0 {
		s.state.TimeLeft = 0
		if s.state.Gate.TrySubmit("", true) {
			s.state.Selected = ""
			return s, s.submit("")
		}
		// A manual submission is already in flight; await its result.
		return s, nil
	}

	return s, tickCmd(s.state.Index)
}

func (s *QuizScreen) handleSubmitResult(msg submitResultMsg) (screen.Screen, tea.Cmd) {
	if s.state == nil || msg.QuestionIndex != s.state.Index {
		return s, nil
	}

	resol := session.Resolve(s.state, msg.Result)
	if resol == nil {
		return s, nil
	}
	s.rec.Append(resol.Record)

	correctLabel := msg.Result.CorrectLabel
	if correctLabel == "" {
		if q := s.state.Current(); q != nil {
			correctLabel = q.Correct
		}
	}
	s.opts.Resolve(s.state.Selected, correctLabel)

	if s.roomState != nil && s.channel != nil {
		streak := s.state.Engine.Streak
		s.channel.UpdateScore(s.roomState.Code, s.roomState.SelfName, resol.Delta, streak, msg.Result.Correct)
		if q := s.state.Current(); q != nil {
			s.channel.PlayerAnswered(s.roomState.Code, s.roomState.SelfName, q.ID, msg.Result.Correct)
		}
		if resol.Delta != 0 {
			s.roomState.AddPending(resol.Delta, streak)
		}
	}

	if s.state.Phase == session.PhaseTerminated {
		return s.finish()
	}
	return s, nil
}

func (s *QuizScreen) handleRoomEvent(msg roomEventMsg) (screen.Screen, tea.Cmd) {
	if msg.Closed || s.channel == nil {
		return s, nil
	}

	switch msg.Event.Type {
	case room.EventRoomUpdate:
		if s.roomState != nil {
			s.roomState.ApplyRoster(msg.Event.Roster)
		}
	case room.EventError:
		s.toast = msg.Event.Message
	}

	return s, listenRoom(s.channel)
}

func (s *QuizScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.errMsg != "" {
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}
	if s.state == nil {
		return s, nil
	}

	if s.quitConfirm {
		switch key {
		case "y", "Y":
			return s.leave()
		case "n", "N", "esc":
			s.quitConfirm = false
		}
		return s, nil
	}

	switch s.state.Phase {
	case session.PhaseResolved:
		if key == "enter" || key == " " {
			return s.advance()
		}
		return s, nil

	case session.PhaseActive:
		switch key {
		case "esc":
			s.quitConfirm = true
			return s, nil
		case "enter":
			label := s.opts.SelectedLabel()
			if s.state.Gate.TrySubmit(label, false) {
				s.state.Selected = label
				return s, s.submit(label)
			}
			return s, nil
		case "f", "F":
			s.useFiftyFifty()
			return s, nil
		case "t", "T":
			s.useTimeExtend()
			return s, nil
		case "s", "S":
			s.useShield()
			return s, nil
		}

		var cmd tea.Cmd
		s.opts, cmd = s.opts.Update(msg)
		return s, cmd
	}

	return s, nil
}

// advance dismisses feedback: next question, or session completion.
func (s *QuizScreen) advance() (screen.Screen, tea.Cmd) {
	if s.state.OnLast() {
		s.state.Phase = session.PhaseComplete
		return s.finish()
	}
	s.state.Advance()
	q := s.state.Current()
	s.opts = components.NewOptionList(q.Prompt, s.visibleOptions())
	return s, tickCmd(s.state.Index)
}

// finish closes the recorder exactly once and moves to the summary.
func (s *QuizScreen) finish() (screen.Screen, tea.Cmd) {
	sum := session.BuildSummary(s.state)

	var rank *int
	var board []room.Player
	if s.roomState != nil {
		board = s.roomState.Leaderboard()
		if r := s.roomState.SelfRank(); r > 0 {
			rank = &r
		}
	}
	s.rec.Finalize(sum, rank)

	if s.channel != nil {
		s.channel.Close()
	}

	selfName := s.deps.Config.Player.Name
	return s, func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: summary.New(sum, rank, board, selfName)}
	}
}

// leave handles a confirmed mid-session exit.
func (s *QuizScreen) leave() (screen.Screen, tea.Cmd) {
	sum := session.BuildSummary(s.state)
	var rank *int
	if s.roomState != nil {
		if r := s.roomState.SelfRank(); r > 0 {
			rank = &r
		}
	}
	s.rec.Finalize(sum, rank)
	if s.channel != nil {
		s.channel.Close()
	}
	return s, func() tea.Msg { return router.PopScreenMsg{} }
}

func (s *QuizScreen) useFiftyFifty() {
	q := s.state.Current()
	if q == nil || s.state.Gate.Phase() != session.GateUnanswered {
		return
	}
	alreadyApplied := s.state.Bank.RevealedFor(s.state.Index) != nil
	kept := s.state.Bank.Reveal(s.state.Index, q)
	if kept == nil || alreadyApplied {
		return
	}
	s.rec.RecordPowerUp(powerup.KindFiftyFifty.String())

	selected := s.opts.SelectedLabel()
	s.opts.SetOptions(toOptions(kept))
	s.opts.SelectByLabel(selected)
}

func (s *QuizScreen) useTimeExtend() {
	if s.state.Gate.Phase() != session.GateUnanswered {
		return
	}
	secs, ok := s.state.Bank.ExtendTime(s.state.TimeLeft)
	if !ok {
		return
	}
	s.state.TimeLeft = secs
	s.rec.RecordPowerUp(powerup.KindTimeExtend.String())
}

func (s *QuizScreen) useShield() {
	if !s.state.Engine.Multiplayer() || s.state.Engine.ShieldActive() {
		return
	}
	if !s.state.Bank.UseShield() {
		return
	}
	s.state.Engine.ArmShield()
	s.rec.RecordPowerUp(powerup.KindShield.String())
}

// visibleOptions maps the current question's (possibly reduced) options
// into display form.
func (s *QuizScreen) visibleOptions() []components.Option {
	return toOptions(s.state.VisibleOptions())
}

func toOptions(raw []string) []components.Option {
	out := make([]components.Option, 0, len(raw))
	for _, opt := range raw {
		out = append(out, components.Option{
			Label: quizdata.OptionLabel(opt),
			Text:  quizdata.OptionText(opt),
		})
	}
	return out
}

// fetchQuiz loads and validates the solo quiz payload.
func (s *QuizScreen) fetchQuiz() tea.Cmd {
	client := s.deps.API
	id := s.quizID
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		q, err := client.FetchQuiz(ctx, id)
		return quizLoadedMsg{Quiz: q, Err: err}
	}
}

// startSession opens the analytics session. Failure is tolerated: the
// session plays on and finalize skips the backend call.
func (s *QuizScreen) startSession() tea.Cmd {
	client := s.deps.API
	userID := s.deps.Config.ClientID
	if userID == "" {
		userID = s.deps.Config.Player.Name
	}
	in := api.StartSessionInput{
		UserID:      userID,
		QuizID:      s.state.Quiz.ID,
		Difficulty:  s.state.Quiz.Difficulty.String(),
		Multiplayer: s.state.Engine.Multiplayer(),
	}
	if s.roomState != nil {
		in.RoomCode = s.roomState.Code
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		id, err := client.StartSession(ctx, in)
		return sessionStartedMsg{SessionID: id, Err: err}
	}
}

// submit sends the answer. A failed call resolves the question with a
// synthetic unverified miss; it is never retried.
func (s *QuizScreen) submit(label string) tea.Cmd {
	client := s.deps.API
	idx := s.state.Index
	in := api.SubmitAnswerInput{
		UserID:        s.deps.Config.Player.Name,
		QuizID:        s.state.Quiz.ID,
		QuestionIndex: idx,
		Answer:        label,
	}
	var localCorrect string
	if q := s.state.Current(); q != nil {
		localCorrect = q.Correct
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		res, err := client.SubmitAnswer(ctx, in)
		if err != nil {
			res = &session.Result{
				Correct:       false,
				CorrectLabel:  localCorrect,
				Explanation:   "Could not verify your answer with the server.",
				PointsAwarded: -1,
				TotalPoints:   -1,
				Verified:      false,
			}
		}
		return submitResultMsg{QuestionIndex: idx, Result: res}
	}
}

// tickCmd arms a 1-second tick bound to the question it was started for.
func tickCmd(questionIndex int) tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return timerTickMsg{QuestionIndex: questionIndex, At: t}
	})
}

// listenRoom waits for the next inbound room event.
func listenRoom(ch *room.Channel) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-ch.Events()
		if !ok {
			return roomEventMsg{Closed: true}
		}
		return roomEventMsg{Event: ev}
	}
}
