package session

// Summary is the end-of-session rollup shown on the summary screen and
// written to local history.
type Summary struct {
	QuizID         string
	Multiplayer    bool
	Terminated     bool // ended by lives exhaustion
	Score          int  // correct answers
	TotalQuestions int
	Points         int
	BestStreak     int
	AvgTimeSeconds int
	Accuracy       float64 // 0.0 - 1.0
}

// BuildSummary computes the rollup from the finished session state.
func BuildSummary(s *State) *Summary {
	sum := &Summary{
		QuizID:         s.Quiz.ID,
		Multiplayer:    s.Engine.Multiplayer(),
		Terminated:     s.Phase == PhaseTerminated,
		Score:          s.Engine.Score,
		TotalQuestions: len(s.Quiz.Questions),
		Points:         s.Engine.Points,
	}

	if sum.TotalQuestions > 0 {
		sum.Accuracy = float64(sum.Score) / float64(sum.TotalQuestions)
	}

	var totalTime, run, best int
	for _, rec := range s.Records {
		totalTime += rec.TimeSpent
		if rec.Correct {
			run++
			if run > best {
				best = run
			}
		} else {
			run = 0
		}
	}
	sum.BestStreak = best
	if len(s.Records) > 0 {
		sum.AvgTimeSeconds = totalTime / len(s.Records)
	}

	return sum
}
