package session

import (
	"math"
	"strings"
	"sync"
	"time"

	"github.com/lshigami/Quokkas/internal/model"
	"github.com/rs/zerolog/log"
)

// State enumerates session states.
type State string

const (
	StateInProgress State = "IN_PROGRESS"
	StateFinished   State = "FINISHED"
)

// DefaultAdvanceDelay is how long feedback stays on screen before a
// selection-type answer advances to the next question.
const DefaultAdvanceDelay = 700 * time.Millisecond

// NoAnswer is the sentinel shown in review for questions the user skipped.
const NoAnswer = "No answer"

// Result is emitted exactly once when a session reaches StateFinished.
type Result struct {
	QuizID     uint
	Answers    model.AnswerMap
	Score      int
	Percentage int
}

// ReviewItem is the per-question breakdown exposed after a session finishes.
type ReviewItem struct {
	QuestionID    uint               `json:"question_id"`
	Type          model.QuestionType `json:"type"`
	Prompt        string             `json:"prompt"`
	Answered      bool               `json:"answered"`
	UserAnswer    string             `json:"user_answer"`
	CorrectAnswer string             `json:"correct_answer"`
	Correct       bool               `json:"correct"`
	Explanation   string             `json:"explanation,omitempty"` // only set when incorrect
}

// Snapshot is a point-in-time view of the session for transport.
type Snapshot struct {
	QuizID       uint
	State        State
	Index        int
	Total        int
	ShowFeedback bool
	Answers      model.AnswerMap
	Score        int
	Percentage   int
	Question     *model.Question
}

// Engine drives one quiz-taking session: question navigation, answer capture,
// auto-advance timing, scoring and review. All methods are safe for concurrent
// use; transitions that fail their preconditions are no-ops, not errors.
type Engine struct {
	mu           sync.Mutex
	quizID       uint
	questions    []model.Question
	index        int
	answers      model.AnswerMap
	showFeedback bool
	finished     bool
	closed       bool
	score        int
	advanceDelay time.Duration
	timer        *time.Timer
	moveGen      uint64 // bumped on every index or state change; stale timers check it
	onFinish     func(Result)
}

// NewEngine creates an engine for one quiz. onFinish receives the attempt
// exactly once, outside the engine lock.
func NewEngine(advanceDelay time.Duration, onFinish func(Result)) *Engine {
	if advanceDelay <= 0 {
		advanceDelay = DefaultAdvanceDelay
	}
	return &Engine{advanceDelay: advanceDelay, onFinish: onFinish, answers: model.AnswerMap{}}
}

// Load puts a quiz into the engine, fully resetting any previous session
// state. The question slice is copied; the caller's quiz stays untouched.
func (e *Engine) Load(quizID uint, questions []model.Question) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.cancelTimerLocked()
	e.quizID = quizID
	e.questions = make([]model.Question, len(questions))
	copy(e.questions, questions)
	e.index = 0
	e.answers = model.AnswerMap{}
	e.showFeedback = false
	e.finished = false
	e.closed = false
	e.score = 0
	e.moveGen++
}

// SubmitAnswer records (or overwrites) the answer for the current question.
// Selection-type questions show feedback and, unless this is the last
// question, schedule an automatic advance. Returns false when the call is out
// of precondition (finished, closed, feedback already showing, or the
// question is not the current one).
func (e *Engine) SubmitAnswer(questionID uint, answer string) bool {
	e.mu.Lock()

	if e.finished || e.closed || e.showFeedback || len(e.questions) == 0 {
		e.mu.Unlock()
		return false
	}
	current := e.questions[e.index]
	if current.ID != questionID {
		e.mu.Unlock()
		return false
	}

	e.answers[questionID] = answer

	if current.Type.AutoAdvances() {
		e.showFeedback = true
		if e.index < len(e.questions)-1 {
			e.scheduleAdvanceLocked()
		}
	}
	e.mu.Unlock()
	return true
}

// scheduleAdvanceLocked arms the auto-advance timer. The captured generation
// guards against the delay firing after manual navigation, finish or exit.
func (e *Engine) scheduleAdvanceLocked() {
	e.cancelTimerLocked()
	gen := e.moveGen
	e.timer = time.AfterFunc(e.advanceDelay, func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		if e.finished || e.closed || e.moveGen != gen {
			return
		}
		if e.index >= len(e.questions)-1 {
			return
		}
		e.index++
		e.showFeedback = false
		e.moveGen++
	})
}

func (e *Engine) cancelTimerLocked() {
	if e.timer != nil {
		e.timer.Stop()
		e.timer = nil
	}
}

// GoNext advances to the next question, or finishes the session when the
// current question is the last one. No-op while the current question is
// unanswered.
func (e *Engine) GoNext() bool {
	e.mu.Lock()

	if e.finished || e.closed || len(e.questions) == 0 {
		e.mu.Unlock()
		return false
	}
	current := e.questions[e.index]
	if _, answered := e.answers[current.ID]; !answered {
		e.mu.Unlock()
		return false
	}

	e.cancelTimerLocked()
	e.moveGen++

	if e.index == len(e.questions)-1 {
		result := e.finishLocked()
		onFinish := e.onFinish
		e.mu.Unlock()
		if onFinish != nil {
			onFinish(result)
		}
		return true
	}

	e.index++
	e.showFeedback = false
	e.mu.Unlock()
	return true
}

// Finish submits the session as a whole, regardless of position. Unanswered
// questions count as incorrect. No-op once finished or closed.
func (e *Engine) Finish() bool {
	e.mu.Lock()

	if e.finished || e.closed || len(e.questions) == 0 {
		e.mu.Unlock()
		return false
	}

	e.cancelTimerLocked()
	e.moveGen++
	result := e.finishLocked()
	onFinish := e.onFinish
	e.mu.Unlock()
	if onFinish != nil {
		onFinish(result)
	}
	return true
}

// GoPrevious steps back one question. No-op at index 0.
func (e *Engine) GoPrevious() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.finished || e.closed || e.index == 0 {
		return false
	}
	e.cancelTimerLocked()
	e.moveGen++
	e.index--
	e.showFeedback = false
	return true
}

// finishLocked applies the scoring rule and builds the attempt result.
func (e *Engine) finishLocked() Result {
	e.score = Score(e.questions, e.answers)
	e.finished = true
	e.showFeedback = false

	answers := model.AnswerMap{}
	for k, v := range e.answers {
		answers[k] = v
	}
	result := Result{
		QuizID:     e.quizID,
		Answers:    answers,
		Score:      e.score,
		Percentage: Percentage(e.score, len(e.questions)),
	}
	log.Info().Uint("quizID", e.quizID).Int("score", result.Score).Int("percentage", result.Percentage).Msg("Session finished")
	return result
}

// Close tears the session down and cancels any pending auto-advance. A closed
// session emits no attempt and accepts no further transitions.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cancelTimerLocked()
	e.moveGen++
	e.closed = true
}

// Snapshot returns the current session view. The answer map is a copy.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	answers := model.AnswerMap{}
	for k, v := range e.answers {
		answers[k] = v
	}
	snap := Snapshot{
		QuizID:       e.quizID,
		State:        StateInProgress,
		Index:        e.index,
		Total:        len(e.questions),
		ShowFeedback: e.showFeedback,
		Answers:      answers,
	}
	if e.finished {
		snap.State = StateFinished
		snap.Score = e.score
		snap.Percentage = Percentage(e.score, len(e.questions))
	} else if len(e.questions) > 0 {
		q := e.questions[e.index]
		snap.Question = &q
	}
	return snap
}

// Review exposes the per-question breakdown. Only available once finished.
func (e *Engine) Review() ([]ReviewItem, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.finished {
		return nil, false
	}

	items := make([]ReviewItem, 0, len(e.questions))
	for _, q := range e.questions {
		answer, answered := e.answers[q.ID]
		item := ReviewItem{
			QuestionID:    q.ID,
			Type:          q.Type,
			Prompt:        q.Prompt,
			Answered:      answered,
			UserAnswer:    answer,
			CorrectAnswer: q.CorrectAnswer,
			Correct:       answered && IsCorrect(&q, answer),
		}
		if !answered {
			item.UserAnswer = NoAnswer
		}
		if !item.Correct {
			item.Explanation = q.Explanation
		}
		items = append(items, item)
	}
	return items, true
}

// IsCorrect compares an answer to the question's key, case-folded and with
// leading/trailing whitespace stripped on both sides.
func IsCorrect(q *model.Question, answer string) bool {
	return normalizeAnswer(answer) == normalizeAnswer(q.CorrectAnswer)
}

func normalizeAnswer(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Score counts correct answers. Unanswered questions count as incorrect. The
// computation is pure, so it can re-derive a stored attempt's score at any time.
func Score(questions []model.Question, answers model.AnswerMap) int {
	score := 0
	for i := range questions {
		if answer, ok := answers[questions[i].ID]; ok && IsCorrect(&questions[i], answer) {
			score++
		}
	}
	return score
}

// Percentage is round(score/total*100), 0 for an empty quiz.
func Percentage(score, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(score) / float64(total) * 100))
}
