package service

import (
	"errors"
	"fmt"

	"github.com/lshigami/Quokkas/internal/dto"
	"github.com/lshigami/Quokkas/internal/model"
	"github.com/lshigami/Quokkas/internal/repository"
	"github.com/lshigami/Quokkas/internal/session"
	"github.com/rs/zerolog/log"
)

var (
	ErrSessionNotFound    = errors.New("session not found")
	ErrSessionNotDone     = errors.New("session has not finished yet")
	ErrQuizHasNoQuestions = errors.New("quiz has no questions, cannot start a session")
)

// SessionService runs quiz-taking sessions over the in-memory manager and
// persists the attempt when a session finishes.
type SessionService interface {
	StartSession(quizID uint, shuffle bool) (*dto.SessionStateDTO, error)
	GetState(sessionID string) (*dto.SessionStateDTO, error)
	SubmitAnswer(sessionID string, req dto.SubmitAnswerRequest) (*dto.SessionStateDTO, error)
	GoNext(sessionID string) (*dto.SessionStateDTO, error)
	Finish(sessionID string) (*dto.SessionStateDTO, error)
	GoPrevious(sessionID string) (*dto.SessionStateDTO, error)
	Review(sessionID string) ([]session.ReviewItem, error)
	ExitSession(sessionID string) error
}

type sessionService struct {
	manager     *session.Manager
	quizRepo    repository.QuizRepository
	attemptRepo repository.AttemptRepository
}

func NewSessionService(manager *session.Manager, quizRepo repository.QuizRepository, attemptRepo repository.AttemptRepository) SessionService {
	return &sessionService{manager: manager, quizRepo: quizRepo, attemptRepo: attemptRepo}
}

// StartSession opens a quiz for taking. The session works on a copy of the
// stored question sequence, optionally shuffled; the quiz row is untouched.
func (s *sessionService) StartSession(quizID uint, shuffle bool) (*dto.SessionStateDTO, error) {
	quiz, err := s.quizRepo.FindByIDWithQuestions(quizID)
	if err != nil {
		return nil, fmt.Errorf("quiz not found with ID %d: %w", quizID, err)
	}
	if len(quiz.Questions) == 0 {
		return nil, ErrQuizHasNoQuestions
	}

	questions := quiz.Questions
	if shuffle {
		questions = session.ShuffleQuestions(questions)
	}

	sessionID, engine := s.manager.Start(quizID, questions, s.persistAttempt)
	log.Info().Str("sessionID", sessionID).Uint("quizID", quizID).Bool("shuffle", shuffle).Msg("Session started")
	return stateDTO(sessionID, engine.Snapshot()), nil
}

// persistAttempt stores the emitted attempt and merges its score into the
// quiz row. Last attempt wins.
func (s *sessionService) persistAttempt(result session.Result) {
	attempt := model.QuizAttempt{
		QuizID:     result.QuizID,
		Answers:    result.Answers,
		Score:      result.Score,
		Percentage: result.Percentage,
	}
	if err := s.attemptRepo.Create(&attempt); err != nil {
		log.Error().Err(err).Uint("quizID", result.QuizID).Msg("Failed to persist quiz attempt")
		return
	}
	if err := s.quizRepo.UpdateScore(result.QuizID, result.Score); err != nil {
		log.Error().Err(err).Uint("quizID", result.QuizID).Msg("Failed to update quiz score")
	}
}

func (s *sessionService) GetState(sessionID string) (*dto.SessionStateDTO, error) {
	engine, ok := s.manager.Get(sessionID)
	if !ok {
		return nil, ErrSessionNotFound
	}
	return stateDTO(sessionID, engine.Snapshot()), nil
}

// SubmitAnswer records an answer. An out-of-precondition submit (feedback
// already showing, wrong question, session finished) leaves state unchanged
// and simply returns the current snapshot.
func (s *sessionService) SubmitAnswer(sessionID string, req dto.SubmitAnswerRequest) (*dto.SessionStateDTO, error) {
	engine, ok := s.manager.Get(sessionID)
	if !ok {
		return nil, ErrSessionNotFound
	}
	if applied := engine.SubmitAnswer(req.QuestionID, req.Answer); !applied {
		log.Debug().Str("sessionID", sessionID).Uint("questionID", req.QuestionID).Msg("Answer submission ignored (out of precondition)")
	}
	return stateDTO(sessionID, engine.Snapshot()), nil
}

func (s *sessionService) GoNext(sessionID string) (*dto.SessionStateDTO, error) {
	engine, ok := s.manager.Get(sessionID)
	if !ok {
		return nil, ErrSessionNotFound
	}
	engine.GoNext()
	return stateDTO(sessionID, engine.Snapshot()), nil
}

// Finish submits the session early; unanswered questions score as incorrect.
func (s *sessionService) Finish(sessionID string) (*dto.SessionStateDTO, error) {
	engine, ok := s.manager.Get(sessionID)
	if !ok {
		return nil, ErrSessionNotFound
	}
	engine.Finish()
	return stateDTO(sessionID, engine.Snapshot()), nil
}

func (s *sessionService) GoPrevious(sessionID string) (*dto.SessionStateDTO, error) {
	engine, ok := s.manager.Get(sessionID)
	if !ok {
		return nil, ErrSessionNotFound
	}
	engine.GoPrevious()
	return stateDTO(sessionID, engine.Snapshot()), nil
}

func (s *sessionService) Review(sessionID string) ([]session.ReviewItem, error) {
	engine, ok := s.manager.Get(sessionID)
	if !ok {
		return nil, ErrSessionNotFound
	}
	items, done := engine.Review()
	if !done {
		return nil, ErrSessionNotDone
	}
	return items, nil
}

// ExitSession tears the session down, canceling any pending auto-advance. No
// attempt is emitted for an exited session.
func (s *sessionService) ExitSession(sessionID string) error {
	if ok := s.manager.Close(sessionID); !ok {
		return ErrSessionNotFound
	}
	log.Info().Str("sessionID", sessionID).Msg("Session exited")
	return nil
}

func stateDTO(sessionID string, snap session.Snapshot) *dto.SessionStateDTO {
	state := &dto.SessionStateDTO{
		SessionID:      sessionID,
		QuizID:         snap.QuizID,
		State:          string(snap.State),
		CurrentIndex:   snap.Index,
		TotalQuestions: snap.Total,
		ShowFeedback:   snap.ShowFeedback,
		AnsweredCount:  len(snap.Answers),
	}
	if snap.Question != nil {
		state.CurrentQuestion = &dto.QuestionResponseDTO{
			ID:          snap.Question.ID,
			Type:        snap.Question.Type,
			Prompt:      snap.Question.Prompt,
			Options:     snap.Question.Options,
			OrderInQuiz: snap.Question.OrderInQuiz,
		}
	}
	if snap.State == session.StateFinished {
		score, percentage := snap.Score, snap.Percentage
		state.Score = &score
		state.Percentage = &percentage
	}
	return state
}
