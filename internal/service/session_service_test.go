package service

import (
	"errors"
	"testing"
	"time"

	"github.com/lshigami/Quokkas/internal/dto"
	"github.com/lshigami/Quokkas/internal/model"
	"github.com/lshigami/Quokkas/internal/session"
)

type fakeQuizRepo struct {
	quizzes map[uint]*model.Quiz
	scores  map[uint][]int
}

func newFakeQuizRepo() *fakeQuizRepo {
	return &fakeQuizRepo{quizzes: map[uint]*model.Quiz{}, scores: map[uint][]int{}}
}

func (r *fakeQuizRepo) Create(quiz *model.Quiz) error {
	if quiz.ID == 0 {
		quiz.ID = uint(len(r.quizzes) + 1)
	}
	r.quizzes[quiz.ID] = quiz
	return nil
}

func (r *fakeQuizRepo) FindByID(id uint) (*model.Quiz, error) {
	quiz, ok := r.quizzes[id]
	if !ok {
		return nil, errors.New("record not found")
	}
	return quiz, nil
}

func (r *fakeQuizRepo) FindByIDWithQuestions(id uint) (*model.Quiz, error) {
	return r.FindByID(id)
}

func (r *fakeQuizRepo) FindAll() ([]model.Quiz, error) {
	out := make([]model.Quiz, 0, len(r.quizzes))
	for _, q := range r.quizzes {
		out = append(out, *q)
	}
	return out, nil
}

func (r *fakeQuizRepo) UpdateScore(id uint, score int) error {
	quiz, ok := r.quizzes[id]
	if !ok {
		return errors.New("record not found")
	}
	quiz.Score = &score
	r.scores[id] = append(r.scores[id], score)
	return nil
}

func (r *fakeQuizRepo) Delete(id uint) error {
	delete(r.quizzes, id)
	return nil
}

type fakeAttemptRepo struct {
	attempts []model.QuizAttempt
}

func (r *fakeAttemptRepo) Create(attempt *model.QuizAttempt) error {
	attempt.ID = uint(len(r.attempts) + 1)
	r.attempts = append(r.attempts, *attempt)
	return nil
}

func (r *fakeAttemptRepo) FindByID(id uint) (*model.QuizAttempt, error) {
	for i := range r.attempts {
		if r.attempts[i].ID == id {
			return &r.attempts[i], nil
		}
	}
	return nil, errors.New("record not found")
}

func (r *fakeAttemptRepo) FindAllByQuizID(quizID uint) ([]model.QuizAttempt, error) {
	var out []model.QuizAttempt
	for _, a := range r.attempts {
		if a.QuizID == quizID {
			out = append(out, a)
		}
	}
	return out, nil
}

func seededQuiz() *model.Quiz {
	return &model.Quiz{
		ID:             1,
		Title:          "Geography Basics",
		SourceFileName: "geography.pdf",
		TotalQuestions: 2,
		Questions: []model.Question{
			{ID: 10, QuizID: 1, Type: model.QuestionTypeTrueFalse, Prompt: "The Nile is in Africa.", CorrectAnswer: "True", OrderInQuiz: 1},
			{ID: 11, QuizID: 1, Type: model.QuestionTypeShortAnswer, Prompt: "Capital of Egypt?", CorrectAnswer: "Cairo", OrderInQuiz: 2},
		},
	}
}

func newTestSessionService() (SessionService, *fakeQuizRepo, *fakeAttemptRepo) {
	quizRepo := newFakeQuizRepo()
	quizRepo.quizzes[1] = seededQuiz()
	attemptRepo := &fakeAttemptRepo{}
	manager := session.NewManager(time.Hour)
	return NewSessionService(manager, quizRepo, attemptRepo), quizRepo, attemptRepo
}

func TestStartSessionUnknownQuiz(t *testing.T) {
	svc, _, _ := newTestSessionService()
	if _, err := svc.StartSession(99, false); err == nil {
		t.Fatal("expected an error for an unknown quiz")
	}
}

func TestStartSessionEmptyQuiz(t *testing.T) {
	svc, quizRepo, _ := newTestSessionService()
	quizRepo.quizzes[2] = &model.Quiz{ID: 2, Title: "Empty"}

	_, err := svc.StartSession(2, false)
	if !errors.Is(err, ErrQuizHasNoQuestions) {
		t.Fatalf("error = %v, want ErrQuizHasNoQuestions", err)
	}
}

func TestFullSessionPersistsAttemptAndScore(t *testing.T) {
	svc, quizRepo, attemptRepo := newTestSessionService()

	state, err := svc.StartSession(1, false)
	if err != nil {
		t.Fatalf("StartSession: %v", err)
	}
	if state.State != string(session.StateInProgress) {
		t.Errorf("State = %q, want %q", state.State, session.StateInProgress)
	}
	if state.TotalQuestions != 2 || state.CurrentIndex != 0 {
		t.Errorf("initial snapshot off: total %d, index %d", state.TotalQuestions, state.CurrentIndex)
	}
	if state.CurrentQuestion == nil || state.CurrentQuestion.ID != 10 {
		t.Fatalf("current question = %+v, want question 10", state.CurrentQuestion)
	}

	id := state.SessionID
	if _, err := svc.SubmitAnswer(id, dto.SubmitAnswerRequest{QuestionID: 10, Answer: "True"}); err != nil {
		t.Fatalf("SubmitAnswer: %v", err)
	}
	if _, err := svc.GoNext(id); err != nil {
		t.Fatalf("GoNext: %v", err)
	}
	if _, err := svc.SubmitAnswer(id, dto.SubmitAnswerRequest{QuestionID: 11, Answer: "cairo "}); err != nil {
		t.Fatalf("SubmitAnswer: %v", err)
	}
	state, err = svc.GoNext(id)
	if err != nil {
		t.Fatalf("final GoNext: %v", err)
	}

	if state.State != string(session.StateFinished) {
		t.Fatalf("State = %q, want %q", state.State, session.StateFinished)
	}
	if state.Score == nil || *state.Score != 2 {
		t.Errorf("Score = %v, want 2", state.Score)
	}
	if state.Percentage == nil || *state.Percentage != 100 {
		t.Errorf("Percentage = %v, want 100", state.Percentage)
	}

	if len(attemptRepo.attempts) != 1 {
		t.Fatalf("persisted %d attempts, want 1", len(attemptRepo.attempts))
	}
	attempt := attemptRepo.attempts[0]
	if attempt.QuizID != 1 || attempt.Score != 2 || attempt.Percentage != 100 {
		t.Errorf("attempt = %+v", attempt)
	}
	if attempt.Answers[10] != "True" || attempt.Answers[11] != "cairo " {
		t.Errorf("attempt answers = %v, want verbatim submissions", attempt.Answers)
	}

	quiz := quizRepo.quizzes[1]
	if quiz.Score == nil || *quiz.Score != 2 {
		t.Errorf("quiz score = %v, want 2", quiz.Score)
	}
}

func TestLastAttemptScoreWins(t *testing.T) {
	svc, quizRepo, attemptRepo := newTestSessionService()

	run := func(answer1, answer2 string) {
		state, err := svc.StartSession(1, false)
		if err != nil {
			t.Fatalf("StartSession: %v", err)
		}
		id := state.SessionID
		svc.SubmitAnswer(id, dto.SubmitAnswerRequest{QuestionID: 10, Answer: answer1})
		svc.GoNext(id)
		svc.SubmitAnswer(id, dto.SubmitAnswerRequest{QuestionID: 11, Answer: answer2})
		svc.GoNext(id)
	}

	run("True", "Cairo") // 2/2
	run("False", "Giza") // 0/2

	if len(attemptRepo.attempts) != 2 {
		t.Fatalf("persisted %d attempts, want 2", len(attemptRepo.attempts))
	}
	quiz := quizRepo.quizzes[1]
	if quiz.Score == nil || *quiz.Score != 0 {
		t.Errorf("quiz score = %v, want the last attempt's 0", quiz.Score)
	}
	if got := quizRepo.scores[1]; len(got) != 2 || got[0] != 2 || got[1] != 0 {
		t.Errorf("score update sequence = %v, want [2 0]", got)
	}
}

func TestFinishEarlyPersistsPartialAttempt(t *testing.T) {
	svc, _, attemptRepo := newTestSessionService()

	state, _ := svc.StartSession(1, false)
	id := state.SessionID
	svc.SubmitAnswer(id, dto.SubmitAnswerRequest{QuestionID: 10, Answer: "True"})

	state, err := svc.Finish(id)
	if err != nil {
		t.Fatalf("Finish: %v", err)
	}
	if state.State != string(session.StateFinished) {
		t.Fatalf("State = %q, want finished", state.State)
	}
	if state.Score == nil || *state.Score != 1 {
		t.Errorf("Score = %v, want 1", state.Score)
	}
	if state.Percentage == nil || *state.Percentage != 50 {
		t.Errorf("Percentage = %v, want 50", state.Percentage)
	}
	if len(attemptRepo.attempts) != 1 {
		t.Errorf("persisted %d attempts, want 1", len(attemptRepo.attempts))
	}
}

func TestReviewGatedUntilFinished(t *testing.T) {
	svc, _, _ := newTestSessionService()

	state, _ := svc.StartSession(1, false)
	id := state.SessionID

	if _, err := svc.Review(id); !errors.Is(err, ErrSessionNotDone) {
		t.Fatalf("Review before finish: err = %v, want ErrSessionNotDone", err)
	}

	svc.Finish(id)

	items, err := svc.Review(id)
	if err != nil {
		t.Fatalf("Review: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("review items = %d, want 2", len(items))
	}
	for _, item := range items {
		if item.Answered {
			t.Errorf("question %d marked answered", item.QuestionID)
		}
		if item.UserAnswer != session.NoAnswer {
			t.Errorf("question %d UserAnswer = %q, want %q", item.QuestionID, item.UserAnswer, session.NoAnswer)
		}
	}
}

func TestExitSessionDiscardsWithoutAttempt(t *testing.T) {
	svc, _, attemptRepo := newTestSessionService()

	state, _ := svc.StartSession(1, false)
	id := state.SessionID
	svc.SubmitAnswer(id, dto.SubmitAnswerRequest{QuestionID: 10, Answer: "True"})

	if err := svc.ExitSession(id); err != nil {
		t.Fatalf("ExitSession: %v", err)
	}
	if _, err := svc.GetState(id); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("GetState after exit: err = %v, want ErrSessionNotFound", err)
	}
	if len(attemptRepo.attempts) != 0 {
		t.Errorf("exited session persisted %d attempts, want 0", len(attemptRepo.attempts))
	}
}

func TestSessionOperationsOnUnknownSession(t *testing.T) {
	svc, _, _ := newTestSessionService()

	if _, err := svc.GetState("nope"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("GetState: %v", err)
	}
	if _, err := svc.GoNext("nope"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("GoNext: %v", err)
	}
	if _, err := svc.Finish("nope"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Finish: %v", err)
	}
	if err := svc.ExitSession("nope"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("ExitSession: %v", err)
	}
}

func TestStartSessionShuffleKeepsQuestionSet(t *testing.T) {
	svc, _, _ := newTestSessionService()

	state, err := svc.StartSession(1, true)
	if err != nil {
		t.Fatalf("StartSession: %v", err)
	}
	if state.TotalQuestions != 2 {
		t.Errorf("TotalQuestions = %d, want 2", state.TotalQuestions)
	}
	if state.CurrentQuestion == nil {
		t.Fatal("no current question")
	}
	if id := state.CurrentQuestion.ID; id != 10 && id != 11 {
		t.Errorf("current question ID = %d, want one of the quiz's questions", id)
	}
}
