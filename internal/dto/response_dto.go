package dto

import (
	"time"

	"github.com/lshigami/Quokkas/internal/model"
)

// QuestionResponseDTO is a question as shown while taking a quiz. The answer
// key and explanation stay server-side until review.
type QuestionResponseDTO struct {
	ID          uint               `json:"id"`
	Type        model.QuestionType `json:"type"`
	Prompt      string             `json:"prompt"`
	Options     []string           `json:"options,omitempty"`
	OrderInQuiz int                `json:"order_in_quiz"`
}

// QuizSummaryDTO is used for the library listing.
type QuizSummaryDTO struct {
	ID             uint      `json:"id"`
	Title          string    `json:"title"`
	SourceFileName string    `json:"source_file_name"`
	TotalQuestions int       `json:"total_questions"`
	Score          *int      `json:"score,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// QuizResponseDTO is the full quiz detail, questions included.
type QuizResponseDTO struct {
	ID             uint                  `json:"id"`
	Title          string                `json:"title"`
	SourceFileName string                `json:"source_file_name"`
	TotalQuestions int                   `json:"total_questions"`
	Score          *int                  `json:"score,omitempty"`
	Questions      []QuestionResponseDTO `json:"questions"`
	CreatedAt      time.Time             `json:"created_at"`
}

// SessionStateDTO is the transport view of a session snapshot.
type SessionStateDTO struct {
	SessionID       string               `json:"session_id"`
	QuizID          uint                 `json:"quiz_id"`
	State           string               `json:"state"`
	CurrentIndex    int                  `json:"current_index"`
	TotalQuestions  int                  `json:"total_questions"`
	ShowFeedback    bool                 `json:"show_feedback"`
	AnsweredCount   int                  `json:"answered_count"`
	CurrentQuestion *QuestionResponseDTO `json:"current_question,omitempty"`
	Score           *int                 `json:"score,omitempty"`
	Percentage      *int                 `json:"percentage,omitempty"`
}

// AttemptResponseDTO is a stored attempt.
type AttemptResponseDTO struct {
	ID          uint            `json:"id"`
	QuizID      uint            `json:"quiz_id"`
	Answers     model.AnswerMap `json:"answers"`
	Score       int             `json:"score"`
	Percentage  int             `json:"percentage"`
	SubmittedAt time.Time       `json:"submitted_at"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
