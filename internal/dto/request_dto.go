package dto

// GenerateQuizRequest carries the non-file fields of the multipart upload.
type GenerateQuizRequest struct {
	QuestionCount int    `form:"question_count" binding:"required,min=1,max=50"`
	Difficulty    string `form:"difficulty" binding:"required,oneof=Easy Medium Hard"`
}

// StartSessionRequest starts a quiz-taking session.
type StartSessionRequest struct {
	Shuffle bool `json:"shuffle"`
}

// SubmitAnswerRequest records an answer for the session's current question.
type SubmitAnswerRequest struct {
	QuestionID uint   `json:"question_id" binding:"required"`
	Answer     string `json:"answer" binding:"required"`
}
