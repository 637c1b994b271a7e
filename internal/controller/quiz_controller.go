package controller

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/Quokkas/internal/dto"
	"github.com/lshigami/Quokkas/internal/extract"
	"github.com/lshigami/Quokkas/internal/service"
	"github.com/rs/zerolog/log"
)

type QuizController struct {
	quizSvc service.QuizService
}

func NewQuizController(quizSvc service.QuizService) *QuizController {
	return &QuizController{quizSvc: quizSvc}
}

// GenerateQuiz godoc
// @Summary Generate a quiz from an uploaded document
// @Description Upload a PDF, spreadsheet or image and generate a quiz from its content
// @Tags quizzes
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Document file (.pdf, .xlsx, .xls, .png, .jpg, .jpeg, .webp, .heic)"
// @Param question_count formData int true "Number of questions to generate (1-50)"
// @Param difficulty formData string true "Difficulty: Easy, Medium or Hard"
// @Success 201 {object} dto.QuizResponseDTO
// @Failure 400 {object} dto.ErrorResponse "Unsupported file type or bad request"
// @Failure 422 {object} dto.ErrorResponse "File decoded but yielded no usable content, or is corrupt"
// @Failure 502 {object} dto.ErrorResponse "Generation service failure"
// @Router /quizzes [post]
func (ctrl *QuizController) GenerateQuiz(c *gin.Context) {
	var req dto.GenerateQuizRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "missing file upload: " + err.Error()})
		return
	}

	// Reject unsupported types before reading a single byte of the file.
	if _, err := extract.DetectFormat(fileHeader.Filename, fileHeader.Header.Get("Content-Type")); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		ioErr := &extract.IOError{Err: err}
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: ioErr.Error()})
		return
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		ioErr := &extract.IOError{Err: err}
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: ioErr.Error()})
		return
	}

	quiz, err := ctrl.quizSvc.GenerateFromUpload(c.Request.Context(), fileHeader.Filename, fileHeader.Header.Get("Content-Type"), data, req)
	if err != nil {
		status := quizErrorStatus(err)
		log.Warn().Err(err).Int("status", status).Str("file", fileHeader.Filename).Msg("Quiz generation request failed")
		c.JSON(status, dto.ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusCreated, quiz)
}

// quizErrorStatus maps the pipeline's error taxonomy to HTTP statuses.
func quizErrorStatus(err error) int {
	var unsupported *extract.UnsupportedTypeError
	var ioErr *extract.IOError
	var corrupt *extract.CorruptFileError
	var empty *extract.EmptyContentError
	var generation *service.GenerationError
	switch {
	case errors.As(err, &unsupported), errors.As(err, &ioErr):
		return http.StatusBadRequest
	case errors.As(err, &corrupt), errors.As(err, &empty):
		return http.StatusUnprocessableEntity
	case errors.As(err, &generation):
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

// GetAllQuizzes godoc
// @Summary List the quiz library
// @Tags quizzes
// @Produce json
// @Success 200 {array} dto.QuizSummaryDTO
// @Failure 500 {object} dto.ErrorResponse
// @Router /quizzes [get]
func (ctrl *QuizController) GetAllQuizzes(c *gin.Context) {
	quizzes, err := ctrl.quizSvc.GetAllQuizzes()
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to retrieve quizzes"})
		return
	}
	c.JSON(http.StatusOK, quizzes)
}

// GetQuizDetails godoc
// @Summary Get a quiz with its questions
// @Tags quizzes
// @Produce json
// @Param quiz_id path int true "Quiz ID"
// @Success 200 {object} dto.QuizResponseDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid ID format"
// @Failure 404 {object} dto.ErrorResponse "Quiz not found"
// @Router /quizzes/{quiz_id} [get]
func (ctrl *QuizController) GetQuizDetails(c *gin.Context) {
	quizID, ok := parseUintParam(c, "quiz_id")
	if !ok {
		return
	}
	quiz, err := ctrl.quizSvc.GetQuizDetails(quizID)
	if err != nil {
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "Quiz not found"})
		return
	}
	c.JSON(http.StatusOK, quiz)
}

// DeleteQuiz godoc
// @Summary Remove a quiz from the library
// @Tags quizzes
// @Produce json
// @Param quiz_id path int true "Quiz ID"
// @Success 204 "Deleted"
// @Failure 404 {object} dto.ErrorResponse "Quiz not found"
// @Router /quizzes/{quiz_id} [delete]
func (ctrl *QuizController) DeleteQuiz(c *gin.Context) {
	quizID, ok := parseUintParam(c, "quiz_id")
	if !ok {
		return
	}
	if err := ctrl.quizSvc.DeleteQuiz(quizID); err != nil {
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "Quiz not found"})
		return
	}
	c.Status(http.StatusNoContent)
}

// GetQuizAttempts godoc
// @Summary List stored attempts for a quiz
// @Tags quizzes
// @Produce json
// @Param quiz_id path int true "Quiz ID"
// @Success 200 {array} dto.AttemptResponseDTO
// @Failure 500 {object} dto.ErrorResponse
// @Router /quizzes/{quiz_id}/attempts [get]
func (ctrl *QuizController) GetQuizAttempts(c *gin.Context) {
	quizID, ok := parseUintParam(c, "quiz_id")
	if !ok {
		return
	}
	attempts, err := ctrl.quizSvc.GetQuizAttempts(quizID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to retrieve attempts"})
		return
	}
	c.JSON(http.StatusOK, attempts)
}

func parseUintParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	v, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid " + name + " format"})
		return 0, false
	}
	return uint(v), true
}
