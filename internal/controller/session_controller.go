package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/Quokkas/internal/dto"
	"github.com/lshigami/Quokkas/internal/service"
	"github.com/rs/zerolog/log"
)

type SessionController struct {
	sessionSvc service.SessionService
}

func NewSessionController(sessionSvc service.SessionService) *SessionController {
	return &SessionController{sessionSvc: sessionSvc}
}

// StartSession godoc
// @Summary Start a quiz-taking session
// @Tags sessions
// @Accept json
// @Produce json
// @Param quiz_id path int true "Quiz ID"
// @Param options body dto.StartSessionRequest false "Session options"
// @Success 201 {object} dto.SessionStateDTO
// @Failure 404 {object} dto.ErrorResponse "Quiz not found"
// @Router /quizzes/{quiz_id}/sessions [post]
func (ctrl *SessionController) StartSession(c *gin.Context) {
	quizID, ok := parseUintParam(c, "quiz_id")
	if !ok {
		return
	}

	var req dto.StartSessionRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
			return
		}
	}

	state, err := ctrl.sessionSvc.StartSession(quizID, req.Shuffle)
	if err != nil {
		if errors.Is(err, service.ErrQuizHasNoQuestions) {
			c.JSON(http.StatusConflict, dto.ErrorResponse{Error: err.Error()})
			return
		}
		log.Warn().Err(err).Uint("quizID", quizID).Msg("Failed to start session")
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "Quiz not found"})
		return
	}
	c.JSON(http.StatusCreated, state)
}

// GetSessionState godoc
// @Summary Get the current session snapshot
// @Tags sessions
// @Produce json
// @Param session_id path string true "Session ID"
// @Success 200 {object} dto.SessionStateDTO
// @Failure 404 {object} dto.ErrorResponse "Session not found"
// @Router /sessions/{session_id} [get]
func (ctrl *SessionController) GetSessionState(c *gin.Context) {
	state, err := ctrl.sessionSvc.GetState(c.Param("session_id"))
	if err != nil {
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, state)
}

// SubmitAnswer godoc
// @Summary Submit an answer for the session's current question
// @Tags sessions
// @Accept json
// @Produce json
// @Param session_id path string true "Session ID"
// @Param answer body dto.SubmitAnswerRequest true "Answer payload"
// @Success 200 {object} dto.SessionStateDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid payload"
// @Failure 404 {object} dto.ErrorResponse "Session not found"
// @Router /sessions/{session_id}/answers [post]
func (ctrl *SessionController) SubmitAnswer(c *gin.Context) {
	var req dto.SubmitAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	state, err := ctrl.sessionSvc.SubmitAnswer(c.Param("session_id"), req)
	if err != nil {
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, state)
}

// GoNext godoc
// @Summary Advance to the next question, finishing the session on the last one
// @Tags sessions
// @Produce json
// @Param session_id path string true "Session ID"
// @Success 200 {object} dto.SessionStateDTO
// @Failure 404 {object} dto.ErrorResponse "Session not found"
// @Router /sessions/{session_id}/next [post]
func (ctrl *SessionController) GoNext(c *gin.Context) {
	state, err := ctrl.sessionSvc.GoNext(c.Param("session_id"))
	if err != nil {
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, state)
}

// GoPrevious godoc
// @Summary Step back to the previous question
// @Tags sessions
// @Produce json
// @Param session_id path string true "Session ID"
// @Success 200 {object} dto.SessionStateDTO
// @Failure 404 {object} dto.ErrorResponse "Session not found"
// @Router /sessions/{session_id}/previous [post]
func (ctrl *SessionController) GoPrevious(c *gin.Context) {
	state, err := ctrl.sessionSvc.GoPrevious(c.Param("session_id"))
	if err != nil {
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, state)
}

// Finish godoc
// @Summary Finish the session now, scoring unanswered questions as incorrect
// @Tags sessions
// @Produce json
// @Param session_id path string true "Session ID"
// @Success 200 {object} dto.SessionStateDTO
// @Failure 404 {object} dto.ErrorResponse "Session not found"
// @Router /sessions/{session_id}/finish [post]
func (ctrl *SessionController) Finish(c *gin.Context) {
	state, err := ctrl.sessionSvc.Finish(c.Param("session_id"))
	if err != nil {
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, state)
}

// Review godoc
// @Summary Get the per-question review of a finished session
// @Tags sessions
// @Produce json
// @Param session_id path string true "Session ID"
// @Success 200 {array} session.ReviewItem
// @Failure 404 {object} dto.ErrorResponse "Session not found"
// @Failure 409 {object} dto.ErrorResponse "Session has not finished"
// @Router /sessions/{session_id}/review [get]
func (ctrl *SessionController) Review(c *gin.Context) {
	items, err := ctrl.sessionSvc.Review(c.Param("session_id"))
	if err != nil {
		if errors.Is(err, service.ErrSessionNotDone) {
			c.JSON(http.StatusConflict, dto.ErrorResponse{Error: err.Error()})
			return
		}
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, items)
}

// ExitSession godoc
// @Summary Exit a session, discarding it and canceling any pending auto-advance
// @Tags sessions
// @Produce json
// @Param session_id path string true "Session ID"
// @Success 204 "Exited"
// @Failure 404 {object} dto.ErrorResponse "Session not found"
// @Router /sessions/{session_id} [delete]
func (ctrl *SessionController) ExitSession(c *gin.Context) {
	if err := ctrl.sessionSvc.ExitSession(c.Param("session_id")); err != nil {
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}
