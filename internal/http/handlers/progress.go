package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/dataarena/dataarena-backend/internal/http/response"
	"github.com/dataarena/dataarena-backend/internal/platform/logger"
	"github.com/dataarena/dataarena-backend/internal/requestdata"
	"github.com/dataarena/dataarena-backend/internal/services"
)

type ProgressHandler struct {
	log             *logger.Logger
	progressService services.ProgressService
}

func NewProgressHandler(log *logger.Logger, progressService services.ProgressService) *ProgressHandler {
	return &ProgressHandler{
		log:             log.With("handler", "ProgressHandler"),
		progressService: progressService,
	}
}

func (h *ProgressHandler) caller(c *gin.Context) (uuid.UUID, uuid.UUID, bool) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID == uuid.Nil {
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return uuid.Nil, uuid.Nil, false
	}
	challengeID, err := uuid.Parse(c.Param("id"))
	if err != nil || challengeID == uuid.Nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_challenge_id", err)
		return uuid.Nil, uuid.Nil, false
	}
	return rd.UserID, challengeID, true
}

// POST /api/challenges/:id/accept
func (h *ProgressHandler) AcceptChallenge(c *gin.Context) {
	userID, challengeID, ok := h.caller(c)
	if !ok {
		return
	}
	progress, err := h.progressService.AcceptChallenge(c.Request.Context(), userID, challengeID)
	if err != nil {
		h.log.Error("AcceptChallenge failed", "error", err, "challenge_id", challengeID, "user_id", userID)
		respondServiceError(c, "accept_challenge_failed", err)
		return
	}
	response.RespondOK(c, progress)
}

// POST /api/challenges/:id/confirm-completion
func (h *ProgressHandler) ConfirmCompletion(c *gin.Context) {
	userID, challengeID, ok := h.caller(c)
	if !ok {
		return
	}
	progress, err := h.progressService.CompleteChallenge(c.Request.Context(), userID, challengeID)
	if err != nil {
		h.log.Error("ConfirmCompletion failed", "error", err, "challenge_id", challengeID, "user_id", userID)
		respondServiceError(c, "confirm_completion_failed", err)
		return
	}
	response.RespondOK(c, progress)
}

// GET /api/challenges/:id/progress
func (h *ProgressHandler) GetProgress(c *gin.Context) {
	userID, challengeID, ok := h.caller(c)
	if !ok {
		return
	}
	progress, err := h.progressService.GetProgress(c.Request.Context(), userID, challengeID)
	if err != nil {
		respondServiceError(c, "load_progress_failed", err)
		return
	}
	response.RespondOK(c, progress)
}
