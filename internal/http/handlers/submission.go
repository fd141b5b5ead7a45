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

type SubmissionHandler struct {
	log               *logger.Logger
	submissionService services.SubmissionService
}

func NewSubmissionHandler(log *logger.Logger, submissionService services.SubmissionService) *SubmissionHandler {
	return &SubmissionHandler{
		log:               log.With("handler", "SubmissionHandler"),
		submissionService: submissionService,
	}
}

// POST /api/challenges/:id/submissions
func (h *SubmissionHandler) CreateSubmission(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID == uuid.Nil {
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	challengeID, err := uuid.Parse(c.Param("id"))
	if err != nil || challengeID == uuid.Nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_challenge_id", err)
		return
	}
	var req struct {
		FileName string `json:"file_name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	submission, err := h.submissionService.RecordSubmission(c.Request.Context(), rd.UserID, challengeID, req.FileName)
	if err != nil {
		h.log.Error("CreateSubmission failed", "error", err, "challenge_id", challengeID, "user_id", rd.UserID)
		respondServiceError(c, "create_submission_failed", err)
		return
	}
	response.RespondCreated(c, submission)
}

// GET /api/challenges/:id/submissions
func (h *SubmissionHandler) ListSubmissions(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID == uuid.Nil {
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	challengeID, err := uuid.Parse(c.Param("id"))
	if err != nil || challengeID == uuid.Nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_challenge_id", err)
		return
	}
	submissions, err := h.submissionService.ListOwn(c.Request.Context(), rd.UserID, challengeID)
	if err != nil {
		h.log.Error("ListSubmissions failed", "error", err, "challenge_id", challengeID, "user_id", rd.UserID)
		respondServiceError(c, "list_submissions_failed", err)
		return
	}
	response.RespondOK(c, submissions)
}
