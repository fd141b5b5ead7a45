package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/dataarena/dataarena-backend/internal/http/response"
	"github.com/dataarena/dataarena-backend/internal/platform/logger"
	"github.com/dataarena/dataarena-backend/internal/services"
)

type ChallengeHandler struct {
	log              *logger.Logger
	challengeService services.ChallengeService
}

func NewChallengeHandler(log *logger.Logger, challengeService services.ChallengeService) *ChallengeHandler {
	return &ChallengeHandler{
		log:              log.With("handler", "ChallengeHandler"),
		challengeService: challengeService,
	}
}

// GET /api/challenges
func (h *ChallengeHandler) ListChallenges(c *gin.Context) {
	challenges, err := h.challengeService.ListChallenges(c.Request.Context())
	if err != nil {
		h.log.Error("ListChallenges failed", "error", err)
		respondServiceError(c, "list_challenges_failed", err)
		return
	}
	response.RespondOK(c, challenges)
}

// GET /api/challenges/:id
func (h *ChallengeHandler) GetChallenge(c *gin.Context) {
	challengeID, err := uuid.Parse(c.Param("id"))
	if err != nil || challengeID == uuid.Nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_challenge_id", err)
		return
	}
	challenge, err := h.challengeService.GetChallenge(c.Request.Context(), challengeID)
	if err != nil {
		respondServiceError(c, "load_challenge_failed", err)
		return
	}
	response.RespondOK(c, challenge)
}

// POST /api/challenges (admin)
func (h *ChallengeHandler) CreateChallenge(c *gin.Context) {
	var in services.ChallengeInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	challenge, err := h.challengeService.CreateChallenge(c.Request.Context(), in)
	if err != nil {
		h.log.Error("CreateChallenge failed", "error", err)
		respondServiceError(c, "create_challenge_failed", err)
		return
	}
	response.RespondCreated(c, challenge)
}

// PUT /api/challenges/:id (admin)
func (h *ChallengeHandler) UpdateChallenge(c *gin.Context) {
	challengeID, err := uuid.Parse(c.Param("id"))
	if err != nil || challengeID == uuid.Nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_challenge_id", err)
		return
	}
	var in services.ChallengeInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	challenge, err := h.challengeService.UpdateChallenge(c.Request.Context(), challengeID, in)
	if err != nil {
		h.log.Error("UpdateChallenge failed", "error", err, "challenge_id", challengeID)
		respondServiceError(c, "update_challenge_failed", err)
		return
	}
	response.RespondOK(c, challenge)
}
