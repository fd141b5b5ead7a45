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

type CertificateHandler struct {
	log                *logger.Logger
	certificateService services.CertificateService
}

func NewCertificateHandler(log *logger.Logger, certificateService services.CertificateService) *CertificateHandler {
	return &CertificateHandler{
		log:                log.With("handler", "CertificateHandler"),
		certificateService: certificateService,
	}
}

// GET /api/challenges/:id/certificate
func (h *CertificateHandler) GetEligibility(c *gin.Context) {
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
	eligibility, err := h.certificateService.Eligibility(c.Request.Context(), rd.UserID, challengeID)
	if err != nil {
		h.log.Error("GetEligibility failed", "error", err, "challenge_id", challengeID, "user_id", rd.UserID)
		respondServiceError(c, "certificate_eligibility_failed", err)
		return
	}
	response.RespondOK(c, eligibility)
}
