package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dataarena/dataarena-backend/internal/http/response"
	"github.com/dataarena/dataarena-backend/internal/services"
)

type ContactHandler struct {
	contactService services.ContactService
}

func NewContactHandler(contactService services.ContactService) *ContactHandler {
	return &ContactHandler{contactService: contactService}
}

// POST /api/contact
func (h *ContactHandler) SubmitMessage(c *gin.Context) {
	var req struct {
		Name    string `json:"name"`
		Email   string `json:"email"`
		Message string `json:"message"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	msg, err := h.contactService.SubmitMessage(c.Request.Context(), req.Name, req.Email, req.Message)
	if err != nil {
		respondServiceError(c, "contact_failed", err)
		return
	}
	response.RespondCreated(c, msg)
}
