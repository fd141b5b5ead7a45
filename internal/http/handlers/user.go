package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/dataarena/dataarena-backend/internal/http/response"
	"github.com/dataarena/dataarena-backend/internal/services"
)

type UserHandler struct {
	userService services.UserService
}

func NewUserHandler(userService services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// GET /api/me
func (uh *UserHandler) GetMe(c *gin.Context) {
	user, err := uh.userService.GetSelf(c.Request.Context())
	if err != nil {
		respondServiceError(c, "load_user_failed", err)
		return
	}
	response.RespondOK(c, user)
}
