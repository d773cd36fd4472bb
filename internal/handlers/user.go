package handlers

import (
	"errors"

	"github.com/dimitrije/signshop-api/internal/middleware"
	"github.com/dimitrije/signshop-api/internal/models"
	"github.com/dimitrije/signshop-api/internal/services"
	"github.com/dimitrije/signshop-api/pkg/dto"
	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
)

type UserHandler struct {
	userService UserServiceInterface
}

func NewUserHandler(userService UserServiceInterface) *UserHandler {
	return &UserHandler{userService: userService}
}

func toUserResponse(u *models.User) dto.UserResponse {
	return dto.UserResponse{
		ID:          u.ID,
		Email:       u.Email,
		Name:        u.Name,
		AvatarURL:   u.AvatarURL,
		Provider:    u.Provider,
		GlobalRole:  u.GlobalRole,
		IsAdmin:     u.IsSuperAdmin(),
		MemberSince: u.CreatedAt,
	}
}

func (h *UserHandler) GetMe(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	user, err := h.userService.GetByID(c.Request.Context(), userID)
	if err != nil {
		c.NotFound("user not found")
		return
	}

	_ = c.JSON(200, toUserResponse(user))
}

func (h *UserHandler) UpdateMe(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	var req dto.UpdateUserRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	name, err := models.NormalizeUserName(req.Name)
	if err != nil {
		c.BadRequest(err.Error())
		return
	}

	user, err := h.userService.Update(c.Request.Context(), userID, name)
	if errors.Is(err, services.ErrUserNotFound) {
		c.NotFound("user not found")
		return
	}
	if err != nil {
		c.InternalServerError("failed to update user")
		return
	}

	_ = c.JSON(200, toUserResponse(user))
}
