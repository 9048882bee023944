package gateway

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"accounthub/internal/models"
)

// UserGatewayHandler is the public HTTP surface for user profiles.
// Everything here sits behind the access-token middleware.
type UserGatewayHandler struct {
	svc *UserGatewayService
	log *zap.SugaredLogger
}

func NewUserGatewayHandler(svc *UserGatewayService, log *zap.SugaredLogger) *UserGatewayHandler {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &UserGatewayHandler{svc: svc, log: log}
}

// @Summary      List users
// @Tags         Users
// @Produce      json
// @Param        page   query int    false "Page number"
// @Param        limit  query int    false "Page size"
// @Param        search query string false "Name or email filter"
// @Success      200 {object} envelope.APIResponse
// @Security     BearerAuth
// @Router       /public/users [get]
func (h *UserGatewayHandler) ListUsers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	sr, err := h.svc.ListUsers(c.Request.Context(), models.ListUsersRequest{
		Page:   page,
		Limit:  limit,
		Search: c.Query("search"),
	})
	respond(c, sr, err, "listing users", "Users fetched successfully")
}

// @Summary      Get a user by id
// @Tags         Users
// @Produce      json
// @Param        id path string true "User id"
// @Success      200 {object} envelope.APIResponse
// @Failure      404 {object} envelope.APIResponse
// @Security     BearerAuth
// @Router       /public/users/{id} [get]
func (h *UserGatewayHandler) GetUser(c *gin.Context) {
	sr, err := h.svc.GetUser(c.Request.Context(), c.Param("id"))
	respond(c, sr, err, "fetching user", "User fetched successfully")
}

// @Summary      Update a user profile
// @Tags         Users
// @Accept       json
// @Produce      json
// @Param        id      path string                          true "User id"
// @Param        profile body models.UpdateUserProfileRequest true "Profile fields"
// @Success      200 {object} envelope.APIResponse
// @Failure      404 {object} envelope.APIResponse
// @Security     BearerAuth
// @Router       /public/users/{id} [put]
func (h *UserGatewayHandler) UpdateUser(c *gin.Context) {
	var req models.UpdateUserProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	req.ID = c.Param("id")

	sr, err := h.svc.UpdateProfile(c.Request.Context(), req)
	respond(c, sr, err, "updating user", "User profile updated successfully")
}

// @Summary      Soft-delete a user
// @Tags         Users
// @Produce      json
// @Param        id path string true "User id"
// @Success      200 {object} envelope.APIResponse
// @Failure      404 {object} envelope.APIResponse
// @Security     BearerAuth
// @Router       /public/users/{id} [delete]
func (h *UserGatewayHandler) DeleteUser(c *gin.Context) {
	h.log.Infow("delete user request received", "userId", c.Param("id"))
	sr, err := h.svc.DeleteUser(c.Request.Context(), c.Param("id"))
	respond(c, sr, err, "deleting user", "User deleted successfully")
}
