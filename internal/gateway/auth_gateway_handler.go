package gateway

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"accounthub/internal/envelope"
	"accounthub/internal/models"
)

// AuthGatewayHandler is the public HTTP surface for the auth flows.
type AuthGatewayHandler struct {
	svc *AuthGatewayService
	log *zap.SugaredLogger
}

func NewAuthGatewayHandler(svc *AuthGatewayService, log *zap.SugaredLogger) *AuthGatewayHandler {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &AuthGatewayHandler{svc: svc, log: log}
}

// respond translates the downstream outcome into the public envelope:
// transport failures become 503, everything else is re-shaped from the
// internal envelope.
func respond(c *gin.Context, sr *envelope.ServiceResponse, err error, operation, successMsg string) {
	if err != nil {
		api := envelope.APIError("Service unavailable for "+operation, http.StatusServiceUnavailable, c.Request.URL.Path)
		c.JSON(api.StatusCode, api)
		return
	}
	api := envelope.FromService(sr, successMsg, c.Request.URL.Path)
	c.JSON(api.StatusCode, api)
}

func badRequest(c *gin.Context, err error) {
	api := envelope.APIError(err.Error(), http.StatusBadRequest, c.Request.URL.Path)
	c.JSON(api.StatusCode, api)
}

// @Summary      Auth service connectivity check
// @Tags         Auth
// @Produce      json
// @Success      200 {object} envelope.APIResponse
// @Router       /public/auth/test-connection [get]
func (h *AuthGatewayHandler) TestConnection(c *gin.Context) {
	sr, err := h.svc.TestConnection(c.Request.Context())
	respond(c, sr, err, "connection test", "Successfully connected to Auth Service")
}

// @Summary      Register a new user
// @Description  Creates the user profile and its auth credential, returns a token pair
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        registration body models.RegisterRequest true "Registration data"
// @Success      200 {object} envelope.APIResponse
// @Failure      400 {object} envelope.APIResponse
// @Failure      409 {object} envelope.APIResponse
// @Router       /public/auth/register [post]
func (h *AuthGatewayHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if req.Password != req.ConfirmPassword {
		api := envelope.APIError("Passwords do not match", http.StatusBadRequest, c.Request.URL.Path)
		c.JSON(api.StatusCode, api)
		return
	}

	h.log.Infow("registration request received", "email", req.Email)
	sr, err := h.svc.RegisterUser(c.Request.Context(), req)
	respond(c, sr, err, "user registration", "User registration successful")
}

// @Summary      Login
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        login body models.LoginRequest true "Login data"
// @Success      200 {object} envelope.APIResponse
// @Failure      401 {object} envelope.APIResponse
// @Router       /public/auth/login [post]
func (h *AuthGatewayHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	h.log.Infow("login request received", "email", req.Email)
	sr, err := h.svc.LoginUser(c.Request.Context(), req)
	respond(c, sr, err, "login", "User login successful")
}

// @Summary      Rotate a refresh token
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        refresh body models.RefreshTokenRequest true "Refresh token"
// @Success      200 {object} envelope.APIResponse
// @Failure      401 {object} envelope.APIResponse
// @Router       /public/auth/refresh-token [post]
func (h *AuthGatewayHandler) RefreshToken(c *gin.Context) {
	var req models.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	sr, err := h.svc.RefreshToken(c.Request.Context(), req)
	respond(c, sr, err, "token refresh", "Token refresh successful")
}

// @Summary      Request a password reset token
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        reset body models.ForgotPasswordRequest true "Account email"
// @Success      200 {object} envelope.APIResponse
// @Failure      404 {object} envelope.APIResponse
// @Router       /public/auth/reset-password [post]
func (h *AuthGatewayHandler) ResetPassword(c *gin.Context) {
	var req models.ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	sr, err := h.svc.ResetPassword(c.Request.Context(), req)
	respond(c, sr, err, "password reset", "Password reset successful")
}

// @Summary      Apply a verified password reset
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        password body models.SetNewPasswordRequest true "Reset token and new password"
// @Success      200 {object} envelope.APIResponse
// @Failure      400 {object} envelope.APIResponse
// @Failure      401 {object} envelope.APIResponse
// @Router       /public/auth/set-new-password [post]
func (h *AuthGatewayHandler) SetNewPassword(c *gin.Context) {
	var req models.SetNewPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	sr, err := h.svc.SetNewPassword(c.Request.Context(), req)
	respond(c, sr, err, "setting new password", "Password updated successfully")
}

// @Summary      Request an email verification token
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        verification body models.RequestEmailVerificationRequest true "Account email"
// @Success      200 {object} envelope.APIResponse
// @Router       /public/auth/request-verification [post]
func (h *AuthGatewayHandler) RequestEmailVerification(c *gin.Context) {
	var req models.RequestEmailVerificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	sr, err := h.svc.RequestEmailVerification(c.Request.Context(), req)
	respond(c, sr, err, "email verification request", "Verification token issued")
}

// @Summary      Confirm an email address
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        verification body models.VerifyEmailRequest true "Verification token"
// @Success      200 {object} envelope.APIResponse
// @Failure      401 {object} envelope.APIResponse
// @Router       /public/auth/verify-email [post]
func (h *AuthGatewayHandler) VerifyEmail(c *gin.Context) {
	var req models.VerifyEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	sr, err := h.svc.VerifyEmail(c.Request.Context(), req)
	respond(c, sr, err, "email verification", "Email verified successfully")
}
