package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"accounthub/internal/envelope"
	"accounthub/internal/models"
	"accounthub/internal/rpc"
	"accounthub/internal/services"
)

// Envelope error codes shared by both services.
const (
	codeValidation       = "VALIDATION_ERROR"
	codeDuplicateEmail   = "USER_ALREADY_EXIST_WITH_EMAIL"
	codeInvalidCreds     = "INVALID_CREDENTIALS"
	codeAccountInactive  = "ACCOUNT_INACTIVE"
	codeUserNotFound     = "USER_NOT_FOUND"
	codeTokenExpired     = "TOKEN_EXPIRED"
	codeInvalidToken     = "INVALID_TOKEN"
	codeWrongTokenType   = "WRONG_TOKEN_TYPE"
	codeSameAsOld        = "NEW_PASSWORD_SAME_AS_OLD"
	codePasswordMismatch = "PASSWORD_MISMATCH"
	codeAlreadyVerified  = "EMAIL_ALREADY_VERIFIED"
)

const msgSomethingWentWrong = "Something went wrong, please try again"

// AuthHandler exposes the auth service command surface.
type AuthHandler struct {
	auth    services.AuthService
	factory *envelope.Factory
	log     *zap.SugaredLogger
}

func NewAuthHandler(auth services.AuthService, factory *envelope.Factory, log *zap.SugaredLogger) *AuthHandler {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &AuthHandler{auth: auth, factory: factory, log: log}
}

// Mount registers every auth command on the RPC server.
func (h *AuthHandler) Mount(s *rpc.Server) {
	s.Handle("test_connection", h.TestConnection)
	s.Handle("register_user", h.RegisterUser)
	s.Handle("login_user", h.LoginUser)
	s.Handle("refresh_token", h.RefreshToken)
	s.Handle("reset_password", h.ResetPassword)
	s.Handle("verify_reset_token", h.VerifyResetToken)
	s.Handle("set_new_password", h.SetNewPassword)
	s.Handle("request_email_verification", h.RequestEmailVerification)
	s.Handle("verify_email", h.VerifyEmail)
}

func (h *AuthHandler) TestConnection(requestID string, _ json.RawMessage) envelope.ServiceResponse {
	return h.factory.Success(map[string]any{
		"status":    "connected",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}, "Successfully connected to Auth Service", requestID)
}

func (h *AuthHandler) RegisterUser(requestID string, data json.RawMessage) envelope.ServiceResponse {
	var req models.RegisterAuthRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return h.factory.Error(codeValidation, "malformed register payload", http.StatusBadRequest, err.Error(), requestID)
	}
	if req.Email == "" || req.Password == "" || req.UserID == "" {
		return h.factory.Error(codeValidation, "email, password and userId are required", http.StatusBadRequest, nil, requestID)
	}
	if len(req.Password) < 6 {
		return h.factory.Error(codeValidation, "password must be at least 6 characters", http.StatusBadRequest, nil, requestID)
	}
	if req.Password != req.ConfirmPassword {
		return h.factory.Error(codePasswordMismatch, "passwords do not match", http.StatusBadRequest, nil, requestID)
	}

	session, err := h.auth.Register(req)
	if err != nil {
		if errors.Is(err, services.ErrDuplicateEmail) {
			return h.factory.Error(codeDuplicateEmail,
				"User with email "+req.Email+" already exists",
				http.StatusConflict, map[string]string{"email": req.Email}, requestID)
		}
		h.log.Errorw("register_user failed", "requestId", requestID, "err", err)
		return h.factory.ServerError(msgSomethingWentWrong, err.Error(), requestID)
	}

	h.log.Infow("auth user registered", "requestId", requestID, "email", session.User.Email)
	return h.factory.Success(session, "User registered successfully", requestID)
}

func (h *AuthHandler) LoginUser(requestID string, data json.RawMessage) envelope.ServiceResponse {
	var req models.LoginRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return h.factory.Error(codeValidation, "malformed login payload", http.StatusBadRequest, err.Error(), requestID)
	}
	if req.Email == "" || req.Password == "" {
		return h.factory.Error(codeValidation, "email and password are required", http.StatusBadRequest, nil, requestID)
	}

	session, err := h.auth.Login(req)
	if err != nil {
		switch {
		// unknown email and wrong password answer identically on the
		// wire; the engine still distinguishes them internally
		case errors.Is(err, services.ErrInvalidCredentials), errors.Is(err, services.ErrUserNotFound):
			return h.factory.Error(codeInvalidCreds,
				"Incorrect credentials for "+req.Email,
				http.StatusUnauthorized, map[string]string{"email": req.Email}, requestID)
		case errors.Is(err, services.ErrAccountInactive):
			return h.factory.Error(codeAccountInactive,
				"Account is inactive. Please contact support for assistance.",
				http.StatusUnauthorized, map[string]string{"email": req.Email}, requestID)
		default:
			h.log.Errorw("login_user failed", "requestId", requestID, "err", err)
			return h.factory.ServerError(msgSomethingWentWrong, err.Error(), requestID)
		}
	}

	h.log.Infow("user logged in", "requestId", requestID, "email", session.User.Email)
	return h.factory.Success(session, "Login successful", requestID)
}

func (h *AuthHandler) RefreshToken(requestID string, data json.RawMessage) envelope.ServiceResponse {
	var req models.RefreshTokenRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return h.factory.Error(codeValidation, "malformed refresh payload", http.StatusBadRequest, err.Error(), requestID)
	}
	if req.RefreshToken == "" {
		return h.factory.Error(codeValidation, "refreshToken is required", http.StatusBadRequest, nil, requestID)
	}

	session, err := h.auth.Refresh(req.RefreshToken)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrRefreshTokenExpired):
			return h.factory.Error(codeTokenExpired,
				"Refresh token has expired. Please login again.",
				http.StatusUnauthorized, nil, requestID)
		case errors.Is(err, services.ErrInvalidRefreshToken):
			return h.factory.Error(codeInvalidToken,
				"Invalid refresh token provided",
				http.StatusUnauthorized, nil, requestID)
		case errors.Is(err, services.ErrInvalidCredentials):
			// a rotated-out token: cryptographically valid but no
			// longer the stored one
			return h.factory.Error(codeInvalidCreds,
				"Refresh token is no longer valid",
				http.StatusUnauthorized, nil, requestID)
		case errors.Is(err, services.ErrUserNotFound):
			return h.factory.Error(codeUserNotFound, "User not found", http.StatusNotFound, nil, requestID)
		default:
			h.log.Errorw("refresh_token failed", "requestId", requestID, "err", err)
			return h.factory.ServerError(msgSomethingWentWrong, err.Error(), requestID)
		}
	}

	return h.factory.Success(session, "Token refreshed successfully", requestID)
}

func (h *AuthHandler) ResetPassword(requestID string, data json.RawMessage) envelope.ServiceResponse {
	var req models.ForgotPasswordRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return h.factory.Error(codeValidation, "malformed reset payload", http.StatusBadRequest, err.Error(), requestID)
	}
	if req.Email == "" {
		return h.factory.Error(codeValidation, "email is required", http.StatusBadRequest, nil, requestID)
	}

	resetToken, err := h.auth.RequestPasswordReset(req.Email)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			return h.factory.Error(codeUserNotFound,
				"User with email "+req.Email+" not found",
				http.StatusNotFound, map[string]string{"email": req.Email}, requestID)
		}
		h.log.Errorw("reset_password failed", "requestId", requestID, "err", err)
		return h.factory.ServerError(msgSomethingWentWrong, err.Error(), requestID)
	}

	return h.factory.Success(map[string]string{
		"token":   resetToken,
		"message": "Reset password token sent successfully",
	}, "Password reset token issued", requestID)
}

func (h *AuthHandler) VerifyResetToken(requestID string, data json.RawMessage) envelope.ServiceResponse {
	var req models.VerifyResetTokenRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return h.factory.Error(codeValidation, "malformed verify payload", http.StatusBadRequest, err.Error(), requestID)
	}
	if req.Token == "" {
		return h.factory.Error(codeValidation, "token is required", http.StatusBadRequest, nil, requestID)
	}

	claims, err := h.auth.VerifyResetToken(req.Token)
	if err != nil {
		return h.tokenError(err, requestID)
	}

	return h.factory.Success(map[string]string{
		"userId":  claims.Subject,
		"email":   claims.Email,
		"message": "Reset token is valid",
	}, "Reset token verified", requestID)
}

func (h *AuthHandler) SetNewPassword(requestID string, data json.RawMessage) envelope.ServiceResponse {
	var req models.SetNewPasswordInternalRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return h.factory.Error(codeValidation, "malformed payload", http.StatusBadRequest, err.Error(), requestID)
	}
	if req.UserID == "" || req.NewPassword == "" {
		return h.factory.Error(codeValidation, "userId and newPassword are required", http.StatusBadRequest, nil, requestID)
	}

	if err := h.auth.SetNewPassword(req); err != nil {
		switch {
		case errors.Is(err, services.ErrUserNotFound):
			return h.factory.Error(codeUserNotFound, "User not found", http.StatusNotFound, nil, requestID)
		case errors.Is(err, services.ErrNewPasswordSameAsOld):
			return h.factory.Error(codeSameAsOld,
				"New password should be different from old password",
				http.StatusBadRequest, nil, requestID)
		case errors.Is(err, services.ErrPasswordMismatch):
			return h.factory.Error(codePasswordMismatch, "Passwords do not match", http.StatusBadRequest, nil, requestID)
		default:
			h.log.Errorw("set_new_password failed", "requestId", requestID, "err", err)
			return h.factory.ServerError(msgSomethingWentWrong, err.Error(), requestID)
		}
	}

	return h.factory.Success(map[string]string{"message": "Password updated successfully"}, "Password updated", requestID)
}

func (h *AuthHandler) RequestEmailVerification(requestID string, data json.RawMessage) envelope.ServiceResponse {
	var req models.RequestEmailVerificationRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return h.factory.Error(codeValidation, "malformed payload", http.StatusBadRequest, err.Error(), requestID)
	}
	if req.Email == "" {
		return h.factory.Error(codeValidation, "email is required", http.StatusBadRequest, nil, requestID)
	}

	verificationToken, err := h.auth.RequestEmailVerification(req.Email)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUserNotFound):
			return h.factory.Error(codeUserNotFound,
				"User with email "+req.Email+" not found",
				http.StatusNotFound, nil, requestID)
		case errors.Is(err, services.ErrEmailAlreadyVerified):
			return h.factory.Error(codeAlreadyVerified, "Email is already verified", http.StatusBadRequest, nil, requestID)
		default:
			h.log.Errorw("request_email_verification failed", "requestId", requestID, "err", err)
			return h.factory.ServerError(msgSomethingWentWrong, err.Error(), requestID)
		}
	}

	return h.factory.Success(map[string]string{
		"token":   verificationToken,
		"message": "Verification token sent successfully",
	}, "Verification token issued", requestID)
}

func (h *AuthHandler) VerifyEmail(requestID string, data json.RawMessage) envelope.ServiceResponse {
	var req models.VerifyEmailRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return h.factory.Error(codeValidation, "malformed payload", http.StatusBadRequest, err.Error(), requestID)
	}
	if req.Token == "" {
		return h.factory.Error(codeValidation, "token is required", http.StatusBadRequest, nil, requestID)
	}

	cred, err := h.auth.VerifyEmail(req.Token)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUserNotFound):
			return h.factory.Error(codeUserNotFound, "User not found", http.StatusNotFound, nil, requestID)
		case errors.Is(err, services.ErrEmailAlreadyVerified):
			return h.factory.Error(codeAlreadyVerified, "Email is already verified", http.StatusBadRequest, nil, requestID)
		default:
			return h.tokenError(err, requestID)
		}
	}

	return h.factory.Success(map[string]any{
		"user":    cred,
		"message": "Email verified successfully",
	}, "Email verified", requestID)
}

// tokenError maps the three verification outcomes that are never
// allowed to blur into each other.
func (h *AuthHandler) tokenError(err error, requestID string) envelope.ServiceResponse {
	switch {
	case errors.Is(err, services.ErrTokenExpired):
		return h.factory.Error(codeTokenExpired, "Token has expired", http.StatusUnauthorized, nil, requestID)
	case errors.Is(err, services.ErrWrongTokenType):
		return h.factory.Error(codeWrongTokenType,
			"Token was issued for a different purpose",
			http.StatusUnauthorized, nil, requestID)
	case errors.Is(err, services.ErrInvalidToken):
		return h.factory.Error(codeInvalidToken, "Invalid token provided", http.StatusUnauthorized, nil, requestID)
	default:
		h.log.Errorw("token verification failed", "requestId", requestID, "err", err)
		return h.factory.ServerError(msgSomethingWentWrong, err.Error(), requestID)
	}
}
