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

const codeUserDeleted = "USER_ALREADY_DELETED"

// UserHandler exposes the user service command surface.
type UserHandler struct {
	users   services.UserService
	factory *envelope.Factory
	log     *zap.SugaredLogger
}

func NewUserHandler(users services.UserService, factory *envelope.Factory, log *zap.SugaredLogger) *UserHandler {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &UserHandler{users: users, factory: factory, log: log}
}

func (h *UserHandler) Mount(s *rpc.Server) {
	s.Handle("test_connection", h.TestConnection)
	s.Handle("create_user", h.CreateUser)
	s.Handle("get_user", h.GetUser)
	s.Handle("get_user_by_email_or_id", h.GetUserByEmailOrID)
	s.Handle("get_all_users", h.GetAllUsers)
	s.Handle("update_user_profile", h.UpdateUserProfile)
	s.Handle("delete_user", h.DeleteUser)
}

func (h *UserHandler) TestConnection(requestID string, _ json.RawMessage) envelope.ServiceResponse {
	return h.factory.Success(map[string]any{
		"status":    "connected",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}, "Successfully connected to User Service", requestID)
}

func (h *UserHandler) CreateUser(requestID string, data json.RawMessage) envelope.ServiceResponse {
	var req models.CreateUserRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return h.factory.Error(codeValidation, "malformed create payload", http.StatusBadRequest, err.Error(), requestID)
	}
	if req.Email == "" {
		return h.factory.Error(codeValidation, "email is required", http.StatusBadRequest, nil, requestID)
	}
	if len(req.FirstName) < 2 {
		return h.factory.Error(codeValidation, "First name must be at least 2 characters long", http.StatusBadRequest, nil, requestID)
	}
	if len(req.LastName) < 2 {
		return h.factory.Error(codeValidation, "Last name must be at least 2 characters long", http.StatusBadRequest, nil, requestID)
	}

	user, err := h.users.CreateUser(req)
	if err != nil {
		if errors.Is(err, services.ErrDuplicateEmail) {
			return h.factory.Error(codeDuplicateEmail,
				"User with email "+req.Email+" already exists",
				http.StatusConflict, map[string]string{"email": req.Email}, requestID)
		}
		h.log.Errorw("create_user failed", "requestId", requestID, "err", err)
		return h.factory.ServerError(msgSomethingWentWrong, err.Error(), requestID)
	}

	h.log.Infow("user created", "requestId", requestID, "userId", user.ID)
	return h.factory.Success(user, "User created successfully", requestID)
}

func (h *UserHandler) GetUser(requestID string, data json.RawMessage) envelope.ServiceResponse {
	var req models.GetUserRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return h.factory.Error(codeValidation, "malformed payload", http.StatusBadRequest, err.Error(), requestID)
	}
	if req.ID == "" {
		return h.factory.Error(codeValidation, "User ID is required", http.StatusBadRequest, nil, requestID)
	}

	user, err := h.users.GetUserByID(req.ID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			return h.factory.Error(codeUserNotFound,
				"User with ID "+req.ID+" not found",
				http.StatusNotFound, nil, requestID)
		}
		h.log.Errorw("get_user failed", "requestId", requestID, "err", err)
		return h.factory.ServerError(msgSomethingWentWrong, err.Error(), requestID)
	}
	return h.factory.Success(user, "User fetched successfully", requestID)
}

func (h *UserHandler) GetUserByEmailOrID(requestID string, data json.RawMessage) envelope.ServiceResponse {
	var req models.GetUserByEmailOrIDRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return h.factory.Error(codeValidation, "malformed payload", http.StatusBadRequest, err.Error(), requestID)
	}
	if req.Email == "" && req.ID == "" {
		return h.factory.Error(codeValidation, "Either email or id must be provided", http.StatusBadRequest, nil, requestID)
	}

	user, err := h.users.GetUserByEmailOrID(req.Email, req.ID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			return h.factory.Error(codeUserNotFound, "User not found", http.StatusNotFound, nil, requestID)
		}
		h.log.Errorw("get_user_by_email_or_id failed", "requestId", requestID, "err", err)
		return h.factory.ServerError(msgSomethingWentWrong, err.Error(), requestID)
	}
	return h.factory.Success(user, "User fetched successfully", requestID)
}

func (h *UserHandler) GetAllUsers(requestID string, data json.RawMessage) envelope.ServiceResponse {
	req := models.ListUsersRequest{Page: 1, Limit: 10}
	if len(data) > 0 {
		if err := json.Unmarshal(data, &req); err != nil {
			return h.factory.Error(codeValidation, "malformed payload", http.StatusBadRequest, err.Error(), requestID)
		}
	}

	page, err := h.users.ListUsers(req.Page, req.Limit, req.Search)
	if err != nil {
		h.log.Errorw("get_all_users failed", "requestId", requestID, "err", err)
		return h.factory.ServerError(msgSomethingWentWrong, err.Error(), requestID)
	}
	return h.factory.Success(page, "Users fetched successfully", requestID)
}

func (h *UserHandler) UpdateUserProfile(requestID string, data json.RawMessage) envelope.ServiceResponse {
	var req models.UpdateUserProfileRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return h.factory.Error(codeValidation, "malformed payload", http.StatusBadRequest, err.Error(), requestID)
	}
	if req.ID == "" {
		return h.factory.Error(codeValidation, "User ID is required", http.StatusBadRequest, nil, requestID)
	}

	user, err := h.users.UpdateProfile(req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUserNotFound):
			return h.factory.Error(codeUserNotFound,
				"User with ID "+req.ID+" not found",
				http.StatusNotFound, nil, requestID)
		case errors.Is(err, services.ErrUserDeleted):
			return h.factory.Error(codeUserDeleted, "Account is already deleted", http.StatusBadRequest, nil, requestID)
		default:
			h.log.Errorw("update_user_profile failed", "requestId", requestID, "err", err)
			return h.factory.ServerError(msgSomethingWentWrong, err.Error(), requestID)
		}
	}
	return h.factory.Success(user, "User profile updated successfully", requestID)
}

func (h *UserHandler) DeleteUser(requestID string, data json.RawMessage) envelope.ServiceResponse {
	var req models.DeleteUserRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return h.factory.Error(codeValidation, "malformed payload", http.StatusBadRequest, err.Error(), requestID)
	}
	if req.ID == "" {
		return h.factory.Error(codeValidation, "User ID is required", http.StatusBadRequest, nil, requestID)
	}

	user, err := h.users.DeleteUser(req.ID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUserNotFound):
			return h.factory.Error(codeUserNotFound,
				"User with ID "+req.ID+" not found",
				http.StatusNotFound, nil, requestID)
		case errors.Is(err, services.ErrUserDeleted):
			return h.factory.Error(codeUserDeleted, "Account is already deleted", http.StatusBadRequest, nil, requestID)
		default:
			h.log.Errorw("delete_user failed", "requestId", requestID, "err", err)
			return h.factory.ServerError(msgSomethingWentWrong, err.Error(), requestID)
		}
	}
	return h.factory.Success(user, "User deleted successfully", requestID)
}
