package models

// Typed request/response DTOs, one per command. Payloads are closed
// shapes validated at the boundary before they reach workflow logic.

// ---- auth service commands

type RegisterAuthRequest struct {
	Email           string `json:"email" binding:"required,email"`
	Password        string `json:"password" binding:"required,min=6"`
	ConfirmPassword string `json:"confirmPassword" binding:"required"`
	UserID          string `json:"userId" binding:"required"`
}

type LoginRequest struct {
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required"`
	RememberMe bool   `json:"rememberMe"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type VerifyResetTokenRequest struct {
	Token string `json:"token" binding:"required"`
}

type SetNewPasswordInternalRequest struct {
	UserID          string `json:"userId" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=6"`
	ConfirmPassword string `json:"confirmPassword" binding:"required"`
}

type RequestEmailVerificationRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type VerifyEmailRequest struct {
	Token string `json:"token" binding:"required"`
}

// ---- user service commands

type CreateUserRequest struct {
	FirstName string `json:"firstName" binding:"required,min=2"`
	LastName  string `json:"lastName" binding:"required,min=2"`
	Email     string `json:"email" binding:"required,email"`
}

type GetUserRequest struct {
	ID string `json:"id" binding:"required"`
}

// GetUserByEmailOrIDRequest requires at least one of the two fields.
type GetUserByEmailOrIDRequest struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

type ListUsersRequest struct {
	Page   int    `json:"page"`
	Limit  int    `json:"limit"`
	Search string `json:"search"`
}

// UpdateUserProfileRequest carries the target id out of band at the
// gateway (path parameter), so it is not part of body validation.
type UpdateUserProfileRequest struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type DeleteUserRequest struct {
	ID string `json:"id" binding:"required"`
}

// ---- gateway public requests

type RegisterRequest struct {
	FirstName       string `json:"firstName" binding:"required,min=2"`
	LastName        string `json:"lastName" binding:"required,min=2"`
	Email           string `json:"email" binding:"required,email"`
	Password        string `json:"password" binding:"required,min=6"`
	ConfirmPassword string `json:"confirmPassword" binding:"required"`
}

type SetNewPasswordRequest struct {
	Token           string `json:"token" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=6"`
	ConfirmPassword string `json:"confirmPassword" binding:"required"`
}
