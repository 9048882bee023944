package gateway

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"accounthub/internal/envelope"
	"accounthub/internal/models"
	"accounthub/internal/rpc"
)

// ErrBadUpstreamData marks a success envelope whose payload is missing
// an expected field; translated to an internal error upstream.
var ErrBadUpstreamData = errors.New("service did not return expected data")

// AuthGatewayService composes downstream calls for the public auth
// surface. Registration is a two-phase saga across the user and auth
// services with a compensating profile delete when the second phase
// fails.
type AuthGatewayService struct {
	authClient *rpc.ServiceClient
	users      *UserGatewayService
	log        *zap.SugaredLogger
}

func NewAuthGatewayService(authClient *rpc.ServiceClient, users *UserGatewayService, log *zap.SugaredLogger) *AuthGatewayService {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &AuthGatewayService{authClient: authClient, users: users, log: log}
}

// dataField pulls a string field out of a success envelope's data object.
func dataField(sr *envelope.ServiceResponse, key string) (string, bool) {
	obj, ok := sr.Data.(map[string]any)
	if !ok {
		return "", false
	}
	v, ok := obj[key].(string)
	return v, ok && v != ""
}

func (s *AuthGatewayService) TestConnection(ctx context.Context) (*envelope.ServiceResponse, error) {
	return s.authClient.Send(ctx, "test_connection", struct{}{})
}

// RegisterUser creates the profile, then the credential. Phase order
// matters: the credential references the profile id. If the credential
// phase fails, the freshly created profile is deleted (best effort) so
// no orphan is left behind; the caller still sees the original failure.
func (s *AuthGatewayService) RegisterUser(ctx context.Context, req models.RegisterRequest) (*envelope.ServiceResponse, error) {
	s.log.Infow("starting user registration", "email", req.Email)

	userResp, err := s.users.CreateUser(ctx, models.CreateUserRequest{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
	})
	if err != nil {
		return nil, err
	}
	if !userResp.Success {
		return userResp, nil
	}

	userID, ok := dataField(userResp, "id")
	if !ok {
		return nil, errors.New("User Service " + ErrBadUpstreamData.Error())
	}
	s.log.Infow("user profile created", "userId", userID)

	authResp, err := s.authClient.Send(ctx, "register_user", models.RegisterAuthRequest{
		Email:           req.Email,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
		UserID:          userID,
	})
	if err != nil || !authResp.Success {
		s.compensateProfile(ctx, userID)
		if err != nil {
			return nil, err
		}
		return authResp, nil
	}

	s.log.Infow("auth user created", "userId", userID)
	return authResp, nil
}

// compensateProfile rolls back the profile-creation phase. Failures
// are logged, not propagated: the original error is what the caller
// must see.
func (s *AuthGatewayService) compensateProfile(ctx context.Context, userID string) {
	resp, err := s.users.DeleteUser(ctx, userID)
	if err != nil {
		s.log.Errorw("registration compensation failed", "userId", userID, "err", err)
		return
	}
	if !resp.Success {
		s.log.Errorw("registration compensation rejected", "userId", userID, "statusCode", resp.StatusCode)
		return
	}
	s.log.Infow("orphaned profile removed after failed registration", "userId", userID)
}

func (s *AuthGatewayService) LoginUser(ctx context.Context, req models.LoginRequest) (*envelope.ServiceResponse, error) {
	return s.authClient.Send(ctx, "login_user", req)
}

func (s *AuthGatewayService) RefreshToken(ctx context.Context, req models.RefreshTokenRequest) (*envelope.ServiceResponse, error) {
	return s.authClient.Send(ctx, "refresh_token", req)
}

func (s *AuthGatewayService) ResetPassword(ctx context.Context, req models.ForgotPasswordRequest) (*envelope.ServiceResponse, error) {
	return s.authClient.Send(ctx, "reset_password", req)
}

// SetNewPassword is two-phase: verify the reset token, then apply the
// new password for the subject the token names.
func (s *AuthGatewayService) SetNewPassword(ctx context.Context, req models.SetNewPasswordRequest) (*envelope.ServiceResponse, error) {
	verifyResp, err := s.authClient.Send(ctx, "verify_reset_token", models.VerifyResetTokenRequest{Token: req.Token})
	if err != nil {
		return nil, err
	}
	if !verifyResp.Success {
		return verifyResp, nil
	}

	userID, ok := dataField(verifyResp, "userId")
	if !ok {
		return nil, errors.New("Auth Service " + ErrBadUpstreamData.Error())
	}

	return s.authClient.Send(ctx, "set_new_password", models.SetNewPasswordInternalRequest{
		UserID:          userID,
		NewPassword:     req.NewPassword,
		ConfirmPassword: req.ConfirmPassword,
	})
}

func (s *AuthGatewayService) RequestEmailVerification(ctx context.Context, req models.RequestEmailVerificationRequest) (*envelope.ServiceResponse, error) {
	return s.authClient.Send(ctx, "request_email_verification", req)
}

func (s *AuthGatewayService) VerifyEmail(ctx context.Context, req models.VerifyEmailRequest) (*envelope.ServiceResponse, error) {
	return s.authClient.Send(ctx, "verify_email", req)
}
