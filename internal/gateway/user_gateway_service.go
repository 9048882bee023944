package gateway

import (
	"context"

	"go.uber.org/zap"

	"accounthub/internal/envelope"
	"accounthub/internal/models"
	"accounthub/internal/rpc"
)

// UserGatewayService forwards user commands to the user service.
type UserGatewayService struct {
	client *rpc.ServiceClient
	log    *zap.SugaredLogger
}

func NewUserGatewayService(client *rpc.ServiceClient, log *zap.SugaredLogger) *UserGatewayService {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &UserGatewayService{client: client, log: log}
}

func (s *UserGatewayService) TestConnection(ctx context.Context) (*envelope.ServiceResponse, error) {
	return s.client.Send(ctx, "test_connection", struct{}{})
}

func (s *UserGatewayService) CreateUser(ctx context.Context, req models.CreateUserRequest) (*envelope.ServiceResponse, error) {
	return s.client.Send(ctx, "create_user", req)
}

func (s *UserGatewayService) GetUser(ctx context.Context, id string) (*envelope.ServiceResponse, error) {
	return s.client.Send(ctx, "get_user", models.GetUserRequest{ID: id})
}

func (s *UserGatewayService) GetUserByEmailOrID(ctx context.Context, email, id string) (*envelope.ServiceResponse, error) {
	return s.client.Send(ctx, "get_user_by_email_or_id", models.GetUserByEmailOrIDRequest{Email: email, ID: id})
}

func (s *UserGatewayService) ListUsers(ctx context.Context, req models.ListUsersRequest) (*envelope.ServiceResponse, error) {
	return s.client.Send(ctx, "get_all_users", req)
}

func (s *UserGatewayService) UpdateProfile(ctx context.Context, req models.UpdateUserProfileRequest) (*envelope.ServiceResponse, error) {
	return s.client.Send(ctx, "update_user_profile", req)
}

func (s *UserGatewayService) DeleteUser(ctx context.Context, id string) (*envelope.ServiceResponse, error) {
	return s.client.Send(ctx, "delete_user", models.DeleteUserRequest{ID: id})
}
