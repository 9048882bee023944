package services

import (
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"accounthub/internal/models"
	"accounthub/internal/repositories"
	"accounthub/internal/utils"
)

// ErrUserDeleted marks operations against a soft-deleted profile.
var ErrUserDeleted = errors.New("account is already deleted")

// UserService owns the user profile entity. Credential state lives in
// the auth service; this side only knows the profile.
type UserService interface {
	CreateUser(req models.CreateUserRequest) (*models.User, error)
	GetUserByID(id string) (*models.User, error)
	GetUserByEmailOrID(email, id string) (*models.User, error)
	ListUsers(page, limit int, search string) (*models.UserPage, error)
	UpdateProfile(req models.UpdateUserProfileRequest) (*models.User, error)
	DeleteUser(id string) (*models.User, error)
}

type userService struct {
	repo repositories.UserRepository
	log  *zap.SugaredLogger
}

func NewUserService(repo repositories.UserRepository, log *zap.SugaredLogger) UserService {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &userService{repo: repo, log: log}
}

func (s *userService) CreateUser(req models.CreateUserRequest) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	existing, err := s.repo.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrDuplicateEmail
	}

	user := &models.User{
		ID:        utils.NewID(),
		FirstName: strings.TrimSpace(req.FirstName),
		LastName:  strings.TrimSpace(req.LastName),
		Email:     email,
		IsActive:  true,
	}
	if err := s.repo.Create(user); err != nil {
		return nil, err
	}

	s.log.Infow("user created", "userId", user.ID, "email", user.Email)
	return user, nil
}

func (s *userService) GetUserByID(id string) (*models.User, error) {
	user, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// GetUserByEmailOrID resolves by email when given, otherwise by id.
func (s *userService) GetUserByEmailOrID(email, id string) (*models.User, error) {
	var (
		user *models.User
		err  error
	)
	switch {
	case email != "":
		user, err = s.repo.GetByEmail(strings.ToLower(strings.TrimSpace(email)))
	case id != "":
		user, err = s.repo.GetByID(id)
	default:
		return nil, errors.New("either email or id must be provided")
	}
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (s *userService) ListUsers(page, limit int, search string) (*models.UserPage, error) {
	users, total, err := s.repo.List(page, limit, search)
	if err != nil {
		return nil, err
	}
	if users == nil {
		users = []*models.User{}
	}
	return &models.UserPage{Users: users, Total: total}, nil
}

func (s *userService) UpdateProfile(req models.UpdateUserProfileRequest) (*models.User, error) {
	user, err := s.GetUserByID(req.ID)
	if err != nil {
		return nil, err
	}
	if user.IsDeleted {
		return nil, ErrUserDeleted
	}

	if v := strings.TrimSpace(req.FirstName); v != "" {
		user.FirstName = v
	}
	if v := strings.TrimSpace(req.LastName); v != "" {
		user.LastName = v
	}
	if err := s.repo.Update(user); err != nil {
		return nil, err
	}

	s.log.Infow("user profile updated", "userId", user.ID)
	return user, nil
}

// DeleteUser soft-deletes: the row stays, the name is scrubbed and the
// email is re-pointed to a tombstone address so it can be reused.
func (s *userService) DeleteUser(id string) (*models.User, error) {
	user, err := s.GetUserByID(id)
	if err != nil {
		return nil, err
	}
	if user.IsDeleted {
		return nil, ErrUserDeleted
	}

	tombstone := "deleted_" + utils.NewID() + "@example.com"
	deleted, err := s.repo.SoftDelete(id, tombstone, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	if deleted == nil {
		return nil, ErrUserNotFound
	}

	s.log.Infow("user soft-deleted", "userId", id)
	return deleted, nil
}
