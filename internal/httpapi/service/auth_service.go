package service

import (
	"errors"

	"cinelog/internal/auth"
	"cinelog/internal/httpapi/models"
	"cinelog/internal/httpapi/repository"
)

var (
	ErrUsernameTaken   = errors.New("username already in use")
	ErrUserNotFound    = errors.New("user not found")
	ErrInvalidPassword = errors.New("invalid password")
)

type AuthService interface {
	Register(username, password string) (*models.User, error)
	Login(username, password string) (*models.User, error)
}

type authService struct {
	users repository.UserRepository
}

func NewAuthService(users repository.UserRepository) AuthService {
	return &authService{users: users}
}

// Register hashes the password and inserts the user. Uniqueness rides on the
// users.username constraint, so two concurrent registrations with the same
// name cannot both win; the loser sees ErrUsernameTaken.
func (s *authService) Register(username, password string) (*models.User, error) {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:     username,
		PasswordHash: hash,
	}
	if err := s.users.Create(user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrUsernameTaken
		}
		return nil, err
	}

	return user, nil
}

// Login authenticates by username and password. Unknown users and wrong
// passwords are distinct failures: the API reports 404 and 401 respectively.
func (s *authService) Login(username, password string) (*models.User, error) {
	user, err := s.users.FindByUsername(username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if err := auth.VerifyPassword(user.PasswordHash, password); err != nil {
		return nil, ErrInvalidPassword
	}

	return user, nil
}
