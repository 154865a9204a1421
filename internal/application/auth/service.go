package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/DiegoEspinoz/Proyecto-innovacion-digital/internal/domain/user"
	"github.com/DiegoEspinoz/Proyecto-innovacion-digital/internal/pkg/logging"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidCredentials = errors.New("auth: invalid credentials")

// Service handles registration and login against the identity store.
type Service struct {
	users  user.Repository
	tokens *TokenManager
}

func NewService(users user.Repository, tokens *TokenManager) *Service {
	return &Service{users: users, tokens: tokens}
}

type Result struct {
	Token string     `json:"token"`
	User  *user.User `json:"user"`
}

func (s *Service) Register(ctx context.Context, email, name, password string) (*Result, error) {
	logger := logging.FromContext(ctx).With(zap.String("component", "auth_service"))

	if password == "" {
		return nil, ErrInvalidCredentials
	}
	taken, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("auth: email lookup: %w", err)
	}
	if taken {
		return nil, user.ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("auth: hash password: %w", err)
	}

	u, err := user.New(email, name, string(hash), user.RoleCustomer)
	if err != nil {
		return nil, err
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, fmt.Errorf("auth: create user: %w", err)
	}

	token, err := s.tokens.Issue(u.Email, string(u.Role))
	if err != nil {
		return nil, fmt.Errorf("auth: issue token: %w", err)
	}

	logger.Info("user_registered", zap.Uint("user_id", u.ID), zap.String("email", u.Email))
	return &Result{Token: token, User: u}, nil
}

func (s *Service) Login(ctx context.Context, email, password string) (*Result, error) {
	logger := logging.FromContext(ctx).With(zap.String("component", "auth_service"))

	u, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, user.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("auth: user lookup: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		logger.Warn("login_rejected", zap.String("email", email))
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(u.Email, string(u.Role))
	if err != nil {
		return nil, fmt.Errorf("auth: issue token: %w", err)
	}

	logger.Info("login_success", zap.Uint("user_id", u.ID))
	return &Result{Token: token, User: u}, nil
}
