package hubservice

import (
	"context"

	nuts "github.com/vaudience/go-nuts"
	"golang.org/x/crypto/bcrypt"

	"github.com/Nakib00/IoT-project-Server/internal/errors"
	"github.com/Nakib00/IoT-project-Server/internal/models"
)

// RegisterUser creates a new account. Emails are unique (case-sensitive
// match); passwords are stored bcrypt-hashed.
func (s *HubService) RegisterUser(ctx context.Context, name, email, phone, password string) (*models.PublicUser, error) {
	if existing, _ := s.Users.GetByEmail(ctx, email); existing != nil {
		return nil, errors.NewConflictError("A user with this email already exists.", nil)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.NewInternalError("failed to hash password", err)
	}

	user := &models.User{
		ID:       nuts.NID("usr", 12),
		Name:     name,
		Email:    email,
		Phone:    phone,
		Password: string(hash),
		Projects: []*models.Project{},
	}

	if err := s.Users.Create(ctx, user); err != nil {
		return nil, err
	}

	nuts.L.Infof("[UserService] Registered user %s (%s)", user.Name, user.ID)
	return user.Public(), nil
}

// Login verifies credentials and returns the user's public profile.
func (s *HubService) Login(ctx context.Context, email, password string) (*models.PublicUser, error) {
	user, err := s.Users.GetByEmail(ctx, email)
	if err != nil {
		return nil, errors.NewAuthError("Invalid email or password.", nil)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, errors.NewAuthError("Invalid email or password.", nil)
	}
	return user.Public(), nil
}
