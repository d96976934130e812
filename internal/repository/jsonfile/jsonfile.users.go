// FilePath: internal/repository/jsonfile/jsonfile.users.go
package jsonfile

import (
	"context"

	"github.com/Nakib00/IoT-project-Server/internal/errors"
	"github.com/Nakib00/IoT-project-Server/internal/models"
	"github.com/Nakib00/IoT-project-Server/internal/store"
)

type UserRepo struct {
	baseRepo
}

func NewUserRepository(s *store.Store) *UserRepo {
	return &UserRepo{baseRepo{store: s}}
}

// Create appends the user to the document. Email uniqueness is the caller's
// check; the repository does not re-verify it.
func (r *UserRepo) Create(ctx context.Context, user *models.User) error {
	return r.store.Update(func(users []*models.User) ([]*models.User, error) {
		if user.Projects == nil {
			user.Projects = []*models.Project{}
		}
		return append(users, user), nil
	})
}

func (r *UserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	user := findUserByID(r.store.Read(), id)
	if user == nil {
		return nil, errors.NewNotFoundError("User not found.", nil)
	}
	return user, nil
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	user := findUserByEmail(r.store.Read(), email)
	if user == nil {
		return nil, errors.NewNotFoundError("User not found.", nil)
	}
	return user, nil
}
