package repository

import (
	"context"
	"errors"

	"twitter-clone-backend/internal/domain/entity"
)

// ErrNotFound is returned by repositories when the requested row is absent.
var ErrNotFound = errors.New("not found")

// UserRepository defines the store contract for users. Update persists the
// whole entity (last writer wins), including both follow-edge sets.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	// GetByIDs resolves populate joins; missing ids are silently skipped.
	GetByIDs(ctx context.Context, ids []string) ([]*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
	Update(ctx context.Context, u *entity.User) error
}
