// Package memory provides in-memory repository implementations used by
// tests and local experiments. Entities are deep-copied on the way in and
// out so callers never share mutable state with the store.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"twitter-clone-backend/internal/domain/entity"
	"twitter-clone-backend/internal/domain/repository"
)

type UserRepository struct {
	mu    sync.Mutex
	seq   int
	base  time.Time
	users map[string]*entity.User
}

func NewUserRepository() *UserRepository {
	return &UserRepository{base: time.Now(), users: make(map[string]*entity.User)}
}

func cloneUser(u *entity.User) *entity.User {
	c := *u
	c.Followers = append(entity.IDSet{}, u.Followers...)
	c.Following = append(entity.IDSet{}, u.Following...)
	if u.DateOfBirth != nil {
		dob := *u.DateOfBirth
		c.DateOfBirth = &dob
	}
	return &c
}

// next returns a strictly increasing timestamp so creation order is
// unambiguous even within one clock tick.
func (r *UserRepository) next() time.Time {
	r.seq++
	return r.base.Add(time.Duration(r.seq) * time.Millisecond)
}

func (r *UserRepository) Create(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u.ID = uuid.NewString()
	now := r.next()
	u.CreatedAt = now
	u.UpdatedAt = now
	r.users[u.ID] = cloneUser(u)
	return nil
}

func (r *UserRepository) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return cloneUser(u), nil
}

func (r *UserRepository) GetByIDs(_ context.Context, ids []string) ([]*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.User, 0, len(ids))
	for _, id := range ids {
		if u, ok := r.users[id]; ok {
			out = append(out, cloneUser(u))
		}
	}
	return out, nil
}

func (r *UserRepository) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *UserRepository) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == username {
			return cloneUser(u), nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *UserRepository) Update(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[u.ID]; !ok {
		return repository.ErrNotFound
	}
	u.UpdatedAt = r.next()
	r.users[u.ID] = cloneUser(u)
	return nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
