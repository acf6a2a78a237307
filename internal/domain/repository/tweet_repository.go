package repository

import (
	"context"

	"twitter-clone-backend/internal/domain/entity"
)

// TweetRepository defines the store contract for tweets.
type TweetRepository interface {
	Create(ctx context.Context, t *entity.Tweet) error
	GetByID(ctx context.Context, id string) (*entity.Tweet, error)
	// List returns all tweets newest-created-first. No pagination at this
	// scope; flagged as a scalability non-goal.
	List(ctx context.Context) ([]*entity.Tweet, error)
	ListByAuthor(ctx context.Context, userID string) ([]*entity.Tweet, error)
	Update(ctx context.Context, t *entity.Tweet) error
	// Delete removes the row only; references held elsewhere are not
	// cascade-cleaned.
	Delete(ctx context.Context, id string) error
}
