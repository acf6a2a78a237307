package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"twitter-clone-backend/internal/domain/entity"
	"twitter-clone-backend/internal/domain/repository"
)

type TweetRepository struct {
	mu     sync.Mutex
	seq    int
	base   time.Time
	tweets map[string]*entity.Tweet
}

func NewTweetRepository() *TweetRepository {
	return &TweetRepository{base: time.Now(), tweets: make(map[string]*entity.Tweet)}
}

func cloneTweet(t *entity.Tweet) *entity.Tweet {
	c := *t
	c.Likes = append(entity.IDSet{}, t.Likes...)
	c.RetweetedBy = append(entity.IDSet{}, t.RetweetedBy...)
	c.Replies = append(entity.IDSet{}, t.Replies...)
	return &c
}

func (r *TweetRepository) next() time.Time {
	r.seq++
	return r.base.Add(time.Duration(r.seq) * time.Millisecond)
}

func (r *TweetRepository) Create(_ context.Context, t *entity.Tweet) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	t.ID = uuid.NewString()
	now := r.next()
	t.CreatedAt = now
	t.UpdatedAt = now
	r.tweets[t.ID] = cloneTweet(t)
	return nil
}

func (r *TweetRepository) GetByID(_ context.Context, id string) (*entity.Tweet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tweets[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return cloneTweet(t), nil
}

func (r *TweetRepository) List(_ context.Context) ([]*entity.Tweet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.Tweet, 0, len(r.tweets))
	for _, t := range r.tweets {
		out = append(out, cloneTweet(t))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *TweetRepository) ListByAuthor(_ context.Context, userID string) ([]*entity.Tweet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.Tweet, 0)
	for _, t := range r.tweets {
		if t.TweetedBy == userID {
			out = append(out, cloneTweet(t))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *TweetRepository) Update(_ context.Context, t *entity.Tweet) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tweets[t.ID]; !ok {
		return repository.ErrNotFound
	}
	t.UpdatedAt = r.next()
	r.tweets[t.ID] = cloneTweet(t)
	return nil
}

func (r *TweetRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tweets[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.tweets, id)
	return nil
}

var _ repository.TweetRepository = (*TweetRepository)(nil)
