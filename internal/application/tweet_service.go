package application

import (
	"context"
	"io"
	"path/filepath"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"twitter-clone-backend/internal/domain/apperr"
	"twitter-clone-backend/internal/domain/entity"
	repo "twitter-clone-backend/internal/domain/repository"
	"twitter-clone-backend/pkg/helpers"
)

// TweetService owns the content graph: tweets, likes, replies and retweets.
// It resolves user identities only to validate existence and authorship; it
// never mutates follow state.
type TweetService struct {
	Tweets    repo.TweetRepository
	Users     repo.UserRepository
	GCS       *storage.Client
	GCSBucket string
	Logger    *logrus.Logger
}

func NewTweetService(tweets repo.TweetRepository, users repo.UserRepository, gcs *storage.Client, gcsBucket string, logger *logrus.Logger) *TweetService {
	return &TweetService{Tweets: tweets, Users: users, GCS: gcs, GCSBucket: gcsBucket, Logger: logger}
}

// Post creates a tweet authored by actorID. image is an already-stored
// reference and may be empty.
func (s *TweetService) Post(ctx context.Context, actorID, content, image string) (*entity.Tweet, error) {
	if content == "" {
		return nil, apperr.Validation("Tweet content is required")
	}
	if _, err := s.Users.GetByID(ctx, actorID); err != nil {
		return nil, notFoundOr(err, "User not found")
	}

	t := &entity.Tweet{
		Content:     content,
		TweetedBy:   actorID,
		Image:       image,
		Likes:       entity.IDSet{},
		RetweetedBy: entity.IDSet{},
		Replies:     entity.IDSet{},
	}
	if err := s.Tweets.Create(ctx, t); err != nil {
		return nil, apperr.Internal(err)
	}
	return t, nil
}

// Like records actorID in the tweet's likes set.
func (s *TweetService) Like(ctx context.Context, actorID, tweetID string) error {
	if _, err := s.Users.GetByID(ctx, actorID); err != nil {
		return notFoundOr(err, "User not found")
	}
	t, err := s.Tweets.GetByID(ctx, tweetID)
	if err != nil {
		return notFoundOr(err, "Post not found")
	}

	if !t.Likes.Add(actorID) {
		return apperr.Conflict("You have already liked the tweet")
	}
	if err := s.Tweets.Update(ctx, t); err != nil {
		return apperr.Internal(err)
	}
	return nil
}

// Unlike removes actorID from the tweet's likes set.
func (s *TweetService) Unlike(ctx context.Context, actorID, tweetID string) error {
	if _, err := s.Users.GetByID(ctx, actorID); err != nil {
		return notFoundOr(err, "User not found")
	}
	t, err := s.Tweets.GetByID(ctx, tweetID)
	if err != nil {
		return notFoundOr(err, "Post not found")
	}

	if !t.Likes.Remove(actorID) {
		return apperr.Conflict("You have not liked already")
	}
	if err := s.Tweets.Update(ctx, t); err != nil {
		return apperr.Internal(err)
	}
	return nil
}

// Reply creates an independent tweet authored by actorID and records the
// author in the parent's replies set. The two writes are not transactional:
// a failure after the reply is created leaves the parent unaware of it.
func (s *TweetService) Reply(ctx context.Context, actorID, parentTweetID, content string) (*entity.Tweet, error) {
	if content == "" {
		return nil, apperr.Validation("One or more fields are empty")
	}
	parent, err := s.Tweets.GetByID(ctx, parentTweetID)
	if err != nil {
		return nil, notFoundOr(err, "Parent tweet not found")
	}
	if _, err := s.Users.GetByID(ctx, actorID); err != nil {
		return nil, notFoundOr(err, "User not found")
	}

	reply := &entity.Tweet{
		Content:     content,
		TweetedBy:   actorID,
		Likes:       entity.IDSet{},
		RetweetedBy: entity.IDSet{},
		Replies:     entity.IDSet{},
	}
	if err := s.Tweets.Create(ctx, reply); err != nil {
		return nil, apperr.Internal(err)
	}

	// Replies tracks authors, so a second reply by the same user leaves
	// the parent unchanged.
	if parent.Replies.Add(actorID) {
		if err := s.Tweets.Update(ctx, parent); err != nil {
			return nil, apperr.Internal(err)
		}
	}
	return reply, nil
}

// Retweet creates a first-class tweet copying the original's content and
// image, pointing back via RetweetedFrom. Authors may not retweet their own
// tweets.
func (s *TweetService) Retweet(ctx context.Context, actorID, originalTweetID string) (*entity.Tweet, error) {
	original, err := s.Tweets.GetByID(ctx, originalTweetID)
	if err != nil {
		return nil, notFoundOr(err, "Tweet not found")
	}
	if _, err := s.Users.GetByID(ctx, actorID); err != nil {
		return nil, notFoundOr(err, "User not found")
	}
	if original.TweetedBy == actorID {
		return nil, apperr.Validation("Cannot retweet your own tweet")
	}

	rt := &entity.Tweet{
		Content:       original.Content,
		TweetedBy:     actorID,
		Image:         original.Image,
		RetweetedFrom: original.ID,
		Likes:         entity.IDSet{},
		RetweetedBy:   entity.IDSet{},
		Replies:       entity.IDSet{},
	}
	if err := s.Tweets.Create(ctx, rt); err != nil {
		return nil, apperr.Internal(err)
	}

	if original.RetweetedBy.Add(actorID) {
		if err := s.Tweets.Update(ctx, original); err != nil {
			return nil, apperr.Internal(err)
		}
	}
	return rt, nil
}

// Delete removes the tweet row only. References held by other tweets and
// users are not cascade-cleaned.
func (s *TweetService) Delete(ctx context.Context, actorID, tweetID string) error {
	t, err := s.Tweets.GetByID(ctx, tweetID)
	if err != nil {
		return notFoundOr(err, "Tweet not found")
	}
	if t.TweetedBy != actorID {
		return apperr.Forbidden("Unauthorized access")
	}
	if err := s.Tweets.Delete(ctx, tweetID); err != nil {
		return notFoundOr(err, "Tweet not found")
	}
	return nil
}

// Get returns a single tweet with all user references populated.
func (s *TweetService) Get(ctx context.Context, tweetID string) (*TweetView, error) {
	t, err := s.Tweets.GetByID(ctx, tweetID)
	if err != nil {
		return nil, notFoundOr(err, "Tweet not found")
	}
	views, err := s.populate(ctx, []*entity.Tweet{t})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// List returns all tweets newest-created-first with user references
// populated.
func (s *TweetService) List(ctx context.Context) ([]TweetView, error) {
	tweets, err := s.Tweets.List(ctx)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return s.populate(ctx, tweets)
}

// ListByAuthor returns the author's tweets with raw relation id lists.
func (s *TweetService) ListByAuthor(ctx context.Context, userID string) ([]TweetData, error) {
	tweets, err := s.Tweets.ListByAuthor(ctx, userID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	out := make([]TweetData, 0, len(tweets))
	for _, t := range tweets {
		out = append(out, newTweetData(t))
	}
	return out, nil
}

// UploadImage stores a tweet image and returns its reference.
func (s *TweetService) UploadImage(ctx context.Context, actorID string, r io.Reader, filename, contentType string) (string, error) {
	if s.GCS == nil || s.GCSBucket == "" {
		return "", apperr.Internal(errGCSNotConfigured)
	}
	ext := strings.ToLower(filepath.Ext(filename))
	objectPath := filepath.ToSlash(filepath.Join("tweet-images", actorID, uuid.NewString()+ext))
	url, err := helpers.UploadObject(ctx, s.GCS, s.GCSBucket, objectPath, contentType, r)
	if err != nil {
		return "", apperr.Internal(err)
	}
	return url, nil
}

// populate resolves every user id referenced by the tweets in one fetch and
// builds redacted views. Dangling references are skipped; a dangling author
// keeps its id only.
func (s *TweetService) populate(ctx context.Context, tweets []*entity.Tweet) ([]TweetView, error) {
	referenced := entity.IDSet{}
	for _, t := range tweets {
		referenced.Add(t.TweetedBy)
		for _, id := range t.Likes {
			referenced.Add(id)
		}
		for _, id := range t.RetweetedBy {
			referenced.Add(id)
		}
		for _, id := range t.Replies {
			referenced.Add(id)
		}
	}

	users, err := s.Users.GetByIDs(ctx, referenced)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	byID := make(map[string]entity.UserSummary, len(users))
	for _, u := range users {
		byID[u.ID] = u.Summary()
	}

	views := make([]TweetView, 0, len(tweets))
	for _, t := range tweets {
		author, ok := byID[t.TweetedBy]
		if !ok {
			author = entity.UserSummary{ID: t.TweetedBy}
		}
		views = append(views, TweetView{
			ID:            t.ID,
			Content:       t.Content,
			TweetedBy:     author,
			Image:         t.Image,
			Likes:         summaries(t.Likes, byID),
			RetweetedBy:   summaries(t.RetweetedBy, byID),
			Replies:       summaries(t.Replies, byID),
			RetweetedFrom: t.RetweetedFrom,
			CreatedAt:     t.CreatedAt,
			UpdatedAt:     t.UpdatedAt,
		})
	}
	return views, nil
}
