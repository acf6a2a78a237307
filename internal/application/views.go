package application

import (
	"errors"
	"time"

	"twitter-clone-backend/internal/domain/apperr"
	"twitter-clone-backend/internal/domain/entity"
	repo "twitter-clone-backend/internal/domain/repository"
)

// UserProfile is a user with followers/following resolved to redacted
// summaries, as returned by GET /api/user/:id.
type UserProfile struct {
	ID             string               `json:"id"`
	Name           string               `json:"name"`
	Username       string               `json:"userName"`
	Email          string               `json:"email"`
	ProfilePicture string               `json:"profilePicture,omitempty"`
	Location       string               `json:"location,omitempty"`
	DateOfBirth    *time.Time           `json:"dateOfBirth,omitempty"`
	Followers      []entity.UserSummary `json:"followers"`
	Following      []entity.UserSummary `json:"following"`
	CreatedAt      time.Time            `json:"createdAt"`
	UpdatedAt      time.Time            `json:"updatedAt"`
}

// TweetData is the unpopulated tweet shape with raw relation id lists.
type TweetData struct {
	ID            string    `json:"id"`
	Content       string    `json:"content"`
	TweetedBy     string    `json:"tweetedBy"`
	Image         string    `json:"image,omitempty"`
	Likes         []string  `json:"likes"`
	RetweetedBy   []string  `json:"retweetedBy"`
	Replies       []string  `json:"replies"`
	RetweetedFrom string    `json:"retweetedFrom,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// TweetView is the populated tweet shape: author, likers, retweeters and
// reply authors are resolved to redacted summaries.
type TweetView struct {
	ID            string               `json:"id"`
	Content       string               `json:"content"`
	TweetedBy     entity.UserSummary   `json:"tweetedBy"`
	Image         string               `json:"image,omitempty"`
	Likes         []entity.UserSummary `json:"likes"`
	RetweetedBy   []entity.UserSummary `json:"retweetedBy"`
	Replies       []entity.UserSummary `json:"replies"`
	RetweetedFrom string               `json:"retweetedFrom,omitempty"`
	CreatedAt     time.Time            `json:"createdAt"`
	UpdatedAt     time.Time            `json:"updatedAt"`
}

func newTweetData(t *entity.Tweet) TweetData {
	return TweetData{
		ID:            t.ID,
		Content:       t.Content,
		TweetedBy:     t.TweetedBy,
		Image:         t.Image,
		Likes:         append([]string{}, t.Likes...),
		RetweetedBy:   append([]string{}, t.RetweetedBy...),
		Replies:       append([]string{}, t.Replies...),
		RetweetedFrom: t.RetweetedFrom,
		CreatedAt:     t.CreatedAt,
		UpdatedAt:     t.UpdatedAt,
	}
}

// summaries resolves a relation set against the populate map. Dangling ids
// (users deleted out-of-band) are skipped rather than surfaced as errors.
func summaries(set entity.IDSet, byID map[string]entity.UserSummary) []entity.UserSummary {
	out := make([]entity.UserSummary, 0, len(set))
	for _, id := range set {
		if s, ok := byID[id]; ok {
			out = append(out, s)
		}
	}
	return out
}

// notFoundOr translates a repository miss into the domain taxonomy and
// everything else into a redacted internal error.
func notFoundOr(err error, msg string) error {
	if errors.Is(err, repo.ErrNotFound) {
		return apperr.NotFound(msg)
	}
	return apperr.Internal(err)
}
