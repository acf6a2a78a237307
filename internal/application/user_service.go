package application

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"twitter-clone-backend/internal/domain/apperr"
	"twitter-clone-backend/internal/domain/entity"
	repo "twitter-clone-backend/internal/domain/repository"
	"twitter-clone-backend/pkg/helpers"
	"twitter-clone-backend/pkg/validation"
)

var errGCSNotConfigured = errors.New("gcs not configured")

// UserService owns the follow graph and profile operations.
type UserService struct {
	Users     repo.UserRepository
	GCS       *storage.Client
	GCSBucket string
	Redis     *redis.Client
	Logger    *logrus.Logger
}

func NewUserService(users repo.UserRepository, gcs *storage.Client, gcsBucket string, rdb *redis.Client, logger *logrus.Logger) *UserService {
	return &UserService{Users: users, GCS: gcs, GCSBucket: gcsBucket, Redis: rdb, Logger: logger}
}

// Get returns the user with followers/following populated to redacted
// summaries.
func (s *UserService) Get(ctx context.Context, id string) (*UserProfile, error) {
	u, err := s.Users.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "User doesn't exist")
	}

	related := entity.IDSet{}
	for _, fid := range u.Followers {
		related.Add(fid)
	}
	for _, fid := range u.Following {
		related.Add(fid)
	}
	users, err := s.Users.GetByIDs(ctx, related)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	byID := make(map[string]entity.UserSummary, len(users))
	for _, ru := range users {
		byID[ru.ID] = ru.Summary()
	}

	return &UserProfile{
		ID:             u.ID,
		Name:           u.Name,
		Username:       u.Username,
		Email:          u.Email,
		ProfilePicture: u.ProfilePicture,
		Location:       u.Location,
		DateOfBirth:    u.DateOfBirth,
		Followers:      summaries(u.Followers, byID),
		Following:      summaries(u.Following, byID),
		CreatedAt:      u.CreatedAt,
		UpdatedAt:      u.UpdatedAt,
	}, nil
}

// Follow adds the directed edge actor -> target on both sides. The two
// writes are best-effort sequential; re-running after a partial failure is
// safe because membership is re-checked.
func (s *UserService) Follow(ctx context.Context, actorID, targetID string) error {
	if actorID == targetID {
		return apperr.Validation("You cannot follow yourself")
	}

	target, err := s.Users.GetByID(ctx, targetID)
	if err != nil {
		return notFoundOr(err, "User not found")
	}
	actor, err := s.Users.GetByID(ctx, actorID)
	if err != nil {
		return notFoundOr(err, "User not found")
	}

	if !actor.Following.Add(targetID) {
		return apperr.Conflict("You are already following")
	}
	target.Followers.Add(actorID)

	if err := s.Users.Update(ctx, actor); err != nil {
		return apperr.Internal(err)
	}
	// A failure here leaves a half edge; the next follow/unfollow
	// re-validates membership on both sides.
	if err := s.Users.Update(ctx, target); err != nil {
		return apperr.Internal(err)
	}
	return nil
}

// Unfollow removes the edge from both sides, mirroring Follow.
func (s *UserService) Unfollow(ctx context.Context, actorID, targetID string) error {
	if actorID == targetID {
		return apperr.Validation("You cannot unfollow yourself")
	}

	target, err := s.Users.GetByID(ctx, targetID)
	if err != nil {
		return notFoundOr(err, "User not found")
	}
	actor, err := s.Users.GetByID(ctx, actorID)
	if err != nil {
		return notFoundOr(err, "User not found")
	}

	if !actor.Following.Remove(targetID) {
		return apperr.Conflict("You are already not following")
	}
	target.Followers.Remove(actorID)

	if err := s.Users.Update(ctx, actor); err != nil {
		return apperr.Internal(err)
	}
	if err := s.Users.Update(ctx, target); err != nil {
		return apperr.Internal(err)
	}
	return nil
}

// UpdateProfile updates name, date of birth (DD/MM/YYYY input) and location.
// Only the owner may edit their profile.
func (s *UserService) UpdateProfile(ctx context.Context, actorID, targetID, name, dateOfBirth, location string) (*entity.PublicUser, error) {
	if name == "" || dateOfBirth == "" || location == "" {
		return nil, apperr.Validation("One or more mandatory fields are empty")
	}
	if actorID != targetID {
		return nil, apperr.Forbidden("Unauthorised access")
	}
	dob, err := time.Parse(validation.DOBLayout, dateOfBirth)
	if err != nil {
		return nil, apperr.Validation("dateOfBirth must be in DD/MM/YYYY format")
	}

	u, err := s.Users.GetByID(ctx, targetID)
	if err != nil {
		return nil, notFoundOr(err, "User not found")
	}

	u.Name = name
	u.DateOfBirth = &dob
	u.Location = location
	if err := s.Users.Update(ctx, u); err != nil {
		return nil, apperr.Internal(err)
	}

	if s.Redis != nil {
		key := sessionKey(u.ID)
		pipe := s.Redis.Pipeline()
		pipe.HSet(ctx, key, map[string]any{
			"name":       u.Name,
			"updated_at": nowRFC3339(),
		})
		if ttl, tErr := s.Redis.TTL(ctx, key).Result(); tErr == nil && ttl > 0 {
			pipe.Expire(ctx, key, ttl)
		}
		if _, pErr := pipe.Exec(ctx); pErr != nil && s.Logger != nil {
			s.Logger.WithError(pErr).WithField("key", key).Warn("redis pipeline failed")
		}
	}

	pub := u.Public()
	return &pub, nil
}

// UploadProfilePicture stores the image bytes and records the returned
// reference on the user. Presence and size checks happen at the boundary.
func (s *UserService) UploadProfilePicture(ctx context.Context, userID string, r io.Reader, filename, contentType string) (string, error) {
	u, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		return "", notFoundOr(err, "User not found")
	}

	url, err := s.uploadImage(ctx, userID, r, filename, contentType)
	if err != nil {
		return "", err
	}

	u.ProfilePicture = url
	if err := s.Users.Update(ctx, u); err != nil {
		return "", apperr.Internal(err)
	}

	if s.Redis != nil {
		s.Redis.HSet(ctx, sessionKey(u.ID), map[string]any{
			"profile_picture": u.ProfilePicture,
			"updated_at":      nowRFC3339(),
		})
	}
	return url, nil
}

func (s *UserService) uploadImage(ctx context.Context, userID string, r io.Reader, filename, contentType string) (string, error) {
	if s.GCS == nil || s.GCSBucket == "" {
		return "", apperr.Internal(errGCSNotConfigured)
	}
	ext := strings.ToLower(filepath.Ext(filename))
	objectPath := filepath.ToSlash(filepath.Join("profile-pics", userID, uuid.NewString()+ext))
	url, err := helpers.UploadObject(ctx, s.GCS, s.GCSBucket, objectPath, contentType, r)
	if err != nil {
		return "", apperr.Internal(err)
	}
	return url, nil
}
