package application

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"twitter-clone-backend/internal/domain/apperr"
	"twitter-clone-backend/internal/domain/entity"
	repo "twitter-clone-backend/internal/domain/repository"
	"twitter-clone-backend/pkg/helpers"
)

// AuthService implements registration, login and credential issuance. The
// credential hash never leaves this component: login results carry only the
// redacted summary.
type AuthService struct {
	Users  repo.UserRepository
	JWT    *helpers.JWTManager
	Redis  *redis.Client
	Logger *logrus.Logger
}

func NewAuthService(users repo.UserRepository, jwt *helpers.JWTManager, rdb *redis.Client, logger *logrus.Logger) *AuthService {
	return &AuthService{Users: users, JWT: jwt, Redis: rdb, Logger: logger}
}

// LoginResult is the credential plus the redacted user summary.
type LoginResult struct {
	Token string             `json:"token"`
	User  entity.UserSummary `json:"user"`
}

func sessionKey(userID string) string {
	return "user:session:" + userID
}

func nowRFC3339() string {
	return time.Now().UTC().Format(time.RFC3339Nano)
}

// Register creates a user with an empty follow graph. The bcrypt hash is
// derived here; plaintext is never persisted.
func (s *AuthService) Register(ctx context.Context, name, email, username, password string) error {
	if name == "" || email == "" || username == "" || password == "" {
		return apperr.Validation("One or more mandatory fields are empty")
	}

	existing, err := s.Users.GetByEmail(ctx, email)
	if err != nil && !errors.Is(err, repo.ErrNotFound) {
		return apperr.Internal(err)
	}
	if existing != nil {
		return apperr.Conflict("User with this email already exists")
	}

	hash, err := helpers.HashPassword(password)
	if err != nil {
		return apperr.Internal(err)
	}

	u := &entity.User{
		Name:         name,
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Followers:    entity.IDSet{},
		Following:    entity.IDSet{},
	}
	if err := s.Users.Create(ctx, u); err != nil {
		return apperr.Internal(err)
	}

	if s.Logger != nil {
		s.Logger.WithField("user_id", u.ID).Info("user registered")
	}
	return nil
}

// Login verifies username/password and issues a signed credential. The
// failure message is uniform regardless of which check failed, to avoid
// username enumeration.
func (s *AuthService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	if username == "" || password == "" {
		return nil, apperr.Validation("One or more mandatory fields are empty")
	}

	u, err := s.Users.GetByUsername(ctx, username)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, apperr.Auth("Invalid credentials")
	}
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if !helpers.CompareHashAndPassword(u.PasswordHash, password) {
		return nil, apperr.Auth("Invalid credentials")
	}

	token, exp, err := s.JWT.GenerateToken(u.ID)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	// Session bookkeeping; the API works without Redis.
	if s.Redis != nil {
		key := sessionKey(u.ID)
		pipe := s.Redis.Pipeline()
		pipe.HSet(ctx, key, map[string]any{
			"user_id":    u.ID,
			"username":   u.Username,
			"email":      u.Email,
			"name":       u.Name,
			"logged_in":  true,
			"created_at": nowRFC3339(),
		})
		pipe.ExpireAt(ctx, key, exp)
		if _, rErr := pipe.Exec(ctx); rErr != nil && s.Logger != nil {
			s.Logger.WithError(rErr).WithField("key", key).Warn("redis pipeline failed")
		}
	}

	return &LoginResult{Token: token, User: u.Summary()}, nil
}
