package application

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"twitter-clone-backend/internal/domain/apperr"
	"twitter-clone-backend/internal/domain/entity"
	"twitter-clone-backend/internal/infrastructure/memory"
	"twitter-clone-backend/pkg/helpers"
)

func testLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

type testEnv struct {
	users  *memory.UserRepository
	tweets *memory.TweetRepository
	auth   *AuthService
	user   *UserService
	tweet  *TweetService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	users := memory.NewUserRepository()
	tweets := memory.NewTweetRepository()
	logger := testLogger()
	jwt := helpers.NewJWTManager("test-secret", time.Hour)
	return &testEnv{
		users:  users,
		tweets: tweets,
		auth:   NewAuthService(users, jwt, nil, logger),
		user:   NewUserService(users, nil, "", nil, logger),
		tweet:  NewTweetService(tweets, users, nil, "", logger),
	}
}

// seedUser registers a user through the service so hashes and sets are
// realistic, then returns the stored entity.
func (e *testEnv) seedUser(t *testing.T, name, username, email string) *entity.User {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, e.auth.Register(ctx, name, email, username, "password123"))
	u, err := e.users.GetByUsername(ctx, username)
	require.NoError(t, err)
	return u
}

func (e *testEnv) seedTweet(t *testing.T, authorID, content string) *entity.Tweet {
	t.Helper()
	tw, err := e.tweet.Post(context.Background(), authorID, content, "")
	require.NoError(t, err)
	return tw
}

func requireKind(t *testing.T, err error, kind apperr.Kind, msg string) {
	t.Helper()
	require.Error(t, err)
	require.Equal(t, kind, apperr.KindOf(err))
	require.Equal(t, msg, apperr.PublicMessage(err))
}
