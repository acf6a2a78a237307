package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"twitter-clone-backend/internal/application"
	"twitter-clone-backend/internal/infrastructure/memory"
	handlers "twitter-clone-backend/internal/interface/http"
	"twitter-clone-backend/internal/router/modules"
	"twitter-clone-backend/pkg/helpers"
	"twitter-clone-backend/pkg/validation"
)

const testMaxUpload = 2 << 20

var setupOnce sync.Once

type serverEnv struct {
	router *gin.Engine
	users  *memory.UserRepository
	tweets *memory.TweetRepository
}

func newServer(t *testing.T) *serverEnv {
	t.Helper()
	setupOnce.Do(func() {
		gin.SetMode(gin.TestMode)
		validation.Init()
	})

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	users := memory.NewUserRepository()
	tweets := memory.NewTweetRepository()
	jwt := helpers.NewJWTManager("handler-test-secret", time.Hour)

	authSvc := application.NewAuthService(users, jwt, nil, logger)
	userSvc := application.NewUserService(users, nil, "", nil, logger)
	tweetSvc := application.NewTweetService(tweets, users, nil, "", logger)

	r := gin.New()
	api := r.Group("/api")
	modules.NewAuthModule(handlers.NewAuthHandler(authSvc, logger)).Register(api)
	modules.NewUserModule(handlers.NewUserHandler(userSvc, tweetSvc, logger, testMaxUpload), jwt).Register(api)
	modules.NewTweetModule(handlers.NewTweetHandler(tweetSvc, logger, testMaxUpload), jwt).Register(api)

	return &serverEnv{router: r, users: users, tweets: tweets}
}

func (e *serverEnv) doJSON(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

// doMultipart sends a multipart/form-data request with string fields and
// optional file parts (part name -> content bytes).
func (e *serverEnv) doMultipart(t *testing.T, method, path, token string, fields map[string]string, files map[string][]byte) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	for name, content := range files {
		fw, err := mw.CreateFormFile(name, name+".png")
		require.NoError(t, err)
		_, err = fw.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &m), "body: %s", w.Body.String())
	return m
}

// register creates an account and logs in, returning the bearer token and
// the user id.
func (e *serverEnv) register(t *testing.T, name, username, email string) (token, userID string) {
	t.Helper()
	w := e.doJSON(t, http.MethodPost, "/api/auth/register", "", gin.H{
		"name": name, "userName": username, "email": email, "password": "password123",
	})
	require.Equal(t, http.StatusCreated, w.Code, "body: %s", w.Body.String())

	w = e.doJSON(t, http.MethodPost, "/api/auth/login", "", gin.H{
		"userName": username, "password": "password123",
	})
	require.Equal(t, http.StatusOK, w.Code, "body: %s", w.Body.String())

	result, ok := decodeBody(t, w)["result"].(map[string]any)
	require.True(t, ok)
	token, _ = result["token"].(string)
	user, ok := result["user"].(map[string]any)
	require.True(t, ok)
	userID, _ = user["id"].(string)
	require.NotEmpty(t, token)
	require.NotEmpty(t, userID)
	return token, userID
}

// postTweet creates a tweet through the API and returns its id from the
// public list endpoint.
func (e *serverEnv) postTweet(t *testing.T, token, content string) string {
	t.Helper()
	w := e.doMultipart(t, http.MethodPost, "/api/tweet", token, map[string]string{"content": content}, nil)
	require.Equal(t, http.StatusOK, w.Code, "body: %s", w.Body.String())

	w = e.doJSON(t, http.MethodGet, "/api/tweet", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	tweets, ok := decodeBody(t, w)["tweets"].([]any)
	require.True(t, ok)
	require.NotEmpty(t, tweets)
	first, ok := tweets[0].(map[string]any)
	require.True(t, ok)
	id, _ := first["id"].(string)
	require.NotEmpty(t, id)
	return id
}
