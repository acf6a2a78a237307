package handlers_test

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetUserEndpoint(t *testing.T) {
	env := newServer(t)
	_, aliceID := env.register(t, "Alice", "alice", "alice@example.com")

	w := env.doJSON(t, http.MethodGet, "/api/user/"+aliceID, "", nil)

	require.Equal(t, http.StatusOK, w.Code)
	user, ok := decodeBody(t, w)["user"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, aliceID, user["id"])
	assert.Equal(t, "alice", user["userName"])
	assert.NotContains(t, w.Body.String(), "$2a$")
}

func TestGetUserNotFound(t *testing.T) {
	env := newServer(t)

	w := env.doJSON(t, http.MethodGet, "/api/user/does-not-exist", "", nil)

	require.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"User doesn't exist"}`, w.Body.String())
}

func TestFollowRequiresAuth(t *testing.T) {
	env := newServer(t)
	_, aliceID := env.register(t, "Alice", "alice", "alice@example.com")

	w := env.doJSON(t, http.MethodPost, "/api/user/"+aliceID+"/follow", "", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"You must be logged in"}`, w.Body.String())

	w = env.doJSON(t, http.MethodPost, "/api/user/"+aliceID+"/follow", "garbage.token.here", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"Invalid or expired token"}`, w.Body.String())
}

func TestFollowEndpoint(t *testing.T) {
	env := newServer(t)
	aliceToken, aliceID := env.register(t, "Alice", "alice", "alice@example.com")
	_, bobID := env.register(t, "Bob", "bob", "bob@example.com")

	w := env.doJSON(t, http.MethodPost, "/api/user/"+bobID+"/follow", aliceToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"result":"User followed successfully"}`, w.Body.String())

	// Both sides visible through the public profile.
	w = env.doJSON(t, http.MethodGet, "/api/user/"+aliceID, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	user := decodeBody(t, w)["user"].(map[string]any)
	following, ok := user["following"].([]any)
	require.True(t, ok)
	require.Len(t, following, 1)
	assert.Equal(t, bobID, following[0].(map[string]any)["id"])

	w = env.doJSON(t, http.MethodGet, "/api/user/"+bobID, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	user = decodeBody(t, w)["user"].(map[string]any)
	followers, ok := user["followers"].([]any)
	require.True(t, ok)
	require.Len(t, followers, 1)
	assert.Equal(t, aliceID, followers[0].(map[string]any)["id"])
}

func TestFollowSelf(t *testing.T) {
	env := newServer(t)
	aliceToken, aliceID := env.register(t, "Alice", "alice", "alice@example.com")

	w := env.doJSON(t, http.MethodPost, "/api/user/"+aliceID+"/follow", aliceToken, nil)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"You cannot follow yourself"}`, w.Body.String())
}

func TestFollowTwice(t *testing.T) {
	env := newServer(t)
	aliceToken, _ := env.register(t, "Alice", "alice", "alice@example.com")
	_, bobID := env.register(t, "Bob", "bob", "bob@example.com")

	w := env.doJSON(t, http.MethodPost, "/api/user/"+bobID+"/follow", aliceToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.doJSON(t, http.MethodPost, "/api/user/"+bobID+"/follow", aliceToken, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"You are already following"}`, w.Body.String())
}

func TestUnfollowEndpoint(t *testing.T) {
	env := newServer(t)
	aliceToken, _ := env.register(t, "Alice", "alice", "alice@example.com")
	_, bobID := env.register(t, "Bob", "bob", "bob@example.com")

	w := env.doJSON(t, http.MethodPost, "/api/user/"+bobID+"/follow", aliceToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.doJSON(t, http.MethodPost, "/api/user/"+bobID+"/unfollow", aliceToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"result":"User unfollowed successfully!"}`, w.Body.String())

	w = env.doJSON(t, http.MethodPost, "/api/user/"+bobID+"/unfollow", aliceToken, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"You are already not following"}`, w.Body.String())
}

func TestUpdateProfileEndpoint(t *testing.T) {
	env := newServer(t)
	aliceToken, aliceID := env.register(t, "Alice", "alice", "alice@example.com")

	w := env.doJSON(t, http.MethodPut, "/api/user/"+aliceID, aliceToken, gin.H{
		"name": "Alice Cooper", "dateOfBirth": "02/07/1993", "location": "Detroit",
	})

	require.Equal(t, http.StatusOK, w.Code)
	user := decodeBody(t, w)["user"].(map[string]any)
	assert.Equal(t, "Alice Cooper", user["name"])
	assert.Equal(t, "Detroit", user["location"])
	assert.NotEmpty(t, user["dateOfBirth"])
}

func TestUpdateProfileOfAnotherUser(t *testing.T) {
	env := newServer(t)
	aliceToken, _ := env.register(t, "Alice", "alice", "alice@example.com")
	_, bobID := env.register(t, "Bob", "bob", "bob@example.com")

	w := env.doJSON(t, http.MethodPut, "/api/user/"+bobID, aliceToken, gin.H{
		"name": "Hijacked", "dateOfBirth": "01/01/2000", "location": "Nowhere",
	})

	require.Equal(t, http.StatusForbidden, w.Code)
	assert.JSONEq(t, `{"error":"Unauthorised access"}`, w.Body.String())
}

func TestUpdateProfileBadDOB(t *testing.T) {
	env := newServer(t)
	aliceToken, aliceID := env.register(t, "Alice", "alice", "alice@example.com")

	w := env.doJSON(t, http.MethodPut, "/api/user/"+aliceID, aliceToken, gin.H{
		"name": "Alice", "dateOfBirth": "1993-07-02", "location": "Berlin",
	})

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"dateOfBirth must be in DD/MM/YYYY format"}`, w.Body.String())
}

func TestTweetsByAuthorEndpoint(t *testing.T) {
	env := newServer(t)
	aliceToken, aliceID := env.register(t, "Alice", "alice", "alice@example.com")
	bobToken, _ := env.register(t, "Bob", "bob", "bob@example.com")
	env.postTweet(t, aliceToken, "alice says hi")
	env.postTweet(t, bobToken, "bob says hi")

	w := env.doJSON(t, http.MethodPost, "/api/user/"+aliceID+"/tweets", "", nil)

	require.Equal(t, http.StatusOK, w.Code)
	result, ok := decodeBody(t, w)["result"].([]any)
	require.True(t, ok)
	require.Len(t, result, 1)
	tweet := result[0].(map[string]any)
	assert.Equal(t, "alice says hi", tweet["content"])
	assert.Equal(t, aliceID, tweet["tweetedBy"], "author stays a raw id in this view")
}

func TestUploadProfilePicNoFile(t *testing.T) {
	env := newServer(t)
	_, aliceID := env.register(t, "Alice", "alice", "alice@example.com")

	w := env.doMultipart(t, http.MethodPost, "/api/user/"+aliceID+"/uploadProfilePic", "", nil, nil)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"No file uploaded"}`, w.Body.String())
}

func TestUploadProfilePicTooLarge(t *testing.T) {
	env := newServer(t)
	_, aliceID := env.register(t, "Alice", "alice", "alice@example.com")

	oversized := make([]byte, testMaxUpload+1)
	w := env.doMultipart(t, http.MethodPost, "/api/user/"+aliceID+"/uploadProfilePic", "", nil,
		map[string][]byte{"file": oversized})

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"File size limit exceeded. Maximum file size allowed is 2MB."}`, w.Body.String())
}
