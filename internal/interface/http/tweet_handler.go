package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"twitter-clone-backend/internal/application"
	"twitter-clone-backend/internal/interface/middleware"
	"twitter-clone-backend/pkg/response"
)

type TweetHandler struct {
	Tweets         *application.TweetService
	Logger         *logrus.Logger
	MaxUploadBytes int64
}

func NewTweetHandler(tweets *application.TweetService, logger *logrus.Logger, maxUploadBytes int64) *TweetHandler {
	return &TweetHandler{Tweets: tweets, Logger: logger, MaxUploadBytes: maxUploadBytes}
}

// Post POST /api/tweet (multipart: body field "content", optional file
// field "image")
func (h *TweetHandler) Post(c *gin.Context) {
	actorID := c.GetString(middleware.CtxUserIDKey)
	content := c.PostForm("content")

	image := ""
	if fh, err := c.FormFile("image"); err == nil {
		if fh.Size > h.MaxUploadBytes {
			response.Error(c, http.StatusBadRequest, uploadSizeExceededMsg)
			return
		}
		f, err := fh.Open()
		if err != nil {
			response.Error(c, http.StatusInternalServerError, "Internal server error")
			return
		}
		url, upErr := h.Tweets.UploadImage(c.Request.Context(), actorID, f, fh.Filename, fh.Header.Get("Content-Type"))
		_ = f.Close()
		if upErr != nil {
			respondError(c, h.Logger, upErr)
			return
		}
		image = url
	}

	if _, err := h.Tweets.Post(c.Request.Context(), actorID, content, image); err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.OK(c, http.StatusOK, "result", "Tweet created successfully")
}

// Get GET /api/tweet/:id
func (h *TweetHandler) Get(c *gin.Context) {
	tweet, err := h.Tweets.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.OK(c, http.StatusOK, "tweet", tweet)
}

// List GET /api/tweet
func (h *TweetHandler) List(c *gin.Context) {
	tweets, err := h.Tweets.List(c.Request.Context())
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.OK(c, http.StatusOK, "tweets", tweets)
}

// Like POST /api/tweet/:id/like
func (h *TweetHandler) Like(c *gin.Context) {
	actorID := c.GetString(middleware.CtxUserIDKey)
	if err := h.Tweets.Like(c.Request.Context(), actorID, c.Param("id")); err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.OK(c, http.StatusOK, "result", "Liked tweet successfully!")
}

// Dislike POST /api/tweet/:id/dislike
func (h *TweetHandler) Dislike(c *gin.Context) {
	actorID := c.GetString(middleware.CtxUserIDKey)
	if err := h.Tweets.Unlike(c.Request.Context(), actorID, c.Param("id")); err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.OK(c, http.StatusOK, "result", "Tweet disliked successfully")
}

type replyRequest struct {
	Content string `json:"content"`
}

// Reply POST /api/tweet/:id/reply
func (h *TweetHandler) Reply(c *gin.Context) {
	var req replyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "One or more fields are empty")
		return
	}

	actorID := c.GetString(middleware.CtxUserIDKey)
	if _, err := h.Tweets.Reply(c.Request.Context(), actorID, c.Param("id"), req.Content); err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.OK(c, http.StatusOK, "result", "Replied successfully")
}

// Retweet POST /api/tweet/:id/retweet
func (h *TweetHandler) Retweet(c *gin.Context) {
	actorID := c.GetString(middleware.CtxUserIDKey)
	if _, err := h.Tweets.Retweet(c.Request.Context(), actorID, c.Param("id")); err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.OK(c, http.StatusOK, "result", "Tweet retweeted successfully")
}

// Delete DELETE /api/tweet/:id
func (h *TweetHandler) Delete(c *gin.Context) {
	actorID := c.GetString(middleware.CtxUserIDKey)
	if err := h.Tweets.Delete(c.Request.Context(), actorID, c.Param("id")); err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.OK(c, http.StatusOK, "result", "Tweet deleted successfully")
}
