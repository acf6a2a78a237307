package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"twitter-clone-backend/internal/application"
	"twitter-clone-backend/internal/interface/middleware"
	"twitter-clone-backend/pkg/response"
	"twitter-clone-backend/pkg/validation"
)

const uploadSizeExceededMsg = "File size limit exceeded. Maximum file size allowed is 2MB."

type UserHandler struct {
	Users          *application.UserService
	Tweets         *application.TweetService
	Logger         *logrus.Logger
	MaxUploadBytes int64
}

func NewUserHandler(users *application.UserService, tweets *application.TweetService, logger *logrus.Logger, maxUploadBytes int64) *UserHandler {
	return &UserHandler{Users: users, Tweets: tweets, Logger: logger, MaxUploadBytes: maxUploadBytes}
}

type updateProfileRequest struct {
	Name        string `json:"name" binding:"required"`
	DateOfBirth string `json:"dateOfBirth" binding:"required,dob"`
	Location    string `json:"location" binding:"required"`
}

// Get GET /api/user/:id
func (h *UserHandler) Get(c *gin.Context) {
	profile, err := h.Users.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.OK(c, http.StatusOK, "user", profile)
}

// Follow POST /api/user/:id/follow
func (h *UserHandler) Follow(c *gin.Context) {
	actorID := c.GetString(middleware.CtxUserIDKey)
	if err := h.Users.Follow(c.Request.Context(), actorID, c.Param("id")); err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.OK(c, http.StatusOK, "result", "User followed successfully")
}

// Unfollow POST /api/user/:id/unfollow
func (h *UserHandler) Unfollow(c *gin.Context) {
	actorID := c.GetString(middleware.CtxUserIDKey)
	if err := h.Users.Unfollow(c.Request.Context(), actorID, c.Param("id")); err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.OK(c, http.StatusOK, "result", "User unfollowed successfully!")
}

// UpdateProfile PUT /api/user/:id
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, validation.ToMessage(err))
		return
	}

	actorID := c.GetString(middleware.CtxUserIDKey)
	u, err := h.Users.UpdateProfile(c.Request.Context(), actorID, c.Param("id"), req.Name, req.DateOfBirth, req.Location)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.OK(c, http.StatusOK, "user", u)
}

// TweetsByAuthor POST /api/user/:id/tweets
func (h *UserHandler) TweetsByAuthor(c *gin.Context) {
	tweets, err := h.Tweets.ListByAuthor(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.OK(c, http.StatusOK, "result", tweets)
}

// UploadProfilePic POST /api/user/:id/uploadProfilePic (multipart, field "file")
func (h *UserHandler) UploadProfilePic(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "No file uploaded")
		return
	}
	if fh.Size > h.MaxUploadBytes {
		response.Error(c, http.StatusBadRequest, uploadSizeExceededMsg)
		return
	}

	f, err := fh.Open()
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Internal server error")
		return
	}
	defer func() { _ = f.Close() }()

	filename, err := h.Users.UploadProfilePicture(c.Request.Context(), c.Param("id"), f, fh.Filename, fh.Header.Get("Content-Type"))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.OK(c, http.StatusOK, "filename", filename)
}
