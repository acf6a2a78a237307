package modules

import (
	"github.com/gin-gonic/gin"

	handlers "twitter-clone-backend/internal/interface/http"
	"twitter-clone-backend/internal/interface/middleware"
	"twitter-clone-backend/pkg/helpers"
)

// UserModule wires the profile, follow-graph and upload endpoints.
// Public: GET /api/user/:id, POST /api/user/:id/tweets,
// POST /api/user/:id/uploadProfilePic
// Protected: POST /api/user/:id/follow, POST /api/user/:id/unfollow,
// PUT /api/user/:id
type UserModule struct {
	Handler *handlers.UserHandler
	JWT     *helpers.JWTManager
}

func NewUserModule(h *handlers.UserHandler, jwt *helpers.JWTManager) *UserModule {
	return &UserModule{Handler: h, JWT: jwt}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	rg.GET("/user/:id", m.Handler.Get)
	rg.POST("/user/:id/tweets", m.Handler.TweetsByAuthor)
	// Unauthenticated in the original API surface.
	rg.POST("/user/:id/uploadProfilePic", m.Handler.UploadProfilePic)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.JWT))
	{
		auth.POST("/user/:id/follow", m.Handler.Follow)
		auth.POST("/user/:id/unfollow", m.Handler.Unfollow)
		auth.PUT("/user/:id", m.Handler.UpdateProfile)
	}
}
