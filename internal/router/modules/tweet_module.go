package modules

import (
	"github.com/gin-gonic/gin"

	handlers "twitter-clone-backend/internal/interface/http"
	"twitter-clone-backend/internal/interface/middleware"
	"twitter-clone-backend/pkg/helpers"
)

// TweetModule wires the content-graph endpoints.
// Public: GET /api/tweet, GET /api/tweet/:id
// Protected: POST /api/tweet and the like/dislike/reply/retweet/delete
// operations.
type TweetModule struct {
	Handler *handlers.TweetHandler
	JWT     *helpers.JWTManager
}

func NewTweetModule(h *handlers.TweetHandler, jwt *helpers.JWTManager) *TweetModule {
	return &TweetModule{Handler: h, JWT: jwt}
}

func (m *TweetModule) Register(rg *gin.RouterGroup) {
	rg.GET("/tweet", m.Handler.List)
	rg.GET("/tweet/:id", m.Handler.Get)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.JWT))
	{
		auth.POST("/tweet", m.Handler.Post)
		auth.POST("/tweet/:id/like", m.Handler.Like)
		auth.POST("/tweet/:id/dislike", m.Handler.Dislike)
		auth.POST("/tweet/:id/reply", m.Handler.Reply)
		auth.POST("/tweet/:id/retweet", m.Handler.Retweet)
		auth.DELETE("/tweet/:id", m.Handler.Delete)
	}
}
