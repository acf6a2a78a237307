package router

import (
	"twitter-clone-backend/internal/application"
	"twitter-clone-backend/internal/container"
	pginfra "twitter-clone-backend/internal/infrastructure/postgres"
	handlers "twitter-clone-backend/internal/interface/http"
	"twitter-clone-backend/internal/router/modules"
)

// InitModules constructs repositories, services and handlers and registers
// all feature modules with the router registry. Called once at startup.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	pool := container.GetPGPool()

	userRepo := pginfra.NewUserRepository(pool)
	tweetRepo := pginfra.NewTweetRepository(pool)

	authSvc := application.NewAuthService(userRepo, container.GetJWT(), container.GetRedis(), logger)
	userSvc := application.NewUserService(userRepo, container.GetGCS(), cfg.GCSBucket, container.GetRedis(), logger)
	tweetSvc := application.NewTweetService(tweetRepo, userRepo, container.GetGCS(), cfg.GCSBucket, logger)

	authHandler := handlers.NewAuthHandler(authSvc, logger)
	userHandler := handlers.NewUserHandler(userSvc, tweetSvc, logger, cfg.UploadMaxBytes)
	tweetHandler := handlers.NewTweetHandler(tweetSvc, logger, cfg.UploadMaxBytes)

	r.Add(modules.NewAuthModule(authHandler))
	r.Add(modules.NewUserModule(userHandler, container.GetJWT()))
	r.Add(modules.NewTweetModule(tweetHandler, container.GetJWT()))
}
