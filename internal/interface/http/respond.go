package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"twitter-clone-backend/internal/domain/apperr"
	"twitter-clone-backend/internal/interface/middleware"
	"twitter-clone-backend/pkg/response"
)

// respondError maps a domain error to its boundary status and public
// message. Internal causes are logged with the request correlation fields
// and redacted from the body.
func respondError(c *gin.Context, logger *logrus.Logger, err error) {
	if apperr.KindOf(err) == apperr.KindInternal && logger != nil {
		logger.WithFields(logrus.Fields{
			"request_id": c.GetString(middleware.CtxRequestIDKey),
			"real_ip":    c.GetString(middleware.CtxRealIPKey),
			"path":       c.FullPath(),
			"error":      err.Error(),
		}).Error("request failed")
	}
	response.Error(c, apperr.HTTPStatus(err), apperr.PublicMessage(err))
}
