package controllers

import (
	"github.com/gin-gonic/gin"

	"hbnb/internal/services"
	"hbnb/pkg/middleware"
)

func callerOf(c *gin.Context) services.Caller {
	userID, isAdmin := middleware.CurrentUser(c)
	return services.Caller{UserID: userID, IsAdmin: isAdmin}
}
