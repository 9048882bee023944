package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"accounthub/internal/gateway"
	"accounthub/internal/middleware"
	"accounthub/internal/token"
)

// SetupRoutes wires the gateway's public surface.
func SetupRoutes(
	r *gin.Engine,
	authHandler *gateway.AuthGatewayHandler,
	userHandler *gateway.UserGatewayHandler,
	tokens *token.Service,
) *gin.Engine {

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// ---- public auth
	auth := r.Group("/public/auth")
	{
		auth.GET("/test-connection", authHandler.TestConnection)
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.POST("/refresh-token", authHandler.RefreshToken)
		auth.POST("/reset-password", authHandler.ResetPassword)
		auth.POST("/set-new-password", authHandler.SetNewPassword)
		auth.POST("/request-verification", authHandler.RequestEmailVerification)
		auth.POST("/verify-email", authHandler.VerifyEmail)
	}

	// ---- users, access token required
	users := r.Group("/public/users", middleware.AccessTokenGuard(tokens))
	{
		users.GET("", userHandler.ListUsers)
		users.GET("/:id", userHandler.GetUser)
		users.PUT("/:id", userHandler.UpdateUser)
		users.DELETE("/:id", userHandler.DeleteUser)
	}

	return r
}
