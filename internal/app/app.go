package app

import (
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq"
	"go.uber.org/zap"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "accounthub/docs"
	"accounthub/internal/config"
	"accounthub/internal/envelope"
	"accounthub/internal/gateway"
	"accounthub/internal/handlers"
	"accounthub/internal/repositories"
	"accounthub/internal/routes"
	"accounthub/internal/rpc"
	"accounthub/internal/services"
	"accounthub/internal/token"
	"accounthub/internal/utils"
)

func mustSetup(service string, cfg *config.Config) (*zap.SugaredLogger, *token.Service) {
	logger, err := utils.InitLogger(utils.LoggerConfig{
		Level: cfg.Log.Level,
		Dev:   cfg.Log.Dev,
		File:  cfg.Log.File,
	})
	if err != nil {
		log.Fatalf("logger init: %v", err)
	}
	sugar := logger.Sugar().With("service", service)

	opts, err := cfg.TokenOptions()
	if err != nil {
		sugar.Fatalw("invalid token config", "error", err)
	}
	return sugar, token.NewService(cfg.JWT.Secret, opts)
}

// RunAuthService starts the credential service: owns auth_credentials,
// issues tokens, answers auth.* commands over the message endpoint.
func RunAuthService(cfg *config.Config) {
	sugar, tokens := mustSetup("auth-service", cfg)
	defer sugar.Sync()

	db, err := repositories.Connect(cfg.AuthService.DSN, 10)
	if err != nil {
		sugar.Fatalw("database connect failed", "error", err)
	}
	defer db.Close()
	if err := repositories.MigrateAuth(db); err != nil {
		sugar.Fatalw("migration failed", "error", err)
	}

	credRepo := repositories.NewCredentialRepository(db)
	emailService := services.NewEmailService(
		cfg.Email.SMTPHost,
		cfg.Email.SMTPPort,
		cfg.Email.SMTPUser,
		cfg.Email.SMTPPassword,
		cfg.Email.FromEmail,
		cfg.Email.DryRun,
		sugar,
	)
	authService := services.NewAuthService(credRepo, tokens, emailService, sugar)

	factory := envelope.NewFactory("auth-service")
	server := rpc.NewServer("auth-service", sugar)
	handlers.NewAuthHandler(authService, factory, sugar).Mount(server)

	addr := fmt.Sprintf(":%d", cfg.AuthService.Port)
	sugar.Infow("auth service listening", "addr", addr)
	if err := server.Run(addr); err != nil {
		sugar.Fatalw("server stopped", "error", err)
	}
}

// RunUserService starts the profile service: owns users, answers the
// user.* commands over the message endpoint.
func RunUserService(cfg *config.Config) {
	sugar, _ := mustSetup("user-service", cfg)
	defer sugar.Sync()

	db, err := repositories.Connect(cfg.UserService.DSN, 10)
	if err != nil {
		sugar.Fatalw("database connect failed", "error", err)
	}
	defer db.Close()
	if err := repositories.MigrateUsers(db); err != nil {
		sugar.Fatalw("migration failed", "error", err)
	}

	userRepo := repositories.NewUserRepository(db)
	userService := services.NewUserService(userRepo, sugar)

	factory := envelope.NewFactory("user-service")
	server := rpc.NewServer("user-service", sugar)
	handlers.NewUserHandler(userService, factory, sugar).Mount(server)

	addr := fmt.Sprintf(":%d", cfg.UserService.Port)
	sugar.Infow("user service listening", "addr", addr)
	if err := server.Run(addr); err != nil {
		sugar.Fatalw("server stopped", "error", err)
	}
}

// RunGateway starts the public HTTP entrypoint. It holds one client per
// downstream service for its whole lifetime and closes them on exit.
func RunGateway(cfg *config.Config) {
	sugar, tokens := mustSetup("api-gateway", cfg)
	defer sugar.Sync()

	authClient := rpc.NewServiceClient("auth-service", cfg.Services.AuthURL, cfg.CallTimeout(), sugar)
	userClient := rpc.NewServiceClient("user-service", cfg.Services.UserURL, cfg.CallTimeout(), sugar)
	defer authClient.Close()
	defer userClient.Close()

	userGateway := gateway.NewUserGatewayService(userClient, sugar)
	authGateway := gateway.NewAuthGatewayService(authClient, userGateway, sugar)

	authHandler := gateway.NewAuthGatewayHandler(authGateway, sugar)
	userHandler := gateway.NewUserGatewayHandler(userGateway, sugar)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(corsMiddleware())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	routes.SetupRoutes(router, authHandler, userHandler, tokens)

	addr := fmt.Sprintf(":%d", cfg.Gateway.Port)
	sugar.Infow("gateway listening", "addr", addr)
	if err := router.Run(addr); err != nil {
		sugar.Fatalw("server stopped", "error", err)
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
