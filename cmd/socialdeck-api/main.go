package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m1z23r/drift/pkg/drift"
	"github.com/m1z23r/drift/pkg/middleware"
	"github.com/mkrstic/socialdeck-api/internal/config"
	"github.com/mkrstic/socialdeck-api/internal/database"
	"github.com/mkrstic/socialdeck-api/internal/handlers"
	authmw "github.com/mkrstic/socialdeck-api/internal/middleware"
	"github.com/mkrstic/socialdeck-api/internal/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx := context.Background()

	db, err := database.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Migrate(ctx); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	jwtService := services.NewJWTService(cfg.JWTSecret, cfg.JWTAccessExpiry, cfg.JWTRefreshExpiry)
	userService := services.NewUserService(db)
	tokenService := services.NewTokenService(db)
	teamService := services.NewTeamService(db)
	billingService := services.NewBillingService(db)
	quotaService := services.NewQuotaService(db, billingService)
	workspaceService := services.NewWorkspaceService(db, quotaService)
	socialService := services.NewSocialAccountService(db)
	emailService := services.NewEmailService(cfg.SMTP)

	authHandler := handlers.NewAuthHandler(userService, teamService, tokenService, jwtService, emailService)
	userHandler := handlers.NewUserHandler(userService)
	teamHandler := handlers.NewTeamHandler(teamService, quotaService, billingService)
	workspaceHandler := handlers.NewWorkspaceHandler(workspaceService, teamService)
	socialHandler := handlers.NewSocialHandler(cfg, socialService)
	webhookHandler := handlers.NewWebhookHandler(cfg, userService, billingService)

	app := drift.New()

	if cfg.IsProduction() {
		app.SetMode(drift.ReleaseMode)
	} else {
		app.SetMode(drift.DebugMode)
	}

	app.Use(middleware.Recovery())
	app.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization"},
		MaxAge:       86400,
	}))
	app.Use(middleware.BodyParser())

	api := app.Group("/api/v1")

	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/refresh", authHandler.RefreshToken)
	auth.Post("/logout", authHandler.Logout)

	api.Post("/webhooks/billing", webhookHandler.HandleBillingEvent)

	protected := api.Group("")
	protected.Use(authmw.Auth(jwtService))

	protected.Post("/auth/logout-all", authHandler.LogoutAll)

	protected.Get("/users/me", userHandler.GetMe)
	protected.Patch("/users/me", userHandler.UpdateMe)

	protected.Get("/teams/me", teamHandler.GetMyTeam)
	protected.Get("/teams/me/usage", teamHandler.GetUsage)

	protected.Get("/workspaces", workspaceHandler.List)
	protected.Post("/workspaces", workspaceHandler.Create)
	protected.Get("/workspaces/:workspaceId", workspaceHandler.Get)
	protected.Patch("/workspaces/:workspaceId", workspaceHandler.Update)
	protected.Delete("/workspaces/:workspaceId", workspaceHandler.Delete)

	protected.Get("/workspaces/:workspaceId/users", workspaceHandler.GetUsers)
	protected.Post("/workspaces/:workspaceId/add-user", workspaceHandler.AddUser)
	protected.Post("/workspaces/:workspaceId/remove-user", workspaceHandler.RemoveUser)
	protected.Post("/workspaces/:workspaceId/update-user-role", workspaceHandler.UpdateUserRole)

	protected.Get("/workspaces/:workspaceId/social-media-accounts", workspaceHandler.GetSocialAccounts)
	protected.Post("/workspaces/:workspaceId/add-social-media-account", workspaceHandler.AddSocialAccount)
	protected.Post("/workspaces/:workspaceId/remove-social-media-account", workspaceHandler.RemoveSocialAccount)

	protected.Get("/social-accounts", socialHandler.List)
	protected.Get("/social-accounts/:provider/consent", socialHandler.GetConsentURL)
	protected.Post("/social-accounts/exchange", socialHandler.ExchangeCode)
	protected.Delete("/social-accounts/:accountId", socialHandler.Disconnect)

	api.Get("/health", func(c *drift.Context) {
		_ = c.JSON(200, map[string]string{"status": "ok"})
	})

	go func() {
		ticker := time.NewTicker(1 * time.Hour)
		for range ticker.C {
			_ = tokenService.CleanupExpired(context.Background())
		}
	}()

	go func() {
		addr := fmt.Sprintf(":%s", cfg.Port)
		log.Printf("Server starting on %s", addr)
		if err := app.Run(addr); err != nil {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
}
