package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tsehay_admin/internal/config"
	"tsehay_admin/internal/repositories"
	"tsehay_admin/internal/router"
	"tsehay_admin/internal/services"
	"tsehay_admin/pkg/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

const sessionSweepInterval = 10 * time.Minute

func main() {
	cfg, err := config.Load()
	if err != nil {
		utils.InitLogger("info", true)
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	utils.InitLogger(cfg.LogLevel, cfg.LogPretty)

	store := repositories.NewMemoryStore(repositories.WithLatency(cfg.Mock.Latency))
	defer store.Close()
	utils.LogInfo("Mock data service started", map[string]interface{}{"latency": cfg.Mock.Latency.String()})

	authRepo := repositories.NewAuthRepository(bcrypt.DefaultCost)
	if _, err := authRepo.CreateUser(cfg.Admin.Username, cfg.Admin.Password); err != nil {
		log.Fatal().Err(err).Msg("Failed to create admin account")
	}

	tokens, err := utils.NewTokenManager(cfg.Session.Secret, cfg.Session.TTL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create token manager")
	}
	sessions := services.NewSessionRegistry(store)
	authService := services.NewAuthService(authRepo, tokens, sessions)

	engine := gin.New()
	engine.Use(gin.Recovery(), utils.GinLogger())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.CORSOrigins
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept"}
	corsConfig.AllowCredentials = true
	engine.Use(cors.New(corsConfig))

	if err := router.Setup(engine, router.Options{
		AuthService:   authService,
		SiteURL:       cfg.SiteURL,
		SecureCookies: cfg.Session.Secure,
	}); err != nil {
		log.Fatal().Err(err).Msg("Failed to set up routes")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go sweepSessions(ctx, sessions)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		utils.LogInfo("Server starting", map[string]interface{}{"port": cfg.Port, "dashboard": "http://localhost:" + cfg.Port + "/admin"})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			utils.LogError(err, "Failed to start server")
			stop()
		}
	}()

	<-ctx.Done()
	utils.LogInfo("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		utils.LogError(err, "Server shutdown failed")
	}
}

func sweepSessions(ctx context.Context, sessions *services.SessionRegistry) {
	ticker := time.NewTicker(sessionSweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			if n := sessions.Sweep(); n > 0 {
				utils.LogDebug("Expired sessions removed", map[string]interface{}{"count": n})
			}
		case <-ctx.Done():
			return
		}
	}
}
