package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/vidbrief/vidbrief-server/internal/api/http/cookie"
	"github.com/vidbrief/vidbrief-server/internal/api/http/router"
	httpserver "github.com/vidbrief/vidbrief-server/internal/api/http/server"
	"github.com/vidbrief/vidbrief-server/internal/config"
	"github.com/vidbrief/vidbrief-server/internal/logger"
	"github.com/vidbrief/vidbrief-server/internal/model"
	"github.com/vidbrief/vidbrief-server/internal/oauth"
	"github.com/vidbrief/vidbrief-server/internal/repository/postgres"
	redisrepo "github.com/vidbrief/vidbrief-server/internal/repository/redis"
	"github.com/vidbrief/vidbrief-server/internal/server"
	"github.com/vidbrief/vidbrief-server/internal/service"
	"github.com/vidbrief/vidbrief-server/internal/summarizer"
	"github.com/vidbrief/vidbrief-server/internal/token"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel)

	db, err := postgres.NewConnection(ctx, cfg.Database.DSN, cfg.Database.Timeout)
	if err != nil {
		logger.Fatal("failed to initialize storage", "error", err)
	}
	defer db.Close()

	userRepo := postgres.NewUserRepository(db)
	refreshTokenRepo := postgres.NewRefreshTokenRepository(db)
	summaryRepo := postgres.NewSummaryRepository(db)

	quotaStore, err := newQuotaStore(ctx, cfg, db)
	if err != nil {
		logger.Fatal("failed to initialize quota store", "error", err)
	}

	tokenManager := token.NewJWT(cfg.JWT.Secret, cfg.JWT.AccessTTL)

	tokenService := service.NewTokenService(tokenManager, refreshTokenRepo, cfg.JWT.RefreshTTL, logger)
	sessionService := service.NewSession(userRepo, tokenService, logger)
	quotaService := service.NewQuota(quotaStore, cfg.Guest.DailyLimit, cfg.Guest.Window(), logger)

	engine := summarizer.NewClient(cfg.Summarizer.BaseURL, cfg.Summarizer.Timeout)
	summaryService := service.NewSummary(engine, summaryRepo, quotaService, logger)

	googleVerifier := oauth.NewGoogleVerifier(cfg.Google.ClientID)
	cookieWriter := cookie.NewWriter(cfg.Cookie, cfg.JWT.AccessTTL, cfg.JWT.RefreshTTL)

	r := router.New(sessionService, tokenService, quotaService, summaryService, googleVerifier, cookieWriter, logger)
	srv := httpserver.NewHTTPServer(r.Register(), fmt.Sprintf(":%s", cfg.HTTP.Port))

	var sl model.SecurityLayer

	if cfg.HTTP.EnableHTTPS {
		sl = server.NewTLSListener(cfg.HTTP.CertFileName, cfg.HTTP.PrivateKeyFileName)
	} else {
		sl = server.NewPlainListener()
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func(s model.Server) {
		defer wg.Done()
		logger.Info("Starting server on", "address", s.Address())
		err := s.Start(sl)
		if err != nil {
			logger.Error("failed to start server", "error", err)
		}
	}(srv)

	wg.Add(1)
	go func() {
		defer wg.Done()
		runCleanup(ctx, logger, tokenService, quotaService, cfg.Cleanup.Interval)
	}()

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Stop(shutdownCtx); err != nil {
		logger.Error("error during server shutdown", "error", err, "address", srv.Address())
	}

	wg.Wait()
	logger.Info("shutdown complete")
}

func newQuotaStore(ctx context.Context, cfg *config.Config, db *postgres.Connection) (model.GuestQuotaStore, error) {
	if cfg.Redis.QuotaBackend != "redis" {
		return postgres.NewGuestQuotaRepository(db), nil
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return redisrepo.NewQuotaRepository(rdb), nil
}

func runCleanup(ctx context.Context, logger *logger.Logger, tokens *service.TokenService, quota *service.Quota, interval time.Duration) {
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			sweepCtx, cancel := context.WithTimeout(ctx, time.Minute)

			removed, err := tokens.CleanupExpired(sweepCtx)
			if err != nil {
				logger.Error("failed to sweep expired refresh tokens", "error", err)
			} else if removed > 0 {
				logger.Info("swept expired refresh tokens", "count", removed)
			}

			stale, err := quota.Cleanup(sweepCtx, time.Now())
			if err != nil {
				logger.Error("failed to sweep stale quota rows", "error", err)
			} else if stale > 0 {
				logger.Info("swept stale quota rows", "count", stale)
			}

			cancel()
		}
	}
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}
