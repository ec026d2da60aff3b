package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"

	"github.com/becopy/becopy-api/internal/config"
	"github.com/becopy/becopy-api/internal/geo"
	"github.com/becopy/becopy-api/internal/handler"
	"github.com/becopy/becopy-api/internal/openai"
	"github.com/becopy/becopy-api/internal/repository"
	"github.com/becopy/becopy-api/internal/usecase"
	"github.com/becopy/becopy-api/internal/validate"
	"github.com/becopy/becopy-api/shared/auth"
	"github.com/becopy/becopy-api/shared/mailer"
	"github.com/becopy/becopy-api/shared/provider"
)

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	if err := godotenv.Load(); err != nil {
		logger.Debug().Msg("no .env file found, relying on environment variables")
	}

	cfg := config.Load(&logger)

	client, err := mongo.Connect(options.Client().ApplyURI(cfg.Mongo.URI))
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to MongoDB")
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			logger.Error().Err(err).Msg("failed to disconnect from MongoDB")
		}
	}()

	pingCtx, cancelPing := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelPing()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		logger.Fatal().Err(err).Msg("failed to ping MongoDB")
	}

	db := client.Database(cfg.Mongo.Database)

	indexCtx, cancelIndex := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelIndex()

	adminRepo := repository.NewAdminMongoRepository(indexCtx, &logger, db)
	userRepo := repository.NewUserMongoRepository(indexCtx, &logger, db)
	identityRepo := repository.NewIdentityMongoRepository(db)
	flowRepo := repository.NewAuthFlowMongoRepository(indexCtx, &logger, db)
	codeRepo := repository.NewVerificationCodeMongoRepository(indexCtx, &logger, db)
	inviteRepo := repository.NewInviteMongoRepository(indexCtx, &logger, db)
	settingRepo := repository.NewSettingMongoRepository(db)
	jobRepo := repository.NewJobMongoRepository(indexCtx, &logger, db)

	jwtAuth := auth.NewJWTAuthenticator(cfg.Token.Issuer, cfg.Token.Issuer)
	mail := mailer.NewMailer(&logger)
	providers := provider.NewRegistry(
		provider.NewGoogleOAuthProvider(cfg.OAuth.GoogleClientID),
		provider.NewLinkedInOAuthProvider(),
	)
	resolver := geo.NewResolver(&logger, cfg.Geo.RequestTimeout)
	completions := openai.NewClient(cfg.OpenAI.APIKey, cfg.OpenAI.BaseURL, cfg.OpenAI.Model, cfg.OpenAI.Timeout)

	validator, err := validate.New()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to build request validator")
	}

	adminUsecase := usecase.NewAdminUsecase(adminRepo, jwtAuth, cfg)
	authUsecase := usecase.NewAuthUsecase(userRepo, identityRepo, flowRepo, codeRepo, providers, jwtAuth, mail, cfg)
	passwordResetUsecase := usecase.NewPasswordResetUsecase(userRepo, codeRepo, mail, cfg)
	userUsecase := usecase.NewUserUsecase(userRepo)
	inviteUsecase := usecase.NewInviteUsecase(inviteRepo, userRepo)
	settingUsecase := usecase.NewSettingUsecase(settingRepo)
	jobUsecase := usecase.NewJobUsecase(jobRepo, userRepo, resolver, cfg)
	chatUsecase := usecase.NewChatUsecase(userRepo, cfg)
	convertUsecase := usecase.NewConvertUsecase(completions)

	router := handler.NewRouter(handler.Handlers{
		Admin:   handler.NewAdminHandler(adminUsecase, validator, &logger),
		Auth:    handler.NewAuthHandler(authUsecase, passwordResetUsecase, validator, &logger),
		User:    handler.NewUserHandler(userUsecase, validator, &logger),
		Invite:  handler.NewInviteHandler(inviteUsecase, validator, &logger),
		Setting: handler.NewSettingHandler(settingUsecase, validator, &logger),
		Job:     handler.NewJobHandler(jobUsecase, validator, &logger),
		Chat:    handler.NewChatHandler(chatUsecase, &logger),
		Convert: handler.NewConvertHandler(convertUsecase, validator, &logger),
	}, jwtAuth, cfg, &logger)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", cfg.HTTPAddr).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrors <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		logger.Fatal().Err(err).Msg("server error")
	case sig := <-quit:
		logger.Info().Str("signal", sig.String()).Msg("shutdown started")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("graceful shutdown failed, forcing close")
			if err := server.Close(); err != nil {
				logger.Error().Err(err).Msg("failed to close server")
			}
		}

		logger.Info().Msg("shutdown complete")
	}
}
