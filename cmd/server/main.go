package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"group-chat/api"
	"group-chat/auth"
	"group-chat/internal"
	"group-chat/moderation"
	"group-chat/observability"
	"group-chat/repositories"
	"group-chat/runtime"
	"group-chat/runtime/workers"
	"group-chat/services"
	"group-chat/sink"

	"github.com/Netflix/go-env"
	"github.com/blugelabs/bluge"
	"github.com/dgraph-io/badger/v4"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/database"
	"github.com/mama165/sdk-go/logs"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"
)

// Exit codes reported to the service manager.
const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
)

const (
	debugPort     = 8081
	debugEndpoint = "/inspect"
)

func main() {
	code, err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Server terminated with error: %v\n", err)
	}
	os.Exit(code)
}

// run wires every component and blocks until a signal or a fatal error.
// Returning instead of exiting lets the deferred closes run.
func run() (int, error) {
	// 1. Configuration & Logger
	_ = godotenv.Load()
	var config internal.Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return exitConfig, fmt.Errorf("config error: %w", err)
	}
	charReplacement, err := internal.CharacterRune(config.CharReplacement)
	if err != nil {
		return exitConfig, err
	}
	logger := logs.GetLoggerFromString(config.LogLevel)
	clock := func() time.Time { return time.Now().UTC() }

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 2. Storage
	db, err := badger.Open(buildBadgerOpts(config, logger, ctx))
	if err != nil {
		return exitRuntime, fmt.Errorf("database opening failed: %w", err)
	}
	defer func() {
		logger.Info("Closing BadgerDB...")
		_ = db.Close()
	}()
	if logger.Enabled(ctx, slog.LevelDebug) {
		logger.Info("Debug Badger inspector available", "url", fmt.Sprintf("http://localhost:%d%s", debugPort, debugEndpoint))
		database.StartDebugServer(db, debugPort, debugEndpoint, repositories.InspectMapper)
	}

	blugeWriter, err := bluge.OpenWriter(bluge.DefaultConfig(config.BlugeFilepath))
	if err != nil {
		return exitRuntime, fmt.Errorf("failed to open bluge writer: %w", err)
	}
	defer func() {
		logger.Info("Closing Bluge...")
		_ = blugeWriter.Close()
	}()

	words := config.Words()
	if config.CensoredDir != "" {
		dictionary, err := moderation.LoadDictionary(os.DirFS(config.CensoredDir), ".")
		if err != nil {
			return exitConfig, fmt.Errorf("loading censored words: %w", err)
		}
		logger.Info("Censored dictionary loaded", "languages", dictionary.Languages, "words", len(dictionary.Words))
		words = append(words, dictionary.Words...)
	}
	moderator, err := moderation.NewModerator(words, charReplacement, logger)
	if err != nil {
		return exitConfig, fmt.Errorf("moderation setup failed: %w", err)
	}

	// 3. Repositories, event pipeline and services
	metrics := observability.NewMetrics()
	dispatcher := runtime.NewDispatcher(config.BufferSize, metrics, logger)
	registry := runtime.NewRegistry()

	groupRepository := repositories.NewGroupRepository(db, logger)
	membershipRepository := repositories.NewMembershipRepository(db, logger)
	messageRepository := repositories.NewMessageRepository(db, logger)
	userRepository := repositories.NewUserRepository(db, logger, config.TouchEvery)
	messageIndex := repositories.NewMessageIndex(blugeWriter, logger)

	registry.Subscribe("log", sink.NewLogSink(logger))
	registry.Subscribe("search", sink.NewSearchSink(messageIndex, logger))
	if config.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: config.RedisAddr, DB: config.RedisDB})
		defer func() { _ = client.Close() }()
		if err := client.Ping(ctx).Err(); err != nil {
			logger.Warn("Redis unreachable at startup, broadcasts will fail until it is back", "addr", config.RedisAddr, "error", err)
		}
		registry.Subscribe("redis", sink.NewRedisSink(client, clock, logger))
	}

	gate := services.NewAuthorizationGate(groupRepository, membershipRepository, clock)
	groupService := services.NewGroupService(groupRepository, membershipRepository, dispatcher, metrics, clock, logger)
	membershipService := services.NewMembershipService(gate, membershipRepository, userRepository, dispatcher, metrics, clock, logger)
	messageService := services.NewMessageService(gate, messageRepository, messageIndex, moderator, dispatcher, metrics, clock, logger)

	// 4. Transport
	if !logger.Enabled(ctx, slog.LevelDebug) {
		gin.SetMode(gin.ReleaseMode)
	}
	limiter := api.NewUserRateLimiter(config.RateLimitPerMinute, config.RateLimitBurst, config.RateLimitIdleTTL, clock, logger)
	router := api.NewRouter(api.RouterDeps{
		Handler:  api.NewHandler(groupService, membershipService, messageService, logger),
		Verifier: auth.NewTokenVerifier(config.JWTSecret, config.JWTIssuer),
		Users:    userRepository,
		Limiter:  limiter,
		Metrics:  metrics,
		Health: func() error {
			if db.IsClosed() {
				return errors.New("badger closed")
			}
			return nil
		},
		Clock: clock,
		Log:   logger,
	})
	server := &http.Server{
		Addr:         config.Addr(),
		Handler:      router,
		ReadTimeout:  config.ReadTimeout,
		WriteTimeout: config.WriteTimeout,
	}

	// 5. Workers and HTTP server share one lifetime
	supervisor := workers.NewSupervisor(logger)
	supervisor.Add(
		workers.NewEventFanout(logger, dispatcher.Events(), registry, metrics, config.SinkTimeout),
		workers.NewChannelCapacityWorker(logger, []workers.NamedQueue{{Name: "events", Queue: dispatcher}}, metrics, config.MetricInterval),
		limiter,
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		supervisor.Run(gctx)
		return nil
	})
	g.Go(func() error {
		logger.Info("Starting HTTP server", "address", server.Addr, "at", clock())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server error: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down gracefully...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		return exitRuntime, err
	}
	logger.Info("Program stopped cleanly")
	return exitOK, nil
}

func buildBadgerOpts(config internal.Config, logger *slog.Logger, ctx context.Context) badger.Options {
	options := badger.DefaultOptions(config.BadgerFilepath)
	if logger.Enabled(ctx, slog.LevelDebug) {
		return options.WithLoggingLevel(badger.DEBUG)
	}
	return options.WithLoggingLevel(badger.INFO)
}
