package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	stdhttp "net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/vncsmyrnk/bookmarks/internal/adapters/crypto/argon2"
	"github.com/vncsmyrnk/bookmarks/internal/adapters/handler/http"
	"github.com/vncsmyrnk/bookmarks/internal/adapters/repository/memory"
	"github.com/vncsmyrnk/bookmarks/internal/adapters/repository/postgres"
	"github.com/vncsmyrnk/bookmarks/internal/adapters/token/jwt"
	"github.com/vncsmyrnk/bookmarks/internal/config"
	"github.com/vncsmyrnk/bookmarks/internal/core/ports"
	"github.com/vncsmyrnk/bookmarks/internal/core/services"
	"github.com/vncsmyrnk/bookmarks/internal/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger := logging.NewJSON(os.Stdout, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	userRepo, bookmarkRepo, db, err := repositories(ctx, cfg)
	if err != nil {
		log.Fatal(err)
	}
	if db != nil {
		defer db.Close()
	}

	issuer, err := jwt.NewIssuer(cfg.JWTSecret)
	if err != nil {
		log.Fatal(err)
	}

	hasher := argon2.New(argon2.Params{
		Memory:      cfg.Argon2.MemoryKiB,
		Iterations:  cfg.Argon2.Iterations,
		Parallelism: cfg.Argon2.Parallelism,
	}, cfg.Argon2.Workers)

	authSvc := services.NewAuthService(userRepo, hasher, issuer, logger)
	userSvc := services.NewUserService(userRepo)
	bookmarkSvc := services.NewBookmarkService(bookmarkRepo, logger)

	handler := http.NewHandler(
		http.NewAuthHandler(authSvc, logger),
		http.NewUserHandler(userSvc, logger),
		http.NewBookmarkHandler(bookmarkSvc, logger),
		issuer,
		logger,
	)
	server := &stdhttp.Server{Addr: cfg.HTTPAddr, Handler: handler}

	go func() {
		logger.Info(ctx, "listening", "addr", cfg.HTTPAddr, "storage", cfg.Storage)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, stdhttp.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	<-ctx.Done()
	logger.Info(context.Background(), "gracefully shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal(err)
	}
}

func repositories(ctx context.Context, cfg config.Config) (ports.UserRepository, ports.BookmarkRepository, *sql.DB, error) {
	if cfg.Storage == config.StorageMemory {
		return memory.NewUserRepository(), memory.NewBookmarkRepository(), nil, nil
	}

	db, err := postgres.Open(ctx, cfg.Postgres.DSN())
	if err != nil {
		return nil, nil, nil, err
	}
	if err := postgres.Migrate(ctx, db); err != nil {
		db.Close()
		return nil, nil, nil, err
	}
	return postgres.NewUserRepository(db), postgres.NewBookmarkRepository(db), db, nil
}
