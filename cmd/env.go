package cmd

import (
	"context"
	"fmt"

	"game-tracker/core/config"
	"game-tracker/core/credentials"
	"game-tracker/core/logger"
	"game-tracker/core/storage"
	"game-tracker/core/store"
	"game-tracker/feature/livegame/archive"
	"game-tracker/feature/livegame/models"
	"game-tracker/feature/livegame/remote"
	gamesync "game-tracker/feature/livegame/sync"

	"go.uber.org/zap"
)

// env holds the components every command works with.
type env struct {
	cfg         *config.Config
	logger      *zap.Logger
	store       *store.Session
	client      remote.Client
	coordinator *gamesync.Coordinator
}

// newEnv loads configuration and opens the local store and remote client.
func newEnv(ctx context.Context) (*env, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	session, err := store.Open(ctx, cfg.Database, l, models.Schemas()...)
	if err != nil {
		return nil, fmt.Errorf("failed to open local store: %w", err)
	}

	creds := credentials.FromConfig(ctx, cfg.Credentials, l)
	client := remote.NewHTTPClient(cfg.Remote, creds, l)

	var archiver gamesync.Archiver
	if cfg.Storage.Enabled {
		a, err := newArchive(ctx, cfg.Storage, l)
		if err != nil {
			// Archiving is best effort; pushes go ahead without it.
			l.Warn("Archive unavailable", zap.Error(err))
		} else {
			archiver = a
		}
	}

	return &env{
		cfg:         cfg,
		logger:      l,
		store:       session,
		client:      client,
		coordinator: gamesync.New(session, client, archiver, l),
	}, nil
}

func newArchive(ctx context.Context, cfg storage.Config, l *zap.Logger) (*archive.Archive, error) {
	client, err := storage.NewClient(cfg)
	if err != nil {
		return nil, err
	}
	a := archive.New(client, cfg.Bucket, l)
	if err := a.EnsureBucket(ctx); err != nil {
		return nil, err
	}
	return a, nil
}

// team resolves the --team flag, falling back to the configured side.
func (r *env) team(flag string) (models.TeamNumber, error) {
	if flag == "" {
		flag = r.cfg.Tracker.Team
	}
	t := models.TeamNumber(flag)
	if !t.Valid() {
		return "", fmt.Errorf("unknown team %q, expected one or two", flag)
	}
	return t, nil
}
