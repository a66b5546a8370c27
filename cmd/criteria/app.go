package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/helixml/criteria/domain/criteria"
	"github.com/helixml/criteria/domain/document"
	"github.com/helixml/criteria/infrastructure/codec"
	"github.com/helixml/criteria/internal/config"
	"github.com/helixml/criteria/internal/database"
)

// app holds the collaborators shared by the commands.
type app struct {
	decoder codec.Decoder
	db      database.Database
	logger  *slog.Logger
}

func newApp(ctx context.Context, cfg config.AppConfig, logger *slog.Logger) (app, error) {
	filter, err := criteria.FilterForPolicy(cfg.OptionPolicy(), logger, cfg.AllowedOptions()...)
	if err != nil {
		return app{}, fmt.Errorf("option policy: %w", err)
	}

	opts := []codec.DecoderOption{
		codec.WithOptionFilter(filter),
		codec.WithDefaultLimit(cfg.DefaultLimit()),
		codec.WithLogger(logger),
	}
	if path := cfg.TypesFile(); path != "" {
		registry, err := loadRegistry(path)
		if err != nil {
			return app{}, err
		}
		logger.Info("loaded document types", slog.String("path", path), slog.Any("types", registry.Names()))
		opts = append(opts, codec.WithRegistry(registry))
	}

	db, err := database.NewDatabase(ctx, cfg.DBURL(), database.WithLogger(logger))
	if err != nil {
		return app{}, fmt.Errorf("open database: %w", err)
	}

	return app{decoder: codec.NewDecoder(opts...), db: db, logger: logger}, nil
}

func loadRegistry(path string) (*document.Registry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open types file: %w", err)
	}
	defer func() { _ = f.Close() }()

	registry, err := codec.ReadRegistry(f)
	if err != nil {
		return nil, fmt.Errorf("types file %s: %w", path, err)
	}
	return registry, nil
}

func (a app) Close() {
	if err := a.db.Close(); err != nil {
		a.logger.Error("failed to close database", slog.Any("error", err))
	}
}
