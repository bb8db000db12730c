package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/syntrixbase/docgate/internal/gateway"
	"github.com/syntrixbase/docgate/internal/metrics"
	"github.com/syntrixbase/docgate/internal/server"
	"github.com/syntrixbase/docgate/internal/store"
)

var storeFactory = func(cfg store.Config, logger *slog.Logger) documentStore {
	return store.New(cfg,
		store.WithLogger(logger),
		store.WithPoolMonitor(metrics.PoolMonitor()),
	)
}

var serverFactory = func(cfg server.Config, logger *slog.Logger, name string) server.Service {
	return server.New(cfg, logger, server.WithName(name))
}

// Init connects to the store and registers the routes. A store that cannot
// be reached fails Init, and nothing is listening yet when it does.
func (m *Manager) Init(ctx context.Context) error {
	if err := m.initStore(ctx); err != nil {
		return err
	}
	m.initServer()
	return nil
}

func (m *Manager) initStore(ctx context.Context) error {
	s := storeFactory(m.cfg.Store, slog.Default())
	if err := s.Connect(ctx); err != nil {
		return fmt.Errorf("failed to connect to document store: %w", err)
	}
	m.store = s
	return nil
}

func (m *Manager) initServer() {
	srv := serverFactory(m.cfg.Server, slog.Default(), m.cfg.Service.Name)

	api := gateway.NewServer(m.store, m.cfg.Gateway, gateway.WithLogger(slog.Default()))
	api.RegisterRoutes(srv.HTTPMux())

	m.server = srv
	m.logger.Info("Routes registered",
		"database", m.cfg.Store.Database,
		"collection", m.cfg.Store.Collection,
		"metrics", m.cfg.Gateway.Metrics.Enabled,
	)
}
