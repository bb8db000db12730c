package services

import (
	"context"
	"log/slog"
	"sync"

	"github.com/syntrixbase/docgate/internal/config"
	"github.com/syntrixbase/docgate/internal/gateway/rest"
	"github.com/syntrixbase/docgate/internal/server"
)

// documentStore is the store connection as the manager sees it: the request
// surface handed to the gateway plus the lifecycle the manager keeps for
// itself.
type documentStore interface {
	rest.DocumentStore
	Connect(ctx context.Context) error
	Close(ctx context.Context) error
}

// Manager wires the store connection, the HTTP server and the routes
// together, and owns their lifecycle.
type Manager struct {
	cfg    *config.Config
	logger *slog.Logger

	store  documentStore
	server server.Service

	wg sync.WaitGroup
}

func NewManager(cfg *config.Config) *Manager {
	return &Manager{
		cfg:    cfg,
		logger: slog.Default().With("component", "services"),
	}
}

// Server returns the HTTP server, or nil before Init has succeeded.
func (m *Manager) Server() server.Service {
	return m.server
}
