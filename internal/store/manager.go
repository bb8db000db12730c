package store

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"go.mongodb.org/mongo-driver/event"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// State is the connectivity state of a Manager.
type State int32

const (
	StateDisconnected State = iota
	StateConnecting
	StateConnected
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateDisconnected:
		return "disconnected"
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("state(%d)", int32(s))
	}
}

// connectClient is swapped in tests.
var connectClient = func(ctx context.Context, opts *options.ClientOptions) (*mongo.Client, error) {
	return mongo.Connect(ctx, opts)
}

// Manager owns the process-wide connection to the document store. It is
// connected once during startup and shared by every request afterwards;
// it never reconnects on its own.
type Manager struct {
	cfg         Config
	logger      *slog.Logger
	poolMonitor *event.PoolMonitor

	mu        sync.RWMutex
	state     State
	attempted bool
	client    *mongo.Client
	db        *mongo.Database
}

// Option configures the Manager.
type Option func(*Manager)

// WithLogger sets the logger for the manager.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// WithPoolMonitor attaches a driver pool monitor to the client.
func WithPoolMonitor(monitor *event.PoolMonitor) Option {
	return func(m *Manager) {
		m.poolMonitor = monitor
	}
}

// New creates a disconnected Manager.
func New(cfg Config, opts ...Option) *Manager {
	m := &Manager{
		cfg:    cfg,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.logger = m.logger.With("component", "store")
	return m
}

// Connect dials the store and verifies the connection with a ping. A Manager
// makes a single connection attempt in its lifetime: later calls return
// ErrAlreadyConnected, or ErrConnectFailed if the attempt failed.
func (m *Manager) Connect(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.attempted {
		if m.state == StateConnected {
			return ErrAlreadyConnected
		}
		return ErrConnectFailed
	}
	m.attempted = true

	uri, err := m.cfg.ConnectionURI()
	if err != nil {
		m.state = StateFailed
		return fmt.Errorf("%w: %w", ErrConnectFailed, err)
	}

	m.state = StateConnecting
	if m.cfg.ConnectTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.cfg.ConnectTimeout)
		defer cancel()
	}

	client, err := connectClient(ctx, m.clientOptions(uri))
	if err != nil {
		m.state = StateFailed
		m.logger.Error("Failed to create store client", "error", err)
		return fmt.Errorf("%w: %w", ErrConnectFailed, err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		m.state = StateFailed
		_ = client.Disconnect(context.WithoutCancel(ctx))
		m.logger.Error("Failed to ping store", "error", err)
		return fmt.Errorf("%w: %w", ErrConnectFailed, err)
	}

	m.client = client
	m.db = client.Database(m.cfg.Database)
	m.state = StateConnected

	m.logger.Info("Connected to document store",
		"database", m.cfg.Database,
		"collection", m.cfg.Collection,
	)
	return nil
}

func (m *Manager) clientOptions(uri string) *options.ClientOptions {
	opts := options.Client().
		ApplyURI(uri).
		SetMaxPoolSize(m.cfg.MaxPoolSize).
		SetMinPoolSize(m.cfg.MinPoolSize)

	if m.cfg.MaxConnIdleTime > 0 {
		opts.SetMaxConnIdleTime(m.cfg.MaxConnIdleTime)
	}
	if m.cfg.ConnectTimeout > 0 {
		opts.SetConnectTimeout(m.cfg.ConnectTimeout).
			SetServerSelectionTimeout(m.cfg.ConnectTimeout)
	}
	if m.cfg.AppName != "" {
		opts.SetAppName(m.cfg.AppName)
	}
	if m.poolMonitor != nil {
		opts.SetPoolMonitor(m.poolMonitor)
	}
	return opts
}

// State reports the current connectivity state.
func (m *Manager) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// Database returns the connected database handle. Callers borrow it for the
// duration of a request and must not disconnect its client.
func (m *Manager) Database() (*mongo.Database, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.state != StateConnected {
		return nil, ErrNotConnected
	}
	return m.db, nil
}

// Collection returns the configured collection on the connected database.
func (m *Manager) Collection() (*mongo.Collection, error) {
	db, err := m.Database()
	if err != nil {
		return nil, err
	}
	return db.Collection(m.cfg.Collection), nil
}

// Ping checks that the primary is reachable over the existing connection.
func (m *Manager) Ping(ctx context.Context) error {
	db, err := m.Database()
	if err != nil {
		return err
	}
	return db.Client().Ping(ctx, readpref.Primary())
}

// Close disconnects the client. It is safe to call on a manager that never
// connected.
func (m *Manager) Close(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.client == nil {
		return nil
	}
	err := m.client.Disconnect(ctx)
	m.client = nil
	m.db = nil
	m.state = StateDisconnected
	if err != nil {
		return fmt.Errorf("store disconnect: %w", err)
	}
	m.logger.Info("Disconnected from document store")
	return nil
}
