package services

import (
	"context"

	"github.com/syntrixbase/docgate/internal/logging"
)

// Shutdown stops accepting requests, waits for in-flight ones, closes the
// store connection, then the log files.
func (m *Manager) Shutdown(ctx context.Context) {
	if m.server != nil {
		if err := m.server.Stop(ctx); err != nil {
			m.logger.Error("Error shutting down HTTP server", "error", err)
		}
	}

	done := make(chan struct{})
	go func() {
		m.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
		m.logger.Warn("Timeout waiting for HTTP server to exit")
	}

	if m.store != nil {
		if err := m.store.Close(ctx); err != nil {
			m.logger.Error("Error closing document store", "error", err)
		}
	}

	m.logger.Info("Shutdown complete")
	if err := logging.Shutdown(); err != nil {
		m.logger.Error("Error closing log files", "error", err)
	}
}
