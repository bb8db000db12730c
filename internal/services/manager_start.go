package services

import (
	"context"
)

// Start runs the HTTP server in the background until bgCtx is canceled or
// Shutdown is called.
func (m *Manager) Start(bgCtx context.Context) {
	if m.server == nil {
		m.logger.Error("Start called before Init")
		return
	}

	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		if err := m.server.Start(bgCtx); err != nil {
			m.logger.Error("HTTP server stopped", "error", err)
		}
	}()
}
