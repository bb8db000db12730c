package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
)

// PoolStatus is a snapshot of the server's connection counters.
type PoolStatus struct {
	Current   int64 `json:"current" bson:"current"`
	Available int64 `json:"available" bson:"available"`
}

type serverStatusReply struct {
	Connections PoolStatus `bson:"connections"`
}

// PoolStatus asks the server for its live connection counts. The result is
// never cached. Callers use it for diagnostics only.
func (m *Manager) PoolStatus(ctx context.Context) (PoolStatus, error) {
	db, err := m.Database()
	if err != nil {
		return PoolStatus{}, err
	}

	if m.cfg.PoolStatusTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.cfg.PoolStatusTimeout)
		defer cancel()
	}

	var reply serverStatusReply
	admin := db.Client().Database("admin")
	if err := admin.RunCommand(ctx, bson.D{{Key: "serverStatus", Value: 1}}).Decode(&reply); err != nil {
		return PoolStatus{}, fmt.Errorf("serverStatus: %w", err)
	}
	return reply.Connections, nil
}
