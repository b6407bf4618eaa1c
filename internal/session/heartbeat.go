package session

import (
	"context"
	"time"

	"github.com/MobiqoAnalytics/mobiqo-go/internal/storage"

	"go.uber.org/zap"
)

// ensureHeartbeatLocked starts the liveness loop if none is running. The
// caller must hold m.mu. At most one loop exists at a time; the generation
// captured here pins every tick of this loop to the lifecycle that started
// it.
func (m *Manager) ensureHeartbeatLocked() {
	if m.hbStop != nil {
		return
	}

	stop := make(chan struct{})
	m.hbStop = stop
	gen := m.generation

	m.hbWG.Add(1)
	go m.heartbeatLoop(gen, stop)

	m.logger.Info("Heartbeat loop started", zap.Duration("interval", m.interval))
}

// stopHeartbeatLocked cancels the running loop, if any. The caller must
// hold m.mu.
func (m *Manager) stopHeartbeatLocked() {
	if m.hbStop == nil {
		return
	}
	close(m.hbStop)
	m.hbStop = nil
	m.logger.Info("Heartbeat loop stopped")
}

func (m *Manager) heartbeatLoop(gen uint64, stop chan struct{}) {
	defer m.hbWG.Done()

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.heartbeatTick(gen)
		case <-stop:
			return
		}
	}
}

// heartbeatTick performs one liveness report. Heartbeats are best-effort:
// every failure is logged and dropped, and the loop keeps running. A tick
// whose generation is no longer current (the loop was stopped after the
// ticker fired) does nothing.
func (m *Manager) heartbeatTick(gen uint64) {
	m.mu.RLock()
	current := gen == m.generation
	sessionID := m.sessionID
	m.mu.RUnlock()

	if !current || sessionID == "" {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), m.interval)
	defer cancel()

	resp, err := m.api.Heartbeat(ctx, sessionID)
	if err != nil {
		m.logger.Warn("Heartbeat failed", zap.Error(err))
		return
	}

	// Server-driven session rotation: adopt the new id, but only if this
	// lifecycle is still the current one and a session is still open.
	if resp.SessionID != "" && resp.SessionID != sessionID {
		m.mu.Lock()
		if gen == m.generation && m.sessionID != "" {
			m.sessionID = resp.SessionID
			m.setKey(storage.KeySessionID, resp.SessionID)
			m.logger.Info("Session rotated by server", zap.String("session_id", resp.SessionID))
		}
		m.mu.Unlock()
	}
}
