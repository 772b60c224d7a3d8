package printing

import (
	"context"
	"sync"
	"time"
)

// Monitor rescans for printers on an interval and fires the manager's
// attach and detach callbacks on changes.
type Monitor struct {
	manager  *Manager
	interval time.Duration
	cancel   context.CancelFunc
	wg       sync.WaitGroup
}

// NewMonitor creates a monitor. Call Start to begin scanning.
func NewMonitor(manager *Manager, interval time.Duration) *Monitor {
	return &Monitor{manager: manager, interval: interval}
}

// Start launches the scan loop.
func (m *Monitor) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel

	m.wg.Add(1)
	go func() {
		defer m.wg.Done()

		known := make(map[string]*Device)
		for _, d := range m.manager.All() {
			known[d.ID] = d
		}

		ticker := time.NewTicker(m.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				m.diff(known)
			}
		}
	}()
}

// Stop ends the scan loop.
func (m *Monitor) Stop() {
	if m.cancel != nil {
		m.cancel()
		m.wg.Wait()
	}
}

func (m *Monitor) diff(known map[string]*Device) {
	if _, err := m.manager.Scan(); err != nil {
		return
	}

	current := make(map[string]*Device)
	for _, d := range m.manager.All() {
		current[d.ID] = d
	}

	for id, d := range current {
		if _, ok := known[id]; !ok && m.manager.onAttached != nil {
			m.manager.onAttached(d)
		}
	}
	for id := range known {
		if _, ok := current[id]; !ok && m.manager.onDetached != nil {
			m.manager.onDetached(id)
		}
	}

	for id := range known {
		delete(known, id)
	}
	for id, d := range current {
		known[id] = d
	}
}
