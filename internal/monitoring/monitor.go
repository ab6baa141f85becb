package monitoring

import (
	"sync"
	"time"
)

// Monitor collects point-in-time operational readings for the dashboard,
// alongside the prometheus collectors used for scraping.
type Monitor struct {
	metrics      map[string]interface{}
	metricsMutex sync.RWMutex
	startTime    time.Time
}

// NewMonitor creates a new monitoring instance
func NewMonitor() *Monitor {
	return &Monitor{
		metrics:   make(map[string]interface{}),
		startTime: time.Now(),
	}
}

// RecordMetric records a metric value
func (m *Monitor) RecordMetric(name string, value interface{}) {
	m.metricsMutex.Lock()
	defer m.metricsMutex.Unlock()
	m.metrics[name] = value
}

// GetMetric returns a specific metric value
func (m *Monitor) GetMetric(name string) (interface{}, bool) {
	m.metricsMutex.RLock()
	defer m.metricsMutex.RUnlock()
	value, exists := m.metrics[name]
	return value, exists
}

// GetMetrics returns all current metrics
func (m *Monitor) GetMetrics() map[string]interface{} {
	m.metricsMutex.RLock()
	defer m.metricsMutex.RUnlock()

	// Create a copy to avoid concurrent map access
	metrics := make(map[string]interface{}, len(m.metrics))
	for k, v := range m.metrics {
		metrics[k] = v
	}

	// Add system metrics
	metrics["uptime_seconds"] = time.Since(m.startTime).Seconds()

	return metrics
}

// Reset clears all metrics
func (m *Monitor) Reset() {
	m.metricsMutex.Lock()
	defer m.metricsMutex.Unlock()
	m.metrics = make(map[string]interface{})
}

// RecordStockLevel records the current quantity for an item so the dashboard
// can show per-item readings without another database round trip
func (m *Monitor) RecordStockLevel(itemName string, quantity float64, unitSymbol string) {
	m.metricsMutex.Lock()
	defer m.metricsMutex.Unlock()

	prefix := "stock_" + itemName + "_"
	m.metrics[prefix+"quantity"] = quantity
	m.metrics[prefix+"unit"] = unitSymbol
	m.metrics[prefix+"recorded_at"] = time.Now().Format(time.RFC3339)
}
