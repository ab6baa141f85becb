package monitoring

import (
	"testing"
)

func TestMonitor_GetMetrics(t *testing.T) {
	m := NewMonitor()
	m.RecordMetric("test_metric", 42)

	metrics := m.GetMetrics()

	// Check if our metric is present
	value, exists := metrics["test_metric"]
	if !exists {
		t.Fatalf("Expected 'test_metric' to be present in metrics, but it was not")
	}

	// Check value
	if value != 42 {
		t.Errorf("Expected 'test_metric' to be 42, but got %v", value)
	}

	// Check uptime presence
	_, exists = metrics["uptime_seconds"]
	if !exists {
		t.Errorf("Expected 'uptime_seconds' to be present in metrics, but it was not")
	}
}

func TestMonitor_RecordStockLevel(t *testing.T) {
	m := NewMonitor()

	m.RecordStockLevel("Sugar", 12.5, "kg")

	metrics := m.GetMetrics()

	value, exists := metrics["stock_Sugar_quantity"]
	if !exists {
		t.Fatalf("Expected 'stock_Sugar_quantity' to be present in metrics, but it was not")
	}

	if value != 12.5 {
		t.Errorf("Expected 'stock_Sugar_quantity' to be 12.5, but got %v", value)
	}

	unit, exists := metrics["stock_Sugar_unit"]
	if !exists {
		t.Fatalf("Expected 'stock_Sugar_unit' to be present in metrics, but it was not")
	}

	if unit != "kg" {
		t.Errorf("Expected 'stock_Sugar_unit' to be %q, but got %v", "kg", unit)
	}

	// Timestamp is recorded alongside the reading
	_, exists = metrics["stock_Sugar_recorded_at"]
	if !exists {
		t.Errorf("Expected 'stock_Sugar_recorded_at' to be present in metrics, but it was not")
	}
}

func TestMonitor_Reset(t *testing.T) {
	m := NewMonitor()
	m.RecordMetric("test_metric", 42)

	m.Reset()

	metrics := m.GetMetrics()

	// Our test metric should be gone, but uptime should still be there
	_, exists := metrics["test_metric"]
	if exists {
		t.Errorf("Expected 'test_metric' to be removed after Reset(), but it was present")
	}

	// Uptime should still be present (it's added on GetMetrics call)
	_, exists = metrics["uptime_seconds"]
	if !exists {
		t.Errorf("Expected 'uptime_seconds' to be present in metrics, but it was not")
	}
}
