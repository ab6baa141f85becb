package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

// ApiClient handles API requests to the Bakehouse API
type ApiClient struct {
	httpClient *http.Client
	BaseURL    string
	Token      string
	UseMock    bool
}

// NewApiClient creates a new API client. Credentials come from the
// BAKEHOUSE_CLI_EMAIL and BAKEHOUSE_CLI_PASSWORD environment variables,
// falling back to the seeded admin account.
func NewApiClient() *ApiClient {
	baseURL := os.Getenv("BAKEHOUSE_API_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	client := &ApiClient{
		httpClient: &http.Client{
			Timeout: time.Second * 10,
		},
		BaseURL: baseURL,
		UseMock: false, // Default to trying the real server first
	}

	// Verify connectivity - if server is not available, use mock data
	if !client.ping() {
		fmt.Printf("Warning: API server at %s is not available. Using mock data.\n", baseURL)
		client.UseMock = true
		return client
	}

	email := os.Getenv("BAKEHOUSE_CLI_EMAIL")
	if email == "" {
		email = "admin@rfb.com"
	}
	password := os.Getenv("BAKEHOUSE_CLI_PASSWORD")
	if password == "" {
		password = "admin123"
	}
	if err := client.login(email, password); err != nil {
		fmt.Printf("Warning: login failed (%v). Using mock data.\n", err)
		client.UseMock = true
	}

	return client
}

// ping checks if the API server is available
func (c *ApiClient) ping() bool {
	resp, err := c.httpClient.Get(c.BaseURL + "/health")
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

// login exchanges credentials for a bearer token
func (c *ApiClient) login(email, password string) error {
	payload, err := json.Marshal(map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Post(c.BaseURL+"/api/v1/login", "application/json", bytes.NewBuffer(payload))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("login failed with status %d: %s", resp.StatusCode, string(body))
	}

	var out struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return err
	}
	c.Token = out.Token
	return nil
}

// get performs an authenticated GET and decodes the JSON response into v
func (c *ApiClient) get(path string, v interface{}) error {
	req, err := http.NewRequest("GET", c.BaseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.Token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("GET %s failed with status %d: %s", path, resp.StatusCode, string(body))
	}

	return json.NewDecoder(resp.Body).Decode(v)
}

// Unit is the unit shape returned by the API
type Unit struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
}

// Stock is the current quantity on hand for an item
type Stock struct {
	Quantity float64 `json:"quantity"`
	UnitID   string  `json:"unitId"`
	Unit     *Unit   `json:"unit,omitempty"`
}

// Item represents an inventory item with its stock
type Item struct {
	ID               string  `json:"id"`
	Name             string  `json:"name"`
	Type             string  `json:"type"`
	Category         string  `json:"category"`
	BaseUnit         *Unit   `json:"baseUnit,omitempty"`
	ReorderThreshold float64 `json:"reorderThreshold"`
	AvgPrice         float64 `json:"avgPrice"`
	Stock            *Stock  `json:"stock,omitempty"`
}

// Supplier is the supplier shape returned by the API
type Supplier struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// PurchaseItem is one line of a purchase
type PurchaseItem struct {
	ItemID    string  `json:"itemId"`
	Item      *Item   `json:"item,omitempty"`
	Quantity  float64 `json:"quantity"`
	Unit      *Unit   `json:"unit,omitempty"`
	UnitPrice float64 `json:"unitPrice"`
	LineTotal float64 `json:"lineTotal"`
}

// Purchase represents a committed purchase order
type Purchase struct {
	ID          string         `json:"id"`
	Date        time.Time      `json:"date"`
	Supplier    *Supplier      `json:"supplier,omitempty"`
	TotalAmount float64        `json:"totalAmount"`
	Items       []PurchaseItem `json:"items,omitempty"`
}

// Recipe is the recipe shape returned by the API
type Recipe struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Production represents a committed production run
type Production struct {
	ID               string    `json:"id"`
	Date             time.Time `json:"date"`
	Recipe           *Recipe   `json:"recipe,omitempty"`
	ProducedQuantity float64   `json:"producedQuantity"`
	ProducedUnit     *Unit     `json:"producedUnit,omitempty"`
	TotalCost        float64   `json:"totalCost"`
	CostPerUnit      float64   `json:"costPerUnit"`
}

// LowStockEntry is one item at or below its reorder threshold
type LowStockEntry struct {
	ItemID     string  `json:"itemId"`
	Name       string  `json:"name"`
	Available  float64 `json:"available"`
	Threshold  float64 `json:"threshold"`
	UnitSymbol string  `json:"unitSymbol"`
}

// dashboardStats is the subset of the stats payload the CLI uses
type dashboardStats struct {
	LowStock []LowStockEntry `json:"lowStock"`
}

// GetItems retrieves all inventory items with their stock
func (c *ApiClient) GetItems() ([]Item, error) {
	if c.UseMock {
		return c.getMockItems(), nil
	}

	var items []Item
	if err := c.get("/api/v1/items", &items); err != nil {
		return nil, err
	}
	return items, nil
}

// GetPurchases retrieves committed purchases, newest first
func (c *ApiClient) GetPurchases() ([]Purchase, error) {
	if c.UseMock {
		return c.getMockPurchases(), nil
	}

	var purchases []Purchase
	if err := c.get("/api/v1/purchases", &purchases); err != nil {
		return nil, err
	}
	return purchases, nil
}

// GetProductions retrieves committed production runs, newest first
func (c *ApiClient) GetProductions() ([]Production, error) {
	if c.UseMock {
		return c.getMockProductions(), nil
	}

	var productions []Production
	if err := c.get("/api/v1/productions", &productions); err != nil {
		return nil, err
	}
	return productions, nil
}

// GetLowStock retrieves the items at or below their reorder threshold
func (c *ApiClient) GetLowStock() ([]LowStockEntry, error) {
	if c.UseMock {
		return c.getMockLowStock(), nil
	}

	var stats dashboardStats
	if err := c.get("/api/v1/dashboard/stats", &stats); err != nil {
		return nil, err
	}
	return stats.LowStock, nil
}

// Mock data generators
// getMockItems generates mock stock data
func (c *ApiClient) getMockItems() []Item {
	kg := &Unit{ID: "u-kg", Name: "Kilogram", Symbol: "kg"}
	liter := &Unit{ID: "u-l", Name: "Liter", Symbol: "L"}
	return []Item{
		{
			ID: "i-flour", Name: "Bread Flour", Type: "RAW_MATERIAL", Category: "Dry goods",
			BaseUnit: kg, ReorderThreshold: 10, AvgPrice: 1.2,
			Stock: &Stock{Quantity: 42.5, UnitID: kg.ID, Unit: kg},
		},
		{
			ID: "i-sugar", Name: "Caster Sugar", Type: "RAW_MATERIAL", Category: "Dry goods",
			BaseUnit: kg, ReorderThreshold: 5, AvgPrice: 1.8,
			Stock: &Stock{Quantity: 3.2, UnitID: kg.ID, Unit: kg},
		},
		{
			ID: "i-milk", Name: "Whole Milk", Type: "RAW_MATERIAL", Category: "Dairy",
			BaseUnit: liter, ReorderThreshold: 8, AvgPrice: 0.9,
			Stock: &Stock{Quantity: 12, UnitID: liter.ID, Unit: liter},
		},
		{
			ID: "i-vanilla", Name: "Vanilla Essence", Type: "ESSENCE", Category: "Flavoring",
			BaseUnit: liter, ReorderThreshold: 0.5, AvgPrice: 24,
		},
	}
}

// getMockPurchases generates mock purchase data
func (c *ApiClient) getMockPurchases() []Purchase {
	return []Purchase{
		{
			ID:          "p-1",
			Date:        time.Now().AddDate(0, 0, -2),
			Supplier:    &Supplier{ID: "s-1", Name: "Millbrook Grains"},
			TotalAmount: 186.40,
			Items:       []PurchaseItem{{Quantity: 100, UnitPrice: 1.15, LineTotal: 115}, {Quantity: 40, UnitPrice: 1.786, LineTotal: 71.40}},
		},
		{
			ID:          "p-2",
			Date:        time.Now().AddDate(0, 0, -9),
			Supplier:    &Supplier{ID: "s-2", Name: "Valley Dairy Co-op"},
			TotalAmount: 54.00,
			Items:       []PurchaseItem{{Quantity: 60, UnitPrice: 0.90, LineTotal: 54}},
		},
	}
}

// getMockProductions generates mock production data
func (c *ApiClient) getMockProductions() []Production {
	piece := &Unit{ID: "u-pc", Name: "Piece", Symbol: "pc"}
	return []Production{
		{
			ID:               "pr-1",
			Date:             time.Now().AddDate(0, 0, -1),
			Recipe:           &Recipe{ID: "r-1", Name: "Sourdough Loaf"},
			ProducedQuantity: 24,
			ProducedUnit:     piece,
			TotalCost:        31.20,
			CostPerUnit:      1.30,
		},
		{
			ID:               "pr-2",
			Date:             time.Now().AddDate(0, 0, -3),
			Recipe:           &Recipe{ID: "r-2", Name: "Vanilla Sponge"},
			ProducedQuantity: 6,
			ProducedUnit:     piece,
			TotalCost:        19.50,
			CostPerUnit:      3.25,
		},
	}
}

// getMockLowStock generates mock low-stock data
func (c *ApiClient) getMockLowStock() []LowStockEntry {
	return []LowStockEntry{
		{ItemID: "i-sugar", Name: "Caster Sugar", Available: 3.2, Threshold: 5, UnitSymbol: "kg"},
		{ItemID: "i-vanilla", Name: "Vanilla Essence", Available: 0, Threshold: 0.5, UnitSymbol: "L"},
	}
}
