package report

import (
	"fmt"
	"time"

	"github.com/jinzhu/gorm"
)

// Reporter aggregates committed purchases and production runs into
// date-ranged summaries. All money figures are plain sums of the amounts
// frozen at commit time; nothing is recomputed from current prices.
type Reporter struct {
	db *gorm.DB
}

// NewReporter creates a reporter over the given database handle
func NewReporter(db *gorm.DB) *Reporter {
	return &Reporter{db: db}
}

// RecipeCostSummary aggregates the production runs of one recipe
type RecipeCostSummary struct {
	RecipeID       string  `json:"recipeId"`
	RecipeName     string  `json:"recipeName"`
	Runs           int     `json:"runs"`
	TotalProduced  float64 `json:"totalProduced"`
	TotalCost      float64 `json:"totalCost"`
	AvgCostPerUnit float64 `json:"avgCostPerUnit"`
	MinCostPerUnit float64 `json:"minCostPerUnit"`
	MaxCostPerUnit float64 `json:"maxCostPerUnit"`
}

// SupplierSpendSummary aggregates the purchases made from one supplier
type SupplierSpendSummary struct {
	SupplierID   string  `json:"supplierId"`
	SupplierName string  `json:"supplierName"`
	Orders       int     `json:"orders"`
	TotalSpend   float64 `json:"totalSpend"`
	AvgOrder     float64 `json:"avgOrder"`
}

// ItemSpendSummary aggregates purchase lines by item. Quantities are not
// summed because lines for one item may be denominated in different units;
// spend is unit-independent.
type ItemSpendSummary struct {
	ItemID     string  `json:"itemId"`
	ItemName   string  `json:"itemName"`
	Lines      int     `json:"lines"`
	TotalSpend float64 `json:"totalSpend"`
}

// StockOnHandEntry is one line of the current stock snapshot. Quantity is
// reported in the unit the stock row is kept in.
type StockOnHandEntry struct {
	ItemID            string  `json:"itemId"`
	ItemName          string  `json:"itemName"`
	Quantity          float64 `json:"quantity"`
	UnitSymbol        string  `json:"unitSymbol"`
	ReorderThreshold  float64 `json:"reorderThreshold"`
	LastPurchasePrice float64 `json:"lastPurchasePrice"`
}

// StockOnHand returns the current stock snapshot, one entry per item that
// has a stock row. Trashed items are excluded.
func (r *Reporter) StockOnHand() ([]StockOnHandEntry, error) {
	rows, err := r.db.Table("stocks").
		Select(`stocks.item_id, items.name, stocks.quantity, units.symbol,
			items.reorder_threshold, items.last_purchase_price`).
		Joins("JOIN items ON items.id = stocks.item_id").
		Joins("JOIN units ON units.id = stocks.unit_id").
		Where("items.deleted_at IS NULL").
		Order("items.name").
		Rows()
	if err != nil {
		return nil, fmt.Errorf("failed to query stock on hand: %w", err)
	}
	defer rows.Close()

	entries := []StockOnHandEntry{}
	for rows.Next() {
		var e StockOnHandEntry
		if err := rows.Scan(&e.ItemID, &e.ItemName, &e.Quantity, &e.UnitSymbol,
			&e.ReorderThreshold, &e.LastPurchasePrice); err != nil {
			return nil, fmt.Errorf("failed to scan stock on hand row: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// ProductionCosts returns per-recipe cost summaries for runs dated within
// [from, to). Trashed runs are excluded.
func (r *Reporter) ProductionCosts(from, to time.Time) ([]RecipeCostSummary, error) {
	rows, err := r.db.Table("productions").
		Select(`productions.recipe_id, recipes.name,
			COUNT(*), SUM(productions.produced_quantity), SUM(productions.total_cost),
			AVG(productions.cost_per_unit), MIN(productions.cost_per_unit), MAX(productions.cost_per_unit)`).
		Joins("JOIN recipes ON recipes.id = productions.recipe_id").
		Where("productions.deleted_at IS NULL AND productions.date >= ? AND productions.date < ?", from, to).
		Group("productions.recipe_id, recipes.name").
		Order("SUM(productions.total_cost) DESC").
		Rows()
	if err != nil {
		return nil, fmt.Errorf("failed to query production costs: %w", err)
	}
	defer rows.Close()

	summaries := []RecipeCostSummary{}
	for rows.Next() {
		var s RecipeCostSummary
		if err := rows.Scan(&s.RecipeID, &s.RecipeName, &s.Runs, &s.TotalProduced,
			&s.TotalCost, &s.AvgCostPerUnit, &s.MinCostPerUnit, &s.MaxCostPerUnit); err != nil {
			return nil, fmt.Errorf("failed to scan production cost row: %w", err)
		}
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}

// SupplierSpend returns per-supplier purchase totals for purchases dated
// within [from, to). Trashed purchases are excluded.
func (r *Reporter) SupplierSpend(from, to time.Time) ([]SupplierSpendSummary, error) {
	rows, err := r.db.Table("purchases").
		Select(`purchases.supplier_id, suppliers.name,
			COUNT(*), SUM(purchases.total_amount), AVG(purchases.total_amount)`).
		Joins("JOIN suppliers ON suppliers.id = purchases.supplier_id").
		Where("purchases.deleted_at IS NULL AND purchases.date >= ? AND purchases.date < ?", from, to).
		Group("purchases.supplier_id, suppliers.name").
		Order("SUM(purchases.total_amount) DESC").
		Rows()
	if err != nil {
		return nil, fmt.Errorf("failed to query supplier spend: %w", err)
	}
	defer rows.Close()

	summaries := []SupplierSpendSummary{}
	for rows.Next() {
		var s SupplierSpendSummary
		if err := rows.Scan(&s.SupplierID, &s.SupplierName, &s.Orders, &s.TotalSpend, &s.AvgOrder); err != nil {
			return nil, fmt.Errorf("failed to scan supplier spend row: %w", err)
		}
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}

// ItemSpend returns per-item purchase spend for purchases dated within
// [from, to), highest spend first
func (r *Reporter) ItemSpend(from, to time.Time) ([]ItemSpendSummary, error) {
	rows, err := r.db.Table("purchase_items").
		Select(`purchase_items.item_id, items.name,
			COUNT(*), SUM(purchase_items.line_total)`).
		Joins("JOIN purchases ON purchases.id = purchase_items.purchase_id").
		Joins("JOIN items ON items.id = purchase_items.item_id").
		Where("purchases.deleted_at IS NULL AND purchases.date >= ? AND purchases.date < ?", from, to).
		Group("purchase_items.item_id, items.name").
		Order("SUM(purchase_items.line_total) DESC").
		Rows()
	if err != nil {
		return nil, fmt.Errorf("failed to query item spend: %w", err)
	}
	defer rows.Close()

	summaries := []ItemSpendSummary{}
	for rows.Next() {
		var s ItemSpendSummary
		if err := rows.Scan(&s.ItemID, &s.ItemName, &s.Lines, &s.TotalSpend); err != nil {
			return nil, fmt.Errorf("failed to scan item spend row: %w", err)
		}
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}
