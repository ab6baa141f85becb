package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// reportRange parses the optional from/to query parameters, defaulting to
// the last 30 days. The upper bound is exclusive.
func reportRange(c *gin.Context) (time.Time, time.Time, bool) {
	now := time.Now()
	from := now.AddDate(0, 0, -30)
	to := now.AddDate(0, 0, 1)

	if s := c.Query("from"); s != "" {
		d, err := time.ParseInLocation("2006-01-02", s, time.Local)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "from must be in YYYY-MM-DD format"})
			return time.Time{}, time.Time{}, false
		}
		from = d
	}
	if s := c.Query("to"); s != "" {
		d, err := time.ParseInLocation("2006-01-02", s, time.Local)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "to must be in YYYY-MM-DD format"})
			return time.Time{}, time.Time{}, false
		}
		to = d.AddDate(0, 0, 1)
	}
	return from, to, true
}

// StockReport returns the current stock snapshot
func (b *BakeryAPI) StockReport(c *gin.Context) {
	entries, err := b.reporter.StockOnHand()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build stock report"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"stock": entries})
}

// ProductionCostReport returns per-recipe production cost summaries
func (b *BakeryAPI) ProductionCostReport(c *gin.Context) {
	from, to, ok := reportRange(c)
	if !ok {
		return
	}

	summaries, err := b.reporter.ProductionCosts(from, to)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build production cost report"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"from": from, "to": to, "recipes": summaries})
}

// SupplierSpendReport returns per-supplier purchase totals
func (b *BakeryAPI) SupplierSpendReport(c *gin.Context) {
	from, to, ok := reportRange(c)
	if !ok {
		return
	}

	summaries, err := b.reporter.SupplierSpend(from, to)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build supplier spend report"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"from": from, "to": to, "suppliers": summaries})
}

// ItemSpendReport returns purchase spend grouped by item
func (b *BakeryAPI) ItemSpendReport(c *gin.Context) {
	from, to, ok := reportRange(c)
	if !ok {
		return
	}

	summaries, err := b.reporter.ItemSpend(from, to)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build item spend report"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"from": from, "to": to, "items": summaries})
}
