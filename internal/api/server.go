package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/gorm"

	"bakehouse/internal/inventory"
	"bakehouse/internal/monitoring"
	"bakehouse/internal/notify"
	"bakehouse/internal/report"
)

// BakeryAPI represents the main API handler for the bakery
type BakeryAPI struct {
	Router    *gin.Engine
	db        *gorm.DB
	svc       *inventory.Service
	monitor   *monitoring.Monitor
	hub       *notify.Hub
	reporter  *report.Reporter
	jwtSecret []byte
	tokenTTL  time.Duration
}

// New creates a new bakery API instance
func New(db *gorm.DB, svc *inventory.Service, monitor *monitoring.Monitor, hub *notify.Hub, jwtSecret string, tokenHours int) *BakeryAPI {
	router := gin.Default()

	api := &BakeryAPI{
		Router:    router,
		db:        db,
		svc:       svc,
		monitor:   monitor,
		hub:       hub,
		reporter:  report.NewReporter(db),
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  time.Duration(tokenHours) * time.Hour,
	}

	api.setupRoutes()
	return api
}

// setupRoutes configures all API endpoints
func (b *BakeryAPI) setupRoutes() {
	// Health check
	b.Router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Bakehouse API is running"})
	})

	b.Router.POST("/api/v1/login", b.Login)

	v1 := b.Router.Group("/api/v1")
	v1.Use(b.AuthRequired())
	{
		// Reference data
		v1.GET("/units", b.ListUnits)
		v1.POST("/units", b.CreateUnit)
		v1.GET("/conversions", b.ListConversionFactors)
		v1.POST("/conversions", b.CreateConversionFactor)

		// Items and stock
		v1.GET("/items", b.ListItems)
		v1.POST("/items", b.CreateItem)
		v1.GET("/items/:id", b.GetItem)
		v1.PUT("/items/:id", b.UpdateItem)
		v1.DELETE("/items/:id", b.DeleteItem)
		v1.GET("/items/:id/stock", b.GetItemStock)

		// Suppliers
		v1.GET("/suppliers", b.ListSuppliers)
		v1.POST("/suppliers", b.CreateSupplier)
		v1.DELETE("/suppliers/:id", b.DeleteSupplier)

		// Recipes and scaling
		v1.GET("/recipes", b.ListRecipes)
		v1.POST("/recipes", b.CreateRecipe)
		v1.GET("/recipes/:id", b.GetRecipe)
		v1.DELETE("/recipes/:id", b.DeleteRecipe)
		v1.POST("/recipes/:id/scale", b.ScaleRecipe)

		// Purchases
		v1.GET("/purchases", b.ListPurchases)
		v1.POST("/purchases", b.CreatePurchase)
		v1.DELETE("/purchases/:id", b.DeletePurchase)

		// Productions
		v1.GET("/productions", b.ListProductions)
		v1.POST("/productions", b.CreateProduction)
		v1.POST("/productions/plan", b.PlanProduction)
		v1.DELETE("/productions/:id", b.DeleteProduction)

		// Trash bin
		v1.GET("/trash", b.ListTrash)
		v1.POST("/trash/:entity/:id/restore", b.RestoreFromTrash)

		// Dashboard and reports
		v1.GET("/dashboard/stats", b.DashboardStats)
		v1.GET("/reports/stock", b.StockReport)
		v1.GET("/reports/production-costs", b.ProductionCostReport)
		v1.GET("/reports/supplier-spend", b.SupplierSpendReport)
		v1.GET("/reports/item-spend", b.ItemSpendReport)
	}

	// Low-stock alert feed
	b.Router.GET("/ws/alerts", b.hub.HandleWebSocket)
}
