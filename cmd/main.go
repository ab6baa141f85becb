package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"bakehouse/internal/api"
	"bakehouse/internal/config"
	"bakehouse/internal/database"
	"bakehouse/internal/inventory"
	"bakehouse/internal/models"
	"bakehouse/internal/monitoring"
	"bakehouse/internal/notify"
)

var (
	port        = flag.Int("port", 0, "API server port (overrides config)")
	metricsPort = flag.Int("metrics-port", 0, "Metrics server port (overrides config)")
	configFile  = flag.String("config", "configs/config.yaml", "Path to configuration file")
)

func main() {
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configFile)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}
	if *metricsPort != 0 {
		cfg.Server.MetricsPort = *metricsPort
	}

	// Initialize database
	db, err := database.Init(cfg.Database.Driver, cfg.Database.DSN)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer database.Close()

	if err := database.Seed(db, cfg.Auth.AdminEmail, cfg.Auth.AdminPass); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}

	// Inventory service with low-stock alerts fanned out over websockets
	hub := notify.NewHub()
	svc := inventory.NewService(db)
	svc.OnLowStock = func(item models.Item, quantity float64, unitSymbol string) {
		hub.Broadcast(notify.LowStockAlert{
			ItemID:     item.ID,
			ItemName:   item.Name,
			Quantity:   quantity,
			UnitSymbol: unitSymbol,
			Threshold:  item.ReorderThreshold,
			At:         time.Now(),
		})
	}

	monitor := monitoring.NewMonitor()

	// Initialize API server
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: api.New(db, svc, monitor, hub, cfg.Auth.JWTSecret, cfg.Auth.TokenHours).Router,
	}

	// Start metrics server
	go startMetricsServer(cfg.Server.MetricsPort)

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down servers...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("API server shutdown error: %v", err)
		}
	}()

	// Start server
	log.Printf("Starting API server on port %d", cfg.Server.Port)
	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("API server error: %v", err)
	}
}

func startMetricsServer(port int) {
	metricsRouter := gin.Default()
	metricsRouter.GET("/metrics", gin.WrapH(promhttp.Handler()))

	metricsServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: metricsRouter,
	}

	log.Printf("Starting metrics server on port %d", port)
	if err := metricsServer.ListenAndServe(); err != http.ErrServerClosed {
		log.Printf("Metrics server error: %v", err)
	}
}
