package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/voyara/voyara-client/internal/config"
	"github.com/voyara/voyara-client/internal/models"
	"github.com/voyara/voyara-client/internal/stub"
)

var (
	version   = "1.0.0"
	buildTime = "unknown"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	logger.Info("Starting Voyara stub server")
	logger.Infof("Version: %s, Build Time: %s", version, buildTime)

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Failed to load configuration: %v", err)
	}

	logLevel, err := logrus.ParseLevel(cfg.Log.Level)
	if err != nil {
		logger.Warn("Invalid log level, using INFO")
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	gin.SetMode(gin.ReleaseMode)

	server := stub.NewServer(getStubSecret(), logger)
	seedFixtures(server)

	router := server.Router(cfg.Stub.AllowedOrigins)

	httpServer := &http.Server{
		Addr:    ":" + cfg.Stub.Port,
		Handler: router,
	}

	go func() {
		logger.Infof("Stub server listening on :%s", cfg.Stub.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down stub server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Errorf("Forced shutdown: %v", err)
	}
	logger.Info("Stub server stopped")
}

func getStubSecret() string {
	if secret := os.Getenv("STUB_JWT_SECRET"); secret != "" {
		return secret
	}
	return "stub-dev-secret"
}

// seedFixtures loads a small fixture set so the stub is usable out of the box
func seedFixtures(server *stub.Server) {
	server.SeedService(models.TourService{ID: "svc-hotel-1", Name: "Harbor View Hotel", ServiceType: "accommodation", CityID: "city-1", Price: 0})
	server.SeedService(models.TourService{ID: "svc-rest-1", Name: "Old Town Bistro", ServiceType: "restaurant", CityID: "city-1"})
	server.SeedService(models.TourService{ID: "svc-bus-1", Name: "Coastal Minibus", ServiceType: "transportation", CityID: "city-1", Price: 240, MaxPassengers: 16})
	server.SeedService(models.TourService{ID: "svc-van-1", Name: "City Van", ServiceType: "transportation", CityID: "city-1", Price: 120, MaxPassengers: 8})

	server.SeedRoom(models.Room{ID: "room-std", RoomType: "Standard", Price: 90})
	server.SeedRoom(models.Room{ID: "room-quad", RoomType: "Standard Quad", Price: 150})

	server.SeedSetMeal(models.SetMeal{ID: "meal-1", Name: "Seafood Set", ServiceID: "svc-rest-1", Price: 25})
	server.SeedSetMeal(models.SetMeal{ID: "meal-2", Name: "Vegetarian Set", ServiceID: "svc-rest-1", Price: 18})

	server.SeedTag(models.HashtagEntity{Tag: "harborview", EntityName: "Harbor View Hotel", EntityType: "service"})

	server.SeedPromotion(models.Promotion{
		Code:           "WELCOME10",
		DiscountType:   models.DiscountTypePercentage,
		DiscountValue:  10,
		MaxUses:        1000,
		IsActive:       true,
		ShowOnHomepage: true,
		PromotionType:  models.PromotionTypePromoCode,
		Title:          "10% off your first tour",
	})
}
