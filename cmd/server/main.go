package main

import (
	"flag"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"github.com/rkeulen/autokosten/internal/auth"
	"github.com/rkeulen/autokosten/internal/config"
	"github.com/rkeulen/autokosten/internal/db"
	"github.com/rkeulen/autokosten/internal/handlers"
	"github.com/rkeulen/autokosten/internal/middleware"
	"github.com/rkeulen/autokosten/internal/notify"
	"github.com/rkeulen/autokosten/internal/registry"
	"github.com/rkeulen/autokosten/internal/roadtax"
	"github.com/rkeulen/autokosten/internal/session"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	if level, err := log.ParseLevel(os.Getenv("LOG_LEVEL")); err == nil {
		log.SetLevel(level)
	}

	configPath := flag.String("config", "", "path to YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	mongoClient, err := db.ConnectMongo()
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	database := mongoClient.Database("autokosten")
	users := &db.MongoUserCollection{Collection: database.Collection("users")}

	var store db.SnapshotStore
	switch cfg.Store.Backend {
	case "mongo":
		store = &db.MongoSnapshotStore{Collection: database.Collection("snapshots")}
	default:
		store, err = db.NewFileStore(cfg.Store.Dir)
		if err != nil {
			log.Fatalf("Failed to open snapshot store: %v", err)
		}
	}

	publisher, err := notify.NewPublisher(cfg.MQTT)
	if err != nil {
		log.Fatalf("Failed to connect to MQTT broker: %v", err)
	}
	defer publisher.Close()

	authService, err := auth.NewService()
	if err != nil {
		log.Fatalf("Failed to create auth service: %v", err)
	}

	sessions := session.NewManager(
		store,
		registry.NewClient(cfg.Registry),
		roadtax.NewClient(cfg.RoadTax),
		cfg.Defaults,
		cfg.CacheTTL,
	)

	authHandler := handlers.NewAuthHandler(authService, users)
	authMiddleware := middleware.NewAuthMiddleware(authService)
	rateLimiter := middleware.NewRateLimitMiddleware()

	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/login", authHandler.Login)
	mux.HandleFunc("/api/auth/register", authHandler.Register)
	mux.Handle("/api/compute", handlers.NewComputeHandler(sessions, publisher))
	mux.Handle("/api/params", handlers.NewParamsHandler(sessions))
	mux.Handle("/api/overrides/", handlers.NewOverridesHandler(sessions))
	mux.Handle("/api/refresh/", handlers.NewRefreshHandler(sessions))
	mux.Handle("/api/export", handlers.NewExportHandler(sessions))
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	handler := rateLimiter.RateLimit(120, 60)(authMiddleware.Authenticate(mux))

	log.Infof("HTTP server listening on :%s", cfg.Port)
	log.Fatal(http.ListenAndServe(":"+cfg.Port, handler))
}
