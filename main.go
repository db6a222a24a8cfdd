package main

import (
	"context"
	"errors"
	"log"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"

	"openupload/internal/auth"
	"openupload/internal/config"
	"openupload/internal/http"
	"openupload/internal/http/handler"
	"openupload/internal/repository/postgres"
	"openupload/internal/storage/local"
	"openupload/internal/storage/s3"
	"openupload/internal/usage"

	"github.com/joho/godotenv"
)

const (
	envFilePath      = ".env"
	serverAddrPrefix = ":"
	signalBufferSize = 1
	logOutputFlags   = log.LstdFlags | log.Lshortfile
)

var shutdownSignals = []os.Signal{
	syscall.SIGINT,
	syscall.SIGTERM,
}

func main() {
	if err := godotenv.Load(envFilePath); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	log.SetOutput(os.Stderr)
	log.SetFlags(logOutputFlags)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Println("Configuration loaded successfully")

	db, err := postgres.New(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.ApplySchema(context.Background()); err != nil {
		log.Fatalf("Failed to apply schema: %v", err)
	}

	log.Println("Database connection established")

	userRepo := postgres.NewUserRepository(db)
	projectRepo := postgres.NewProjectRepository(db)
	fileRepo := postgres.NewFileRepository(db)
	apiKeyRepo := postgres.NewAPIKeyRepository(db)

	blobs, err := newBlobStore(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize blob store: %v", err)
	}

	log.Printf("Blob store initialized (%s)", cfg.Storage.Backend)

	verifier, err := auth.NewOIDCVerifier(context.Background(), &cfg.OIDC)
	if err != nil {
		log.Fatalf("Failed to initialize OIDC verifier: %v", err)
	}

	principals := auth.NewPrincipalResolver(userRepo)
	keyAuthority := auth.NewKeyAuthority(apiKeyRepo, projectRepo, userRepo)
	authMiddleware := auth.NewMiddleware(verifier, principals, keyAuthority, apiKeyRepo)

	recorder := usage.NewRecorder(db.Pool)

	serverDeps := &http.ServerDependencies{
		Config:         cfg,
		ProjectRepo:    projectRepo,
		FileRepo:       fileRepo,
		APIKeyRepo:     apiKeyRepo,
		UsageService:   recorder,
		BlobStore:      blobs,
		AuthMiddleware: authMiddleware,
	}

	server := http.NewServer(serverDeps)

	go func() {
		log.Printf("Starting HTTP server on port %s", cfg.Server.Port)
		if err := server.Start(serverAddrPrefix + cfg.Server.Port); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
			log.Fatalf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, signalBufferSize)
	signal.Notify(quit, shutdownSignals...)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited gracefully")
}

func newBlobStore(cfg *config.Config) (handler.BlobStore, error) {
	if cfg.Storage.Backend == config.StorageBackendS3 {
		return s3.NewStore(&cfg.Storage)
	}
	return local.NewStore(cfg.Storage.LocalDir)
}
