package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	_ "github.com/jackc/pgx/v5/stdlib"

	_ "github.com/momentumlab/momentum-engine/docs"
	"github.com/momentumlab/momentum-engine/internal/adapters/cache"
	adapterHTTP "github.com/momentumlab/momentum-engine/internal/adapters/handler/http"
	"github.com/momentumlab/momentum-engine/internal/adapters/repository"
	"github.com/momentumlab/momentum-engine/internal/core/domain"
	"github.com/momentumlab/momentum-engine/internal/core/services"
	"github.com/momentumlab/momentum-engine/internal/core/workers"
)

//	@title			Momentum Engine API
//	@version		1.0
//	@description	Progress, streak and achievement tracking service.
//	@BasePath		/api/v1

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

type backends struct {
	db        *sqlx.DB
	stateRepo domain.StateRepository
	achRepo   domain.AchievementRepository
	userRepo  domain.UserRepository
}

func openBackends() (*backends, error) {
	driver := getEnv("DB_DRIVER", "postgres")

	switch driver {
	case "postgres":
		dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
			os.Getenv("DB_USER"), os.Getenv("DB_PASSWORD"),
			getEnv("DB_HOST", "localhost"), getEnv("DB_PORT", "5432"),
			os.Getenv("DB_NAME"))

		db, err := sqlx.Connect("pgx", dsn)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to postgres: %w", err)
		}

		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(25)
		db.SetConnMaxLifetime(5 * time.Minute)

		stateRepo := repository.NewPostgresStateRepository(db)
		if err := stateRepo.InitSchema(context.Background()); err != nil {
			return nil, err
		}

		return &backends{
			db:        db,
			stateRepo: stateRepo,
			achRepo:   repository.NewPostgresAchievementRepository(db),
			userRepo:  repository.NewPostgresUserRepository(db),
		}, nil

	case "sqlite":
		db, err := repository.OpenSQLite(getEnv("SQLITE_PATH", "momentum.db"))
		if err != nil {
			return nil, err
		}

		stateRepo := repository.NewSQLiteStateRepository(db)
		if err := stateRepo.InitSchema(context.Background()); err != nil {
			return nil, err
		}

		return &backends{
			db:        db,
			stateRepo: stateRepo,
			achRepo:   repository.NewSQLiteAchievementRepository(db),
			userRepo:  repository.NewSQLiteUserRepository(db),
		}, nil

	default:
		return nil, fmt.Errorf("unknown DB_DRIVER %q", driver)
	}
}

// openRedis returns nil when redis is not configured or unreachable;
// the service degrades to direct backend reads.
func openRedis() *redis.Client {
	host := os.Getenv("REDIS_HOST")
	if host == "" {
		return nil
	}

	dbIndex := 0
	if raw := os.Getenv("REDIS_DB"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			dbIndex = n
		}
	}

	client, err := cache.NewRedisClient(host, getEnv("REDIS_PORT", "6379"), os.Getenv("REDIS_PASSWORD"), dbIndex)
	if err != nil {
		log.Printf("Redis unavailable, continuing without cache: %v", err)
		return nil
	}

	log.Println("Redis connected successfully.")
	return client
}

func main() {
	startTime := time.Now()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment as-is")
	}

	serverPort := getEnv("PORT", "8080")

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("Critical: JWT_SECRET is required")
	}

	log.Println("Connecting to database...")

	be, err := openBackends()
	if err != nil {
		log.Fatalf("Critical: %v", err)
	}
	defer be.db.Close()

	log.Println("Database connected successfully.")

	stateRepo := be.stateRepo

	redisClient := openRedis()
	if redisClient != nil {
		stateRepo = repository.NewCachedStateRepository(stateRepo, redisClient)
	}

	saveDelay := 2 * time.Second
	if raw := os.Getenv("SAVE_DEBOUNCE_MS"); raw != "" {
		if ms, err := strconv.Atoi(raw); err == nil && ms > 0 {
			saveDelay = time.Duration(ms) * time.Millisecond
		}
	}
	writeBehind := repository.NewWriteBehindStateRepository(stateRepo, saveDelay)

	tokenService := services.NewTokenService(jwtSecret, "momentum-engine", 24*time.Hour, be.userRepo)
	authService := services.NewAuthService(be.userRepo, writeBehind)
	catalogService := services.NewCatalogService(writeBehind)
	statsService := services.NewStatsService(writeBehind)
	achievementService := services.NewAchievementService(writeBehind, be.achRepo)

	worker := workers.NewAchievementWorker(achievementService, 1*time.Hour)
	logService := services.NewLogService(writeBehind, worker)

	workerCtx, stopWorker := context.WithCancel(context.Background())
	worker.Start(workerCtx)

	router := adapterHTTP.NewRouter(adapterHTTP.RouterDependencies{
		AuthHandler:        adapterHTTP.NewAuthHandler(authService, tokenService),
		ActivityHandler:    adapterHTTP.NewActivityHandler(catalogService),
		LogHandler:         adapterHTTP.NewLogHandler(logService),
		StatsHandler:       adapterHTTP.NewStatsHandler(statsService),
		AchievementHandler: adapterHTTP.NewAchievementHandler(achievementService),
		TokenService:       tokenService,
		DB:                 be.db,
		Redis:              redisClient,
		StartTime:          startTime,
	})

	srv := &http.Server{
		Addr:         ":" + serverPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Printf("Momentum Engine running on http://localhost:%s", serverPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Critical server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Stop signal received. Shutting down...")

	stopWorker()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Forced shutdown error:", err)
	}

	// Deferred saves must land before the process exits.
	if err := writeBehind.Close(ctx); err != nil {
		log.Printf("Flush on shutdown failed: %v", err)
	}

	if redisClient != nil {
		redisClient.Close()
	}

	log.Println("Server stopped gracefully.")
}
