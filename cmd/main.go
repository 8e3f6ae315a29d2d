package main

import (
	"log"
	"net/http"
	"os"
	"time"

	"github.com/senyabanana/rfq-service/internal/cache"
	"github.com/senyabanana/rfq-service/internal/db"
	"github.com/senyabanana/rfq-service/internal/events"
	"github.com/senyabanana/rfq-service/internal/handlers"
	"github.com/senyabanana/rfq-service/internal/models"
	"github.com/senyabanana/rfq-service/internal/repository"
	"github.com/senyabanana/rfq-service/internal/router"
	"github.com/senyabanana/rfq-service/internal/router/config"
	"github.com/senyabanana/rfq-service/internal/services"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/redis/go-redis/v9"
)

func main() {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatal("cannot load config:", err)
	}

	runDBMigration(cfg.MigrationURL, cfg.PostgresConn)

	dbPool, err := db.InitDb(cfg)
	if err != nil {
		log.Fatalf("error initializing database: %v", err)
	}
	defer dbPool.Close()

	logger := log.New(os.Stdout, "INFO: ", log.LstdFlags)

	caps := models.Capabilities{
		HasProviderAwardFields: cfg.HasProviderAwardFields,
		HasTimelineEvents:      cfg.HasTimelineEvents,
		HasQuoteMessages:       cfg.HasQuoteMessages,
	}

	var viewCache cache.ViewCache = cache.NoopViewCache{}
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, DB: cfg.RedisDB})
		viewCache = cache.NewRedisViewCache(rdb, time.Duration(cfg.ViewCacheTTL)*time.Second)
	}

	var timeline events.TimelineSink = events.NoopTimelineSink{}
	if caps.HasTimelineEvents {
		timeline = events.NewPostgresTimelineSink(dbPool, logger)
	}

	quoteRepo := repository.NewPostgresQuoteRepository(dbPool, caps)
	offerRepo := repository.NewPostgresOfferRepository(dbPool)
	bidRepo := repository.NewPostgresBidRepository(dbPool)
	destinationRepo := repository.NewPostgresDestinationRepository(dbPool)
	messageRepo := repository.NewPostgresMessageRepository(dbPool)

	quoteService := services.NewQuoteViewService(
		quoteRepo, offerRepo, bidRepo, destinationRepo, messageRepo,
		viewCache, caps, cfg.SLAWindowHours, logger)
	awardService := services.NewAwardService(
		quoteRepo, bidRepo, services.NewPoolAuthorizer(dbPool),
		viewCache, timeline, logger)

	quoteHandler := handlers.NewQuoteHandler(quoteService, logger, 5*time.Second)
	awardHandler := handlers.NewAwardHandler(awardService, logger, 5*time.Second)

	routes := router.InitRoutes(quoteHandler, awardHandler)

	log.Printf("server is listening on %s...", cfg.ServerAddress)
	if err := http.ListenAndServe(cfg.ServerAddress, routes); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}

func runDBMigration(migrationURL string, dbSource string) {
	migration, err := migrate.New(migrationURL, dbSource)
	if err != nil {
		log.Fatal("cannot create a new migrate instance", err)
	}

	if err = migration.Up(); err != nil && err != migrate.ErrNoChange {
		log.Fatal("failed to run migrate up:", err)
	}
	log.Println("db migrated successfully")
}
