package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/soulstitch/storefront/internal/auth"
	"github.com/soulstitch/storefront/internal/blob"
	"github.com/soulstitch/storefront/internal/cache"
	"github.com/soulstitch/storefront/internal/cart"
	"github.com/soulstitch/storefront/internal/catalog"
	"github.com/soulstitch/storefront/internal/config"
	"github.com/soulstitch/storefront/internal/db"
	"github.com/soulstitch/storefront/internal/docstore"
	"github.com/soulstitch/storefront/internal/events"
	httpapi "github.com/soulstitch/storefront/internal/http"
	"github.com/soulstitch/storefront/internal/order"
	"github.com/soulstitch/storefront/internal/payment"
	"github.com/soulstitch/storefront/internal/profile"
	"github.com/soulstitch/storefront/internal/support"
	"github.com/soulstitch/storefront/internal/wishlist"
)

// Collections that get the parent/creation index, plus the fields each one
// is filtered on.
var (
	mongoCollections = []string{"products", "users", "cart", "wishlist", "orders", "payment_intents", "support_tickets"}
	mongoFilterIndex = map[string][]string{
		"users":           {"email"},
		"orders":          {"userId"},
		"support_tickets": {"userId"},
	}
)

func main() {
	cfg := config.Load()

	logger := log.New(os.Stdout, "[storefront] ", log.LstdFlags|log.Lshortfile)
	if err := cfg.Validate(); err != nil {
		logger.Fatalf("config: %v", err)
	}
	if cfg.UsesDevJWTSecret() {
		logger.Printf("WARNING: JWT_SECRET is unset; sessions are signed with the public development key")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Document store
	var (
		store   docstore.Store
		mongoDB *mongo.Database
	)
	switch cfg.DocstoreDriver {
	case "postgres":
		if cfg.RunMigrations {
			if _, err := db.MigrateDocuments(cfg.DatabaseDSN, logger); err != nil {
				logger.Fatalf("run migrations: %v", err)
			}
		}
		pool, err := db.NewPool(ctx, cfg.DatabaseDSN)
		if err != nil {
			logger.Fatalf("connect postgres: %v", err)
		}
		defer pool.Close()
		store = docstore.NewPostgres(pool)
	case "memory":
		logger.Printf("using in-memory document store; data is lost on exit")
		store = docstore.NewMemory()
	default:
		client, err := db.ConnectMongo(ctx, cfg.MongoURI)
		if err != nil {
			logger.Fatalf("connect mongo: %v", err)
		}
		defer func() { _ = client.Disconnect(context.Background()) }()
		mongoDB = client.Database(cfg.MongoDatabase)

		m := docstore.NewMongo(mongoDB)
		if err := m.EnsureIndexes(ctx, mongoCollections, mongoFilterIndex); err != nil {
			logger.Fatalf("mongo indexes: %v", err)
		}
		store = m
	}

	// Cache: read-through lists, checkout guard, revoked sessions, event sequences
	var c cache.Cache = cache.NewMemory()
	if cfg.RedisAddr != "" {
		rdb, err := cache.Dial(ctx, cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			logger.Fatalf("connect redis: %v", err)
		}
		defer rdb.Close()
		c = cache.NewRedis(rdb, "storefront:")
	}

	// Blobs
	var blobs blob.Store
	switch cfg.BlobDriver {
	case "gridfs":
		if mongoDB == nil {
			logger.Fatalf("BLOB_DRIVER=gridfs needs DOCSTORE_DRIVER=mongo")
		}
		g, err := blob.NewGridFS(mongoDB, "media")
		if err != nil {
			logger.Fatalf("gridfs: %v", err)
		}
		blobs = g
	default:
		fs, err := blob.NewFS(cfg.BlobDir)
		if err != nil {
			logger.Fatalf("blob dir: %v", err)
		}
		blobs = fs
	}

	// Events
	var publisher events.Publisher = events.NopPublisher{Logger: logger}
	if cfg.RabbitMQURL != "" {
		conn, err := events.Dial(cfg.RabbitMQURL)
		if err != nil {
			logger.Fatalf("%v", err)
		}
		defer conn.Close()
		rp, err := events.NewRabbitPublisher(conn, c, events.DefaultProducer)
		if err != nil {
			logger.Fatalf("rabbit publisher: %v", err)
		}
		publisher = rp
	}
	defer publisher.Close()

	// Domain
	catalogSvc := catalog.NewService(catalog.NewRepository(store))
	if cfg.CatalogSeedFile != "" {
		if err := seedCatalog(ctx, catalogSvc, cfg.CatalogSeedFile, logger); err != nil {
			logger.Fatalf("seed catalog: %v", err)
		}
	}

	tokens, err := auth.NewTokens(cfg.JWTSecret, cfg.SessionTTL)
	if err != nil {
		logger.Fatalf("session tokens: %v", err)
	}
	authSvc := auth.NewService(auth.NewRepository(store), tokens, c, logger)
	carts := cart.NewService(cart.NewRepository(store), c, logger)
	payee := payment.Payee{ID: cfg.UPIPayeeID, Name: cfg.UPIPayeeName}
	recorder := order.NewRecorder(order.NewRepository(store), carts, order.NewGuard(c, logger), publisher, payee, logger)

	router := httpapi.NewRouter(httpapi.Deps{
		Logger:         logger,
		RequestTimeout: cfg.RequestTimeout,
		AllowOrigins:   cfg.CORSAllowOrigins,
		Catalog:        catalogSvc,
		Auth:           authSvc,
		Carts:          carts,
		Wishlists:      wishlist.NewService(wishlist.NewRepository(store), c, logger),
		Orders:         recorder,
		Profiles:       profile.NewService(store, blobs, authSvc, cfg.PublicBaseURL+"/media", logger),
		Support:        support.NewService(store, publisher, support.Contact{Phone: cfg.SupportPhone, Message: cfg.SupportMessage}, logger),
		Media:          blobs,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Printf("listening on :%s (store=%s, blobs=%s)", cfg.Port, cfg.DocstoreDriver, cfg.BlobDriver)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("server error: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Printf("shutdown requested")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Printf("shutdown error: %v", err)
	}
	logger.Printf("shutdown complete")
}

func seedCatalog(ctx context.Context, svc *catalog.Service, path string, logger *log.Logger) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	n, err := svc.Seed(ctx, f)
	if err != nil {
		return err
	}
	logger.Printf("seeded %d products from %s", n, path)
	return nil
}
