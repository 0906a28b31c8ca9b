package main // Entry point package

import (
	"log"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/streamatlas/stream-atlas/internal/config"
	"github.com/streamatlas/stream-atlas/internal/database"
	"github.com/streamatlas/stream-atlas/internal/handler"
	"github.com/streamatlas/stream-atlas/internal/queue"
	"github.com/streamatlas/stream-atlas/internal/repository"
	"github.com/streamatlas/stream-atlas/internal/router"
	"github.com/streamatlas/stream-atlas/internal/service"
	"github.com/streamatlas/stream-atlas/internal/session"
)

func main() {
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database open: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("database migrate: %v", err)
	}

	sessionTTL := time.Duration(cfg.SessionTTLMin) * time.Minute
	sessions := newSessionStore(cfg)

	users := repository.NewUserRepo(db)
	catalog := repository.NewCatalogRepo(db)
	wishlist := repository.NewWishlistRepo(db)
	reviews := repository.NewReviewRepo(db)

	identity := service.NewIdentity(users, sessions, sessionTTL)
	interactions := service.NewInteraction(wishlist, reviews, users, sessions, sessionTTL, queue.PublishActivity)

	// Activity consumer runs for the process lifetime; it reconnects on
	// broker failures and never takes the server down.
	go func() {
		if err := queue.StartActivityConsumer(); err != nil {
			log.Printf("activity consumer stopped: %v", err)
		}
	}()

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())

	router.RegisterRoutes(e)
	router.RegisterAPI(e,
		identity,
		handler.NewAuthHandler(identity),
		handler.NewCatalogHandler(catalog),
		handler.NewInteractionHandler(interactions),
	)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}

// newSessionStore picks the session backing: Redis when configured and
// reachable, the in-memory map otherwise. The memory store gets a sweeper
// so expired sessions do not pile up for the process lifetime.
func newSessionStore(cfg config.Config) session.Store {
	if cfg.SessionStore == "redis" {
		if rdb := config.NewRedisClient(); rdb != nil {
			log.Printf("sessions: redis store")
			return session.NewRedis(rdb, "sa:sess")
		}
		log.Printf("sessions: redis unreachable, falling back to memory store")
	}

	mem := session.NewMemory()
	go func() {
		for range time.Tick(time.Minute) {
			mem.PurgeExpired()
		}
	}()
	log.Printf("sessions: in-memory store")
	return mem
}
