// @title        Back2U API
// @version      1.0
// @description  Lost-and-found backend: accounts, sessions and item reports.
// @host         localhost:8080
// @BasePath     /api
// @securityDefinitions.apikey CookieAuth
// @in cookie
// @name token
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description "Bearer " followed by the session token
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"back2u/internal/asset"
	"back2u/internal/cache"
	"back2u/internal/config"
	"back2u/internal/database"
	"back2u/internal/events"
	"back2u/internal/handler/auth"
	"back2u/internal/router"
	"back2u/internal/service"
	"back2u/internal/worker"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	_ "back2u/docs"

	echoSwagger "github.com/swaggo/echo-swagger"
)

// CustomValidator wraps go-playground/validator for Echo
// swagger:ignore
type CustomValidator struct {
	validator *validator.Validate
}

func newValidator() (*CustomValidator, error) {
	v := validator.New()
	if err := service.RegisterValidations(v); err != nil {
		return nil, err
	}
	return &CustomValidator{validator: v}, nil
}

// Validate runs the struct rules and reports the first failure as a
// validation error.
func (cv *CustomValidator) Validate(i interface{}) error {
	return service.TranslateValidation(cv.validator.Struct(i))
}

var (
	loadConfig      = config.Load
	newPgxPool      = database.NewPgxPool
	newRedisClient  = cache.NewRedisClient
	runMigrationsFn = database.RunMigrations
	startServer     = func(e *echo.Echo, addr string) error { return e.Start(addr) }
	newWorkerPool   = worker.NewPool
	newPublisher    = func(url string) (events.Publisher, error) { return events.NewAMQP(url, events.Exchange) }
	newCloudinary   = func(url string) (asset.Host, error) { return asset.NewCloudinary(url) }
	exitFunc        = os.Exit
)

func run() error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	ctx := context.Background()

	db, err := newPgxPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("database connection failed: %w", err)
	}
	defer db.Close()

	rdb, err := newRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		return fmt.Errorf("redis connection failed: %w", err)
	}
	defer rdb.Close()

	if err := runMigrationsFn(cfg.DatabaseURL); err != nil {
		return fmt.Errorf("migrations failed: %w", err)
	}

	var pub events.Publisher = events.Nop{}
	if cfg.RabbitURL != "" {
		if pub, err = newPublisher(cfg.RabbitURL); err != nil {
			return fmt.Errorf("broker connection failed: %w", err)
		}
	}
	defer pub.Close()

	// Stop runs before pub.Close so queued events still reach the broker.
	wp := newWorkerPool(cfg.WorkerCount, cfg.WorkerQueue)
	defer wp.Stop()

	stored := asset.NewPostgres(db, cfg.PublicBaseURL)
	var host asset.Host = stored
	if cfg.CloudinaryURL != "" {
		if host, err = newCloudinary(cfg.CloudinaryURL); err != nil {
			return fmt.Errorf("cloudinary: %w", err)
		}
	}

	sessions := &service.Sessions{Secret: []byte(cfg.JWTSecret), TTL: cfg.SessionTTL, Cache: rdb}
	creds := &service.Credentials{DB: db, Sessions: sessions, Assets: host, Cost: cfg.BcryptCost}
	items := &service.Items{
		DB:     db,
		Assets: host,
		Events: &events.Dispatcher{Pool: wp, Publisher: pub},
	}

	cv, err := newValidator()
	if err != nil {
		return err
	}

	e := echo.New()
	e.HideBanner = true
	e.Validator = cv
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.CORSOrigins,
		AllowCredentials: true,
	}))
	e.Use(middleware.BodyLimit("6M"))

	router.Setup(e, router.Deps{
		DB:            db,
		Cache:         rdb,
		Verifier:      sessions,
		Revoker:       sessions,
		Authenticator: creds,
		Accounts:      creds,
		Items:         items,
		Assets:        stored,
		Cookie:        auth.CookieConfig{Secure: cfg.CookieSecure, TTL: cfg.SessionTTL},
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)
	return startServer(e, cfg.HTTPAddr)
}

func main() {
	if err := run(); err != nil {
		log.Print(err)
		exitFunc(1)
	}
}
