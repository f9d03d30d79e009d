package main

import (
	"context"
	"log"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/abdiaziz77/MizigoSmart-sub000/internal/config"
	"github.com/abdiaziz77/MizigoSmart-sub000/internal/middleware"
	"github.com/abdiaziz77/MizigoSmart-sub000/internal/modules/booking"
	"github.com/abdiaziz77/MizigoSmart-sub000/internal/modules/quote"
	"github.com/abdiaziz77/MizigoSmart-sub000/internal/rates"
	"github.com/abdiaziz77/MizigoSmart-sub000/pkg/logger"
	"github.com/abdiaziz77/MizigoSmart-sub000/pkg/notify"
	"github.com/abdiaziz77/MizigoSmart-sub000/pkg/payment"
)

func main() {
	ctx := context.Background()

	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	appLog, err := logger.NewZapLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer appLog.Sync()

	// A bad rate card must stop the server here, never mid-session.
	rateTable, err := rates.Load(cfg.RatesFile)
	if err != nil {
		log.Fatalf("load rate card: %v", err)
	}

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("connect database: %v", err)
	}
	defer pool.Close()
	if err := pool.Ping(ctx); err != nil {
		log.Fatalf("ping database: %v", err)
	}

	var notifier booking.NotifierInterface = notify.NoopService{}
	if cfg.SESSenderEmail != "" {
		ses, err := notify.NewSESService(ctx, cfg.AWSRegion, cfg.SESSenderEmail)
		if err != nil {
			log.Fatalf("init ses: %v", err)
		}
		notifier = ses
	}

	bookingRepo := booking.NewRepository(pool)
	mpesa := payment.NewMpesaService()
	bookingSvc := booking.NewService(rateTable, bookingRepo, mpesa, notifier, appLog)

	quoteHandler := quote.NewHandler(rateTable)
	bookingHandler := booking.NewHandler(bookingSvc)

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: []string{cfg.ClientOrigin},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete},
	}))

	api := e.Group("/api")
	quoteHandler.RegisterRoutes(api)
	bookingHandler.RegisterPublicRoutes(api)

	protected := e.Group("/api", middleware.JWT(cfg.JWTSecret))
	bookingHandler.RegisterProtectedRoutes(protected)

	admin := e.Group("/api/admin", middleware.JWT(cfg.JWTSecret), middleware.RequireAdmin)
	bookingHandler.RegisterAdminRoutes(admin)

	appLog.Infof(ctx, "server listening on :%s", cfg.ServerPort)
	if err := e.Start(":" + cfg.ServerPort); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server: %v", err)
	}
}
