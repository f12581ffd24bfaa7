// Package main LibraryNext API.
//
// @title           LibraryNext API
// @version         1.0
// @description     Library catalog and lending tracker (books, borrows, availability).
// @BasePath        /
// @schemes         http
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/go-redis/redis/v8"
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/sumu9897/LibraryNext/app/echoServer"
	bookctrl "github.com/sumu9897/LibraryNext/app/echoServer/controller/book"
	borrowctrl "github.com/sumu9897/LibraryNext/app/echoServer/controller/borrow"
	"github.com/sumu9897/LibraryNext/app/echoServer/validation"
	"github.com/sumu9897/LibraryNext/config"
	bookrepo "github.com/sumu9897/LibraryNext/repository/book"
	borrowrepo "github.com/sumu9897/LibraryNext/repository/borrow"
	eventsrepo "github.com/sumu9897/LibraryNext/repository/events"
	booksvc "github.com/sumu9897/LibraryNext/service/book"
	borrowsvc "github.com/sumu9897/LibraryNext/service/borrow"
	inventorysvc "github.com/sumu9897/LibraryNext/service/inventory"
	"github.com/sumu9897/LibraryNext/util/cache"
	"github.com/sumu9897/LibraryNext/util/database"
)

func main() {

	cfg := config.Load()
	ctx := context.Background()

	// logger
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// DB
	db, err := database.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("db connect failed", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.Migrate(ctx, db); err != nil {
		log.Error("db migrate failed", "err", err)
		os.Exit(1)
	}

	// repos
	br := bookrepo.New(db)
	wr := borrowrepo.New(db)

	// optional summary cache
	var summaryCache borrowsvc.Cache
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Warn("redis unreachable, summary cache disabled", "addr", cfg.RedisAddr, "err", err)
		} else {
			summaryCache = cache.NewRedis(rdb)
		}
	}

	// optional activity publisher
	var pub eventsrepo.Publisher
	if cfg.AMQPURL != "" {
		conn, ch, err := eventsrepo.SetupConn(cfg.AMQPURL)
		if err != nil {
			log.Warn("rabbitmq unreachable, activity events disabled", "err", err)
		} else {
			defer conn.Close()
			defer ch.Close()
			pub = eventsrepo.NewAMQP(ch)
		}
	}

	// services
	inv := inventorysvc.New(br, log)
	bs := booksvc.New(br)
	ws := borrowsvc.New(inv, wr, summaryCache, pub, log)

	// controllers
	v := validation.Base()
	bookC := &bookctrl.Controller{Svc: bs, V: v, Log: log}
	borrowC := &borrowctrl.Controller{Svc: ws, V: v, Log: log}

	// echo
	e := echo.New()
	echoServer.RegisterMiddlewares(e)
	e.Validator = validation.New()

	e.GET("/", func(c echo.Context) error {
		return c.JSON(200, map[string]any{
			"success": true,
			"message": "Welcome to LibraryNext - A Modern Library Management API.",
		})
	})

	e.GET("/health", func(c echo.Context) error {
		if err := db.PingContext(c.Request().Context()); err != nil {
			return c.JSON(503, map[string]any{"status": "down", "error": "database ping failed"})
		}
		return c.JSON(200, map[string]any{"status": "ok", "message": "Service is healthy and connected"})
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	echoServer.Register(e, echoServer.C{
		Book:   bookC,
		Borrow: borrowC,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.Port
	}

	log.Info("starting server", "port", port, "env", cfg.Env)

	e.Logger.Fatal(e.Start(":" + port))
}
