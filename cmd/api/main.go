package main

import (
	"context"
	"log"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	httpadp "loanstream/internal/adapter/http"
	mw "loanstream/internal/adapter/middleware"
	"loanstream/internal/adapter/repository/gormrepo"
	"loanstream/internal/config"
	"loanstream/internal/infrastructure/cache"
	"loanstream/internal/infrastructure/db"
	appUC "loanstream/internal/usecase/application"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}

	gdb, err := db.OpenGorm(cfg.DBDriver, cfg.DSN(), db.ParseLogLevel(cfg.DBLogLevel))
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	if cfg.DBAutoMigrate {
		if err := db.Migrate(gdb); err != nil {
			log.Fatalf("migrate: %v", err)
		}
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer sqlDB.Close()

	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}
	defer rdb.Close()

	usecase := appUC.NewUsecase(
		gormrepo.NewRepos(gdb),
		gormrepo.NewGormUoW(gdb),
		appUC.WithPolicy(cfg.Policy()),
		appUC.WithAutoUnderwrite(cfg.AutoUnderwrite),
	)

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(
		middleware.RequestIDWithConfig(middleware.RequestIDConfig{Generator: uuid.NewString}),
		middleware.Logger(),
		middleware.Recover(),
	)

	httpadp.Routes{
		Health:       httpadp.NewHandler(func(ctx context.Context) error { return sqlDB.PingContext(ctx) }),
		Applications: httpadp.NewApplicationHandler(usecase),
		Admin:        httpadp.NewAdminHandler(usecase),
		Auth:         mw.JWTAuth([]byte(cfg.JWTSecret)),
		Idempotency:  mw.IdempotencyMiddleware(rdb, cfg.IdempTTL()),
	}.Register(e)

	addr := ":" + cfg.AppPort
	log.Printf("listening on %s (db=%s, auto_underwrite=%v)", addr, cfg.DBDriver, cfg.AutoUnderwrite)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
