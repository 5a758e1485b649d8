package main

import (
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/jotishBolds/district-bi-sub001/internal/config"
	"github.com/jotishBolds/district-bi-sub001/internal/observability/logging"
	"github.com/jotishBolds/district-bi-sub001/internal/observability/metrics"
	impl "github.com/jotishBolds/district-bi-sub001/internal/service/impl"
	"github.com/jotishBolds/district-bi-sub001/internal/store"
	httpx "github.com/jotishBolds/district-bi-sub001/internal/transport/http"
)

func main() {
	cfg := config.Load()

	logger := logging.NewLogger(logging.Config{
		ServiceName: "portal",
		Environment: cfg.Environment,
		Level:       cfg.LogLevel,
	})
	slog.SetDefault(logger)

	logger.Info("starting service")
	metrics.MustRegister("portal")

	gdb, err := store.OpenGorm(store.DBConfig{DSN: cfg.DatabaseURL, LogSQL: cfg.LogSQL})
	if err != nil {
		logger.Error("gorm open", "error", err)
		os.Exit(1)
	}
	if err := store.Migrate(gdb); err != nil {
		logger.Error("migrate", "error", err)
		os.Exit(1)
	}

	st := store.New(gdb)

	pw := impl.NewPasswordServiceArgon2id()
	ss := impl.NewSessionServiceHS256(impl.SessionConfig{
		Issuer:     cfg.Issuer,
		Audience:   cfg.Audience,
		TTL:        cfg.SessionTTL,
		SigningKey: []byte(cfg.SigningKey),
	})
	mailer := impl.NewLogEmailService()
	as := impl.NewAuthServiceImpl(st, pw, ss, mailer, cfg.OTPTTL)
	accounts := impl.NewAccountServiceImpl(st)
	directory := impl.NewDirectoryServiceImpl(st)

	handler := httpx.NewRouter(httpx.RouterConfig{
		CORSOrigins: strings.Split(cfg.CORSOrigins, ","),
		RateLimit:   cfg.RateLimit,
		RatePeriod:  cfg.RatePeriod,
	}, as, accounts, directory, ss)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	slog.Info("portal listening", "addr", srv.Addr, "issuer", cfg.Issuer)
	if err := srv.ListenAndServe(); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}
