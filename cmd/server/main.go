package main

import (
    "context"
    "errors"
    "net/http"
    "os"
    "os/signal"
    "syscall"
    "time"

    "github.com/sirupsen/logrus"

    "marketdata/internal/app"
    "marketdata/internal/config"
)

func main() {
    cfg, err := config.Load(os.Getenv("CONFIG_FILE"))
    if err != nil { logrus.Fatalf("config: %v", err) }
    app.SetupLogging(cfg.Log)

    ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
    defer stop()

    a, err := app.New(ctx, cfg)
    if err != nil { logrus.Fatalf("app: %v", err) }
    defer func() { _ = a.Close() }()

    timeout := config.Seconds(cfg.Server.RequestTimeoutSec)
    srv := &http.Server{
        Addr:              ":" + cfg.Server.Port,
        Handler:           newRouter(a.Service, timeout),
        ReadHeaderTimeout: 5 * time.Second,
        ReadTimeout:       15 * time.Second,
        WriteTimeout:      timeout + 5*time.Second,
        IdleTimeout:       60 * time.Second,
    }

    go func() {
        logrus.WithField("port", cfg.Server.Port).Info("server listening")
        if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
            logrus.Fatalf("server: %v", err)
        }
    }()

    // graceful shutdown
    <-ctx.Done()
    shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
    defer cancel()
    if err := srv.Shutdown(shutdownCtx); err != nil {
        logrus.WithField("err", err).Warn("shutdown")
    }
}
