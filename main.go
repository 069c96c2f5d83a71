package main

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"github.com/Pratheesh-555/My-Portfolio/config"
	"github.com/Pratheesh-555/My-Portfolio/handler"
	"github.com/Pratheesh-555/My-Portfolio/logging"
	"github.com/Pratheesh-555/My-Portfolio/metrics"
	"github.com/Pratheesh-555/My-Portfolio/portfolio"
	"github.com/Pratheesh-555/My-Portfolio/store"
)

func main() {
	var exitCode int
	defer func() {
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	}()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := logging.New(cfg.Env)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	if cfg.Production() {
		gin.SetMode(gin.ReleaseMode)
	}

	s, err := store.New(cfg.Backend, store.Options{
		DataFile:      cfg.DataFile,
		RedisAddr:     cfg.RedisAddr,
		RedisPassword: cfg.RedisPassword,
		RedisDB:       cfg.RedisDB,
		RedisKey:      cfg.RedisKey,
	})
	if err != nil {
		logger.Fatal("Failed to open portfolio store", zap.String("backend", cfg.Backend), zap.Error(err))
	}
	if c, ok := s.(io.Closer); ok {
		defer c.Close()
	}

	var m *metrics.Metrics
	if cfg.MetricsEnabled {
		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		m = metrics.New(reg)
	}
	s = store.Instrument(s, cfg.Backend, m, logger)

	if cfg.SeedIfMissing {
		seeded, err := store.Seed(context.Background(), s, portfolio.Default())
		if err != nil {
			logger.Error("Failed to seed portfolio data", zap.Error(err))
		} else if seeded {
			logger.Info("Seeded portfolio data with the bundled document")
		}
	}

	h := handler.New(s, handler.Options{
		MaxBodyBytes: cfg.MaxBodyBytes,
		StaticDir:    cfg.StaticDir,
		Metrics:      m,
		Logger:       logger,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: h,
	}

	logger.Info("Portfolio API server running",
		zap.String("url", "http://localhost:"+cfg.Port),
		zap.String("backend", cfg.Backend),
		zap.String("data_file", cfg.DataFile),
		zap.String("env", cfg.Env),
	)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	if err := serve(srv, quit, logger); err != nil {
		logger.Error("HTTP server failed", zap.Error(err))
		exitCode = 1
	}
}

// serve runs srv until a signal arrives on quit, then shuts it down. A
// listen failure is returned rather than exiting, so deferred cleanup in
// main still runs.
func serve(srv *http.Server, quit <-chan os.Signal, logger *zap.Logger) error {
	serveErr := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	select {
	case <-quit:
	case err := <-serveErr:
		return err
	}

	logger.Info("Shutting down portfolio API server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}
