package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/danielhkuo/grocery-list/cliparse"
	"github.com/danielhkuo/grocery-list/db"
	"github.com/danielhkuo/grocery-list/logging"
	"github.com/danielhkuo/grocery-list/router"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// A missing .env is fine; real deployments set the environment directly
	_ = godotenv.Load()

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		os.Stderr.WriteString("Error parsing flags: " + err.Error() + "\n")
		os.Exit(1)
	}

	logger, err := logging.New(cfg)
	if err != nil {
		os.Stderr.WriteString("Error creating logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	// Connect and verify
	dbConn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("database connection failed", zap.String("type", cfg.DatabaseType), zap.Error(err))
	}
	defer dbConn.Close()

	if err := db.Migrate(dbConn); err != nil {
		logger.Fatal("migration failed", zap.Error(err))
	}
	logger.Info("database schema ready", zap.String("type", cfg.DatabaseType))

	mux, err := router.NewRouter(dbConn, cfg, logger)
	if err != nil {
		logger.Fatal("router setup failed", zap.Error(err))
	}

	server := http.Server{
		Handler:           mux,
		Addr:              ":" + strconv.Itoa(cfg.Port),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	drained := make(chan struct{})
	go func() {
		defer close(drained)
		<-ctrlc
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			logger.Error("graceful shutdown failed", zap.Error(err))
			server.Close()
		}
	}()

	logger.Info("listening", zap.Int("port", cfg.Port))
	err = server.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server closed", zap.Error(err))
		return
	}
	<-drained
	logger.Info("server closed")
}
