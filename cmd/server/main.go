package main

import (
	"context"
	"flag"
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kiryu-dev/tactics-and-toes/internal/config"
	"github.com/kiryu-dev/tactics-and-toes/internal/domain"
	"github.com/kiryu-dev/tactics-and-toes/internal/transport/ws"
	"github.com/kiryu-dev/tactics-and-toes/internal/usecase/hub"
	"github.com/kiryu-dev/tactics-and-toes/internal/usecase/opponent"
	"github.com/pkg/errors"
	"go.uber.org/atomic"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 5 * time.Second

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer func() {
		_ = logger.Sync()
	}()
	cfgPath := flag.String("config", "./config.yml", "path to config")
	flag.Parse()
	cfg, err := config.New(*cfgPath)
	if err != nil {
		logger.Fatal(err.Error())
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	sessionSeq := atomic.NewUint64(0)
	newOpponent := func() domain.OpponentUseCase {
		rnd := rand.New(rand.NewPCG(seed, sessionSeq.Inc()))
		return opponent.New(rnd, logger)
	}
	var (
		hub = hub.New(newOpponent, logger,
			hub.WithThinkDelay(cfg.ThinkDelay),
			hub.WithIdleTimeout(cfg.IdleTimeout),
			hub.WithCleanupPeriod(cfg.CleanupPeriod),
		)
		server = ws.New(cfg.ListenAddr, hub, logger)
	)
	defer hub.Close()
	sigChan := make(chan os.Signal, 2)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	errGroup, ctx := errgroup.WithContext(context.Background())
	errGroup.Go(func() error {
		select {
		case s := <-sigChan:
			return errors.Errorf("captured signal: %v", s)
		case <-ctx.Done():
			return nil
		}
	})
	errGroup.Go(func() error {
		if err := server.ListenAndServe(); err != nil {
			return errors.WithMessage(err, "listen and serve")
		}
		return nil
	})
	errGroup.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Info("failed to shutdown http server: " + err.Error())
		}
		return nil
	})
	if err := errGroup.Wait(); err != nil {
		logger.Info("gracefully shutting down the server: " + err.Error())
	}
}
