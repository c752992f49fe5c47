package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/saeidalz13/battleship-solo/api"
	"github.com/saeidalz13/battleship-solo/db"
	"github.com/saeidalz13/battleship-solo/db/sqlc"
	"github.com/saeidalz13/battleship-solo/internal/config"
	"github.com/saeidalz13/battleship-solo/internal/logger"
	mb "github.com/saeidalz13/battleship-solo/models/battleship"
	mc "github.com/saeidalz13/battleship-solo/models/connection"
)

func main() {
	cfg := config.MustLoad()
	l := logger.New(cfg.Stage, cfg.LogLevel, os.Stderr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// The server runs without analytics when no database is configured
	var querier sqlc.Querier
	if cfg.DatabaseUrl != "" {
		conn := db.MustConnectToDb(cfg.DatabaseUrl, l)
		defer conn.Close()
		querier = sqlc.New(conn)
	} else {
		l.Warn("DATABASE_URL is empty; analytics disabled")
	}

	sessionManager := mc.NewBattleshipSessionManager(mc.WithSessionLogger(l))
	go sessionManager.CleanupPeriodically(ctx)

	rp := api.NewRequestProcessor(
		sessionManager,
		mb.NewBattleshipGameManager(),
		querier,
		api.WithLogger(l),
		api.WithBoardSize(cfg.BoardSize),
		api.WithVerbose(cfg.Verbose),
		api.WithDelays(cfg.StartDelay, cfg.ThinkDelay),
	)

	mux := http.NewServeMux()
	mux.Handle("GET /battleship", rp)

	server := &http.Server{
		Addr:              fmt.Sprintf("0.0.0.0:%d", cfg.Port),
		Handler:           mux,
		ReadHeaderTimeout: time.Second * 5,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second*10)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	l.Info("listening", "port", cfg.Port, "stage", cfg.Stage, "ip", rp.GetIpNet().IP.String())
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		l.Fatal("server stopped", "err", err)
	}
}
