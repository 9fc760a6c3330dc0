package main

import (
	"flag"
	"log/slog"
	"net/http"
	"os"

	"github.com/jharden/parley/internal/config"
	"github.com/jharden/parley/internal/handlers"
	"github.com/jharden/parley/internal/store/sqlstore"
	"github.com/jharden/parley/internal/token"
)

var configDir = flag.String("config", "config", "directory containing config.yaml")

func main() {
	flag.Parse()
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	cfg, err := config.Load(*configDir)
	if err != nil {
		slog.Error("config load failed", "err", err)
		os.Exit(1)
	}

	store, err := sqlstore.New(cfg.Database.Driver, cfg.Database.DSN)
	if err != nil {
		slog.Error("store init failed", "driver", cfg.Database.Driver, "err", err)
		os.Exit(1)
	}

	tokens := token.NewService(cfg.Token.Secret, cfg.Token.TTL)
	router := handlers.NewRouter(store, tokens)

	slog.Info("starting server", "addr", cfg.Server.Addr)
	if err := http.ListenAndServe(cfg.Server.Addr, router); err != nil {
		slog.Error("server stopped", "err", err)
		os.Exit(1)
	}
}
