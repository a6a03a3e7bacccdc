package main

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"TeaHouse/internal/config"
	"TeaHouse/internal/tea"
	"TeaHouse/pkg/kit"
)

const schemaTimeout = 5 * time.Second

func main() {
	service := "teas"
	cfg := config.New()

	log := kit.NewLogger(service)
	defer func() { _ = log.Sync() }()

	store, closeStore, err := newStore(cfg)
	if err != nil {
		log.Fatal("init store failed", zap.Error(err))
	}
	defer closeStore()

	s := &tea.Server{Store: store, Log: log}

	reg := prometheus.NewRegistry()
	h := tea.NewHandler(s, tea.HTTPDeps{
		Log:      log,
		Service:  service,
		Registry: reg,

		MetricsEnabled: cfg.MetricsEnabled,
		MetricsToken:   cfg.MetricsToken,

		WriteLimitPerMin: cfg.WriteLimitPerMin,
	})

	if err := kit.RunHTTPServer(":"+cfg.Port, h, log); err != nil {
		log.Fatal("http server stopped", zap.Error(err))
	}
}

func newStore(cfg *config.Config) (tea.Store, func(), error) {
	if cfg.DBDSN == "" {
		return tea.NewMemStore(), func() {}, nil
	}

	db, err := sql.Open("pgx", cfg.DBDSN)
	if err != nil {
		return nil, nil, err
	}

	st := tea.NewPostgresStore(db)

	ctx, cancel := context.WithTimeout(context.Background(), schemaTimeout)
	defer cancel()
	if err := st.EnsureSchema(ctx); err != nil {
		_ = db.Close()
		return nil, nil, err
	}

	return st, func() { _ = db.Close() }, nil
}
