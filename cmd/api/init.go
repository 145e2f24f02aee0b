package main

import (
	"fmt"
	"net/http"

	"physcalc/internal/account"
	"physcalc/internal/config"
	"physcalc/internal/formula"
	"physcalc/internal/rates"
	"physcalc/internal/server"
	"physcalc/internal/session"
	"physcalc/internal/storage"
	"physcalc/internal/web"

	"gorm.io/gorm"
)

// app holds the wired components of a running server.
type app struct {
	db     *gorm.DB
	router http.Handler
}

// newApp opens storage and wires every component from cfg. Instruments are
// created after observability.Setup so they bind to the installed providers.
func newApp(cfg *config.Config) (*app, error) {
	proc, err := newProcessor(cfg)
	if err != nil {
		return nil, err
	}

	db, err := storage.Open(cfg.Database.Path)
	if err != nil {
		return nil, err
	}

	sessions := session.NewManager(cfg)
	pages, err := web.New(proc, account.NewStore(db), sessions)
	if err != nil {
		_ = storage.Close(db)
		return nil, err
	}

	return &app{
		db: db,
		router: server.NewRouter(server.Deps{
			Processor: proc,
			Sessions:  sessions,
			Pages:     pages,
		}),
	}, nil
}

func newProcessor(cfg *config.Config) (*formula.Processor, error) {
	proc, err := formula.NewProcessor(formula.Catalog(rates.New(cfg.Rates)))
	if err != nil {
		return nil, fmt.Errorf("build formula catalogue: %w", err)
	}
	return proc, nil
}

func (a *app) Close() error {
	return storage.Close(a.db)
}
