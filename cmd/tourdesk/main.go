package main

import (
	"errors"
	"fmt"
	"log"
	"os"

	"tourdesk/internal/api"
	"tourdesk/internal/config"
	"tourdesk/internal/database"
	"tourdesk/internal/modules/auth"
	"tourdesk/internal/pkg/images"
	"tourdesk/internal/pkg/logger"
	"tourdesk/internal/pkg/notify"
	"tourdesk/internal/session"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	zl := logger.New(cfg.Environment)
	defer zl.Sync()

	db, err := database.Connect(cfg.SessionDSN)
	if err != nil {
		log.Fatal(err)
	}

	store, err := session.NewStore(db)
	if err != nil {
		log.Fatal(err)
	}

	client := api.New(cfg.APIBaseURL, cfg.HTTPTimeout, zl)
	resolver := images.NewResolver(cfg.UploadsBaseURL)

	notifier := notify.New()
	notifier.OnChange(func(m *notify.Message) {
		if m == nil {
			return
		}
		fmt.Printf("[%s] %s\n", m.Kind, m.Text)
	})

	r := &repl{
		cfg:      cfg,
		log:      zl,
		client:   client,
		store:    store,
		notifier: notifier,
		resolver: resolver,
		auth:     auth.NewService(client, store, zl),
		in:       os.Stdin,
		out:      os.Stdout,
	}

	// Resume a stored session if one exists.
	if p, err := store.Load(); err == nil {
		r.principal = p
	} else if !errors.Is(err, session.ErrNotAuthenticated) {
		log.Fatal(err)
	}

	if err := r.run(); err != nil {
		log.Fatal(err)
	}
}
