package main

import (
	"log"
	"log/slog"

	"golang.org/x/text/language"

	"bookbazaar/internal/apiclient"
	"bookbazaar/internal/app"
	"bookbazaar/internal/catalog"
	"bookbazaar/internal/config"
	"bookbazaar/internal/notify"
	"bookbazaar/internal/session"
	"bookbazaar/internal/tokenstore"
	"bookbazaar/internal/util"
)

func main() {
	cfg, err := config.Load(config.ConfigPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	timeout, err := config.ParseRequestTimeout(cfg.RequestTimeout)
	if err != nil {
		log.Fatalf("failed to parse request timeout: %v", err)
	}
	util.InitLogger(cfg.LogLevel)

	tag := language.Und
	if cfg.Collation != "" {
		parsed, err := language.Parse(cfg.Collation)
		if err != nil {
			log.Fatalf("invalid collation tag %q: %v", cfg.Collation, err)
		}
		tag = parsed
	}

	var tokens tokenstore.Store
	if cfg.RedisAddr != "" {
		tokens = tokenstore.NewRedisStore(cfg.RedisAddr, cfg.RedisPassword, cfg.TokenKey)
	} else {
		fileStore, err := tokenstore.NewFileStore(cfg.TokenFile)
		if err != nil {
			log.Fatalf("failed to init token store: %v", err)
		}
		tokens = fileStore
	}

	client := apiclient.NewClient(cfg.APIBaseURL, timeout)
	sess := session.New(client, tokens, nil)

	core, err := app.New(app.Config{
		API:      client,
		Session:  sess,
		Notifier: notify.New(cfg.NotifyBuffer),
		Pipeline: catalog.New(tag),
		PriceMin: cfg.PriceMin,
		PriceMax: cfg.PriceMax,
	})
	if err != nil {
		log.Fatalf("failed to init app: %v", err)
	}

	slog.Info("client core ready",
		"api", cfg.APIBaseURL,
		"authenticated", sess.IsAuthenticated(),
	)

	// Readiness probe: one catalog fetch through the full pipeline.
	view := core.Search("", "")
	slog.Info("catalog loaded", "visible", len(view))
	for _, n := range core.Notifications().Drain() {
		slog.Info("notification", "level", n.Level, "message", n.Message)
	}
}
