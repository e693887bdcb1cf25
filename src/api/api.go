// File: src/api/api.go

package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/greenlink-tr/greenlink/src/api/config"
	"github.com/greenlink-tr/greenlink/src/api/data"
	"github.com/greenlink-tr/greenlink/src/api/poll"
	"github.com/greenlink-tr/greenlink/src/api/upstream"
	"github.com/greenlink-tr/greenlink/src/api/webserver"
)

func main() {
	cfg := config.Load()

	ledger := data.NewLedger(filepath.Join(cfg.DataDir, "event-votes.json"))
	requests := data.NewRequestStore(filepath.Join(cfg.DataDir, "event-requests.json"))

	var forum data.ForumStore
	if cfg.MySQLDSN != "" {
		forum = data.NewForumDB(data.MustMySQL(cfg.MySQLDSN))
	} else {
		log.Printf("MYSQL_DSN not set, forum posts are kept in memory")
		forum = data.NewForumMemory()
	}

	var limiter webserver.RateLimiter
	if cfg.RedisURL != "" {
		limiter = webserver.NewRedisLimiter(data.MustRedis(cfg.RedisURL), webserver.RateWindow, webserver.RateMax)
	} else {
		mem := webserver.NewMemoryLimiter(webserver.RateWindow, webserver.RateMax)
		mem.StartCleanup(webserver.RateWindow)
		limiter = mem
	}

	var news *upstream.News
	if cfg.NewsAPIKey != "" {
		news = upstream.NewNews(cfg.NewsAPIKey, "")
	} else {
		log.Printf("NEWS_API_KEY not set, /api/news disabled")
	}
	var places *upstream.Places
	if cfg.GoogleMapsKey != "" {
		places = upstream.NewPlaces(cfg.GoogleMapsKey, "")
	} else {
		log.Printf("GOOGLE_MAPS_API_KEY not set, /api/recycling-points disabled")
	}

	router := webserver.New(cfg, webserver.Deps{
		Engine:    poll.NewEngine(ledger),
		Catalog:   poll.NewCatalog(poll.PlannedEvents(), ledger, requests),
		Ledger:    ledger,
		Requests:  requests,
		Forum:     forum,
		News:      news,
		Places:    places,
		Events:    upstream.NewEvents(upstream.EventsConfig{EventbriteToken: cfg.EventbriteToken}),
		Recaptcha: upstream.NewRecaptcha(cfg.RecaptchaSecret, ""),
		Limiter:   limiter,
	})

	httpSrv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("GreenLink API listening on %s", cfg.Port)
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("http: %v", err)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	shutCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = httpSrv.Shutdown(shutCtx)
}
