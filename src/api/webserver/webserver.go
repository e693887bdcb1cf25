package webserver

import (
	"github.com/gin-gonic/gin"

	"github.com/greenlink-tr/greenlink/src/api/config"
	"github.com/greenlink-tr/greenlink/src/api/data"
	"github.com/greenlink-tr/greenlink/src/api/poll"
	"github.com/greenlink-tr/greenlink/src/api/upstream"
)

// Deps carries everything the route handlers need.
type Deps struct {
	Engine    *poll.Engine
	Catalog   *poll.Catalog
	Ledger    *data.Ledger
	Requests  *data.RequestStore
	Forum     data.ForumStore
	News      *upstream.News
	Places    *upstream.Places
	Events    *upstream.Events
	Recaptcha *upstream.Recaptcha
	Limiter   RateLimiter
}

func New(cfg config.Config, d Deps) *gin.Engine {
	g := gin.New()
	g.Use(gin.Logger(), gin.Recovery())
	attachRoutes(g, cfg, d)
	return g
}

func attachRoutes(g *gin.Engine, cfg config.Config, d Deps) {
	g.Use(corsMiddleware(cfg.AllowedOrigins))
	if len(cfg.AllowedIPs) > 0 {
		g.Use(ipAllowlist(cfg.AllowedIPs))
	}

	api := g.Group("/api")
	if d.Limiter != nil {
		api.Use(rateLimit(d.Limiter))
	}

	polls := NewPolls(d.Engine, d.Catalog, d.Ledger, d.Requests, d.Recaptcha)
	api.GET("/event-polls", polls.List)
	api.GET("/event-votes", polls.Votes)
	api.POST("/event-vote", polls.Cast)
	api.POST("/event-request", polls.SubmitRequest)

	forum := NewForum(d.Forum, d.Recaptcha)
	api.GET("/forum/posts", forum.List)
	api.POST("/forum/posts", forum.Create)

	proxy := NewProxy(d.News, d.Places, d.Events)
	api.GET("/news", proxy.News)
	api.GET("/recycling-points", proxy.RecyclingPoints)
	api.GET("/events", proxy.Events)
	api.GET("/status", proxy.Status)

	if cfg.PublicDir != "" {
		g.Static("/public", cfg.PublicDir)
		g.StaticFile("/", cfg.PublicDir+"/index.html")
	}
}
