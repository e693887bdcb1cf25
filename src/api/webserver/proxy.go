package webserver

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/greenlink-tr/greenlink/src/api/upstream"
)

const version = "1.0.0"

// Proxy fronts the third-party APIs. The vote/catalog endpoints never depend
// on these; an upstream outage only affects its own route.
type Proxy struct {
	news   *upstream.News
	places *upstream.Places
	events *upstream.Events
}

func NewProxy(news *upstream.News, places *upstream.Places, events *upstream.Events) Proxy {
	return Proxy{news: news, places: places, events: events}
}

func (p Proxy) Status(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true, "name": "GreenLink", "version": version})
}

func (p Proxy) News(c *gin.Context) {
	if p.news == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "NEWS_API_KEY tanımlı değil"})
		return
	}

	resp, err := p.news.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		log.Printf("news: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Haber API isteği başarısız"})
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (p Proxy) RecyclingPoints(c *gin.Context) {
	city := c.Query("city")
	if city == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "city parametresi gerekli"})
		return
	}
	if p.places == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "GOOGLE_MAPS_API_KEY tanımlı değil"})
		return
	}

	points, status, err := p.places.RecyclingPoints(c.Request.Context(), city)
	if err != nil {
		log.Printf("places: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{
			"error":  "Google Places hatası: " + status,
			"status": status,
			"points": []upstream.Point{},
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"points": points, "status": status})
}

func (p Proxy) Events(c *gin.Context) {
	city := strings.ToLower(c.Query("city"))
	if city == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "city parametresi gerekli"})
		return
	}

	results := p.events.ForCity(c.Request.Context(), city)
	if results == nil {
		results = []upstream.Event{}
	}
	c.JSON(http.StatusOK, gin.H{"events": results})
}
