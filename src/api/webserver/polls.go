package webserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/greenlink-tr/greenlink/src/api/data"
	"github.com/greenlink-tr/greenlink/src/api/poll"
	"github.com/greenlink-tr/greenlink/src/api/types"
	"github.com/greenlink-tr/greenlink/src/api/upstream"
)

type Polls struct {
	engine    *poll.Engine
	catalog   *poll.Catalog
	ledger    *data.Ledger
	requests  *data.RequestStore
	recaptcha *upstream.Recaptcha
}

func NewPolls(engine *poll.Engine, catalog *poll.Catalog, ledger *data.Ledger, requests *data.RequestStore, rc *upstream.Recaptcha) Polls {
	return Polls{engine: engine, catalog: catalog, ledger: ledger, requests: requests, recaptcha: rc}
}

// List returns the full poll catalog with current tallies.
func (p Polls) List(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"events": p.catalog.List()})
}

// Votes dumps the raw ledger, keyed by poll-item id.
func (p Polls) Votes(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"votes": p.ledger.Load()})
}

func (p Polls) Cast(c *gin.Context) {
	var req struct {
		ID             string  `json:"id" binding:"required,max=100"`
		Choice         string  `json:"choice" binding:"required,oneof=yes no"`
		PreviousChoice *string `json:"previousChoice" binding:"omitempty,oneof=yes no"`
		RecaptchaToken string  `json:"recaptchaToken"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "Geçersiz oy verisi.", "details": err.Error()})
		return
	}
	if err := p.recaptcha.Verify(c.Request.Context(), req.RecaptchaToken); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "reCAPTCHA doğrulaması başarısız."})
		return
	}

	intent := types.VoteIntent{ID: req.ID, Choice: req.Choice}
	if req.PreviousChoice != nil {
		intent.PreviousChoice = *req.PreviousChoice
	}

	tally, err := p.engine.Apply(intent)
	if err != nil {
		if errors.Is(err, poll.ErrInvalidVote) {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "Geçersiz oy verisi.", "details": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "Oy kaydedilemedi."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "id": req.ID, "votes": tally})
}

func (p Polls) SubmitRequest(c *gin.Context) {
	var req struct {
		Name           string   `json:"name" binding:"max=200"`
		Email          string   `json:"email" binding:"omitempty,email"`
		City           string   `json:"city" binding:"max=100"`
		Type           string   `json:"type" binding:"max=100"`
		Date           string   `json:"date" binding:"max=100"`
		People         string   `json:"people" binding:"max=50"`
		Message        string   `json:"message" binding:"max=2000"`
		Motivation     []string `json:"motivation"`
		RecaptchaToken string   `json:"recaptchaToken"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "Geçersiz alanlar var.", "details": err.Error()})
		return
	}
	if !poll.KnownType(req.Type) {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "Geçersiz alanlar var.", "details": "type"})
		return
	}
	if err := p.recaptcha.Verify(c.Request.Context(), req.RecaptchaToken); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "reCAPTCHA doğrulaması başarısız."})
		return
	}

	saved, err := p.requests.Submit(types.EventRequest{
		Name:       req.Name,
		Email:      req.Email,
		City:       req.City,
		Type:       req.Type,
		Date:       req.Date,
		People:     req.People,
		Message:    req.Message,
		Motivation: req.Motivation,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "Talep kaydedilemedi."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "saved": saved})
}
