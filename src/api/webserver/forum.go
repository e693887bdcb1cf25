package webserver

import (
	"html"
	"net/http"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"github.com/microcosm-cc/bluemonday"

	"github.com/greenlink-tr/greenlink/src/api/data"
	"github.com/greenlink-tr/greenlink/src/api/types"
	"github.com/greenlink-tr/greenlink/src/api/upstream"
)

type Forum struct {
	store     data.ForumStore
	recaptcha *upstream.Recaptcha
	sanitizer *bluemonday.Policy
}

func NewForum(store data.ForumStore, rc *upstream.Recaptcha) Forum {
	// Posts are plain text with a little structure; everything else is
	// stripped before storage.
	sanitizer := bluemonday.StrictPolicy()
	return Forum{store: store, recaptcha: rc, sanitizer: sanitizer}
}

// List returns all posts, newest first.
func (f Forum) List(c *gin.Context) {
	posts, err := f.store.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "Forum verisi çekilemedi."})
		return
	}
	c.JSON(http.StatusOK, gin.H{"posts": posts})
}

func (f Forum) Create(c *gin.Context) {
	var req struct {
		Name           string `json:"name" binding:"max=100"`
		Title          string `json:"title" binding:"required,max=200"`
		Content        string `json:"content" binding:"required,max=5000"`
		RecaptchaToken string `json:"recaptchaToken"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "Başlık ve içerik zorunlu.", "details": err.Error()})
		return
	}
	if err := f.recaptcha.Verify(c.Request.Context(), req.RecaptchaToken); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "reCAPTCHA doğrulaması başarısız."})
		return
	}

	name := req.Name
	if name == "" {
		name = "İsimsiz"
	}

	post := types.ForumPost{
		Name:    html.EscapeString(name),
		Title:   html.EscapeString(req.Title),
		Content: f.sanitizer.Sanitize(req.Content),
	}

	if !utf8.ValidString(post.Title) || !utf8.ValidString(post.Content) {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "Geçersiz karakterler var."})
		return
	}
	if post.Content == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "Başlık ve içerik zorunlu."})
		return
	}

	if err := f.store.Create(c.Request.Context(), &post); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "Gönderi kaydedilemedi."})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"ok": true, "post": post})
}
