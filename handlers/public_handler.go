package handlers

import (
	"net/http"
	"strings"

	"warga-daily/services"

	"github.com/gin-gonic/gin"
)

// categoryMap routes the three fixed category slugs to their exact-match
// tag values. Tags are case sensitive in the store; slugs are not.
var categoryMap = map[string]string{
	"investigasi": "Investigasi",
	"opini":       "Opini",
	"sejarah":     "Sejarah",
}

type PublicHandler struct {
	articleService services.ArticleService
	userService    services.AuthService
	curation       services.CurationService
}

func NewPublicHandler(articleService services.ArticleService, userService services.AuthService, curation services.CurationService) *PublicHandler {
	return &PublicHandler{
		articleService: articleService,
		userService:    userService,
		curation:       curation,
	}
}

func (h *PublicHandler) GetHomeFeed(c *gin.Context) {
	feed, err := h.curation.Homepage(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, feed)
}

func (h *PublicHandler) GetPublishedArticles(c *gin.Context) {
	articles, err := h.articleService.ListPublished(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"articles": articles, "total": len(articles)})
}

func (h *PublicHandler) GetArticleBySlug(c *gin.Context) {
	article, err := h.articleService.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		sendServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, article)
}

func (h *PublicHandler) GetCategory(c *gin.Context) {
	slug := strings.ToLower(c.Param("category"))
	tag, ok := categoryMap[slug]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "category not found"})
		return
	}

	articles, err := h.articleService.ListByTag(c.Request.Context(), tag)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"category": tag,
		"articles": articles,
		"total":    len(articles),
	})
}

func (h *PublicHandler) GetAuthor(c *gin.Context) {
	profile, err := h.userService.GetProfile(c.Request.Context(), c.Param("id"))
	if err != nil {
		sendServiceError(c, err)
		return
	}
	// Public view only; credentials never leave the handler.
	c.JSON(http.StatusOK, gin.H{
		"uid":          profile.UID,
		"display_name": profile.DisplayName,
		"photo_url":    profile.PhotoURL,
		"bio":          profile.Bio,
	})
}

func (h *PublicHandler) GetAuthorArticles(c *gin.Context) {
	articles, err := h.articleService.ListByAuthorPublic(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"articles": articles, "total": len(articles)})
}

func (h *PublicHandler) RecordView(c *gin.Context) {
	if err := h.articleService.RecordView(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "recorded"})
}

func (h *PublicHandler) RecordAppClick(c *gin.Context) {
	if err := h.articleService.RecordAppClick(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "recorded"})
}

// GetAppLink returns the companion-app deep link for a locked article.
func (h *PublicHandler) GetAppLink(c *gin.Context) {
	article, err := h.articleService.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		sendServiceError(c, err)
		return
	}
	link := article.AppLink()
	if !article.Content.IsLocked || link == "" {
		c.JSON(http.StatusNotFound, gin.H{"error": "article has no app link"})
		return
	}
	cta := article.Content.LockCTAText
	if cta == "" {
		cta = "Baca selengkapnya di aplikasi Warga+"
	}
	c.JSON(http.StatusOK, gin.H{"app_link": link, "cta_text": cta})
}
