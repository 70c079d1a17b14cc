package handlers

import (
	"errors"
	"net/http"

	"warga-daily/middleware"
	"warga-daily/models"
	"warga-daily/services"

	"github.com/gin-gonic/gin"
)

type ArticleHandler struct {
	articleService services.ArticleService
}

func NewArticleHandler(articleService services.ArticleService) *ArticleHandler {
	return &ArticleHandler{articleService: articleService}
}

// sendServiceError translates service sentinels into HTTP responses.
func sendServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrInvalidTransition),
		errors.Is(err, services.ErrTooManyPicks),
		errors.Is(err, services.ErrUnpublishedPick):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func (h *ArticleHandler) CreateArticle(c *gin.Context) {
	actor := middleware.CurrentProfile(c)

	var draft models.ArticleDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id, err := h.articleService.Create(c.Request.Context(), actor, draft)
	if err != nil {
		sendServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": id})
}

func (h *ArticleHandler) GetArticles(c *gin.Context) {
	actor := middleware.CurrentProfile(c)

	var params models.ArticleListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	articles, err := h.articleService.List(c.Request.Context(), actor, params)
	if err != nil {
		sendServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"articles": articles, "total": len(articles)})
}

func (h *ArticleHandler) GetArticle(c *gin.Context) {
	actor := middleware.CurrentProfile(c)

	article, err := h.articleService.Get(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		sendServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, article)
}

func (h *ArticleHandler) UpdateArticle(c *gin.Context) {
	actor := middleware.CurrentProfile(c)

	var patch models.ArticlePatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.articleService.Update(c.Request.Context(), actor, c.Param("id"), patch); err != nil {
		sendServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "updated"})
}

func (h *ArticleHandler) SubmitForReview(c *gin.Context) {
	actor := middleware.CurrentProfile(c)

	if err := h.articleService.SubmitForReview(c.Request.Context(), actor, c.Param("id")); err != nil {
		sendServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": string(models.StatusPendingReview)})
}

func (h *ArticleHandler) ReviewArticle(c *gin.Context) {
	actor := middleware.CurrentProfile(c)

	var req models.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.articleService.Review(c.Request.Context(), actor, c.Param("id"), req); err != nil {
		sendServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": string(req.Status)})
}

func (h *ArticleHandler) DeleteArticle(c *gin.Context) {
	actor := middleware.CurrentProfile(c)

	if err := h.articleService.Delete(c.Request.Context(), actor, c.Param("id")); err != nil {
		sendServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
