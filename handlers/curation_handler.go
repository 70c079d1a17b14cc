package handlers

import (
	"net/http"

	"warga-daily/middleware"
	"warga-daily/models"
	"warga-daily/services"

	"github.com/gin-gonic/gin"
)

type CurationHandler struct {
	curation services.CurationService
}

func NewCurationHandler(curation services.CurationService) *CurationHandler {
	return &CurationHandler{curation: curation}
}

func (h *CurationHandler) GetWeeklyPicks(c *gin.Context) {
	picks, err := h.curation.Get(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if picks == nil {
		c.JSON(http.StatusOK, models.WeeklyPicks{FeaturedArticleIDs: []string{}})
		return
	}
	c.JSON(http.StatusOK, picks)
}

func (h *CurationHandler) SetWeeklyPicks(c *gin.Context) {
	actor := middleware.CurrentProfile(c)

	var req models.SetWeeklyPicksRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	picks, err := h.curation.Set(c.Request.Context(), actor, req.ArticleIDs, req.EditorNote)
	if err != nil {
		sendServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, picks)
}
