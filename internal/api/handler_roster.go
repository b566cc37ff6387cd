package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetRoster handles the GET /api/camps/{camp_id}/roster request: every
// participant eligible for assignment in the camp, whether or not they
// currently hold a room.
func (h *Handler) GetRoster(c *gin.Context) {
	participants, err := h.store.Roster(c.Request.Context(), c.Param("camp_id"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve roster"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"participants": participants})
}
