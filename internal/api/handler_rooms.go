package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetRooms handles the GET /api/rooms request. Room attributes are
// display-only; occupancy lives on the board, not here.
func (h *Handler) GetRooms(c *gin.Context) {
	rooms, err := h.store.ListRooms(c.Request.Context())
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve rooms"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"rooms": rooms})
}
