package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"surfcamp-backend/internal/notification"
	"surfcamp-backend/internal/store"
)

// GetAssignment handles the GET /api/camps/{camp_id}/assignment request.
// It returns the persisted relation, which may lag behind an open board
// session until that session is saved.
func (h *Handler) GetAssignment(c *gin.Context) {
	rel, err := h.store.LoadAssignment(c.Request.Context(), c.Param("camp_id"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve assignment"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"assignment": rel})
}

type putAssignmentRequest struct {
	Assignment map[string][]string `json:"assignment" binding:"required"`
}

// PutAssignment handles the PUT /api/camps/{camp_id}/assignment request:
// a direct gateway save of a full relation, bypassing any board session.
// The payload is validated against the camp's roster and the room list;
// a bad reference rejects the whole save.
func (h *Handler) PutAssignment(c *gin.Context) {
	var req putAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	campID := c.Param("camp_id")
	if err := h.store.SaveAssignment(c.Request.Context(), campID, req.Assignment); err != nil {
		if errors.Is(err, store.ErrInvalidReference) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	h.pool.Dispatch(notification.Event{CampID: campID, Kind: notification.EventAssignmentSaved})
	c.Status(http.StatusNoContent)
}
