package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"surfcamp-backend/internal/board"
	"surfcamp-backend/internal/notification"
	"surfcamp-backend/internal/store"
)

// OpenBoard handles POST /api/camps/{camp_id}/board. It loads the roster,
// room list and saved relation and starts a fresh editing session,
// discarding any previous unsaved one for the camp. An abandoned load
// (client navigates away) is cancelled through the request context and
// leaves no session behind.
func (h *Handler) OpenBoard(c *gin.Context) {
	campID := c.Param("camp_id")

	if _, err := h.store.GetCamp(c.Request.Context(), campID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "camp not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load camp"})
		}
		return
	}

	data, err := h.store.LoadBoard(c.Request.Context(), campID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load board data"})
		return
	}

	b := board.New(data.Roster, data.Rooms)
	b.Restore(data.Relation, data.RoomOrder)

	session := h.sessions.Open(campID, b)
	c.JSON(http.StatusCreated, session.View())
}

// GetBoard handles GET /api/camps/{camp_id}/board.
func (h *Handler) GetBoard(c *gin.Context) {
	session, ok := h.sessions.Get(c.Param("camp_id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "no open board session for camp"})
		return
	}
	c.JSON(http.StatusOK, session.View())
}

// ApplyBoardCommand handles POST /api/camps/{camp_id}/board/commands: one
// drag/drop or remove gesture. Unknown room or participant references are
// tolerated as no-ops; only a malformed command is rejected.
func (h *Handler) ApplyBoardCommand(c *gin.Context) {
	session, ok := h.sessions.Get(c.Param("camp_id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "no open board session for camp"})
		return
	}

	var cmd board.Command
	if err := c.ShouldBindJSON(&cmd); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := session.Apply(cmd); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, session.View())
}

// SaveBoard handles POST /api/camps/{camp_id}/board/save: an explicit
// commit of the session's relation through the persistence gateway. On
// failure local state is kept as-is so the operator can retry.
func (h *Handler) SaveBoard(c *gin.Context) {
	campID := c.Param("camp_id")
	session, ok := h.sessions.Get(campID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "no open board session for camp"})
		return
	}

	if err := h.store.SaveAssignment(c.Request.Context(), campID, session.Relation()); err != nil {
		if errors.Is(err, store.ErrInvalidReference) {
			// Roster changed under the session (e.g. a booking was
			// cancelled by the sync). The operator reopens the board.
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	session.MarkSaved()
	h.pool.Dispatch(notification.Event{CampID: campID, Kind: notification.EventAssignmentSaved})
	c.JSON(http.StatusOK, session.View())
}

// CloseBoard handles DELETE /api/camps/{camp_id}/board: discard the
// session without saving.
func (h *Handler) CloseBoard(c *gin.Context) {
	h.sessions.Discard(c.Param("camp_id"))
	c.Status(http.StatusNoContent)
}
