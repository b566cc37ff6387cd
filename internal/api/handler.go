package api

import (
	"github.com/SherClockHolmes/webpush-go"

	"surfcamp-backend/internal/board"
	"surfcamp-backend/internal/notification"
	"surfcamp-backend/internal/store"
)

// Handler holds shared dependencies for API handlers.
type Handler struct {
	store    store.Store
	sessions *board.SessionManager
	pool     *notification.WorkerPool
	webpush  *webpush.Options
}

// NewHandler creates a new API handler.
func NewHandler(s store.Store, sessions *board.SessionManager, pool *notification.WorkerPool, webpushOptions *webpush.Options) *Handler {
	return &Handler{
		store:    s,
		sessions: sessions,
		pool:     pool,
		webpush:  webpushOptions,
	}
}
