package api

import (
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"surfcamp-backend/config"
	"surfcamp-backend/internal/board"
	"surfcamp-backend/internal/mw"
	"surfcamp-backend/internal/notification"
	"surfcamp-backend/internal/store"
)

// NewRouter creates and configures a new Gin router.
func NewRouter(s store.Store, sessions *board.SessionManager, pool *notification.WorkerPool, webpushOptions *webpush.Options, srv *config.ServerConfig) *gin.Engine {
	r := gin.Default()

	if len(srv.AllowedOrigins) > 0 {
		corsCfg := cors.DefaultConfig()
		corsCfg.AllowOrigins = srv.AllowedOrigins
		corsCfg.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
		r.Use(cors.New(corsCfg))
	}

	db := s.DB()
	handler := NewHandler(s, sessions, pool, webpushOptions)

	rateLimiter := mw.RateLimiter(rate.Limit(srv.RateLimitPerSec), srv.RateLimitBurst, srv.RequestIPHeader)

	cacheTTL := 5 * time.Minute
	if srv.CacheTTLSeconds > 0 {
		cacheTTL = time.Duration(srv.CacheTTLSeconds) * time.Second
	}
	cacheStore := cache.New(cacheTTL, 2*cacheTTL)
	caching := mw.Cache(cacheStore, cacheTTL)

	// API group. Board endpoints are never cached: operators must always
	// see the live relation.
	api := r.Group("/api")
	api.Use(rateLimiter)
	{
		api.GET("/camps", caching, GetCamps(db))
		api.GET("/camps/:camp_id", GetCamp(db))

		api.GET("/rooms", caching, handler.GetRooms)
		api.GET("/camps/:camp_id/roster", handler.GetRoster)

		api.GET("/camps/:camp_id/assignment", handler.GetAssignment)
		api.PUT("/camps/:camp_id/assignment", handler.PutAssignment)

		api.POST("/camps/:camp_id/board", handler.OpenBoard)
		api.GET("/camps/:camp_id/board", handler.GetBoard)
		api.POST("/camps/:camp_id/board/commands", handler.ApplyBoardCommand)
		api.POST("/camps/:camp_id/board/save", handler.SaveBoard)
		api.DELETE("/camps/:camp_id/board", handler.CloseBoard)

		api.GET("/subscriptions", handler.GetSubscription)
		api.PUT("/subscriptions", handler.PutSubscription)
		api.DELETE("/subscriptions", handler.DeleteSubscription)
		api.GET("/vapid_public_key", handler.GetVAPIDPublicKey)
	}

	return r
}
