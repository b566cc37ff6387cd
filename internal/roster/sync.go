// Package roster mirrors the upstream booking provider into the local
// database. The assignment board never talks to the provider directly; it
// only sees the camps, rooms and participants this service keeps fresh.
package roster

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"surfcamp-backend/config"
	"surfcamp-backend/internal/notification"
	"surfcamp-backend/internal/store"
)

// Service orchestrates the periodic roster sync.
type Service struct {
	cfg        *config.Config
	store      store.Store
	client     *http.Client
	workerPool *notification.WorkerPool
}

// NewService creates and initializes a new roster sync service. The
// worker pool is shared with the HTTP layer and owned by the caller.
func NewService(cfg *config.Config, s store.Store, pool *notification.WorkerPool) *Service {
	var transport http.RoundTripper = &http.Transport{}
	if cfg.Sync.HTTPProxy != "" {
		proxyURL, err := url.Parse(cfg.Sync.HTTPProxy)
		if err != nil {
			log.Printf("Warning: Invalid proxy URL %q: %v. Sync will not use a proxy.", cfg.Sync.HTTPProxy, err)
		} else {
			transport = &http.Transport{Proxy: http.ProxyURL(proxyURL)}
		}
	}

	return &Service{
		cfg:   cfg,
		store: s,
		client: &http.Client{
			Transport: transport,
			Timeout:   30 * time.Second,
		},
		workerPool: pool,
	}
}

// Run starts the sync process in a loop.
func (s *Service) Run(ctx context.Context) {
	if !s.cfg.Sync.Enabled {
		log.Println("Roster sync is disabled. Not starting.")
		return
	}
	log.Println("Starting roster sync service...")

	s.SyncOnce(ctx)

	timer := time.NewTimer(s.cfg.Sync.Interval)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Roster sync service shutting down.")
			return
		case <-timer.C:
			s.SyncOnce(ctx)
			timer.Reset(s.cfg.Sync.Interval)
		}
	}
}

// SyncOnce performs a single sync round: rooms first so a freshly opened
// board always sees the full room list, then bookings. A failed fetch
// aborts the round without touching local state.
func (s *Service) SyncOnce(ctx context.Context) {
	log.Println("Executing sync cycle...")

	rooms, err := s.fetchAllRooms(ctx)
	if err != nil {
		log.Printf("Error fetching rooms feed: %v", err)
		return
	}
	if len(rooms) > 0 {
		if err := s.store.UpsertRooms(ctx, rooms); err != nil {
			log.Printf("Error upserting rooms: %v", err)
			return
		}
	}

	bookings, err := s.fetchAllBookings(ctx)
	if err != nil {
		log.Printf("Error fetching bookings feed: %v", err)
		return
	}

	changedCamps, err := s.store.UpsertCampsAndBookings(ctx, bookings)
	if err != nil {
		log.Printf("Error upserting camps and bookings: %v", err)
		return
	}

	if len(changedCamps) > 0 {
		log.Printf("Dispatching roster notifications for %d camps", len(changedCamps))
		for _, campID := range changedCamps {
			s.workerPool.Dispatch(notification.Event{
				CampID: campID,
				Kind:   notification.EventRosterUpdated,
			})
		}
	}

	log.Println("Sync cycle finished.")
}

func (s *Service) fetchAllBookings(ctx context.Context) ([]store.BookingItem, error) {
	var all []store.BookingItem
	total := 1
	pageSize := s.cfg.Sync.Bookings.PageSize
	for page := 1; (page-1)*pageSize < total; page++ {
		var resp BookingFeedResponse
		if err := s.fetchPage(ctx, s.cfg.Sync.Bookings, page, &resp); err != nil {
			return nil, fmt.Errorf("bookings page %d: %w", page, err)
		}
		if resp.Code != 0 {
			return nil, fmt.Errorf("bookings feed returned non-zero application code: %d", resp.Code)
		}
		if resp.Data.Total == 0 || len(resp.Data.Items) == 0 {
			break
		}
		total = resp.Data.Total
		all = append(all, resp.Data.Items...)
	}
	return all, nil
}

func (s *Service) fetchAllRooms(ctx context.Context) ([]store.RoomItem, error) {
	var all []store.RoomItem
	total := 1
	pageSize := s.cfg.Sync.Rooms.PageSize
	for page := 1; (page-1)*pageSize < total; page++ {
		var resp RoomFeedResponse
		if err := s.fetchPage(ctx, s.cfg.Sync.Rooms, page, &resp); err != nil {
			return nil, fmt.Errorf("rooms page %d: %w", page, err)
		}
		if resp.Code != 0 {
			return nil, fmt.Errorf("rooms feed returned non-zero application code: %d", resp.Code)
		}
		if resp.Data.Total == 0 || len(resp.Data.Items) == 0 {
			break
		}
		total = resp.Data.Total
		all = append(all, resp.Data.Items...)
	}
	return all, nil
}

// fetchPage fetches a single page from one upstream feed endpoint.
func (s *Service) fetchPage(ctx context.Context, feed config.FeedRequest, page int, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feed.URL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	q := req.URL.Query()
	q.Set("page", strconv.Itoa(page))
	q.Set("pageSize", strconv.Itoa(feed.PageSize))
	req.URL.RawQuery = q.Encode()

	for key, value := range feed.Headers {
		req.Header.Set(key, value)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("http request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("received non-200 status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to unmarshal feed response: %w", err)
	}
	return nil
}
