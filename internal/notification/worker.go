package notification

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/SherClockHolmes/webpush-go"
	"gorm.io/gorm"

	"surfcamp-backend/internal/model"
)

// EventKind distinguishes what happened to a camp.
type EventKind string

const (
	EventRosterUpdated   EventKind = "roster_updated"
	EventAssignmentSaved EventKind = "assignment_saved"
)

// Event is one notification job: something changed for a camp and every
// operator subscribed to that camp should hear about it.
type Event struct {
	CampID string
	Kind   EventKind
}

// Sender defines the interface for sending a web push notification.
type Sender interface {
	Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error)
}

// WebPushSender is a real implementation of Sender using the webpush library.
type WebPushSender struct{}

// Send sends a notification using the webpush library.
func (s *WebPushSender) Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error) {
	return webpush.SendNotification(payload, sub, options)
}

// WorkerPool manages a pool of workers for sending notifications.
type WorkerPool struct {
	size    int
	jobs    chan Event
	db      *gorm.DB
	webpush *webpush.Options
	sender  Sender
}

// NewWorkerPool creates a new worker pool.
func NewWorkerPool(size int, db *gorm.DB, webpushOptions *webpush.Options) *WorkerPool {
	return &WorkerPool{
		size:    size,
		jobs:    make(chan Event, size),
		db:      db,
		webpush: webpushOptions,
		sender:  &WebPushSender{},
	}
}

// Start launches the worker goroutines.
func (wp *WorkerPool) Start(ctx context.Context) {
	for i := 0; i < wp.size; i++ {
		go wp.worker(ctx, i)
	}
}

// worker is the actual worker goroutine.
func (wp *WorkerPool) worker(ctx context.Context, id int) {
	log.Printf("Worker %d started", id)
	for {
		select {
		case event := <-wp.jobs:
			log.Printf("Worker %d processing %s for camp %s", id, event.Kind, event.CampID)
			wp.notifyCampSubscribers(ctx, event)
		case <-ctx.Done():
			log.Printf("Worker %d shutting down", id)
			return
		}
	}
}

// Dispatch sends a job to the worker pool.
func (wp *WorkerPool) Dispatch(event Event) {
	wp.jobs <- event
}

// Jobs returns the jobs channel for testing.
func (wp *WorkerPool) Jobs() chan Event {
	return wp.jobs
}

// notifyCampSubscribers fetches subscriptions and sends notifications for
// one camp event.
func (wp *WorkerPool) notifyCampSubscribers(ctx context.Context, event Event) {
	var subscriptions []model.PushSubscription
	err := wp.db.WithContext(ctx).
		Joins("JOIN subscription_camp_mapping scm ON scm.push_subscription_endpoint = push_subscriptions.endpoint").
		Where("scm.camp_id = ?", event.CampID).
		Find(&subscriptions).Error
	if err != nil {
		log.Printf("Error fetching subscriptions for camp %s: %v", event.CampID, err)
		return
	}

	if len(subscriptions) == 0 {
		return
	}

	log.Printf("Sending %d notifications for camp %s", len(subscriptions), event.CampID)

	var camp model.Camp
	campLabel := event.CampID
	if err := wp.db.WithContext(ctx).
		Select("name").
		First(&camp, "id = ?", event.CampID).Error; err != nil {
		log.Printf("Error fetching camp %s: %v", event.CampID, err)
	} else if camp.Name != "" {
		campLabel = camp.Name
	}

	var message string
	switch event.Kind {
	case EventAssignmentSaved:
		message = fmt.Sprintf("Room assignments for %s were updated", campLabel)
	default:
		message = fmt.Sprintf("New participants joined the roster for %s", campLabel)
	}

	for _, sub := range subscriptions {
		wp.sendNotification(ctx, sub, []byte(message))
	}
}

// sendNotification sends a single web push notification.
func (wp *WorkerPool) sendNotification(ctx context.Context, sub model.PushSubscription, payload []byte) {
	wpSub := &webpush.Subscription{
		Endpoint: sub.Endpoint,
		Keys: webpush.Keys{
			P256dh: sub.P256DH,
			Auth:   sub.Auth,
		},
	}

	resp, err := wp.sender.Send(payload, wpSub, wp.webpush)
	if err != nil {
		log.Printf("Error sending notification to %s: %v", sub.Endpoint, err)
		return
	}
	defer resp.Body.Close()

	// Handle expired subscriptions
	if resp.StatusCode == http.StatusGone {
		log.Printf("Subscription for endpoint %s is expired. Deleting.", sub.Endpoint)
		if err := wp.db.WithContext(ctx).Delete(&sub).Error; err != nil {
			log.Printf("Failed to delete expired subscription %s: %v", sub.Endpoint, err)
		}
	}
}
