package jobs

import (
	"log"
	"time"

	"github.com/pawgrounds/backend/internal/services"
)

// NotificationRetentionJob periodically prunes notifications older than the
// configured retention age.
type NotificationRetentionJob struct {
	notifications *services.NotificationService
	ticker        *time.Ticker
	done          chan bool
}

// NewNotificationRetentionJob creates a new notification retention job
func NewNotificationRetentionJob(notifications *services.NotificationService, interval time.Duration) *NotificationRetentionJob {
	return &NotificationRetentionJob{
		notifications: notifications,
		ticker:        time.NewTicker(interval),
		done:          make(chan bool),
	}
}

// Start begins the retention job
func (j *NotificationRetentionJob) Start() {
	log.Println("Notification retention job started")

	go func() {
		// Run immediately on start
		j.prune()

		// Then run on schedule
		for {
			select {
			case <-j.ticker.C:
				j.prune()
			case <-j.done:
				log.Println("Notification retention job stopped")
				return
			}
		}
	}()
}

// Stop stops the retention job
func (j *NotificationRetentionJob) Stop() {
	j.ticker.Stop()
	j.done <- true
}

func (j *NotificationRetentionJob) prune() {
	deleted, err := j.notifications.PruneExpired()
	if err != nil {
		log.Printf("Error during notification retention: %v", err)
		return
	}
	if deleted > 0 {
		log.Printf("Notification retention removed %d expired notifications", deleted)
	}
}
