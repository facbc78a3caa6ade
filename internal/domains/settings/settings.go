package settings

import (
	"time"
)

// Settings are the venue-wide reservation defaults. The scheduling services
// receive them per call through a Provider instead of reading shared mutable
// state, so they stay unit-testable with injected values.
type Settings struct {
	DefaultOpenTime     time.Time
	DefaultCloseTime    time.Time
	ServingInterval     time.Duration
	DiningDuration      time.Duration
	ReservationsPerSlot int

	// Notification fields are carried for the downstream notifier and are
	// opaque to the scheduling engine.
	NotificationEmails    []string
	NotificationPhones    []string
	ReminderEmailTemplate string
	ReminderSMSTemplate   string
}
