package types

import "time"

// Notification is a message dispatched to a notification sink when an alert fires.
type Notification struct {
	Subject    string
	Body       string
	From       string
	Recipients []string
	Kind       AlertKind
	Direction  Direction
	Time       time.Time
}
