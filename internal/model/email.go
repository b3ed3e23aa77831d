package model

import "time"

// EmailDeliveryStatus tracks the lifecycle of a sent invoice email.
type EmailDeliveryStatus string

// Email delivery status constants.
const (
	EmailStatusSending   EmailDeliveryStatus = "sending"
	EmailStatusDelivered EmailDeliveryStatus = "delivered"
	EmailStatusOpened    EmailDeliveryStatus = "opened"
	EmailStatusFailed    EmailDeliveryStatus = "failed"
	EmailStatusBounced   EmailDeliveryStatus = "bounced"
)

// EmailRecord is one entry in an invoice's send history. Records are
// append-only; view and download events mutate the most recent record.
type EmailRecord struct {
	SentAt       time.Time           `json:"sentAt"`
	OpenedAt     *time.Time          `json:"openedAt,omitempty"`
	DownloadedAt *time.Time          `json:"downloadedAt,omitempty"`
	Recipient    string              `json:"recipient"`
	Subject      string              `json:"subject"`
	Status       EmailDeliveryStatus `json:"status"`
	TrackingID   string              `json:"trackingId"`
}
