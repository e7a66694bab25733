package models

// Notification is a confirmation message handed to the notification service.
type Notification struct {
	Type      string            `json:"type"`
	Channel   string            `json:"channel"`
	Recipient string            `json:"recipient"`
	Subject   string            `json:"subject"`
	Body      string            `json:"body"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}
