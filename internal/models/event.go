package models

import "time"

// RecordEvent describes a lifecycle change of a stored record.
type RecordEvent struct {
	Kind       string    `json:"kind"`
	Action     string    `json:"action"` // created, updated, deleted
	ID         string    `json:"id"`
	OccurredAt time.Time `json:"occurredAt"`
	Record     any       `json:"record,omitempty"`
}

// RoutingKey is the topic the event is published under, e.g. "product.created".
func (e RecordEvent) RoutingKey() string {
	return e.Kind + "." + e.Action
}
