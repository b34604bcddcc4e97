package mq

import (
	"context"
	"encoding/json"
	"log"

	"courtside/models"
	"courtside/rdx"
)

const channel = "booking-events"

// Event types
const (
	BookingCreated   = "booking.created"
	BookingCancelled = "booking.cancelled"
)

// BookingEvent is what lifecycle changes publish for downstream consumers
// (notifications, audit).
type BookingEvent struct {
	Type    string         `json:"type"`
	Booking models.Booking `json:"booking"`
}

// Emit publishes a booking lifecycle event to Redis. Best-effort: a failed
// publish is logged and never fails the request that triggered it.
func Emit(ctx context.Context, eventType string, b models.Booking) {
	data, err := json.Marshal(BookingEvent{Type: eventType, Booking: b})
	if err != nil {
		log.Printf("[mq] marshal event failed: %v", err)
		return
	}
	if err := rdx.Conn.Publish(ctx, channel, data).Err(); err != nil {
		log.Printf("[mq] publish %s failed: %v", eventType, err)
	}
}
