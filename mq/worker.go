package mq

import (
	"context"
	"encoding/json"
	"log"

	"courtside/rdx"
)

// StartNotificationWorker consumes booking events and dispatches user
// notifications. Runs as a goroutine from main for the life of the process.
// TODO: hand events to a real mail/push sender once the campus SMTP relay
// is provisioned; until then the worker records them in the log.
func StartNotificationWorker() {
	ctx := context.Background()
	sub := rdx.Conn.Subscribe(ctx, channel)
	ch := sub.Channel()

	log.Println("[mq] notification worker listening")

	for msg := range ch {
		var event BookingEvent
		if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
			log.Printf("[mq] bad event payload: %v", err)
			continue
		}
		switch event.Type {
		case BookingCreated:
			log.Printf("[notify] user %s booked %s on %s %s-%s",
				event.Booking.UserID, event.Booking.FacilityID,
				event.Booking.Date, event.Booking.StartTime, event.Booking.EndTime)
		case BookingCancelled:
			log.Printf("[notify] user %s cancelled %s on %s %s-%s",
				event.Booking.UserID, event.Booking.FacilityID,
				event.Booking.Date, event.Booking.StartTime, event.Booking.EndTime)
		default:
			log.Printf("[mq] unknown event type %q", event.Type)
		}
	}
}
