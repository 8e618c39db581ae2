package events

import (
	"context"

	"clipbook/pkg/kafka"
	"clipbook/pkg/logger"
	"clipbook/pkg/model"
)

const (
	EventAppointmentScheduled = "appointment.scheduled"
	EventAppointmentCancelled = "appointment.cancelled"
)

// Publisher emits appointment lifecycle events. Publishing is best
// effort: a broker failure is logged, never surfaced to the caller, so
// a booked appointment stands even when its event is lost.
type Publisher interface {
	AppointmentScheduled(ctx context.Context, appt *model.Appointment)
	AppointmentCancelled(ctx context.Context, appt *model.Appointment)
	Close() error
}

// MessageWriter is the slice of the Kafka producer the publisher needs.
type MessageWriter interface {
	Publish(ctx context.Context, msg kafka.Message) error
	Close() error
}

type kafkaPublisher struct {
	writer MessageWriter
	source string
	log    *logger.Logger
}

func NewKafkaPublisher(writer MessageWriter, source string, log *logger.Logger) Publisher {
	return &kafkaPublisher{
		writer: writer,
		source: source,
		log:    log,
	}
}

func (p *kafkaPublisher) AppointmentScheduled(ctx context.Context, appt *model.Appointment) {
	p.publish(ctx, EventAppointmentScheduled, appt)
}

func (p *kafkaPublisher) AppointmentCancelled(ctx context.Context, appt *model.Appointment) {
	p.publish(ctx, EventAppointmentCancelled, appt)
}

func (p *kafkaPublisher) publish(ctx context.Context, eventType string, appt *model.Appointment) {
	// Keyed by barber so one barber's events stay ordered per partition.
	msg := kafka.NewMessage().
		WithKey(appt.BarberID).
		WithValue(appt).
		WithEventID("").
		WithEventType(eventType).
		WithSource(p.source).
		Build()

	if err := p.writer.Publish(ctx, msg); err != nil {
		p.log.Warn("Failed to publish appointment event",
			"event_type", eventType,
			"appointment_id", appt.ID,
			"barber_id", appt.BarberID,
			"error", err,
		)
		return
	}

	p.log.Debug("Appointment event published",
		"event_type", eventType,
		"appointment_id", appt.ID,
		"event_id", msg.GetEventID(),
	)
}

func (p *kafkaPublisher) Close() error {
	return p.writer.Close()
}

type nopPublisher struct{}

// NewNopPublisher is used when no brokers are configured.
func NewNopPublisher() Publisher {
	return nopPublisher{}
}

func (nopPublisher) AppointmentScheduled(context.Context, *model.Appointment) {}

func (nopPublisher) AppointmentCancelled(context.Context, *model.Appointment) {}

func (nopPublisher) Close() error { return nil }
