package model

import "time"

const (
	StatusScheduled = "scheduled"
	StatusCancelled = "cancelled"
)

// Appointment is always created scheduled. The only transition is the
// one-way soft cancel; cancelled documents stay in the collection and
// their slot becomes bookable again.
//
// BarberID and ServiceID are deliberately not format-validated here: a
// malformed id has to surface as an invalid-identifier error from the
// lookup, not as a field validation failure.
type Appointment struct {
	ID            string     `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	BarberID      string     `json:"barber_id" bson:"barber_id" validate:"required"`
	ServiceID     string     `json:"service_id" bson:"service_id" validate:"required"`
	CustomerName  string     `json:"customer_name" bson:"customer_name" validate:"required,min=2,max=100"`
	CustomerPhone string     `json:"customer_phone" bson:"customer_phone" validate:"required,e164"`
	Date          string     `json:"date" bson:"date" validate:"required,valid_date"`
	Time          string     `json:"time" bson:"time" validate:"required,valid_clock"`
	Status        string     `json:"status" bson:"status" validate:"required,oneof=scheduled cancelled"`
	Notes         string     `json:"notes,omitempty" bson:"notes,omitempty" validate:"omitempty,max=500"`
	CreatedAt     time.Time  `json:"created_at" bson:"created_at" validate:"omitempty"`
	UpdatedAt     *time.Time `json:"updated_at,omitempty" bson:"updated_at,omitempty" validate:"omitempty"`
}
