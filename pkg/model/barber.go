package model

import "time"

type Barber struct {
	ID          string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	Name        string    `json:"name" bson:"name" validate:"required,min=2,max=100"`
	Specialties []string  `json:"specialties,omitempty" bson:"specialties" validate:"omitempty,max=20,dive,min=2,max=50"`
	Phone       string    `json:"phone,omitempty" bson:"phone,omitempty" validate:"omitempty,e164"`
	PhotoURL    string    `json:"photo_url,omitempty" bson:"photo_url,omitempty" validate:"omitempty,url"`
	WorkingDays []string  `json:"working_days,omitempty" bson:"working_days" validate:"omitempty,max=7,dive,oneof=sat sun mon tue wed thu fri"`
	StartTime   string    `json:"start_time" bson:"start_time" validate:"required,valid_clock"`
	EndTime     string    `json:"end_time" bson:"end_time" validate:"required,valid_clock"`
	SlotMinutes int       `json:"slot_minutes" bson:"slot_minutes" validate:"required,min=10,max=240"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at" validate:"omitempty"`
}
