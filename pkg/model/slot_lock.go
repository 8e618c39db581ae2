package model

import "time"

// SlotLock is an advisory lock held while a booking for one slot is in flight.
// The deterministic _id makes a concurrent attempt on the same slot fail its
// insert with a duplicate key error.
type SlotLock struct {
	ID        string    `bson:"_id" json:"id"`
	ExpiresAt time.Time `bson:"expires_at" json:"expires_at"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
